package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"spendwise/internal/ledger"
	"spendwise/internal/logger"
	"spendwise/internal/report"
	"spendwise/internal/settings"
)

type expenseRequest struct {
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	IsShared    bool        `json:"isShared"`
	SharedNote  string      `json:"sharedNote"`
}

type expensePatch struct {
	Amount      *json.Number `json:"amount"`
	Category    *string      `json:"category"`
	Description *string      `json:"description"`
	Date        *time.Time   `json:"date"`
	SharedNote  *string      `json:"sharedNote"`
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Expenses())
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.settings.HasCategory(req.Category) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	expense, err := s.ledger.Add(ledger.Draft{
		Amount:      req.Amount.String(),
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
		IsShared:    req.IsShared,
		SharedNote:  req.SharedNote,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Log.Debug().
		Str("id", expense.ID).
		Str("category", expense.Category).
		Str("description", logger.RedactDescription(expense.Description)).
		Msg("Expense created")
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	var req expensePatch
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Category != nil && !s.settings.HasCategory(*req.Category) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	patch := ledger.Patch{
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
		SharedNote:  req.SharedNote,
	}
	if req.Amount != nil {
		amount := req.Amount.String()
		patch.Amount = &amount
	}

	if err := s.ledger.Edit(r.PathValue("id"), patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	s.ledger.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) settleExpense(w http.ResponseWriter, r *http.Request) {
	s.ledger.Settle(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) unsettleExpense(w http.ResponseWriter, r *http.Request) {
	s.ledger.Unsettle(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) monthlySummary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseMonth(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	writeJSON(w, http.StatusOK, report.MonthlySummary(s.ledger.Expenses(), year, month))
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseMonth(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	data, err := report.MonthlyCSV(s.ledger.Expenses(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.ExportFilename(year, month)))
	w.Write(data)
}

func (s *Server) categoryChart(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseMonth(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	png, err := report.CategoryPieChart(s.ledger.Expenses(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "chart rendering failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Settings())
}

type settingsPatch struct {
	Theme           *string `json:"theme"`
	Currency        *string `json:"currency"`
	ReminderTime    *string `json:"reminderTime"`
	EnableReminders *bool   `json:"enableReminders"`
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPatch
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Theme != nil {
		if err := s.settings.SetTheme(*req.Theme); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Currency != nil {
		if err := s.settings.SetCurrency(*req.Currency); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.ReminderTime != nil || req.EnableReminders != nil {
		current := s.settings.Settings()
		reminderTime := current.ReminderTime
		if req.ReminderTime != nil {
			reminderTime = *req.ReminderTime
		}
		enabled := current.EnableReminders
		if req.EnableReminders != nil {
			enabled = *req.EnableReminders
		}
		if err := s.settings.SetReminders(reminderTime, enabled); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, s.settings.Settings())
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.settings.AddCategory(req.Name); err != nil {
		writeError(w, categoryStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.settings.Settings().Categories)
}

func (s *Server) renameCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.settings.RenameCategory(r.PathValue("name"), req.Name); err != nil {
		writeError(w, categoryStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.settings.Settings().Categories)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.settings.DeleteCategory(r.PathValue("name"))
	w.WriteHeader(http.StatusNoContent)
}

func categoryStatus(err error) int {
	if errors.Is(err, settings.ErrDuplicateCategory) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
