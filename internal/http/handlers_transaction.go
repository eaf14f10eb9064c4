package http

import (
	"net/http"

	"watwallet/internal/core"
	"watwallet/internal/session"
)

type incomeRequest struct {
	JobID       string `json:"job_id"`
	Season      int64  `json:"season"`
	BaseEarned  string `json:"base_earned"`
	TipsEarned  string `json:"tips_earned"`
	HoursWorked int64  `json:"hours_worked"`
	Date        string `json:"date"`
}

type incomeDTO struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	Season      int64  `json:"season"`
	BaseEarned  string `json:"base_earned"`
	TipsEarned  string `json:"tips_earned"`
	HoursWorked int64  `json:"hours_worked"`
	Date        string `json:"date"`
}

type expenseRequest struct {
	Season      int64  `json:"season"`
	Amount      string `json:"amount"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type expenseDTO struct {
	ID          string `json:"id"`
	Season      int64  `json:"season"`
	Amount      string `json:"amount"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func (req incomeRequest) toDomain(userID string) (core.Income, error) {
	base, err := core.ParseDecimalToCents(req.BaseEarned)
	if err != nil {
		return core.Income{}, err
	}
	tips := int64(0)
	if req.TipsEarned != "" {
		tips, err = core.ParseDecimalToCents(req.TipsEarned)
		if err != nil {
			return core.Income{}, err
		}
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Income{}, err
	}
	return core.Income{
		UserID:      userID,
		JobID:       req.JobID,
		Season:      req.Season,
		BaseEarned:  core.Money{Cents: base},
		TipsEarned:  core.Money{Cents: tips},
		HoursWorked: req.HoursWorked,
		Date:        date,
	}, nil
}

func (req expenseRequest) toDomain(userID string) (core.Expense, error) {
	amount, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		UserID:      userID,
		Season:      req.Season,
		Amount:      core.Money{Cents: amount},
		Tag:         req.Tag,
		Description: req.Description,
		Date:        date,
	}, nil
}

func toIncomeDTO(i *core.Income) incomeDTO {
	return incomeDTO{
		ID:          i.ID,
		JobID:       i.JobID,
		Season:      i.Season,
		BaseEarned:  i.BaseEarned.String(),
		TipsEarned:  i.TipsEarned.String(),
		HoursWorked: i.HoursWorked,
		Date:        formatDate(i.Date),
	}
}

func toExpenseDTO(e *core.Expense) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		Season:      e.Season,
		Amount:      e.Amount.String(),
		Tag:         e.Tag,
		Description: e.Description,
		Date:        formatDate(e.Date),
	}
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	var req incomeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	income, err := req.toDomain(uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := s.transactions.AddIncome(r.Context(), income)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleGetIncome(w http.ResponseWriter, r *http.Request) {
	income, err := s.transactions.GetIncome(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if income == nil {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, toIncomeDTO(income))
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	var req incomeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	income, err := req.toDomain(uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := s.transactions.UpdateIncome(r.Context(), r.PathValue("id"), income); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.DeleteIncome(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	expense, err := req.toDomain(uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := s.transactions.AddExpense(r.Context(), expense)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.transactions.GetExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if expense == nil {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, toExpenseDTO(expense))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	expense, err := req.toDomain(uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := s.transactions.UpdateExpense(r.Context(), r.PathValue("id"), expense); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
