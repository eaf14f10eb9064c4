package http

import (
	"net/http"

	"watwallet/internal/core"
	"watwallet/internal/session"
)

type ledgerEntryDTO struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type ledgerDTO struct {
	Earnings   string           `json:"earnings"`
	Expenses   string           `json:"expenses"`
	Unresolved int              `json:"unresolved"`
	Entries    []ledgerEntryDTO `json:"entries"`
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	uid, _ := session.UserID(r.Context())

	ledger, err := s.ledger.GetLedger(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLedgerDTO(ledger))
}

func toLedgerDTO(ledger core.TotalLedger) ledgerDTO {
	dto := ledgerDTO{
		Earnings:   ledger.Earnings.String(),
		Expenses:   ledger.Expenses.String(),
		Unresolved: ledger.Unresolved,
		Entries:    make([]ledgerEntryDTO, 0, len(ledger.Entries)),
	}
	for _, e := range ledger.Entries {
		dto.Entries = append(dto.Entries, ledgerEntryDTO{
			ID:          e.ID,
			Kind:        string(e.Kind),
			Amount:      e.Amount.String(),
			Date:        formatDate(e.Date),
			Description: e.Description,
		})
	}
	return dto
}
