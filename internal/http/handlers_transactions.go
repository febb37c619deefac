package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"futurebank/internal/core"
	"futurebank/internal/services"
)

type transactionResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		FromAccountID: tx.FromAccountID,
		ToAccountID:   tx.ToAccountID,
		Amount:        tx.Amount,
		Category:      tx.Category.String(),
		CreatedAt:     tx.CreatedAt,
	}
}

func toTransactionResponses(txs []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	p := newRequestParser(r)
	if err := p.Parse(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tx, err := s.transfers.TransferFromText(r.Context(),
		p.Get("fromAccountId"), p.Get("toAccountId"), p.Get("amount"), p.Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	p := newRequestParser(r)
	if err := p.Parse(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tx, err := s.transactions.Create(r.Context(),
		p.Get("fromAccountId"), p.Get("toAccountId"), p.Get("amount"), p.Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleTransactionsByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := core.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	txs, err := s.transactions.ByCategory(r.Context(), category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}

// handleAccountTransactions resolves the account history with optional
// filters. Year and month take precedence over the date literals.
func (s *Server) handleAccountTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var q services.HistoryQuery
	q.StartDate = query.Get("startDate")
	q.EndDate = query.Get("endDate")

	if v := query.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, fmt.Errorf("year %q: %w", v, core.ErrInvalidDateFormat))
			return
		}
		q.Year = &year
	}
	if v := query.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, fmt.Errorf("month %q: %w", v, core.ErrInvalidDateFormat))
			return
		}
		q.Month = &month
	}

	txs, err := s.transactions.History(r.Context(), r.PathValue("id"), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}
