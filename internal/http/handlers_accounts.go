package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"futurebank/internal/core"
)

type accountResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"ownerId"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

type balanceResponse struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}

func toAccountResponse(a core.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		AccountType: a.AccountType,
		Balance:     a.Balance(),
	}
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	p := newRequestParser(r)
	if err := p.Parse(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	var initialBalance *decimal.Decimal
	if v := p.Get("initialBalance"); v != "" {
		b, err := decimal.NewFromString(v)
		if err != nil {
			writeError(w, r, fmt.Errorf("initial balance %q: %w", v, core.ErrInvalidAmount))
			return
		}
		initialBalance = &b
	}

	a, err := s.accounts.Create(r.Context(), p.Get("ownerId"), p.Get("accountType"), initialBalance)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(a))
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	list, err := s.accounts.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]accountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.accounts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(a))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p := newRequestParser(r)
	if err := p.Parse(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	balance, err := decimal.NewFromString(p.Get("balance"))
	if err != nil {
		writeError(w, r, fmt.Errorf("balance %q: %w", p.Get("balance"), core.ErrInvalidAmount))
		return
	}

	// NewAccount clamps a negative balance to zero.
	a, err := s.accounts.Update(r.Context(), id, core.NewAccount(id, p.Get("ownerId"), p.Get("accountType"), balance))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(a))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existed, err := s.accounts.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !existed {
		writeError(w, r, fmt.Errorf("account %s: %w", id, core.ErrAccountNotFound))
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleAccountBalance(w http.ResponseWriter, r *http.Request) {
	a, err := s.accounts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{AccountID: a.ID, Balance: a.Balance()})
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	s.handleBalanceChange(w, r, s.accounts.Deposit)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	s.handleBalanceChange(w, r, s.accounts.Withdraw)
}

func (s *Server) handleBalanceChange(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id string, amount decimal.Decimal) error) {
	id := r.PathValue("id")
	p := newRequestParser(r)
	if err := p.Parse(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	amount, err := core.ParseAmount(p.Get("amount"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := apply(r.Context(), id, amount); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := s.accounts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{AccountID: a.ID, Balance: a.Balance()})
}
