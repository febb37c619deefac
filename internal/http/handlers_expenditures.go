package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type monthlyExpenditureResponse struct {
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type forecastResponse struct {
	Input    decimal.Decimal `json:"input"`
	Forecast decimal.Decimal `json:"forecast"`
	Degraded bool            `json:"degraded"`
}

func (s *Server) handleMonthlyExpenditures(w http.ResponseWriter, r *http.Request) {
	totals, err := s.expenditures.MonthlyTotals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]monthlyExpenditureResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, monthlyExpenditureResponse{
			Year:     t.Year,
			Month:    t.Month,
			Category: t.Category.String(),
			Total:    t.Total,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	result, err := s.expenditures.Forecast(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, forecastResponse{
		Input:    result.Input,
		Forecast: result.Forecast,
		Degraded: result.Degraded,
	})
}
