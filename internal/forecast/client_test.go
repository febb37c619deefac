package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestClientPredict(t *testing.T) {
	t.Run("posts value and decodes forecast", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			var req struct {
				Data decimal.Decimal `json:"data"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if !req.Data.Equal(decimal.NewFromInt(1500)) {
				t.Errorf("expected data 1500, got %s", req.Data)
			}
			json.NewEncoder(w).Encode(map[string]string{"forecast": "1650.25"})
		}))
		defer srv.Close()

		got, err := NewClient(srv.URL).Predict(context.Background(), decimal.NewFromInt(1500))
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		if !got.Equal(decimal.RequireFromString("1650.25")) {
			t.Errorf("expected forecast 1650.25, got %s", got)
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		if _, err := NewClient(srv.URL).Predict(context.Background(), decimal.NewFromInt(1)); err == nil {
			t.Error("expected error for failing collaborator")
		}
	})

	t.Run("unreachable service is an error", func(t *testing.T) {
		if _, err := NewClient("http://127.0.0.1:0").Predict(context.Background(), decimal.NewFromInt(1)); err == nil {
			t.Error("expected error for unreachable collaborator")
		}
	})
}
