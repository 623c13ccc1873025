package checkout_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/promolab-cl/backend-promolab/internal/checkout"
)

func TestCheckoutHandler(t *testing.T) {
	svc, carts := newCheckout(t)
	handler := checkout.NewHandler(checkout.HandlerConfig{Service: svc})
	ctx := context.Background()

	view, err := carts.Create(ctx)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, view.ID, 2, 50)
	require.NoError(t, err)

	t.Run("accepts a valid order", func(t *testing.T) {
		body, err := json.Marshal(validForm(view.ID))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Checkout(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Data checkout.Confirmation `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, checkout.StatusReceived, resp.Data.Status)
		require.Equal(t, int64(40000), resp.Data.Total)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		handler.Checkout(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("surfaces field errors", func(t *testing.T) {
		form := validForm(view.ID)
		form.CardNumber = "1234"
		body, err := json.Marshal(form)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Checkout(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error struct {
				Code    string         `json:"code"`
				Details map[string]any `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "VALIDATION", resp.Error.Code)
		require.Contains(t, resp.Error.Details, "cardNumber")
	})
}
