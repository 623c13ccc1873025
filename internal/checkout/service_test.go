package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/promolab-cl/backend-promolab/internal/cart"
	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/checkout"
	"github.com/promolab-cl/backend-promolab/internal/common"
	"github.com/promolab-cl/backend-promolab/internal/events"
)

const checkoutSeed = `{
  "products": [
    {"id": 1, "name": "Botella", "sku": "HOG-010", "status": "active", "basePrice": 500, "stock": 100},
    {"id": 2, "name": "Polera", "sku": "TEX-001", "status": "active", "basePrice": 1000, "stock": 500,
     "priceBreaks": [{"minQty": 10, "price": 900}, {"minQty": 50, "price": 800, "discount": 25}]}
  ]
}`

func newCheckout(t *testing.T) (*checkout.Service, *cart.Service) {
	t.Helper()
	store, err := catalog.NewStore([]byte(checkoutSeed), zerolog.Nop())
	require.NoError(t, err)
	catalogSvc, err := catalog.NewService(catalog.ServiceConfig{Store: store})
	require.NoError(t, err)

	carts := cart.NewService(cart.ServiceConfig{
		Store:    cart.NewStore(time.Hour, nil),
		Catalog:  catalogSvc,
		Currency: "CLP",
	})
	svc, err := checkout.NewService(checkout.ServiceConfig{Carts: carts, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return svc, carts
}

func validForm(cartID string) checkout.Form {
	return checkout.Form{
		CartID:     cartID,
		Name:       "María Pérez",
		Email:      "maria@empresa.cl",
		Address:    "Av. Providencia 1234, Santiago",
		CardNumber: "4111 1111 1111 1111",
		CardHolder: "MARIA PEREZ",
		Expiry:     "12/27",
		CVV:        "123",
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	svc, carts := newCheckout(t)
	ctx := context.Background()

	view, err := carts.Create(ctx)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, view.ID, 1, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, view.ID, 2, 50)
	require.NoError(t, err)

	conf, err := svc.Checkout(ctx, validForm(view.ID))
	require.NoError(t, err)
	require.Equal(t, checkout.StatusReceived, conf.Status)
	require.NotEmpty(t, conf.OrderID)
	require.Equal(t, int64(51000), conf.Subtotal)
	require.Equal(t, int64(41000), conf.Total)
	require.Equal(t, 52, conf.Units)
	require.Equal(t, "CLP", conf.Currency)

	// Success empties the cart but keeps it usable.
	after, err := carts.Get(ctx, view.ID)
	require.NoError(t, err)
	require.Empty(t, after.Lines)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, carts := newCheckout(t)
	ctx := context.Background()

	view, err := carts.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, validForm(view.ID))
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "EMPTY_CART", appErr.Code)
}

func TestCheckoutUnknownCart(t *testing.T) {
	svc, _ := newCheckout(t)

	form := validForm("6ba7b810-9dad-41d1-80b4-00c04fd430c8")
	_, err := svc.Checkout(context.Background(), form)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "CART_NOT_FOUND", appErr.Code)
}

func TestCheckoutFormValidation(t *testing.T) {
	svc, carts := newCheckout(t)
	ctx := context.Background()
	view, err := carts.Create(ctx)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, view.ID, 1, 1)
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*checkout.Form)
		field  string
	}{
		{"short card number", func(f *checkout.Form) { f.CardNumber = "4111" }, "cardNumber"},
		{"card number with letters", func(f *checkout.Form) { f.CardNumber = "4111abcd11111111" }, "cardNumber"},
		{"bad expiry month", func(f *checkout.Form) { f.Expiry = "13/27" }, "expiry"},
		{"expiry without slash", func(f *checkout.Form) { f.Expiry = "1227" }, "expiry"},
		{"cvv too long", func(f *checkout.Form) { f.CVV = "12345" }, "cvv"},
		{"cvv too short", func(f *checkout.Form) { f.CVV = "12" }, "cvv"},
		{"bad email", func(f *checkout.Form) { f.Email = "not-an-email" }, "email"},
		{"missing name", func(f *checkout.Form) { f.Name = "" }, "name"},
		{"missing address", func(f *checkout.Form) { f.Address = "" }, "address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm(view.ID)
			tc.mutate(&form)
			_, err := svc.Checkout(ctx, form)
			var appErr *common.AppError
			require.ErrorAs(t, err, &appErr)
			require.Equal(t, "VALIDATION", appErr.Code)
			require.Contains(t, appErr.Details, tc.field)
		})
	}

	// A spaced card number still passes; the digits are what count.
	form := validForm(view.ID)
	form.CardNumber = "4111 1111 1111 1111"
	_, err = svc.Checkout(ctx, form)
	require.NoError(t, err)
}

func TestCheckoutEmitsOrderEvent(t *testing.T) {
	store, err := catalog.NewStore([]byte(checkoutSeed), zerolog.Nop())
	require.NoError(t, err)
	catalogSvc, err := catalog.NewService(catalog.ServiceConfig{Store: store})
	require.NoError(t, err)
	carts := cart.NewService(cart.ServiceConfig{
		Store:   cart.NewStore(time.Hour, nil),
		Catalog: catalogSvc,
	})

	var got []events.Event
	bus := events.NewBus(events.NotifierFunc(func(_ context.Context, ev events.Event) error {
		got = append(got, ev)
		return nil
	}))
	svc, err := checkout.NewService(checkout.ServiceConfig{Carts: carts, Bus: bus, Logger: zerolog.Nop()})
	require.NoError(t, err)

	ctx := context.Background()
	view, err := carts.Create(ctx)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, view.ID, 1, 3)
	require.NoError(t, err)

	conf, err := svc.Checkout(ctx, validForm(view.ID))
	require.NoError(t, err)

	require.Len(t, got, 1)
	require.Equal(t, events.TopicOrderReceived, got[0].Topic)
	require.Equal(t, conf.OrderID, got[0].AggregateID)
	require.Contains(t, string(got[0].Payload), `"total":1500`)
}

func TestCheckoutFourDigitCVV(t *testing.T) {
	svc, carts := newCheckout(t)
	ctx := context.Background()
	view, err := carts.Create(ctx)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, view.ID, 1, 1)
	require.NoError(t, err)

	form := validForm(view.ID)
	form.CVV = "1234"
	_, err = svc.Checkout(ctx, form)
	require.NoError(t, err)
}
