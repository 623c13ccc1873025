package checkout

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/promolab-cl/backend-promolab/internal/cart"
	"github.com/promolab-cl/backend-promolab/internal/common"
	"github.com/promolab-cl/backend-promolab/internal/events"
	"github.com/promolab-cl/backend-promolab/internal/money"
)

// Form is the buyer and payment data submitted at checkout. The card fields
// are validated structurally and then discarded; no charge is ever attempted.
type Form struct {
	CartID     string `json:"cartId" validate:"required,uuid4"`
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required,min=5"`
	CardNumber string `json:"cardNumber" validate:"required,cardnumber"`
	CardHolder string `json:"cardHolder" validate:"required,min=2"`
	Expiry     string `json:"expiry" validate:"required,cardexpiry"`
	CVV        string `json:"cvv" validate:"required,cardcvv"`
}

// Confirmation is the mocked order acknowledgement.
type Confirmation struct {
	OrderID   string      `json:"orderId"`
	Status    string      `json:"status"`
	CartID    string      `json:"cartId"`
	Subtotal  money.Money `json:"subtotal"`
	Total     money.Money `json:"total"`
	Units     int         `json:"units"`
	Currency  string      `json:"currency"`
	CreatedAt time.Time   `json:"createdAt"`
}

// StatusReceived is the only status a mocked order can have.
const StatusReceived = "received"

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVVRe    = regexp.MustCompile(`^\d{3,4}$`)
)

// Service runs the mocked checkout flow.
type Service struct {
	carts    *cart.Service
	bus      *events.Bus
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

// ServiceConfig groups Service dependencies. Bus is optional.
type ServiceConfig struct {
	Carts  *cart.Service
	Bus    *events.Bus
	Logger zerolog.Logger
	Now    func() time.Time
}

// NewService constructs a checkout Service with card validators registered.
func NewService(cfg ServiceConfig) (*Service, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return cardNumberRe.MatchString(stripSpaces(fl.Field().String()))
	}); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return cardExpiryRe.MatchString(strings.TrimSpace(fl.Field().String()))
	}); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("cardcvv", func(fl validator.FieldLevel) bool {
		return cardCVVRe.MatchString(strings.TrimSpace(fl.Field().String()))
	}); err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{carts: cfg.Carts, bus: cfg.Bus, validate: v, logger: cfg.Logger, now: now}, nil
}

// Checkout validates the form, snapshots the cart totals, and clears the
// cart. The confirmation is a mock; nothing leaves the process.
func (s *Service) Checkout(ctx context.Context, form Form) (Confirmation, error) {
	if err := s.validate.Struct(form); err != nil {
		return Confirmation{}, validationError(err)
	}

	view, err := s.carts.Get(ctx, form.CartID)
	if err != nil {
		return Confirmation{}, err
	}
	if len(view.Lines) == 0 {
		return Confirmation{}, &common.AppError{
			Code:       "EMPTY_CART",
			Message:    "cannot check out an empty cart",
			HTTPStatus: http.StatusUnprocessableEntity,
		}
	}

	conf := Confirmation{
		OrderID:   uuid.NewString(),
		Status:    StatusReceived,
		CartID:    view.ID,
		Subtotal:  view.Subtotal,
		Total:     view.Total,
		Units:     view.Units,
		Currency:  view.Currency,
		CreatedAt: s.now(),
	}

	if _, err := s.carts.Clear(ctx, form.CartID); err != nil {
		return Confirmation{}, err
	}

	if _, err := s.bus.Emit(ctx, events.TopicOrderReceived, conf.OrderID, conf); err != nil {
		s.logger.Error().Err(err).Str("order_id", conf.OrderID).Msg("emit order event")
	}

	s.logger.Info().
		Str("order_id", conf.OrderID).
		Str("cart_id", conf.CartID).
		Int64("total", conf.Total).
		Int("units", conf.Units).
		Msg("mock order received")
	return conf, nil
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

func validationError(err error) *common.AppError {
	details := map[string]any{}
	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok {
		for _, fe := range verrs {
			details[fieldName(fe)] = validationMessage(fe)
		}
	}
	return &common.AppError{
		Code:       "VALIDATION",
		Message:    "checkout form is invalid",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
		Details:    details,
	}
}

func asValidationErrors(err error, dst *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*dst = verrs
	}
	return ok
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "CartID":
		return "cartId"
	case "CardNumber":
		return "cardNumber"
	case "CardHolder":
		return "cardHolder"
	case "CVV":
		return "cvv"
	default:
		return strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid4":
		return "must be a valid cart id"
	case "cardnumber":
		return "must be 16 digits"
	case "cardexpiry":
		return "must use MM/YY format"
	case "cardcvv":
		return "must be 3 or 4 digits"
	case "min":
		return "is too short"
	default:
		return "is invalid"
	}
}
