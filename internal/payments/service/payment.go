package service

import (
	"context"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"blinktech/pkg/config"
	apperrors "blinktech/pkg/errors"
)

// IntentCreator is the slice of the Stripe client the payment service uses.
// Production wires the real API through stripeIntentCreator; tests substitute
// a fake.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeIntentCreator struct{}

func (stripeIntentCreator) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

type PaymentService interface {
	// CreateIntent converts price (major currency units) to minor units and
	// opens a PaymentIntent, returning its client secret.
	CreateIntent(ctx context.Context, price float64) (string, error)
}

type paymentService struct {
	intents IntentCreator
	cfg     *config.Config
}

func NewPaymentService(cfg *config.Config) PaymentService {
	stripe.Key = cfg.StripeSecretKey
	return &paymentService{
		intents: stripeIntentCreator{},
		cfg:     cfg,
	}
}

// NewPaymentServiceWithCreator injects a custom intent creator.
func NewPaymentServiceWithCreator(intents IntentCreator, cfg *config.Config) PaymentService {
	return &paymentService{
		intents: intents,
		cfg:     cfg,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", apperrors.InvalidInput("Price must be greater than zero")
	}

	// 19.99 dollars becomes 1999 cents; round to dodge float artifacts.
	amount := int64(math.Round(price * 100))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := s.intents.New(params)
	if err != nil {
		s.cfg.Log.Error("Failed to create payment intent", "amount", amount, "error", err)
		return "", apperrors.Upstream("stripe", err)
	}

	s.cfg.Log.Info("Payment intent created", "amount", amount, "intent_id", intent.ID)
	return intent.ClientSecret, nil
}
