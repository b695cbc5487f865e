package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	gobreaker "github.com/sony/gobreaker/v2"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"paywall-backend/models"
	"paywall-backend/utils"
)

const (
	metadataContentID = "content_id"
	metadataPayTo     = "pay_to"
)

// ContentLookup resolves the item a proof is supposed to pay for.
type ContentLookup interface {
	GetContent(ctx context.Context, id string) (models.ContentItem, error)
}

// BreakerSettings configures the circuit breaker wrapped around Stripe.
type BreakerSettings struct {
	Timeout          time.Duration
	FailureThreshold uint32
}

func newBreaker(name string, s BreakerSettings) *gobreaker.CircuitBreaker[*stripe.PaymentIntent] {
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 5
	}
	return gobreaker.NewCircuitBreaker[*stripe.PaymentIntent](gobreaker.Settings{
		Name:    name,
		Timeout: s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			utils.LogWarn(fmt.Sprintf("Circuit breaker %s: %s -> %s", name, from, to))
		},
	})
}

// MinorUnits converts a price to the smallest currency unit, rounding up so
// a payment never settles for less than the listed price.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Shift(2).Ceil().IntPart()
}

// StripeCurrency maps listing currencies to Stripe currency codes. USDC is
// settled in USD.
func StripeCurrency(currency string) string {
	c := strings.ToLower(currency)
	if c == "usdc" {
		return "usd"
	}
	return c
}

// StripeVerifier treats proofs as Stripe PaymentIntent ids and checks the
// intent really paid for the claimed item.
type StripeVerifier struct {
	lookup  ContentLookup
	fetch   func(ctx context.Context, id string) (*stripe.PaymentIntent, error)
	breaker *gobreaker.CircuitBreaker[*stripe.PaymentIntent]
}

func NewStripeVerifier(secretKey string, lookup ContentLookup, settings BreakerSettings) *StripeVerifier {
	stripe.Key = secretKey
	return &StripeVerifier{
		lookup:  lookup,
		fetch:   getPaymentIntent,
		breaker: newBreaker("stripe-verify", settings),
	}
}

func getPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	return paymentintent.Get(id, params)
}

func (v *StripeVerifier) Verify(ctx context.Context, claim Claim) error {
	item, err := v.lookup.GetContent(ctx, claim.ContentID)
	if err != nil {
		return fmt.Errorf("payment: loading content: %w", err)
	}
	if item.IsFree() {
		return nil
	}
	if !strings.HasPrefix(claim.Proof, "pi_") {
		return fmt.Errorf("%w: not a payment intent", ErrUnverifiedProof)
	}

	pi, err := v.breaker.Execute(func() (*stripe.PaymentIntent, error) {
		return v.fetch(ctx, claim.Proof)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnverifiedProof, err)
	}

	switch {
	case pi.Status != stripe.PaymentIntentStatusSucceeded:
		return fmt.Errorf("%w: intent status %s", ErrUnverifiedProof, pi.Status)
	case pi.Metadata[metadataContentID] != claim.ContentID:
		return fmt.Errorf("%w: intent paid for another item", ErrUnverifiedProof)
	case string(pi.Currency) != StripeCurrency(item.Currency):
		return fmt.Errorf("%w: currency %s", ErrUnverifiedProof, pi.Currency)
	case pi.AmountReceived < MinorUnits(item.Price):
		return fmt.Errorf("%w: received %d of %d", ErrUnverifiedProof, pi.AmountReceived, MinorUnits(item.Price))
	}
	return nil
}

// Checkout is what a client needs to confirm a Stripe payment for an item.
type Checkout struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// StripeCheckout creates PaymentIntents whose id is later redeemed as proof.
type StripeCheckout struct {
	create  func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	breaker *gobreaker.CircuitBreaker[*stripe.PaymentIntent]
}

func NewStripeCheckout(secretKey string, settings BreakerSettings) *StripeCheckout {
	stripe.Key = secretKey
	return &StripeCheckout{
		create:  paymentintent.New,
		breaker: newBreaker("stripe-checkout", settings),
	}
}

func (s *StripeCheckout) Create(ctx context.Context, item models.ContentItem) (Checkout, error) {
	amount := MinorUnits(item.Price)
	currency := StripeCurrency(item.Currency)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataContentID, item.ID)
	params.AddMetadata(metadataPayTo, item.Creator.WalletAddress)

	pi, err := s.breaker.Execute(func() (*stripe.PaymentIntent, error) {
		return s.create(params)
	})
	if err != nil {
		return Checkout{}, fmt.Errorf("payment: creating intent: %w", err)
	}

	return Checkout{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		Amount:          amount,
		Currency:        currency,
	}, nil
}
