package access

import (
	"context"
	"errors"
	"fmt"

	"paywall-backend/grant"
	"paywall-backend/models"
	"paywall-backend/payment"
	"paywall-backend/store"
)

// Result is either an unlocked payload or a payment-required descriptor.
type Result struct {
	Payload         *models.AccessPayload
	PaymentRequired *models.PaymentRequired
}

func (r Result) Unlocked() bool {
	return r.Payload != nil
}

// Service gates content delivery behind access grants.
type Service struct {
	store    store.ContentStore
	issuer   *grant.Issuer
	verifier payment.Verifier
}

func NewService(s store.ContentStore, issuer *grant.Issuer, verifier payment.Verifier) *Service {
	if verifier == nil {
		verifier = payment.TrustingVerifier{}
	}
	return &Service{store: s, issuer: issuer, verifier: verifier}
}

// GetAccess returns the payload of contentID when it is free or token is a
// valid grant for it, and how to pay for it otherwise. It has no side effects.
func (s *Service) GetAccess(ctx context.Context, contentID, token string) (Result, error) {
	item, err := s.store.GetContent(ctx, contentID)
	if err != nil {
		return Result{}, err
	}

	if !item.IsFree() {
		if _, err := s.issuer.Verify(contentID, token); err != nil {
			return Result{PaymentRequired: paymentRequired(item)}, nil
		}
	}

	payload, err := item.Payload()
	if err != nil {
		return Result{}, fmt.Errorf("content %s: %w", contentID, err)
	}
	return Result{Payload: &models.AccessPayload{Type: payload.Type(), Data: payload.Data()}}, nil
}

// IssueGrant redeems proof for an access grant on contentID. Whether the
// proof is checked at all depends on the configured verifier.
func (s *Service) IssueGrant(ctx context.Context, contentID, proof string) (grant.Grant, error) {
	if contentID == "" {
		return grant.Grant{}, errors.New("access: content id required")
	}
	if err := s.verifier.Verify(ctx, payment.Claim{ContentID: contentID, Proof: proof}); err != nil {
		return grant.Grant{}, err
	}
	return s.issuer.Issue(contentID, proof)
}

func paymentRequired(item models.ContentItem) *models.PaymentRequired {
	return &models.PaymentRequired{
		Error:        "Payment Required",
		PayToAddress: item.Creator.WalletAddress,
		Amount:       item.Price.String(),
		Currency:     item.Currency,
	}
}
