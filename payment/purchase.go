package payment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"paywall-backend/models"
	"paywall-backend/utils"
)

var ErrUnsupportedNetwork = errors.New("payment: unsupported network")

type Network string

const (
	NetworkBase   Network = "base"
	NetworkSolana Network = "solana"
)

// DefaultNetwork is used when a purchase does not name one.
const DefaultNetwork = NetworkBase

var networkKinds = map[Network]string{
	NetworkBase:   "evm",
	NetworkSolana: "svm",
}

func ParseNetwork(s string) (Network, error) {
	if s == "" {
		return DefaultNetwork, nil
	}
	n := Network(s)
	if _, ok := networkKinds[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, s)
	}
	return n, nil
}

// PurchaseRequest describes what is bought and where the money goes.
type PurchaseRequest struct {
	ContentID string
	Price     decimal.Decimal
	Currency  string
	Network   Network
	PayTo     string
	// Payer identifies the paying wallet; empty when none is connected.
	Payer string
}

type PurchaseResult struct {
	Success bool
	Proof   string
}

// Purchaser executes a payment and returns a proof that can be redeemed for
// an access grant.
type Purchaser interface {
	Purchase(ctx context.Context, req PurchaseRequest) (PurchaseResult, error)
}

// SimulatedPurchaser stands in for a wallet payment: it waits, moves no
// funds and always reports success with a placeholder proof.
type SimulatedPurchaser struct {
	Delay     time.Duration
	ProjectID string
	Merchants map[Network]string
}

func NewSimulatedPurchaser(delay time.Duration, projectID string, merchants map[Network]string) *SimulatedPurchaser {
	return &SimulatedPurchaser{Delay: delay, ProjectID: projectID, Merchants: merchants}
}

func (p *SimulatedPurchaser) Purchase(ctx context.Context, req PurchaseRequest) (PurchaseResult, error) {
	if _, ok := networkKinds[req.Network]; !ok {
		return PurchaseResult{}, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, req.Network)
	}
	if req.ContentID == "" {
		return PurchaseResult{}, errors.New("payment: content id required")
	}
	if p.Merchants[req.Network] == "" {
		utils.LogWarn(fmt.Sprintf("No merchant address configured for %s, purchase is simulated", req.Network))
	}
	utils.LogInfo(fmt.Sprintf("Simulated purchase of %s for %s %s on %s (project %s)",
		req.ContentID, req.Price.String(), req.Currency, req.Network, p.ProjectID))

	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return PurchaseResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	proof := "mock-tx-id"
	if req.Payer == "" {
		proof = "mock-tx-id-no-wallet"
	}
	return PurchaseResult{Success: true, Proof: proof}, nil
}

// Networks lists the supported networks with their configured merchant.
func Networks(merchants map[Network]string) []models.Network {
	networks := make([]models.Network, 0, len(networkKinds))
	for n, kind := range networkKinds {
		networks = append(networks, models.Network{
			Name:     string(n),
			Kind:     kind,
			Merchant: merchants[n],
		})
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i].Name < networks[j].Name })
	return networks
}
