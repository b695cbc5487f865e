package accessclient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"paywall-backend/models"
	"paywall-backend/payment"
	"paywall-backend/utils"
)

type State int

const (
	StateLoading State = iota
	StateLocked
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return "loading"
	}
}

var (
	ErrBusy            = errors.New("accessclient: operation in progress")
	ErrPurchaseFailed  = errors.New("accessclient: purchase failed")
	ErrContentNotFound = errors.New("accessclient: content not found")
)

// Snapshot is what a view renders.
type Snapshot struct {
	State           State
	Payload         *models.AccessPayload
	PaymentRequired *models.PaymentRequired
	Err             error
}

// Controller drives one content item through loading, locked and unlocked.
// Any failure to establish access leaves it locked.
type Controller struct {
	client    *Client
	purchaser payment.Purchaser
	contentID string
	network   payment.Network
	onChange  func(Snapshot)

	mu         sync.Mutex
	snap       Snapshot
	purchasing bool
}

type Option func(*Controller)

// WithObserver registers fn to be called after every state change.
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

func WithNetwork(n payment.Network) Option {
	return func(c *Controller) { c.network = n }
}

func NewController(client *Client, purchaser payment.Purchaser, contentID string, opts ...Option) *Controller {
	c := &Controller{
		client:    client,
		purchaser: purchaser,
		contentID: contentID,
		network:   payment.DefaultNetwork,
		snap:      Snapshot{State: StateLoading},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func (c *Controller) set(s Snapshot) {
	c.mu.Lock()
	c.snap = s
	c.mu.Unlock()
	if c.onChange != nil {
		c.onChange(s)
	}
}

// Refresh polls the access endpoint and settles on locked or unlocked.
// While a purchase is in flight it leaves the state alone and returns
// ErrBusy. Access failures are reported in the snapshot, not as an error.
func (c *Controller) Refresh(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.purchasing {
		current := c.snap
		c.mu.Unlock()
		return current, ErrBusy
	}
	c.mu.Unlock()

	c.set(Snapshot{State: StateLoading})
	return c.resolve(ctx), nil
}

func (c *Controller) resolve(ctx context.Context) Snapshot {
	res := c.client.CheckAccess(ctx, c.contentID)

	var s Snapshot
	switch res.Status {
	case StatusUnlocked:
		s = Snapshot{State: StateUnlocked, Payload: res.Payload}
	case StatusLocked:
		s = Snapshot{State: StateLocked, PaymentRequired: res.PaymentRequired}
	case StatusNotFound:
		s = Snapshot{State: StateLocked, Err: ErrContentNotFound}
	default:
		utils.LogWarn(fmt.Sprintf("Access check for %s failed: %v", c.contentID, res.Err))
		s = Snapshot{State: StateLocked, Err: res.Err}
	}
	c.set(s)
	return s
}

// Purchase pays for the item with payer credentials, redeems the proof and
// re-checks access. It is rejected while another operation is loading and
// does nothing once unlocked. Failures are not retried.
func (c *Controller) Purchase(ctx context.Context, payer string) (Snapshot, error) {
	c.mu.Lock()
	current := c.snap
	switch {
	case c.purchasing, current.State == StateLoading:
		c.mu.Unlock()
		return current, ErrBusy
	case current.State == StateUnlocked:
		c.mu.Unlock()
		return current, nil
	}
	c.purchasing = true
	c.snap = Snapshot{State: StateLoading, PaymentRequired: current.PaymentRequired}
	loading := c.snap
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.purchasing = false
		c.mu.Unlock()
	}()
	if c.onChange != nil {
		c.onChange(loading)
	}

	pr := current.PaymentRequired
	if pr == nil {
		// never saw the payment instructions, fetch them first
		s := c.resolve(ctx)
		if s.State != StateLocked || s.PaymentRequired == nil {
			return s, s.Err
		}
		c.set(Snapshot{State: StateLoading, PaymentRequired: s.PaymentRequired})
		pr = s.PaymentRequired
	}

	result, err := c.purchase(ctx, pr, payer)
	if err != nil {
		s := Snapshot{State: StateLocked, PaymentRequired: pr, Err: err}
		c.set(s)
		return s, err
	}

	if err := c.client.RedeemProof(ctx, c.contentID, result.Proof); err != nil {
		s := Snapshot{State: StateLocked, PaymentRequired: pr, Err: err}
		c.set(s)
		return s, err
	}

	s := c.resolve(ctx)
	return s, s.Err
}

func (c *Controller) purchase(ctx context.Context, pr *models.PaymentRequired, payer string) (payment.PurchaseResult, error) {
	price, err := decimal.NewFromString(pr.Amount)
	if err != nil {
		return payment.PurchaseResult{}, fmt.Errorf("%w: invalid amount %q", ErrPurchaseFailed, pr.Amount)
	}
	result, err := c.purchaser.Purchase(ctx, payment.PurchaseRequest{
		ContentID: c.contentID,
		Price:     price,
		Currency:  pr.Currency,
		Network:   c.network,
		PayTo:     pr.PayToAddress,
		Payer:     payer,
	})
	if err != nil {
		return payment.PurchaseResult{}, fmt.Errorf("%w: %v", ErrPurchaseFailed, err)
	}
	if !result.Success {
		return payment.PurchaseResult{}, ErrPurchaseFailed
	}
	return result, nil
}
