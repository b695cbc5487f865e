package accessclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"paywall-backend/models"
)

// Status is the outcome of one access check.
type Status int

const (
	StatusFailed Status = iota
	StatusUnlocked
	StatusLocked
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusUnlocked:
		return "unlocked"
	case StatusLocked:
		return "locked"
	case StatusNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

var ErrGrantRejected = errors.New("accessclient: grant rejected")

type CheckResult struct {
	Status          Status
	Payload         *models.AccessPayload
	PaymentRequired *models.PaymentRequired
	Err             error
}

// Client talks to the access endpoints. Its cookie jar carries the grants
// between RedeemProof and CheckAccess.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("accessclient: invalid base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Jar: jar, Timeout: 15 * time.Second},
	}, nil
}

func (c *Client) accessURL(contentID string, suffix string) string {
	return c.BaseURL + "/access/" + url.PathEscape(contentID) + suffix
}

// CheckAccess never returns an error: anything other than 200, 402 or 404
// is reported as StatusFailed with Err set.
func (c *Client) CheckAccess(ctx context.Context, contentID string) CheckResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.accessURL(contentID, ""), nil)
	if err != nil {
		return CheckResult{Err: err}
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return CheckResult{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload models.AccessPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return CheckResult{Err: fmt.Errorf("decoding payload: %w", err)}
		}
		return CheckResult{Status: StatusUnlocked, Payload: &payload}
	case http.StatusPaymentRequired:
		var pr models.PaymentRequired
		if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
			return CheckResult{Err: fmt.Errorf("decoding payment instructions: %w", err)}
		}
		return CheckResult{Status: StatusLocked, PaymentRequired: &pr}
	case http.StatusNotFound:
		return CheckResult{Status: StatusNotFound}
	default:
		return CheckResult{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}

// RedeemProof exchanges a payment proof for the access cookie.
func (c *Client) RedeemProof(ctx context.Context, contentID, proof string) error {
	body, err := json.Marshal(models.GrantRequest{Proof: proof})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accessURL(contentID, "/grant"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrGrantRejected, resp.StatusCode)
	}
	return nil
}
