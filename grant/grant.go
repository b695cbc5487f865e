package grant

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidGrant    = errors.New("grant: invalid token")
	ErrSubjectMismatch = errors.New("grant: issued for another content item")
	ErrGrantExpired    = errors.New("grant: expired")
)

const DefaultTTL = 7 * 24 * time.Hour

// Clock allows deterministic expiry in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Grant asserts that a payment was completed for one content item.
type Grant struct {
	ContentID string
	Proof     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Token     string
}

type claims struct {
	Proof string `json:"proof"`
	jwt.StandardClaims
}

// Issuer signs and checks grants. Grants are held by the client only.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

func NewIssuer(secret []byte, ttl time.Duration, clock Clock) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("grant: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Issuer{secret: secret, ttl: ttl, clock: clock}, nil
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue mints a grant for contentID. Issuing again for the same item simply
// yields a new grant with a fresh validity window.
func (i *Issuer) Issue(contentID, proof string) (Grant, error) {
	now := i.clock.Now()
	expires := now.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Proof: proof,
		StandardClaims: jwt.StandardClaims{
			Subject:   contentID,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return Grant{}, fmt.Errorf("grant: signing: %w", err)
	}

	return Grant{
		ContentID: contentID,
		Proof:     proof,
		IssuedAt:  time.Unix(now.Unix(), 0).UTC(),
		ExpiresAt: time.Unix(expires.Unix(), 0).UTC(),
		Token:     signed,
	}, nil
}

// Verify checks the signature, the subject and the validity window of
// token against contentID.
func (i *Issuer) Verify(contentID, token string) (Grant, error) {
	if token == "" {
		return Grant{}, ErrInvalidGrant
	}

	// expiry is checked below against the injected clock
	parser := &jwt.Parser{SkipClaimsValidation: true}
	var c claims
	parsed, err := parser.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Grant{}, ErrInvalidGrant
	}

	if c.Subject != contentID {
		return Grant{}, ErrSubjectMismatch
	}

	g := Grant{
		ContentID: c.Subject,
		Proof:     c.Proof,
		IssuedAt:  time.Unix(c.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(c.ExpiresAt, 0).UTC(),
		Token:     token,
	}
	if c.ExpiresAt == 0 || !i.clock.Now().Before(g.ExpiresAt) {
		return Grant{}, ErrGrantExpired
	}
	return g, nil
}
