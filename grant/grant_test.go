package grant

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paywall-backend/testutils"
)

var epoch = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func newIssuer(t *testing.T, clock Clock) *Issuer {
	t.Helper()
	issuer, err := NewIssuer([]byte("test-secret"), DefaultTTL, clock)
	require.NoError(t, err)
	return issuer
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	_, err := NewIssuer(nil, time.Hour, nil)
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	clock := testutils.NewFakeClock(epoch)
	issuer := newIssuer(t, clock)

	g, err := issuer.Issue("content-1", "tx1")
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(7*24*time.Hour), g.ExpiresAt)

	got, err := issuer.Verify("content-1", g.Token)
	require.NoError(t, err)
	assert.Equal(t, "content-1", got.ContentID)
	assert.Equal(t, "tx1", got.Proof)
	assert.Equal(t, epoch, got.IssuedAt)
}

func TestVerify_ExpiresAtTTL(t *testing.T) {
	clock := testutils.NewFakeClock(epoch)
	issuer := newIssuer(t, clock)
	g, err := issuer.Issue("content-1", "tx1")
	require.NoError(t, err)

	clock.Advance(DefaultTTL - time.Second)
	_, err = issuer.Verify("content-1", g.Token)
	assert.NoError(t, err)

	clock.Advance(time.Second)
	_, err = issuer.Verify("content-1", g.Token)
	assert.ErrorIs(t, err, ErrGrantExpired)
}

func TestVerify_ScopedToContent(t *testing.T) {
	issuer := newIssuer(t, testutils.NewFakeClock(epoch))
	g, err := issuer.Issue("content-1", "tx1")
	require.NoError(t, err)

	_, err = issuer.Verify("content-2", g.Token)
	assert.ErrorIs(t, err, ErrSubjectMismatch)
}

func TestVerify_RejectsForeignSignature(t *testing.T) {
	clock := testutils.NewFakeClock(epoch)
	other, err := NewIssuer([]byte("other-secret"), DefaultTTL, clock)
	require.NoError(t, err)
	g, err := other.Issue("content-1", "tx1")
	require.NoError(t, err)

	_, err = newIssuer(t, clock).Verify("content-1", g.Token)
	assert.ErrorIs(t, err, ErrInvalidGrant)

	_, err = newIssuer(t, clock).Verify("content-1", "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidGrant)

	_, err = newIssuer(t, clock).Verify("content-1", "")
	assert.ErrorIs(t, err, ErrInvalidGrant)
}

func TestIssue_ReissueResetsWindow(t *testing.T) {
	clock := testutils.NewFakeClock(epoch)
	issuer := newIssuer(t, clock)
	first, err := issuer.Issue("content-1", "tx1")
	require.NoError(t, err)

	clock.Advance(3 * 24 * time.Hour)
	second, err := issuer.Issue("content-1", "tx1")
	require.NoError(t, err)

	assert.True(t, second.ExpiresAt.After(first.ExpiresAt))

	clock.Advance(5 * 24 * time.Hour)
	_, err = issuer.Verify("content-1", first.Token)
	assert.ErrorIs(t, err, ErrGrantExpired)
	_, err = issuer.Verify("content-1", second.Token)
	assert.NoError(t, err)
}

func TestCookies(t *testing.T) {
	issuer := newIssuer(t, testutils.NewFakeClock(epoch))
	g, err := issuer.Issue("content-1", "tx1")
	require.NoError(t, err)

	cookies := Cookies{Secure: true}
	cookie := cookies.Cookie(g)

	assert.Equal(t, "access-content-1", cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	req := httptest.NewRequest(http.MethodGet, "/access/content-1", nil)
	req.AddCookie(cookie)
	assert.Equal(t, g.Token, cookies.Token(req, "content-1"))
	assert.Empty(t, cookies.Token(req, "content-2"))
}
