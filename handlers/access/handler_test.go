package access

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accesssvc "paywall-backend/access"
	"paywall-backend/grant"
	"paywall-backend/middleware"
	"paywall-backend/models"
	"paywall-backend/payment"
	"paywall-backend/store"
	"paywall-backend/testutils"
)

const creatorWallet = "0x1234567890AbcdEF1234567890aBcdef12345678"

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	os.Exit(m.Run())
}

type env struct {
	router *gin.Engine
	store  *store.MemoryStore
	clock  *testutils.FakeClock
}

func newEnv(t *testing.T, verifier payment.Verifier, checkout CheckoutCreator) env {
	t.Helper()
	clock := testutils.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	issuer, err := grant.NewIssuer([]byte("secret"), grant.DefaultTTL, clock)
	require.NoError(t, err)
	s := store.NewMemoryStore()
	cookies := grant.Cookies{Prefix: grant.DefaultCookiePrefix}

	h := New(accesssvc.NewService(s, issuer, verifier), cookies, s, checkout)
	r := testutils.SetupTestRouter()
	g := r.Group("/access/:id", middleware.GrantToken(cookies))
	g.GET("", h.GetAccess)
	g.POST("/grant", h.IssueGrant)
	g.POST("/checkout", h.Checkout)

	return env{router: r, store: s, clock: clock}
}

func (e env) addContent(t *testing.T, price string) models.ContentItem {
	t.Helper()
	ctx := context.Background()
	creator, err := e.store.FindOrCreateCreator(ctx, creatorWallet)
	require.NoError(t, err)
	item := &models.ContentItem{
		Title:      "Exclusive Video",
		Type:       models.Video,
		Price:      decimal.RequireFromString(price),
		Currency:   "USDC",
		ContentURL: "https://cdn.example/v.mp4",
		CreatorID:  creator.ID,
	}
	require.NoError(t, e.store.CreateContent(ctx, item))
	return *item
}

func (e env) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func grantCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestGetAccess_NotFound(t *testing.T) {
	e := newEnv(t, nil, nil)

	w := e.do(http.MethodGet, "/access/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Content not found"}`, w.Body.String())
}

func TestGetAccess_PaymentRequired(t *testing.T) {
	e := newEnv(t, nil, nil)
	item := e.addContent(t, "5.00")

	w := e.do(http.MethodGet, "/access/"+item.ID, "")

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, creatorWallet, w.Header().Get(HeaderPaymentAddress))
	assert.Equal(t, "5", w.Header().Get(HeaderPaymentAmount))
	assert.Equal(t, "USDC", w.Header().Get(HeaderPaymentCurrency))
	assert.JSONEq(t, `{
		"error": "Payment Required",
		"payToAddress": "`+creatorWallet+`",
		"amount": "5",
		"currency": "USDC"
	}`, w.Body.String())
}

func TestGetAccess_FreeContent(t *testing.T) {
	e := newEnv(t, nil, nil)
	item := e.addContent(t, "0")

	w := e.do(http.MethodGet, "/access/"+item.ID, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"type":"VIDEO","data":"https://cdn.example/v.mp4"}`, w.Body.String())
}

func TestIssueGrant_SetsCookie(t *testing.T) {
	e := newEnv(t, nil, nil)
	item := e.addContent(t, "5.00")

	w := e.do(http.MethodPost, "/access/"+item.ID+"/grant", `{"proof":"tx1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	cookie := grantCookie(t, w)
	assert.Equal(t, "access-"+item.ID, cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}

func TestIssueGrant_EmptyBody(t *testing.T) {
	e := newEnv(t, nil, nil)
	item := e.addContent(t, "5.00")

	w := e.do(http.MethodPost, "/access/"+item.ID+"/grant", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIssueGrant_MalformedBody(t *testing.T) {
	e := newEnv(t, nil, nil)
	item := e.addContent(t, "5.00")

	w := e.do(http.MethodPost, "/access/"+item.ID+"/grant", `{"proof":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type rejectingVerifier struct{}

func (rejectingVerifier) Verify(context.Context, payment.Claim) error {
	return payment.ErrUnverifiedProof
}

func TestIssueGrant_Unverified(t *testing.T) {
	e := newEnv(t, rejectingVerifier{}, nil)
	item := e.addContent(t, "5.00")

	w := e.do(http.MethodPost, "/access/"+item.ID+"/grant", `{"proof":"forged"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAccessFlow(t *testing.T) {
	e := newEnv(t, nil, nil)
	item := e.addContent(t, "5.00")

	w := e.do(http.MethodGet, "/access/"+item.ID, "")
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	w = e.do(http.MethodPost, "/access/"+item.ID+"/grant", `{"proof":"tx1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := grantCookie(t, w)

	w = e.do(http.MethodGet, "/access/"+item.ID, "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var payload models.AccessPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, models.Video, payload.Type)
	assert.NotEmpty(t, payload.Data)

	e.clock.Advance(grant.DefaultTTL + time.Second)
	w = e.do(http.MethodGet, "/access/"+item.ID, "", cookie)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestGetAccess_CookieForOtherItem(t *testing.T) {
	e := newEnv(t, nil, nil)
	first := e.addContent(t, "5.00")
	second := e.addContent(t, "5.00")

	w := e.do(http.MethodPost, "/access/"+first.ID+"/grant", `{"proof":"tx1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := grantCookie(t, w)
	// replay the token under the second item's cookie name
	forged := &http.Cookie{Name: "access-" + second.ID, Value: cookie.Value}

	w = e.do(http.MethodGet, "/access/"+second.ID, "", forged)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

type fakeCheckout struct {
	got models.ContentItem
	err error
}

func (f *fakeCheckout) Create(_ context.Context, item models.ContentItem) (payment.Checkout, error) {
	f.got = item
	if f.err != nil {
		return payment.Checkout{}, f.err
	}
	return payment.Checkout{PaymentIntentID: "pi_1", ClientSecret: "pi_1_secret", Amount: 500, Currency: "usd"}, nil
}

func TestCheckout(t *testing.T) {
	checkout := &fakeCheckout{}
	e := newEnv(t, nil, checkout)
	item := e.addContent(t, "5.00")

	w := e.do(http.MethodPost, "/access/"+item.ID+"/checkout", "")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"paymentIntentId":"pi_1","clientSecret":"pi_1_secret","amount":500,"currency":"usd"}`, w.Body.String())
	assert.Equal(t, creatorWallet, checkout.got.Creator.WalletAddress)
}

func TestCheckout_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		e := newEnv(t, nil, nil)
		item := e.addContent(t, "5.00")
		assert.Equal(t, http.StatusNotImplemented, e.do(http.MethodPost, "/access/"+item.ID+"/checkout", "").Code)
	})

	t.Run("free content", func(t *testing.T) {
		e := newEnv(t, nil, &fakeCheckout{})
		item := e.addContent(t, "0")
		assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/access/"+item.ID+"/checkout", "").Code)
	})

	t.Run("unknown content", func(t *testing.T) {
		e := newEnv(t, nil, &fakeCheckout{})
		assert.Equal(t, http.StatusNotFound, e.do(http.MethodPost, "/access/missing/checkout", "").Code)
	})

	t.Run("stripe failure", func(t *testing.T) {
		e := newEnv(t, nil, &fakeCheckout{err: errors.New("circuit breaker is open")})
		item := e.addContent(t, "5.00")
		assert.Equal(t, http.StatusBadGateway, e.do(http.MethodPost, "/access/"+item.ID+"/checkout", "").Code)
	})
}
