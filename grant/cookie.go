package grant

import (
	"net/http"
)

const DefaultCookiePrefix = "access-"

// Cookies maps grants to per-content cookies named <prefix><contentID>.
type Cookies struct {
	Prefix string
	Secure bool
}

func (c Cookies) Name(contentID string) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultCookiePrefix
	}
	return prefix + contentID
}

// Cookie renders g as an http-only, site-wide cookie living as long as the grant.
func (c Cookies) Cookie(g Grant) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name(g.ContentID),
		Value:    g.Token,
		Path:     "/",
		MaxAge:   int(g.ExpiresAt.Sub(g.IssuedAt).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Token returns the grant token presented for contentID, if any.
func (c Cookies) Token(r *http.Request, contentID string) string {
	cookie, err := r.Cookie(c.Name(contentID))
	if err != nil {
		return ""
	}
	return cookie.Value
}
