package models

import (
	"errors"
	"fmt"
	"strings"
)

type ContentType string

const (
	Article ContentType = "ARTICLE"
	Video   ContentType = "VIDEO"
	Audio   ContentType = "AUDIO"
)

var ErrUnknownContentType = errors.New("unknown content type")

// ParseContentType accepts the type case-insensitively.
func ParseContentType(s string) (ContentType, error) {
	switch t := ContentType(strings.ToUpper(strings.TrimSpace(s))); t {
	case Article, Video, Audio:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownContentType, s)
	}
}

// Payload is the gated part of a content item: inline text for articles, a
// URL reference for media.
type Payload interface {
	Type() ContentType
	Data() string
}

// ArticleBody is the inline text of an ARTICLE.
type ArticleBody string

func (ArticleBody) Type() ContentType { return Article }
func (b ArticleBody) Data() string    { return string(b) }

// MediaURL references a VIDEO or AUDIO file.
type MediaURL struct {
	Kind ContentType
	URL  string
}

func (m MediaURL) Type() ContentType { return m.Kind }
func (m MediaURL) Data() string      { return m.URL }

// NewPayload picks the field that matches t and ignores the other one.
func NewPayload(t ContentType, body, url string) (Payload, error) {
	switch t {
	case Article:
		return ArticleBody(body), nil
	case Video, Audio:
		return MediaURL{Kind: t, URL: url}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, t)
	}
}
