// Package consent reads and writes the analytics consent cookie.
package consent

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"
)

const (
	CookieName = "pd_consent_v1"
	Version    = "v1"
	maxAge     = 365 * 24 * time.Hour
)

type Choice string

const (
	Accepted Choice = "accepted"
	Declined Choice = "declined"
)

var ErrInvalidChoice = errors.New("consent: choice must be accepted or declined")

// ParseChoice accepts only the two stored choices.
func ParseChoice(s string) (Choice, error) {
	switch c := Choice(s); c {
	case Accepted, Declined:
		return c, nil
	}
	return "", ErrInvalidChoice
}

// Data is the cookie payload. Timestamp is in Unix milliseconds.
type Data struct {
	Choice    Choice `json:"choice"`
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
}

// FromRequest decodes the consent cookie. A missing, unreadable or
// outdated cookie reports ok=false.
func FromRequest(r *http.Request) (Data, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Data{}, false
	}
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return Data{}, false
	}
	var d Data
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Data{}, false
	}
	if d.Version != Version {
		return Data{}, false
	}
	return d, true
}

func HasAnalyticsConsent(r *http.Request) bool {
	d, ok := FromRequest(r)
	return ok && d.Choice == Accepted
}

func ShouldShowBanner(r *http.Request) bool {
	_, ok := FromRequest(r)
	return !ok
}

// NewCookie builds the cookie that stores choice for one year.
func NewCookie(choice Choice, now time.Time) (*http.Cookie, error) {
	b, err := json.Marshal(Data{
		Choice:    choice,
		Version:   Version,
		Timestamp: now.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(b)),
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Expires:  now.Add(maxAge),
		SameSite: http.SameSiteLaxMode,
	}, nil
}
