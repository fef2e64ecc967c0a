// Package domain validates and normalizes the domain string a scan operates
// on. Validation happens before any network call is made.
package domain

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// shapePattern is the basic label.tld shape check: one hostname label followed
// by a 2+ letter top-level label.
var shapePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]?\.[a-zA-Z]{2,}$`)

// Info contains parsed domain information.
type Info struct {
	Domain    string `json:"domain"`
	Subdomain string `json:"subdomain,omitempty"`
	TLD       string `json:"tld"`
	SLD       string `json:"sld"`
}

// Normalize strips a scheme prefix and trailing slash from the input and
// validates the remaining string against the basic domain shape. Returns the
// cleaned domain or ErrInvalidDomainFormat; no network is involved.
func Normalize(input string) (string, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.TrimPrefix(cleaned, "https://")
	cleaned = strings.TrimPrefix(cleaned, "http://")
	cleaned = strings.TrimSuffix(cleaned, "/")
	cleaned = strings.ToLower(cleaned)

	if cleaned == "" || !strings.Contains(cleaned, ".") {
		return "", ErrInvalidDomainFormat
	}

	// The strict shape check only admits label.tld; domains with more labels
	// pass on the dot requirement alone.
	if !shapePattern.MatchString(cleaned) && strings.Count(cleaned, ".") == 1 {
		return "", ErrInvalidDomainFormat
	}

	return cleaned, nil
}

// FromEmail extracts the domain part of an email address.
func FromEmail(email string) (string, error) {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[1] == "" {
		return "", ErrInvalidEmailFormat
	}

	return parts[1], nil
}

// Parse normalizes the input and breaks it into its public-suffix components.
func Parse(input string) (*Info, error) {
	cleaned, err := Normalize(input)
	if err != nil {
		return nil, err
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomainFormat, err)
	}

	tld, _ := publicsuffix.PublicSuffix(cleaned)
	sld := strings.TrimSuffix(etld1, "."+tld)

	subdomain := ""
	if etld1 != cleaned {
		subdomain = strings.TrimSuffix(cleaned, "."+etld1)
	}

	return &Info{
		Domain:    cleaned,
		Subdomain: subdomain,
		TLD:       tld,
		SLD:       sld,
	}, nil
}
