package extract

import (
	"strings"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

// Cookies scans raw HTML for cookie banner markers, consent phrases, a
// consent-management platform, and mentioned cookie-type categories. It runs
// against raw markup because banner markers live in class names and script
// URLs that normalization strips.
func Cookies(html string) types.CookieSignals {
	lower := strings.ToLower(html)

	signals := types.CookieSignals{
		CookieTypes: []string{},
	}

	for _, marker := range patterns.CookieBannerMarkers {
		if strings.Contains(lower, marker) {
			signals.HasCookieBanner = true
			break
		}
	}

	for _, phrase := range patterns.ConsentPhrases {
		if strings.Contains(lower, phrase) {
			signals.HasCookieConsent = true
			break
		}
	}

	// First vendor match wins; unmatched leaves the field empty.
	for _, platform := range patterns.ConsentPlatforms {
		if containsAny(lower, platform.Substrings) {
			signals.ConsentMechanism = platform.Name
			break
		}
	}

	for _, cookieType := range patterns.CookieTypes {
		if containsAny(lower, cookieType.Substrings) {
			signals.CookieTypes = append(signals.CookieTypes, cookieType.Name)
		}
	}

	return signals
}

// containsAny reports whether any of the substrings appears in s.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
