package extract

import (
	"strings"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

// Tracking scans raw HTML for analytics, advertising, and social media
// fingerprints plus behavioral data-collection indicators. Each tool name is
// added once, in catalog order.
func Tracking(html string) types.TrackingSignals {
	lower := strings.ToLower(html)

	signals := types.TrackingSignals{
		Analytics:      matchFingerprints(lower, patterns.Analytics),
		Advertising:    matchFingerprints(lower, patterns.Advertising),
		SocialMedia:    matchFingerprints(lower, patterns.Social),
		DataCollection: matchFingerprints(lower, patterns.DataCollection),
	}

	return signals
}

// matchFingerprints returns the names whose any substring appears in the
// lower-cased HTML, preserving catalog order and never duplicating a name.
func matchFingerprints(lower string, fingerprints []patterns.Fingerprint) []string {
	matched := []string{}
	seen := make(map[string]struct{}, len(fingerprints))

	for _, fp := range fingerprints {
		if _, dup := seen[fp.Name]; dup {
			continue
		}

		if containsAny(lower, fp.Substrings) {
			seen[fp.Name] = struct{}{}
			matched = append(matched, fp.Name)
		}
	}

	return matched
}
