package scan

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/extract"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

// minUsableTextLength is the smallest cleaned homepage text worth analyzing.
// Shorter extractions mean a JS-only shell or a block page.
const minUsableTextLength = 50

// excludedTechnologyNames lists protocol features and web standards that are
// not vendor technologies and should be excluded from results
var excludedTechnologyNames = map[string]struct{}{
	"HTTP/2":        {},
	"HTTP/3":        {},
	"HSTS":          {},
	"Open Graph":    {},
	"Twitter Cards": {},
	"Schema.org":    {},
	"JSON-LD":       {},
	"WebP":          {},
}

// homepage is the outcome of a successful homepage fetch with all signals
// extracted from the winning candidate
type homepage struct {
	url           string
	body          string
	doc           extract.Document
	cookieInfo    types.CookieSignals
	trackingInfo  types.TrackingSignals
	copyrightInfo types.CopyrightSignals
}

// fetchHomepage tries each candidate URL in order and extracts signals from
// the first one that yields usable text. Per-candidate failures only matter
// if every candidate fails, in which case the last failure shapes the error.
func (s *Scanner) fetchHomepage(ctx context.Context, cleanDomain string) (*homepage, error) {
	candidates := []string{
		fmt.Sprintf("https://%s", cleanDomain),
		fmt.Sprintf("https://www.%s", cleanDomain),
		fmt.Sprintf("http://%s", cleanDomain),
		fmt.Sprintf("http://www.%s", cleanDomain),
	}

	var (
		lastErr     error
		lastWasThin bool
	)

	for _, candidate := range candidates {
		result, err := s.fetcher.Fetch(ctx, candidate)
		if err != nil {
			log.Debug().Err(err).Str("url", candidate).Msg("homepage candidate failed")

			lastErr = err
			lastWasThin = false

			continue
		}

		doc := s.normalizer.Normalize(result.Body)

		if utf8.RuneCountInString(doc.Text) < minUsableTextLength {
			log.Debug().Str("url", candidate).Int("text_length", doc.TextLength).Msg("homepage candidate yielded too little text")

			lastWasThin = true

			continue
		}

		page := &homepage{
			url:           result.FinalURL,
			body:          result.Body,
			doc:           doc,
			cookieInfo:    extract.Cookies(result.Body),
			trackingInfo:  extract.Tracking(result.Body),
			copyrightInfo: extract.Copyright(result.Body),
		}
		page.trackingInfo.Technologies = s.detectTechnologies(result.Body)

		log.Debug().
			Str("url", page.url).
			Int("text_length", doc.TextLength).
			Bool("truncated", doc.Truncated).
			Msg("homepage candidate accepted")

		return page, nil
	}

	// The most recent failure shapes the error: a thin extraction on the last
	// reachable candidate reports insufficient content even when an earlier
	// candidate failed outright.
	if lastWasThin {
		return nil, insufficientContentError(cleanDomain)
	}

	return nil, unreachableError(cleanDomain, lastErr)
}

// detectTechnologies fingerprints the homepage body, filtering out
// non-vendor detections
func (s *Scanner) detectTechnologies(body string) []string {
	if s.tech == nil {
		return []string{}
	}

	fingerprints := s.tech.Fingerprint(http.Header{}, []byte(body))
	names := make([]string, 0, len(fingerprints))

	for name := range fingerprints {
		if _, excluded := excludedTechnologyNames[name]; excluded {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
