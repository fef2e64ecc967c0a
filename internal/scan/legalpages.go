package scan

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/extract"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

const (
	// minLegalBodyBytes filters out stub responses and soft 404 pages
	minLegalBodyBytes = 500
	// minLegalTextLength filters out pages whose cleaned text is too thin
	// to be a real policy
	minLegalTextLength = 200
)

// resolveLegalPages locates one page per legal category, probing all
// categories concurrently. Hyperlinks discovered on the homepage take
// priority over well-known path guesses.
func (s *Scanner) resolveLegalPages(ctx context.Context, baseURL, html string) map[patterns.Category]types.LegalPageEntry {
	hyperlinks := extract.LegalLinks(html, baseURL)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	pages := make(map[patterns.Category]types.LegalPageEntry, len(patterns.Categories))
	for _, category := range patterns.Categories {
		pages[category] = types.LegalPageEntry{Found: false}
	}

	for _, category := range patterns.Categories {
		wg.Add(1)

		go func(category patterns.Category) {
			defer wg.Done()

			entry := s.resolveCategory(ctx, category, baseURL, hyperlinks[category])
			if !entry.Found {
				return
			}

			mu.Lock()
			pages[category] = entry
			mu.Unlock()
		}(category)
	}

	wg.Wait()

	return pages
}

// resolveCategory tries the homepage hyperlink first, then the well-known
// paths for the category. The first usable page wins.
func (s *Scanner) resolveCategory(ctx context.Context, category patterns.Category, baseURL, hyperlink string) types.LegalPageEntry {
	if hyperlink != "" {
		if entry, ok := s.fetchLegalPage(ctx, hyperlink); ok {
			entry.DiscoveryMethod = types.DiscoveryHyperlink

			log.Debug().Str("category", string(category)).Str("url", entry.URL).Msg("legal page found via hyperlink")

			return entry
		}
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return types.LegalPageEntry{}
	}

	for _, path := range patterns.LegalPagePaths[category] {
		pageURL := fmt.Sprintf("%s://%s%s", base.Scheme, base.Host, path)

		entry, ok := s.fetchLegalPage(ctx, pageURL)
		if !ok {
			continue
		}

		entry.DiscoveryMethod = types.DiscoveryPath

		log.Debug().Str("category", string(category)).Str("url", entry.URL).Msg("legal page found via path probe")

		return entry
	}

	return types.LegalPageEntry{}
}

// fetchLegalPage retrieves a candidate legal page and accepts it only when
// both the raw body and the cleaned text clear the acceptance thresholds
func (s *Scanner) fetchLegalPage(ctx context.Context, pageURL string) (types.LegalPageEntry, bool) {
	result, err := s.legalFetcher.Fetch(ctx, pageURL)
	if err != nil {
		return types.LegalPageEntry{}, false
	}

	if len(result.Body) <= minLegalBodyBytes {
		return types.LegalPageEntry{}, false
	}

	doc := s.legalNormalizer.Normalize(result.Body)

	if utf8.RuneCountInString(doc.Text) <= minLegalTextLength {
		return types.LegalPageEntry{}, false
	}

	return types.LegalPageEntry{Found: true, URL: pageURL, Text: doc.Text}, true
}
