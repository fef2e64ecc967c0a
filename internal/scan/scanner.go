package scan

import (
	"context"
	"fmt"
	"time"
	"unicode"

	wappalyzer "github.com/projectdiscovery/wappalyzergo"
	"github.com/rs/zerolog/log"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/analyzer"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/domain"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/extract"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/fetch"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

const (
	// homepageTimeout bounds each candidate homepage fetch
	homepageTimeout = 20 * time.Second
	// legalTimeout bounds each legal page probe
	legalTimeout = 10 * time.Second

	homepageRedirects = 10
	legalRedirects    = 5
)

// Fetcher retrieves a single URL. A failed fetch returns a *fetch.Error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, error)
}

// Analyzer produces a compliance verdict from a gathered scan bundle
type Analyzer interface {
	Analyze(ctx context.Context, bundle *types.Bundle) (*types.Analysis, error)
}

// Options holds the configurable fields for a Scanner
type Options struct {
	fetcher         Fetcher
	legalFetcher    Fetcher
	analyzer        Analyzer
	heuristic       Analyzer
	preservedScript *unicode.RangeTable
}

// Option is a functional option for configuring a Scanner
type Option func(*Options)

// WithFetcher sets the homepage fetcher
func WithFetcher(fetcher Fetcher) Option {
	return func(o *Options) {
		o.fetcher = fetcher
	}
}

// WithLegalFetcher sets the fetcher used for legal page probes
func WithLegalFetcher(fetcher Fetcher) Option {
	return func(o *Options) {
		o.legalFetcher = fetcher
	}
}

// WithAnalyzer sets the primary analyzer. When unset, or when the analyzer
// fails, the heuristic fallback produces the verdict.
func WithAnalyzer(a Analyzer) Option {
	return func(o *Options) {
		o.analyzer = a
	}
}

// WithHeuristic overrides the fallback analyzer
func WithHeuristic(a Analyzer) Option {
	return func(o *Options) {
		o.heuristic = a
	}
}

// WithPreservedScript keeps an additional Unicode script through text
// normalization, for sites whose content is not Latin-script
func WithPreservedScript(table *unicode.RangeTable) Option {
	return func(o *Options) {
		o.preservedScript = table
	}
}

// Scanner runs the full compliance pipeline for a domain
type Scanner struct {
	fetcher         Fetcher
	legalFetcher    Fetcher
	analyzer        Analyzer
	heuristic       Analyzer
	normalizer      *extract.Normalizer
	legalNormalizer *extract.Normalizer
	tech            *wappalyzer.Wappalyze
}

// New creates a Scanner with the given options applied over defaults
func New(opts ...Option) (*Scanner, error) {
	options := &Options{}

	for _, opt := range opts {
		opt(options)
	}

	if options.fetcher == nil {
		fetcher, err := fetch.New(fetch.WithTimeout(homepageTimeout), fetch.WithMaxRedirects(homepageRedirects))
		if err != nil {
			return nil, err
		}

		options.fetcher = fetcher
	}

	if options.legalFetcher == nil {
		fetcher, err := fetch.New(fetch.WithTimeout(legalTimeout), fetch.WithMaxRedirects(legalRedirects))
		if err != nil {
			return nil, err
		}

		options.legalFetcher = fetcher
	}

	if options.heuristic == nil {
		options.heuristic = analyzer.NewHeuristic()
	}

	var normalizerOpts []extract.Option
	if options.preservedScript != nil {
		normalizerOpts = append(normalizerOpts, extract.WithPreservedScript(options.preservedScript))
	}

	tech, err := wappalyzer.New()
	if err != nil {
		log.Warn().Err(err).Msg("technology fingerprinting unavailable")
	}

	return &Scanner{
		fetcher:         options.fetcher,
		legalFetcher:    options.legalFetcher,
		analyzer:        options.analyzer,
		heuristic:       options.heuristic,
		normalizer:      extract.NewNormalizer(normalizerOpts...),
		legalNormalizer: extract.NewLegalNormalizer(normalizerOpts...),
		tech:            tech,
	}, nil
}

// Scan validates the input domain, fetches and analyzes its homepage and
// legal pages, and assembles the final report
func (s *Scanner) Scan(ctx context.Context, rawDomain string, site types.SiteContext) (*types.ScanReport, error) {
	info, err := domain.Parse(rawDomain)
	if err != nil {
		return nil, err
	}

	cleaned := info.Domain

	started := time.Now()

	log.Info().Str("domain", cleaned).Msg("starting compliance scan")

	page, err := s.fetchHomepage(ctx, cleaned)
	if err != nil {
		log.Warn().Err(err).Str("domain", cleaned).Msg("homepage unreachable")

		return nil, err
	}

	bundle := &types.Bundle{
		Domain:        cleaned,
		URL:           page.url,
		Text:          page.doc.Text,
		TextLength:    page.doc.TextLength,
		CookieInfo:    page.cookieInfo,
		TrackingInfo:  page.trackingInfo,
		CopyrightInfo: page.copyrightInfo,
		Site:          site,
	}

	bundle.LegalPages = s.resolveLegalPages(ctx, page.url, page.body)
	bundle.Elapsed = time.Since(started)

	analysis := s.analyze(ctx, bundle)

	report := &types.ScanReport{
		Success:       true,
		Domain:        cleaned,
		URL:           page.url,
		ScanTime:      formatScanTime(time.Since(started)),
		TextAnalyzed:  bundle.TextLength,
		Analysis:      analysis,
		LegalPages:    summarizeLegalPages(bundle.LegalPages),
		CookieInfo:    bundle.CookieInfo,
		TrackingInfo:  bundle.TrackingInfo,
		CopyrightInfo: bundle.CopyrightInfo,
		SiteOptions:   site,
		ScannedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	log.Info().
		Str("domain", cleaned).
		Str("risk_level", analysis.RiskLevel).
		Str("source", analysis.Source).
		Dur("elapsed", time.Since(started)).
		Msg("compliance scan complete")

	return report, nil
}

// analyze runs the primary analyzer and falls back to the heuristic verdict
// on any failure, so a scan that got this far always produces a verdict
func (s *Scanner) analyze(ctx context.Context, bundle *types.Bundle) *types.Analysis {
	if s.analyzer != nil {
		analysis, err := s.analyzer.Analyze(ctx, bundle)
		if err == nil {
			return analysis
		}

		log.Warn().Err(err).Str("domain", bundle.Domain).Msg("model analysis failed, using heuristic fallback")
	}

	analysis, _ := s.heuristic.Analyze(ctx, bundle)

	return analysis
}

// summarizeLegalPages strips page text from the entries for transport
func summarizeLegalPages(pages map[patterns.Category]types.LegalPageEntry) map[string]types.LegalPageSummary {
	summaries := make(map[string]types.LegalPageSummary, len(pages))

	for category, entry := range pages {
		summaries[string(category)] = types.LegalPageSummary{Found: entry.Found, URL: entry.URL}
	}

	return summaries
}

// formatScanTime renders the elapsed wall-clock time as seconds with two
// decimal places
func formatScanTime(elapsed time.Duration) string {
	return fmt.Sprintf("%.2fs", elapsed.Seconds())
}
