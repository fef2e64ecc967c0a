// Package types holds the data model shared between the extraction pipeline,
// the analyzers, and the API layer. JSON tags follow the wire shape the web
// client consumes.
package types

import (
	"time"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
)

// CookieSignals describes cookie banner, consent, and cookie-type findings
// derived from the raw homepage HTML. Never mutated after extraction.
type CookieSignals struct {
	// HasCookieBanner is true when a known banner marker appears in the markup
	HasCookieBanner bool `json:"hasCookieBanner"`
	// HasCookieConsent is true when an accept/agree consent phrase appears
	HasCookieConsent bool `json:"hasCookieConsent"`
	// CookieTypes lists the cookie-type categories mentioned on the page
	CookieTypes []string `json:"cookieTypes"`
	// ConsentMechanism names the consent-management platform, if one was detected
	ConsentMechanism string `json:"consentMechanism,omitempty"`
}

// TrackingSignals lists the third-party tracking and data-collection tooling
// detected on the homepage. Each list is deduplicated and ordered by the
// pattern catalog's iteration order.
type TrackingSignals struct {
	Analytics      []string `json:"analytics"`
	Advertising    []string `json:"advertising"`
	SocialMedia    []string `json:"socialMedia"`
	DataCollection []string `json:"dataCollection"`
	// Technologies holds wappalyzer fingerprinting results, sorted by name
	Technologies []string `json:"technologies,omitempty"`
}

// CopyrightSignals describes copyright notice findings.
type CopyrightSignals struct {
	HasCopyright         bool `json:"hasCopyright"`
	HasAllRightsReserved bool `json:"hasAllRightsReserved"`
	// CopyrightYear is the 4-digit year adjacent to a copyright marker, if any
	CopyrightYear string `json:"copyrightYear,omitempty"`
	// Details holds ordered human-readable findings, including footer provenance
	Details []string `json:"details"`
}

// Discovery methods recorded on a found legal page.
const (
	// DiscoveryHyperlink marks pages found via a homepage hyperlink
	DiscoveryHyperlink = "hyperlink"
	// DiscoveryPath marks pages found by probing a conventional fallback path
	DiscoveryPath = "path"
)

// LegalPageEntry is the per-category legal page outcome. Found transitions to
// true at most once per scan; the first accepted fetch wins.
type LegalPageEntry struct {
	Found bool   `json:"found"`
	URL   string `json:"url,omitempty"`
	// Text is the bounded cleaned page text, carried to the analyzer only
	Text string `json:"text,omitempty"`
	// DiscoveryMethod is DiscoveryHyperlink or DiscoveryPath
	DiscoveryMethod string `json:"discoveryMethod,omitempty"`
}

// LegalPageSummary is the transport form of a LegalPageEntry with the page
// text stripped.
type LegalPageSummary struct {
	Found bool   `json:"found"`
	URL   string `json:"url,omitempty"`
}

// SiteContext carries the caller-declared site characteristics the analyzer
// uses to scope which compliance rules apply. The pipeline only forwards it.
type SiteContext struct {
	HasPayments          bool `json:"hasPayments"`
	CollectsPersonalData bool `json:"collectsPersonalData"`
	UsesTracking         bool `json:"usesTracking"`
	HasUserAccounts      bool `json:"hasUserAccounts"`
	TargetsEU            bool `json:"targetsEU"`
	TargetsUSA           bool `json:"targetsUSA"`
	HasChildrenContent   bool `json:"hasChildrenContent"`
}

// DefaultSiteContext returns the assumptions used when the caller does not
// declare site characteristics: a data-collecting, tracking site serving both
// EU and US visitors.
func DefaultSiteContext() SiteContext {
	return SiteContext{
		CollectsPersonalData: true,
		UsesTracking:         true,
		TargetsEU:            true,
		TargetsUSA:           true,
	}
}

// Bundle is the structured evidence aggregate handed to the analyzer. Each
// scan allocates its own bundle; it is never shared across scans.
type Bundle struct {
	// Domain is the validated input domain
	Domain string
	// URL is the winning homepage URL
	URL string
	// Text is the bounded cleaned homepage text
	Text string
	// TextLength is min(raw cleaned length, bound), in characters
	TextLength int
	CookieInfo    CookieSignals
	TrackingInfo  TrackingSignals
	CopyrightInfo CopyrightSignals
	// LegalPages holds one entry per category, found or not
	LegalPages map[patterns.Category]LegalPageEntry
	// Site carries the caller-declared site characteristics
	Site SiteContext
	// Elapsed is the wall-clock pipeline time up to analysis
	Elapsed time.Duration
}

// Analysis source tags.
const (
	// SourceModel marks a verdict produced by the language model
	SourceModel = "model"
	// SourceHeuristic marks a verdict produced by the local regex heuristic
	SourceHeuristic = "heuristic"
)

// Analysis is the structured compliance verdict returned by an analyzer.
type Analysis struct {
	RiskLevel    string   `json:"risk_level"`
	Summary      string   `json:"summary"`
	PersonalData []string `json:"personal_data"`
	DataLeaks    []string `json:"data_leaks"`
	LegalIssues  []string `json:"legal_issues"`
	// Source is SourceModel or SourceHeuristic
	Source string `json:"source"`
}

// ScanReport is the final response assembled after analysis. Legal page text
// is trimmed to found/url for transport.
type ScanReport struct {
	Success       bool                        `json:"success"`
	Domain        string                      `json:"domain"`
	URL           string                      `json:"url"`
	ScanTime      string                      `json:"scanTime"`
	TextAnalyzed  int                         `json:"textAnalyzed"`
	Analysis      *Analysis                   `json:"analysis"`
	LegalPages    map[string]LegalPageSummary `json:"legalPages"`
	CookieInfo    CookieSignals               `json:"cookieInfo"`
	TrackingInfo  TrackingSignals             `json:"trackingInfo"`
	CopyrightInfo CopyrightSignals            `json:"copyrightInfo"`
	SiteOptions   SiteContext                 `json:"siteOptions"`
	ScannedAt     string                      `json:"scannedAt"`
}
