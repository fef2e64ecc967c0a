package scan

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/domain"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/fetch"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]*fetch.Result
	errs      map[string]error
	calls     []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*fetch.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if err, ok := f.errs[url]; ok {
		return nil, err
	}

	if resp, ok := f.responses[url]; ok {
		return resp, nil
	}

	return nil, &fetch.Error{Kind: fetch.KindPageNotFound, URL: url, StatusCode: 404}
}

func (f *fakeFetcher) called(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, call := range f.calls {
		if call == url {
			return true
		}
	}

	return false
}

type fakeAnalyzer struct {
	analysis *types.Analysis
	err      error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ *types.Bundle) (*types.Analysis, error) {
	return f.analysis, f.err
}

func homepageHTML(extra string) string {
	return `<html><head><title>Example Shop</title></head><body><main>` +
		strings.Repeat("Welcome to our store where we sell things and respect your privacy. ", 10) +
		`</main>` + extra + `<footer>© 2024 Example Shop. All rights reserved.</footer></body></html>`
}

func legalHTML(topic string) string {
	return `<html><head><title>` + topic + `</title></head><body>` +
		strings.Repeat("This "+topic+" explains how we handle personal data and your rights. ", 15) +
		`</body></html>`
}

func newTestScanner(t *testing.T, fetcher Fetcher, opts ...Option) *Scanner {
	t.Helper()

	opts = append([]Option{WithFetcher(fetcher), WithLegalFetcher(fetcher)}, opts...)

	scanner, err := New(opts...)
	require.NoError(t, err)

	return scanner
}

func TestScanFallsThroughCandidatesInOrder(t *testing.T) {
	t.Parallel()

	dnsErr := &fetch.Error{
		Kind: fetch.KindDomainNotFound,
		URL:  "https://example.com",
		Err:  &net.DNSError{Err: "no such host", Name: "example.com"},
	}

	fetcher := &fakeFetcher{
		errs: map[string]error{
			"https://example.com": dnsErr,
		},
		responses: map[string]*fetch.Result{
			"https://www.example.com": {Body: homepageHTML(""), FinalURL: "https://www.example.com", StatusCode: 200},
		},
	}

	scanner := newTestScanner(t, fetcher)

	report, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", fetcher.calls[0])
	assert.Equal(t, "https://www.example.com", fetcher.calls[1])
	assert.Equal(t, "https://www.example.com", report.URL)
	assert.True(t, report.Success)
}

func TestScanUnreachableDomainMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lastKind fetch.Kind
		expected string
	}{
		{name: "dns failure", lastKind: fetch.KindDomainNotFound, expected: `Domain "example.com" not found`},
		{name: "timeout", lastKind: fetch.KindTimeout, expected: `timed out`},
		{name: "refused", lastKind: fetch.KindConnectionRefused, expected: `Connection refused by "example.com"`},
		{name: "forbidden", lastKind: fetch.KindForbidden, expected: `Access forbidden to "example.com"`},
		{name: "not found page", lastKind: fetch.KindPageNotFound, expected: `Page not found on "example.com"`},
		{name: "generic", lastKind: fetch.KindGeneric, expected: `Could not fetch "example.com"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			errs := map[string]error{}
			for _, url := range []string{"https://example.com", "https://www.example.com", "http://example.com", "http://www.example.com"} {
				errs[url] = &fetch.Error{Kind: tc.lastKind, URL: url, Err: errors.New("boom")}
			}

			scanner := newTestScanner(t, &fakeFetcher{errs: errs})

			_, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}

func TestScanInsufficientContent(t *testing.T) {
	t.Parallel()

	thin := &fetch.Result{Body: "<html><body><script>app()</script></body></html>", StatusCode: 200}

	fetcher := &fakeFetcher{
		responses: map[string]*fetch.Result{
			"https://example.com":     thin,
			"https://www.example.com": thin,
			"http://example.com":      thin,
			"http://www.example.com":  thin,
		},
	}

	scanner := newTestScanner(t, fetcher)

	_, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meaningful text content")

	// all four candidates were tried and no legal page probes followed
	assert.Len(t, fetcher.calls, 4)
}

func TestScanThinContentAfterFetchFailure(t *testing.T) {
	t.Parallel()

	thin := &fetch.Result{Body: "<html><body><script>app()</script></body></html>", StatusCode: 200}

	fetcher := &fakeFetcher{
		errs: map[string]error{
			"https://example.com": &fetch.Error{Kind: fetch.KindConnectionRefused, URL: "https://example.com", Err: errors.New("boom")},
		},
		responses: map[string]*fetch.Result{
			"https://www.example.com": thin,
			"http://example.com":      thin,
			"http://www.example.com":  thin,
		},
	}

	scanner := newTestScanner(t, fetcher)

	_, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meaningful text content")
	assert.NotContains(t, err.Error(), "refused")
}

func TestScanInvalidDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "spaces", input: "not a domain"},
		{name: "bare public suffix", input: "co.uk"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fetcher := &fakeFetcher{}
			scanner := newTestScanner(t, fetcher)

			_, err := scanner.Scan(context.Background(), tc.input, types.DefaultSiteContext())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDomainFormat)
			assert.Empty(t, fetcher.calls)
		})
	}
}

func TestScanFindsLegalPageViaHyperlink(t *testing.T) {
	t.Parallel()

	home := homepageHTML(`<a href="/legal/privacy">Privacy Policy</a>`)

	fetcher := &fakeFetcher{
		responses: map[string]*fetch.Result{
			"https://example.com":               {Body: home, FinalURL: "https://example.com", StatusCode: 200},
			"https://example.com/legal/privacy": {Body: legalHTML("privacy policy"), FinalURL: "https://example.com/legal/privacy", StatusCode: 200},
		},
	}

	scanner := newTestScanner(t, fetcher)

	report, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
	require.NoError(t, err)

	privacy := report.LegalPages["privacy"]
	assert.True(t, privacy.Found)
	assert.Equal(t, "https://example.com/legal/privacy", privacy.URL)

	terms := report.LegalPages["terms"]
	assert.False(t, terms.Found)
}

func TestScanFindsLegalPageViaPathProbe(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		responses: map[string]*fetch.Result{
			"https://example.com":         {Body: homepageHTML(""), FinalURL: "https://example.com", StatusCode: 200},
			"https://example.com/privacy": {Body: legalHTML("privacy policy"), FinalURL: "https://example.com/privacy", StatusCode: 200},
		},
	}

	scanner := newTestScanner(t, fetcher)

	report, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
	require.NoError(t, err)

	privacy := report.LegalPages["privacy"]
	assert.True(t, privacy.Found)
	assert.Equal(t, "https://example.com/privacy", privacy.URL)
}

func TestScanHyperlinkBeatsPathProbe(t *testing.T) {
	t.Parallel()

	home := homepageHTML(`<a href="/legal/privacy">Privacy Policy</a>`)

	fetcher := &fakeFetcher{
		responses: map[string]*fetch.Result{
			"https://example.com":               {Body: home, FinalURL: "https://example.com", StatusCode: 200},
			"https://example.com/legal/privacy": {Body: legalHTML("privacy policy"), StatusCode: 200},
			"https://example.com/privacy":       {Body: legalHTML("privacy policy"), StatusCode: 200},
		},
	}

	scanner := newTestScanner(t, fetcher)

	report, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/legal/privacy", report.LegalPages["privacy"].URL)
	assert.False(t, fetcher.called("https://example.com/privacy"))
}

func TestScanRejectsThinLegalPages(t *testing.T) {
	t.Parallel()

	home := homepageHTML(`<a href="/privacy">Privacy Policy</a>`)
	stub := `<html><body><script>` + strings.Repeat("x", 600) + `</script><p>Not found</p></body></html>`

	fetcher := &fakeFetcher{
		responses: map[string]*fetch.Result{
			"https://example.com": {Body: home, FinalURL: "https://example.com", StatusCode: 200},
			// body clears the byte threshold but cleans to almost nothing
			"https://example.com/privacy": {Body: stub, StatusCode: 200},
		},
	}

	scanner := newTestScanner(t, fetcher)

	report, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
	require.NoError(t, err)

	assert.False(t, report.LegalPages["privacy"].Found)
}

func TestScanUsesHeuristicWhenAnalyzerFails(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		responses: map[string]*fetch.Result{
			"https://example.com": {Body: homepageHTML(""), FinalURL: "https://example.com", StatusCode: 200},
		},
	}

	failing := &fakeAnalyzer{err: errors.New("model unavailable")}

	scanner := newTestScanner(t, fetcher, WithAnalyzer(failing))

	report, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
	require.NoError(t, err)

	require.NotNil(t, report.Analysis)
	assert.Equal(t, types.SourceHeuristic, report.Analysis.Source)
}

func TestScanUsesAnalyzerVerdict(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		responses: map[string]*fetch.Result{
			"https://example.com": {Body: homepageHTML(""), FinalURL: "https://example.com", StatusCode: 200},
		},
	}

	verdict := &types.Analysis{
		RiskLevel:    "Low",
		Summary:      "All good",
		PersonalData: []string{},
		DataLeaks:    []string{},
		LegalIssues:  []string{},
		Source:       types.SourceModel,
	}

	scanner := newTestScanner(t, fetcher, WithAnalyzer(&fakeAnalyzer{analysis: verdict}))

	report, err := scanner.Scan(context.Background(), "example.com", types.DefaultSiteContext())
	require.NoError(t, err)

	assert.Equal(t, verdict, report.Analysis)
}

func TestScanReportShape(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		responses: map[string]*fetch.Result{
			"https://example.com": {Body: homepageHTML(""), FinalURL: "https://example.com", StatusCode: 200},
		},
	}

	scanner := newTestScanner(t, fetcher)

	report, err := scanner.Scan(context.Background(), "EXAMPLE.com", types.DefaultSiteContext())
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, "example.com", report.Domain)
	assert.Regexp(t, regexp.MustCompile(`^\d+\.\d{2}s$`), report.ScanTime)
	assert.NotEmpty(t, report.ScannedAt)
	assert.Positive(t, report.TextAnalyzed)
	assert.True(t, report.CopyrightInfo.HasCopyright)

	assert.Len(t, report.LegalPages, len(patterns.Categories))
	for _, category := range patterns.Categories {
		_, ok := report.LegalPages[string(category)]
		assert.True(t, ok, "missing category %s", category)
	}
}
