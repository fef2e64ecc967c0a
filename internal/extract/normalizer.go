// Package extract turns raw, untrusted HTML into bounded cleaned text and
// signal structures. Extraction never fails: garbage in yields empty or short
// output, which callers interpret as insufficient content.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
)

const (
	// defaultMaxTextLength bounds cleaned homepage text
	defaultMaxTextLength = 8000
	// defaultLegalMaxTextLength bounds cleaned legal page text
	defaultLegalMaxTextLength = 15000
	// defaultMinContentLength is the threshold a content-region candidate must
	// beat before it is preferred over the whole body
	defaultMinContentLength = 200
)

// homepageStripSelector removes markup that never carries user-relevant prose,
// plus hidden elements.
const homepageStripSelector = "script, style, noscript, iframe, svg, nav, footer, header, aside, form"

// legalStripSelector is the lighter strip set for legal pages, where footers
// and headers are dropped but asides and forms may hold policy text.
const legalStripSelector = "script, style, noscript, nav, footer, header"

// hiddenSelector matches elements hidden via inline style or attributes.
const hiddenSelector = `[style*="display:none"], [style*="display: none"], .hidden, [hidden]`

// whitespaceRun collapses any whitespace run, newlines included, to one space.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Document is the result of normalizing one fetched page.
type Document struct {
	// Text is the cleaned, bounded page text
	Text string
	// TextLength is min(raw cleaned length, bound), in runes
	TextLength int
	// Truncated reports whether the bound cut the text
	Truncated bool
	// SourceURL is the URL the page was fetched from, set by the caller
	SourceURL string
}

// Normalizer cleans raw HTML into bounded text. The zero value is not usable;
// construct via NewNormalizer or NewLegalNormalizer.
type Normalizer struct {
	maxLength        int
	minContentLength int
	stripSelector    string
	selectors        []string
	includeMetadata  bool
	preserved        *unicode.RangeTable
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMaxLength sets the output length bound in runes.
func WithMaxLength(n int) Option {
	return func(nn *Normalizer) {
		if n > 0 {
			nn.maxLength = n
		}
	}
}

// WithMinContentLength sets the minimum text length a content-region
// candidate must exceed to be selected.
func WithMinContentLength(n int) Option {
	return func(nn *Normalizer) {
		if n > 0 {
			nn.minContentLength = n
		}
	}
}

// WithPreservedScript keeps one additional Unicode script block through the
// character filter on top of printable ASCII, e.g. unicode.Hebrew for sites
// that localize their copy. Nil preserves nothing extra.
func WithPreservedScript(table *unicode.RangeTable) Option {
	return func(nn *Normalizer) {
		nn.preserved = table
	}
}

// NewNormalizer returns the homepage profile: content-region selection,
// title/meta-description prepend, 8000-rune bound.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		maxLength:        defaultMaxTextLength,
		minContentLength: defaultMinContentLength,
		stripSelector:    homepageStripSelector,
		selectors:        patterns.ContentSelectors,
		includeMetadata:  true,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// NewLegalNormalizer returns the legal page profile: body text only, lighter
// strip set, 15000-rune bound.
func NewLegalNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		maxLength:        defaultLegalMaxTextLength,
		minContentLength: defaultMinContentLength,
		stripSelector:    legalStripSelector,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Normalize extracts cleaned, bounded text from raw HTML. It is total: any
// input yields a Document, empty when nothing extractable remains.
func (n *Normalizer) Normalize(html string) Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Document{}
	}

	// Metadata is read before stripping since meta tags are removed below.
	var title, metaDesc, ogDesc string
	if n.includeMetadata {
		title = strings.TrimSpace(doc.Find("title").First().Text())
		metaDesc = doc.Find(`meta[name="description"]`).AttrOr("content", "")
		ogDesc = doc.Find(`meta[property="og:description"]`).AttrOr("content", "")
	}

	doc.Find(n.stripSelector).Remove()
	doc.Find(hiddenSelector).Remove()
	doc.Find("meta, link").Remove()

	text := n.selectContent(doc)

	full := text
	if n.includeMetadata {
		full = title + "\n" + metaDesc + "\n" + ogDesc + "\n" + text
	}

	cleaned := n.clean(full)

	runes := []rune(cleaned)
	truncated := false

	if len(runes) > n.maxLength {
		runes = runes[:n.maxLength]
		truncated = true
		cleaned = strings.TrimSpace(string(runes))
		runes = []rune(cleaned)
	}

	return Document{
		Text:       cleaned,
		TextLength: len(runes),
		Truncated:  truncated,
	}
}

// selectContent tries the semantic content selectors in priority order and
// falls back to the whole body when none beats the minimum threshold.
func (n *Normalizer) selectContent(doc *goquery.Document) string {
	for _, selector := range n.selectors {
		candidate := doc.Find(selector).Text()
		if len(strings.TrimSpace(candidate)) > n.minContentLength {
			return candidate
		}
	}

	return doc.Find("body").Text()
}

// clean filters the text to the allowed character set and collapses
// whitespace. Filtering happens first so removed runes cannot leave doubled
// spaces behind, which keeps the function idempotent on its own output.
func (n *Normalizer) clean(s string) string {
	filtered := strings.Map(func(r rune) rune {
		switch {
		case r >= 0x20 && r <= 0x7e:
			return r
		case r == '\n' || r == '\t' || r == '\r':
			return r
		case n.preserved != nil && unicode.Is(n.preserved, r):
			return r
		default:
			return -1
		}
	}, s)

	collapsed := whitespaceRun.ReplaceAllString(filtered, " ")

	return strings.TrimSpace(collapsed)
}
