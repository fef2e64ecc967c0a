package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
)

// LegalLinks walks every hyperlink in the raw HTML and maps legal-page
// categories to the first link whose target or visible text matches that
// category's rule. Relative links are resolved against the page's origin.
// Categories with no matching link are absent from the result.
func LegalLinks(html, baseURL string) map[patterns.Category]string {
	links := make(map[patterns.Category]string)

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return links
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return links
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		text := strings.ToLower(sel.Text())

		for _, rule := range patterns.LegalLinkRules {
			if _, taken := links[rule.Category]; taken {
				continue
			}

			if rule.Pattern.MatchString(href) || rule.Pattern.MatchString(text) {
				links[rule.Category] = resolveAgainstOrigin(base, href)
			}
		}
	})

	return links
}

// resolveAgainstOrigin turns root- and document-relative hrefs into absolute
// URLs on the base page's origin; already-absolute hrefs pass through.
func resolveAgainstOrigin(base *url.URL, href string) string {
	if strings.HasPrefix(href, "/") {
		return fmt.Sprintf("%s://%s%s", base.Scheme, base.Host, href)
	}

	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		return fmt.Sprintf("%s://%s/%s", base.Scheme, base.Host, href)
	}

	return href
}
