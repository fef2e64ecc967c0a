package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

// footerSelector matches footer elements and the common footer class/id
// conventions.
const footerSelector = `footer, .footer, #footer, [class*="footer"]`

// copyrightYearPatterns extract a 4-digit year adjacent to a copyright
// marker, in either order ("© 2024" and "2024 ©").
var copyrightYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:©|\(c\)|copyright)[^0-9]{0,20}((?:19|20)\d{2})`),
	regexp.MustCompile(`((?:19|20)\d{2})\s*(?:©|\(c\))`),
}

// allRightsReservedEN matches the English phrasing with flexible whitespace.
var allRightsReservedEN = regexp.MustCompile(`(?i)all\s+rights\s+reserved`)

// Copyright scans for copyright notices, preferring footer markup when
// present. Footer-scoped matches record their provenance in Details.
func Copyright(html string) types.CopyrightSignals {
	signals := types.CopyrightSignals{
		Details: []string{},
	}

	scope := html
	inFooter := false

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		footer, docErr := doc.Find(footerSelector).Html()
		if docErr == nil && strings.TrimSpace(footer) != "" {
			scope = footer
			inFooter = true
		}
	}

	lower := strings.ToLower(scope)

	if strings.Contains(scope, "©") || strings.Contains(lower, "&copy;") ||
		strings.Contains(lower, "(c)") || strings.Contains(lower, "copyright") {
		signals.HasCopyright = true
		signals.Details = append(signals.Details, copyrightDetail("Copyright notice present", inFooter))
	}

	if allRightsReservedEN.MatchString(scope) {
		signals.HasAllRightsReserved = true
		signals.Details = append(signals.Details, copyrightDetail(`"All rights reserved" statement present`, inFooter))
	} else {
		for _, phrase := range patterns.AllRightsReservedPhrases {
			if strings.Contains(scope, phrase) {
				signals.HasAllRightsReserved = true
				signals.Details = append(signals.Details, copyrightDetail(`Localized "all rights reserved" statement present`, inFooter))
				break
			}
		}
	}

	for _, pattern := range copyrightYearPatterns {
		if match := pattern.FindStringSubmatch(scope); len(match) >= 2 {
			signals.CopyrightYear = match[1]
			signals.Details = append(signals.Details, fmt.Sprintf("Copyright year %s", match[1]))
			break
		}
	}

	return signals
}

// copyrightDetail appends footer provenance to a finding when the match came
// from footer markup.
func copyrightDetail(finding string, inFooter bool) string {
	if inFooter {
		return finding + " (in footer)"
	}

	return finding
}
