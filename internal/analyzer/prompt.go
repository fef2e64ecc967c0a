package analyzer

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

// legalExcerptLimit caps how many characters of each legal page are sent to
// the model
const legalExcerptLimit = 3000

const systemPrompt = `You are a legal compliance and data privacy expert analyst. Analyze websites for GDPR, CCPA, and general legal compliance.

IMPORTANT: The user will provide "WEBSITE CONTEXT" that describes what features their website has. Use this to adjust your analysis:
- If the site does NOT accept payments, do NOT penalize for missing refund/return policies
- If the site does NOT collect personal data, be lenient on privacy policy requirements
- If the site does NOT use tracking, do NOT penalize for missing cookie consent/policy
- If the site does NOT have user accounts, do NOT require account-related policies
- If the site does NOT target EU visitors, GDPR compliance is NOT required
- If the site does NOT target US visitors, CCPA compliance is NOT required
- If children cannot use the site, COPPA compliance is NOT required

Evaluate based on what actually applies:
- Personal data exposure (emails, phones, IDs, names, addresses visible on pages)
- Potential data leaks (API keys, passwords, internal data, debug info)
- Presence and completeness of legal pages (Privacy Policy, Terms of Service, Cookie Policy)
- Cookie compliance (only if using tracking/cookies)
- Copyright notice (a © symbol or "All rights reserved" in the footer suffices, no separate page needed)

Respond ONLY with valid JSON in this exact format:
{
  "risk_level": "Low|Medium|High",
  "summary": "Brief summary of findings",
  "personal_data": ["list of personal data exposure issues found"],
  "data_leaks": ["list of potential data leaks found"],
  "legal_issues": ["list of legal/compliance issues found"]
}`

// buildUserPrompt assembles the analysis prompt from everything gathered
// during the scan
func buildUserPrompt(bundle *types.Bundle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze this website for legal compliance and security:\n\n")
	fmt.Fprintf(&b, "DOMAIN: %s\n", bundle.Domain)

	b.WriteString("\nWEBSITE CONTEXT (use this to adjust compliance requirements):\n")
	fmt.Fprintf(&b, "- Accepts payments / E-commerce: %s\n", yesNo(bundle.Site.HasPayments))
	fmt.Fprintf(&b, "- Collects personal data: %s\n", yesNo(bundle.Site.CollectsPersonalData))
	fmt.Fprintf(&b, "- Uses analytics/tracking: %s\n", yesNo(bundle.Site.UsesTracking))
	fmt.Fprintf(&b, "- Has user accounts: %s\n", yesNo(bundle.Site.HasUserAccounts))
	fmt.Fprintf(&b, "- Targets EU visitors (GDPR): %s\n", yesNo(bundle.Site.TargetsEU))
	fmt.Fprintf(&b, "- Targets US visitors (CCPA): %s\n", yesNo(bundle.Site.TargetsUSA))
	fmt.Fprintf(&b, "- Children may use site (COPPA): %s\n", yesNo(bundle.Site.HasChildrenContent))

	fmt.Fprintf(&b, "\nHOMEPAGE CONTENT:\n%s\n", bundle.Text)

	b.WriteString("\nLEGAL PAGES STATUS: ")
	b.WriteString(strings.Join(legalStatusLine(bundle), ", "))
	b.WriteString("\n")

	b.WriteString("\nCOOKIE INFO:\n")
	fmt.Fprintf(&b, "- Cookie Banner: %s\n", yesNo(bundle.CookieInfo.HasCookieBanner))
	fmt.Fprintf(&b, "- Consent Mechanism: %s\n", lo.CoalesceOrEmpty(bundle.CookieInfo.ConsentMechanism, "None detected"))
	fmt.Fprintf(&b, "- Cookie Types Mentioned: %s\n", lo.CoalesceOrEmpty(strings.Join(bundle.CookieInfo.CookieTypes, ", "), "None"))

	fmt.Fprintf(&b, "\nTRACKING DETECTED: %s\n", trackingLine(bundle.TrackingInfo))

	if excerpts := legalExcerpts(bundle); excerpts != "" {
		fmt.Fprintf(&b, "\nLEGAL PAGE CONTENTS:\n%s\n", excerpts)
	} else {
		b.WriteString("\nNo legal pages found to analyze.\n")
	}

	return b.String()
}

// legalStatusLine lists the found/not-found state of every category in
// catalog order
func legalStatusLine(bundle *types.Bundle) []string {
	return lo.Map(patterns.Categories, func(category patterns.Category, _ int) string {
		if entry, ok := bundle.LegalPages[category]; ok && entry.Found {
			return fmt.Sprintf("%s: Found", category)
		}

		return fmt.Sprintf("%s: Not Found", category)
	})
}

// trackingLine summarizes detected trackers, or "None detected"
func trackingLine(tracking types.TrackingSignals) string {
	parts := make([]string, 0, len(tracking.Analytics)+len(tracking.Advertising)+len(tracking.SocialMedia))

	for _, name := range tracking.Analytics {
		parts = append(parts, "Analytics: "+name)
	}

	for _, name := range tracking.Advertising {
		parts = append(parts, "Advertising: "+name)
	}

	for _, name := range tracking.SocialMedia {
		parts = append(parts, "Social: "+name)
	}

	if len(parts) == 0 {
		return "None detected"
	}

	return strings.Join(parts, ", ")
}

// legalExcerpts concatenates bounded excerpts of each found legal page
func legalExcerpts(bundle *types.Bundle) string {
	sections := make([]string, 0, len(bundle.LegalPages))

	for _, category := range patterns.Categories {
		entry, ok := bundle.LegalPages[category]
		if !ok || !entry.Found || entry.Text == "" {
			continue
		}

		excerpt := entry.Text
		if runes := []rune(excerpt); len(runes) > legalExcerptLimit {
			excerpt = string(runes[:legalExcerptLimit])
		}

		sections = append(sections, fmt.Sprintf("=== %s PAGE ===\n%s", strings.ToUpper(string(category)), excerpt))
	}

	return strings.Join(sections, "\n\n")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}

	return "No"
}
