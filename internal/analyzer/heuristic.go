package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	// credentialPattern matches key=value assignments whose value looks like
	// an API key or token
	credentialPattern = regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|access[_-]?token|auth[_-]?token)\s*[=:]\s*['"]?[a-zA-Z0-9_-]{20,}`)
)

// risk thresholds for the heuristic verdict
const (
	highRiskIssueCount   = 4
	mediumRiskIssueCount = 2
)

// Heuristic is a regex-based analyzer used when no model is configured or
// the model call fails. Its verdict shape matches the model's.
type Heuristic struct{}

// NewHeuristic creates the fallback analyzer
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Analyze scans the homepage text for exposed personal data, leaked
// credentials, and missing legal notices. It never fails.
func (h *Heuristic) Analyze(_ context.Context, bundle *types.Bundle) (*types.Analysis, error) {
	var personalData, dataLeaks, legalIssues []string

	if emails := emailPattern.FindAllString(bundle.Text, -1); len(emails) > 0 {
		personalData = append(personalData, fmt.Sprintf("Found %d email address(es) exposed on the page", len(emails)))
	}

	if phones := phonePattern.FindAllString(bundle.Text, -1); len(phones) > 0 {
		personalData = append(personalData, fmt.Sprintf("Found %d phone number(s) visible on the page", len(phones)))
	}

	if credentialPattern.MatchString(bundle.Text) {
		dataLeaks = append(dataLeaks, "Potential API keys or tokens exposed in page content")
	}

	lower := strings.ToLower(bundle.Text)

	if !strings.Contains(lower, "privacy policy") && !strings.Contains(lower, "privacy notice") {
		legalIssues = append(legalIssues, "No visible privacy policy link detected")
	}

	if !strings.Contains(lower, "cookie") && !strings.Contains(lower, "gdpr") {
		legalIssues = append(legalIssues, "No cookie consent or GDPR notice detected")
	}

	totalIssues := len(personalData) + len(dataLeaks) + len(legalIssues)

	riskLevel := "Low"

	switch {
	case len(dataLeaks) > 0 || totalIssues >= highRiskIssueCount:
		riskLevel = "High"
	case totalIssues >= mediumRiskIssueCount:
		riskLevel = "Medium"
	}

	return &types.Analysis{
		RiskLevel:    riskLevel,
		Summary:      fmt.Sprintf("Analysis of %s found %d potential issue(s).", bundle.Domain, totalIssues),
		PersonalData: orPlaceholder(personalData, "No obvious personal data exposure detected"),
		DataLeaks:    orPlaceholder(dataLeaks, "No obvious data leaks detected"),
		LegalIssues:  orPlaceholder(legalIssues, "Basic legal notices appear to be in place"),
		Source:       types.SourceHeuristic,
	}, nil
}

// orPlaceholder substitutes an all-clear message for an empty issue list
func orPlaceholder(issues []string, placeholder string) []string {
	if len(issues) == 0 {
		return []string{placeholder}
	}

	return issues
}
