package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/domain"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/scan"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

type fakeScanner struct {
	report     *types.ScanReport
	err        error
	lastDomain string
	lastSite   types.SiteContext
}

func (f *fakeScanner) Scan(_ context.Context, target string, site types.SiteContext) (*types.ScanReport, error) {
	f.lastDomain = target
	f.lastSite = site

	if f.err != nil {
		return nil, f.err
	}

	return f.report, nil
}

func testReport(target string) *types.ScanReport {
	return &types.ScanReport{
		Success: true,
		Domain:  target,
		URL:     fmt.Sprintf("https://%s", target),
		Analysis: &types.Analysis{
			RiskLevel: "Low",
			Source:    types.SourceHeuristic,
		},
	}
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	router := NewRouter(&fakeScanner{})

	rec := doRequest(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))

	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "domaincheck", health.Service)
	assert.NotEmpty(t, health.Timestamp)
}

func TestHandleScan(t *testing.T) {
	t.Parallel()

	scanner := &fakeScanner{report: testReport("example.com")}
	router := NewRouter(scanner)

	rec := doRequest(t, router, http.MethodPost, "/api/scan", ScanRequest{Domain: "example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var report types.ScanReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.True(t, report.Success)
	assert.Equal(t, "example.com", report.Domain)
	assert.Equal(t, "example.com", scanner.lastDomain)
	assert.Equal(t, types.DefaultSiteContext(), scanner.lastSite)
}

func TestHandleScanExtractsDomainFromEmail(t *testing.T) {
	t.Parallel()

	scanner := &fakeScanner{report: testReport("example.com")}
	router := NewRouter(scanner)

	rec := doRequest(t, router, http.MethodPost, "/api/scan", ScanRequest{Email: "user@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "example.com", scanner.lastDomain)
}

func TestHandleScanMergesSiteOptions(t *testing.T) {
	t.Parallel()

	scanner := &fakeScanner{report: testReport("example.com")}
	router := NewRouter(scanner)

	truthy := true
	falsy := false

	rec := doRequest(t, router, http.MethodPost, "/api/scan", ScanRequest{
		Domain: "example.com",
		SiteOptions: &SiteOptions{
			HasPayments: &truthy,
			TargetsEU:   &falsy,
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, scanner.lastSite.HasPayments)
	assert.False(t, scanner.lastSite.TargetsEU)
	// untouched fields keep their defaults
	assert.True(t, scanner.lastSite.CollectsPersonalData)
	assert.True(t, scanner.lastSite.TargetsUSA)
}

func TestHandleScanValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		body             any
		scanErr          error
		expectedStatus   int
		expectedCategory string
	}{
		{
			name:             "missing domain and email",
			body:             ScanRequest{},
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "Domain is required",
		},
		{
			name:             "bad email",
			body:             ScanRequest{Email: "not-an-email"},
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "Invalid email",
		},
		{
			name:             "unknown fields rejected",
			body:             map[string]any{"domain": "example.com", "bogus": true},
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "Invalid request",
		},
		{
			name:             "invalid domain from scanner",
			body:             ScanRequest{Domain: "nope"},
			scanErr:          fmt.Errorf("bad input: %w", domain.ErrInvalidDomainFormat),
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "Invalid domain",
		},
		{
			name:             "scan failure",
			body:             ScanRequest{Domain: "example.com"},
			scanErr:          &scan.Error{Message: `Domain "example.com" not found. Please check the domain name.`},
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "Scan failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := NewRouter(&fakeScanner{report: testReport("example.com"), err: tc.scanErr})

			rec := doRequest(t, router, http.MethodPost, "/api/scan", tc.body)
			require.Equal(t, tc.expectedStatus, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			assert.Equal(t, tc.expectedCategory, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	router := NewRouter(&fakeScanner{})

	req := httptest.NewRequest(http.MethodOptions, "/api/scan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
