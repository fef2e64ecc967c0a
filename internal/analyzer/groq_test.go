package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

func TestNewGroqClient(t *testing.T) {
	t.Parallel()

	_, err := NewGroqClient("")
	require.ErrorIs(t, err, ErrMissingAPIKey)

	client, err := NewGroqClient("test-key", WithModel("llama-3.1-8b-instant"), WithBaseURL("https://example.com/v1/"))
	require.NoError(t, err)
	assert.Equal(t, "llama-3.1-8b-instant", client.model)
	assert.Equal(t, "https://example.com/v1", client.baseURL)
}

func TestParseVerdict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		content      string
		expectedRisk string
		expectedErr  error
	}{
		{
			name:         "plain json",
			content:      `{"risk_level":"Low","summary":"ok","personal_data":[],"data_leaks":[],"legal_issues":[]}`,
			expectedRisk: "Low",
		},
		{
			name:         "fenced json",
			content:      "```json\n{\"risk_level\":\"High\",\"summary\":\"bad\"}\n```",
			expectedRisk: "High",
		},
		{
			name:         "prose around json",
			content:      "Here is my analysis:\n{\"risk_level\":\"Medium\",\"summary\":\"meh\"}\nLet me know if you need more.",
			expectedRisk: "Medium",
		},
		{
			name:        "no json at all",
			content:     "I cannot analyze this website.",
			expectedErr: ErrMalformedCompletion,
		},
		{
			name:        "missing risk level",
			content:     `{"summary":"no verdict"}`,
			expectedErr: ErrMalformedCompletion,
		},
		{
			name:        "broken json",
			content:     `{"risk_level":"Low",`,
			expectedErr: ErrMalformedCompletion,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			analysis, err := parseVerdict(tc.content)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedRisk, analysis.RiskLevel)
			assert.NotNil(t, analysis.PersonalData)
			assert.NotNil(t, analysis.DataLeaks)
			assert.NotNil(t, analysis.LegalIssues)
		})
	}
}

func TestGroqAnalyze(t *testing.T) {
	t.Parallel()

	verdict := `{"risk_level":"Medium","summary":"Some issues found","personal_data":["emails visible"],"data_leaks":[],"legal_issues":["no cookie policy"]}`

	var received chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": verdict}},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client, err := NewGroqClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	bundle := &types.Bundle{
		Domain: "example.com",
		Text:   "homepage text",
		Site:   types.DefaultSiteContext(),
		LegalPages: map[patterns.Category]types.LegalPageEntry{
			patterns.CategoryPrivacy: {Found: true, URL: "https://example.com/privacy", Text: "we collect data"},
		},
	}

	analysis, err := client.Analyze(context.Background(), bundle)
	require.NoError(t, err)

	assert.Equal(t, "Medium", analysis.RiskLevel)
	assert.Equal(t, types.SourceModel, analysis.Source)
	assert.Equal(t, []string{"emails visible"}, analysis.PersonalData)

	require.Len(t, received.Messages, 2)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Contains(t, received.Messages[1].Content, "DOMAIN: example.com")
	assert.Contains(t, received.Messages[1].Content, "privacy: Found")
	assert.Contains(t, received.Messages[1].Content, "PRIVACY PAGE")
}

func TestGroqAnalyzeUnexpectedStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewGroqClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), &types.Bundle{Domain: "example.com"})
	require.Error(t, err)
}

func TestBuildUserPromptTruncatesLegalText(t *testing.T) {
	t.Parallel()

	long := make([]rune, legalExcerptLimit*2)
	for i := range long {
		long[i] = 'a'
	}

	bundle := &types.Bundle{
		Domain: "example.com",
		Site:   types.DefaultSiteContext(),
		LegalPages: map[patterns.Category]types.LegalPageEntry{
			patterns.CategoryTerms: {Found: true, Text: string(long)},
		},
	}

	prompt := buildUserPrompt(bundle)

	assert.Contains(t, prompt, "TERMS PAGE")
	assert.Less(t, len(prompt), legalExcerptLimit+2000)
}
