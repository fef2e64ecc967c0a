package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theopenlane/httpsling"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

const (
	// defaultBaseURL is the OpenAI-compatible Groq API root
	defaultBaseURL = "https://api.groq.com/openai/v1"
	// completionsPath is the chat completions endpoint under the base URL
	completionsPath = "chat/completions"
	// defaultModel balances quality against per-scan latency
	defaultModel = "llama-3.3-70b-versatile"
	// defaultRequestTimeout bounds a single completion round trip
	defaultRequestTimeout = 30 * time.Second

	completionTemperature = 0.3
	completionMaxTokens   = 2000
)

// GroqClient produces compliance verdicts through the Groq chat completions API
type GroqClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
}

// GroqOption configures the GroqClient
type GroqOption func(*GroqClient)

// WithHTTPClient sets a custom HTTP client for completion requests
func WithHTTPClient(client *http.Client) GroqOption {
	return func(c *GroqClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default Groq API base URL
func WithBaseURL(url string) GroqOption {
	return func(c *GroqClient) {
		if url != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithModel overrides the default completion model
func WithModel(model string) GroqOption {
	return func(c *GroqClient) {
		if model != "" {
			c.model = model
		}
	}
}

// NewGroqClient creates a new Groq analyzer client with the provided API key
func NewGroqClient(apiKey string, opts ...GroqOption) (*GroqClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := &GroqClient{
		apiKey:     apiKey,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		baseURL:    defaultBaseURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Analyze sends the gathered scan bundle to the model and parses its JSON
// verdict. Any error leaves the caller free to fall back to the heuristic
// analyzer.
func (c *GroqClient) Analyze(ctx context.Context, bundle *types.Bundle) (*types.Analysis, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(bundle)},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	}

	requester := httpsling.MustNew(
		httpsling.URL(fmt.Sprintf("%s/%s", c.baseURL, completionsPath)),
		httpsling.Post(),
		httpsling.BearerAuth(c.apiKey),
		httpsling.JSONBody(body),
		httpsling.WithHTTPClient(c.httpClient),
	)

	var completion chatResponse

	resp, err := requester.ReceiveWithContext(ctx, &completion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, ErrEmptyCompletion
	}

	analysis, err := parseVerdict(completion.Choices[0].Message.Content)
	if err != nil {
		log.Debug().Err(err).Str("domain", bundle.Domain).Msg("model verdict unparseable")

		return nil, err
	}

	analysis.Source = types.SourceModel

	return analysis, nil
}

// parseVerdict extracts the JSON verdict from the raw completion content,
// tolerating markdown code fences around it
func parseVerdict(content string) (*types.Analysis, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")

	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in content", ErrMalformedCompletion)
	}

	var analysis types.Analysis
	if err := json.Unmarshal([]byte(content[start:end+1]), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCompletion, err)
	}

	if analysis.RiskLevel == "" {
		return nil, fmt.Errorf("%w: missing risk_level", ErrMalformedCompletion)
	}

	if analysis.PersonalData == nil {
		analysis.PersonalData = []string{}
	}

	if analysis.DataLeaks == nil {
		analysis.DataLeaks = []string{}
	}

	if analysis.LegalIssues == nil {
		analysis.LegalIssues = []string{}
	}

	return &analysis, nil
}
