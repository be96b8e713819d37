// Package classifier calls an OpenAI compatible chat completion endpoint
// to flag spoiler comments in one formatted batch
package classifier

import (
	"context"
	stderrs "errors"
	"net/http"
	"strings"
	"sync"
	"time"

	perr "spoilerguard/internal/platform/errors"
	"spoilerguard/internal/platform/logger"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	baseURLDefault     = "https://api.moonshot.cn/v1"
	modelDefault       = "moonshot-v1-8k"
	temperatureDefault = 0.3
	maxTokensDefault   = 500
	timeoutDefault     = 60 * time.Second
	bodyTailMax        = 2048
)

// Options configures the Client
type Options struct {
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration

	// APIKey seeds the credential, it can be replaced later with SetAPIKey
	APIKey string

	// HTTPClient overrides the transport, mostly for tests
	HTTPClient *http.Client
}

// Client is a single endpoint chat completion client with a swappable credential
type Client struct {
	api  openai.Client
	opts Options
	log  logger.Logger
	now  func() time.Time

	mu     sync.RWMutex
	apiKey string
}

// NewClient creates a Client with defaults applied
// SDK retries are disabled; the caller's stopping policy owns retry decisions
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Model == "" {
		o.Model = modelDefault
	}
	if o.Temperature <= 0 {
		o.Temperature = temperatureDefault
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = maxTokensDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = timeoutDefault
	}

	ro := []option.RequestOption{
		option.WithBaseURL(o.BaseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(o.Timeout),
	}
	if o.HTTPClient != nil {
		ro = append(ro, option.WithHTTPClient(o.HTTPClient))
	}

	return &Client{
		api:    openai.NewClient(ro...),
		opts:   o,
		log:    *logger.Named("classifier"),
		now:    time.Now,
		apiKey: strings.TrimSpace(o.APIKey),
	}
}

// SetAPIKey replaces the credential used by subsequent calls
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	c.apiKey = strings.TrimSpace(key)
	c.mu.Unlock()
}

// HasAPIKey reports whether a non empty credential is configured
func (c *Client) HasAPIKey() bool {
	return c.key() != ""
}

func (c *Client) key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// Classify sends one formatted batch and returns the raw reply text
func (c *Client) Classify(ctx context.Context, batchText, title, episodeTitle string) (string, error) {
	key := c.key()
	if key == "" {
		return "", perr.Unauthorizedf("classifier api key not configured")
	}

	start := c.now()
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(UserPrompt(batchText, title, episodeTitle)),
		},
		Temperature: openai.Float(c.opts.Temperature),
		MaxTokens:   openai.Int(c.opts.MaxTokens),
	}, option.WithAPIKey(key))
	lat := c.now().Sub(start)

	if err != nil {
		mapped := mapError(err)
		c.log.Debug().Err(err).Dur("latency", lat).Uint16("code", uint16(perr.CodeOf(mapped))).Msg("classifier call failed")
		return "", mapped
	}
	if len(resp.Choices) == 0 {
		return "", perr.Unavailablef("classifier returned no choices")
	}

	c.log.Debug().
		Dur("latency", lat).
		Str("model", resp.Model).
		Int64("prompt_tokens", resp.Usage.PromptTokens).
		Int64("completion_tokens", resp.Usage.CompletionTokens).
		Msg("classifier call ok")

	return resp.Choices[0].Message.Content, nil
}

// mapError folds SDK and transport failures into project error codes
func mapError(err error) error {
	var apiErr *openai.Error
	if stderrs.As(err, &apiErr) {
		tail := tailOf(apiErr.RawJSON())
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests,
			strings.Contains(apiErr.Type, "rate_limit"),
			strings.Contains(apiErr.Code, "rate_limit"),
			strings.Contains(tail, "rate_limit"):
			return perr.Wrapf(err, perr.ErrorCodeTooManyRequests, "classifier rate limited status=%d", apiErr.StatusCode)
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
			return perr.Wrapf(err, perr.ErrorCodeUnauthorized, "classifier rejected credential status=%d", apiErr.StatusCode)
		default:
			return perr.Wrapf(err, perr.ErrorCodeUnavailable, "classifier status=%d body=%s", apiErr.StatusCode, tail)
		}
	}
	if strings.Contains(err.Error(), "rate_limit") {
		return perr.Wrap(err, perr.ErrorCodeTooManyRequests, "classifier rate limited")
	}
	return perr.Wrap(err, perr.ErrorCodeUnavailable, "classifier transport failed")
}

// tailOf bounds a response body for error messages
func tailOf(s string) string {
	if len(s) > bodyTailMax {
		return s[len(s)-bodyTailMax:]
	}
	return s
}

// IsRateLimited reports whether err ends the run immediately
func IsRateLimited(err error) bool {
	return perr.IsCode(err, perr.ErrorCodeTooManyRequests)
}

// IsAuth reports whether err is a missing or rejected credential
func IsAuth(err error) bool {
	return perr.IsCode(err, perr.ErrorCodeUnauthorized)
}
