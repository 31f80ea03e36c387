package redcap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
	"github.com/heartmarshall/redcap-mlm-migrate/internal/provider"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "redcap-mlm-migrate"
	maxErrorBody     = 512
)

// Options configures a Provider.
type Options struct {
	URL              string
	Token            string
	CheckCertificate bool
	Timeout          time.Duration
	UserAgent        string
}

// Provider fetches project metadata from a REDCap API endpoint.
type Provider struct {
	url        string
	token      string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider validates opts and creates a Provider.
// An empty URL or token is reported as domain.ErrConfiguration.
func NewProvider(opts Options, logger *slog.Logger) (*Provider, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, domain.NewConfigurationError("redcap: api url is empty")
	}
	if strings.TrimSpace(opts.Token) == "" {
		return nil, domain.NewConfigurationError("redcap: api token is empty")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	log := logger.With("adapter", "redcap")

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !opts.CheckCertificate {
		log.Warn("certificate checking is disabled", slog.String("url", opts.URL))
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // operator opt-out for self-signed hosts
	}

	return &Provider{
		url:        opts.URL,
		token:      opts.Token,
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{Timeout: opts.Timeout, Transport: transport},
		log:        log,
	}, nil
}

// FetchMetadata requests the project's full data dictionary in one call.
// The legacy Multilingual module stores its translations in field
// annotations, so this is the complete translation export.
// Every failure is a *domain.NetworkError; there is no retry.
func (p *Provider) FetchMetadata(ctx context.Context) ([]provider.MetadataField, error) {
	form := url.Values{
		"token":        {p.token},
		"content":      {"metadata"},
		"format":       {"json"},
		"returnFormat": {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &domain.NetworkError{Message: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	p.log.DebugContext(ctx, "redcap metadata request", slog.String("url", p.url))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "redcap request failed", slog.String("error", err.Error()))
		return nil, &domain.NetworkError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{StatusCode: resp.StatusCode, Message: "read body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.NetworkError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		// REDCap reports some failures as 200 with an {"error": ...} object.
		return nil, &domain.NetworkError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}

	var fields []apiField
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &domain.NetworkError{StatusCode: resp.StatusCode, Message: "decode metadata json", Err: err}
	}

	result := make([]provider.MetadataField, len(fields))
	for i, f := range fields {
		result[i] = provider.MetadataField{
			FieldName:  f.FieldName,
			FormName:   f.FormName,
			FieldType:  f.FieldType,
			Annotation: f.FieldAnnotation,
		}
	}

	p.log.DebugContext(ctx, "redcap metadata response",
		slog.Int("status", resp.StatusCode),
		slog.Int("fields", len(result)),
	)

	return result, nil
}

// errorMessage extracts REDCap's error text from body, falling back to a
// truncated body or the status text.
func errorMessage(status int, body []byte) string {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return apiErr.Error
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return http.StatusText(status)
	}
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return text
}

// String hides the token so options can be logged.
func (o Options) String() string {
	return fmt.Sprintf("redcap.Options{URL: %s, CheckCertificate: %t, Timeout: %s}", o.URL, o.CheckCertificate, o.Timeout)
}
