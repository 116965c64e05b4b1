// Package datavalid provides a validator.Client backed by the SERPRO
// Datavalid facial QR code API.
package datavalid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"qrvalidator/pkg/domain"
	"qrvalidator/pkg/serrors"
	"qrvalidator/pkg/validator"
)

const (
	// DemoURL is the public demonstration gateway.
	DemoURL = "https://gateway.apiserpro.serpro.gov.br/datavalid-demonstracao/v4/pf-facial-qrcode"
	// DemoToken is the static bearer token accepted by DemoURL.
	DemoToken = "06aef429-a981-3ec5-a1f8-71d38d86481e"
)

// Client talks to the Datavalid REST API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	url        string
	token      string
}

// Validate posts req to the configured endpoint.
func (c *Client) Validate(ctx context.Context, req domain.ValidationRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUpstream, err, "could not reach validator")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUpstream, err, "could not read validator response")
	}

	if resp.StatusCode != http.StatusOK {
		var detail any
		if err := json.Unmarshal(b, &detail); err != nil {
			detail = strings.TrimSpace(string(b))
		}

		return nil, &validator.RemoteError{StatusCode: resp.StatusCode, Detail: detail}
	}

	// successful
	if !json.Valid(b) {
		return nil, serrors.With(serrors.ErrInternal, "validator returned a non JSON body")
	}

	return json.RawMessage(b), nil
}

// Ensure Client conforms to the validator.Client interface at compile time.
var _ validator.Client = (*Client)(nil)

// New constructs a Client that posts to url with the given bearer token. An
// empty url or token falls back to the demonstration gateway. Redirects are
// not followed; a 3xx is reported as a *validator.RemoteError.
func New(httpClient *http.Client, url, token string) *Client {
	hc := &http.Client{}
	if httpClient != nil {
		*hc = *httpClient
	}
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	if url == "" {
		url = DemoURL
	}
	if token == "" {
		token = DemoToken
	}

	return &Client{
		httpClient: hc,
		url:        url,
		token:      token,
	}
}
