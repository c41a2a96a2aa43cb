package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/usecase/media"
)

const signaturePath = "/signature"

// Client asks the trusted backend for upload tickets.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// compile-time check: *Client must satisfy port.TicketRequester
var _ port.TicketRequester = (*Client)(nil)

// NewClient builds a Client. token is the caller's session token, sent as a
// bearer credential; a nil httpClient gets a 30s timeout.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// RequestTicket fetches a fresh ticket for one file. Any failure is an
// *media.AuthorizationError.
func (c *Client) RequestTicket(ctx context.Context, folder, resourceType string) (model.UploadTicket, error) {
	q := url.Values{}
	q.Set("folder", folder)
	if resourceType != "" {
		q.Set("resource_type", resourceType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+signaturePath+"?"+q.Encode(), nil)
	if err != nil {
		return model.UploadTicket{}, &media.AuthorizationError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.UploadTicket{}, &media.AuthorizationError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return model.UploadTicket{}, &media.AuthorizationError{Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		logger.Warnf(ctx, "⚠️  Signature request for folder %q refused (%d): %s", folder, resp.StatusCode, msg)
		return model.UploadTicket{}, &media.AuthorizationError{Status: resp.StatusCode, Err: fmt.Errorf("%w: %s", media.ErrTicketRejected, msg)}
	}

	var ticket model.UploadTicket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return model.UploadTicket{}, &media.AuthorizationError{Status: resp.StatusCode, Err: fmt.Errorf("decode ticket: %w", err)}
	}
	if ticket.CloudName == "" || ticket.APIKey == "" || ticket.Signature == "" || ticket.Timestamp == 0 {
		return model.UploadTicket{}, &media.AuthorizationError{Status: resp.StatusCode, Err: fmt.Errorf("%w: incomplete ticket", media.ErrTicketRejected)}
	}
	if ticket.Folder == "" {
		ticket.Folder = folder
	}
	return ticket, nil
}
