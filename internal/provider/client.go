package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/usecase/media"
)

// Client transfers files straight to the storage provider.
type Client struct {
	uploadURL   string
	deliveryURL string
	httpClient  *http.Client
}

// compile-time check: *Client must satisfy port.Transport
var _ port.Transport = (*Client)(nil)

// NewClient builds a Client. uploadURL is the API root the
// /<cloud>/image/upload path is appended to; deliveryURL is the public root
// used when a response lacks a usable secure_url.
func NewClient(uploadURL, deliveryURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		uploadURL:   strings.TrimRight(uploadURL, "/"),
		deliveryURL: strings.TrimRight(deliveryURL, "/"),
		httpClient:  httpClient,
	}
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends f with the ticket fields as one multipart request. Any
// failure is a *media.TransportError.
func (c *Client) Upload(ctx context.Context, f model.File, ticket model.UploadTicket) (model.MediaAsset, error) {
	body, contentType, err := encodeForm(f, ticket)
	if err != nil {
		return model.MediaAsset{}, &media.TransportError{File: f.Name, Err: err}
	}

	endpoint := c.uploadURL + "/" + ticket.CloudName + "/image/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return model.MediaAsset{}, &media.TransportError{File: f.Name, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.MediaAsset{}, &media.TransportError{File: f.Name, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return model.MediaAsset{}, &media.TransportError{File: f.Name, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var out uploadResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		logger.Warnf(ctx, "⚠️  Provider refused %q (%d): %s", f.Name, resp.StatusCode, msg)
		return model.MediaAsset{}, &media.TransportError{File: f.Name, Status: resp.StatusCode, Err: fmt.Errorf("%w: %s", media.ErrUploadRejected, msg)}
	}
	if decodeErr != nil {
		return model.MediaAsset{}, &media.TransportError{File: f.Name, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if out.PublicID == "" {
		return model.MediaAsset{}, &media.TransportError{File: f.Name, Status: resp.StatusCode, Err: fmt.Errorf("%w: response has no public_id", media.ErrUploadRejected)}
	}

	return model.MediaAsset{
		URL:         DeliveryURL(out.SecureURL, c.deliveryURL, ticket.CloudName, out.PublicID),
		PublicID:    out.PublicID,
		OriginalURL: out.SecureURL,
		Width:       out.Width,
		Height:      out.Height,
		Format:      out.Format,
		Bytes:       out.Bytes,
	}, nil
}

func encodeForm(f model.File, ticket model.UploadTicket) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	fields := [][2]string{
		{"api_key", ticket.APIKey},
		{"timestamp", strconv.FormatInt(ticket.Timestamp, 10)},
		{"signature", ticket.Signature},
		{"folder", ticket.Folder},
	}
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", kv[0], err)
		}
	}

	part, err := mw.CreateFormFile("file", f.Name)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}
