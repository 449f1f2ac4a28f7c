package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/utils"
	"github.com/specmock/specmock/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from address and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Health implements [ServerAdapter]. It GETs /healthz and maps any non-2xx
// answer to an error.
func (h *httpServerAdapter) Health(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/healthz")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}

// CreateDocument implements [ServerAdapter]. It POSTs doc to the collection
// route and decodes the stored representation from the response body.
func (h *httpServerAdapter) CreateDocument(ctx context.Context, collection string, doc models.Document) (models.Document, error) {
	if !strings.HasPrefix(collection, "/") {
		collection = "/" + collection
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc).
		Post(collection)
	if err != nil {
		return nil, fmt.Errorf("create document request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var stored models.Document
	if err = json.Unmarshal(resp.Body(), &stored); err != nil {
		return nil, fmt.Errorf("create document decode response: %w", err)
	}

	return stored, nil
}

// Reset implements [ServerAdapter]. It POSTs to the admin reset endpoint.
func (h *httpServerAdapter) Reset(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/admin/reset")
	if err != nil {
		return fmt.Errorf("reset request: %w", err)
	}

	return mapHTTPError(resp)
}
