// Package restapi implements the EntityStore port against the trainer
// collection endpoint over JSON/HTTP.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
	"github.com/ericfisherdev/trainerpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.EntityStore = (*Client)(nil)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client implements the driven.EntityStore port against a single collection
// endpoint such as http://localhost:8080/APIRestTrainer/trainer.
type Client struct {
	http    *http.Client
	baseURL string // Collection URL without a trailing slash.
	logger  *slog.Logger
}

// NewClient creates a collection client with the following transport stack:
//  1. httpcache (ETag-based conditional requests for the list endpoint)
//  2. http.Transport with dial/TLS/header timeouts
//
// timeout bounds each request end to end.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.MarkCachedResponses = true
	cacheTransport.Transport = &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
	}

	return NewClientWithHTTPClient(&http.Client{
		Transport: cacheTransport,
		Timeout:   timeout,
	}, baseURL, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(u.String(), "/"),
		logger:  logger,
	}, nil
}

// entityJSON is the wire shape of an entity record.
type entityJSON struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Secret  string `json:"secret"`
}

// List retrieves every record of the collection in the order the backend
// returns them. Each call is a fresh round-trip; a 304 answer to the ETag
// revalidation is served from the cached body.
func (c *Client) List(ctx context.Context) ([]model.Entity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, &driven.TransportError{Op: "list entities", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "max-age=0")

	body, err := c.do(req, "list entities")
	if err != nil {
		return nil, err
	}

	var raw []entityJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &driven.TransportError{Op: "list entities", Err: fmt.Errorf("decoding response: %w", err)}
	}

	entities := make([]model.Entity, 0, len(raw))
	for _, e := range raw {
		entities = append(entities, mapEntity(e))
	}

	c.logger.Debug("entities listed", "count", len(entities))

	return entities, nil
}

// Create posts a new record built from draft.
func (c *Client) Create(ctx context.Context, draft model.Draft) error {
	payload := entityJSON{Name: draft.Name, Contact: draft.Contact, Secret: draft.Secret}
	return c.send(ctx, http.MethodPost, c.baseURL, payload, "create entity")
}

// Update replaces the record with the given id.
func (c *Client) Update(ctx context.Context, id int64, draft model.Draft) error {
	payload := entityJSON{ID: id, Name: draft.Name, Contact: draft.Contact, Secret: draft.Secret}
	return c.send(ctx, http.MethodPut, c.entityURL(id), payload, fmt.Sprintf("update entity %d", id))
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	op := fmt.Sprintf("delete entity %d", id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.entityURL(id), nil)
	if err != nil {
		return &driven.TransportError{Op: op, Err: err}
	}

	_, err = c.do(req, op)
	return err
}

// send issues a request with a JSON body and discards the response body.
func (c *Client) send(ctx context.Context, method, target string, payload entityJSON, op string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return &driven.TransportError{Op: op, Err: fmt.Errorf("encoding request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(data))
	if err != nil {
		return &driven.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req, op)
	return err
}

// do executes req and returns the full response body. Any non-2xx status is
// reported as a TransportError carrying the status code. The body is read to
// EOF so the cache transport can store it.
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &driven.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &driven.TransportError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &driven.TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	if resp.Header.Get(httpcache.XFromCache) != "" {
		c.logger.Debug("served from cache", "op", op)
	}

	return body, nil
}

func (c *Client) entityURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

// mapEntity converts the wire representation to a domain Entity.
func mapEntity(e entityJSON) model.Entity {
	return model.Entity{
		ID:      e.ID,
		Name:    e.Name,
		Contact: e.Contact,
		Secret:  e.Secret,
	}
}
