// Package remote issues list/create/update/delete calls against the travel
// agency backend, tolerating its multiple response envelope shapes and its
// two mutation transport generations.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/atlas-tours/travel-client/pkg/logging"
	"github.com/atlas-tours/travel-client/pkg/model"
	"github.com/atlas-tours/travel-client/pkg/wire"
)

// Prometheus metrics for backend operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_requests_total",
		Help: "Total backend requests by resource, operation and outcome",
	}, []string{"resource", "operation", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travel_request_duration_seconds",
		Help:    "Backend request duration in seconds by resource and operation",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"resource", "operation"})

	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_transport_fallbacks_total",
		Help: "Mutations that fell back to the JSON-body transport",
	}, []string{"resource", "operation"})

	malformedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_malformed_responses_total",
		Help: "Responses that matched no accepted envelope shape",
	}, []string{"resource"})
)

// Resource path segments on the backend.
const (
	toursPath      = "tours"
	bookingsPath   = "bookings"
	categoriesPath = "categories"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the backend API root, e.g. "https://api.example.com/api".
	BaseURL string

	// Timeout bounds each HTTP call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout is applied when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Client talks to the travel agency backend.
//
// Mutations attempt the legacy parameter-encoded transport first and fall
// back to the JSON-body transport when the primary attempt is rejected.
// Callers observe only the final outcome; the dual-attempt logic is
// internal.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logging.NewLogger("remote"),
	}, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// SetLogger replaces the client logger (for testing).
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// ---------------------------------------------------------------------------
// List reads
// ---------------------------------------------------------------------------

// ListTours fetches the authoritative tour list.
func (c *Client) ListTours(ctx context.Context) ([]model.Tour, error) {
	records, err := c.list(ctx, toursPath)
	if err != nil {
		return nil, err
	}
	tours := make([]model.Tour, 0, len(records))
	for i, rec := range records {
		var w wire.Tour
		if err := json.Unmarshal(rec, &w); err != nil {
			malformedTotal.WithLabelValues(toursPath).Inc()
			return nil, &MalformedResponseError{
				Resource: toursPath,
				Snippet:  snippet(rec),
				Err:      fmt.Errorf("record %d: %w", i, err),
			}
		}
		tours = append(tours, wire.TourFromWire(w))
	}
	return tours, nil
}

// ListBookings fetches the authoritative booking list.
func (c *Client) ListBookings(ctx context.Context) ([]model.Booking, error) {
	records, err := c.list(ctx, bookingsPath)
	if err != nil {
		return nil, err
	}
	bookings := make([]model.Booking, 0, len(records))
	for i, rec := range records {
		var w wire.Booking
		if err := json.Unmarshal(rec, &w); err != nil {
			malformedTotal.WithLabelValues(bookingsPath).Inc()
			return nil, &MalformedResponseError{
				Resource: bookingsPath,
				Snippet:  snippet(rec),
				Err:      fmt.Errorf("record %d: %w", i, err),
			}
		}
		bookings = append(bookings, wire.BookingFromWire(w, c.logger))
	}
	return bookings, nil
}

// ListCategories fetches the category name list.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, categoriesPath)
	if err != nil {
		return nil, err
	}
	names, err := decodeNames(body)
	if err != nil {
		malformedTotal.WithLabelValues(categoriesPath).Inc()
		return nil, &MalformedResponseError{
			Resource: categoriesPath,
			Snippet:  snippet(body),
			Err:      err,
		}
	}
	return names, nil
}

// list fetches and unwraps a record list endpoint.
func (c *Client) list(ctx context.Context, resource string) ([]json.RawMessage, error) {
	body, err := c.get(ctx, resource)
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(body)
	if err != nil {
		malformedTotal.WithLabelValues(resource).Inc()
		return nil, &MalformedResponseError{
			Resource: resource,
			Snippet:  snippet(body),
			Err:      err,
		}
	}
	return records, nil
}

// get performs a list read and returns the raw body.
func (c *Client) get(ctx context.Context, resource string) ([]byte, error) {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(resource, "list").Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+resource, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(resource, "list", "network_error").Inc()
		c.logger.Error().Err(err).Str("resource", resource).Msg("List request failed")
		return nil, &TransportError{Resource: resource, Op: "list", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(resource, "list", "read_error").Inc()
		return nil, &TransportError{Resource: resource, Op: "list", StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		requestsTotal.WithLabelValues(resource, "list", fmt.Sprintf("%d", resp.StatusCode)).Inc()
		c.logger.Warn().
			Str("resource", resource).
			Int("status", resp.StatusCode).
			Msg("List request rejected")
		return nil, &TransportError{Resource: resource, Op: "list", StatusCode: resp.StatusCode}
	}

	requestsTotal.WithLabelValues(resource, "list", "ok").Inc()
	return body, nil
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// CreateTour creates a tour on the backend.
func (c *Client) CreateTour(ctx context.Context, t model.Tour) error {
	w := wire.TourToWire(t)
	return c.mutate(ctx, mutation{
		resource: toursPath,
		op:       "create",
		params:   withAction(w.Values(), "create"),
		jsonBody: w,
		method:   http.MethodPost,
		path:     toursPath,
	})
}

// UpdateTour updates a tour on the backend.
func (c *Client) UpdateTour(ctx context.Context, t model.Tour) error {
	w := wire.TourToWire(t)
	return c.mutate(ctx, mutation{
		resource: toursPath,
		op:       "update",
		params:   withAction(w.Values(), "update"),
		jsonBody: w,
		method:   http.MethodPut,
		path:     toursPath + "/" + url.PathEscape(t.ID),
	})
}

// DeleteTour deletes a tour by id.
func (c *Client) DeleteTour(ctx context.Context, id string) error {
	params := url.Values{}
	params.Set("id", id)
	return c.mutate(ctx, mutation{
		resource: toursPath,
		op:       "delete",
		params:   withAction(params, "delete"),
		method:   http.MethodDelete,
		path:     toursPath + "/" + url.PathEscape(id),
	})
}

// CreateBooking creates a booking on the backend. The backend assigns the
// booking id; the caller learns it from the next list read.
func (c *Client) CreateBooking(ctx context.Context, b model.Booking) error {
	w := wire.BookingToWire(b)
	return c.mutate(ctx, mutation{
		resource: bookingsPath,
		op:       "create",
		params:   withAction(w.Values(), "create"),
		jsonBody: w,
		method:   http.MethodPost,
		path:     bookingsPath,
	})
}

// UpdateBooking updates a booking on the backend.
func (c *Client) UpdateBooking(ctx context.Context, b model.Booking) error {
	w := wire.BookingToWire(b)
	return c.mutate(ctx, mutation{
		resource: bookingsPath,
		op:       "update",
		params:   withAction(w.Values(), "update"),
		jsonBody: w,
		method:   http.MethodPut,
		path:     bookingsPath + "/" + url.PathEscape(b.ID),
	})
}

// DeleteBooking deletes a booking by id.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	params := url.Values{}
	params.Set("id", id)
	return c.mutate(ctx, mutation{
		resource: bookingsPath,
		op:       "delete",
		params:   withAction(params, "delete"),
		method:   http.MethodDelete,
		path:     bookingsPath + "/" + url.PathEscape(id),
	})
}

// CreateCategory creates a category. Categories are transmitted as bare
// names; there is no numeric identifier in the protocol.
func (c *Client) CreateCategory(ctx context.Context, name string) error {
	params := url.Values{}
	params.Set("name", name)
	return c.mutate(ctx, mutation{
		resource: categoriesPath,
		op:       "create",
		params:   withAction(params, "create"),
		jsonBody: nameElement{Name: name},
		method:   http.MethodPost,
		path:     categoriesPath,
	})
}

// DeleteCategory deletes a category by name.
func (c *Client) DeleteCategory(ctx context.Context, name string) error {
	params := url.Values{}
	params.Set("name", name)
	return c.mutate(ctx, mutation{
		resource: categoriesPath,
		op:       "delete",
		params:   withAction(params, "delete"),
		method:   http.MethodDelete,
		path:     categoriesPath + "/" + url.PathEscape(name),
	})
}

// mutation describes one create/update/delete call: the legacy
// parameter-encoded form and the JSON-body fallback form.
type mutation struct {
	resource string
	op       string
	params   url.Values // primary: form-encoded POST to the collection path
	jsonBody any        // fallback body; nil sends no body
	method   string     // fallback method
	path     string     // fallback path relative to the base URL
}

// ack is the acknowledgement body both transports report.
type ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// mutate runs the dual-strategy transport. The primary parameter-encoded
// attempt is a compatibility shim for older backend deployments; when it
// is rejected in any way the structured JSON-body attempt runs before the
// operation is reported as failed.
func (c *Client) mutate(ctx context.Context, m mutation) error {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(m.resource, m.op).Observe(time.Since(start).Seconds())
	}()

	primaryErr := c.attemptForm(ctx, m)
	if primaryErr == nil {
		requestsTotal.WithLabelValues(m.resource, m.op, "ok_primary").Inc()
		return nil
	}

	fallbacksTotal.WithLabelValues(m.resource, m.op).Inc()
	c.logger.Warn().
		Err(primaryErr).
		Str("resource", m.resource).
		Str("operation", m.op).
		Msg("Primary transport rejected, attempting JSON-body fallback")

	fallbackErr := c.attemptJSON(ctx, m)
	if fallbackErr == nil {
		requestsTotal.WithLabelValues(m.resource, m.op, "ok_fallback").Inc()
		return nil
	}

	requestsTotal.WithLabelValues(m.resource, m.op, "failed").Inc()
	c.logger.Error().
		Err(fallbackErr).
		Str("resource", m.resource).
		Str("operation", m.op).
		Msg("Both transport strategies failed")
	return fallbackErr
}

// attemptForm issues the primary parameter-encoded request.
func (c *Client) attemptForm(ctx context.Context, m mutation) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+m.resource, strings.NewReader(m.params.Encode()))
	if err != nil {
		return &TransportError{Resource: m.resource, Op: m.op, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return c.execMutation(req, m)
}

// attemptJSON issues the fallback structured-body request.
func (c *Client) attemptJSON(ctx context.Context, m mutation) error {
	var body io.Reader
	if m.jsonBody != nil {
		data, err := json.Marshal(m.jsonBody)
		if err != nil {
			return &TransportError{Resource: m.resource, Op: m.op, Err: err}
		}
		body = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, m.method, c.baseURL+"/"+m.path, body)
	if err != nil {
		return &TransportError{Resource: m.resource, Op: m.op, Err: err}
	}
	if m.jsonBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.execMutation(req, m)
}

// execMutation sends one mutation request and interprets the ack body.
func (c *Client) execMutation(req *http.Request, m mutation) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Resource: m.resource, Op: m.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Resource: m.resource, Op: m.op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Resource: m.resource, Op: m.op, StatusCode: resp.StatusCode}
	}

	var a ack
	if err := json.Unmarshal(body, &a); err != nil {
		malformedTotal.WithLabelValues(m.resource).Inc()
		return &MalformedResponseError{Resource: m.resource, Snippet: snippet(body), Err: err}
	}
	if !a.Success {
		return &TransportError{
			Resource:   m.resource,
			Op:         m.op,
			StatusCode: resp.StatusCode,
			Message:    a.Message,
		}
	}
	return nil
}

func withAction(v url.Values, action string) url.Values {
	v.Set("action", action)
	return v
}
