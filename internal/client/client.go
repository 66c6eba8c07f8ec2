// Package client fetches call-quality review records from the upstream
// call-logs API. All transport, status, and parse failures surface as one
// typed LoadError at this boundary; the presentation layer decides how to
// offer a retry. The client never degrades to an empty result on failure.
package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/nchandra/callscope/pkg/config"
	"github.com/nchandra/callscope/pkg/models"
)

// ErrorKind classifies a LoadError.
type ErrorKind int

const (
	// KindTransport covers network-level failures: unreachable host,
	// timeout, canceled context.
	KindTransport ErrorKind = iota
	// KindStatus is a non-2xx response.
	KindStatus
	// KindParse is a body that is not valid JSON.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindParse:
		return "parse"
	default:
		return "transport"
	}
}

// LoadError is the single user-visible failure type of the client.
type LoadError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Query holds the optional server-side filter parameters the API accepts.
// Client-side filtering is richer; these only narrow the fetch.
type Query struct {
	Date      string // YYYY-MM-DD
	StaffName string
	SopScore  string
}

// Client issues authenticated requests against the call-logs endpoint.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

// New builds a client from the API configuration.
func New(cfg config.APIConfig) *Client {
	hc := &http.Client{Timeout: cfg.Timeout()}
	if cfg.InsecureSkipVerify {
		hc.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- opt-in for self-signed test upstreams
		}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.ResolveKey(),
		hc:      hc,
	}
}

// FetchAll retrieves the full call-log set, optionally narrowed by q.
func (c *Client) FetchAll(ctx context.Context, q Query) ([]models.CallLog, error) {
	logs, _, err := c.fetch(ctx, q)
	return logs, err
}

// Snapshot retrieves the full set plus a digest of the raw payload, used by
// watch mode to skip re-rendering when nothing changed upstream.
func (c *Client) Snapshot(ctx context.Context) ([]models.CallLog, uint64, error) {
	return c.fetch(ctx, Query{})
}

// Raw returns the response body verbatim, for schema validation.
func (c *Client) Raw(ctx context.Context, q Query) ([]byte, error) {
	return c.get(ctx, q)
}

func (c *Client) fetch(ctx context.Context, q Query) ([]models.CallLog, uint64, error) {
	body, err := c.get(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	logs, err := decodeEnvelope(body)
	if err != nil {
		return nil, 0, err
	}
	return logs, xxhash.Sum64(body), nil
}

func (c *Client) get(ctx context.Context, q Query) ([]byte, error) {
	u, err := url.Parse(c.baseURL + "/api/call-logs")
	if err != nil {
		return nil, &LoadError{Kind: KindTransport, Message: fmt.Sprintf("invalid call-logs URL: %v", err), Err: err}
	}

	params := u.Query()
	if q.Date != "" {
		params.Set("date", q.Date)
	}
	if q.StaffName != "" {
		params.Set("staff_name", q.StaffName)
	}
	if q.SopScore != "" {
		params.Set("sop_score", q.SopScore)
	}
	// Cache buster: every refresh must reach the origin, never an
	// intermediary's stale copy.
	params.Set("_t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &LoadError{Kind: KindTransport, Message: fmt.Sprintf("building request: %v", err), Err: err}
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &LoadError{Kind: KindTransport, Message: fmt.Sprintf("call-logs API unreachable: %v", err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Kind: KindTransport, Message: fmt.Sprintf("reading response: %v", err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			Kind:    KindStatus,
			Message: fmt.Sprintf("failed to fetch call logs: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}
	return body, nil
}

// decodeEnvelope accepts either a bare array of records or a {"data": [...]}
// envelope. Any other valid-JSON shape yields an empty set rather than an
// error; only malformed JSON is a parse failure.
func decodeEnvelope(body []byte) ([]models.CallLog, error) {
	var logs []models.CallLog
	if err := json.Unmarshal(body, &logs); err == nil {
		return logs, nil
	}

	var envelope struct {
		Data []models.CallLog `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Data == nil {
			return []models.CallLog{}, nil
		}
		return envelope.Data, nil
	}

	if !json.Valid(body) {
		return nil, &LoadError{Kind: KindParse, Message: "call-logs response is not valid JSON"}
	}
	return []models.CallLog{}, nil
}
