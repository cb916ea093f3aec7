package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"sheetfolio/internal/core"
	ports "sheetfolio/internal/sheets"

	"golang.org/x/oauth2"
	goauth "golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Sheets allows 60 read requests per minute per user.
const (
	defaultReadRate  = rate.Limit(1)
	defaultReadBurst = 5
)

type Client struct {
	svc     *gsheet.Service
	limiter *rate.Limiter
}

// Ensure interface conformance
var _ ports.GridReader = (*Client)(nil)

// New creates a client from explicit API options. Tests use it to point the
// client at a local server.
func New(ctx context.Context, opts ...goption.ClientOption) (*Client, error) {
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc, limiter: rate.NewLimiter(defaultReadRate, defaultReadBurst)}, nil
}

// SetReadRate replaces the client-side limit on values.get calls.
func (c *Client) SetReadRate(limit rate.Limit, burst int) {
	c.limiter = rate.NewLimiter(limit, burst)
}

// NewFromEnv creates a read-only Sheets client using service account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS, in that order.
func NewFromEnv(ctx context.Context) (*Client, error) {
	credentialsJSON, err := credentialsFromEnv(ctx)
	if err != nil {
		return nil, err
	}

	creds, err := goauth.CredentialsFromJSON(ctx, credentialsJSON, gsheet.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	// oauth2 picks the base transport up from the context.
	baseCtx := context.WithValue(ctx, oauth2.HTTPClient, newHTTPClientWithPooling())
	httpClient := oauth2.NewClient(baseCtx, creds.TokenSource)

	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsReadonlyScope)

	client, err := New(ctx, goption.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Google Sheets service created successfully")
	return client, nil
}

func credentialsFromEnv(ctx context.Context) ([]byte, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		slog.InfoContext(ctx, "Using inline JSON credentials")
		return []byte(serviceAccountJSON), nil
	case serviceAccountFile != "":
		slog.InfoContext(ctx, "Reading credentials from file", "path", serviceAccountFile)
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// newHTTPClientWithPooling creates an HTTP client tuned for the Sheets API
// with connection pooling and bounded timeouts.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext: dialer.DialContext,

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}

// ReadGrid implements sheets.GridReader with a single values.get call.
func (c *Client) ReadGrid(ctx context.Context, spreadsheetID, rng string) (core.Grid, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	rng = strings.TrimSpace(rng)
	if spreadsheetID == "" {
		return nil, fmt.Errorf("%w: missing spreadsheet id", ports.ErrInvalidRange)
	}
	if rng == "" {
		return nil, fmt.Errorf("%w: missing range", ports.ErrInvalidRange)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for read quota: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	grid := toGrid(resp.Values)

	slog.DebugContext(ctx, "Read sheet range",
		"range", rng,
		"rows", len(grid),
		"duration_ms", time.Since(start).Milliseconds())
	return grid, nil
}
