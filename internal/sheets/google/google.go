package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	ports "folio/internal/sheets"
)

// Options configures the register client.
type Options struct {
	SpreadsheetID string
	// SheetName is the base tab name; the invoice year is prefixed
	// ("2025 Register") unless the name already starts with a year.
	SheetName          string
	ServiceAccountJSON string
	ServiceAccountFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string

	mu    sync.Mutex
	known map[string]bool // tabs known to exist
}

var _ ports.RegisterWriter = (*Client)(nil)

// New creates a register client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	creds, err := credentials(opts)
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope),
		goption.WithHTTPClient(newHTTPClientWithPooling()))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewWithService(svc, opts)
}

// NewWithService wraps an existing Sheets service.
func NewWithService(svc *gsheet.Service, opts Options) (*Client, error) {
	id := strings.TrimSpace(opts.SpreadsheetID)
	if id == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	base := strings.TrimSpace(opts.SheetName)
	if base == "" {
		base = "Register"
	}
	return &Client{
		svc:           svc,
		spreadsheetID: id,
		sheetBase:     base,
		known:         make(map[string]bool),
	}, nil
}

// credentials resolves inline JSON, a key file, or GOOGLE_APPLICATION_CREDENTIALS.
func credentials(opts Options) ([]byte, error) {
	if j := strings.TrimSpace(opts.ServiceAccountJSON); j != "" {
		return []byte(j), nil
	}
	file := strings.TrimSpace(opts.ServiceAccountFile)
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return b, nil
}

// newHTTPClientWithPooling creates an HTTP client for the Sheets API with
// connection pooling and timeouts.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}

// AppendInvoice adds row to the register tab of its year. The tab is created
// with a header on first use. Invoice numbers already in column A are not
// appended again, so redelivered messages are harmless.
func (c *Client) AppendInvoice(ctx context.Context, row ports.RegisterRow) (string, error) {
	if row.Number == "" {
		return "", errors.New("invoice number is required")
	}
	year := row.Year()
	if year == 0 {
		year = time.Now().Year()
	}
	sheet := yearPrefixedName(c.sheetBase, year)

	if err := c.ensureSheet(ctx, sheet); err != nil {
		return "", err
	}

	col := fmt.Sprintf("'%s'!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, col).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read register: %w", err)
	}
	for i, r := range resp.Values {
		if len(r) > 0 && strings.TrimSpace(fmt.Sprint(r[0])) == row.Number {
			ref := fmt.Sprintf("'%s'!A%d", sheet, i+1)
			slog.InfoContext(ctx, "Invoice already in register", "invoice_number", row.Number, "ref", ref)
			return ref, nil
		}
	}

	values := [][]any{row.Values()}
	if len(resp.Values) == 0 {
		values = append([][]any{ports.RegisterHeader}, values...)
	}

	rng := fmt.Sprintf("'%s'!A:J", sheet)
	out, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append register row: %w", err)
	}

	ref := sheet
	if out.Updates != nil && out.Updates.UpdatedRange != "" {
		ref = out.Updates.UpdatedRange
	}
	return ref, nil
}

// ensureSheet creates the tab when the spreadsheet does not have it yet.
func (c *Client) ensureSheet(ctx context.Context, sheet string) error {
	c.mu.Lock()
	ok := c.known[sheet]
	c.mu.Unlock()
	if ok {
		return nil
	}

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet: %w", err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			c.markKnown(sheet)
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: sheet}},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		var gerr *googleapi.Error
		// Another worker may have created it meanwhile.
		if !errors.As(err, &gerr) || gerr.Code != http.StatusBadRequest || !strings.Contains(gerr.Message, "already exists") {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	}
	slog.InfoContext(ctx, "Created register sheet", "sheet", sheet)
	c.markKnown(sheet)
	return nil
}

func (c *Client) markKnown(sheet string) {
	c.mu.Lock()
	c.known[sheet] = true
	c.mu.Unlock()
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
