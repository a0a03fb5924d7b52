// Package remote talks to the KV and settings backends that hold the shared
// copy of each template, plus the accounts-receivable document lookups used
// by the invoice and delivery note previews.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/apispec"
)

// Client is bound to one backend base URL. A zero base disables every call.
type Client struct {
	base string
	opts Options
	spec *apispec.Spec
}

// New builds a client for base. The embedded API description is used when
// no spec option is supplied.
func New(base string, fns ...OptionFn) (*Client, error) {
	opts := NewOptions(fns...)
	spec := opts.Spec
	if spec == nil {
		loaded, err := apispec.Default()
		if err != nil {
			return nil, fmt.Errorf("remote: %w", err)
		}
		spec = loaded
	}
	return &Client{base: strings.TrimSpace(base), opts: opts, spec: spec}, nil
}

// Base returns the configured base URL.
func (c *Client) Base() string { return c.base }

// Configured reports whether calls will be attempted.
func (c *Client) Configured() bool { return c != nil && c.base != "" }

// JoinBase appends path to base, dropping one trailing slash from base.
func JoinBase(base, path string) string {
	if base == "" {
		return path
	}
	return strings.TrimSuffix(base, "/") + path
}

type kvResponse struct {
	OK    bool `json:"ok"`
	Value any  `json:"value"`
}

// GetKV reads key from the KV endpoint. found is false when the backend
// answers with a missing or falsy value.
func (c *Client) GetKV(ctx context.Context, key string) (any, bool, error) {
	var resp kvResponse
	if err := c.call(ctx, apispec.OpGetKV, map[string]string{"key": key}, nil, nil, &resp, ""); err != nil {
		return nil, false, err
	}
	if isFalsy(resp.Value) {
		return nil, false, nil
	}
	return resp.Value, true, nil
}

// PutKV stores value as the JSON body under key.
func (c *Client) PutKV(ctx context.Context, key string, value any) error {
	return c.call(ctx, apispec.OpPutKV, map[string]string{"key": key}, nil, value, nil, "")
}

type deviceSettingsResponse struct {
	Settings map[string]any `json:"settings"`
}

type deviceSettingsUpdate struct {
	Settings map[string]any `json:"settings"`
}

// GetDeviceSetting reads one entry of the device settings document.
func (c *Client) GetDeviceSetting(ctx context.Context, key string) (any, bool, error) {
	var resp deviceSettingsResponse
	if err := c.call(ctx, apispec.OpGetDeviceSettings, nil, nil, nil, &resp, ""); err != nil {
		return nil, false, err
	}
	value := resp.Settings[key]
	if isFalsy(value) {
		return nil, false, nil
	}
	return value, true, nil
}

// PutDeviceSetting writes {settings: {key: value}}.
func (c *Client) PutDeviceSetting(ctx context.Context, key string, value any) error {
	body := deviceSettingsUpdate{Settings: map[string]any{key: value}}
	return c.call(ctx, apispec.OpPutDeviceSettings, nil, nil, body, nil, "")
}

// Invoice is the summary of the most recent invoice.
type Invoice struct {
	ID           int64  `json:"id"`
	InvoiceNo    string `json:"invoiceNo"`
	CustomerName string `json:"customerName"`
	PeriodFrom   string `json:"periodFrom"`
	PeriodTo     string `json:"periodTo"`
}

// DeliveryNote is the summary of the most recent delivery note.
type DeliveryNote struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customerName"`
	SaleDate     string `json:"saleDate"`
	// ProductName is empty when the note carries none.
	ProductName string `json:"productName,omitempty"`
}

// Lookup names used in preview error messages.
const (
	OpInvoiceLookup      = "請求書取得"
	OpDeliveryNoteLookup = "納品書取得"
)

// LatestInvoice returns the first invoice listed, or nil when there is none.
func (c *Client) LatestInvoice(ctx context.Context) (*Invoice, error) {
	var resp struct {
		Invoices any `json:"invoices"`
	}
	if err := c.call(ctx, apispec.OpListInvoices, nil, nil, nil, &resp, OpInvoiceLookup); err != nil {
		return nil, err
	}
	first, ok := firstObject(resp.Invoices)
	if !ok {
		return nil, nil
	}
	return &Invoice{
		ID:           toID(first["id"]),
		InvoiceNo:    toText(first["invoiceNo"]),
		CustomerName: toText(first["customerName"]),
		PeriodFrom:   toText(first["periodFrom"]),
		PeriodTo:     toText(first["periodTo"]),
	}, nil
}

// LatestDeliveryNote returns the newest delivery note dated inside the
// trailing window ending today, or nil.
func (c *Client) LatestDeliveryNote(ctx context.Context) (*DeliveryNote, error) {
	today := c.opts.Now()
	from := today.AddDate(-c.opts.WindowYears, 0, 0)
	query := url.Values{}
	query.Set("from", from.Format(time.DateOnly))
	query.Set("to", today.Format(time.DateOnly))
	query.Set("limit", "1")

	var resp struct {
		Items any `json:"items"`
	}
	if err := c.call(ctx, apispec.OpListDeliveryNotes, nil, query, nil, &resp, OpDeliveryNoteLookup); err != nil {
		return nil, err
	}
	first, ok := firstObject(resp.Items)
	if !ok {
		return nil, nil
	}
	note := &DeliveryNote{
		ID:           toID(first["id"]),
		CustomerName: toText(first["customerName"]),
		SaleDate:     toText(first["saleDate"]),
	}
	if !isFalsy(first["productName"]) {
		note.ProductName = toText(first["productName"])
	}
	return note, nil
}

// InvoicePDFURL returns the embedded preview URL of an invoice. nonce busts
// caches after each save.
func (c *Client) InvoicePDFURL(id int64, nonce int) string {
	return c.pdfURL(apispec.OpGetInvoicePdf, id, nonce)
}

// DeliveryNotePDFURL returns the embedded preview URL of a delivery note.
func (c *Client) DeliveryNotePDFURL(id int64, nonce int) string {
	return c.pdfURL(apispec.OpGetDeliveryNotePdf, id, nonce)
}

func (c *Client) pdfURL(opID string, id int64, nonce int) string {
	op, ok := c.spec.Operation(opID)
	if !ok {
		return ""
	}
	path, err := op.Expand(map[string]string{"id": strconv.FormatInt(id, 10)})
	if err != nil {
		return ""
	}
	return JoinBase(c.base, path) + "?t=" + strconv.Itoa(nonce)
}

func (c *Client) call(ctx context.Context, opID string, params map[string]string, query url.Values, body, out any, label string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	op, ok := c.spec.Operation(opID)
	if !ok {
		return fmt.Errorf("remote: unknown operation %q", opID)
	}
	path, err := op.Expand(params)
	if err != nil {
		return fmt.Errorf("remote: %w", err)
	}
	target := JoinBase(c.base, path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode %s: %w", opID, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, target, reader)
	if err != nil {
		return fmt.Errorf("remote: build %s: %w", opID, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.opts.Logger.With(
		zap.String("operation", opID),
		zap.String("method", op.Method),
		zap.String("url", target),
		zap.String("request_id", requestID),
	)
	start := time.Now()
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		logger.Warn("remote request failed", zap.Error(err))
		return fmt.Errorf("remote: %s: %w", opID, err)
	}
	defer resp.Body.Close()
	logger.Debug("remote response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return StatusError{Code: resp.StatusCode, Op: label}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("remote: read %s: %w", opID, err)
	}
	if c.opts.ValidateResponses {
		var generic any
		if err := json.Unmarshal(data, &generic); err == nil {
			if verr := c.spec.ValidateResponse(opID, resp.StatusCode, generic); verr != nil {
				logger.Warn("remote response does not match api description", zap.Error(verr))
				return fmt.Errorf("remote: %w", verr)
			}
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("remote: decode %s: %w", opID, err)
	}
	return nil
}

// isFalsy matches the checks the backends rely on: null, false, 0 and ""
// all mean "nothing stored".
func isFalsy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case bool:
		return !typed
	case float64:
		return typed == 0 || math.IsNaN(typed)
	case string:
		return typed == ""
	default:
		return false
	}
}

func firstObject(value any) (map[string]any, bool) {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	first, ok := list[0].(map[string]any)
	return first, ok
}

// toText renders a scalar as text; null and missing become "".
func toText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// toID reads a numeric identifier from a number or numeric string. Anything
// else yields 0.
func toID(value any) int64 {
	switch typed := value.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0
		}
		return int64(typed)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return int64(n)
	default:
		return 0
	}
}
