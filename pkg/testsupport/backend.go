package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Backend is an in-memory stand-in for the KV, device-settings, invoice and
// delivery-note services.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	kv       map[string]any
	settings map[string]any
	// Invoices and DeliveryNotes are listed newest first.
	Invoices      []map[string]any
	DeliveryNotes []map[string]any
	// Fail answers every request whose route pattern is listed with the
	// given status, e.g. Fail["/api/kv/{key}"] = 500.
	Fail  map[string]int
	calls []string
}

// NewBackend starts a Backend that is closed with the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		kv:       map[string]any{},
		settings: map[string]any{},
		Fail:     map[string]int{},
	}

	r := chi.NewRouter()
	r.Use(b.record)
	r.Get("/api/kv/{key}", b.getKV)
	r.Put("/api/kv/{key}", b.putKV)
	r.Get("/api/device-settings", b.getSettings)
	r.Put("/api/device-settings", b.putSettings)
	r.Get("/api/invoices", b.listInvoices)
	r.Get("/api/delivery-notes", b.listDeliveryNotes)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

// SetKV seeds a KV value.
func (b *Backend) SetKV(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.kv[key] = value
}

// KV returns the stored KV value.
func (b *Backend) KV(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.kv[key]
	return v, ok
}

// SetSetting seeds a device setting.
func (b *Backend) SetSetting(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings[key] = value
}

// Setting returns the stored device setting.
func (b *Backend) Setting(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.settings[key]
	return v, ok
}

// Calls lists "METHOD path" for every request served so far.
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) failed(w http.ResponseWriter, r *http.Request) bool {
	pattern := chi.RouteContext(r.Context()).RoutePattern()
	b.mu.Lock()
	status, ok := b.Fail[pattern]
	b.mu.Unlock()
	if ok {
		http.Error(w, http.StatusText(status), status)
	}
	return ok
}

func (b *Backend) getKV(w http.ResponseWriter, r *http.Request) {
	if b.failed(w, r) {
		return
	}
	value, _ := b.KV(chi.URLParam(r, "key"))
	writeJSON(w, map[string]any{"ok": true, "value": value})
}

func (b *Backend) putKV(w http.ResponseWriter, r *http.Request) {
	if b.failed(w, r) {
		return
	}
	var value any
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.SetKV(chi.URLParam(r, "key"), value)
	writeJSON(w, map[string]any{"ok": true})
}

func (b *Backend) getSettings(w http.ResponseWriter, r *http.Request) {
	if b.failed(w, r) {
		return
	}
	b.mu.Lock()
	settings := make(map[string]any, len(b.settings))
	for k, v := range b.settings {
		settings[k] = v
	}
	b.mu.Unlock()
	writeJSON(w, map[string]any{"settings": settings})
}

func (b *Backend) putSettings(w http.ResponseWriter, r *http.Request) {
	if b.failed(w, r) {
		return
	}
	var body struct {
		Settings map[string]any `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for key, value := range body.Settings {
		b.SetSetting(key, value)
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (b *Backend) listInvoices(w http.ResponseWriter, r *http.Request) {
	if b.failed(w, r) {
		return
	}
	b.mu.Lock()
	items := append([]map[string]any{}, b.Invoices...)
	b.mu.Unlock()
	writeJSON(w, map[string]any{"invoices": items})
}

func (b *Backend) listDeliveryNotes(w http.ResponseWriter, r *http.Request) {
	if b.failed(w, r) {
		return
	}
	b.mu.Lock()
	items := append([]map[string]any{}, b.DeliveryNotes...)
	b.mu.Unlock()
	writeJSON(w, map[string]any{"items": items})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
