package editor_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportforms/pkg/config"
	"github.com/goliatone/go-reportforms/pkg/editor"
	"github.com/goliatone/go-reportforms/pkg/preview"
	"github.com/goliatone/go-reportforms/pkg/remote"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T, base string) *remote.Client {
	t.Helper()
	client, err := remote.New(base)
	if err != nil {
		t.Fatalf("remote: %v", err)
	}
	return client
}

func newEditor(t *testing.T, s store.Store, fns ...editor.OptionFn) *editor.Editor {
	t.Helper()
	fns = append([]editor.OptionFn{editor.WithStore(s)}, fns...)
	ed, err := editor.New(context.Background(), fns...)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	return ed
}

func storedTemplate(t *testing.T, s store.Store, kind schema.Kind) any {
	t.Helper()
	tpl, found, err := store.LoadTemplate(context.Background(), s, kind)
	if err != nil || !found {
		t.Fatalf("load %s: found=%v err=%v", kind, found, err)
	}
	return tpl
}

func TestNew_RestoresLocalTemplates(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := s.Save(ctx, schema.RemittanceKey, []byte(`{"text":{"docTitle":"控え"}}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Save(ctx, schema.SalesDailyKey, []byte(`{not json`)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	state := newEditor(t, s).State()
	if state.Selected != schema.KindRemittance {
		t.Fatalf("unexpected selection %s", state.Selected)
	}
	if got := state.Templates[schema.KindRemittance].(schema.RemittanceTemplate).Text.DocTitle; got != "控え" {
		t.Fatalf("unexpected doc title %q", got)
	}
	if diff := cmp.Diff(schema.DefaultSalesDaily(), state.Templates[schema.KindSalesDaily]); diff != "" {
		t.Fatalf("malformed value should restore defaults (-want +got):\n%s", diff)
	}
	if state.StatusText() != editor.MsgIdle {
		t.Fatalf("unexpected status %q", state.StatusText())
	}
}

func TestState_CopyWithUpdate(t *testing.T) {
	before := editor.NewState()
	after, err := before.WithEdit("text.docTitle", "新しい題名")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := before.Active().(schema.RemittanceTemplate).Text.DocTitle; got != schema.DefaultRemittance().Text.DocTitle {
		t.Fatalf("receiver must not change, got %q", got)
	}
	if got := after.Active().(schema.RemittanceTemplate).Text.DocTitle; got != "新しい題名" {
		t.Fatalf("unexpected title %q", got)
	}
	if _, err := before.WithSelected("missing"); !errors.Is(err, schema.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if _, err := before.WithEdit("text.nope", "x"); !errors.Is(err, schema.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestEditor_EditWritesThrough(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	ed := newEditor(t, s)

	if err := ed.Select(ctx, schema.KindArInvoice); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := ed.Edit(ctx, "titleFontSize", 999); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := ed.State().Active().(schema.ArInvoiceSettings).TitleFontSize; got != 32 {
		t.Fatalf("edit should clamp, got %v", got)
	}
	if got := storedTemplate(t, s, schema.KindArInvoice).(schema.ArInvoiceSettings).TitleFontSize; got != 32 {
		t.Fatalf("store should hold the clamped value, got %v", got)
	}

	// Unconfigured accounts-receivable base surfaces in the document state.
	if got := ed.State().Documents.Error; got != preview.MsgArNotConfigured {
		t.Fatalf("unexpected document error %q", got)
	}
}

func TestEditor_ResetAndReplace(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	ed := newEditor(t, s)

	if err := ed.Replace(ctx, schema.KindRemittance, map[string]any{"layout": map[string]any{"qrSizeMm": "30"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := ed.State().Active().(schema.RemittanceTemplate).Layout.QRSizeMm; got != 30 {
		t.Fatalf("unexpected qr size %v", got)
	}
	ed.Reset(ctx)
	state := ed.State()
	if state.Status != editor.MsgReset {
		t.Fatalf("unexpected status %q", state.Status)
	}
	if diff := cmp.Diff(schema.DefaultRemittance(), storedTemplate(t, s, schema.KindRemittance)); diff != "" {
		t.Fatalf("reset should persist defaults (-want +got):\n%s", diff)
	}
}

func TestEditor_NotConfigured(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t, store.NewMemoryStore(), editor.WithRemote(schema.FamilySalesManagement, newClient(t, "")))

	ed.Load(ctx)
	if got := ed.State().Status; got != editor.MsgLoadUnconfigured {
		t.Fatalf("unexpected status %q", got)
	}
	ed.Save(ctx)
	if got := ed.State().Status; got != editor.MsgSaveUnconfigured {
		t.Fatalf("unexpected status %q", got)
	}
	helper := ed.Helper()
	if helper.Value != editor.HelperUnset || helper.Note != "保存は mine-trout-cash のKVに反映されます。" {
		t.Fatalf("unexpected helper %+v", helper)
	}
}

func kvServer(t *testing.T, values map[string]any, status int) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var puts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "unavailable", status)
			return
		}
		key := strings.TrimPrefix(r.URL.Path, "/api/kv/")
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			puts = append(puts, key+"="+string(body))
			mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "value": values[key]})
	}))
	t.Cleanup(srv.Close)
	return srv, &puts
}

func TestEditor_LoadFromKV(t *testing.T) {
	ctx := context.Background()
	srv, _ := kvServer(t, map[string]any{
		schema.SalesDailyKey: map[string]any{"text": map[string]any{"title": "日報"}},
	}, http.StatusOK)
	s := store.NewMemoryStore()
	ed := newEditor(t, s, editor.WithRemote(schema.FamilySalesReport, newClient(t, srv.URL)),
		editor.WithRemote(schema.FamilyForeignVisitor, newClient(t, srv.URL)))

	if err := ed.Select(ctx, schema.KindSalesDaily); err != nil {
		t.Fatalf("select: %v", err)
	}
	ed.Load(ctx)
	state := ed.State()
	if state.Status != editor.MsgLoaded || state.Busy {
		t.Fatalf("unexpected state %q busy=%v", state.Status, state.Busy)
	}
	if got := storedTemplate(t, s, schema.KindSalesDaily).(schema.SalesDailyTemplate).Text.Title; got != "日報" {
		t.Fatalf("loaded template should be written through, got %q", got)
	}
	if got := ed.Helper().Value; got != srv.URL {
		t.Fatalf("unexpected helper value %q", got)
	}

	if err := ed.Select(ctx, schema.KindForeignVisitor); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := ed.Edit(ctx, "text.orgName", "変更"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	ed.Load(ctx)
	state = ed.State()
	if state.Status != editor.MsgRemoteEmpty {
		t.Fatalf("unexpected status %q", state.Status)
	}
	if diff := cmp.Diff(schema.DefaultForeignVisitor(), state.Active()); diff != "" {
		t.Fatalf("empty remote value should reset to defaults (-want +got):\n%s", diff)
	}
}

func TestEditor_FailuresKeepTemplate(t *testing.T) {
	ctx := context.Background()
	srv, _ := kvServer(t, nil, http.StatusInternalServerError)
	ed := newEditor(t, store.NewMemoryStore(), editor.WithRemote(schema.FamilySalesManagement, newClient(t, srv.URL)))
	if err := ed.Edit(ctx, "text.totalLabel", "総計"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	ed.Load(ctx)
	state := ed.State()
	if state.Status != "読み込みに失敗しました: HTTP 500" {
		t.Fatalf("unexpected status %q", state.Status)
	}
	if got := state.Active().(schema.RemittanceTemplate).Text.TotalLabel; got != "総計" {
		t.Fatalf("failed load must keep the template, got %q", got)
	}
	ed.Save(ctx)
	if got := ed.State().Status; got != "保存に失敗しました: HTTP 500" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestEditor_SaveToKV(t *testing.T) {
	ctx := context.Background()
	srv, puts := kvServer(t, nil, http.StatusOK)
	ed := newEditor(t, store.NewMemoryStore(), editor.WithRemote(schema.FamilySalesManagement, newClient(t, srv.URL)))
	if err := ed.Select(ctx, schema.KindRemittanceAr); err != nil {
		t.Fatalf("select: %v", err)
	}

	ed.Save(ctx)
	state := ed.State()
	if state.Status != editor.MsgSaved || state.PreviewNonce != 0 {
		t.Fatalf("unexpected state %q nonce=%d", state.Status, state.PreviewNonce)
	}
	if len(*puts) != 1 || !strings.HasPrefix((*puts)[0], schema.RemittanceArKey+"=") {
		t.Fatalf("unexpected puts %v", *puts)
	}
	var sent schema.RemittanceTemplate
	if err := json.Unmarshal([]byte(strings.TrimPrefix((*puts)[0], schema.RemittanceArKey+"=")), &sent); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if diff := cmp.Diff(schema.DefaultRemittanceAr(), sent); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func arServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/device-settings" && r.Method == http.MethodPut:
			io.Copy(io.Discard, r.Body)
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		case r.URL.Path == "/api/device-settings":
			writeJSON(w, http.StatusOK, map[string]any{"settings": map[string]any{
				schema.ArInvoiceKey: map[string]any{"title": "御請求書", "rowHeightMm": 40},
			}})
		case r.URL.Path == "/api/invoices":
			writeJSON(w, http.StatusOK, map[string]any{"invoices": []any{
				map[string]any{"id": 7, "invoiceNo": "INV-7", "customerName": "道の駅", "periodFrom": "2025-12-01", "periodTo": "2025-12-31"},
			}})
		case r.URL.Path == "/api/delivery-notes":
			http.Error(w, "down", http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEditor_AccountsReceivableFlow(t *testing.T) {
	ctx := context.Background()
	srv := arServer(t)
	ed := newEditor(t, store.NewMemoryStore(),
		editor.WithRemote(schema.FamilyAccountsReceivable, newClient(t, srv.URL)))

	if err := ed.Select(ctx, schema.KindArInvoice); err != nil {
		t.Fatalf("select: %v", err)
	}
	docs := ed.State().Documents
	if docs.Invoice == nil || docs.Invoice.ID != 7 {
		t.Fatalf("expected latest invoice, got %+v", docs.Invoice)
	}
	if docs.Error != "納品書取得: HTTP 502" || docs.Loading {
		t.Fatalf("unexpected document state %+v", docs)
	}

	ed.Load(ctx)
	state := ed.State()
	if state.Status != editor.MsgInvoiceLoaded {
		t.Fatalf("unexpected status %q", state.Status)
	}
	settings := state.Active().(schema.ArInvoiceSettings)
	if settings.Title != "御請求書" || settings.RowHeightMm != 10 {
		t.Fatalf("unexpected settings %+v", settings)
	}

	ed.Save(ctx)
	state = ed.State()
	if state.Status != editor.MsgArSaved || state.PreviewNonce != 1 {
		t.Fatalf("unexpected state %q nonce=%d", state.Status, state.PreviewNonce)
	}
	p, err := ed.Preview()
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if want := srv.URL + "/api/invoices/7/pdf?t=1"; p.Document.PDFURL != want {
		t.Fatalf("want %q, got %q", want, p.Document.PDFURL)
	}

	if err := ed.Select(ctx, schema.KindArDeliveryNote); err != nil {
		t.Fatalf("select: %v", err)
	}
	ed.Load(ctx)
	if got := ed.State().Status; got != editor.MsgDeliveryEmpty {
		t.Fatalf("unexpected status %q", got)
	}
	if got := ed.Helper().Note; got != "保存は accounts-receivable の設定に反映されます。" {
		t.Fatalf("unexpected note %q", got)
	}
}

func TestEditor_StaleLoadIsDropped(t *testing.T) {
	ctx := context.Background()
	arrived := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			once.Do(func() { close(arrived) })
			<-release
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "value": map[string]any{"text": map[string]any{"docTitle": "古い"}}})
			return
		}
		io.Copy(io.Discard, r.Body)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	ed := newEditor(t, store.NewMemoryStore(), editor.WithRemote(schema.FamilySalesManagement, newClient(t, srv.URL)))

	done := make(chan struct{})
	go func() {
		defer close(done)
		ed.Load(ctx)
	}()
	<-arrived
	ed.Save(ctx)
	close(release)
	<-done

	state := ed.State()
	if state.Status != editor.MsgSaved {
		t.Fatalf("older load must not overwrite the save status, got %q", state.Status)
	}
	if got := state.Active().(schema.RemittanceTemplate).Text.DocTitle; got != schema.DefaultRemittance().Text.DocTitle {
		t.Fatalf("stale load applied: %q", got)
	}
	if state.Busy {
		t.Fatalf("session should not stay busy")
	}
}

func TestFailureText(t *testing.T) {
	if got := editor.FailureText(remote.StatusError{Code: 404, Op: "x"}); got != "HTTP 404" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := editor.FailureText(errors.New("connection refused")); got != "connection refused" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestFailed(t *testing.T) {
	for status, want := range map[string]bool{
		editor.MsgLoadUnconfigured:   true,
		editor.MsgSaveUnconfigured:   true,
		"読み込みに失敗しました: HTTP 500": true,
		"保存に失敗しました: timeout":      true,
		editor.MsgSaved:              false,
		editor.MsgRemoteEmpty:        false,
		"":                           false,
	} {
		if got := editor.Failed(status); got != want {
			t.Fatalf("Failed(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestNewClients(t *testing.T) {
	cfg := config.Default()
	cfg.PagePath = config.EditorPathPrefix
	cfg.API.AccountsReceivable = "https://ar.example.test/api"

	clients, err := editor.NewClients(cfg)
	if err != nil {
		t.Fatalf("new clients: %v", err)
	}
	got := map[schema.Family]string{}
	for family, client := range clients {
		got[family] = client.Base()
	}
	want := map[schema.Family]string{
		schema.FamilySalesManagement:    "",
		schema.FamilySalesReport:        "",
		schema.FamilyForeignVisitor:     "",
		schema.FamilyAccountsReceivable: "https://ar.example.test/api",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bases mismatch (-want +got):\n%s", diff)
	}

	cfg.Origin = "https://portal.example.test"
	clients, err = editor.NewClients(cfg)
	if err != nil {
		t.Fatalf("new clients: %v", err)
	}
	if base := clients[schema.FamilyForeignVisitor].Base(); base != "https://portal.example.test/api" {
		t.Fatalf("expected origin-resolved base, got %q", base)
	}
}
