// Package editor runs an editing session: selection, field edits, resets and
// the load/save round trips with the shared backends. Every change is
// written through to the local store right after the in-memory update.
//
// Remote round trips are stamped with a sequence number. Load and save share
// one sequence, the document lookup has its own; a response older than the
// latest request of its sequence is dropped, so the last request wins.
package editor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/config"
	"github.com/goliatone/go-reportforms/pkg/preview"
	"github.com/goliatone/go-reportforms/pkg/remote"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/store"
)

// Editor owns the session state. It is safe for concurrent use.
type Editor struct {
	opts Options
	log  *zap.Logger

	mu    sync.Mutex
	state State
	// templateSeq orders load and save; documentSeq orders lookups.
	templateSeq uint64
	documentSeq uint64
}

// New restores every template from the local store. Missing or unreadable
// values start at their defaults.
func New(ctx context.Context, fns ...OptionFn) (*Editor, error) {
	opts := NewOptions(fns...)
	state := NewState()
	for _, desc := range schema.Kinds() {
		tpl, found, err := store.LoadTemplate(ctx, opts.Store, desc.Kind)
		if err != nil {
			if tpl == nil {
				return nil, fmt.Errorf("editor: restore %s: %w", desc.Kind, err)
			}
			opts.Logger.Warn("stored template unreadable, using defaults",
				zap.String("kind", desc.Kind.String()), zap.Error(err))
		}
		state.Templates[desc.Kind] = tpl
		opts.Logger.Debug("template restored",
			zap.String("kind", desc.Kind.String()), zap.Bool("stored", found))
	}
	return &Editor{opts: opts, log: opts.Logger, state: state}, nil
}

// NewClients builds one remote client per family from cfg. Families without
// a base get an unconfigured client, and so do relative bases: they only
// resolve in a browser page behind the portal proxy, set Origin otherwise.
func NewClients(cfg config.Config, fns ...remote.OptionFn) (map[schema.Family]*remote.Client, error) {
	families := []schema.Family{
		schema.FamilySalesManagement,
		schema.FamilySalesReport,
		schema.FamilyForeignVisitor,
		schema.FamilyAccountsReceivable,
	}
	clients := make(map[schema.Family]*remote.Client, len(families))
	for _, family := range families {
		base := cfg.BaseFor(family)
		if strings.HasPrefix(base, "/") {
			base = ""
		}
		client, err := remote.New(base, fns...)
		if err != nil {
			return nil, fmt.Errorf("editor: remote for %s: %w", family, err)
		}
		clients[family] = client
	}
	return clients, nil
}

// State returns a snapshot of the session.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Sample is the data local previews are drawn with.
func (e *Editor) Sample() preview.Sample { return e.opts.Sample }

func (e *Editor) remoteFor(kind schema.Kind) *remote.Client {
	desc, ok := schema.Lookup(kind)
	if !ok {
		return nil
	}
	return e.opts.Remotes[desc.Family]
}

// Helper describes the connection of the selected kind for the sidebar.
type Helper struct {
	Title string `json:"title"`
	Base  string `json:"base"`
	Value string `json:"value"`
	Note  string `json:"note"`
}

func (e *Editor) Helper() Helper {
	state := e.State()
	desc, _ := state.Descriptor()
	h := Helper{Title: HelperTitle, Value: HelperUnset, Note: familyNote(desc.Family)}
	if client := e.remoteFor(state.Selected); client.Configured() {
		h.Base = client.Base()
		h.Value = client.Base()
	}
	return h
}

// persist writes kind through to the local store. Failures are logged; the
// in-memory template stays authoritative.
func (e *Editor) persist(ctx context.Context, kind schema.Kind, tpl any) {
	if err := store.SaveTemplate(ctx, e.opts.Store, kind, tpl); err != nil {
		e.log.Warn("local write failed", zap.String("kind", kind.String()), zap.Error(err))
	}
}

// Select makes kind the active template. Switching into the
// accounts-receivable family refreshes the latest documents.
func (e *Editor) Select(ctx context.Context, kind schema.Kind) error {
	e.mu.Lock()
	wasAr := e.state.Selected.IsAccountsReceivable()
	next, err := e.state.WithSelected(kind)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.state = next
	e.mu.Unlock()

	if e.opts.AutoRefresh && kind.IsAccountsReceivable() && !wasAr {
		e.RefreshDocuments(ctx)
	}
	return nil
}

// Edit sets one field of the active template and writes it through.
func (e *Editor) Edit(ctx context.Context, path string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, err := e.state.WithEdit(path, value)
	if err != nil {
		return err
	}
	e.state = next
	e.persist(ctx, next.Selected, next.Active())
	return nil
}

// Replace swaps the whole template of kind, normalized, and writes it
// through.
func (e *Editor) Replace(ctx context.Context, kind schema.Kind, raw any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, err := e.state.WithTemplate(kind, raw)
	if err != nil {
		return err
	}
	e.state = next
	e.persist(ctx, kind, next.Templates[kind])
	return nil
}

// Reset restores the active template to its default.
func (e *Editor) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kind := e.state.Selected
	next, err := e.state.WithDefaults(kind)
	if err != nil {
		return
	}
	e.state = next.WithStatus(MsgReset)
	e.persist(ctx, kind, e.state.Templates[kind])
}

// begin claims the next template sequence and marks the session busy with
// msg. ok is false when the kind has no configured backend; the status then
// already carries unconfigured.
func (e *Editor) begin(msg, unconfigured string) (seq uint64, kind schema.Kind, client *remote.Client, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kind = e.state.Selected
	client = e.remoteFor(kind)
	if !client.Configured() {
		e.state = e.state.WithStatus(unconfigured)
		return 0, kind, nil, false
	}
	e.templateSeq++
	e.state = e.state.WithStatus(msg).withBusy(true)
	return e.templateSeq, kind, client, true
}

// current reports whether seq is still the latest template request. The
// caller holds mu.
func (e *Editor) current(seq uint64, action string, kind schema.Kind) bool {
	if seq == e.templateSeq {
		return true
	}
	e.log.Info("stale response dropped",
		zap.String("action", action),
		zap.String("kind", kind.String()),
		zap.Uint64("seq", seq),
		zap.Uint64("latest", e.templateSeq),
	)
	return false
}

// Load replaces the active template with the backend copy. Outcomes are
// reported through the status line; Load never fails.
func (e *Editor) Load(ctx context.Context) {
	seq, kind, client, ok := e.begin(MsgLoading, MsgLoadUnconfigured)
	if !ok {
		return
	}
	raw, found, err := client.FetchTemplate(ctx, kind)

	e.mu.Lock()
	if !e.current(seq, "load", kind) {
		e.mu.Unlock()
		return
	}
	next := e.state.withBusy(false)
	emptyMsg, loadedMsg := loadedMessages(kind)
	switch {
	case err != nil:
		next = next.WithStatus(loadFailedPrefix + FailureText(err))
		e.log.Warn("template load failed", zap.String("kind", kind.String()),
			zap.Int("status", remote.StatusCodeOf(err)), zap.Error(err))
	case !found:
		next, _ = next.WithDefaults(kind)
		next = next.WithStatus(emptyMsg)
	default:
		if applied, aerr := next.WithTemplate(kind, raw); aerr == nil {
			next = applied
		}
		next = next.WithStatus(loadedMsg)
	}
	e.state = next
	if err == nil {
		e.persist(ctx, kind, next.Templates[kind])
		e.log.Info("template loaded", zap.String("kind", kind.String()),
			zap.String("source", client.Base()), zap.Bool("found", found))
	}
	e.mu.Unlock()

	if err == nil && kind.IsAccountsReceivable() {
		e.RefreshDocuments(ctx)
	}
}

// Save writes the active template to its backend. Saving settings bumps the
// preview nonce.
func (e *Editor) Save(ctx context.Context) {
	seq, kind, client, ok := e.begin(MsgSaving, MsgSaveUnconfigured)
	if !ok {
		return
	}
	e.mu.Lock()
	payload := e.state.Templates[kind]
	e.mu.Unlock()

	err := client.PutTemplate(ctx, kind, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.current(seq, "save", kind) {
		return
	}
	next := e.state.withBusy(false)
	if err != nil {
		e.state = next.WithStatus(saveFailedPrefix + FailureText(err))
		e.log.Warn("template save failed", zap.String("kind", kind.String()),
			zap.Int("status", remote.StatusCodeOf(err)), zap.Error(err))
		return
	}
	next = next.WithStatus(savedMessage(kind))
	if kind.IsAccountsReceivable() {
		next.PreviewNonce++
	}
	e.state = next
	e.log.Info("template saved", zap.String("kind", kind.String()), zap.String("source", client.Base()))
}

// RefreshDocuments looks up the latest invoice and delivery note. Failures
// end up in State.Documents.Error.
func (e *Editor) RefreshDocuments(ctx context.Context) {
	client := e.opts.Remotes[schema.FamilyAccountsReceivable]

	e.mu.Lock()
	if !client.Configured() {
		docs := e.state.Documents
		docs.Error = preview.MsgArNotConfigured
		e.state = e.state.withDocuments(docs)
		e.mu.Unlock()
		return
	}
	e.documentSeq++
	seq := e.documentSeq
	docs := e.state.Documents
	docs.Loading = true
	docs.Error = ""
	e.state = e.state.withDocuments(docs)
	e.mu.Unlock()

	invoice, err := client.LatestInvoice(ctx)
	var note *remote.DeliveryNote
	var noteErr error
	if err == nil {
		note, noteErr = client.LatestDeliveryNote(ctx)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.documentSeq {
		e.log.Info("stale response dropped", zap.String("action", "documents"),
			zap.Uint64("seq", seq), zap.Uint64("latest", e.documentSeq))
		return
	}
	docs = e.state.Documents
	docs.Loading = false
	if err == nil {
		docs.Invoice = invoice
		err = noteErr
		if noteErr == nil {
			docs.DeliveryNote = note
		}
	}
	if err != nil {
		docs.Error = err.Error()
		e.log.Warn("document lookup failed", zap.Error(err))
	}
	e.state = e.state.withDocuments(docs)
}

// Preview renders the selected template with the session sample and the
// latest document state.
func (e *Editor) Preview() (*preview.Preview, error) {
	state := e.State()
	live := preview.Live{
		Loading:      state.Documents.Loading,
		Error:        state.Documents.Error,
		Invoice:      state.Documents.Invoice,
		DeliveryNote: state.Documents.DeliveryNote,
	}
	if client := e.opts.Remotes[schema.FamilyAccountsReceivable]; client != nil {
		switch {
		case state.Selected == schema.KindArInvoice && live.Invoice != nil:
			live.PDFURL = client.InvoicePDFURL(live.Invoice.ID, state.PreviewNonce)
		case state.Selected == schema.KindArDeliveryNote && live.DeliveryNote != nil:
			live.PDFURL = client.DeliveryNotePDFURL(live.DeliveryNote.ID, state.PreviewNonce)
		}
	}
	return preview.Build(state.Selected, state.Active(), e.opts.Sample, live)
}
