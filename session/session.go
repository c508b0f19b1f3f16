// Package session wires the stores, the autosave channel, the calculator
// and the renderer around one working document. It is the surface a UI
// shell embeds: every edit flows through Update, which keeps the autosave
// channel fed.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sainvoice/invoicecore/autosave"
	"github.com/sainvoice/invoicecore/calc"
	"github.com/sainvoice/invoicecore/collections"
	"github.com/sainvoice/invoicecore/entitlement"
	"github.com/sainvoice/invoicecore/logging"
	"github.com/sainvoice/invoicecore/models"
	"github.com/sainvoice/invoicecore/render"
	"github.com/sainvoice/invoicecore/storage"
)

// ErrDraftNotFound is returned when loading or applying an unknown id.
var ErrDraftNotFound = errors.New("draft not found")

// ErrClientNotFound is returned when applying an unknown client id.
var ErrClientNotFound = errors.New("client not found")

// ErrGenerationInProgress guards against overlapping PDF generation; the
// UI disables the button on it.
var ErrGenerationInProgress = errors.New("a document is already being generated")

// Session owns the working document and its collaborators.
type Session struct {
	log      logging.Logger
	drafts   *collections.Store[models.InvoiceDraft]
	clients  *collections.Store[models.SavedClient]
	channel  *autosave.Channel
	unlocks  *entitlement.Store
	renderer render.Renderer
	now      func() time.Time

	mu         sync.Mutex
	doc        models.InvoiceDocument
	generating bool
}

// New builds a session over the given KV backend and renderer. Call Start
// before anything else.
func New(kv storage.KV, renderer render.Renderer, debounce time.Duration, log logging.Logger) *Session {
	return &Session{
		log:      log,
		drafts:   collections.NewDraftStore(kv, log),
		clients:  collections.NewClientStore(kv, log),
		channel:  autosave.New(kv, debounce, log),
		unlocks:  entitlement.NewStore(kv, log),
		renderer: renderer,
		now:      time.Now,
	}
}

// Start loads every persisted collection and initializes the working
// document. An autosave snapshot, when present, takes priority over the
// blank dated defaults.
func (s *Session) Start(ctx context.Context) {
	s.drafts.Load(ctx)
	s.clients.Load(ctx)
	s.unlocks.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.channel.LoadLast(ctx); ok {
		s.doc = doc
		return
	}
	s.doc = models.NewDocument(s.now())
}

// Close flushes any pending autosave.
func (s *Session) Close() {
	s.channel.Flush()
}

// Document returns a deep copy of the working document.
func (s *Session) Document() models.InvoiceDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Update applies an edit to the working document and schedules an
// autosave of the result.
func (s *Session) Update(fn func(doc *models.InvoiceDocument)) {
	s.mu.Lock()
	fn(&s.doc)
	doc := s.doc
	s.mu.Unlock()

	s.channel.Schedule(doc)
}

// AddLineItem appends an empty line item.
func (s *Session) AddLineItem() {
	s.Update(func(doc *models.InvoiceDocument) { doc.AddLineItem() })
}

// RemoveLineItem removes an item; the last remaining item stays put.
func (s *Session) RemoveLineItem(id string) {
	s.Update(func(doc *models.InvoiceDocument) { doc.RemoveLineItem(id) })
}

// SetItemQuantity coerces raw input (invalid values become 1).
func (s *Session) SetItemQuantity(id, raw string) {
	s.Update(func(doc *models.InvoiceDocument) {
		doc.UpdateLineItem(id, func(li *models.LineItem) { li.Quantity = models.CoerceQuantity(raw) })
	})
}

// SetItemUnitPrice coerces raw input (invalid values become 0).
func (s *Session) SetItemUnitPrice(id, raw string) {
	s.Update(func(doc *models.InvoiceDocument) {
		doc.UpdateLineItem(id, func(li *models.LineItem) { li.UnitPrice = models.CoercePrice(raw) })
	})
}

// Totals recomputes the monetary summary from the current line items.
func (s *Session) Totals() calc.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calc.Compute(s.doc.LineItems, s.doc.IncludeVAT)
}

// SaveDraft snapshots the working document under a user-supplied name.
func (s *Session) SaveDraft(ctx context.Context, name string) (models.InvoiceDraft, error) {
	s.mu.Lock()
	doc := s.doc.Clone()
	s.mu.Unlock()

	draft, err := s.drafts.Insert(ctx, models.InvoiceDraft{Name: name, Data: doc})
	if err != nil {
		return models.InvoiceDraft{}, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// LoadDraft replaces the whole working document with the draft's snapshot
// and supersedes the autosave slot with it.
func (s *Session) LoadDraft(ctx context.Context, id string) error {
	draft, ok := s.drafts.Get(id)
	if !ok {
		return ErrDraftNotFound
	}

	s.mu.Lock()
	// clone so edits to the working document never reach back into the
	// cached draft
	s.doc = draft.Data.Clone()
	doc := s.doc
	s.mu.Unlock()

	s.channel.Schedule(doc)
	return nil
}

// DeleteDraft removes a draft; unknown ids are ignored.
func (s *Session) DeleteDraft(ctx context.Context, id string) error {
	return s.drafts.Remove(ctx, id)
}

// Drafts lists saved drafts, newest first.
func (s *Session) Drafts() []models.InvoiceDraft {
	return s.drafts.All()
}

// SaveClient stores a reusable contact. A name matching an existing
// client (case-insensitively) updates that entry in place.
func (s *Session) SaveClient(ctx context.Context, name, email, address string) (models.SavedClient, error) {
	client, err := s.clients.Insert(ctx, models.SavedClient{Name: name, Email: email, Address: address})
	if err != nil {
		return models.SavedClient{}, fmt.Errorf("failed to save client: %w", err)
	}
	return client, nil
}

// ApplyClient copies a saved client's details into the working document.
func (s *Session) ApplyClient(ctx context.Context, id string) error {
	client, ok := s.clients.Get(id)
	if !ok {
		return ErrClientNotFound
	}
	s.Update(func(doc *models.InvoiceDocument) {
		doc.ClientName = client.Name
		doc.ClientEmail = client.Email
		doc.ClientAddress = client.Address
	})
	return nil
}

// DeleteClient removes a saved client; unknown ids are ignored.
func (s *Session) DeleteClient(ctx context.Context, id string) error {
	return s.clients.Remove(ctx, id)
}

// Clients lists saved clients, newest first.
func (s *Session) Clients() []models.SavedClient {
	return s.clients.All()
}

// IsUnlocked reports the entitlement state.
func (s *Session) IsUnlocked() bool { return s.unlocks.IsUnlocked() }

// Unlock sets the entitlement flag (idempotent).
func (s *Session) Unlock(ctx context.Context) error { return s.unlocks.Unlock(ctx) }

// ResetEntitlement clears the unlock flag and the logo together.
func (s *Session) ResetEntitlement(ctx context.Context) error { return s.unlocks.Reset(ctx) }

// SetLogo validates and stores the logo; rejections surface directly.
func (s *Session) SetLogo(ctx context.Context, mediaType string, data []byte) error {
	return s.unlocks.SetLogo(ctx, mediaType, data)
}

// ClearLogo removes the stored logo.
func (s *Session) ClearLogo(ctx context.Context) error { return s.unlocks.ClearLogo(ctx) }

// Logo returns the stored logo regardless of unlock state; rendering is
// where the gate applies.
func (s *Session) Logo() (string, bool) { return s.unlocks.Logo() }

// GeneratePDF renders the working document and returns the artifact with
// its filename. The logo only appears when unlocked; locked output gets
// the watermark instead. Overlapping calls fail with
// ErrGenerationInProgress, and a render failure leaves all state as it
// was.
func (s *Session) GeneratePDF(ctx context.Context) (string, []byte, error) {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return "", nil, ErrGenerationInProgress
	}
	s.generating = true
	doc := s.doc
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	in := render.Input{
		Document: doc,
		Totals:   calc.Compute(doc.LineItems, doc.IncludeVAT),
	}
	if s.unlocks.IsUnlocked() {
		if logo, ok := s.unlocks.Logo(); ok {
			in.LogoDataURL = logo
		}
	} else {
		in.Watermark = true
	}

	data, err := s.renderer.Render(ctx, in)
	if err != nil {
		s.log.Error(ctx, "pdf generation failed", "err", err)
		return "", nil, fmt.Errorf("failed to render document: %w", err)
	}
	return render.FileName(doc, s.now()), data, nil
}

// ShareMessage builds the share-text payload for the working document.
func (s *Session) ShareMessage() string {
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()
	return render.ShareMessage(doc, calc.Compute(doc.LineItems, doc.IncludeVAT))
}

// MailtoURL builds the pre-filled email compose link.
func (s *Session) MailtoURL() string {
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()
	return render.MailtoURL(doc, calc.Compute(doc.LineItems, doc.IncludeVAT))
}
