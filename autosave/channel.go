// Package autosave persists a debounced single-slot snapshot of the
// working document. A burst of edits produces no writes until input
// pauses for the debounce window; only the last scheduled document is
// written.
package autosave

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sainvoice/invoicecore/logging"
	"github.com/sainvoice/invoicecore/models"
	"github.com/sainvoice/invoicecore/storage"
)

// Key is the storage key of the autosave slot.
const Key = "invoice-autosave"

// DefaultDebounce is the quiet window after the last edit before the
// snapshot is written.
const DefaultDebounce = time.Second

// Channel debounces document snapshots into one storage slot. It is a
// two-state machine: idle, or pending with a single armed timer. Schedule
// cancels and rearms the timer; the fire persists and returns to idle.
type Channel struct {
	kv       storage.KV
	debounce time.Duration
	log      logging.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *models.InvoiceDocument
}

// New builds a channel over kv. A non-positive debounce falls back to
// DefaultDebounce.
func New(kv storage.KV, debounce time.Duration, log logging.Logger) *Channel {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Channel{kv: kv, debounce: debounce, log: log}
}

// Schedule records doc as the next snapshot and (re)arms the debounce
// timer. Call it on every edit; consecutive calls within the window
// coalesce into a single write of the last document.
func (c *Channel) Schedule(doc models.InvoiceDocument) {
	// deep-copy so the timer goroutine never reads line items the caller
	// is still editing
	snap := doc.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = &snap
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.fire)
}

// Flush writes any pending snapshot immediately and disarms the timer.
func (c *Channel) Flush() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.fire()
}

// Stop disarms the timer and drops any pending snapshot without writing.
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = nil
}

// fire persists the pending snapshot and returns the channel to idle.
// Write failures are logged and swallowed: losing one autosave must not
// disturb the rest of the app.
func (c *Channel) fire() {
	c.mu.Lock()
	doc := c.pending
	c.pending = nil
	c.timer = nil
	c.mu.Unlock()

	if doc == nil {
		return
	}

	snap := models.AutosaveSnapshot{Data: *doc, SavedAt: time.Now()}
	data, err := json.Marshal(snap)
	if err != nil {
		c.log.Error(context.Background(), "failed to encode autosave snapshot", "err", err)
		return
	}
	if err := c.kv.Set(context.Background(), Key, data); err != nil {
		c.log.Error(context.Background(), "failed to write autosave snapshot", "err", err)
	}
}

// LoadLast returns the last saved document, if any. A malformed slot
// reads as absent.
func (c *Channel) LoadLast(ctx context.Context) (models.InvoiceDocument, bool) {
	data, ok, err := c.kv.Get(ctx, Key)
	if err != nil {
		c.log.Warn(ctx, "failed to read autosave snapshot", "err", err)
		return models.InvoiceDocument{}, false
	}
	if !ok {
		return models.InvoiceDocument{}, false
	}

	var snap models.AutosaveSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.log.Warn(ctx, "discarding malformed autosave snapshot", "err", err)
		return models.InvoiceDocument{}, false
	}
	return snap.Data, true
}

// Exists reports whether a snapshot is stored.
func (c *Channel) Exists(ctx context.Context) bool {
	_, ok, err := c.kv.Get(ctx, Key)
	if err != nil {
		c.log.Warn(ctx, "failed to check for autosave snapshot", "err", err)
		return false
	}
	return ok
}

// Clear removes the stored snapshot.
func (c *Channel) Clear(ctx context.Context) error {
	return c.kv.Delete(ctx, Key)
}
