package collections

import (
	"time"

	"github.com/sainvoice/invoicecore/logging"
	"github.com/sainvoice/invoicecore/models"
	"github.com/sainvoice/invoicecore/storage"
)

// DraftsKey is the storage key for the named draft collection.
const DraftsKey = "invoice-drafts"

// DraftCapacity caps the draft collection; the oldest draft is dropped
// when an insert exceeds it.
const DraftCapacity = 10

// NewDraftStore builds the draft collection. Drafts never deduplicate:
// every save is a new snapshot and lands at the front.
func NewDraftStore(kv storage.KV, log logging.Logger) *Store[models.InvoiceDraft] {
	return NewStore(kv, Config[models.InvoiceDraft]{
		Key:      DraftsKey,
		Capacity: DraftCapacity,
		ID:       func(d models.InvoiceDraft) string { return d.ID },
		Stamp: func(d models.InvoiceDraft, id string, now time.Time) models.InvoiceDraft {
			d.ID = id
			d.SavedAt = now
			// a draft is an immutable point-in-time copy: detach it from
			// the working document's line-item array
			d.Data = d.Data.Clone()
			return d
		},
	}, log)
}
