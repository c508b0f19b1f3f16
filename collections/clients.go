package collections

import (
	"strings"
	"time"

	"github.com/sainvoice/invoicecore/logging"
	"github.com/sainvoice/invoicecore/models"
	"github.com/sainvoice/invoicecore/storage"
)

// ClientsKey is the storage key for the saved client collection.
const ClientsKey = "invoice-saved-clients"

// ClientCapacity caps the saved client collection.
const ClientCapacity = 20

// NewClientStore builds the saved-client collection. Clients deduplicate
// on the case-insensitive name: saving a name that already exists replaces
// that entry in place, keeping its id and position rather than promoting
// it to the front.
func NewClientStore(kv storage.KV, log logging.Logger) *Store[models.SavedClient] {
	return NewStore(kv, Config[models.SavedClient]{
		Key:      ClientsKey,
		Capacity: ClientCapacity,
		ID:       func(c models.SavedClient) string { return c.ID },
		Stamp: func(c models.SavedClient, id string, now time.Time) models.SavedClient {
			c.ID = id
			c.CreatedAt = now
			return c
		},
		KeyOf: func(c models.SavedClient) string { return strings.ToLower(c.Name) },
	}, log)
}
