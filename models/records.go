package models

import "time"

// SavedClient is a reusable client contact. Identity for dedup purposes is
// the case-insensitive name, not the id: saving under an existing name
// overwrites that entry's fields while preserving its id.
type SavedClient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// InvoiceDraft is an immutable point-in-time copy of the working document,
// saved under a user-supplied name. Loading a draft replaces the whole
// working document.
type InvoiceDraft struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Data    InvoiceDocument `json:"data"`
	SavedAt time.Time       `json:"savedAt"`
}

// AutosaveSnapshot is the single-slot debounced copy of the working
// document. It is overwritten on every autosave; there is no history.
type AutosaveSnapshot struct {
	Data    InvoiceDocument `json:"data"`
	SavedAt time.Time       `json:"savedAt"`
}

// Entitlement couples the one-time unlock flag with the uploaded logo.
// The two live in a single record on purpose: reset clears them together.
// Logo holds the image as a data URL ("data:image/png;base64,..."); empty
// means no logo.
type Entitlement struct {
	Unlocked bool   `json:"unlocked"`
	Logo     string `json:"logo,omitempty"`
}
