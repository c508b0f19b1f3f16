// Package entitlement manages the one-time unlock flag and the uploaded
// logo. The two are one aggregate record by design: resetting the unlock
// clears the logo with it, atomically.
package entitlement

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sainvoice/invoicecore/logging"
	"github.com/sainvoice/invoicecore/models"
	"github.com/sainvoice/invoicecore/storage"
)

// Key is the storage key of the entitlement record.
const Key = "sa-invoice-entitlement"

// MaxLogoBytes bounds the encoded logo size.
const MaxLogoBytes = 2 * 1024 * 1024

// Rejections surfaced directly to the user; every other storage failure
// degrades silently.
var (
	ErrLogoNotImage = errors.New("please upload an image file (PNG or JPG)")
	ErrLogoTooLarge = errors.New("logo must be smaller than 2MB")
)

// Store persists the entitlement record. Reads come from the in-memory
// copy; every mutation writes the whole record back.
type Store struct {
	kv  storage.KV
	log logging.Logger

	mu  sync.Mutex
	rec models.Entitlement
}

func NewStore(kv storage.KV, log logging.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Load reads the record from storage once, at startup. Missing or
// malformed data reads as locked with no logo.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec = models.Entitlement{}

	data, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.log.Warn(ctx, "failed to read entitlement record", "err", err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(data, &s.rec); err != nil {
		s.log.Warn(ctx, "discarding malformed entitlement record", "err", err)
		s.rec = models.Entitlement{}
	}
}

// IsUnlocked reports whether presentation features are unlocked.
func (s *Store) IsUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Unlocked
}

// Unlock sets the flag. It is one-way and idempotent.
func (s *Store) Unlock(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec.Unlocked {
		return nil
	}
	rec := s.rec
	rec.Unlocked = true
	return s.persist(ctx, rec)
}

// Reset clears the unlock flag and the logo together. The coupling is
// deliberate: a reset entitlement keeps nothing behind.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, models.Entitlement{})
}

// Logo returns the stored logo data URL, if any. Storing a logo while
// locked is allowed; callers gate its use at render time.
func (s *Store) Logo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Logo, s.rec.Logo != ""
}

// SetLogo validates and stores the logo. mediaType must be an image type
// and the encoded data URL must not exceed MaxLogoBytes; rejected input
// leaves the stored state untouched.
func (s *Store) SetLogo(ctx context.Context, mediaType string, data []byte) error {
	if !strings.HasPrefix(mediaType, "image/") {
		return ErrLogoNotImage
	}

	encoded := EncodeDataURL(mediaType, data)
	if len(encoded) > MaxLogoBytes {
		return ErrLogoTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.rec
	rec.Logo = encoded
	return s.persist(ctx, rec)
}

// ClearLogo removes the logo, leaving the unlock flag as-is.
func (s *Store) ClearLogo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.rec
	rec.Logo = ""
	return s.persist(ctx, rec)
}

// persist writes rec through and, on success, makes it current.
func (s *Store) persist(ctx context.Context, rec models.Entitlement) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to store entitlement: %w", err)
	}
	s.rec = rec
	return nil
}

// EncodeDataURL packs an asset into a portable data URL string.
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a data URL back into media type and raw bytes.
func DecodeDataURL(dataURL string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("malformed data URL")
	}
	mediaType = strings.TrimSuffix(meta, ";base64")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return mediaType, data, nil
}
