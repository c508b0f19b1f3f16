package entitlement

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainvoice/invoicecore/logging"
	"github.com/sainvoice/invoicecore/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(storage.NewMemory(), logging.NewNopLogger())
	s.Load(context.Background())
	return s
}

func TestDefaultsLocked(t *testing.T) {
	s := newStore(t)
	assert.False(t, s.IsUnlocked())
	_, ok := s.Logo()
	assert.False(t, ok)
}

func TestUnlock_Idempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Unlock(ctx))
	assert.True(t, s.IsUnlocked())

	require.NoError(t, s.Unlock(ctx))
	assert.True(t, s.IsUnlocked())
}

func TestReset_ClearsFlagAndLogoTogether(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Unlock(ctx))
	require.NoError(t, s.SetLogo(ctx, "image/png", []byte("fake png")))

	require.NoError(t, s.Reset(ctx))
	assert.False(t, s.IsUnlocked())
	_, ok := s.Logo()
	assert.False(t, ok, "reset must drop the logo with the flag")

	// reset from a clean state holds the same invariant
	require.NoError(t, s.Reset(ctx))
	assert.False(t, s.IsUnlocked())
}

func TestSetLogo_RejectsNonImage(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	err := s.SetLogo(ctx, "application/pdf", []byte("%PDF-1.4"))
	require.ErrorIs(t, err, ErrLogoNotImage)
	_, ok := s.Logo()
	assert.False(t, ok, "rejected upload must not change state")
}

func TestSetLogo_RejectsOversized(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetLogo(ctx, "image/png", []byte("small")))

	err := s.SetLogo(ctx, "image/png", bytes.Repeat([]byte{0xff}, MaxLogoBytes))
	require.ErrorIs(t, err, ErrLogoTooLarge)

	logo, ok := s.Logo()
	require.True(t, ok)
	mediaType, data, err := DecodeDataURL(logo)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, []byte("small"), data, "prior logo must survive a rejected upload")
}

func TestSetLogo_AllowedWhileLocked(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetLogo(ctx, "image/jpeg", []byte("jpeg bytes")))
	assert.False(t, s.IsUnlocked())
	_, ok := s.Logo()
	assert.True(t, ok, "storing while locked is allowed; gating happens at render")
}

func TestClearLogo_KeepsUnlock(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Unlock(ctx))
	require.NoError(t, s.SetLogo(ctx, "image/png", []byte("x")))
	require.NoError(t, s.ClearLogo(ctx))

	assert.True(t, s.IsUnlocked())
	_, ok := s.Logo()
	assert.False(t, ok)
}

func TestPersistsAcrossLoads(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()

	s := NewStore(kv, logging.NewNopLogger())
	s.Load(ctx)
	require.NoError(t, s.Unlock(ctx))
	require.NoError(t, s.SetLogo(ctx, "image/png", []byte("logo")))

	s2 := NewStore(kv, logging.NewNopLogger())
	s2.Load(ctx)
	assert.True(t, s2.IsUnlocked())
	logo, ok := s2.Logo()
	require.True(t, ok)
	assert.Equal(t, EncodeDataURL("image/png", []byte("logo")), logo)
}

func TestLoad_MalformedRecordReadsAsLocked(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, Key, []byte("not json")))

	s := NewStore(kv, logging.NewNopLogger())
	s.Load(ctx)
	assert.False(t, s.IsUnlocked())
}

func TestDecodeDataURL_Errors(t *testing.T) {
	_, _, err := DecodeDataURL("http://example.com/x.png")
	require.Error(t, err)

	_, _, err = DecodeDataURL("data:image/png;base64")
	require.Error(t, err)

	_, _, err = DecodeDataURL("data:image/png;base64,!!!")
	require.Error(t, err)
}
