package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestISODate(t *testing.T) {
	ts := time.Date(2025, 3, 7, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "2025-03-07", ISODate(ts))
}

func TestPlusDays(t *testing.T) {
	got, err := PlusDays("2025-01-15", 30)
	require.NoError(t, err)
	require.Equal(t, "2025-02-14", got)

	// month and year rollover
	got, err = PlusDays("2025-12-15", 30)
	require.NoError(t, err)
	require.Equal(t, "2026-01-14", got)
}

func TestPlusDays_BadInput(t *testing.T) {
	_, err := PlusDays("not-a-date", 30)
	require.Error(t, err)
}

func TestFormatLong(t *testing.T) {
	require.Equal(t, "7 March 2025", FormatLong("2025-03-07"))
	require.Equal(t, "", FormatLong(""))
	require.Equal(t, "07/03/2025", FormatLong("07/03/2025"))
}
