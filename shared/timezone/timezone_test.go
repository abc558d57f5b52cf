package timezone_test

import (
	"testing"
	"time"

	"guesthouse/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useZone(t *testing.T, name string) *time.Location {
	t.Helper()

	require.NoError(t, timezone.Set(name))
	t.Cleanup(func() { _ = timezone.Set("UTC") })

	return timezone.GetLocation()
}

func TestSet(t *testing.T) {
	loc := useZone(t, "Africa/Accra")

	assert.Equal(t, "Africa/Accra", loc.String())
	assert.Equal(t, loc, timezone.Now().Location())
	assert.Error(t, timezone.Set("Mars/Olympus"))
}

func TestParse(t *testing.T) {
	loc := useZone(t, "Asia/Jakarta")

	parsed, err := timezone.Parse("2006-01-02", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc), parsed)

	_, err = timezone.Parse("2006-01-02", "01/03/2026")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	useZone(t, "Asia/Jakarta")

	instant := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-02 03:00", timezone.Format(instant, "2006-01-02 15:04"))
}

func TestStartOfDay(t *testing.T) {
	loc := useZone(t, "Asia/Jakarta")

	late := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, loc), timezone.StartOfDay(late))
}
