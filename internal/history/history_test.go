package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	Configure(filepath.Join(t.TempDir(), "odget.db"))
	t.Cleanup(Close)
}

func TestRecordAndRecent(t *testing.T) {
	setupDB(t)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	Record(Entry{
		ID:         "run-1",
		URL:        "https://example.com/a/",
		Command:    "wget -r -P /tmp https://example.com/a/",
		ExitCode:   0,
		StartedAt:  base,
		FinishedAt: base.Add(time.Minute),
	})
	Record(Entry{
		ID:         "run-2",
		URL:        "https://example.com/b/",
		Command:    "wget -r -P /tmp https://example.com/b/",
		ExitCode:   8,
		StartedAt:  base.Add(10 * time.Minute),
		FinishedAt: base.Add(11 * time.Minute),
	})

	entries, err := Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "run-2", entries[0].ID)
	assert.Equal(t, 8, entries[0].ExitCode)
	assert.Equal(t, "run-1", entries[1].ID)
	assert.Equal(t, base.Unix(), entries[1].StartedAt.Unix())
}

func TestRecordReplacesSameID(t *testing.T) {
	setupDB(t)

	e := Entry{ID: "run-x", URL: "http://h/", StartedAt: time.Now(), FinishedAt: time.Now()}
	Record(e)
	e.ExitCode = 4
	Record(e)

	entries, err := Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].ExitCode)
}

func TestRecentLimit(t *testing.T) {
	setupDB(t)

	base := time.Now()
	for i := 0; i < 5; i++ {
		Record(Entry{
			ID:         string(rune('a' + i)),
			URL:        "http://h/",
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
		})
	}

	entries, err := Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "e", entries[0].ID)
}
