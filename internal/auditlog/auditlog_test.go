package auditlog_test

import (
	"path/filepath"
	"testing"

	"cloversync/internal/auditlog"

	"github.com/stretchr/testify/require"
)

func testLog(t *testing.T, debug bool) *auditlog.Log {
	t.Helper()

	path := filepath.Join(t.TempDir(), "audit.log")
	log, err := auditlog.New(path, debug, "")
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })

	return log
}

func TestLog_DebugModeOff_SuppressesNonErrors(t *testing.T) {
	log := testLog(t, false)

	log.Log("Processing order #1042", auditlog.LevelInfo)
	log.Log("payload dump", auditlog.LevelDebug)
	log.Log("Clover API request failed: 401", auditlog.LevelError)

	entries, err := log.Recent(50)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, auditlog.LevelError, entries[0].Level)
	require.Equal(t, "Clover API request failed: 401", entries[0].Message)
}

func TestLog_DebugModeOn_KeepsEverything(t *testing.T) {
	log := testLog(t, true)

	log.Log("Processing order #1042", auditlog.LevelInfo)
	log.Log("payload dump", auditlog.LevelDebug)

	entries, err := log.Recent(50)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestRecent_NewestFirstWithLimit(t *testing.T) {
	log := testLog(t, true)

	log.Log("first", auditlog.LevelInfo)
	log.Log("second", auditlog.LevelInfo)
	log.Log("third", auditlog.LevelError)

	entries, err := log.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "third", entries[0].Message)
	require.Equal(t, auditlog.LevelError, entries[0].Level)
	require.Equal(t, "second", entries[1].Message)
	require.NotEmpty(t, entries[0].Timestamp)
}

func TestRecent_NoFileYet(t *testing.T) {
	log := testLog(t, false)

	entries, err := log.Recent(50)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestClear(t *testing.T) {
	log := testLog(t, true)

	log.Log("first", auditlog.LevelInfo)
	require.NoError(t, log.Clear())

	entries, err := log.Recent(50)
	require.NoError(t, err)
	require.Empty(t, entries)
}
