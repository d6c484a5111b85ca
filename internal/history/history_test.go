package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAppendWritesJSONLines(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, Entry{
		Timestamp: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
		Action:    "create",
		TaskID:    "task_1_a",
		Detail:    "Dentist",
	}))
	require.NoError(t, Append(dir, Entry{
		Timestamp: time.Date(2026, time.March, 1, 12, 1, 0, 0, time.UTC),
		Action:    "delete",
		TaskID:    "task_1_a",
		Detail:    "Dentist",
	}))

	f, err := os.Open(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 2)
	require.Equal(t, "create", entries[0].Action)
	require.Equal(t, "delete", entries[1].Action)
	require.Equal(t, "task_1_a", entries[0].TaskID)
}

func TestLogMutationNeverFails(t *testing.T) {
	// Unwritable directory: LogMutation must swallow the error.
	LogMutation(filepath.Join(t.TempDir(), "does", "not", "exist"), "create", "task_x", "t")
}
