package monitoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduportfolio/eduportfolio-be/internal/database"
)

func TestRunBackupWritesSnapshot(t *testing.T) {
	dir := t.TempDir()

	db, err := database.New(filepath.Join(dir, "source.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(db))

	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, os.MkdirAll(backupDir, 0755))

	scheduler := NewBackupScheduler(db, backupDir, 10)
	scheduler.runBackup()

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), backupPrefix)

	// The snapshot is itself a usable database.
	snapshot, err := database.New(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)
	defer snapshot.Close()

	var count int
	require.NoError(t, snapshot.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestPruneKeepsNewestSnapshots(t *testing.T) {
	dir := t.TempDir()

	names := []string{
		backupPrefix + "20250101000000.db",
		backupPrefix + "20250102000000.db",
		backupPrefix + "20250103000000.db",
		"unrelated.txt",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	scheduler := NewBackupScheduler(nil, dir, 2)
	require.NoError(t, scheduler.prune())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var remaining []string
	for _, entry := range entries {
		remaining = append(remaining, entry.Name())
	}
	assert.NotContains(t, remaining, backupPrefix+"20250101000000.db")
	assert.Contains(t, remaining, backupPrefix+"20250102000000.db")
	assert.Contains(t, remaining, backupPrefix+"20250103000000.db")
	assert.Contains(t, remaining, "unrelated.txt")
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	scheduler := NewBackupScheduler(nil, t.TempDir(), 1)
	assert.Error(t, scheduler.Start("not a cron expression"))
}
