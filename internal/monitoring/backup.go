package monitoring

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const backupPrefix = "eduportfolio_"

// BackupScheduler takes periodic snapshots of the sqlite database and
// retains the newest few.
type BackupScheduler struct {
	db         *sql.DB
	backupPath string
	keep       int
	cron       *cron.Cron
}

// NewBackupScheduler creates a new BackupScheduler.
func NewBackupScheduler(db *sql.DB, backupPath string, keep int) *BackupScheduler {
	return &BackupScheduler{
		db:         db,
		backupPath: backupPath,
		keep:       keep,
		cron:       cron.New(),
	}
}

// Start registers the snapshot job with the given cron expression and
// begins scheduling.
func (b *BackupScheduler) Start(schedule string) error {
	if err := os.MkdirAll(b.backupPath, 0755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	if _, err := b.cron.AddFunc(schedule, b.runBackup); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}

	b.cron.Start()
	log.Info().Str("schedule", schedule).Str("path", b.backupPath).Msg("Backup scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for a running snapshot to finish.
func (b *BackupScheduler) Stop() {
	ctx := b.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Backup scheduler stopped")
}

// runBackup snapshots the database with VACUUM INTO, which produces a
// consistent copy without blocking writers, then prunes old snapshots.
func (b *BackupScheduler) runBackup() {
	fileName := fmt.Sprintf("%s%s.db", backupPrefix, time.Now().Format("20060102150405"))
	target := filepath.Join(b.backupPath, fileName)

	if _, err := b.db.Exec(fmt.Sprintf("VACUUM INTO '%s'", target)); err != nil {
		log.Error().Err(err).Str("target", target).Msg("Database backup failed")
		return
	}
	log.Info().Str("target", target).Msg("Database backup written")

	if err := b.prune(); err != nil {
		log.Error().Err(err).Msg("Failed to prune old backups")
	}
}

// prune removes the oldest snapshots beyond the retention count. The
// timestamped names sort chronologically.
func (b *BackupScheduler) prune() error {
	entries, err := os.ReadDir(b.backupPath)
	if err != nil {
		return err
	}

	var snapshots []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), backupPrefix) {
			snapshots = append(snapshots, entry.Name())
		}
	}
	if len(snapshots) <= b.keep {
		return nil
	}

	sort.Strings(snapshots)
	for _, name := range snapshots[:len(snapshots)-b.keep] {
		if err := os.Remove(filepath.Join(b.backupPath, name)); err != nil {
			return err
		}
		log.Info().Str("snapshot", name).Msg("Pruned old backup")
	}
	return nil
}
