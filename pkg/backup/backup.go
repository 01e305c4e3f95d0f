// Package backup periodically exports the conversation snapshot to a JSON
// file in the state directory, giving a restore point independent of the
// primary store.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adhocore/gronx"

	"convstore/pkg/conversation"
	"convstore/pkg/logger"
)

// Start starts the backup scheduler if enabled and returns a cancel func.
// The cron expression is validated up front; an empty expression maps to
// daily at 02:00.
func Start(ctx context.Context, store *conversation.Store, backupDir, cronExpr string, enabled bool) (context.CancelFunc, error) {
	if !enabled {
		logger.Info("backup_disabled")
		return func() {}, nil
	}
	if backupDir == "" {
		return nil, fmt.Errorf("backup dir not configured")
	}
	if cronExpr == "" {
		cronExpr = "0 2 * * *"
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("backup_invalid_cron", "cron", cronExpr)
		return nil, fmt.Errorf("invalid backup cron expression: %s", cronExpr)
	}
	if err := os.MkdirAll(backupDir, 0o700); err != nil {
		logger.Error("backup_path_create_failed", "path", backupDir, "error", err)
		return nil, err
	}

	logger.Info("backup_enabled", "cron", cronExpr, "path", backupDir)
	ctx2, cancel := context.WithCancel(ctx)
	go runScheduler(ctx2, store, backupDir, cronExpr)
	return cancel, nil
}

// RunOnce writes a single snapshot export, named by UTC timestamp.
func RunOnce(store *conversation.Store, backupDir string) (string, error) {
	snap := store.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}
	name := filepath.Join(backupDir, "snapshot-"+time.Now().UTC().Format("20060102T150405Z")+".json")
	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, name); err != nil {
		return "", err
	}
	logger.Info("backup_written", "path", name, "threads", len(snap.Threads))
	return name, nil
}

// runScheduler uses gronx to compute the next tick for the configured
// cron expression and sleeps until that time.
func runScheduler(ctx context.Context, store *conversation.Store, backupDir, cronExpr string) {
	for {
		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("backup_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				logger.Info("backup_scheduler_stopping")
				return
			}
			continue
		}
		select {
		case <-time.After(time.Until(next)):
			if _, err := RunOnce(store, backupDir); err != nil {
				logger.Error("backup_run_error", "error", err)
			}
		case <-ctx.Done():
			logger.Info("backup_scheduler_stopping")
			return
		}
	}
}
