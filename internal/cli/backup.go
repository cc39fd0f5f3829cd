package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/streakly/internal/backup"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the storage file."`
	List    BackupListCmd    `cmd:"" help:"List available snapshots, newest first."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the storage file with a snapshot."`
}

var errNotFileBacked = errors.New("backups are only available for SQLite and JSON storage")

func backupManager(ctx *Context) (*backup.Manager, error) {
	if !isFileBacked(ctx.Store) {
		return nil, errNotFileBacked
	}
	return backup.NewManager(ctx.Store.GetConfigPath()).WithClock(ctx.Now), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	ctx.printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	snapshots, err := mgr.List()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		ctx.printf("No backups found in %s\n", mgr.Dir())
		return nil
	}

	ctx.printf("Backups in %s:\n", mgr.Dir())
	for _, s := range snapshots {
		ctx.printf("  %s  %s  %d bytes\n", filepath.Base(s.Path), s.Timestamp.Format("2006-01-02 15:04:05"), s.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Snapshot file name or path."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}

	path := c.Backup
	if filepath.Base(path) == path {
		path = filepath.Join(mgr.Dir(), path)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	ctx.tracker = nil

	previous, err := mgr.Restore(path)
	if err != nil {
		return err
	}
	if previous != "" {
		ctx.printf("Saved current storage to: %s\n", previous)
	}
	ctx.printf("Restored storage from: %s\n", path)
	return ctx.Store.Load()
}

// snapshotBeforeReset keeps a copy of a file store that is about to be replaced
func snapshotBeforeReset(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		if errors.Is(err, backup.ErrNoSource) {
			return nil
		}
		return err
	}
	ctx.printf("Saved existing storage to: %s\n", path)
	return nil
}
