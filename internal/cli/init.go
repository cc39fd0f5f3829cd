package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Discard any existing habits and user name before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	path := ctx.Store.GetConfigPath()

	if isFileBacked(ctx.Store) {
		if _, err := os.Stat(path); err == nil {
			if !c.Force {
				return fmt.Errorf("%w at %s", storage.ErrAlreadyInitialized, path)
			}
			if err := snapshotBeforeReset(ctx); err != nil {
				return fmt.Errorf("failed to back up existing storage: %w", err)
			}
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		if !c.Force || !errors.Is(err, storage.ErrAlreadyInitialized) {
			return err
		}
	}

	// Shared backends keep their rows across Init, so --force clears the keys instead
	if c.Force && !isFileBacked(ctx.Store) {
		if err := ctx.Store.Load(); err != nil {
			return err
		}
		for _, key := range []string{constants.UserNameKey, constants.HabitsKey} {
			if err := ctx.Store.RemoveItem(key); err != nil {
				return fmt.Errorf("failed to reset %s: %w", key, err)
			}
		}
	}

	ctx.printf("Initialized streakly storage at: %s\n", path)
	return nil
}
