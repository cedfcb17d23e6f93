package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"focusboard/internal/platform"
	"focusboard/internal/storage"
	"focusboard/internal/tasks"
	"focusboard/internal/updates"

	"github.com/spf13/cobra"
)

var errUserRequired = errors.New("--user is required")

// clipboardWriter is swapped in tests.
var clipboardWriter updates.Clipboard = updates.SystemClipboard{}

func resolveDataDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	return platform.AppDir(appName)
}

func openStore() (*storage.SQLiteKV, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errUserRequired
	}
	dir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	return storage.OpenSQLite(dir)
}

func runTasksList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list := tasks.Open(cmd.Context(), store, username, logger)
	out := cmd.OutOrStdout()
	items := list.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "No tasks yet.")
		return nil
	}
	for _, task := range items {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Fprintf(out, "[%s] %s\n", mark, task.Text)
	}
	done, total := list.Progress()
	fmt.Fprintf(out, "%d of %d completed\n", done, total)
	return nil
}

func runUpdatesShow(cmd *cobra.Command, args []string) error {
	notepad, closeStore, err := openNotepad(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	fmt.Fprintln(cmd.OutOrStdout(), notepad.Text())
	return nil
}

func runUpdatesCopy(cmd *cobra.Command, args []string) error {
	notepad, closeStore, err := openNotepad(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	if err := notepad.Copy(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Copied! ✨")
	return nil
}

func openNotepad(ctx context.Context) (*updates.Notepad, func(), error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	notepad := updates.Open(ctx, store, username, clipboardWriter, logger)
	return notepad, func() { _ = store.Close() }, nil
}
