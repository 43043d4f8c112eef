package main

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/franz/djtool/internal/meta"
	"github.com/franz/djtool/internal/report"
	"github.com/franz/djtool/internal/scan"
	"github.com/franz/djtool/internal/util"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the music directory and rescan on changes",
	Long: `Watch the music directory for filesystem changes and run an
incremental scan whenever activity settles. Because unchanged files are
skipped by fingerprint, each triggered rescan only analyzes what actually
changed. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("dir", "d", "", "directory to watch (overrides music-dir)")
	watchCmd.Flags().Duration("settle", 2*time.Second, "quiet period before a rescan triggers")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dirFlag, _ := cmd.Flags().GetString("dir")
	settle, _ := cmd.Flags().GetDuration("settle")

	dir, err := musicDir(dirFlag)
	if err != nil {
		return err
	}

	db, dbPath, err := openCatalog()
	if err != nil {
		return err
	}
	defer db.Close()

	indexer := scan.New(&scan.Config{
		Store:     db,
		Extractor: meta.New(),
		Logger:    report.NullLogger(),
		LockPath:  dbPath + ".lock",
	})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watchTree(watcher, dir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	util.InfoLog("Watching %s (Ctrl-C to stop)", dir)

	// Initial scan brings the catalog up to date before waiting
	if _, err := indexer.Scan(ctx, dir, nil); err != nil {
		return err
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			util.InfoLog("Stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories need their own watch
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					watchTree(watcher, event.Name)
				}
			}
			util.DebugLog("Change: %s (%s)", event.Name, event.Op)
			if timer == nil {
				timer = time.AfterFunc(settle, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(settle)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.WarnLog("Watch error: %v", err)

		case <-pending:
			timer = nil
			util.InfoLog("Changes settled, rescanning")
			if _, err := indexer.Scan(ctx, dir, nil); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				util.ErrorLog("Rescan failed: %v", err)
			}
		}
	}
}

// watchTree registers root and every subdirectory with the watcher
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				util.WarnLog("Cannot watch %s: %v", path, err)
			}
		}
		return nil
	})
}
