package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/franz/djtool/internal/meta"
	"github.com/franz/djtool/internal/report"
	"github.com/franz/djtool/internal/scan"
	"github.com/franz/djtool/internal/util"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the music directory and update the catalog",
	Long: `Scan the music directory recursively for audio files and bring the
catalog up to date.

Each candidate file is fingerprinted (a hash of its head and tail plus
size and mtime); only files that are new or changed since the last scan
are analyzed with ffprobe. Unchanged files are skipped entirely, which
makes rescans of a large library cheap.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("dir", "d", "", "directory to scan (overrides music-dir)")
	scanCmd.Flags().StringSlice("extensions", nil, "additional audio extensions to include")
	scanCmd.Flags().Duration("probe-timeout", meta.DefaultTimeout, "per-file ffprobe timeout")
	scanCmd.Flags().String("events-dir", "", "write a JSONL event log to this directory")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	dirFlag, _ := cmd.Flags().GetString("dir")
	extraExts, _ := cmd.Flags().GetStringSlice("extensions")
	probeTimeout, _ := cmd.Flags().GetDuration("probe-timeout")
	eventsDir, _ := cmd.Flags().GetString("events-dir")

	dir, err := musicDir(dirFlag)
	if err != nil {
		return err
	}

	db, dbPath, err := openCatalog()
	if err != nil {
		return err
	}
	defer db.Close()
	util.InfoLog("Catalog: %s", dbPath)

	logger := report.NullLogger()
	if eventsDir != "" {
		logLevel := report.LevelInfo
		if viper.GetBool("verbose") {
			logLevel = report.LevelDebug
		}
		logger, err = report.NewEventLogger(eventsDir, logLevel)
		if err != nil {
			util.WarnLog("Failed to create event logger: %v", err)
			logger = report.NullLogger()
		}
		defer logger.Close()
		if logger.Path() != "" {
			util.InfoLog("Event log: %s", logger.Path())
		}
	}

	if !meta.CheckFFprobeAvailable() {
		util.WarnLog("ffprobe not found in PATH - falling back to the tag reader (no durations)")
	}

	extractor := meta.New()
	extractor.Timeout = probeTimeout

	indexer := scan.New(&scan.Config{
		Store:          db,
		Extractor:      extractor,
		AdditionalExts: extraExts,
		Logger:         logger,
		LockPath:       dbPath + ".lock",
	})

	util.InfoLog("Scanning %s", dir)
	job := scan.Start(ctx, indexer, dir)

	renderProgress(job)

	result, err := job.Result()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	fmt.Println()
	util.SuccessLog("Scan summary")
	util.InfoLog("  Files found:   %d", result.FilesFound)
	util.InfoLog("  New files:     %d", result.NewFiles)
	util.InfoLog("  Updated files: %d", result.UpdatedFiles)
	util.InfoLog("  Duration:      %v", result.Duration.Round(time.Millisecond))
	if len(result.Errors) > 0 {
		util.WarnLog("  Errors:        %d (see log)", len(result.Errors))
	}

	return nil
}

// renderProgress drains the job's progress channel into a progress bar,
// or periodic log lines when stdout is not a terminal.
func renderProgress(job *scan.Job) {
	isTTY := util.IsTerminal(os.Stdout.Fd())

	var bar *progressbar.ProgressBar
	lastLogged := time.Now()

	for p := range job.Progress() {
		if isTTY && !util.IsQuiet() {
			if bar == nil {
				bar = progressbar.NewOptions(p.Total,
					progressbar.OptionSetDescription("Scanning"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
					progressbar.OptionSetItsString("files"),
					progressbar.OptionThrottle(100*time.Millisecond),
					progressbar.OptionClearOnFinish(),
				)
			}
			bar.Describe(fmt.Sprintf("Scanning %s", filepath.Base(p.Path)))
			bar.Set(p.Current)
		} else if time.Since(lastLogged) > 2*time.Second {
			util.InfoLog("Progress: %d/%d (%s)", p.Current, p.Total, filepath.Base(p.Path))
			lastLogged = time.Now()
		}
	}

	if bar != nil {
		bar.Finish()
	}
}
