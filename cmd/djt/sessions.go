package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show scan history",
	Long:  `List recorded scan sessions, newest first.`,
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)

	sessionsCmd.Flags().IntP("limit", "n", 20, "number of sessions to show (0 = all)")
}

func runSessions(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	db, _, err := openCatalog()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.Sessions(limit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No scans recorded yet. Run 'djt scan' first.")
		return nil
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			humanize.Time(s.ScanDate),
			fmt.Sprintf("%d", s.FilesFound),
			fmt.Sprintf("%d", s.NewFiles),
			fmt.Sprintf("%d", s.UpdatedFiles),
			(time.Duration(s.DurationSec * float64(time.Second))).Round(time.Millisecond).String(),
		})
	}

	fmt.Println(renderTable(
		[]string{"When", "Found", "New", "Updated", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
	))

	total, err := db.CountFiles()
	if err == nil {
		fmt.Printf("%s files in catalog\n", humanize.Comma(int64(total)))
	}

	return nil
}
