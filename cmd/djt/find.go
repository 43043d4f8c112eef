package main

import (
	"context"
	"fmt"

	"github.com/franz/djtool/internal/harmonic"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find tracks compatible with a tempo and key",
	Long: `Query the Mixxx library for tracks that mix harmonically with the
given tempo and key.

The key may be in traditional ("C", "F♯m", "Bb"), Camelot ("8B") or
combined ("2B (F♯/G♭)") notation. Results are grouped exact-key-first and
ordered by tempo distance, labelled Perfect, Good or OK.`,
	Example: `  djt find --bpm 120 --key C
  djt find --bpm 128 --key 8A --tolerance 4`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().Float64("bpm", 0, "current track tempo in BPM (required)")
	findCmd.Flags().String("key", "", "current track key (required)")
	findCmd.Flags().Float64("tolerance", harmonic.DefaultTolerance, "BPM search window")
	findCmd.MarkFlagRequired("bpm")
	findCmd.MarkFlagRequired("key")
}

func runFind(cmd *cobra.Command, args []string) error {
	bpm, _ := cmd.Flags().GetFloat64("bpm")
	keyArg, _ := cmd.Flags().GetString("key")
	tolerance, _ := cmd.Flags().GetFloat64("tolerance")

	q := harmonic.NewQuery(mixxxDBPath())
	if !q.Available() {
		fmt.Printf("No Mixxx database found at %s - nothing to search.\n", mixxxDBPath())
		return nil
	}

	tracks, err := q.FindCompatible(context.Background(), bpm, keyArg, tolerance)
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		fmt.Println("No compatible tracks found.")
		return nil
	}

	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		artist := t.Artist
		if artist == "" {
			artist = "Unknown"
		}
		title := t.Title
		if title == "" {
			title = "Unknown"
		}
		rows = append(rows, []string{
			artist,
			title,
			t.Album,
			fmt.Sprintf("%.1f", t.BPM),
			t.Key,
			harmonic.FormatDuration(t.DurationSec),
			string(t.Tier),
		})
	}

	fmt.Println(renderTable(
		[]string{"Artist", "Title", "Album", "BPM", "Key", "Length", "Match"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	))
	fmt.Printf("%d compatible tracks\n", len(tracks))

	return nil
}
