package main

import (
	"fmt"
	"strings"

	"github.com/franz/djtool/internal/key"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys KEY",
	Short: "Show the compatible keys for a musical key",
	Long: `Show the canonical form, Camelot code and full compatible-key
expansion for a key in any supported notation.`,
	Example: `  djt keys 8B
  djt keys "F♯m"
  djt keys Ebm`,
	Args: cobra.ExactArgs(1),
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	input := args[0]

	canonical := key.Normalize(input)
	if canonical == "" {
		return fmt.Errorf("empty key")
	}

	fmt.Printf("Key:        %s\n", canonical)
	if code, ok := key.Camelot(canonical); ok {
		fmt.Printf("Camelot:    %s\n", code)
	}
	if !key.Canonical(canonical) {
		fmt.Printf("Note:       %q is not a recognized key; only exact matches will be found\n", input)
	}
	fmt.Printf("Spellings:  %s\n", strings.Join(key.Spellings(canonical), ", "))
	fmt.Println()
	fmt.Println("Compatible spellings:")
	for _, k := range key.CompatibleKeys(canonical) {
		fmt.Printf("  %s\n", k)
	}

	return nil
}
