package main

import (
	"fmt"
	"os"

	"github.com/franz/djtool/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "djt",
		Short: "DJ harmonic toolkit - library indexing and harmonic mixing queries",
		Long: `djt indexes a local music collection and answers harmonic-mixing
questions against a Mixxx track catalog.

It keeps a persistent catalog of scanned files with content-based change
detection, so rescans only re-analyze files that actually changed, and it
expands musical keys across traditional, Camelot and enharmonic notations
to find tracks that mix cleanly with a given tempo and key.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.djtool/config.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "scanner catalog database (default ~/.djtool/catalog.db)")
	rootCmd.PersistentFlags().String("mixxx-db", "", "Mixxx library database (default ~/.mixxx/mixxxdb.sqlite)")
	rootCmd.PersistentFlags().String("music-dir", "", "music directory to scan")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("mixxx-db", rootCmd.PersistentFlags().Lookup("mixxx-db"))
	viper.BindPFlag("music-dir", rootCmd.PersistentFlags().Lookup("music-dir"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.djtool")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DJT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
