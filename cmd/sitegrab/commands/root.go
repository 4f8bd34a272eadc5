// Package commands implements the CLI commands for sitegrab.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "sitegrab",
	Short: "Single-site web crawler that exports page text to CSV",
	Long: `Sitegrab crawls a website breadth-first from a base URL, extracts the
title and main text of every page, strips repeated boilerplate, and
appends one row per page to a CSV file (or JSON/JSONL/YAML).

Examples:
  # Crawl a site and write a timestamped CSV
  sitegrab crawl -u "https://example.com/"

  # Skip the English section and binary documents
  sitegrab crawl -u "https://example.com/" -x "/en/,.pdf,.docx"

  # Cap the crawl and write JSONL instead
  sitegrab crawl -u "https://example.com/" --max-pages 50 \
      --format jsonl -o pages.jsonl`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.sitegrab.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".sitegrab")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("SITEGRAB")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
