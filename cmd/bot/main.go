// Package main is the entry point for the Othership bot
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/othership-bot/internal/config"
)

var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:          "othership",
	Short:        "Othership Discord bot",
	Long:         `Othership runs co-op sci-fi horror games in a Discord server: a roster, scenario games and guided character creation.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
}

func loadConfig(skipDiscord bool) (*config.Config, error) {
	return config.Load(config.Options{
		EnvFiles:    []string{envFile},
		ConfigFile:  configFile,
		SkipDiscord: skipDiscord,
	})
}
