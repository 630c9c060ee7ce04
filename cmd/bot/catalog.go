package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
)

var catalogPath string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the rules catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and report every problem in it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rb, err := catalogRulebook()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d skills, %d classes, %d scenarios\n",
			len(rb.Tree().Skills()), len(rb.Classes()), len(rb.Scenarios()))
		return nil
	},
}

var catalogTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the skill tree by tier",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rb, err := catalogRulebook()
		if err != nil {
			return err
		}
		printTree(cmd.OutOrStdout(), rb)
		return nil
	},
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogPath, "path", "", "catalog YAML file (defaults to CATALOG_PATH, then the built-in catalog)")
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogTreeCmd)
}

// catalogRulebook prefers --path, then the configured path
func catalogRulebook() (*othership.Rulebook, error) {
	path := catalogPath
	if path == "" {
		cfg, err := loadConfig(true)
		if err != nil {
			return nil, err
		}
		path = cfg.Catalog.Path
	}
	return loadRulebook(path)
}

func loadRulebook(path string) (*othership.Rulebook, error) {
	if path == "" {
		return othership.LoadDefault()
	}
	return othership.LoadFile(path)
}

func printTree(w io.Writer, rb *othership.Rulebook) {
	tree := rb.Tree()
	for _, tier := range othership.Tiers() {
		fmt.Fprintf(w, "%s (+%d)\n", strings.ToUpper(string(tier)), tier.Bonus())
		for _, s := range tree.ByTier(tier) {
			if len(s.UnlockedBy) == 0 {
				fmt.Fprintf(w, "  %s\n", s.Name)
				continue
			}
			fmt.Fprintf(w, "  %s <- %s\n", s.Name, strings.Join(s.UnlockedBy, " | "))
		}
	}

	fmt.Fprintln(w)
	for _, c := range rb.Classes() {
		fmt.Fprintf(w, "%s: max wounds %d", c.Name, c.MaxWounds)
		if len(c.Starting) > 0 {
			fmt.Fprintf(w, ", starts with %s", strings.Join(c.Starting, ", "))
		}
		fmt.Fprintln(w)
	}
}
