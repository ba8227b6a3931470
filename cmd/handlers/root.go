package handlers

import (
	"fmt"
	"os"

	"giftscout/internal/config"

	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "giftscout",
		Short: "GiftScout recommends gift ideas for a recipient profile.",
		Long: `GiftScout combines web search with a language model to recommend gift
ideas for a described recipient, ranked by semantic fit, source-domain
trust, and rating mentions found in search snippets.

Buy links are best-effort search results, not verified inventory.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.giftscout.yaml)")

	rootCmd.AddCommand(NewRecommendCmd())
	rootCmd.AddCommand(NewCardsCmd())
	rootCmd.AddCommand(NewSearchCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}
