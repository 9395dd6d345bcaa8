package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liminalpurple/sticker-gallery/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "stickergallery",
		Short: "Sticker set gallery client",
		Long: `Sticker Gallery - client for browsing your sticker sets.

Authenticates with the host-issued credential, fetches your sticker sets
from the backend, and renders them as gallery cards with lazily resolved
preview media. Without a credential the gallery serves a public preview.`,
		Version: version,
	}

	// Add commands
	rootCmd.AddCommand(cli.NewGalleryCmd())
	rootCmd.AddCommand(cli.NewDetailCmd())
	rootCmd.AddCommand(cli.NewDeleteCmd())
	rootCmd.AddCommand(cli.NewOpenCmd())
	rootCmd.AddCommand(cli.NewShareCmd())
	rootCmd.AddCommand(cli.NewDescribeCmd())
	rootCmd.AddCommand(cli.NewCheckCmd())

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
