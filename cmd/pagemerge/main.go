// Command pagemerge merges per-page documents into bounded chunks from the
// command line, without going through the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pagemerge",
	Short: "Merge per-page documents into bounded-size chunks",
	Long: `pagemerge re-segments a paged document into chunks that respect a
character bound. Paragraphs are kept whole; only paragraphs larger than
the bound are split, and then only at sentence boundaries. Paragraphs cut
by page breaks are stitched back together before packing.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pagemerge %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
