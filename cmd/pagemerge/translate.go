package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pagemerge/internal/emit"
	"github.com/dgallion1/pagemerge/internal/page"
	"github.com/dgallion1/pagemerge/internal/translate"
)

// translateChunks translates sequentially: the CLI talks to a local model
// and overlapping requests only slow each other down.
func translateChunks(cmd *cobra.Command, log *slog.Logger, client *translate.Client, chunks []page.Chunk) error {
	writer := emit.NewWriter(filepath.Join(runFlags.outputDir, "translated"), runFlags.padWidth)

	failed := 0
	for _, c := range chunks {
		translated, err := client.Translate(cmd.Context(), c.Text(), runFlags.translateTo)
		if err != nil {
			log.Warn("translation failed", "chunk", c.Ordinal, "error", err)
			failed++
			continue
		}
		out := page.Chunk{Ordinal: c.Ordinal, Paragraphs: []string{translated}}
		if _, err := writer.WriteAll([]page.Chunk{out}); err != nil {
			return fmt.Errorf("write translated chunk %d: %w", c.Ordinal, err)
		}
		log.Info("chunk translated", "chunk", c.Ordinal, "of", len(chunks))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d chunks failed to translate", failed, len(chunks))
	}
	return nil
}
