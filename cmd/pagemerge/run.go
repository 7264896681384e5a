package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pagemerge/internal/emit"
	"github.com/dgallion1/pagemerge/internal/merger"
	"github.com/dgallion1/pagemerge/internal/source"
	"github.com/dgallion1/pagemerge/internal/translate"
)

var runFlags struct {
	outputDir   string
	maxChars    int
	padWidth    int
	translateTo string
	ollamaURL   string
	ollamaModel string
	verbose     bool
}

var runCmd = &cobra.Command{
	Use:   "run <source>",
	Short: "Merge a paged source into chunk files",
	Long: `Reads pages from <source> (a directory of page files, or a single
.pdf, .docx, .html, .md or .txt file), merges them into chunks and writes
chunk_NNN.md files to the output directory.

With --translate-to, every chunk is additionally translated through a local
Ollama model and written under <output-dir>/translated/.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.outputDir, "output-dir", "o", "chunks", "directory for chunk files")
	runCmd.Flags().IntVar(&runFlags.maxChars, "max-chars", merger.DefaultMaxChars, "chunk size bound in characters")
	runCmd.Flags().IntVar(&runFlags.padWidth, "pad-width", emit.DefaultPadWidth, "zero padding width for chunk numbers")
	runCmd.Flags().StringVar(&runFlags.translateTo, "translate-to", "", "translate chunks to this language (e.g. \"Persian (Farsi)\")")
	runCmd.Flags().StringVar(&runFlags.ollamaURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
	runCmd.Flags().StringVar(&runFlags.ollamaModel, "ollama-model", "gemma3:4b", "Ollama model for translation")
	runCmd.Flags().BoolVarP(&runFlags.verbose, "verbose", "v", false, "enable debug logging")
}

func runMerge(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if runFlags.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	src, err := source.ForPath(args[0])
	if err != nil {
		return err
	}
	docs, err := src.Pages(cmd.Context())
	if err != nil {
		return fmt.Errorf("read pages: %w", err)
	}
	for _, d := range docs {
		if strings.TrimSpace(d.Text) == "" {
			log.Warn("page is empty or whitespace only", "page", d.Name)
		}
	}
	log.Info("pages read", "count", len(docs))

	m, err := merger.New(runFlags.maxChars)
	if err != nil {
		return err
	}
	chunks, err := m.Merge(docs)
	if err != nil {
		return fmt.Errorf("merge pages: %w", err)
	}

	writer := emit.NewWriter(runFlags.outputDir, runFlags.padWidth)
	written, err := writer.WriteAll(chunks)
	if err != nil {
		return fmt.Errorf("write chunks: %w", err)
	}
	log.Info("chunks written", "count", written, "dir", runFlags.outputDir)

	if runFlags.translateTo != "" {
		client := translate.NewClient(runFlags.ollamaURL, runFlags.ollamaModel)
		defer client.Close()
		if err := translateChunks(cmd, log, client, chunks); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %d chunks from %d pages to %s\n", written, len(docs), runFlags.outputDir)
	return nil
}
