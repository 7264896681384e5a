package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/pagemerge/internal/emit"
	"github.com/dgallion1/pagemerge/internal/merger"
	"github.com/dgallion1/pagemerge/internal/page"
	"github.com/dgallion1/pagemerge/internal/source"
)

// Process runs a single job to completion. It is called by the worker pool
// but is also usable directly for synchronous, in-request merges.
func (o *Orchestrator) Process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID)
	start := time.Now()

	job.SetStatus(StatusReading, "reading pages")
	src, err := source.ForPathWith(job.SourcePath, source.Options{
		PDFFallbackPdftotext: o.cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		o.fail(job, fmt.Errorf("open source: %w", err))
		return
	}
	docs, err := src.Pages(ctx)
	if err != nil {
		o.fail(job, fmt.Errorf("read pages: %w", err))
		return
	}
	for _, d := range docs {
		if strings.TrimSpace(d.Text) == "" {
			log.Warn("page is empty or whitespace only", "page", d.Name)
		}
	}

	job.SetStatus(StatusMerging, "merging paragraphs into chunks")
	m, err := merger.New(job.MaxChars)
	if err != nil {
		o.fail(job, err)
		return
	}
	chunks, err := m.Merge(docs)
	if err != nil {
		o.fail(job, fmt.Errorf("merge pages: %w", err))
		return
	}
	job.SetTotals(len(docs), len(chunks))

	job.SetStatus(StatusWriting, "writing chunk files")
	writer := emit.NewWriter(job.OutputDir, job.PadWidth)
	written, err := writer.WriteAll(chunks)
	job.SetChunksWritten(written)
	if err != nil {
		o.fail(job, fmt.Errorf("write chunks: %w", err))
		return
	}

	if job.Translate && o.translator != nil {
		job.SetStatus(StatusTranslating, "translating chunks")
		o.translateChunks(ctx, job, chunks)
	}

	snap := job.Snapshot()
	if len(snap.Progress.Errors) > 0 {
		job.SetStatus(StatusPartial, "finished with errors")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("job finished",
		"status", job.Snapshot().Status,
		"pages", len(docs),
		"chunks", len(chunks),
		"duration_ms", time.Since(start).Milliseconds())
}

// translateChunks translates every chunk and writes the results next to the
// originals under a translated/ subdirectory, with matching file names.
// Individual chunk failures are recorded and do not stop the rest.
func (o *Orchestrator) translateChunks(ctx context.Context, job *Job, chunks []page.Chunk) {
	writer := emit.NewWriter(filepath.Join(job.OutputDir, "translated"), job.PadWidth)

	sem := make(chan struct{}, o.cfg.MaxConcurrentTranslate)
	var wg sync.WaitGroup
	for _, c := range chunks {
		select {
		case <-ctx.Done():
			job.AddError("translation cancelled")
			wg.Wait()
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(c page.Chunk) {
			defer wg.Done()
			defer func() { <-sem }()

			translated, err := o.translateWithRetry(ctx, c.Text(), job.TargetLang)
			if err != nil {
				job.AddError(fmt.Sprintf("translate chunk %d: %v", c.Ordinal, err))
				return
			}
			out := page.Chunk{Ordinal: c.Ordinal, Paragraphs: []string{translated}}
			if _, err := writer.WriteAll([]page.Chunk{out}); err != nil {
				job.AddError(fmt.Sprintf("write translated chunk %d: %v", c.Ordinal, err))
				return
			}
			job.IncrChunksTranslated()
		}(c)
	}
	wg.Wait()
}

func (o *Orchestrator) translateWithRetry(ctx context.Context, text, targetLang string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(Backoff(attempt - 1)):
			}
		}
		out, err := o.translator.Translate(ctx, text, targetLang)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return "", err
		}
		o.log.Warn("retrying translation", "attempt", attempt+1, "error", err)
	}
	return "", fmt.Errorf("translation failed after %d retries: %w", MaxRetries, lastErr)
}

func (o *Orchestrator) fail(job *Job, err error) {
	job.AddError(err.Error())
	job.SetStatus(StatusFailed, "aborted")
	o.log.Error("job failed", "job_id", job.ID, "error", err)
}
