// Package pipeline runs merge jobs end to end: read pages, merge into
// chunks, write them out, and optionally translate each chunk.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/pagemerge/internal/config"
	"github.com/dgallion1/pagemerge/internal/translate"
)

// Request describes a merge job submission.
type Request struct {
	SourcePath string
	OutputDir  string
	MaxChars   int
	PadWidth   int
	Translate  bool
	TargetLang string
}

// Orchestrator owns the job queue, the worker pool and the job store.
type Orchestrator struct {
	cfg        config.Config
	store      *JobStore
	queue      chan *Job
	translator *translate.Client
	log        *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewOrchestrator(cfg config.Config, translator *translate.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		store:      NewJobStore(cfg.JobTTL),
		queue:      make(chan *Job, cfg.MaxQueueSize),
		translator: translator,
		log:        log,
	}
}

// Start launches the worker pool and the job store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, o.cancel = context.WithCancel(ctx)

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go o.workerLoop(ctx, i)
	}

	o.wg.Add(1)
	go o.cleanupLoop(ctx)

	o.log.Info("orchestrator started",
		"workers", o.cfg.WorkerCount,
		"queue_size", o.cfg.MaxQueueSize)
}

// Stop signals workers to finish and waits for them.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit enqueues a merge job. It fails fast when the queue is full.
func (o *Orchestrator) Submit(req Request) (*Job, error) {
	job := o.NewJob(req)

	select {
	case o.queue <- job:
		o.store.Put(job)
		o.log.Info("job queued",
			"job_id", job.ID,
			"source", job.SourcePath,
			"translate", job.Translate)
		return job, nil
	default:
		return nil, fmt.Errorf("queue full (%d pending)", len(o.queue))
	}
}

// GetJob looks up a job by ID, or nil if unknown or expired.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.store.Get(id)
}

// QueueDepth reports the number of jobs waiting for a worker.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Translator exposes the shared translation client for the stats endpoint.
func (o *Orchestrator) Translator() *translate.Client {
	return o.translator
}

// NewJob builds a job from a request without enqueueing it, applying
// configured defaults. Used for synchronous in-request merges.
func (o *Orchestrator) NewJob(req Request) *Job {
	if req.MaxChars <= 0 {
		req.MaxChars = o.cfg.DefaultMaxChars
	}
	if req.PadWidth <= 0 {
		req.PadWidth = o.cfg.ChunkPadWidth
	}
	if req.TargetLang == "" {
		req.TargetLang = o.cfg.TranslateLang
	}
	now := time.Now()
	return &Job{
		ID:         NewJobID(),
		Status:     StatusQueued,
		Phase:      "waiting for worker",
		SourcePath: req.SourcePath,
		OutputDir:  req.OutputDir,
		MaxChars:   req.MaxChars,
		PadWidth:   req.PadWidth,
		Translate:  req.Translate,
		TargetLang: req.TargetLang,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (o *Orchestrator) workerLoop(ctx context.Context, id int) {
	defer o.wg.Done()
	log := o.log.With("worker", id)
	log.Debug("worker started")

	for {
		select {
		case <-ctx.Done():
			log.Debug("worker stopping")
			return
		case job := <-o.queue:
			o.Process(ctx, job)
		}
	}
}

func (o *Orchestrator) cleanupLoop(ctx context.Context) {
	defer o.wg.Done()
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.store.Cleanup()
		}
	}
}
