package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a merge job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusReading     JobStatus = "reading"
	StatusMerging     JobStatus = "merging"
	StatusWriting     JobStatus = "writing"
	StatusTranslating JobStatus = "translating"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusPartial     JobStatus = "partial"
)

// Job tracks the state of a single page-merge run.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	// Inputs.
	SourcePath string `json:"source_path"`
	OutputDir  string `json:"output_dir"`
	MaxChars   int    `json:"max_chars"`
	PadWidth   int    `json:"pad_width"`
	Translate  bool   `json:"translate"`
	TargetLang string `json:"target_lang,omitempty"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalPages       int      `json:"total_pages"`
	TotalChunks      int      `json:"total_chunks"`
	ChunksWritten    int      `json:"chunks_written"`
	ChunksTranslated int      `json:"chunks_translated"`
	Errors           []string `json:"errors"`
}

// NewJobID returns a fresh job identifier.
func NewJobID() string {
	return uuid.NewString()
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetTotals records the page and chunk counts once known.
func (j *Job) SetTotals(pages, chunks int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalPages = pages
	j.Progress.TotalChunks = chunks
	j.UpdatedAt = time.Now()
}

// SetChunksWritten records the emitted chunk count.
func (j *Job) SetChunksWritten(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChunksWritten = n
	j.UpdatedAt = time.Now()
}

// IncrChunksTranslated atomically increments the translated chunk count.
func (j *Job) IncrChunksTranslated() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChunksTranslated++
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID         string    `json:"job_id"`
	Status     JobStatus `json:"status"`
	Phase      string    `json:"phase"`
	SourcePath string    `json:"source_path"`
	OutputDir  string    `json:"output_dir"`
	MaxChars   int       `json:"max_chars"`
	Translate  bool      `json:"translate"`
	Progress   Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:         j.ID,
		Status:     j.Status,
		Phase:      j.Phase,
		SourcePath: j.SourcePath,
		OutputDir:  j.OutputDir,
		MaxChars:   j.MaxChars,
		Translate:  j.Translate,
		Progress: Progress{
			TotalPages:       j.Progress.TotalPages,
			TotalChunks:      j.Progress.TotalChunks,
			ChunksWritten:    j.Progress.ChunksWritten,
			ChunksTranslated: j.Progress.ChunksTranslated,
			Errors:           errs,
		},
	}
}
