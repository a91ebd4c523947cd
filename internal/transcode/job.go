package transcode

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"
)

// ErrBusy is returned when the runner already has the maximum number of
// concurrent jobs in flight.
var ErrBusy = errors.New("transcode runner at capacity")

// Status is the lifecycle state of a transcode job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job is one asynchronous transcode invocation. Each job owns its
// outputDir; concurrent jobs are independent.
type Job struct {
	ID        string
	InputPath string
	OutputDir string

	mu     sync.Mutex
	status Status
	files  []string
	err    error
	done   chan struct{}
}

// Status returns the job's current lifecycle state.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Result returns the produced file paths and error once the job has
// finished. Before completion both are nil.
func (j *Job) Result() ([]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files, j.err
}

// Wait blocks until the job finishes or ctx is cancelled. On completion
// it returns the produced file paths, or the engine error verbatim.
func (j *Job) Wait(ctx context.Context) ([]string, error) {
	select {
	case <-j.done:
		return j.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (j *Job) finish(files []string, err error) {
	j.mu.Lock()
	j.files = files
	j.err = err
	if err != nil {
		j.status = StatusFailed
	} else {
		j.status = StatusSucceeded
	}
	j.mu.Unlock()
	close(j.done)
}

// Stats is a point-in-time snapshot of runner activity.
type Stats struct {
	Running   int64
	Submitted int64
	Succeeded int64
	Failed    int64
	Rejected  int64
}

// Runner executes transcode jobs with a fixed concurrency cap.
// Submissions beyond the cap are rejected rather than queued.
type Runner struct {
	conv *Converter
	sem  chan struct{}

	mu    sync.Mutex
	jobs  map[string]*Job
	stats Stats

	log *slog.Logger
}

// NewRunner creates a runner allowing at most maxConcurrent simultaneous
// engine processes.
func NewRunner(conv *Converter, maxConcurrent int) *Runner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Runner{
		conv: conv,
		sem:  make(chan struct{}, maxConcurrent),
		jobs: make(map[string]*Job),
		log:  slog.With("component", "transcode-runner"),
	}
}

// Submit starts a transcode of inputPath into outputDir. It returns
// ErrBusy when the concurrency cap is reached. The job outlives the
// caller's ctx; cancelling it does not stop the engine.
func (r *Runner) Submit(ctx context.Context, inputPath, outputDir string) (*Job, error) {
	select {
	case r.sem <- struct{}{}:
	default:
		r.mu.Lock()
		r.stats.Rejected++
		r.mu.Unlock()
		return nil, ErrBusy
	}

	job := &Job{
		ID:        newJobID(),
		InputPath: inputPath,
		OutputDir: outputDir,
		status:    StatusPending,
		done:      make(chan struct{}),
	}

	r.mu.Lock()
	r.jobs[job.ID] = job
	r.stats.Submitted++
	r.stats.Running++
	r.mu.Unlock()

	go r.run(context.WithoutCancel(ctx), job)

	return job, nil
}

// Get returns a previously submitted job by ID.
func (r *Runner) Get(id string) (*Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	return job, ok
}

// Stats returns a snapshot of runner activity.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Runner) run(ctx context.Context, job *Job) {
	defer func() { <-r.sem }()

	job.mu.Lock()
	job.status = StatusRunning
	job.mu.Unlock()

	files, err := r.conv.Convert(ctx, job.InputPath, job.OutputDir)

	r.mu.Lock()
	r.stats.Running--
	if err != nil {
		r.stats.Failed++
	} else {
		r.stats.Succeeded++
	}
	r.mu.Unlock()

	if err != nil {
		r.log.Error("transcode job failed", "job", job.ID, "error", err)
	}

	job.finish(files, err)
}

// newJobID generates a random 16-character job identifier
func newJobID() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
