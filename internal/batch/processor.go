// Package batch runs independent render jobs on a fixed worker pool and
// records their outcomes.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"tinylib/internal/logging"
)

// ErrPanic wraps a panic recovered from a job so one bad input fails only
// its own result.
var ErrPanic = errors.New("batch: job panicked")

// Job is one unit of work. Run must be safe to call from any goroutine.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// outputter is implemented by jobs that write a file, so the result can
// record where it went.
type outputter interface {
	Output() string
}

// Config sizes the worker pool.
type Config struct {
	Workers  int           // <= 0 means runtime.NumCPU()
	Progress time.Duration // progress log interval, <= 0 means 2s
}

// Result holds the outcome of one job.
type Result struct {
	Name     string
	Output   string
	Err      error
	Duration time.Duration
}

func (r Result) OK() bool { return r.Err == nil }

// Run processes jobs on a worker pool and returns one Result per job, in
// job order. Once ctx is done, jobs not yet started fail with ctx.Err().
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	if total == 0 {
		return results
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, total)
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	log := logging.Logger()
	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total, "per_sec", rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = runJob(ctx, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	log.Info("batch finished", "jobs", total, "failed", Failed(results), "elapsed", time.Since(start))
	return results
}

func runJob(ctx context.Context, job Job) Result {
	res := Result{Name: job.Name()}
	if o, ok := job.(outputter); ok {
		res.Output = o.Output()
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	res.Err = runSafely(ctx, job)
	res.Duration = time.Since(start)

	if res.Err != nil {
		logging.Logger().Warn("job failed", "job", res.Name, "err", res.Err)
	} else {
		logging.Logger().Debug("job done", "job", res.Name, "elapsed", res.Duration)
	}
	return res
}

func runSafely(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return job.Run(ctx)
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
