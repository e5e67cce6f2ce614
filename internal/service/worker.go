package service

import (
	"context"
	"sync"
)

// WorkerPool fans a batch of file analyses out over a fixed number of
// goroutines. Each file is still processed by a single deterministic pass;
// only whole files run concurrently.
type WorkerPool struct {
	workers  int
	analysis *AnalysisService
	jobQueue chan Job
	wg       sync.WaitGroup
}

type Job struct {
	FilePath string
	Result   chan<- JobResult
}

type JobResult struct {
	FilePath string
	Report   *Report
	Error    error
}

func NewWorkerPool(workers int, analysis *AnalysisService) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		workers:  workers,
		analysis: analysis,
		jobQueue: make(chan Job, workers*2),
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx)
	}
}

func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
}

func (wp *WorkerPool) Submit(job Job) {
	wp.jobQueue <- job
}

func (wp *WorkerPool) worker(ctx context.Context) {
	defer wp.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}

			report, err := wp.analysis.AnalyzeFile(ctx, job.FilePath)
			job.Result <- JobResult{
				FilePath: job.FilePath,
				Report:   report,
				Error:    err,
			}
		}
	}
}
