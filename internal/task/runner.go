package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lexreed/docgraph/internal/config"
	"github.com/lexreed/docgraph/internal/hierarchy"
	"github.com/lexreed/docgraph/internal/store"
	"github.com/lexreed/docgraph/internal/summary"
)

// Runner owns the background build queue and worker pool. Each worker
// assembles the hierarchy, optionally runs the summarization pass, and
// persists the result.
type Runner struct {
	tasks      *TaskStore
	queue      chan *Task
	store      *store.Store
	summarizer summary.Summarizer
	log        *slog.Logger
	cfg        config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates the runner. summarizer may be nil; summaries are then
// skipped for every task regardless of per-task settings.
func NewRunner(cfg config.Config, summarizer summary.Summarizer, st *store.Store, log *slog.Logger) *Runner {
	return &Runner{
		tasks:      NewTaskStore(cfg.TaskTTL),
		queue:      make(chan *Task, cfg.MaxQueueSize),
		store:      st,
		summarizer: summarizer,
		log:        log,
		cfg:        cfg,
	}
}

// Start launches worker goroutines and the TTL cleanup loop.
func (r *Runner) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.cfg.WorkerCount; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case t, ok := <-r.queue:
					if !ok {
						return
					}
					r.process(workerCtx, t)
				}
			}
		}()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				r.tasks.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the worker pool.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	close(r.queue)
	r.wg.Wait()
}

// Submit registers and queues a task.
func (r *Runner) Submit(t *Task) error {
	r.tasks.Put(t)
	select {
	case r.queue <- t:
		return nil
	default:
		t.fail(fmt.Errorf("task queue is full (%d)", r.cfg.MaxQueueSize))
		return fmt.Errorf("task queue is full (%d)", r.cfg.MaxQueueSize)
	}
}

// Get returns a task by id, or nil.
func (r *Runner) Get(id string) *Task {
	return r.tasks.Get(id)
}

// List returns snapshots of all live tasks.
func (r *Runner) List() []Snapshot {
	return r.tasks.List()
}

// QueueDepth returns the current queue backlog.
func (r *Runner) QueueDepth() int {
	return len(r.queue)
}

// Store exposes the result store for direct use by API handlers.
func (r *Runner) Store() *store.Store {
	return r.store
}

func (r *Runner) process(ctx context.Context, t *Task) {
	log := r.log.With("task_id", t.ID, "doc_id", t.DocID)
	t.start()

	res := hierarchy.Build(t.elements)
	log.Info("hierarchy assembled", "dropped_elements", res.Dropped)

	if t.enableSummaries && r.summarizer != nil {
		orch := summary.NewOrchestrator(r.summarizer, r.log, r.cfg.MaxConcurrentSummaries)
		orch.Summarize(ctx, res.Root)
		log.Info("summarization pass complete")
	}

	stats := hierarchy.CollectStats(res)

	tree, err := json.Marshal(res.Root.Serialize())
	if err != nil {
		log.Error("serialize failed", "error", err)
		t.fail(fmt.Errorf("serialize hierarchy: %w", err))
		return
	}

	title := t.Title
	if title == "" {
		title = res.Root.Text
	}
	doc := store.Document{
		ID:        t.DocID,
		Title:     title,
		CreatedAt: t.CreatedAt,
		Stats:     stats,
		Hierarchy: tree,
	}
	if err := r.store.Save(ctx, doc); err != nil {
		log.Error("store failed", "error", err)
		t.fail(fmt.Errorf("store document: %w", err))
		return
	}

	t.complete(stats)
	log.Info("task complete",
		"structural_nodes", stats.StructuralNodes,
		"content_elements", stats.ContentElements,
		"max_depth", stats.MaxDepth,
	)
}
