package task

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lexreed/docgraph/internal/element"
	"github.com/lexreed/docgraph/internal/hierarchy"
)

// Status is the lifecycle state of a background build.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Task tracks one asynchronous hierarchy build.
type Task struct {
	mu sync.Mutex

	ID    string
	DocID string
	Title string

	Status      Status
	Error       string
	CreatedAt   time.Time
	StartedAt   time.Time
	CompletedAt time.Time

	Stats *hierarchy.Stats

	// Inputs, not serialized.
	elements        []element.DocumentElement
	enableSummaries bool
}

// New creates a pending task holding the decoded input elements.
func New(docID, title string, elements []element.DocumentElement, enableSummaries bool) *Task {
	return &Task{
		ID:              NewID(),
		DocID:           docID,
		Title:           title,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
		elements:        elements,
		enableSummaries: enableSummaries,
	}
}

func (t *Task) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = StatusProcessing
	t.StartedAt = time.Now()
}

func (t *Task) complete(stats hierarchy.Stats) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = StatusCompleted
	t.Stats = &stats
	t.CompletedAt = time.Now()
}

func (t *Task) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = StatusFailed
	t.Error = err.Error()
	t.CompletedAt = time.Now()
}

// Snapshot is a read-only, JSON-safe copy of task state.
type Snapshot struct {
	ID          string           `json:"task_id"`
	DocID       string           `json:"doc_id"`
	Title       string           `json:"title,omitempty"`
	Status      Status           `json:"status"`
	Error       string           `json:"error,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	StartedAt   *time.Time       `json:"started_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Stats       *hierarchy.Stats `json:"stats,omitempty"`
}

// Snapshot returns a JSON-safe copy of the task state.
func (t *Task) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := Snapshot{
		ID:        t.ID,
		DocID:     t.DocID,
		Title:     t.Title,
		Status:    t.Status,
		Error:     t.Error,
		CreatedAt: t.CreatedAt,
		Stats:     t.Stats,
	}
	if !t.StartedAt.IsZero() {
		started := t.StartedAt
		snap.StartedAt = &started
	}
	if !t.CompletedAt.IsZero() {
		completed := t.CompletedAt
		snap.CompletedAt = &completed
	}
	return snap
}

// updatedAt is the most recent lifecycle timestamp, used for TTL eviction.
func (t *Task) updatedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.CompletedAt.IsZero() {
		return t.CompletedAt
	}
	if !t.StartedAt.IsZero() {
		return t.StartedAt
	}
	return t.CreatedAt
}

// TaskStore is a thread-safe in-memory task registry with TTL eviction.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]*Task
	ttl   time.Duration
}

func NewTaskStore(ttl time.Duration) *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*Task),
		ttl:   ttl,
	}
}

func (s *TaskStore) Put(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
}

func (s *TaskStore) Get(id string) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

// List returns snapshots of every live task.
func (s *TaskStore) List() []Snapshot {
	s.mu.Lock()
	tasks := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.mu.Unlock()

	snaps := make([]Snapshot, 0, len(tasks))
	for _, t := range tasks {
		snaps = append(snaps, t.Snapshot())
	}
	return snaps
}

// Cleanup removes tasks idle for longer than the TTL.
func (s *TaskStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, t := range s.tasks {
		if now.Sub(t.updatedAt()) > s.ttl {
			delete(s.tasks, id)
		}
	}
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a monotonic ULID task id.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// ContentID derives a stable document id from raw input bytes, for
// callers that do not supply their own.
func ContentID(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])[:16]
}
