package task

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lexreed/docgraph/internal/hierarchy"
)

func TestTaskLifecycle(t *testing.T) {
	tk := New("doc1", "Doc", nil, false)
	if tk.Status != StatusPending {
		t.Fatalf("expected pending, got %s", tk.Status)
	}
	if tk.ID == "" {
		t.Fatal("expected generated task id")
	}

	tk.start()
	if tk.Status != StatusProcessing || tk.StartedAt.IsZero() {
		t.Errorf("start did not transition: %s", tk.Status)
	}

	tk.complete(hierarchy.Stats{StructuralNodes: 2})
	if tk.Status != StatusCompleted || tk.CompletedAt.IsZero() {
		t.Errorf("complete did not transition: %s", tk.Status)
	}
	if tk.Stats == nil || tk.Stats.StructuralNodes != 2 {
		t.Errorf("stats not recorded: %+v", tk.Stats)
	}
}

func TestTaskFail(t *testing.T) {
	tk := New("doc1", "Doc", nil, false)
	tk.start()
	tk.fail(errors.New("boom"))
	if tk.Status != StatusFailed {
		t.Errorf("expected failed, got %s", tk.Status)
	}
	if tk.Error != "boom" {
		t.Errorf("expected error recorded, got %q", tk.Error)
	}
}

func TestSnapshot_OmitsUnsetTimestamps(t *testing.T) {
	tk := New("doc1", "", nil, false)

	data, err := json.Marshal(tk.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, field := range []string{"started_at", "completed_at", "error", "title", "stats"} {
		if strings.Contains(out, field) {
			t.Errorf("pending snapshot should omit %s: %s", field, out)
		}
	}

	tk.start()
	tk.complete(hierarchy.Stats{})
	data, err = json.Marshal(tk.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out = string(data)
	if !strings.Contains(out, "started_at") || !strings.Contains(out, "completed_at") {
		t.Errorf("completed snapshot should carry timestamps: %s", out)
	}
}

func TestTaskStore_PutGetList(t *testing.T) {
	s := NewTaskStore(time.Hour)
	tk := New("doc1", "Doc", nil, false)
	s.Put(tk)

	if got := s.Get(tk.ID); got != tk {
		t.Fatal("expected Get to return the stored task")
	}
	if got := s.Get("missing"); got != nil {
		t.Fatal("expected nil for unknown id")
	}
	if snaps := s.List(); len(snaps) != 1 || snaps[0].ID != tk.ID {
		t.Fatalf("unexpected list result: %+v", snaps)
	}
}

func TestTaskStore_CleanupEvictsIdleTasks(t *testing.T) {
	s := NewTaskStore(10 * time.Millisecond)
	stale := New("doc1", "Doc", nil, false)
	stale.CreatedAt = time.Now().Add(-time.Minute)
	fresh := New("doc2", "Doc", nil, false)
	s.Put(stale)
	s.Put(fresh)

	s.Cleanup()

	if s.Get(stale.ID) != nil {
		t.Error("expected stale task evicted")
	}
	if s.Get(fresh.ID) == nil {
		t.Error("expected fresh task kept")
	}
}

func TestNewID_UniqueAndSortable(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Fatal("expected unique ids")
	}
	if len(a) != 26 {
		t.Errorf("expected 26-char ulid, got %d chars", len(a))
	}
	if a > b {
		t.Errorf("expected monotonic ordering, got %s > %s", a, b)
	}
}

func TestContentID_StableAndShort(t *testing.T) {
	a := ContentID([]byte("payload"))
	if a != ContentID([]byte("payload")) {
		t.Error("expected deterministic id")
	}
	if a == ContentID([]byte("other")) {
		t.Error("expected different inputs to differ")
	}
	if len(a) != 16 {
		t.Errorf("expected 16-char id, got %d", len(a))
	}
}
