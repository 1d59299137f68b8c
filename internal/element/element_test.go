package element

import (
	"strings"
	"testing"
)

func TestClassify_StructuralDepths(t *testing.T) {
	tests := []struct {
		label string
		depth int
	}{
		{"title", 0},
		{"sec", 1},
		{"sub_sec", 2},
		{"sub_sub_sec", 3},
		{"sub_sub_sub_sec", 4},
		{"sub_sub_sub_sub_sec", 5},
	}
	for _, tt := range tests {
		c := Classify(tt.label)
		if c.Kind != KindStructural {
			t.Errorf("%s: expected structural, got %s", tt.label, c.Kind)
		}
		if c.Depth != tt.depth {
			t.Errorf("%s: expected depth %d, got %d", tt.label, tt.depth, c.Depth)
		}
	}
}

func TestClassify_ContentLabels(t *testing.T) {
	for _, label := range []string{"para", "list", "list_group", "figure", "table", "cap", "fig", "tab", "fnote", "foot", "author"} {
		c := Classify(label)
		if c.Kind != KindContent {
			t.Errorf("%s: expected content, got %s", label, c.Kind)
		}
		if c.Depth != -1 {
			t.Errorf("%s: expected depth -1, got %d", label, c.Depth)
		}
	}
}

func TestClassify_Document(t *testing.T) {
	c := Classify("document")
	if c.Kind != KindStructural {
		t.Errorf("expected structural, got %s", c.Kind)
	}
	if c.Depth != -1 {
		t.Errorf("expected depth -1, got %d", c.Depth)
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	for _, label := range []string{"header", "watermark", "", "subsec", "equation"} {
		if c := Classify(label); c.Kind != KindUnrecognized {
			t.Errorf("%q: expected unrecognized, got %s", label, c.Kind)
		}
	}
}

func TestDecode_FlattensAndSorts(t *testing.T) {
	input := `{
		"pages": [
			{"page_number": 2, "elements": [
				{"label": "para", "text": "later", "reading_order": 0}
			]},
			{"page_number": 1, "elements": [
				{"label": "sec", "text": "1 Intro", "reading_order": 1},
				{"label": "title", "text": "Doc", "bbox": [0, 0, 100, 20], "reading_order": 0}
			]}
		]
	}`
	elements, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elements))
	}

	wantOrder := []string{"Doc", "1 Intro", "later"}
	for i, want := range wantOrder {
		if elements[i].Text != want {
			t.Errorf("element %d: expected text %q, got %q", i, want, elements[i].Text)
		}
	}
	if elements[0].Page != 1 || elements[0].ReadingOrder != 0 {
		t.Errorf("expected title at (1, 0), got (%d, %d)", elements[0].Page, elements[0].ReadingOrder)
	}
	if len(elements[0].Bbox) != 4 {
		t.Errorf("expected bbox to survive decoding, got %v", elements[0].Bbox)
	}
}

func TestDecode_MalformedJSONIsFatal(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"pages": [`)); err == nil {
		t.Fatal("expected error for malformed input")
	}
}

func TestBefore(t *testing.T) {
	tests := []struct {
		aPage, aOrder, bPage, bOrder int
		want                         bool
	}{
		{1, 0, 1, 1, true},
		{1, 1, 1, 0, false},
		{1, 5, 2, 0, true},
		{2, 0, 1, 9, false},
		{1, 3, 1, 3, false},
	}
	for _, tt := range tests {
		got := Before(tt.aPage, tt.aOrder, tt.bPage, tt.bOrder)
		if got != tt.want {
			t.Errorf("Before(%d,%d, %d,%d): expected %v, got %v",
				tt.aPage, tt.aOrder, tt.bPage, tt.bOrder, tt.want, got)
		}
	}
}
