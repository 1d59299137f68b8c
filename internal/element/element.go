package element

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DocumentElement is one labeled region recognized on a page, as produced
// by the external layout model. Elements are uniquely ordered by
// (Page, ReadingOrder).
type DocumentElement struct {
	Label        string `json:"label"`
	Text         string `json:"text"`
	Bbox         []int  `json:"bbox,omitempty"`
	Page         int    `json:"page"`
	ReadingOrder int    `json:"reading_order"`
}

// Kind partitions labels into the three roles the builder cares about.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindStructural
	KindContent
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindContent:
		return "content"
	default:
		return "unrecognized"
	}
}

// Class is the one-time classification of a label. Depth is meaningful only
// for structural classes; content and unrecognized elements carry -1.
type Class struct {
	Kind  Kind
	Depth int
}

// contentLabels is the closed set of labels treated as body content.
// Merged labels (figure, table, list_group) are included so a re-run over
// already-merged output classifies the same way.
var contentLabels = map[string]bool{
	"para":       true,
	"list":       true,
	"list_group": true,
	"figure":     true,
	"table":      true,
	"cap":        true,
	"fig":        true,
	"tab":        true,
	"fnote":      true,
	"foot":       true,
	"author":     true,
}

// Classify maps a raw label to its structural depth and kind.
//
// Depth follows the repeating-prefix convention of the layout model:
// title is depth 0, sec is depth 1, and each additional "sub_" prefix
// pushes one level deeper (sub_sec=2, sub_sub_sec=3, ...), giving
// unlimited nesting. Labels outside the structural and content sets are
// unrecognized; the builder drops them and reports the count.
func Classify(label string) Class {
	switch {
	case label == "title":
		return Class{Kind: KindStructural, Depth: 0}
	case label == "sec":
		return Class{Kind: KindStructural, Depth: 1}
	case label == "document":
		return Class{Kind: KindStructural, Depth: -1}
	case strings.HasPrefix(label, "sub_"):
		return Class{Kind: KindStructural, Depth: strings.Count(label, "sub_") + 1}
	case contentLabels[label]:
		return Class{Kind: KindContent, Depth: -1}
	default:
		return Class{Kind: KindUnrecognized, Depth: -1}
	}
}

// Recognition is the wire format delivered by the parsing collaborator.
type Recognition struct {
	Pages []RecognitionPage `json:"pages"`
}

// RecognitionPage holds the elements recognized on a single page.
type RecognitionPage struct {
	PageNumber int                  `json:"page_number"`
	Elements   []RecognitionElement `json:"elements"`
}

// RecognitionElement is one raw element before page stamping.
type RecognitionElement struct {
	Label        string `json:"label"`
	Text         string `json:"text"`
	Bbox         []int  `json:"bbox,omitempty"`
	ReadingOrder int    `json:"reading_order"`
}

// Decode parses recognition JSON and flattens it into document elements
// sorted by (page, reading_order). A decode failure is fatal for the run.
func Decode(r io.Reader) ([]DocumentElement, error) {
	var rec Recognition
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode recognition json: %w", err)
	}
	return Flatten(rec), nil
}

// Flatten stamps each element with its page number and returns the full
// element list in document order.
func Flatten(rec Recognition) []DocumentElement {
	var out []DocumentElement
	for _, page := range rec.Pages {
		for _, el := range page.Elements {
			out = append(out, DocumentElement{
				Label:        el.Label,
				Text:         el.Text,
				Bbox:         el.Bbox,
				Page:         page.PageNumber,
				ReadingOrder: el.ReadingOrder,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].ReadingOrder < out[j].ReadingOrder
	})
	return out
}

// Before reports whether element a precedes element b in document order.
func Before(aPage, aOrder, bPage, bOrder int) bool {
	if aPage != bPage {
		return aPage < bPage
	}
	return aOrder < bOrder
}
