// Package trace records the steps of a run and exports them as CSV or JSON.
package trace

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/sortstep/internal/sortstep"
	"github.com/san-kum/sortstep/internal/stepper"
)

// Entry is one applied step together with the array it left behind.
type Entry struct {
	Seq   int
	Step  sortstep.Step
	Array sortstep.Array
}

// Recorder collects entries as a stepper.Observer.
type Recorder struct {
	entries []Entry
}

func NewRecorder() *Recorder {
	return &Recorder{entries: make([]Entry, 0)}
}

func (r *Recorder) OnStep(step sortstep.Step, a sortstep.Array) {
	r.entries = append(r.entries, Entry{Seq: len(r.entries) + 1, Step: step, Array: a.Clone()})
}

func (r *Recorder) Entries() []Entry { return r.entries }

func (r *Recorder) Reset() { r.entries = r.entries[:0] }

var _ stepper.Observer = (*Recorder)(nil)

// Record is the export form of an entry. Only the operands that the step
// kind defines are set.
type Record struct {
	Seq       int    `json:"seq"`
	Kind      string `json:"kind"`
	I         *int   `json:"i,omitempty"`
	J         *int   `json:"j,omitempty"`
	Value     *int   `json:"value,omitempty"`
	Lo        *int   `json:"lo,omitempty"`
	Mid       *int   `json:"mid,omitempty"`
	Hi        *int   `json:"hi,omitempty"`
	Highlight []int  `json:"highlight"`
	Array     []int  `json:"array"`
	Narration string `json:"narration"`
}

func NewRecord(e Entry) Record {
	s := e.Step
	rec := Record{
		Seq:       e.Seq,
		Kind:      s.Kind.String(),
		Highlight: append([]int{}, s.Highlight...),
		Array:     append([]int{}, e.Array...),
		Narration: s.Narration,
	}
	switch s.Kind {
	case sortstep.KindCompare, sortstep.KindSwap:
		rec.I, rec.J = ptr(s.I), ptr(s.J)
	case sortstep.KindOverwrite:
		rec.I, rec.Value = ptr(s.I), ptr(s.Value)
	case sortstep.KindDivide, sortstep.KindMerge:
		rec.Lo, rec.Mid, rec.Hi = ptr(s.Lo), ptr(s.Mid), ptr(s.Hi)
	case sortstep.KindPivot:
		rec.I, rec.Lo, rec.Hi = ptr(s.I), ptr(s.Lo), ptr(s.Hi)
	case sortstep.KindPartition:
		rec.I, rec.Lo, rec.Hi = ptr(s.I), ptr(s.Lo), ptr(s.Hi)
	}
	return rec
}

func ptr(v int) *int { return &v }

var csvHeader = []string{"seq", "kind", "i", "j", "value", "lo", "mid", "hi", "highlight", "array", "narration"}

// WriteCSV writes one row per entry.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range entries {
		rec := NewRecord(e)
		hl := make([]string, len(rec.Highlight))
		for i, v := range rec.Highlight {
			hl[i] = strconv.Itoa(v)
		}
		row := []string{
			strconv.Itoa(rec.Seq),
			rec.Kind,
			cell(rec.I),
			cell(rec.J),
			cell(rec.Value),
			cell(rec.Lo),
			cell(rec.Mid),
			cell(rec.Hi),
			strings.Join(hl, " "),
			e.Array.String(),
			rec.Narration,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func cell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

type Meta struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Language  string             `json:"language,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Initial   []int              `json:"initial"`
	Final     []int              `json:"final"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// NewMeta describes a finished headless run.
func NewMeta(res *stepper.Result, lang string) Meta {
	return Meta{
		ID:        uuid.NewString(),
		Algorithm: res.Algorithm,
		Language:  lang,
		Timestamp: time.Now(),
		Initial:   append([]int{}, res.Initial...),
		Final:     append([]int{}, res.Final...),
		Metrics:   res.Metrics,
	}
}

type Document struct {
	Meta
	Steps int      `json:"steps"`
	Trace []Record `json:"trace"`
}

// WriteJSON writes meta and every entry as one indented document.
func WriteJSON(w io.Writer, meta Meta, entries []Entry) error {
	doc := Document{
		Meta:  meta,
		Steps: len(entries),
		Trace: make([]Record, len(entries)),
	}
	for i, e := range entries {
		doc.Trace[i] = NewRecord(e)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
