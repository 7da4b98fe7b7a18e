// Package tracker computes the current page section from reported scroll
// positions and drives scroll-bound animation triggers.
package tracker

import (
	"sync"

	"github.com/starford/ansuz/internal/models"
)

// DefaultLookaheadBias is added to the raw scroll offset before matching,
// so a section becomes current slightly before its top edge reaches the
// viewport top. This anti-lag bias is intentional.
const DefaultLookaheadBias = 100

// Tracker owns the process-wide scroll state. It stores only the current
// section ID; section geometry is supplied fresh on every Evaluate call and
// never cached, because layout can reflow between reports.
type Tracker struct {
	bias     float64
	onChange func(id string)

	mu      sync.Mutex
	current string
}

// New creates a Tracker with the given lookahead bias. onChange, if non-nil,
// is invoked only when an evaluation lands on a different section than the
// previous one.
func New(bias float64, onChange func(id string)) *Tracker {
	if bias < 0 {
		bias = DefaultLookaheadBias
	}
	return &Tracker{bias: bias, onChange: onChange}
}

// Evaluate matches rawY (plus the lookahead bias) against the sections in
// their declared order and returns the current section ID along with whether
// it changed.
//
// The pass never short-circuits: when ranges overlap, the last declared
// section containing the effective offset wins. When no range matches, the
// previous value is retained rather than cleared.
func (t *Tracker) Evaluate(sections []models.SectionBounds, rawY float64) (string, bool) {
	if rawY < 0 {
		rawY = 0
	}
	effectiveY := rawY + t.bias

	matched := ""
	for _, s := range sections {
		if s.Contains(effectiveY) {
			matched = s.ID
		}
	}

	t.mu.Lock()
	if matched == "" || matched == t.current {
		cur := t.current
		t.mu.Unlock()
		return cur, false
	}
	t.current = matched
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange(matched)
	}
	return matched, true
}

// Current returns the most recently computed section ID, or "" before the
// first matching evaluation.
func (t *Tracker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
