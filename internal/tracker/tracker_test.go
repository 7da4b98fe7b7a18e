package tracker

import (
	"testing"

	"github.com/starford/ansuz/internal/models"
)

// threeSections is the canonical fixed layout: [0,100), [100,300), [300,600).
func threeSections() []models.SectionBounds {
	return []models.SectionBounds{
		{ID: "home", TopOffset: 0, Height: 100},
		{ID: "about", TopOffset: 100, Height: 200},
		{ID: "contact", TopOffset: 300, Height: 300},
	}
}

func TestEvaluate_ZeroBias(t *testing.T) {
	tests := []struct {
		name string
		rawY float64
		want string
	}{
		{"start of first", 0, "home"},
		{"inside first", 99, "home"},
		{"boundary is next section", 100, "about"},
		{"inside second", 150, "about"},
		{"inside third", 300, "contact"},
		{"last contained offset", 599, "contact"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(0, nil)
			got, changed := tr.Evaluate(threeSections(), tt.rawY)
			if got != tt.want {
				t.Errorf("Evaluate(%v) = %q, want %q", tt.rawY, got, tt.want)
			}
			if !changed {
				t.Errorf("first matching evaluation should report a change")
			}
		})
	}
}

func TestEvaluate_NoMatchRetainsPrevious(t *testing.T) {
	tr := New(0, nil)
	tr.Evaluate(threeSections(), 150)

	got, changed := tr.Evaluate(threeSections(), 700)
	if got != "about" {
		t.Errorf("out-of-range evaluation should retain %q, got %q", "about", got)
	}
	if changed {
		t.Error("retained value must not count as a change")
	}
}

func TestEvaluate_NoMatchBeforeFirstMatchStaysEmpty(t *testing.T) {
	tr := New(0, nil)
	got, changed := tr.Evaluate(threeSections(), 700)
	if got != "" || changed {
		t.Errorf("Evaluate with no prior match = (%q, %v), want empty and unchanged", got, changed)
	}
}

func TestEvaluate_LookaheadBias(t *testing.T) {
	// With bias 100 the effective offset at rawY=0 is exactly the second
	// section's inclusive lower bound.
	tr := New(100, nil)
	got, _ := tr.Evaluate(threeSections(), 0)
	if got != "about" {
		t.Errorf("bias 100 at rawY 0 should land on %q, got %q", "about", got)
	}
}

func TestEvaluate_LastDeclaredWinsOnOverlap(t *testing.T) {
	overlapping := []models.SectionBounds{
		{ID: "a", TopOffset: 0, Height: 200},
		{ID: "b", TopOffset: 100, Height: 200},
	}
	tr := New(0, nil)
	got, _ := tr.Evaluate(overlapping, 150)
	if got != "b" {
		t.Errorf("overlap should resolve to the last declared section, got %q", got)
	}
}

func TestEvaluate_NegativeOffsetClampedToZero(t *testing.T) {
	tr := New(0, nil)
	got, _ := tr.Evaluate(threeSections(), -50)
	if got != "home" {
		t.Errorf("negative rawY should evaluate as 0, got %q", got)
	}
}

func TestEvaluate_OnChangeFiresOnlyOnTransitions(t *testing.T) {
	var changes []string
	tr := New(0, func(id string) { changes = append(changes, id) })

	tr.Evaluate(threeSections(), 10)  // home
	tr.Evaluate(threeSections(), 50)  // still home: no callback
	tr.Evaluate(threeSections(), 150) // about
	tr.Evaluate(threeSections(), 700) // no match: no callback
	tr.Evaluate(threeSections(), 400) // contact

	want := []string{"home", "about", "contact"}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("changes = %v, want %v", changes, want)
		}
	}
}

func TestEvaluate_GeometryReadFreshEachCall(t *testing.T) {
	tr := New(0, nil)
	tr.Evaluate(threeSections(), 150) // about

	// Layout reflow: the same rawY now falls in a different section.
	reflowed := []models.SectionBounds{
		{ID: "home", TopOffset: 0, Height: 140},
		{ID: "about", TopOffset: 140, Height: 360},
	}
	got, _ := tr.Evaluate(reflowed, 120)
	if got != "home" {
		t.Errorf("reflowed geometry should be honored, got %q", got)
	}
}
