package prefs

import (
	"os"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	f, err := os.CreateTemp("", "ansuz-prefs-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	s, err := Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestThemeDefaultsToLight(t *testing.T) {
	s := testStore(t)
	dark, err := s.Theme()
	if err != nil {
		t.Fatal(err)
	}
	if dark {
		t.Error("unset theme should default to light")
	}
}

func TestSetThemeRoundTrip(t *testing.T) {
	s := testStore(t)
	if err := s.SetTheme(true); err != nil {
		t.Fatal(err)
	}
	dark, err := s.Theme()
	if err != nil {
		t.Fatal(err)
	}
	if !dark {
		t.Error("dark theme not persisted")
	}

	if err := s.SetTheme(false); err != nil {
		t.Fatal(err)
	}
	dark, _ = s.Theme()
	if dark {
		t.Error("theme toggle back to light not persisted")
	}
}

func TestGetSetArbitraryKey(t *testing.T) {
	s := testStore(t)
	if _, ok, _ := s.Get("nope"); ok {
		t.Error("missing key reported present")
	}
	if err := s.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Errorf("Get = (%q, %v, %v), want v2", v, ok, err)
	}
}
