package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/contact"
	"github.com/starford/ansuz/internal/delivery"
	"github.com/starford/ansuz/internal/notify"
	"github.com/starford/ansuz/internal/testutil"
	"github.com/starford/ansuz/internal/tracker"
)

const testSiteYAML = `
profile:
  name: Ada Lovelace
  headline: Software Engineer
  email: ada@example.com
sections:
  - id: home
    label: Home
  - id: about
    label: About
  - id: contact
    label: Contact
projects:
  - title: Analytical Engine
    description: A general-purpose computation engine.
    tech: [hardware, math]
skills:
  - title: Backend
    skills:
      - name: Go
        level: 90
channels:
  - kind: email
    value: ada@example.com
social:
  - name: GitHub
    url: https://github.com/ada
`

type stubSender struct {
	status int
	err    error
	calls  int
}

func (s *stubSender) Send(_ context.Context, _ delivery.Request) (*delivery.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &delivery.Response{Status: s.status}, nil
}

// testEnv sets up a temp content file, prefs DB, pipeline with a stub
// sender, and router for testing.
func testEnv(t *testing.T, sender delivery.Sender) (*Handler, http.Handler) {
	t.Helper()

	_, store := testutil.TestContent(t, testSiteYAML)
	prefStore := testutil.TestPrefs(t)

	slot := notify.NewSlot(time.Minute, nil)
	trk := tracker.New(tracker.DefaultLookaheadBias, nil)
	reg := tracker.NewRegistry()
	creds := contact.Credentials{ServiceID: "svc", TemplateID: "tpl", PublicKey: "key"}
	pipe := contact.NewPipeline(sender, slot, creds, nil)

	h := NewHandler(store, trk, reg, pipe, slot, prefStore, nil)
	return h, NewRouter(h, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(raw)
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validContact() map[string]string {
	return map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Hello",
		"message": "This is long enough.",
	}
}

func scrollReport(y float64) map[string]any {
	return map[string]any{
		"view":            "main",
		"y":               y,
		"viewport_height": 800.0,
		"sections": []map[string]any{
			{"id": "home", "top": 0, "height": 600},
			{"id": "about", "top": 600, "height": 900},
			{"id": "contact", "top": 1500, "height": 700},
		},
	}
}

func TestGetProfile(t *testing.T) {
	_, router := testEnv(t, &stubSender{status: http.StatusOK})

	w := doJSON(t, router, http.MethodGet, "/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profile = %d", w.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["name"] != "Ada Lovelace" {
		t.Errorf("name = %v", resp["name"])
	}
}

func TestListSections(t *testing.T) {
	_, router := testEnv(t, &stubSender{status: http.StatusOK})

	w := doJSON(t, router, http.MethodGet, "/sections", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sections = %d", w.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	sections := resp["sections"].([]any)
	if len(sections) != 3 {
		t.Errorf("len(sections) = %d, want 3", len(sections))
	}
}

func TestReportScroll_TracksSection(t *testing.T) {
	_, router := testEnv(t, &stubSender{status: http.StatusOK})

	w := doJSON(t, router, http.MethodPost, "/scroll", scrollReport(0))
	if w.Code != http.StatusOK {
		t.Fatalf("scroll = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ScrollResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Section != "home" {
		t.Errorf("section = %q, want home", resp.Section)
	}
	if !resp.Changed {
		t.Error("first matching report should register a change")
	}

	// Same position again: no change.
	w = doJSON(t, router, http.MethodPost, "/scroll", scrollReport(0))
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Changed {
		t.Error("repeat report should not register a change")
	}

	// Deep scroll lands in contact.
	w = doJSON(t, router, http.MethodPost, "/scroll", scrollReport(1600))
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Section != "contact" || !resp.Changed {
		t.Errorf("section = %q changed = %v, want contact true", resp.Section, resp.Changed)
	}

	// Current section survives on GET /section.
	w = doJSON(t, router, http.MethodGet, "/section", nil)
	var cur SectionResponse
	_ = json.Unmarshal(w.Body.Bytes(), &cur)
	if cur.Section != "contact" {
		t.Errorf("current section = %q, want contact", cur.Section)
	}
}

func TestReportScroll_FiresRevealCues(t *testing.T) {
	_, router := testEnv(t, &stubSender{status: http.StatusOK})

	// At y=0 with viewport 800, reveal threshold 0.8 puts the reveal line
	// at 640: only home (top 0) and about (top 600) fire.
	w := doJSON(t, router, http.MethodPost, "/scroll", scrollReport(0))
	var resp ScrollResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	want := []string{"about-reveal", "home-reveal"}
	if len(resp.Cues) != len(want) {
		t.Fatalf("cues = %v, want %v", resp.Cues, want)
	}
	for i := range want {
		if resp.Cues[i] != want[i] {
			t.Errorf("cues[%d] = %q, want %q", i, resp.Cues[i], want[i])
		}
	}

	// Repeat report fires nothing new.
	w = doJSON(t, router, http.MethodPost, "/scroll", scrollReport(0))
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Cues) != 0 {
		t.Errorf("repeat cues = %v, want none", resp.Cues)
	}

	// Scrolling down reveals contact.
	w = doJSON(t, router, http.MethodPost, "/scroll", scrollReport(1000))
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Cues) != 1 || resp.Cues[0] != "contact-reveal" {
		t.Errorf("cues = %v, want [contact-reveal]", resp.Cues)
	}
}

func TestReportScroll_InvalidBody(t *testing.T) {
	_, router := testEnv(t, &stubSender{status: http.StatusOK})

	// Missing sections.
	w := doJSON(t, router, http.MethodPost, "/scroll", map[string]any{"view": "main", "y": 0})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing sections = %d, want 400", w.Code)
	}

	// Missing view.
	body := scrollReport(0)
	body["view"] = ""
	w = doJSON(t, router, http.MethodPost, "/scroll", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing view = %d, want 400", w.Code)
	}
}

func TestDropView_RearmsCues(t *testing.T) {
	_, router := testEnv(t, &stubSender{status: http.StatusOK})

	doJSON(t, router, http.MethodPost, "/scroll", scrollReport(0))

	w := doJSON(t, router, http.MethodDelete, "/views/main", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("drop view = %d, want 204", w.Code)
	}

	// Next report re-registers and fires again.
	w = doJSON(t, router, http.MethodPost, "/scroll", scrollReport(0))
	var resp ScrollResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Cues) == 0 {
		t.Error("cues should re-fire after view drop")
	}
}

func TestSubmitContact_Success(t *testing.T) {
	sender := &stubSender{status: http.StatusOK}
	_, router := testEnv(t, sender)

	w := doJSON(t, router, http.MethodPost, "/contact", validContact())
	if w.Code != http.StatusOK {
		t.Fatalf("contact = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ContactResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != string(contact.StatusSucceeded) {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Notification.Kind != notify.KindSuccess || !resp.Notification.Visible {
		t.Errorf("notification = %+v", resp.Notification)
	}
	if sender.calls != 1 {
		t.Errorf("sender calls = %d, want 1", sender.calls)
	}
}

func TestSubmitContact_ValidationFailure(t *testing.T) {
	sender := &stubSender{status: http.StatusOK}
	_, router := testEnv(t, sender)

	body := validContact()
	body["email"] = "not-an-email"
	w := doJSON(t, router, http.MethodPost, "/contact", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid email = %d, want 400", w.Code)
	}
	var resp ContactResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Notification.Message != "Please enter a valid email address" {
		t.Errorf("message = %q", resp.Notification.Message)
	}
	if sender.calls != 0 {
		t.Errorf("sender calls = %d, want 0", sender.calls)
	}
}

func TestSubmitContact_DeliveryFailure(t *testing.T) {
	sender := &stubSender{err: errors.New("network unreachable")}
	_, router := testEnv(t, sender)

	w := doJSON(t, router, http.MethodPost, "/contact", validContact())
	if w.Code != http.StatusBadGateway {
		t.Fatalf("delivery failure = %d, want 502", w.Code)
	}
	var resp ContactResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != string(contact.StatusFailed) {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Notification.Message != delivery.MsgNetwork {
		t.Errorf("message = %q", resp.Notification.Message)
	}
}

func TestGetAndDismissNotification(t *testing.T) {
	_, router := testEnv(t, &stubSender{status: http.StatusOK})

	doJSON(t, router, http.MethodPost, "/contact", validContact())

	w := doJSON(t, router, http.MethodGet, "/notification", nil)
	var n notify.Notification
	_ = json.Unmarshal(w.Body.Bytes(), &n)
	if !n.Visible {
		t.Fatal("notification should be visible after submit")
	}

	w = doJSON(t, router, http.MethodDelete, "/notification", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("dismiss = %d, want 204", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/notification", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &n)
	if n.Visible {
		t.Error("notification should be hidden after dismiss")
	}
}

func TestThemeRoundtrip(t *testing.T) {
	_, router := testEnv(t, &stubSender{status: http.StatusOK})

	// Default is light.
	w := doJSON(t, router, http.MethodGet, "/theme", nil)
	var body ThemeBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Dark {
		t.Error("default theme should be light")
	}

	w = doJSON(t, router, http.MethodPut, "/theme", ThemeBody{Dark: true})
	if w.Code != http.StatusOK {
		t.Fatalf("put theme = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/theme", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if !body.Dark {
		t.Error("theme should persist dark")
	}
}
