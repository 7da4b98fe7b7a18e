package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"network substring", errors.New("dial tcp: network is unreachable"), MsgNetwork},
		{"rate limit substring", errors.New("provider said: rate limit exceeded"), MsgRateLimit},
		{"anything else", errors.New("template not found"), MsgGeneric},
		{"network wins over rate limit", errors.New("network rate limit"), MsgNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_Send(t *testing.T) {
	var received sendBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	resp, err := c.Send(context.Background(), Request{
		ServiceID:  "svc",
		TemplateID: "tpl",
		PublicKey:  "key",
		Params: models.ContactMessage{
			Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "A long enough message.",
		},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.Status)
	}
	if received.ServiceID != "svc" || received.TemplateID != "tpl" || received.UserID != "key" {
		t.Errorf("credentials not forwarded: %+v", received)
	}
	if received.TemplateParams["name"] != "Ada" {
		t.Errorf("params not forwarded: %+v", received.TemplateParams)
	}
}

func TestClient_SendNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad template", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	resp, err := c.Send(context.Background(), Request{})
	if err != nil {
		t.Fatalf("non-200 should not be a transport error: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.Status)
	}
}

func TestClient_SendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Send(context.Background(), Request{}); err == nil {
		t.Fatal("expected transport error against closed server")
	}
}
