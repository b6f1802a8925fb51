package messaging_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/messaging"
	domainmsg "github.com/felixgeelhaar/sprintpulse/pkg/domain/messaging"
)

func TestSlackAdapter_Send(t *testing.T) {
	var receivedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := messaging.NewSlackAdapter(domainmsg.AdapterConfig{
		Name:    "test-slack",
		Type:    "slack",
		URL:     server.URL,
		Channel: "#team",
		Enabled: true,
	})

	if err := adapter.Send(context.Background(), testMessage()); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	var payload struct {
		Channel     string `json:"channel"`
		Text        string `json:"text"`
		Attachments []struct {
			Title  string `json:"title"`
			Fields []struct {
				Title string `json:"title"`
				Value string `json:"value"`
			} `json:"fields"`
		} `json:"attachments"`
	}
	if err := json.Unmarshal(receivedBody, &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if payload.Channel != "#team" {
		t.Errorf("channel = %q", payload.Channel)
	}
	if !strings.Contains(payload.Text, "Drift Score") || !strings.HasPrefix(payload.Text, "```") {
		t.Errorf("text = %q", payload.Text)
	}
	if len(payload.Attachments) != 1 || payload.Attachments[0].Title != "Sprint 9 progress" {
		t.Fatalf("attachments = %+v", payload.Attachments)
	}
	if f := payload.Attachments[0].Fields; len(f) != 2 || f[0].Title != "drift" || f[1].Value != "Low" {
		t.Errorf("fields = %+v", f)
	}
}

func TestSlackAdapter_Send_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	adapter := messaging.NewSlackAdapter(domainmsg.AdapterConfig{Name: "s", Type: "slack", URL: server.URL, Enabled: true})
	if err := adapter.Send(context.Background(), testMessage()); err == nil {
		t.Fatal("expected error for HTTP 403")
	}
}

func TestSlackAdapter_NameAndType(t *testing.T) {
	adapter := messaging.NewSlackAdapter(domainmsg.AdapterConfig{
		Name: "my-slack",
		Type: "slack",
	})

	if adapter.Name() != "my-slack" {
		t.Errorf("expected name 'my-slack', got %q", adapter.Name())
	}
	if adapter.Type() != "slack" {
		t.Errorf("expected type 'slack', got %q", adapter.Type())
	}
}
