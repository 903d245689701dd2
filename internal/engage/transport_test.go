package engage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func TestHTTPTransportUploadsEventRecord(t *testing.T) {
	var (
		gotAccount  string
		gotPasscode string
		gotBody     uploadBody
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount = r.Header.Get("X-Engage-Account-Id")
		gotPasscode = r.Header.Get("X-Engage-Passcode")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, "acct", "secret")
	err := tr.PushEvent(context.Background(), "jane@example.com", "Movie Clicked", map[string]any{"title": "Inception"})
	if err != nil {
		t.Fatalf("push event: %v", err)
	}

	if gotAccount != "acct" || gotPasscode != "secret" {
		t.Fatalf("auth headers = %q/%q", gotAccount, gotPasscode)
	}
	if len(gotBody.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(gotBody.Records))
	}
	rec := gotBody.Records[0]
	if rec.Type != "event" || rec.EventName != "Movie Clicked" || rec.Identity != "jane@example.com" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.EventData["title"] != "Inception" {
		t.Fatalf("unexpected event data: %v", rec.EventData)
	}
}

func TestHTTPTransportRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, "acct", "wrong")
	if err := tr.PushProfile(context.Background(), "jane@example.com", map[string]any{"Name": "Jane"}); err == nil {
		t.Fatalf("expected error on 401")
	}
}
