package engage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// Transport is the push-style boundary to the external engagement service.
// Implementations are one-way: callers never consume a payload back.
type Transport interface {
	PushEvent(ctx context.Context, identity, name string, attrs map[string]any) error
	PushProfile(ctx context.Context, identity string, attrs map[string]any) error
}

// HTTPTransport uploads events and profile attributes to the engagement
// service's server-side upload endpoint, authenticated by account id and
// passcode headers.
type HTTPTransport struct {
	endpoint  string
	accountID string
	passcode  string
	httpc     *http.Client
}

func NewHTTPTransport(endpoint, accountID, passcode string) *HTTPTransport {
	return &HTTPTransport{
		endpoint:  endpoint,
		accountID: accountID,
		passcode:  passcode,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type uploadRecord struct {
	Identity    string         `json:"identity"`
	Type        string         `json:"type"`
	EventName   string         `json:"evtName,omitempty"`
	EventData   map[string]any `json:"evtData,omitempty"`
	ProfileData map[string]any `json:"profileData,omitempty"`
	TS          int64          `json:"ts"`
}

type uploadBody struct {
	Records []uploadRecord `json:"d"`
}

func (t *HTTPTransport) PushEvent(ctx context.Context, identity, name string, attrs map[string]any) error {
	return t.upload(ctx, uploadRecord{
		Identity:  identity,
		Type:      "event",
		EventName: name,
		EventData: attrs,
		TS:        time.Now().Unix(),
	})
}

func (t *HTTPTransport) PushProfile(ctx context.Context, identity string, attrs map[string]any) error {
	return t.upload(ctx, uploadRecord{
		Identity:    identity,
		Type:        "profile",
		ProfileData: attrs,
		TS:          time.Now().Unix(),
	})
}

func (t *HTTPTransport) upload(ctx context.Context, rec uploadRecord) error {
	payload, err := json.Marshal(uploadBody{Records: []uploadRecord{rec}})
	if err != nil {
		return fmt.Errorf("encode upload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Engage-Account-Id", t.accountID)
	req.Header.Set("X-Engage-Passcode", t.passcode)

	resp, err := t.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload status %d", resp.StatusCode)
	}
	return nil
}

// NopTransport drops everything. Used when no engagement account is
// configured and as the substitution point in tests.
type NopTransport struct{}

func (NopTransport) PushEvent(context.Context, string, string, map[string]any) error { return nil }
func (NopTransport) PushProfile(context.Context, string, map[string]any) error      { return nil }
