package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const EventProjectRefresh = "project:refresh"

// RealtimeClient publishes broadcast messages through the Realtime REST
// endpoint. supabase-go has no Realtime support, so requests are plain HTTP.
type RealtimeClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewRealtimeClient(supabaseURL, apiKey string) *RealtimeClient {
	return &RealtimeClient{
		endpoint: strings.TrimSuffix(supabaseURL, "/") + "/realtime/v1/api/broadcast",
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type broadcastMessage struct {
	Topic   string         `json:"topic"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

func (r *RealtimeClient) PublishEvent(ctx context.Context, channel, event string, payload map[string]any) error {
	body, err := json.Marshal(map[string][]broadcastMessage{
		"messages": {{Topic: channel, Event: event, Payload: payload}},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("failed to publish event: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// PublishUserEvent broadcasts on the user's channel, which the dashboard
// subscribes to.
func (r *RealtimeClient) PublishUserEvent(ctx context.Context, userID, event string, payload map[string]any) error {
	return r.PublishEvent(ctx, "user:"+userID, event, payload)
}

func ProjectRefreshPayload(projectID, reason string) map[string]any {
	return map[string]any{
		"project_id": projectID,
		"reason":     reason,
	}
}
