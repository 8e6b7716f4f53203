// Package sink projects committed audit events to an external webhook, e.g.
// a notification service. Delivery is best effort; the audit trail of record
// stays in the database.
package sink

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	model "helpdesk/models/training"
)

type WebhookSink struct {
	client *resty.Client
	url    string
}

// NewWebhook builds a sink posting events to url.
func NewWebhook(url string) *WebhookSink {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2)
	return &WebhookSink{client: client, url: url}
}

// Publish posts one event. Failures are logged and dropped.
func (w *WebhookSink) Publish(evt model.TrainingEvent) {
	resp, err := w.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(evt).
		Post(w.url)
	if err != nil {
		log.Printf("[EVENT-SINK] failed to deliver event %s: %v", evt.Reference, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("[EVENT-SINK] event %s rejected with status %d", evt.Reference, resp.StatusCode())
	}
}
