// Package contentapi posts validated records to the per-label endpoints of
// the content API.
package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

var endpointPaths = map[domain.Label]string{
	domain.LabelBlog:           "/blog",
	domain.LabelWorkExperience: "/experience/work",
	domain.LabelEducation:      "/experience/education",
	domain.LabelAchievement:    "/experience/achievement",
	domain.LabelSkill:          "/skills",
}

// Response bodies are truncated to this many bytes in outcome details.
const maxBodyDetail = 250

// Publisher issues exactly one POST per validated record. Failures are
// recorded in the outcome and never abort siblings; there is no retry.
type Publisher struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher wires the base URL; a nil client gets a 30s-timeout default.
func NewPublisher(baseURL string, client *http.Client, logger *slog.Logger) *Publisher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Publisher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Publish posts one record to its label endpoint. 200 and 201 count as
// success; any other status or a transport failure becomes an error outcome.
func (p *Publisher) Publish(ctx context.Context, label domain.Label, index int, record domain.Record) domain.PublishOutcome {
	outcome := domain.PublishOutcome{Label: label, Index: index}

	path, ok := endpointPaths[label]
	if !ok {
		outcome.Class = domain.OutcomeTransportError
		outcome.Detail = fmt.Sprintf("no endpoint mapped for label %s", label)
		return outcome
	}

	body, err := json.Marshal(record)
	if err != nil {
		outcome.Class = domain.OutcomeTransportError
		outcome.Detail = fmt.Sprintf("encode record: %v", err)
		return outcome
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		outcome.Class = domain.OutcomeTransportError
		outcome.Detail = fmt.Sprintf("build request: %v", err)
		return outcome
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.warn("publish transport failure", "label", label, "index", index, "error", err)
		outcome.Class = domain.OutcomeTransportError
		outcome.Detail = err.Error()
		return outcome
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyDetail))
	outcome.Status = resp.StatusCode
	outcome.Detail = strings.TrimSpace(string(payload))

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		outcome.Class = domain.OutcomeOK
	} else {
		p.warn("publish rejected", "label", label, "index", index, "status", resp.StatusCode)
		outcome.Class = domain.OutcomeHTTPError
	}
	return outcome
}

func (p *Publisher) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
