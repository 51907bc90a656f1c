// Package operator forwards anomalies that need human follow-up: degraded payroll
// slices, stale sessions, high-value policies awaiting adjudication.
package operator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/slack-go/slack"
)

type Reporter interface {
	Report(ctx context.Context, event string, fields map[string]any)
}

// LogReporter writes reports to slog only.
type LogReporter struct {
	logger *slog.Logger
}

func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(ctx context.Context, event string, fields map[string]any) {
	r.logger.WarnContext(ctx, event, flatten(fields)...)
}

// SlackReporter logs and also posts to an operator channel.
type SlackReporter struct {
	client  *slack.Client
	channel string
	log     *LogReporter
}

func NewSlackReporter(token, channel string, logger *slog.Logger) *SlackReporter {
	return &SlackReporter{
		client:  slack.New(token),
		channel: channel,
		log:     NewLogReporter(logger),
	}
}

func (r *SlackReporter) Report(ctx context.Context, event string, fields map[string]any) {
	r.log.Report(ctx, event, fields)

	_, _, err := r.client.PostMessageContext(ctx, r.channel,
		slack.MsgOptionText(FormatMessage(event, fields), false),
	)
	if err != nil {
		r.log.logger.ErrorContext(ctx, "Failed to post operator message to Slack", "event", event, "error", err)
	}
}

// New returns a Slack-backed reporter when a token and channel are configured.
func New(token, channel string, logger *slog.Logger) Reporter {
	if token == "" || channel == "" {
		return NewLogReporter(logger)
	}
	return NewSlackReporter(token, channel, logger)
}

// FormatMessage renders "event (k=v, k=v)" with keys sorted.
func FormatMessage(event string, fields map[string]any) string {
	if len(fields) == 0 {
		return event
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return fmt.Sprintf("%s (%s)", event, strings.Join(parts, ", "))
}

func flatten(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}
