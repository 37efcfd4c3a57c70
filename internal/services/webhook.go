package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"go.uber.org/zap"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username  string         `json:"username"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorRed   = 16711680 // #FF0000 - Alert triggered
	ColorGreen = 65280    // #00FF00 - Alert resolved

	Username = "Autopilot Studio"

	webhookTimeout = 10 * time.Second
)

// Notifier fans alert transitions out to the alert's notification channels.
// Channels are "discord:<webhook url>" or "slack:<webhook url>"; anything
// else is skipped. Delivery is fire-and-forget: sends run off the caller's
// goroutine with a bounded client, and failures are logged, never surfaced.
type Notifier struct {
	logger *zap.Logger
	client *http.Client
}

func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{
		logger: logger,
		client: &http.Client{Timeout: webhookTimeout},
	}
}

func (n *Notifier) NotifyAlertTriggered(alert models.Alert) {
	go n.dispatch(alert, true)
}

func (n *Notifier) NotifyAlertResolved(alert models.Alert) {
	go n.dispatch(alert, false)
}

func (n *Notifier) dispatch(alert models.Alert, triggered bool) {
	for _, channel := range alert.NotificationChannels {
		var err error

		switch {
		case strings.HasPrefix(channel, "discord:"):
			url := strings.TrimPrefix(channel, "discord:")
			if triggered {
				err = n.sendDiscordAlertTriggered(url, alert)
			} else {
				err = n.sendDiscordAlertResolved(url, alert)
			}
		case strings.HasPrefix(channel, "slack:"):
			url := strings.TrimPrefix(channel, "slack:")
			if triggered {
				err = n.sendSlackAlertTriggered(url, alert)
			} else {
				err = n.sendSlackAlertResolved(url, alert)
			}
		default:
			continue
		}

		if err != nil {
			n.logger.Warn("alert notification failed",
				zap.String("alert_id", alert.ID),
				zap.Error(err))
		}
	}
}

func (n *Notifier) sendDiscordAlertTriggered(webhookURL string, alert models.Alert) error {
	payload := DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "🚨 **ALERT TRIGGERED**",
				Description: fmt.Sprintf("**%s** has fired and requires attention.", alert.AlertName),
				Color:       ColorRed,
				Fields: []DiscordWebhookField{
					{Name: "📊 Alert", Value: alert.AlertName, Inline: true},
					{Name: "⚠️ Severity", Value: "**" + alert.Severity + "**", Inline: true},
					{Name: "📈 Current Value", Value: fmt.Sprintf("%g", alert.CurrentValue), Inline: true},
					{Name: "🎯 Threshold", Value: fmt.Sprintf("%g", alert.ThresholdValue), Inline: true},
					{Name: "📋 Description", Value: alert.Description, Inline: false},
					{Name: "⏰ Triggered At", Value: alert.TriggeredAt.Format("2006-01-02 15:04:05 UTC"), Inline: true},
				},
				Footer: &DiscordFooter{
					Text: "Autopilot Studio Monitoring",
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}

	return n.sendDiscordWebhook(webhookURL, payload)
}

func (n *Notifier) sendDiscordAlertResolved(webhookURL string, alert models.Alert) error {
	resolvedAt := "Unknown"
	duration := "Unknown"

	if alert.ResolvedAt != nil {
		resolvedAt = alert.ResolvedAt.Format("2006-01-02 15:04:05 UTC")
		duration = alert.ResolvedAt.Sub(alert.TriggeredAt).Round(time.Second).String()
	}

	payload := DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "✅ **ALERT RESOLVED**",
				Description: fmt.Sprintf("**%s** is back below its threshold.", alert.AlertName),
				Color:       ColorGreen,
				Fields: []DiscordWebhookField{
					{Name: "📊 Alert", Value: alert.AlertName, Inline: true},
					{Name: "⚠️ Severity", Value: alert.Severity, Inline: true},
					{Name: "⏰ Triggered At", Value: alert.TriggeredAt.Format("2006-01-02 15:04:05 UTC"), Inline: true},
					{Name: "🏁 Resolved At", Value: resolvedAt, Inline: true},
					{Name: "⏱️ Duration", Value: duration, Inline: true},
				},
				Footer: &DiscordFooter{
					Text: "Autopilot Studio Monitoring",
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}

	return n.sendDiscordWebhook(webhookURL, payload)
}

func (n *Notifier) sendSlackAlertTriggered(webhookURL string, alert models.Alert) error {
	payload := SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":rotating_light:",
		Text:      ":rotating_light: *ALERT TRIGGERED*",
		Attachments: []SlackAttachment{
			{
				Color: "danger",
				Title: fmt.Sprintf("Alert '%s' has fired", alert.AlertName),
				Text:  alert.Description,
				Fields: []SlackField{
					{Title: "Severity", Value: alert.Severity, Short: true},
					{Title: "Status", Value: alert.Status, Short: true},
					{Title: "Current Value", Value: fmt.Sprintf("%g", alert.CurrentValue), Short: true},
					{Title: "Threshold", Value: fmt.Sprintf("%g", alert.ThresholdValue), Short: true},
					{Title: "Triggered At", Value: alert.TriggeredAt.Format("2006-01-02 15:04:05 UTC"), Short: false},
				},
				Footer:    "Autopilot Studio Monitoring",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return n.sendSlackWebhook(webhookURL, payload)
}

func (n *Notifier) sendSlackAlertResolved(webhookURL string, alert models.Alert) error {
	resolvedAt := "Unknown"
	duration := "Unknown"

	if alert.ResolvedAt != nil {
		resolvedAt = alert.ResolvedAt.Format("2006-01-02 15:04:05 UTC")
		duration = alert.ResolvedAt.Sub(alert.TriggeredAt).Round(time.Second).String()
	}

	payload := SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":white_check_mark:",
		Text:      ":white_check_mark: *ALERT RESOLVED*",
		Attachments: []SlackAttachment{
			{
				Color: "good",
				Title: fmt.Sprintf("Alert '%s' has been resolved", alert.AlertName),
				Text:  "The alert condition has cleared.",
				Fields: []SlackField{
					{Title: "Severity", Value: alert.Severity, Short: true},
					{Title: "Duration", Value: duration, Short: true},
					{Title: "Triggered At", Value: alert.TriggeredAt.Format("2006-01-02 15:04:05 UTC"), Short: true},
					{Title: "Resolved At", Value: resolvedAt, Short: true},
				},
				Footer:    "Autopilot Studio Monitoring",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return n.sendSlackWebhook(webhookURL, payload)
}

func (n *Notifier) sendDiscordWebhook(webhookURL string, payload DiscordWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Discord payload: %w", err)
	}

	resp, err := n.client.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Discord webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func (n *Notifier) sendSlackWebhook(webhookURL string, payload SlackWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	resp, err := n.client.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}
