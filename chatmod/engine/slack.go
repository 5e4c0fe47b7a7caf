package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

type SlackNotifier struct {
	SlackWebhookURL string

	client *http.Client
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.Logger = nil
	return &SlackNotifier{
		SlackWebhookURL: webhookURL,
		client:          retryClient.StandardClient(),
	}
}

func (n *SlackNotifier) Send(ctx context.Context, service string, c *MessageContext, decision *Decision) error {
	if service != "slack" || decision.Final == nil {
		return nil
	}
	msg := slackBody("⚠️ Chat Moderation Action ⚠️\n", c, decision)
	c.Logger.Debug("sending slack notification")
	return n.sendSlackMsg(ctx, msg)
}

type SlackWebhookBody struct {
	Text string `json:"text"`
}

// Sends a simple slack message to a channel via "incoming webhook".
//
// The slack incoming webhook must be already configured in the slack workplace.
func (n *SlackNotifier) sendSlackMsg(ctx context.Context, msg string) error {
	body, err := json.Marshal(SlackWebhookBody{Text: msg})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.SlackWebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if resp.StatusCode != 200 || buf.String() != "ok" {
		return fmt.Errorf("failed slack webhook POST request. status=%d", resp.StatusCode)
	}
	return nil
}

func slackBody(header string, c *MessageContext, decision *Decision) string {
	final := decision.Final
	msg := header
	msg += fmt.Sprintf("`%s` / `%s`\n", c.Msg.Channel, c.Msg.Login)
	msg += fmt.Sprintf("Category: `%s` (%s)\n", final.Category, final.Tier)
	if final.Punishment.DurationSeconds > 0 {
		msg += fmt.Sprintf("Punishment: `%s` (%ds)\n", final.Punishment.Kind, final.Punishment.DurationSeconds)
	} else {
		msg += fmt.Sprintf("Punishment: `%s`\n", final.Punishment.Kind)
	}
	msg += fmt.Sprintf("Message: %s\n", c.Msg.Text)
	return msg
}
