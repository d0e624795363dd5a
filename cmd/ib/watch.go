package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/issueboard/internal/events"
	"github.com/alfredjeanlab/issueboard/internal/model"
	"github.com/alfredjeanlab/issueboard/internal/ui"
)

func defaultNATSURL() string {
	if s := os.Getenv("ISSUEBOARD_NATS_URL"); s != "" {
		return s
	}
	return activeRemoteNATSURL()
}

// eventPayload is the union of the published event shapes.
type eventPayload struct {
	Issue   *model.Issue `json:"issue"`
	IssueID string       `json:"issue_id"`
	From    model.Status `json:"from"`
	To      model.Status `json:"to"`
}

// formatEvent renders one bus message as a single human-readable line.
func formatEvent(msg events.Message, at time.Time) string {
	var p eventPayload
	if err := json.Unmarshal(msg.Data, &p); err != nil {
		return fmt.Sprintf("%s  %s  %s", at.Format("15:04:05"), msg.Topic, ui.RenderError("unparseable payload"))
	}
	id := p.IssueID
	if id == "" && p.Issue != nil {
		id = p.Issue.ID
	}

	var detail string
	switch msg.Topic {
	case events.TopicIssueStatusChanged:
		detail = ui.RenderStatus(p.From) + " -> " + ui.RenderStatus(p.To)
	case events.TopicIssueCreated, events.TopicIssueUpdated:
		if p.Issue != nil {
			detail = p.Issue.Title
		}
	}
	line := fmt.Sprintf("%s  %-28s %s", at.Format("15:04:05"), msg.Topic, ui.RenderAccent(id))
	if detail != "" {
		line += "  " + detail
	}
	return line
}

var watchCmd = &cobra.Command{
	Use:               "watch",
	Short:             "Stream issue events as they happen",
	GroupID:           "views",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats-url")
		topic, _ := cmd.Flags().GetString("topic")
		if natsURL == "" {
			return fmt.Errorf("no NATS URL (use --nats-url, $ISSUEBOARD_NATS_URL or 'ib remote add --nats')")
		}
		if noColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				slog.Warn("nats disconnected", "error", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				slog.Info("nats reconnected")
			}),
		)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		return streamEvents(cmd, ch, cmd.OutOrStdout())
	},
}

// streamEvents prints messages until ch closes or the command context ends.
func streamEvents(cmd *cobra.Command, ch <-chan events.Message, w io.Writer) error {
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if jsonOutput {
				fmt.Fprintf(w, "{\"topic\":%q,\"data\":%s}\n", msg.Topic, msg.Data)
				continue
			}
			fmt.Fprintln(w, formatEvent(msg, time.Now()))
		}
	}
}

func init() {
	watchCmd.Flags().String("nats-url", defaultNATSURL(), "NATS server URL")
	watchCmd.Flags().String("topic", events.TopicAll, "subject to subscribe to")
}
