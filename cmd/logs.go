package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/chat"
)

func newLogsCmd() *cobra.Command {
	var page string
	c := &cobra.Command{
		Use:   "logs",
		Short: "Print today's conversation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			pt := api.PageType(page)
			if pt != api.PageChat && pt != api.PageRetry {
				return fmt.Errorf("unknown page %q (want chat or retry)", page)
			}

			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			u, err := e.participant(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := e.client.Logs(cmd.Context(), u.ParticipantID, pt)
			if err != nil {
				return fmt.Errorf("%s: %w", chat.LogsFailure(err), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, chat.LogsTitle(pt, resp.Date, u.ParticipantID))
			if len(resp.Logs) == 0 {
				fmt.Fprintln(out, chat.LogsEmpty)
				return nil
			}
			now := time.Now()
			for i, entry := range resp.Logs {
				stamp := entry.Timestamp
				if t := chat.EntryTime(entry); !t.IsZero() {
					stamp = t.Format("2006-01-02 15:04") + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
				}
				fmt.Fprintf(out, "\n#%d %s\n  환자: %s\n  의사: %s\n", i+1, stamp, entry.UserMessage, entry.BotResponse)
			}
			return nil
		},
	}
	c.Flags().StringVar(&page, "page", string(api.PageChat), "Which conversation to print: chat or retry")
	return c
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the conversation on the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			u, err := e.participant(cmd.Context())
			if err != nil {
				return err
			}
			if err := e.client.Clear(cmd.Context(), u.ParticipantID); err != nil {
				return fmt.Errorf("%s: %w", chat.ClearFailed, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), chat.Cleared)
			return nil
		},
	}
}
