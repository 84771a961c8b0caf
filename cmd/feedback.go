package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/evaluation"
	"github.com/bobbyhwsong/voice-chat-app/internal/quest"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

func newFeedbackCmd() *cobra.Command {
	var fresh bool
	c := &cobra.Command{
		Use:   "feedback",
		Short: "Print the checklist evaluation of the latest conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			u, err := e.participant(ctx)
			if err != nil {
				return err
			}

			state := evaluation.NewState()
			var latest *api.FeedbackEntry
			if !fresh {
				entries, err := e.client.Feedback(ctx, u.ParticipantID)
				if err != nil {
					return fmt.Errorf("load feedback: %w", err)
				}
				latest = api.LatestFeedback(entries)
			}

			if latest != nil {
				state.Apply(latest.EvaluationResult)
			} else {
				logs, err := e.client.Logs(ctx, u.ParticipantID, api.PageChat)
				if err != nil {
					return fmt.Errorf("load logs: %w", err)
				}
				if len(logs.Logs) == 0 {
					state.SetNoData()
				} else {
					ev, err := e.client.Evaluate(ctx, api.EvaluateRequest{Logs: logs.Logs, ParticipantID: u.ParticipantID})
					if err != nil {
						e.log.Warn("evaluation failed", zap.Error(err))
						state.SetError()
					} else {
						state.Apply(*ev)
					}
				}
			}

			printEvaluation(cmd.OutOrStdout(), state, latest)
			return nil
		},
	}
	c.Flags().BoolVar(&fresh, "fresh", false, "Evaluate today's conversation instead of printing the stored result")
	return c
}

func printEvaluation(out io.Writer, state *evaluation.State, entry *api.FeedbackEntry) {
	sum := state.Summary()
	fmt.Fprintf(out, "종합 점수: %d점 (%s)\n%s\n", sum.Score, sum.Title, sum.Description)
	if entry != nil && entry.EvaluationDate != "" {
		fmt.Fprintf(out, "평가일: %s\n", entry.EvaluationDate)
	}
	if state.Status() != evaluation.StatusLoaded {
		return
	}

	fmt.Fprintln(out)
	for _, r := range state.Rows() {
		bar := strings.Repeat("█", r.Percent/10) + strings.Repeat("░", 10-r.Percent/10)
		fmt.Fprintf(out, "  %-4s %s %3d%%  %s\n", r.Grade, bar, r.Percent, r.Label)
		if r.Reason != "" {
			fmt.Fprintf(out, "         └ %s\n", r.Reason)
		}
	}

	fmt.Fprintln(out, "\n개선 팁:")
	for _, t := range state.Tips() {
		mark := "•"
		if t.Important {
			mark = "!"
		}
		fmt.Fprintf(out, "  %s %s\n", mark, t.Text)
	}
}

func newQuestsCmd() *cobra.Command {
	var history int
	c := &cobra.Command{
		Use:   "quests",
		Short: "Print the retry quests derived from the latest evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			u, err := e.participant(ctx)
			if err != nil {
				return err
			}

			entries, err := e.client.Feedback(ctx, u.ParticipantID)
			if err != nil {
				e.log.Warn("load feedback failed, using default quests", zap.Error(err))
			}
			quests, source := quest.Derive(api.LatestFeedback(entries))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "퀘스트 (%s)\n", source)
			for _, q := range quests {
				grade := ""
				if q.Grade != "" {
					grade = " [" + string(q.Grade) + "]"
				}
				fmt.Fprintf(out, "  %s %s%s\n     %s\n", q.Icon, q.Title, grade, q.Description)
			}

			if history <= 0 {
				return nil
			}
			events, err := e.store.EventRepo().QueryQuestEvents(ctx, u.ParticipantID, store.QueryOpts{Limit: history})
			if err != nil {
				return fmt.Errorf("query quest events: %w", err)
			}
			if len(events) == 0 {
				return nil
			}
			fmt.Fprintln(out, "\n최근 기록:")
			now := time.Now()
			for _, ev := range events {
				state := "해제"
				if ev.Completed {
					state = "완료"
				}
				fmt.Fprintf(out, "  %-20s %s  %-7s %s\n", ev.QuestID, state, ev.Source, humanize.RelTime(ev.Timestamp, now, "ago", "from now"))
			}
			return nil
		},
	}
	c.Flags().IntVar(&history, "history", 10, "Number of recent quest events to show (0 hides them)")
	return c
}
