package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bobbyhwsong/voice-chat-app/internal/speech"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

func newDoctorCmd() *cobra.Command {
	var recent int
	c := &cobra.Command{
		Use:   "doctor",
		Short: "Check the backend, audio tools and local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			fmt.Fprintf(out, "api       %s\n", e.cfg.APIBaseURL)
			fmt.Fprintf(out, "database  %s\n", e.cfg.DB)
			fmt.Fprintf(out, "log file  %s\n\n", e.cfg.LogFile)

			start := time.Now()
			if err := e.client.Health(ctx); err != nil {
				check(out, false, "backend", err.Error())
			} else {
				check(out, true, "backend", fmt.Sprintf("응답 %s", time.Since(start).Round(time.Millisecond)))
			}

			ffmpegOK, synthOK := speech.Available(e.cfg.Audio.SynthCommand)
			if !e.cfg.Audio.Enabled {
				fmt.Fprintln(out, "  -  audio     꺼짐 (VOICECHAT_AUDIO_ENABLED=false)")
			} else {
				check(out, ffmpegOK, "ffmpeg", "원격 음성 재생")
				check(out, synthOK, "synth", e.cfg.Audio.SynthCommand)
			}

			if u, err := e.sessions.Get(ctx); err == nil {
				check(out, true, "session", u.ParticipantID+", "+humanize.Time(u.LoginTime))
			} else {
				check(out, false, "session", "로그인 필요")
			}

			if recent <= 0 {
				return nil
			}
			events, err := e.store.EventRepo().QueryAPIRequests(ctx, store.QueryOpts{Limit: recent})
			if err != nil {
				return fmt.Errorf("query api events: %w", err)
			}
			if len(events) == 0 {
				return nil
			}
			fmt.Fprintln(out, "\n최근 요청:")
			now := time.Now()
			for _, ev := range events {
				status := "ok"
				if !ev.Success {
					status = "FAIL " + ev.ErrorMessage
				}
				fmt.Fprintf(out, "  %-14s %-26s %6dms  %s  %s\n",
					humanize.RelTime(ev.Timestamp, now, "ago", "from now"), ev.Endpoint, ev.LatencyMs, ev.PageType, status)
			}
			return nil
		},
	}
	c.Flags().IntVar(&recent, "recent", 10, "Number of recent backend calls to list")
	return c
}

func check(out io.Writer, ok bool, name, detail string) {
	mark := "✗"
	if ok {
		mark = "✓"
	}
	fmt.Fprintf(out, "  %s  %-9s %s\n", mark, name, detail)
}
