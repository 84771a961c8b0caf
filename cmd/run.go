package cmd

import (
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/app"
	"github.com/bobbyhwsong/voice-chat-app/internal/speech"
)

var errNotTerminal = errors.New("voicechat needs an interactive terminal; use a subcommand for scripted use (see --help)")

// runApp opens the environment, builds the speaker and launches the TUI.
func runApp(cmd *cobra.Command) error {
	if !isInteractive() {
		return errNotTerminal
	}

	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	visitID := uuid.NewString()
	log := e.log.With(zap.String("visit_id", visitID))

	opts := app.Options{
		Client:   e.client,
		Sessions: e.sessions,
		Events:   e.store.EventRepo(),
		Logger:   log,
		VisitID:  visitID,

		CheatsheetStyle: e.cfg.CheatsheetStyle,
	}

	if a := e.cfg.Audio; a.Enabled {
		opts.Speaker = speech.NewSpeaker(
			e.client,
			speech.FFmpegPlayer{Format: a.PlayerFormat, Device: a.PlayerDevice},
			speech.CommandSynth{Command: a.SynthCommand},
			speech.WithLogger(log.Named("speech")),
		)
	} else {
		log.Info("audio disabled")
	}

	log.Info("starting TUI", zap.String("api", e.cfg.APIBaseURL))
	return app.Run(opts)
}
