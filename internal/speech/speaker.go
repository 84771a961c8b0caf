// Package speech owns audio output. At most one utterance plays at a time:
// starting a new one stops the previous stream and waits for it to exit.
package speech

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

// Player plays an audio URL until it finishes or ctx is canceled.
type Player interface {
	Play(ctx context.Context, url string) error
}

// Synthesizer speaks text locally until done or ctx is canceled.
type Synthesizer interface {
	Say(ctx context.Context, text string) error
}

// TTSClient is the part of api.Client the speaker needs.
type TTSClient interface {
	TTS(ctx context.Context, req api.TTSRequest) (string, error)
	AudioURL(path string) string
}

// Speaker arbitrates audio output.
type Speaker struct {
	client TTSClient
	player Player
	synth  Synthesizer
	logger *zap.Logger

	startMu sync.Mutex
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures a Speaker.
type Option func(*Speaker)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Speaker) { s.logger = l }
}

// NewSpeaker creates a Speaker. player and synth may be nil; a nil player
// sends everything to the synthesizer and a nil synth makes fallback silent.
func NewSpeaker(client TTSClient, player Player, synth Synthesizer, opts ...Option) *Speaker {
	s := &Speaker{
		client: client,
		player: player,
		synth:  synth,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Speak stops any current playback and starts speaking text. The returned
// Playback finishes when the audio ends or is stopped.
func (s *Speaker) Speak(ctx context.Context, participantID, text string) *Playback {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	s.Stop()

	ctx, cancel := context.WithCancel(ctx)
	pb := &Playback{done: make(chan struct{})}

	s.mu.Lock()
	s.cancel = cancel
	s.done = pb.done
	s.mu.Unlock()

	go func() {
		defer close(pb.done)
		defer cancel()
		pb.err = s.run(ctx, participantID, text)
	}()
	return pb
}

// Stop cancels the current playback, if any, and blocks until it exited.
func (s *Speaker) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Playing reports whether an utterance is in progress.
func (s *Speaker) Playing() bool {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Close stops playback.
func (s *Speaker) Close() error {
	s.Stop()
	return nil
}

func (s *Speaker) run(ctx context.Context, participantID, text string) error {
	if s.client != nil && s.player != nil {
		path, err := s.client.TTS(ctx, api.TTSRequest{Text: text, ParticipantID: participantID})
		if err == nil {
			err = s.player.Play(ctx, s.client.AudioURL(path))
			if err == nil || ctx.Err() != nil {
				return ignoreCanceled(ctx, err)
			}
		}
		if ctx.Err() != nil {
			return nil
		}
		s.logger.Warn("remote speech failed, using local synthesizer", zap.Error(err))
	}

	if s.synth == nil {
		return ErrNoOutput
	}
	if err := s.synth.Say(ctx, text); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("local synthesizer: %w", err)
	}
	return nil
}

func ignoreCanceled(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// ErrNoOutput means neither remote audio nor a synthesizer was available.
var ErrNoOutput = errors.New("speech: no audio output available")

// Playback is one utterance started by Speak.
type Playback struct {
	done chan struct{}
	err  error
}

// Done is closed when the playback ends.
func (p *Playback) Done() <-chan struct{} { return p.done }

// Wait blocks until the playback ends. Stopped playback is not an error.
func (p *Playback) Wait() error {
	<-p.done
	return p.err
}
