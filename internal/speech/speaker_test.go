package speech

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// blockingPlayer plays until canceled and tracks how many streams overlap.
type blockingPlayer struct {
	mu      sync.Mutex
	urls    []string
	active  atomic.Int32
	maxSeen atomic.Int32
	started chan struct{}
	finish  chan struct{}
	err     error
}

func newBlockingPlayer() *blockingPlayer {
	return &blockingPlayer{started: make(chan struct{}, 8), finish: make(chan struct{})}
}

func (p *blockingPlayer) Play(ctx context.Context, url string) error {
	n := p.active.Add(1)
	defer p.active.Add(-1)
	for {
		m := p.maxSeen.Load()
		if n <= m || p.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	p.mu.Lock()
	p.urls = append(p.urls, url)
	p.mu.Unlock()
	p.started <- struct{}{}

	if p.err != nil {
		return p.err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.finish:
		return nil
	}
}

type recordingSynth struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (s *recordingSynth) Say(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	return s.err
}

func (s *recordingSynth) said() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

func ttsClient() *api.MockClient {
	return &api.MockClient{
		TTSFunc: func(req api.TTSRequest) (string, error) {
			return "/api/audio/" + strings.ReplaceAll(req.Text, " ", "_") + ".mp3", nil
		},
	}
}

func waitStarted(t *testing.T, p *blockingPlayer) {
	t.Helper()
	select {
	case <-p.started:
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not start")
	}
}

func TestSpeakPlaysRemoteAudio(t *testing.T) {
	player := newBlockingPlayer()
	close(player.finish)
	synth := &recordingSynth{}
	s := NewSpeaker(ttsClient(), player, synth)

	require.NoError(t, s.Speak(context.Background(), "P1", "안녕하세요").Wait())

	assert.Equal(t, []string{api.DefaultBaseURL + "/api/audio/안녕하세요.mp3"}, player.urls)
	assert.Empty(t, synth.said())
	assert.False(t, s.Playing())
}

func TestSpeakStopsPreviousStream(t *testing.T) {
	player := newBlockingPlayer()
	s := NewSpeaker(ttsClient(), player, &recordingSynth{})

	first := s.Speak(context.Background(), "P1", "first")
	waitStarted(t, player)

	second := s.Speak(context.Background(), "P1", "second")
	waitStarted(t, player)

	select {
	case <-first.Done():
	default:
		t.Fatal("first playback must be finished before the second starts")
	}
	assert.NoError(t, first.Wait(), "a stopped playback is not an error")
	assert.True(t, s.Playing())

	s.Stop()
	assert.NoError(t, second.Wait())
	assert.Equal(t, int32(1), player.maxSeen.Load(), "streams overlapped")
}

func TestTTSFailureFallsBackToSynth(t *testing.T) {
	client := &api.MockClient{}
	synth := &recordingSynth{}
	s := NewSpeaker(client, newBlockingPlayer(), synth)

	require.NoError(t, s.Speak(context.Background(), "P1", "약 드셨어요?").Wait())
	assert.Equal(t, []string{"약 드셨어요?"}, synth.said())
}

func TestPlayerFailureFallsBackToSynth(t *testing.T) {
	player := newBlockingPlayer()
	player.err = errors.New("no audio device")
	synth := &recordingSynth{}
	s := NewSpeaker(ttsClient(), player, synth)

	require.NoError(t, s.Speak(context.Background(), "P1", "hello").Wait())
	assert.Equal(t, []string{"hello"}, synth.said())
}

func TestNoOutput(t *testing.T) {
	s := NewSpeaker(nil, nil, nil)
	assert.ErrorIs(t, s.Speak(context.Background(), "", "hi").Wait(), ErrNoOutput)
}

func TestSynthErrorIsReported(t *testing.T) {
	synth := &recordingSynth{err: errors.New("espeak missing")}
	s := NewSpeaker(nil, nil, synth)
	err := s.Speak(context.Background(), "", "hi").Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "espeak missing")
}

func TestStopWithoutPlaybackIsNoop(t *testing.T) {
	s := NewSpeaker(ttsClient(), newBlockingPlayer(), nil)
	s.Stop()
	assert.NoError(t, s.Close())
	assert.False(t, s.Playing())
}

func TestFFmpegPlayerCommand(t *testing.T) {
	cmd := FFmpegPlayer{Format: "alsa", Device: "hw:0"}.Command("http://localhost:5000/api/audio/a.mp3")
	args := strings.Join(cmd.Args, " ")
	assert.Contains(t, args, "-i http://localhost:5000/api/audio/a.mp3")
	assert.Contains(t, args, "-f alsa")
	assert.True(t, strings.HasSuffix(args, "hw:0"))
}
