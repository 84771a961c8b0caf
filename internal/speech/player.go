package speech

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FFmpegPlayer decodes a URL with ffmpeg and writes it to an output device,
// e.g. format "pulse" with device "default".
type FFmpegPlayer struct {
	Format string
	Device string
}

// DefaultOutput returns the ffmpeg output format and device for this OS.
func DefaultOutput() (format, device string) {
	switch runtime.GOOS {
	case "darwin":
		return "audiotoolbox", "0"
	default:
		return "pulse", "default"
	}
}

// Command builds the ffmpeg invocation for url.
func (p FFmpegPlayer) Command(url string) *exec.Cmd {
	format, device := p.Format, p.Device
	if format == "" || device == "" {
		df, dd := DefaultOutput()
		if format == "" {
			format = df
		}
		if device == "" {
			device = dd
		}
	}
	return ffmpeg.Input(url, ffmpeg.KwArgs{"loglevel": "error"}).
		Output(device, ffmpeg.KwArgs{"f": format}).
		Compile()
}

// Play runs ffmpeg until the stream ends. Canceling ctx kills the process.
func (p FFmpegPlayer) Play(ctx context.Context, url string) error {
	cmd := p.Command(url)
	cmd.Stdin = nil
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return runUntilDone(ctx, cmd)
}

// CommandSynth speaks through an external program that takes the text as its
// last argument, such as "espeak-ng -v ko" or "say".
type CommandSynth struct {
	Command string
}

// DefaultSynthCommand returns the platform's speech command.
func DefaultSynthCommand() string {
	if runtime.GOOS == "darwin" {
		return "say"
	}
	return "espeak-ng -v ko"
}

func (c CommandSynth) Say(ctx context.Context, text string) error {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultSynthCommand())
	}
	cmd := exec.Command(fields[0], append(fields[1:], text)...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return runUntilDone(ctx, cmd)
}

func runUntilDone(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	select {
	case err := <-waitErr:
		return err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-waitErr
		return ctx.Err()
	}
}

// Available reports whether the binaries the outputs depend on are on PATH.
func Available(synthCommand string) (ffmpegOK, synthOK bool) {
	_, err := exec.LookPath("ffmpeg")
	ffmpegOK = err == nil
	fields := strings.Fields(synthCommand)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultSynthCommand())
	}
	_, err = exec.LookPath(fields[0])
	return ffmpegOK, err == nil
}
