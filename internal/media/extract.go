package media

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpegCommand is the default binary resolved from PATH.
const FFmpegCommand = "ffmpeg"

const (
	// DefaultSampleRate is 16 kHz, what whisper models expect.
	DefaultSampleRate = 16000
	// DefaultChannels is mono.
	DefaultChannels = 1
)

// CommandRunner executes an external command. Tests inject fakes here.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Extractor shells out to FFmpeg for audio extraction.
type Extractor struct {
	binary string
	runner CommandRunner
}

// NewExtractor creates an extractor using the given FFmpeg binary, falling
// back to resolving "ffmpeg" from PATH when empty.
func NewExtractor(binary string) *Extractor {
	if strings.TrimSpace(binary) == "" {
		binary = FFmpegCommand
	}
	return &Extractor{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(runner CommandRunner) {
	e.runner = runner
}

// ExtractAudio decodes the audio stream of source into a PCM WAV file at
// dest. sampleRate and channels fall back to whisper-friendly defaults when
// zero.
func (e *Extractor) ExtractAudio(ctx context.Context, source, dest string, sampleRate, channels int) error {
	if source == "" {
		return fmt.Errorf("extract audio: source path required")
	}
	if dest == "" {
		return fmt.Errorf("extract audio: destination path required")
	}
	args := buildExtractArgs(source, dest, sampleRate, channels)
	if err := e.run(ctx, e.binary, args...); err != nil {
		return fmt.Errorf("ffmpeg extract: %w", err)
	}
	return nil
}

func (e *Extractor) run(ctx context.Context, name string, args ...string) error {
	if e.runner != nil {
		return e.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildExtractArgs(source, dest string, sampleRate, channels int) []string {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if channels <= 0 {
		channels = DefaultChannels
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", strconv.Itoa(channels),
		"-ar", strconv.Itoa(sampleRate),
		"-c:a", "pcm_s16le",
		dest,
	}
}
