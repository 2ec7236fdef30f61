package whisper

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	langpkg "voxpipe/internal/language"
)

const (
	// DefaultBinary is the whisper-cli command resolved from PATH when the
	// config does not pin a build.
	DefaultBinary = "whisper-cli"
	// DefaultEntropyThreshold aborts decoding of low-confidence windows,
	// which curbs hallucination loops.
	DefaultEntropyThreshold = 2.4
	// DefaultLogprobThreshold is the decoder fail threshold.
	DefaultLogprobThreshold = -1.0
)

// Config captures the runtime settings for whisper-cli invocations.
type Config struct {
	Binary           string
	Model            string
	Language         string
	MaxSegmentLength int
	NoContext        bool
	EntropyThreshold float64
	LogprobThreshold float64
}

// Service shells out to whisper-cli.
type Service struct {
	cfg    Config
	runner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config) *Service {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.EntropyThreshold == 0 {
		cfg.EntropyThreshold = DefaultEntropyThreshold
	}
	if cfg.LogprobThreshold == 0 {
		cfg.LogprobThreshold = DefaultLogprobThreshold
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.runner = runner
}

// Model returns the configured model path for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Transcribe runs whisper-cli over the audio file and returns the path of the
// JSON transcript it produced. outputBase is the output path without the
// .json extension; whisper-cli appends it.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputBase string) (string, error) {
	if audioPath == "" {
		return "", fmt.Errorf("transcribe: audio path required")
	}
	if outputBase == "" {
		return "", fmt.Errorf("transcribe: output path required")
	}
	outputBase = strings.TrimSuffix(outputBase, ".json")

	args := s.buildArgs(audioPath, outputBase)
	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return "", fmt.Errorf("whisper-cli: %w", err)
	}
	return outputBase + ".json", nil
}

func (s *Service) buildArgs(audioPath, outputBase string) []string {
	args := []string{
		"-m", s.cfg.Model,
		"-f", audioPath,
		"-oj",
		"-of", outputBase,
		"-et", formatThreshold(s.cfg.EntropyThreshold),
		"-lpt", formatThreshold(s.cfg.LogprobThreshold),
	}
	if lang := langpkg.ToISO2(s.cfg.Language); lang != "" {
		args = append(args, "-l", lang)
	}
	if s.cfg.MaxSegmentLength > 0 {
		args = append(args, "-ml", strconv.Itoa(s.cfg.MaxSegmentLength))
	}
	if s.cfg.NoContext {
		args = append(args, "-nc")
	}
	return args
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.runner != nil {
		return s.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", filepath.Base(name), err, strings.TrimSpace(string(output)))
	}
	return nil
}

func formatThreshold(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
