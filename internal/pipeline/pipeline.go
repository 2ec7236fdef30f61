package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"voxpipe/internal/cleaning"
	"voxpipe/internal/config"
	"voxpipe/internal/logging"
	"voxpipe/internal/media"
	"voxpipe/internal/merge"
	"voxpipe/internal/runstore"
	"voxpipe/internal/services"
	"voxpipe/internal/services/diarize"
	"voxpipe/internal/services/ollama"
	"voxpipe/internal/services/whisper"
	"voxpipe/internal/subtitles"
	"voxpipe/internal/transcript"
)

// Stage names recorded in the run store and error chains.
const (
	StageExtract    = "extract"
	StageTranscribe = "transcribe"
	StageDiarize    = "diarize"
	StageMerge      = "merge"
	StageCorrect    = "correct"
	StageTranslate  = "translate"
	StageExport     = "export"
)

const lockFileName = ".voxpipe.lock"

// Extractor pulls mono WAV audio out of a media file.
type Extractor interface {
	ExtractAudio(ctx context.Context, source, dest string, sampleRate, channels int) error
}

// Transcriber produces a whisper JSON transcript for an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputBase string) (string, error)
}

// Diarizer partitions an audio file into speaker turns.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath, outputPath string) error
}

// Corrector rewrites document text to fix transcription errors.
type Corrector interface {
	CorrectDocument(ctx context.Context, doc *transcript.Document, progress ollama.ProgressFunc) (*transcript.Document, error)
}

// Translator rewrites document text into a target language.
type Translator interface {
	TranslateDocument(ctx context.Context, doc *transcript.Document, targetLanguage string, progress ollama.ProgressFunc) (*transcript.Document, error)
}

// Pipeline runs the stage chain over a single source file.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *runstore.Store

	extractor   Extractor
	transcriber Transcriber
	diarizer    Diarizer
	corrector   Corrector
	translator  Translator
}

// Option customizes a pipeline, mainly to substitute fakes in tests.
type Option func(*Pipeline)

func WithExtractor(e Extractor) Option     { return func(p *Pipeline) { p.extractor = e } }
func WithTranscriber(t Transcriber) Option { return func(p *Pipeline) { p.transcriber = t } }
func WithDiarizer(d Diarizer) Option       { return func(p *Pipeline) { p.diarizer = d } }
func WithCorrector(c Corrector) Option     { return func(p *Pipeline) { p.corrector = c } }
func WithTranslator(t Translator) Option   { return func(p *Pipeline) { p.translator = t } }

// New builds a pipeline wired to the real services. The store may be nil, in
// which case runs are not recorded.
func New(cfg *config.Config, logger *slog.Logger, store *runstore.Store, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pipeline{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		store:  store,
		extractor: media.NewExtractor(cfg.Audio.FFmpegBinary),
		transcriber: whisper.NewService(whisper.Config{
			Binary:           cfg.Whisper.Binary,
			Model:            cfg.Whisper.Model,
			Language:         cfg.Whisper.Language,
			MaxSegmentLength: cfg.Whisper.MaxSegmentLength,
			NoContext:        cfg.Whisper.NoContext,
			EntropyThreshold: cfg.Whisper.EntropyThreshold,
			LogprobThreshold: cfg.Whisper.LogprobThreshold,
		}),
		diarizer: diarize.NewService(diarize.Config{
			Model:       cfg.Diarization.Model,
			HFToken:     cfg.Diarization.HFToken,
			NumSpeakers: cfg.Diarization.NumSpeakers,
			MinSpeakers: cfg.Diarization.MinSpeakers,
			MaxSpeakers: cfg.Diarization.MaxSpeakers,
		}),
		corrector: ollama.NewClient(ollama.Config{
			BaseURL:        cfg.Ollama.BaseURL,
			Model:          cfg.Ollama.CorrectionModel,
			TimeoutSeconds: cfg.Ollama.TimeoutSeconds,
		}),
		translator: ollama.NewClient(ollama.Config{
			BaseURL:        cfg.Ollama.BaseURL,
			Model:          cfg.Ollama.TranslationModel,
			TimeoutSeconds: cfg.Ollama.TimeoutSeconds,
		}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result summarizes a finished run.
type Result struct {
	RunID     string
	Artifacts Artifacts
	Document  *transcript.Document
}

// Run executes the full chain: extract, transcribe, diarize, merge, correct,
// translate (when targetLanguage is set), and SRT export.
func (p *Pipeline) Run(ctx context.Context, source, outputDir, targetLanguage string) (*Result, error) {
	return p.execute(ctx, source, outputDir, targetLanguage, false)
}

// Quick executes extraction and transcription only; the transcript JSON is
// the final artifact.
func (p *Pipeline) Quick(ctx context.Context, source, outputDir string) (*Result, error) {
	return p.execute(ctx, source, outputDir, "", true)
}

func (p *Pipeline) execute(ctx context.Context, source, outputDir, targetLanguage string, quick bool) (*Result, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "start", "source file required", nil)
	}
	if _, err := os.Stat(source); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "pipeline", "start", fmt.Sprintf("source %q", source), err)
	}
	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "start", "create output directory", err)
	}

	guard := flock.New(filepath.Join(outputDir, lockFileName))
	locked, err := guard.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "lock", "acquire output lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "lock",
			fmt.Sprintf("output directory %q is in use by another run", outputDir), nil)
	}
	defer func() { _ = guard.Unlock() }()

	result := &Result{Artifacts: buildArtifacts(source, outputDir, targetLanguage)}
	logger := p.logger
	if p.store != nil {
		run, err := p.store.Begin(ctx, source, outputDir, targetLanguage)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "pipeline", "record", "begin run", err)
		}
		result.RunID = run.ID
		logger = logger.With(logging.String(logging.FieldRunID, run.ID))
	}

	logger.Info("pipeline started",
		logging.String(logging.FieldSource, source),
		logging.String(logging.FieldOutput, outputDir),
		logging.Bool("quick", quick),
	)
	started := time.Now()

	doc, err := p.stages(ctx, logger, result, source, targetLanguage, quick)
	if err != nil {
		p.recordFailure(ctx, result.RunID, err)
		return nil, err
	}
	result.Document = doc

	finalOutput := result.Artifacts.Subtitles
	if quick {
		result.Artifacts.Subtitles = ""
		finalOutput = result.Artifacts.Transcript
	}
	if p.store != nil && result.RunID != "" {
		if err := p.store.Complete(ctx, result.RunID); err != nil {
			logger.Warn("record run completion", logging.Error(err))
		}
	}
	logger.Info("pipeline finished",
		logging.String(logging.FieldOutput, finalOutput),
		logging.Duration(logging.FieldDuration, time.Since(started)),
	)
	return result, nil
}

func (p *Pipeline) stages(ctx context.Context, logger *slog.Logger, result *Result, source, targetLanguage string, quick bool) (*transcript.Document, error) {
	art := result.Artifacts

	p.enterStage(ctx, logger, result.RunID, StageExtract)
	if err := p.extractor.ExtractAudio(ctx, source, art.Audio, p.cfg.Audio.SampleRate, p.cfg.Audio.Channels); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, StageExtract, "ffmpeg", "", err)
	}

	p.enterStage(ctx, logger, result.RunID, StageTranscribe)
	transcriptPath, err := p.transcriber.Transcribe(ctx, art.Audio, strings.TrimSuffix(art.Transcript, ".json"))
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, StageTranscribe, "whisper-cli", "", err)
	}
	result.Artifacts.Transcript = transcriptPath
	if quick {
		return nil, nil
	}

	segments, err := whisper.LoadSegments(transcriptPath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, StageTranscribe, "parse transcript", transcriptPath, err)
	}
	if p.cfg.Cleaning.Enabled {
		cleaned, removed := cleaning.RemoveRepeatedSegments(segments, p.cfg.Cleaning.SimilarityThreshold, p.cfg.Cleaning.MaxConsecutive)
		if removed > 0 {
			logger.Info("removed repeated segments", logging.Int(logging.FieldRemoved, removed))
		}
		segments = cleaned
	}

	p.enterStage(ctx, logger, result.RunID, StageDiarize)
	if err := p.diarizer.Diarize(ctx, art.Audio, art.Diarization); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, StageDiarize, "pyannote", "", err)
	}
	turnsResult, err := diarize.LoadTurns(art.Diarization)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, StageDiarize, "parse diarization", art.Diarization, err)
	}

	p.enterStage(ctx, logger, result.RunID, StageMerge)
	doc, err := merge.Run(segments, turnsResult.Segments)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, StageMerge, "merge", "", err)
	}
	if err := transcript.WriteDocument(art.Merged, doc); err != nil {
		return nil, services.Wrap(services.ErrTransient, StageMerge, "write", art.Merged, err)
	}
	logger.Info("merged transcript",
		logging.Int(logging.FieldSegments, len(doc.Segments)),
		logging.Int(logging.FieldSpeakers, len(doc.Speakers)),
	)

	p.enterStage(ctx, logger, result.RunID, StageCorrect)
	doc, err = p.corrector.CorrectDocument(ctx, doc, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, StageCorrect, "ollama", "", err)
	}
	if err := transcript.WriteDocument(art.Corrected, doc); err != nil {
		return nil, services.Wrap(services.ErrTransient, StageCorrect, "write", art.Corrected, err)
	}

	if targetLanguage != "" {
		p.enterStage(ctx, logger, result.RunID, StageTranslate)
		doc, err = p.translator.TranslateDocument(ctx, doc, targetLanguage, nil)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, StageTranslate, "ollama", "", err)
		}
		if err := transcript.WriteDocument(art.Translated, doc); err != nil {
			return nil, services.Wrap(services.ErrTransient, StageTranslate, "write", art.Translated, err)
		}
	}

	p.enterStage(ctx, logger, result.RunID, StageExport)
	exportDoc := doc
	if p.cfg.Subtitles.Consolidate {
		exportDoc = merge.Consolidate(doc)
	}
	opts := subtitles.Options{IncludeSpeaker: p.cfg.Subtitles.IncludeSpeaker}
	if err := subtitles.ExportSRT(art.Subtitles, exportDoc, opts); err != nil {
		return nil, services.Wrap(services.ErrTransient, StageExport, "write", art.Subtitles, err)
	}
	return doc, nil
}

func (p *Pipeline) enterStage(ctx context.Context, logger *slog.Logger, runID, stage string) {
	logger.Info("stage started", logging.String(logging.FieldStage, stage))
	if p.store != nil && runID != "" {
		if err := p.store.UpdateStage(ctx, runID, stage); err != nil {
			logger.Warn("record stage", logging.String(logging.FieldStage, stage), logging.Error(err))
		}
	}
}

func (p *Pipeline) recordFailure(ctx context.Context, runID string, failure error) {
	p.logger.Error("pipeline failed", logging.Error(failure))
	if p.store == nil || runID == "" {
		return
	}
	run, err := p.store.GetByID(ctx, runID)
	stage := ""
	if err == nil && run != nil {
		stage = run.Stage
	}
	if err := p.store.Fail(ctx, runID, stage, failure.Error()); err != nil {
		p.logger.Warn("record run failure", logging.Error(err))
	}
}
