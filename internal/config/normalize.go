package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAudio()
	if err := c.normalizeWhisper(); err != nil {
		return err
	}
	c.normalizeDiarization()
	c.normalizeOllama()
	c.normalizeCleaning()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = defaultDatabasePath
	}
	if c.Paths.DatabasePath, err = expandPath(c.Paths.DatabasePath); err != nil {
		return fmt.Errorf("paths.database_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeAudio() {
	c.Audio.FFmpegBinary = strings.TrimSpace(c.Audio.FFmpegBinary)
	if c.Audio.FFmpegBinary == "" {
		c.Audio.FFmpegBinary = defaultFFmpegBinary
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = defaultSampleRate
	}
	if c.Audio.Channels <= 0 {
		c.Audio.Channels = defaultChannels
	}
}

func (c *Config) normalizeWhisper() error {
	c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary)
	if c.Whisper.Binary == "" {
		if value, ok := os.LookupEnv("WHISPER_BIN"); ok {
			c.Whisper.Binary = strings.TrimSpace(value)
		}
	}
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = defaultWhisperBinary
	}
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	if c.Whisper.Model == "" {
		if value, ok := os.LookupEnv("WHISPER_MODEL"); ok {
			c.Whisper.Model = strings.TrimSpace(value)
		}
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	var err error
	if c.Whisper.Model, err = expandPath(c.Whisper.Model); err != nil {
		return fmt.Errorf("whisper.model: %w", err)
	}
	c.Whisper.Language = strings.ToLower(strings.TrimSpace(c.Whisper.Language))
	if c.Whisper.EntropyThreshold == 0 {
		c.Whisper.EntropyThreshold = defaultEntropyThreshold
	}
	if c.Whisper.LogprobThreshold == 0 {
		c.Whisper.LogprobThreshold = defaultLogprobThreshold
	}
	return nil
}

func (c *Config) normalizeDiarization() {
	c.Diarization.Model = strings.TrimSpace(c.Diarization.Model)
	if c.Diarization.Model == "" {
		c.Diarization.Model = defaultDiarizationModel
	}
	c.Diarization.HFToken = strings.TrimSpace(c.Diarization.HFToken)
	if c.Diarization.HFToken == "" {
		if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Diarization.HFToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.Diarization.HFToken = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeOllama() {
	c.Ollama.BaseURL = strings.TrimRight(strings.TrimSpace(c.Ollama.BaseURL), "/")
	if c.Ollama.BaseURL == "" {
		if value, ok := os.LookupEnv("OLLAMA_BASE_URL"); ok {
			c.Ollama.BaseURL = strings.TrimRight(strings.TrimSpace(value), "/")
		}
	}
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = defaultOllamaBaseURL
	}
	c.Ollama.CorrectionModel = strings.TrimSpace(c.Ollama.CorrectionModel)
	c.Ollama.TranslationModel = strings.TrimSpace(c.Ollama.TranslationModel)
	fallback := defaultOllamaModel
	if value, ok := os.LookupEnv("OLLAMA_MODEL"); ok && strings.TrimSpace(value) != "" {
		fallback = strings.TrimSpace(value)
	}
	if c.Ollama.CorrectionModel == "" {
		c.Ollama.CorrectionModel = fallback
	}
	if c.Ollama.TranslationModel == "" {
		c.Ollama.TranslationModel = fallback
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		c.Ollama.TimeoutSeconds = defaultOllamaTimeout
	}
}

func (c *Config) normalizeCleaning() {
	if c.Cleaning.SimilarityThreshold <= 0 {
		c.Cleaning.SimilarityThreshold = defaultCleanSimilarity
	}
	if c.Cleaning.MaxConsecutive <= 0 {
		c.Cleaning.MaxConsecutive = defaultCleanConsecutive
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
