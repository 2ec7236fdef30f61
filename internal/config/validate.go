package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateDiarization(); err != nil {
		return err
	}
	if err := c.validateOllama(); err != nil {
		return err
	}
	if err := c.validateCleaning(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	if c.Audio.Channels <= 0 {
		return errors.New("audio.channels must be positive")
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if strings.TrimSpace(c.Whisper.Binary) == "" {
		return errors.New("whisper.binary must be set")
	}
	if strings.TrimSpace(c.Whisper.Model) == "" {
		return errors.New("whisper.model must be set (or set WHISPER_MODEL)")
	}
	if c.Whisper.MaxSegmentLength < 0 {
		return errors.New("whisper.max_segment_length must be >= 0")
	}
	return nil
}

func (c *Config) validateDiarization() error {
	d := c.Diarization
	if d.NumSpeakers < 0 || d.MinSpeakers < 0 || d.MaxSpeakers < 0 {
		return errors.New("diarization speaker counts must be >= 0")
	}
	if d.NumSpeakers > 0 && (d.MinSpeakers > 0 || d.MaxSpeakers > 0) {
		return errors.New("diarization.num_speakers is exclusive with min_speakers/max_speakers")
	}
	if d.MinSpeakers > 0 && d.MaxSpeakers > 0 && d.MinSpeakers > d.MaxSpeakers {
		return fmt.Errorf("diarization.min_speakers %d exceeds max_speakers %d", d.MinSpeakers, d.MaxSpeakers)
	}
	return nil
}

func (c *Config) validateOllama() error {
	if strings.TrimSpace(c.Ollama.BaseURL) == "" {
		return errors.New("ollama.base_url must be set")
	}
	if !strings.HasPrefix(c.Ollama.BaseURL, "http://") && !strings.HasPrefix(c.Ollama.BaseURL, "https://") {
		return fmt.Errorf("ollama.base_url %q must start with http:// or https://", c.Ollama.BaseURL)
	}
	if strings.TrimSpace(c.Ollama.CorrectionModel) == "" {
		return errors.New("ollama.correction_model must be set")
	}
	if strings.TrimSpace(c.Ollama.TranslationModel) == "" {
		return errors.New("ollama.translation_model must be set")
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		return errors.New("ollama.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateCleaning() error {
	if c.Cleaning.SimilarityThreshold <= 0 || c.Cleaning.SimilarityThreshold > 1 {
		return errors.New("cleaning.similarity_threshold must be between 0 and 1")
	}
	if c.Cleaning.MaxConsecutive < 1 {
		return errors.New("cleaning.max_consecutive must be >= 1")
	}
	return nil
}
