package main

import (
	"strings"
	"sync"

	"voxpipe/internal/config"
	"voxpipe/internal/runstore"
	"voxpipe/internal/services/diarize"
	"voxpipe/internal/services/ollama"
	"voxpipe/internal/services/whisper"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) openStore() (*runstore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return runstore.Open(cfg.Paths.DatabasePath)
}

func (c *commandContext) newWhisperService(cfg *config.Config) *whisper.Service {
	return whisper.NewService(whisper.Config{
		Binary:           cfg.Whisper.Binary,
		Model:            cfg.Whisper.Model,
		Language:         cfg.Whisper.Language,
		MaxSegmentLength: cfg.Whisper.MaxSegmentLength,
		NoContext:        cfg.Whisper.NoContext,
		EntropyThreshold: cfg.Whisper.EntropyThreshold,
		LogprobThreshold: cfg.Whisper.LogprobThreshold,
	})
}

func (c *commandContext) newDiarizeService(cfg *config.Config) *diarize.Service {
	return diarize.NewService(diarize.Config{
		Model:       cfg.Diarization.Model,
		HFToken:     cfg.Diarization.HFToken,
		NumSpeakers: cfg.Diarization.NumSpeakers,
		MinSpeakers: cfg.Diarization.MinSpeakers,
		MaxSpeakers: cfg.Diarization.MaxSpeakers,
	})
}

func (c *commandContext) newOllamaClient(cfg *config.Config, model string) *ollama.Client {
	return ollama.NewClient(ollama.Config{
		BaseURL:        cfg.Ollama.BaseURL,
		Model:          model,
		TimeoutSeconds: cfg.Ollama.TimeoutSeconds,
	})
}
