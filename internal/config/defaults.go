package config

const (
	defaultLogDir           = "~/.local/share/voxpipe/logs"
	defaultDatabasePath     = "~/.local/share/voxpipe/voxpipe.db"
	defaultFFmpegBinary     = "ffmpeg"
	defaultSampleRate       = 16000
	defaultChannels         = 1
	defaultWhisperBinary    = "whisper-cli"
	defaultWhisperModel     = "~/.local/share/voxpipe/models/ggml-base.bin"
	defaultEntropyThreshold = 2.4
	defaultLogprobThreshold = -1.0
	defaultDiarizationModel = "pyannote/speaker-diarization-3.1"
	defaultOllamaBaseURL    = "http://localhost:11434"
	defaultOllamaModel      = "qwen3:4b"
	defaultOllamaTimeout    = 120
	defaultCleanSimilarity  = 0.9
	defaultCleanConsecutive = 3
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
		},
		Audio: Audio{
			FFmpegBinary: defaultFFmpegBinary,
			SampleRate:   defaultSampleRate,
			Channels:     defaultChannels,
		},
		Whisper: Whisper{
			// Binary and Model stay empty here; normalize consults
			// WHISPER_BIN and WHISPER_MODEL before falling back.
			EntropyThreshold: defaultEntropyThreshold,
			LogprobThreshold: defaultLogprobThreshold,
		},
		Diarization: Diarization{
			Model: defaultDiarizationModel,
		},
		Ollama: Ollama{
			// BaseURL and models stay empty here; normalize consults
			// OLLAMA_BASE_URL and OLLAMA_MODEL before falling back.
			TimeoutSeconds: defaultOllamaTimeout,
		},
		Subtitles: Subtitles{
			IncludeSpeaker: true,
		},
		Cleaning: Cleaning{
			Enabled:             true,
			SimilarityThreshold: defaultCleanSimilarity,
			MaxConsecutive:      defaultCleanConsecutive,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
