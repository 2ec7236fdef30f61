// Package media extracts the audio track from video files with FFmpeg,
// producing WAV files shaped for the transcription and diarization engines.
package media
