// Package whisper drives the whisper-cli binary for speech-to-text and loads
// its timestamped JSON output into the shared segment model. Both the
// whisper.cpp JSON shape (millisecond offsets) and the standard whisper shape
// (float seconds) are accepted.
package whisper
