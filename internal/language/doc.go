// Package language normalizes the language identifiers users pass on the
// command line so whisper receives ISO 639-1 codes and the translation
// prompts receive display names.
package language
