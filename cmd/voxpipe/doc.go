// Package main hosts the voxpipe CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes each pipeline stage as a standalone
// command (extract, transcribe, diarize, merge, correct, translate, export)
// alongside the full chain (pipeline run, pipeline quick), run history, and
// configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
