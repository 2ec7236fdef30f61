// Package ollama talks to a local Ollama server for transcript correction
// and translation. Requests go through /api/generate with bounded retries on
// transient failures; document-level helpers rewrite segment text while
// leaving timing and speaker attribution untouched.
package ollama
