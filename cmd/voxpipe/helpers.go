package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"voxpipe/internal/services/ollama"
)

// siblingPath derives an output path next to source: the source base name
// without its extension, plus the given suffix.
func siblingPath(source, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(filepath.Dir(source), base+suffix)
}

// segmentProgress returns a progress callback that rewrites a counter line
// when w is a terminal. Non-terminal writers get nothing; the surrounding
// command prints a summary when the operation finishes.
func segmentProgress(w io.Writer, verb string) ollama.ProgressFunc {
	file, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(file.Fd()) {
		return nil
	}
	return func(done, total int) {
		fmt.Fprintf(w, "\r%s segment %d/%d", verb, done, total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}
