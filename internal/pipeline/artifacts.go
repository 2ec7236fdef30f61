package pipeline

import (
	"path/filepath"
	"strings"
)

// Artifacts lists the files a pipeline run produces, keyed off the source
// file's base name inside the output directory.
type Artifacts struct {
	Audio       string
	Transcript  string
	Diarization string
	Merged      string
	Corrected   string
	Translated  string
	Subtitles   string
}

func buildArtifacts(source, outputDir, targetLanguage string) Artifacts {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	join := func(suffix string) string {
		return filepath.Join(outputDir, base+suffix)
	}
	lang := strings.ToLower(strings.TrimSpace(targetLanguage))
	a := Artifacts{
		Audio:       join("_audio.wav"),
		Transcript:  join("_transcript.json"),
		Diarization: join("_diarization.json"),
		Merged:      join("_merged.json"),
		Corrected:   join("_corrected.json"),
	}
	if lang != "" {
		a.Translated = join("_" + lang + ".json")
		a.Subtitles = join("_" + lang + ".srt")
	} else {
		a.Subtitles = join(".srt")
	}
	return a
}
