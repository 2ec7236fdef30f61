package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voxpipe/internal/merge"
	"voxpipe/internal/subtitles"
	"voxpipe/internal/transcript"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var format string
	var noSpeaker bool
	var consolidate bool

	cmd := &cobra.Command{
		Use:   "export <document.json>",
		Short: "Render a document as SRT or WebVTT subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			docPath, err := resolveInput(args[0])
			if err != nil {
				return err
			}

			format = strings.ToLower(strings.TrimSpace(format))
			var extension string
			var export func(string, *transcript.Document, subtitles.Options) error
			switch format {
			case "srt":
				extension = ".srt"
				export = subtitles.ExportSRT
			case "vtt":
				extension = ".vtt"
				export = subtitles.ExportVTT
			default:
				return fmt.Errorf("unsupported format %q (srt or vtt)", format)
			}

			doc, err := transcript.ReadDocument(docPath)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			if consolidate || cfg.Subtitles.Consolidate {
				doc = merge.Consolidate(doc)
			}

			opts := subtitles.Options{IncludeSpeaker: cfg.Subtitles.IncludeSpeaker}
			if noSpeaker {
				opts.IncludeSpeaker = false
			}

			dest := strings.TrimSpace(outputPath)
			if dest == "" {
				dest = strings.TrimSuffix(docPath, ".json") + extension
			}
			if err := export(dest, doc, opts); err != nil {
				return fmt.Errorf("export subtitles: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", len(doc.Segments), dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination subtitle path")
	cmd.Flags().StringVarP(&format, "format", "f", "srt", "Subtitle format (srt or vtt)")
	cmd.Flags().BoolVar(&noSpeaker, "no-speaker", false, "Omit speaker labels from cues")
	cmd.Flags().BoolVar(&consolidate, "consolidate", false, "Join consecutive segments from the same speaker")
	return cmd
}
