package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voxpipe/internal/language"
	"voxpipe/internal/transcript"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "translate <document.json> <language>",
		Short: "Translate a document with the translation model",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			docPath, err := resolveInput(args[0])
			if err != nil {
				return err
			}
			targetLanguage := language.Display(args[1])
			if targetLanguage == "" {
				return fmt.Errorf("target language required")
			}

			doc, err := transcript.ReadDocument(docPath)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			client := ctx.newOllamaClient(cfg, cfg.Ollama.TranslationModel)
			translated, err := client.TranslateDocument(cmd.Context(), doc, targetLanguage, segmentProgress(cmd.ErrOrStderr(), "Translating"))
			if err != nil {
				return fmt.Errorf("translate: %w", err)
			}

			dest := strings.TrimSpace(outputPath)
			if dest == "" {
				dest = documentOutput(docPath, "_"+strings.ToLower(targetLanguage))
			}
			if err := transcript.WriteDocument(dest, translated); err != nil {
				return fmt.Errorf("write translated document: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s translation to %s\n", targetLanguage, dest)
			fmt.Fprintf(out, "Segments: %d (model %s)\n", len(translated.Segments), translated.TranslationModel)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination JSON path")
	return cmd
}
