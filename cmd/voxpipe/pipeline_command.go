package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voxpipe/internal/config"
	"voxpipe/internal/deps"
	lang "voxpipe/internal/language"
	"voxpipe/internal/logging"
	"voxpipe/internal/pipeline"
)

func newPipelineCommand(ctx *commandContext) *cobra.Command {
	pipelineCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the full processing chain over a video file",
	}

	pipelineCmd.AddCommand(newPipelineRunCommand(ctx))
	pipelineCmd.AddCommand(newPipelineQuickCommand(ctx))

	return pipelineCmd
}

func newPipelineRunCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var language string

	cmd := &cobra.Command{
		Use:   "run <video>",
		Short: "Extract, transcribe, diarize, merge, correct, translate, and export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePipeline(cmd, ctx, args[0], outputDir, language, false)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for pipeline artifacts")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Target language for translation (skips translation when empty)")
	return cmd
}

func newPipelineQuickCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "quick <video>",
		Short: "Extract and transcribe only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePipeline(cmd, ctx, args[0], outputDir, "", true)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for pipeline artifacts")
	return cmd
}

func executePipeline(cmd *cobra.Command, ctx *commandContext, source, outputDir, language string, quick bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	source, err = resolveInput(source)
	if err != nil {
		return err
	}
	if language != "" {
		language = lang.Display(language)
	}
	if err := checkPipelineDeps(cfg, quick); err != nil {
		return err
	}

	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	store, err := ctx.openStore()
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer store.Close()

	p := pipeline.New(cfg, logger, store)

	var result *pipeline.Result
	if quick {
		result, err = p.Quick(cmd.Context(), source, outputDir)
	} else {
		result, err = p.Run(cmd.Context(), source, outputDir, language)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s completed\n", result.RunID)
	if quick {
		fmt.Fprintf(out, "Transcript: %s\n", result.Artifacts.Transcript)
		return nil
	}
	fmt.Fprintf(out, "Subtitles: %s\n", result.Artifacts.Subtitles)
	if result.Document != nil {
		fmt.Fprintf(out, "Segments: %d, speakers: %d\n", len(result.Document.Segments), len(result.Document.Speakers))
	}
	return nil
}

// checkPipelineDeps fails fast when a required external binary is missing.
// Quick mode only shells out to ffmpeg and whisper-cli.
func checkPipelineDeps(cfg *config.Config, quick bool) error {
	requirements := deps.Requirements(cfg)
	if quick {
		trimmed := requirements[:0]
		for _, req := range requirements {
			if req.Name == "uvx" {
				continue
			}
			trimmed = append(trimmed, req)
		}
		requirements = trimmed
	}
	missing := deps.MissingRequired(deps.CheckBinaries(requirements))
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for _, status := range missing {
		names = append(names, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
	}
	return fmt.Errorf("missing external tools: %s; run `voxpipe deps` for details", strings.Join(names, ", "))
}
