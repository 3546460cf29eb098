package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ArtieFishal/lastwish"
	"github.com/ArtieFishal/lastwish/internal/config"
	"github.com/ArtieFishal/lastwish/internal/fileutil"
)

// runGenerate renders one input bundle to a PDF file.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(flags.input, positional)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common, flags.document, flags.images)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, flags.common, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	input, err := lastwish.LoadBundle(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadBundle, err)
	}
	if input.Jurisdiction == (lastwish.Jurisdiction{}) {
		input.Jurisdiction = defaultJurisdiction(cfg)
	}

	gen, err := lastwish.NewGenerator(generatorOptions(cfg, env, logger)...)
	if err != nil {
		return err
	}

	outputPath, err := resolveOutputPath(flags.output, inputPath, cfg)
	if err != nil {
		return err
	}

	start := env.Now()
	pdf, err := gen.Generate(ctx, input)
	if err != nil {
		return fmt.Errorf("generating %s: %w", inputPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	if err := fileutil.WriteFileAtomic(outputPath, pdf, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	logger.Debug("document written",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("bytes", len(pdf)),
		zap.Duration("elapsed", env.Now().Sub(start)))

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%s -> %s\n", inputPath, outputPath)
	}
	return nil
}

// resolveInputPath picks the bundle from --input or the single positional
// argument.
func resolveInputPath(flagInput string, positional []string) (string, error) {
	switch {
	case flagInput != "" && len(positional) > 0:
		return "", fmt.Errorf("%w: use either --input or a positional bundle path, not both", ErrUsage)
	case flagInput != "":
		return flagInput, nil
	case len(positional) == 1:
		return positional[0], nil
	case len(positional) > 1:
		return "", fmt.Errorf("%w: expected one bundle, got %d", ErrUsage, len(positional))
	}
	return "", ErrNoInput
}

// resolveOutputPath determines where the PDF is written.
// Priority: --output file > --output directory > output.defaultDir >
// next to the bundle. All directory forms use the bundle name with .pdf.
func resolveOutputPath(flagOutput, inputPath string, cfg *config.Config) (string, error) {
	if strings.EqualFold(filepath.Ext(flagOutput), ".pdf") {
		return flagOutput, nil
	}

	pdfName, err := fileutil.ReplaceExtension(filepath.Base(inputPath), "pdf")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}

	switch {
	case flagOutput != "":
		return filepath.Join(flagOutput, pdfName), nil
	case cfg.Output.DefaultDir != "":
		return filepath.Join(cfg.Output.DefaultDir, pdfName), nil
	}
	return fileutil.ReplaceExtension(inputPath, "pdf")
}
