package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"go.uber.org/zap"

	"github.com/goliatone/go-jadn"
	"github.com/goliatone/go-jadn/pkg/compiler"
	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/jas"
	"github.com/goliatone/go-jadn/pkg/orchestrator"
	"github.com/goliatone/go-jadn/pkg/render"
)

var formats = []string{
	render.FormatJADN,
	render.FormatYAML,
	render.FormatMarkdown,
	render.FormatOpenAPI,
	render.FormatJSONSchema,
	render.FormatFlat,
}

func main() {
	source := flag.String("source", "", "JAS syntax tree document path, URL or - for stdin (prompted if empty)")
	format := flag.String("format", render.FormatJADN, "output format: "+strings.Join(formats, ", "))
	output := flag.String("output", "", "output file (stdout if empty)")
	preset := flag.String("preset", "", "JSON or YAML file with meta and description overrides")
	strict := flag.Bool("strict", false, "fail on any diagnostic")
	canonical := flag.Bool("canonical", false, "write option strings with the decode tables")
	timeout := flag.Duration("http-timeout", 30*time.Second, "timeout for remote sources")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if *verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.Development = true
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Errorf("failed to build logger: %w", err))
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	if strings.TrimSpace(*source) == "" {
		if err := promptInputs(source, format); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				os.Exit(130)
			}
			sugar.Fatalw("prompt failed", "error", err)
		}
	}

	src, err := jas.ParseSource(*source)
	if err != nil {
		sugar.Fatalw("invalid source", "source", *source, "error", err)
	}

	// The exporters read options with the decode tables, so they need the
	// canonical encoding to see patterns and field links.
	switch strings.ToLower(strings.TrimSpace(*format)) {
	case render.FormatOpenAPI, "oas", render.FormatJSONSchema, "json-schema":
		*canonical = true
	}

	collector := diag.NewCollector()
	reporter := diag.Tee(collector, diag.NewZapReporter(logger))

	compilerOptions := []compiler.Option{compiler.WithStrict(*strict)}
	if *canonical {
		compilerOptions = append(compilerOptions, compiler.WithCanonicalOptions())
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(jadn.NewLoader(jas.WithHTTPFallback(*timeout), jas.WithStdin(os.Stdin))),
		orchestrator.WithReporter(reporter),
		orchestrator.WithLogger(logger),
		orchestrator.WithCompilerOptions(compilerOptions...),
	}
	if *preset != "" {
		data, err := os.ReadFile(*preset)
		if err != nil {
			sugar.Fatalw("read preset", "path", *preset, "error", err)
		}
		transformer, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			sugar.Fatalw("parse preset", "path", *preset, "error", err)
		}
		options = append(options, orchestrator.WithSchemaTransformer(transformer))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := jadn.NewOrchestrator(options...).Generate(ctx, orchestrator.Request{
		Source:   src,
		Renderer: *format,
	})
	if err != nil {
		sugar.Fatalw("generate failed", "source", src.Location(), "error", err)
	}
	if n := collector.Len(); n > 0 {
		sugar.Infow("compiled with diagnostics", "count", n)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			sugar.Fatalw("write output", "path", *output, "error", err)
		}
		sugar.Infow("output written", "path", *output, "format", *format)
		return
	}
	os.Stdout.Write(out)
}

func promptInputs(source, format *string) error {
	if err := survey.AskOne(&survey.Input{
		Message: "Syntax tree document (path or URL):",
		Help:    "JSON or YAML document produced by the JAS grammar.",
	}, source, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	return survey.AskOne(&survey.Select{
		Message: "Output format:",
		Options: formats,
		Default: *format,
	}, format)
}
