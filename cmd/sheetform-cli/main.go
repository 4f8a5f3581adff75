package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-sheetform/pkg/config"
	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/orchestrator"
	"github.com/goliatone/go-sheetform/pkg/render"
	"github.com/goliatone/go-sheetform/pkg/renderers/document"
	"github.com/goliatone/go-sheetform/pkg/renderers/openapi"
	"github.com/goliatone/go-sheetform/pkg/renderers/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	inputs     []string
	output     string
	renderer   string
	configPath string
	sheet      string
	maxFields  int
	jobs       int
	watch      bool
	logLevel   string
	set        map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var (
		f     flags
		input string
	)
	fs := flag.NewFlagSet("sheetform-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&input, "input", "", "comma separated xlsx template paths")
	fs.StringVar(&f.output, "output", "", "output file, or directory when several inputs are given (stdout if empty)")
	fs.StringVar(&f.renderer, "renderer", "", "renderer to use: document, openapi or tui")
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.sheet, "sheet", "", "worksheet name (first worksheet if empty)")
	fs.IntVar(&f.maxFields, "max-fields", 0, "field-count safety cap")
	fs.IntVar(&f.jobs, "jobs", 0, "concurrent conversions")
	fs.BoolVar(&f.watch, "watch", false, "re-run conversions when inputs change")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	for _, item := range strings.Split(input, ",") {
		if item = strings.TrimSpace(item); item != "" {
			f.inputs = append(f.inputs, item)
		}
	}
	f.inputs = append(f.inputs, fs.Args()...)
	if len(f.inputs) == 0 {
		return flags{}, errors.New("at least one -input is required")
	}
	return f, nil
}

// resolveConfig overlays explicitly set flags onto the file configuration.
func resolveConfig(f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if f.set["renderer"] {
		cfg.Renderer = f.renderer
	}
	if f.set["sheet"] {
		cfg.Sheet = f.sheet
	}
	if f.set["max-fields"] {
		cfg.MaxFields = f.maxFields
	}
	if f.set["jobs"] {
		cfg.Jobs = f.jobs
	}
	if f.set["log-level"] {
		cfg.Log.Level = f.logLevel
	}
	if cfg.Renderer == tui.Name {
		cfg.Jobs = 1
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "sheetform-cli: %v\n", err)
		return 2
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "sheetform-cli: %v\n", err)
		return 1
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		fmt.Fprintf(stderr, "sheetform-cli: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	orch, err := newOrchestrator(cfg, logger)
	if err != nil {
		logger.Error("setup failed", zap.Error(err))
		return 1
	}

	c := &converter{
		orch:     orch,
		logger:   logger,
		renderer: cfg.Renderer,
		output:   f.output,
		multi:    len(f.inputs) > 1,
		stdout:   stdout,
	}

	if err := c.checkTargets(f.inputs); err != nil {
		fmt.Fprintf(stderr, "sheetform-cli: %v\n", err)
		return 2
	}

	failed := c.convertAll(ctx, f.inputs, cfg.Jobs) != nil
	if !f.watch {
		if failed {
			return 1
		}
		return 0
	}

	if err := watch(ctx, c, f.inputs); err != nil {
		logger.Error("watch failed", zap.Error(err))
		return 1
	}
	return 0
}

func newOrchestrator(cfg config.Config, logger *zap.Logger) (*orchestrator.Orchestrator, error) {
	builder, err := model.NewBuilder(
		model.WithMessages(cfg.Messages),
		model.WithSanitizeText(cfg.SanitizeText),
	)
	if err != nil {
		return nil, err
	}

	preview, err := tui.New()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(document.New(), openapi.New(), preview); err != nil {
		return nil, err
	}
	if _, err := registry.Lookup(cfg.Renderer); err != nil {
		return nil, err
	}

	return orchestrator.New(
		orchestrator.WithBuilder(builder),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithMaxFields(cfg.MaxFields),
		orchestrator.WithSheet(cfg.Sheet),
		orchestrator.WithLogger(logger),
	), nil
}
