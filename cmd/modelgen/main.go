package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-modelgen"
	"github.com/goliatone/go-modelgen/internal/config"
	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/internal/prompt"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/sample"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], env{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		lookup: os.LookupEnv,
		driver: func() prompt.Driver { return prompt.NewSurveyDriver() },
	}))
}

// env carries the process collaborators so run can be driven from tests.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	lookup func(string) (string, bool)
	driver func() prompt.Driver
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type flags struct {
	input       string
	output      string
	root        string
	renderer    string
	format      string
	selector    string
	collision   string
	renames     stringList
	preset      string
	templates   string
	configPath  string
	interactive bool
	inspect     bool
	force       bool
	watch       bool
	logLevel    string
	logFile     string
	timeout     string
	allowHTTP   bool
}

func run(ctx context.Context, args []string, e env) int {
	fs := flag.NewFlagSet("modelgen", flag.ContinueOnError)
	fs.SetOutput(e.stderr)

	var f flags
	fs.StringVar(&f.input, "input", "", "Sample path or URL (stdin when empty or \"-\")")
	fs.StringVar(&f.input, "source", "", "Alias for -input")
	fs.StringVar(&f.output, "output", "", "Output file (stdout when empty)")
	fs.StringVar(&f.root, "root", "", "Root model name (default \"Model\")")
	fs.StringVar(&f.renderer, "renderer", "", "Renderer: pydantic, jsonschema, openapi, preview (default from -output extension, else pydantic)")
	fs.StringVar(&f.format, "format", "", "Sample format: json or yaml (default from extension)")
	fs.StringVar(&f.selector, "select", "", "jq path to the value to model, e.g. .data.items[0]")
	fs.StringVar(&f.collision, "collision", "", "Record name collision policy: qualify or overwrite")
	fs.Var(&f.renames, "rename", "Rename a record, From=To (repeatable)")
	fs.StringVar(&f.preset, "preset", "", "YAML or JSON preset with record and field overrides")
	fs.StringVar(&f.templates, "templates", "", "Directory of templates overriding the bundled pydantic and preview ones")
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.BoolVar(&f.interactive, "interactive", false, "Prompt for root name, renderer and overwrites")
	fs.BoolVar(&f.inspect, "inspect", false, "Print the inferred schema as JSON to stderr")
	fs.BoolVar(&f.watch, "watch", false, "Regenerate -output whenever the sample file changes")
	fs.BoolVar(&f.force, "force", false, "Overwrite the output file without asking")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFile, "log-file", "", "Log file (rotated); stderr when empty")
	fs.StringVar(&f.timeout, "timeout", "", "HTTP request timeout, e.g. 10s")
	fs.BoolVar(&f.allowHTTP, "allow-http", true, "Fetch http(s) sample URLs")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(e.stderr, "modelgen: at most one positional sample argument is accepted")
		return exitUsage
	}
	if fs.NArg() == 1 && f.input == "" {
		f.input = fs.Arg(0)
	}

	cfg, err := config.Load(f.configPath, e.lookup)
	if err != nil {
		fmt.Fprintf(e.stderr, "modelgen: %v\n", err)
		return exitUsage
	}
	if err := applyFlags(&cfg, fs, f); err != nil {
		fmt.Fprintf(e.stderr, "modelgen: %v\n", err)
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(e.stderr, "modelgen: %v\n", err)
		return exitUsage
	}

	logger, closeLog, err := logging.Setup(cfg.Log, e.stderr)
	if err != nil {
		fmt.Fprintf(e.stderr, "modelgen: configure logging: %v\n", err)
		return exitError
	}
	defer closeLog()

	if err := generate(ctx, cfg, f, e, logger); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(e.stderr, "modelgen: aborted")
			return exitError
		}
		fmt.Fprintf(e.stderr, "modelgen: %v\n", err)
		return exitError
	}
	return exitOK
}

// applyFlags overlays only the flags that were set explicitly, so config file
// and environment values survive unset flags.
func applyFlags(cfg *config.Config, fs *flag.FlagSet, f flags) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "root":
			cfg.RootName = f.root
		case "renderer":
			cfg.Renderer = f.renderer
		case "format":
			cfg.Format = f.format
		case "select":
			cfg.Select = f.selector
		case "collision":
			cfg.Collision = f.collision
		case "preset":
			cfg.Preset = f.preset
		case "templates":
			cfg.Templates = f.templates
		case "log-level":
			cfg.Log.Level = f.logLevel
		case "log-file":
			cfg.Log.FilePath = f.logFile
		case "timeout":
			d, parseErr := time.ParseDuration(f.timeout)
			if parseErr != nil {
				err = parseErr
				return
			}
			cfg.Timeout = d
		case "allow-http":
			cfg.AllowHTTP = f.allowHTTP
		}
	})
	if err != nil {
		return err
	}

	if len(f.renames) > 0 {
		parsed, parseErr := model.ParseRenames(f.renames)
		if parseErr != nil {
			return parseErr
		}
		if cfg.Renames == nil {
			cfg.Renames = make(map[string]string, len(parsed))
		}
		for from, to := range parsed {
			cfg.Renames[from] = to
		}
	}
	return nil
}

// job is one prepared generation: the configured orchestrator, the request
// and where the output goes.
type job struct {
	gen      *orchestrator.Orchestrator
	req      orchestrator.Request
	output   string
	renderer string
	inspect  bool
	driver   prompt.Driver
}

func generate(ctx context.Context, cfg config.Config, f flags, e env, logger *slog.Logger) error {
	j, err := prepare(ctx, cfg, f, e, logger)
	if err != nil {
		return err
	}
	if f.watch {
		return watchSample(ctx, j, f.input, e, logger)
	}
	return j.emit(ctx, e, logger)
}

func prepare(ctx context.Context, cfg config.Config, f flags, e env, logger *slog.Logger) (*job, error) {
	if f.watch && (f.output == "" || isStdin(f.input) || sample.ParseSource(f.input).Kind() != sample.SourceKindFile) {
		return nil, errors.New("-watch needs a sample file and -output")
	}

	loaderOptions := []sample.LoaderOption{sample.WithMaxBytes(cfg.MaxBytes)}
	if cfg.AllowHTTP {
		loaderOptions = append(loaderOptions, sample.WithHTTPFallback(cfg.Timeout))
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(modelgen.NewLoader(loaderOptions...)),
		orchestrator.WithModelBuilder(model.NewBuilder(
			model.WithCollisionPolicy(cfg.CollisionPolicy()),
			model.WithLogger(logger),
		)),
		orchestrator.WithLogger(logger),
	}
	if len(cfg.Renames) > 0 {
		options = append(options, orchestrator.WithDecorators(model.RenameRecords(cfg.Renames)))
	}
	if cfg.Preset != "" {
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(cfg.Preset)), filepath.Base(cfg.Preset))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithSchemaTransformer(preset))
	}
	if cfg.Templates != "" {
		registry, err := orchestrator.DefaultRegistry(orchestrator.WithTemplatesDir(cfg.Templates))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithRegistry(registry))
	}
	gen := modelgen.NewOrchestrator(options...)

	rendererName := cfg.Renderer
	if rendererName == "" && f.output != "" {
		if renderer, ok := gen.Registry().ForPath(f.output); ok {
			rendererName = renderer.Name()
		}
	}
	if rendererName == "" {
		rendererName = orchestrator.DefaultRendererName
	}
	rootName := cfg.RootName

	var driver prompt.Driver
	if f.interactive {
		driver = e.driver()
		answers, err := prompt.Ask(ctx, driver, prompt.Settings{
			RootName:  rootName,
			Renderer:  rendererName,
			Renderers: gen.Renderers(),
		})
		if err != nil {
			return nil, err
		}
		rootName, rendererName = answers.RootName, answers.Renderer
	}

	if f.output != "" && !f.force {
		if _, err := os.Stat(f.output); err == nil {
			if !f.interactive {
				return nil, fmt.Errorf("%s exists; pass -force or -interactive to overwrite", f.output)
			}
			ok, err := prompt.ConfirmOverwrite(ctx, driver, f.output)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, prompt.ErrAborted
			}
		}
	}

	req := orchestrator.Request{
		RootName: rootName,
		Renderer: rendererName,
		Select:   cfg.Select,
	}
	if format, err := sample.ParseFormat(cfg.Format); err == nil {
		req.Format = format
	}
	if err := resolveInput(f.input, e.stdin, &req); err != nil {
		return nil, err
	}

	return &job{
		gen:      gen,
		req:      req,
		output:   f.output,
		renderer: rendererName,
		inspect:  f.inspect,
		driver:   driver,
	}, nil
}

// emit runs the pipeline once and writes the result.
func (j *job) emit(ctx context.Context, e env, logger *slog.Logger) error {
	if j.inspect {
		schema, err := j.gen.Infer(ctx, j.req)
		if err != nil {
			return err
		}
		if err := writeInspection(e.stderr, schema); err != nil {
			return fmt.Errorf("write inspection: %w", err)
		}
	}

	out, err := j.gen.Generate(ctx, j.req)
	if err != nil {
		return err
	}

	if j.output == "" {
		_, err := e.stdout.Write(out)
		return err
	}
	if err := writeFile(j.output, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written", slog.String("path", j.output), slog.Int("bytes", len(out)), slog.String("renderer", j.renderer))
	if j.driver != nil {
		return j.driver.Info(ctx, fmt.Sprintf("Wrote %s (%s)", j.output, j.renderer))
	}
	return nil
}

func isStdin(input string) bool {
	input = strings.TrimSpace(input)
	return input == "" || input == "-"
}

func resolveInput(input string, stdin io.Reader, req *orchestrator.Request) error {
	if !isStdin(input) {
		req.Source = sample.ParseSource(strings.TrimSpace(input))
		return nil
	}
	if stdin == nil {
		return errors.New("no input: pass a sample path or pipe JSON on stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	doc, err := sample.NewDocument(sample.SourceFromFile("-"), data)
	if err != nil {
		return err
	}
	req.Document = &doc
	return nil
}

func writeInspection(out io.Writer, schema model.Schema) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(schema)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
