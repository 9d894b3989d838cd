package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-jadn/internal/jas/loader"
	"github.com/goliatone/go-jadn/pkg/compiler"
	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/jas"
	"github.com/goliatone/go-jadn/pkg/render"
	"github.com/goliatone/go-jadn/pkg/render/markdown"
	"github.com/goliatone/go-jadn/pkg/schema"
)

const defaultRendererName = render.FormatJADN

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom syntax tree loader.
func WithLoader(loader jas.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithBuilder injects a custom compiler.
func WithBuilder(builder compiler.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithCompilerOptions configures the default compiler. Ignored when
// WithBuilder supplies one.
func WithCompilerOptions(options ...compiler.Option) Option {
	return func(o *Orchestrator) {
		o.compilerOptions = append(o.compilerOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that runs after compilation
// and before rendering.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithReporter routes diagnostics from every stage to r.
func WithReporter(r diag.Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

// WithLogger sets the logger used for pipeline tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the pipeline from a JAS document to rendered
// output. Missing dependencies are filled with the built-in implementations.
type Orchestrator struct {
	loader          jas.Loader
	builder         compiler.Builder
	compilerOptions []compiler.Option
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	reporter        diag.Reporter
	logger          *zap.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to compile and render a schema.
type Request struct {
	// Source identifies where the syntax tree document lives. Optional when
	// Document is supplied.
	Source jas.Source

	// Document allows callers to bypass the loader when they already have the
	// payload.
	Document *jas.Document

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
}

// Compile executes the loader → parser → compiler sequence and applies the
// configured transformer.
func (o *Orchestrator) Compile(ctx context.Context, req Request) (schema.Schema, error) {
	if ctx == nil {
		return schema.Schema{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return schema.Schema{}, err
	}
	if err := o.initialiseErr; err != nil {
		return schema.Schema{}, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return schema.Schema{}, err
	}

	tree, err := doc.AST()
	if err != nil {
		return schema.Schema{}, fmt.Errorf("orchestrator: parse document: %w", err)
	}

	compiled, err := o.builder.Compile(ctx, tree)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("orchestrator: compile %s: %w", doc.Location(), err)
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &compiled); err != nil {
			return schema.Schema{}, fmt.Errorf("orchestrator: transform schema: %w", err)
		}
	}

	o.logger.Debug("compiled document",
		zap.String("source", doc.Location()),
		zap.Int("types", len(compiled.Types)),
	)
	return compiled, nil
}

// Generate compiles the request and renders the result.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	compiled, err := o.Compile(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, compiled)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// Renderer resolves a renderer name or alias. An empty name selects the
// default renderer.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	return o.rendererFor(name)
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (jas.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return jas.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return jas.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w (available: %v)", err, o.registry.List())
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	o.reporter = diag.OrDiscard(o.reporter)

	if o.loader == nil {
		o.loader = internalLoader.New(jas.NewLoaderOptions())
	}
	if o.builder == nil {
		options := append([]compiler.Option{
			compiler.WithReporter(o.reporter),
			compiler.WithLogger(o.logger),
		}, o.compilerOptions...)
		o.builder = compiler.NewBuilder(options...)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := render.RegisterDefaults(o.registry, o.reporter); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		}
		md, err := markdown.New(markdown.WithReporter(o.reporter))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: markdown renderer: %w", err)
		} else {
			o.registry.MustRegister(md)
			_ = o.registry.Alias("md", render.FormatMarkdown)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
