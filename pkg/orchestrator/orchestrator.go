package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	internalLoader "github.com/goliatone/go-studentservices/internal/openapi/loader"
	internalParser "github.com/goliatone/go-studentservices/internal/openapi/parser"
	"github.com/goliatone/go-studentservices/pkg/model"
	pkgopenapi "github.com/goliatone/go-studentservices/pkg/openapi"
	"github.com/goliatone/go-studentservices/pkg/render"
	"github.com/goliatone/go-studentservices/pkg/renderers/html"
	"github.com/goliatone/go-studentservices/pkg/uischema"
	"github.com/goliatone/go-studentservices/pkg/visibility"
	"github.com/goliatone/go-studentservices/pkg/visibility/expr"
	"github.com/goliatone/go-studentservices/pkg/widgets"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
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

// WithSchemaTransformer registers a Transformer that runs after building but
// before UI schema decorators.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run against the generated form
// model before rendering.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithWidgetRegistry replaces the registry that fills widget hints on fields
// the UI schema left untouched.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = reg
	}
}

// WithVisibilityEvaluator overrides the evaluator used to compute which
// fields start hidden.
func WithVisibilityEvaluator(eval visibility.Evaluator) Option {
	return func(o *Orchestrator) {
		if eval != nil {
			o.evaluator = eval
		}
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to rendered
// output. Missing dependencies fall back to the built-in implementations.
type Orchestrator struct {
	loader                pkgopenapi.Loader
	parser                pkgopenapi.Parser
	builder               model.Builder
	registry              *render.Registry
	defaultRenderer       string
	initialiseErr         error
	defaultsApplied       bool
	decorators            []model.Decorator
	uiSchemaFS            fs.FS
	uiSchemaSpecified     bool
	uiDecoratorConfigured bool
	transformer           Transformer
	evaluator             visibility.Evaluator
	widgets               *widgets.Registry
	themeSelector         ThemeSelector
	themeFallbacks        map[string]string
	defaultTheme          string
	defaultVariant        string
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

// Request describes the inputs required to render a form from an OpenAPI
// operation.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source pkgopenapi.Source

	// Document bypasses the loader when the caller already has the payload.
	Document *pkgopenapi.Document

	// OperationID selects which OpenAPI operation to render into a form.
	OperationID string

	// Renderer names the renderer to use. Empty falls back to the default.
	Renderer string

	// RenderOptions carries prefilled values, errors and hidden inputs.
	// Hidden and Theme are filled in by the orchestrator when left empty.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant override the configured theme defaults.
	ThemeName    string
	ThemeVariant string
}

// Generate executes the full pipeline and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, form, req)
}

// Build runs the loader, parser, builder, transformer and decorators and
// returns the resulting form model without rendering it.
func (o *Orchestrator) Build(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}
	if req.OperationID == "" {
		return model.FormModel{}, errors.New("orchestrator: operation id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}

	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: parse operations: %w", err)
	}

	op, ok := operations[req.OperationID]
	if !ok {
		return model.FormModel{}, fmt.Errorf("orchestrator: operation %q not found", req.OperationID)
	}

	form, err := o.builder.Build(op)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	if err := o.applyTransformer(ctx, &form); err != nil {
		return model.FormModel{}, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

// Render renders an already built form model. Initial visibility and the
// theme are resolved here unless the request supplies them.
func (o *Orchestrator) Render(ctx context.Context, form model.FormModel, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Hidden == nil {
		hidden, err := hiddenFields(form, o.evaluator, opts.Values)
		if err != nil {
			return nil, err
		}
		opts.Hidden = hidden
	}
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
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

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.evaluator == nil {
		o.evaluator = expr.New()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.ensureUIDecorator()

	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	o.decorators = append(o.decorators, o.widgets)

	o.defaultsApplied = true
}

func (o *Orchestrator) ensureUIDecorator() {
	if o.uiDecoratorConfigured {
		return
	}
	o.uiDecoratorConfigured = true

	if !o.uiSchemaSpecified && o.uiSchemaFS == nil {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
	if o.uiSchemaFS == nil {
		return
	}

	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	if store.Empty() {
		return
	}

	o.decorators = append(o.decorators, uischema.NewDecorator(store))
}
