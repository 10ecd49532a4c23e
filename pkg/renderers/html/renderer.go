package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/render"
	rendertemplate "github.com/goliatone/go-studentservices/pkg/render/template"
	"github.com/goliatone/go-studentservices/pkg/render/template/pongo"
)

const (
	defaultAssetsPrefix = "/assets"
	defaultValidateURL  = "/validate"
	defaultSubmitLabel  = "Submit"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetsPrefix     string
	validateURL      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetsPrefix sets the URL prefix the page uses for its stylesheet and
// script.
func WithAssetsPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetsPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithValidateURL sets the endpoint the runtime script posts drafts to.
func WithValidateURL(url string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			cfg.validateURL = trimmed
		}
	}
}

// Renderer produces a complete HTML page for a form model.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	assetsPrefix string
	validateURL  string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		assetsPrefix: defaultAssetsPrefix,
		validateURL:  defaultValidateURL,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		assetsPrefix: cfg.assetsPrefix,
		validateURL:  cfg.validateURL,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	page := r.buildPage(form, opts)
	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"page":    page,
		"classes": defaultChromeClasses(),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type pageView struct {
	Title        string
	Subtitle     string
	FormID       string
	Method       string
	Action       string
	ValidateURL  string
	SubmitLabel  string
	Notice       string
	FormErrors   []string
	HiddenFields []render.HiddenField
	Fields       []fieldView
	AssetsPrefix string
	Stylesheet   string
	Script       string
	Theme        themeView
}

func (r *Renderer) buildPage(form model.FormModel, opts render.RenderOptions) pageView {
	title := form.UIHints["layout.title"]
	if title == "" {
		title = form.Summary
	}
	submitLabel := form.UIHints["layout.submitLabel"]
	if submitLabel == "" {
		submitLabel = defaultSubmitLabel
	}
	method := strings.ToLower(form.Method)
	if method != "get" {
		method = "post"
	}

	fields := make([]fieldView, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, buildFieldView(field, opts))
	}

	return pageView{
		Title:        title,
		Subtitle:     form.UIHints["layout.subtitle"],
		FormID:       "ss-" + form.OperationID,
		Method:       method,
		Action:       form.Endpoint,
		ValidateURL:  r.validateURL,
		SubmitLabel:  submitLabel,
		Notice:       strings.TrimSpace(opts.Notice),
		FormErrors:   render.MergeFormErrors(opts.FormErrors),
		HiddenFields: render.SortedHiddenFields(opts.HiddenFields),
		Fields:       fields,
		AssetsPrefix: r.assetsPrefix,
		Stylesheet:   StylesheetName,
		Script:       RuntimeScriptName,
		Theme:        buildThemeView(opts.Theme),
	}
}
