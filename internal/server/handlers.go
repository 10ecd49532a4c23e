package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-studentservices/internal/apperrors"
	"github.com/goliatone/go-studentservices/pkg/form"
	"github.com/goliatone/go-studentservices/pkg/orchestrator"
	"github.com/goliatone/go-studentservices/pkg/render"
	"github.com/goliatone/go-studentservices/pkg/renderers/html"
	"github.com/goliatone/go-studentservices/pkg/request"
)

const (
	statusReceived = "received"
	noticeReceived = "Thank you. Your request has been submitted."
)

// fieldResult is the per-field payload of /validate.
type fieldResult struct {
	Visible bool   `json:"visible"`
	Error   string `json:"error,omitempty"`
}

type validateResponse struct {
	Valid  bool                   `json:"valid"`
	Panel  form.Panel             `json:"panel"`
	Errors map[string]string      `json:"errors"`
	Fields map[string]fieldResult `json:"fields"`
}

type submitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func assetsFS() fs.FS {
	return html.AssetsFS()
}

func (s *Server) newController() *form.Controller {
	return form.New(
		form.WithFormModel(s.form),
		form.WithSchema(s.schema),
		form.WithHandler(s.handler),
		form.WithLogger(s.logger),
	)
}

func (s *Server) showForm(c *gin.Context) {
	s.renderPage(c, http.StatusOK, render.RenderOptions{})
}

// validate applies a flat draft and reports every current message; the page
// decides which ones to show.
func (s *Server) validate(c *gin.Context) {
	values, err := bindValues(c)
	if err != nil {
		_ = c.Error(apperrors.BadRequest("Malformed request body", err))
		return
	}

	ctrl := s.newController()
	if err := applyValues(ctrl, values, false); err != nil {
		_ = c.Error(err)
		return
	}

	errs := ctrl.Errors()
	fields := make(map[string]fieldResult, len(request.FieldNames()))
	for _, state := range ctrl.FieldStates() {
		fields[state.Name] = fieldResult{Visible: state.Visible, Error: errs[state.Name]}
	}
	c.JSON(http.StatusOK, validateResponse{
		Valid:  ctrl.Valid(),
		Panel:  ctrl.Panel(),
		Errors: errs,
		Fields: fields,
	})
}

func (s *Server) submit(c *gin.Context) {
	asJSON := isJSON(c)

	values, err := bindValues(c)
	if err != nil {
		_ = c.Error(apperrors.BadRequest("Malformed request body", err))
		return
	}

	ctrl := s.newController()
	if err := applyValues(ctrl, values, asJSON); err != nil {
		_ = c.Error(err)
		return
	}

	sub, err := ctrl.Submit(c.Request.Context())
	if s.metrics != nil {
		s.metrics.ObserveSubmit(err)
	}

	if asJSON {
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, submitResponse{ID: sub.ID, Status: statusReceived})
		return
	}

	opts := render.RenderOptions{Values: stringValues(ctrl)}
	var invalid *form.ValidationError
	switch {
	case errors.As(err, &invalid):
		mapping := render.MapErrorPayload(s.form, render.FieldMessages(invalid.Fields))
		opts.Errors = mapping.Fields
		opts.FormErrors = mapping.Form
		s.renderPage(c, http.StatusUnprocessableEntity, opts)
	case err != nil:
		appErr := apperrors.From(err)
		opts.FormErrors = []string{appErr.Message}
		s.renderPage(c, appErr.HTTPStatus, opts)
	default:
		opts.Notice = noticeReceived
		opts.HiddenFields = render.MergeHiddenFields(nil, render.Hidden("submissionId", sub.ID))
		s.renderPage(c, http.StatusOK, opts)
	}
}

func (s *Server) openAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", s.openapi)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) renderPage(c *gin.Context, status int, opts render.RenderOptions) {
	out, err := s.orch.Render(c.Request.Context(), s.form, orchestrator.Request{
		RenderOptions: opts,
		ThemeVariant:  s.requestedVariant(c),
	})
	if err != nil {
		_ = c.Error(apperrors.Internal(err))
		return
	}
	c.Data(status, "text/html; charset=utf-8", out)
}

// requestedVariant returns the ?variant= override, or "" when the configured
// theme does not declare it.
func (s *Server) requestedVariant(c *gin.Context) string {
	variant := strings.TrimSpace(c.Query("variant"))
	if variant == "" {
		return ""
	}
	if err := s.themes.Check(s.themeName, variant); err != nil {
		s.logger.Debug("ignoring unknown theme variant",
			zap.String("variant", variant),
			zap.Error(err),
		)
		return ""
	}
	return variant
}

func isJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON
}

// bindValues reads a flat name to value draft from JSON or form bodies.
func bindValues(c *gin.Context) (map[string]string, error) {
	if isJSON(c) {
		values := map[string]string{}
		if err := c.ShouldBindJSON(&values); err != nil {
			return nil, err
		}
		return values, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		values[key] = c.Request.PostForm.Get(key)
	}
	return values, nil
}

// applyValues sets known fields in form order. With strict set, unknown keys
// fail; otherwise they are ignored so pages can carry extra inputs.
func applyValues(ctrl *form.Controller, values map[string]string, strict bool) error {
	if strict {
		for key := range values {
			if !request.IsField(key) {
				return apperrors.From(fmt.Errorf("%w: %q", request.ErrUnknownField, key))
			}
		}
	}
	for _, name := range request.FieldNames() {
		value, ok := values[name]
		if !ok {
			continue
		}
		if err := ctrl.SetField(name, value); err != nil {
			return apperrors.From(err)
		}
	}
	return nil
}

func stringValues(ctrl *form.Controller) map[string]string {
	draft := ctrl.Draft()
	out := make(map[string]string, len(request.FieldNames()))
	for _, name := range request.FieldNames() {
		if value, err := draft.Get(name); err == nil && value != "" {
			out[name] = value
		}
	}
	return out
}
