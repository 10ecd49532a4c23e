package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-studentservices/pkg/form"
	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/render"
	"github.com/goliatone/go-studentservices/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	textAreas    []string
	infoMessages []string
	prompted     []string
	inputPos     int
	selectPos    int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompted = append(s.prompted, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompted = append(s.prompted, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompted = append(s.prompted, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type recordingHandler struct {
	mu    sync.Mutex
	calls []form.Submission
}

func (h *recordingHandler) Handle(_ context.Context, sub form.Submission) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, sub)
	return nil
}

func options(values ...string) []model.Option {
	out := make([]model.Option, 0, len(values))
	for _, v := range values {
		out = append(out, model.Option{Value: v, Label: strings.ToUpper(v)})
	}
	return out
}

func studentForm() model.FormModel {
	return model.FormModel{
		OperationID: "createServiceRequest",
		UIHints:     map[string]string{"layout.title": "Student Services"},
		Fields: []model.Field{
			{Name: "studentName", Label: "Student Name", Required: true},
			{Name: "phone", Label: "Phone", Required: true},
			{Name: "bsolEmail", Label: "Bsol Email", Required: true},
			{Name: "program", Label: "Program", Required: true, Options: options("acca", "btc", "foundation", "llb", "llm")},
			{Name: "inquiryType", Label: "Inquiry Type", Required: true, Options: options("general", "feedback", "fee-payment", "complaint", "testimonial", "academic")},
			{Name: "complaintType", Label: "Complaint Type", Options: options("not-applicable", "teacher-conduct", "staff-conduct", "cleanliness", "utilities", "other")},
			{Name: "academicIssueType", Label: "Academic Issue Type", Options: options("not-applicable", "module-registration", "exam-entry", "bar-application", "llm-bursary", "result-issue", "athe-certificate", "fee-payment")},
			{Name: "inquiryDetails", Label: "Inquiry Details", Required: true, UIHints: map[string]string{model.HintWidget: "textarea"}},
		},
	}
}

func newRenderer(t *testing.T, driver PromptDriver, handler form.SubmitHandler, extra ...Option) *Renderer {
	t.Helper()
	opts := []Option{
		WithPromptDriver(driver),
		WithControllerOptions(
			form.WithHandler(handler),
			form.WithIDGenerator(func() string { return "sub-1" }),
		),
	}
	r, err := New(append(opts, extra...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_ComplaintFlow(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada Lovelace", "2121234567", "ada@blackstone.edu"},
		selectIdx: []int{3, 3, 5},
		textAreas: []string{"The wifi keeps dropping in room 4."},
	}
	handler := &recordingHandler{}
	r := newRenderer(t, driver, handler)

	out, err := r.Render(context.Background(), studentForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	wantPrompts := []string{
		"Student Name *", "Phone *", "Bsol Email *", "Program *",
		"Inquiry Type *", "Complaint Type", "Inquiry Details *",
	}
	if diff := cmp.Diff(wantPrompts, driver.prompted); diff != "" {
		t.Fatalf("prompt sequence mismatch (-want +got):\n%s", diff)
	}

	if len(handler.calls) != 1 {
		t.Fatalf("expected one handler call, got %d", len(handler.calls))
	}

	var payload struct {
		ID      string            `json:"id"`
		Request map[string]string `json:"request"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if payload.ID != "sub-1" {
		t.Fatalf("id mismatch: %q", payload.ID)
	}
	if payload.Request["program"] != "llb" || payload.Request["complaintType"] != "utilities" {
		t.Fatalf("unexpected request payload: %#v", payload.Request)
	}
	if payload.Request["academicIssueType"] != "" {
		t.Fatalf("academic panel should not have been prompted: %#v", payload.Request)
	}
	if driver.infoMessages[0] != "Student Services" {
		t.Fatalf("expected title first, got %v", driver.infoMessages)
	}
}

func TestRender_RepromptsInvalidFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"A", "2121234567", "ada@blackstone.edu", "Ada"},
		selectIdx: []int{0, 0},
		textAreas: []string{"Where can I find my timetable?"},
	}
	handler := &recordingHandler{}
	r := newRenderer(t, driver, handler, WithOutputFormat(OutputFormatPrettyText))

	out, err := r.Render(context.Background(), studentForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := driver.prompted[len(driver.prompted)-1]; got != "Student Name *" {
		t.Fatalf("expected name to be prompted again, got %q", got)
	}
	found := false
	for _, msg := range driver.infoMessages {
		if msg == "! Name must be at least 2 characters." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected name error message, got %v", driver.infoMessages)
	}
	if len(handler.calls) != 1 {
		t.Fatalf("expected one handler call, got %d", len(handler.calls))
	}

	text := string(out)
	for _, want := range []string{"Submission sub-1", "Student Name *: Ada", "Program *: ACCA"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

func TestRender_GivesUpAfterMaxPasses(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"A", "2121234567", "ada@blackstone.edu", "B"},
		selectIdx: []int{0, 0},
		textAreas: []string{"Where can I find my timetable?"},
	}
	handler := &recordingHandler{}
	r := newRenderer(t, driver, handler, WithMaxPasses(2))

	_, err := r.Render(context.Background(), studentForm(), render.RenderOptions{})
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if len(handler.calls) != 0 {
		t.Fatalf("handler must not run for invalid drafts")
	}
}

func TestRender_SeededValuesBecomeDefaults(t *testing.T) {
	driver := &defaultsDriver{}
	handler := &recordingHandler{}
	r := newRenderer(t, driver, handler, WithOutputFormat(OutputFormatFormURLEncoded))

	out, err := r.Render(context.Background(), studentForm(), render.RenderOptions{Values: map[string]string{
		"studentName":    "Grace Hopper",
		"phone":          "2121234567",
		"bsolEmail":      "grace@blackstone.edu",
		"program":        "llm",
		"inquiryType":    "academic",
		"inquiryDetails": "My exam entry is missing.",
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "program=llm") || strings.Contains(got, "academicIssueType") {
		t.Fatalf("unexpected form output %q", got)
	}
	if r.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("content type mismatch: %s", r.ContentType())
	}
}

func TestRender_OptionalSubtypeOffersSkip(t *testing.T) {
	driver := &optionsDriver{stubDriver: stubDriver{
		inputs:    []string{"Ada Lovelace", "2121234567", "ada@blackstone.edu"},
		selectIdx: []int{3, 3, 0},
		textAreas: []string{"The wifi keeps dropping in room 4."},
	}}
	r := newRenderer(t, driver, &recordingHandler{})

	out, err := r.Render(context.Background(), studentForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := driver.options["Complaint Type"]; len(got) == 0 || got[0] != skipOptionLabel {
		t.Fatalf("expected skip entry first, got %v", got)
	}
	if got := driver.options["Program *"]; got[0] == skipOptionLabel {
		t.Fatalf("required selects must not offer skip: %v", got)
	}

	var payload struct {
		Request map[string]string `json:"request"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if payload.Request["inquiryType"] != "complaint" || payload.Request["complaintType"] != "" {
		t.Fatalf("expected skipped complaint type, got %#v", payload.Request)
	}
}

func TestRender_RequiredSubtypeHasNoSkip(t *testing.T) {
	driver := &optionsDriver{stubDriver: stubDriver{
		inputs:    []string{"Ada Lovelace", "2121234567", "ada@blackstone.edu"},
		selectIdx: []int{3, 3, 4},
		textAreas: []string{"The wifi keeps dropping in room 4."},
	}}
	r := newRenderer(t, driver, &recordingHandler{},
		WithControllerOptions(form.WithSchema(validation.New(validation.WithConditionalSubtypes()))),
	)

	if _, err := r.Render(context.Background(), studentForm(), render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := driver.options["Complaint Type"]; len(got) == 0 || got[0] == skipOptionLabel {
		t.Fatalf("required sub-type must not offer skip: %v", got)
	}
}

func TestNew_RejectsUnknownOutputFormat(t *testing.T) {
	_, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat("xml"))
	if !errors.Is(err, ErrUnknownOutputFormat) {
		t.Fatalf("expected ErrUnknownOutputFormat, got %v", err)
	}
	if format, err := ParseOutputFormat(" Pretty "); err != nil || format != OutputFormatPrettyText {
		t.Fatalf("ParseOutputFormat = %q, %v", format, err)
	}
}

// optionsDriver records the choices offered by each select.
type optionsDriver struct {
	stubDriver
	options map[string][]string
}

func (d *optionsDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if d.options == nil {
		d.options = map[string][]string{}
	}
	d.options[cfg.Message] = cfg.Options
	return d.stubDriver.Select(ctx, cfg)
}

func TestRender_UnknownSeedField(t *testing.T) {
	r := newRenderer(t, &stubDriver{}, &recordingHandler{})
	_, err := r.Render(context.Background(), studentForm(), render.RenderOptions{Values: map[string]string{"nickname": "x"}})
	if err == nil || !strings.Contains(err.Error(), "nickname") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestRender_InvalidChoice(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "2121234567", "ada@blackstone.edu"},
		selectIdx: []int{42},
	}
	r := newRenderer(t, driver, &recordingHandler{})
	_, err := r.Render(context.Background(), studentForm(), render.RenderOptions{})
	if !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
}

// defaultsDriver accepts every default; selects with no default take the
// first option.
type defaultsDriver struct{}

func (defaultsDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	return cfg.Default, nil
}

func (defaultsDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if cfg.DefaultIndex < 0 {
		return 0, nil
	}
	return cfg.DefaultIndex, nil
}

func (defaultsDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	return cfg.Default, nil
}

func (defaultsDriver) Info(context.Context, string) error { return nil }
