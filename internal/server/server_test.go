package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-studentservices/internal/config"
	"github.com/goliatone/go-studentservices/pkg/form"
)

func validValues() map[string]string {
	return map[string]string{
		"studentName":    "Ada Lovelace",
		"phone":          "2121234567",
		"bsolEmail":      "ada@blackstone.edu",
		"program":        "llb",
		"inquiryType":    "general",
		"inquiryDetails": "I need help registering for my modules.",
	}
}

type recordingHandler struct {
	mu   sync.Mutex
	subs []form.Submission
	err  error
}

func (h *recordingHandler) Handle(_ context.Context, sub form.Submission) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, sub)
	return h.err
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func newTestServer(t *testing.T, options ...Option) *Server {
	t.Helper()
	srv, err := New(context.Background(), options...)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, strings.NewReader(string(data)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, srv *Server, path string, values map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	for key, value := range values {
		form.Set(key, value)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestShowForm(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	body := w.Body.String()
	assert.Contains(t, body, "<h1>Student Services</h1>")
	assert.Contains(t, body, `data-field="complaintType" data-visibility-rule=`)
	assert.Contains(t, body, `data-theme="studentservices"`)
}

func TestShowForm_DarkVariant(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?variant=dark", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-variant="dark"`)
}

func TestShowForm_UnknownVariantFallsBack(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?variant=bogus", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-variant="light"`)

	w = doForm(t, srv, "/requests?variant=bogus", map[string]string{"studentName": "A"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestValidate_ComplaintPanel(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/validate", map[string]string{"inquiryType": "complaint"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp validateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, form.PanelComplaint, resp.Panel)
	assert.True(t, resp.Fields["complaintType"].Visible)
	assert.False(t, resp.Fields["academicIssueType"].Visible)
	assert.Equal(t, "Name must be at least 2 characters.", resp.Errors["studentName"])
	assert.Equal(t, "Name must be at least 2 characters.", resp.Fields["studentName"].Error)
	assert.Empty(t, resp.Fields["inquiryType"].Error)
}

func TestValidate_IgnoresExtraInputs(t *testing.T) {
	srv := newTestServer(t)

	values := validValues()
	values["submissionId"] = "previous"
	w := doJSON(t, srv, http.MethodPost, "/validate", values)
	require.Equal(t, http.StatusOK, w.Code)

	var resp validateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, form.PanelNone, resp.Panel)
	assert.Empty(t, resp.Errors)
}

func TestValidate_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitJSON_Accepted(t *testing.T) {
	handler := &recordingHandler{}
	srv := newTestServer(t, WithHandler(handler))

	w := doJSON(t, srv, http.MethodPost, "/requests", validValues())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp submitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, statusReceived, resp.Status)

	require.Equal(t, 1, handler.count())
	assert.Equal(t, resp.ID, handler.subs[0].ID)
	assert.Equal(t, "Ada Lovelace", handler.subs[0].Request.StudentName)
}

func TestSubmitJSON_Invalid(t *testing.T) {
	handler := &recordingHandler{}
	srv := newTestServer(t, WithHandler(handler))

	values := validValues()
	values["phone"] = "123"
	values["bsolEmail"] = "not-an-email"
	w := doJSON(t, srv, http.MethodPost, "/requests", values)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Type   string            `json:"type"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Type)
	assert.Equal(t, map[string]string{
		"phone":     "Please enter a valid phone number.",
		"bsolEmail": "Please enter a valid Blackstone email.",
	}, resp.Errors)
	assert.Zero(t, handler.count())
}

func TestSubmitJSON_UnknownField(t *testing.T) {
	handler := &recordingHandler{}
	srv := newTestServer(t, WithHandler(handler))

	values := validValues()
	values["age"] = "21"
	w := doJSON(t, srv, http.MethodPost, "/requests", values)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, handler.count())
}

func TestSubmitJSON_HandlerFailure(t *testing.T) {
	handler := &recordingHandler{err: errors.New("mailbox unavailable")}
	srv := newTestServer(t, WithHandler(handler))

	w := doJSON(t, srv, http.MethodPost, "/requests", validValues())

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, 1, handler.count())
}

func TestSubmitJSON_RequireSubtypes(t *testing.T) {
	cfg, err := config.Load(config.WithOverride("form.require_subtypes", true))
	require.NoError(t, err)
	srv := newTestServer(t, WithConfig(cfg))

	values := validValues()
	values["inquiryType"] = "complaint"
	w := doJSON(t, srv, http.MethodPost, "/requests", values)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please select a complaint type.")
}

func TestSubmitForm_InvalidRerenders(t *testing.T) {
	handler := &recordingHandler{}
	srv := newTestServer(t, WithHandler(handler))

	values := validValues()
	values["studentName"] = "A"
	w := doForm(t, srv, "/requests", values)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Name must be at least 2 characters.")
	assert.Contains(t, body, `value="2121234567"`)
	assert.Zero(t, handler.count())
}

func TestSubmitForm_AcceptedKeepsDraft(t *testing.T) {
	handler := &recordingHandler{}
	srv := newTestServer(t, WithHandler(handler))

	w := doForm(t, srv, "/requests", validValues())

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, noticeReceived)
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Contains(t, body, `name="submissionId"`)
	assert.Equal(t, 1, handler.count())
}

func TestOpenAPIAndAssets(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "createServiceRequest")

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/studentservices.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, WithHandler(&recordingHandler{}))

	doJSON(t, srv, http.MethodPost, "/requests", validValues())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `studentservices_submissions_total{outcome="accepted"} 1`)
	assert.Contains(t, body, "studentservices_submissions_handled_total 1")
}

func TestMetricsDisabled(t *testing.T) {
	cfg, err := config.Load(config.WithOverride("metrics.enabled", false))
	require.NoError(t, err)
	srv := newTestServer(t, WithConfig(cfg))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, listener)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + listener.Addr().String() + "/healthz")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
