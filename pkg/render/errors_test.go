package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	form := model.FormModel{
		Fields: []model.Field{
			{Name: "studentName"},
			{Name: "bsolEmail"},
			{Name: "phone"},
		},
	}

	payload := map[string][]string{
		"/body/studentName":    {"Please enter your name (at least 2 characters)."},
		"request.bsolEmail":    {"Please enter a valid email address.", "  "},
		"$.phone[0]":           {"Please enter a valid phone number."},
		"non_field_errors":     {"Form level error"},
		"request/body/unknown": {"Should fall back to form errors"},
		"":                     {"Unscoped form error"},
		"program":              {"   "},
	}

	mapped := render.MapErrorPayload(form, payload)

	wantFields := map[string][]string{
		"studentName": {"Please enter your name (at least 2 characters)."},
		"bsolEmail":   {"Please enter a valid email address."},
		"phone":       {"Please enter a valid phone number."},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldMessages(t *testing.T) {
	got := render.FieldMessages(map[string]string{"phone": "Please enter a valid phone number.", "program": " "})
	want := map[string][]string{"phone": {"Please enter a valid phone number."}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field messages mismatch (-want +got):\n%s", diff)
	}
	if render.FieldMessages(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
