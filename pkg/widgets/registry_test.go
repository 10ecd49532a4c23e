package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-studentservices/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type:    model.FieldTypeString,
		Format:  "email",
		UIHints: map[string]string{model.HintWidget: "textarea"},
	}

	if got, ok := reg.Resolve(field); !ok || got != "textarea" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
		ok     bool
	}{
		{
			name:   "enum select",
			field:  model.Field{Type: model.FieldTypeString, Enum: []any{"acca", "llb"}},
			expect: WidgetSelect,
			ok:     true,
		},
		{
			name:   "email format",
			field:  model.Field{Type: model.FieldTypeString, Format: "email"},
			expect: WidgetEmail,
			ok:     true,
		},
		{
			name:   "phone format",
			field:  model.Field{Type: model.FieldTypeString, Format: "phone"},
			expect: WidgetTel,
			ok:     true,
		},
		{
			name:   "multiline format",
			field:  model.Field{Type: model.FieldTypeString, Format: "multiline"},
			expect: WidgetTextarea,
			ok:     true,
		},
		{
			name:   "integer",
			field:  model.Field{Type: model.FieldTypeInteger},
			expect: WidgetNumber,
			ok:     true,
		},
		{
			name:  "plain string",
			field: model.Field{Type: model.FieldTypeString},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if ok != tc.ok || got != tc.expect {
				t.Fatalf("Resolve() = %q, %v; want %q, %v", got, ok, tc.expect, tc.ok)
			}
		})
	}
}

func TestRegister_PriorityOrdering(t *testing.T) {
	reg := &Registry{}
	reg.Register("low", 10, func(model.Field) bool { return true })
	reg.Register("high", 100, func(model.Field) bool { return true })

	if got, _ := reg.Resolve(model.Field{}); got != "high" {
		t.Fatalf("expected high priority widget, got %q", got)
	}

	reg.Register("override", 100, func(model.Field) bool { return true })
	if got, _ := reg.Resolve(model.Field{}); got != "override" {
		t.Fatalf("expected later registration to win a tie, got %q", got)
	}
}

func TestDecorate_FillsMissingHints(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "bsolEmail", Type: model.FieldTypeString, Format: "email"},
		{Name: "phone", Type: model.FieldTypeString, UIHints: map[string]string{model.HintWidget: "tel"}},
		{Name: "studentName", Type: model.FieldTypeString},
	}}

	if err := NewRegistry().Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	got := map[string]string{}
	for _, field := range form.Fields {
		got[field.Name] = field.UIHints[model.HintWidget]
	}
	want := map[string]string{"bsolEmail": "email", "phone": "tel", "studentName": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}
}
