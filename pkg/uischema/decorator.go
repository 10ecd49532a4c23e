package uischema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	pkgmodel "github.com/goliatone/go-studentservices/pkg/model"
)

const (
	layoutTitleKey       = "layout.title"
	layoutSubtitleKey    = "layout.subtitle"
	layoutSubmitLabelKey = "layout.submitLabel"
	actionsMetadataKey   = "actions"
)

// Decorator applies UI schema metadata to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments the supplied form model with UI schema metadata. When no
// matching operation is found the form is left untouched.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store == nil || d.store.Empty() || form == nil {
		return nil
	}

	op, ok := d.store.Operation(form.OperationID)
	if !ok {
		return nil
	}

	if err := applyFormConfig(form, op); err != nil {
		return err
	}
	return d.applyFieldConfig(form, op)
}

func applyFormConfig(form *pkgmodel.FormModel, op Operation) error {
	form.Metadata = mergeStringMap(form.Metadata, op.Form.Metadata)
	form.UIHints = mergeStringMap(form.UIHints, op.Form.UIHints)

	if op.Form.Title != "" {
		form.UIHints = ensureMap(form.UIHints)
		form.UIHints[layoutTitleKey] = op.Form.Title
	}
	if op.Form.Subtitle != "" {
		form.UIHints = ensureMap(form.UIHints)
		form.UIHints[layoutSubtitleKey] = op.Form.Subtitle
	}
	if submit, ok := op.Form.Submit(); ok && submit.Label != "" {
		form.UIHints = ensureMap(form.UIHints)
		form.UIHints[layoutSubmitLabelKey] = submit.Label
	}
	if len(op.Form.Actions) > 0 {
		payload, err := json.Marshal(op.Form.Actions)
		if err != nil {
			return fmt.Errorf("uischema: marshal actions for operation %q: %w", op.ID, err)
		}
		form.Metadata = ensureMap(form.Metadata)
		form.Metadata[actionsMetadataKey] = string(payload)
	}
	return nil
}

func (d *Decorator) applyFieldConfig(form *pkgmodel.FormModel, op Operation) error {
	refs := make(map[string]*pkgmodel.Field, len(form.Fields))
	originals := make(map[string]int, len(form.Fields))
	for idx := range form.Fields {
		refs[form.Fields[idx].Name] = &form.Fields[idx]
		originals[form.Fields[idx].Name] = idx
	}

	explicitOrders := make(map[string]int, len(op.Fields))
	for path, cfg := range op.Fields {
		field, ok := refs[path]
		if !ok {
			return fmt.Errorf("uischema: operation %q (file %s) references unknown field %q", op.ID, op.Source, cfg.OriginalPath)
		}

		if cfg.Order != nil {
			explicitOrders[path] = *cfg.Order
			field.Metadata = ensureMap(field.Metadata)
			field.Metadata[pkgmodel.MetadataOrder] = strconv.Itoa(*cfg.Order)
		}

		applyFieldCopy(field, cfg)
		d.applyIcon(field, cfg)

		if err := applyOptionLabels(field, cfg); err != nil {
			return fmt.Errorf("uischema: operation %q (file %s) field %q: %w", op.ID, op.Source, cfg.OriginalPath, err)
		}
		if cfg.VisibilityRule != "" {
			field.Metadata = ensureMap(field.Metadata)
			field.Metadata[pkgmodel.MetadataVisibilityRule] = cfg.VisibilityRule
		}
		field.UIHints = mergeStringMap(field.UIHints, cfg.UIHints)
		field.Metadata = mergeStringMap(field.Metadata, cfg.Metadata)
	}

	sort.SliceStable(form.Fields, func(i, j int) bool {
		return fieldOrderLess(form.Fields[i].Name, form.Fields[j].Name, explicitOrders, originals)
	})
	return nil
}

func applyFieldCopy(field *pkgmodel.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Description != "" {
		field.Description = cfg.Description
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.Widget != "" {
		field.UIHints = ensureMap(field.UIHints)
		field.UIHints[pkgmodel.HintWidget] = cfg.Widget
	}
}

func (d *Decorator) applyIcon(field *pkgmodel.Field, cfg FieldConfig) {
	if cfg.Icon == "" && cfg.IconRaw == "" {
		return
	}
	field.UIHints = ensureMap(field.UIHints)
	if cfg.Icon != "" {
		field.UIHints[pkgmodel.HintIcon] = cfg.Icon
	}

	raw := cfg.IconRaw
	if raw == "" {
		raw, _ = d.store.Icon(cfg.Icon)
	}
	if cleaned := sanitizeIconMarkup(raw); cleaned != "" {
		field.UIHints[pkgmodel.HintIconRaw] = cleaned
	}
}

// applyOptionLabels relabels existing options. The option order stays the
// enum order from the OpenAPI document.
func applyOptionLabels(field *pkgmodel.Field, cfg FieldConfig) error {
	if len(cfg.Options) == 0 {
		return nil
	}
	known := make(map[string]int, len(field.Options))
	for idx, opt := range field.Options {
		known[opt.Value] = idx
	}
	for value, label := range cfg.Options {
		idx, ok := known[value]
		if !ok {
			return fmt.Errorf("option %q is not part of the field enum", value)
		}
		if label != "" {
			field.Options[idx].Label = label
		}
	}
	return nil
}

func fieldOrderLess(a, b string, explicitOrders, originals map[string]int) bool {
	orderA, hasA := explicitOrders[a]
	orderB, hasB := explicitOrders[b]

	switch {
	case hasA && hasB:
		if orderA != orderB {
			return orderA < orderB
		}
	case hasA:
		return true
	case hasB:
		return false
	}
	return originals[a] < originals[b]
}

func ensureMap(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return m
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
