package uischema

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// iconShapeAttrs lists the geometry attributes allowed per SVG shape.
var iconShapeAttrs = map[string][]string{
	"path":     {"d"},
	"circle":   {"cx", "cy", "r"},
	"rect":     {"x", "y", "width", "height", "rx", "ry"},
	"line":     {"x1", "y1", "x2", "y2"},
	"polyline": {"points"},
	"polygon":  {"points"},
}

var paintAttrs = []string{"fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin"}

var iconPolicy = sync.OnceValue(func() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()

	policy.AllowElements("svg")
	policy.AllowAttrs("xmlns", "viewBox", "width", "height", "aria-hidden", "focusable").OnElements("svg")
	policy.AllowAttrs(paintAttrs...).OnElements("svg")

	for shape, attrs := range iconShapeAttrs {
		policy.AllowElements(shape)
		policy.AllowAttrs(attrs...).OnElements(shape)
		policy.AllowAttrs(paintAttrs...).OnElements(shape)
	}
	return policy
})

// sanitizeIconMarkup strips everything but inline SVG shapes from raw icon
// markup. Empty output means the icon is dropped.
func sanitizeIconMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconPolicy().Sanitize(trimmed))
}
