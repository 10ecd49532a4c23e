// Package template defines the template engine seam the HTML renderer relies
// on. Concrete engines live in sub-packages.
package template
