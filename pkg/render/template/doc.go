// Package template defines the template engine seam field renderers rely on.
package template
