// Package render defines the field rendering capability the decorator
// consumes and a registry for selecting an implementation by name.
package render
