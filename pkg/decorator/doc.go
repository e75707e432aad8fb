// Package decorator turns an authored form block into a rendered <form>.
// Each pass moves through three states: Unparsed (raw block or definition),
// Normalized (a model.FormModel) and Rendered (form attached, stylesheet
// resolved). Parse and transform failures abort the pass before anything is
// attached; stylesheet failures are logged and the form is kept.
package decorator
