// Package model defines the normalised form model shared by every input shape.
// Adaptive Form definitions and document-based sheet payloads are both reduced
// to a FormModel whose Fields slice has one element shape, so renderers never
// need to know which representation the author used. The source kind is fixed
// when the model is constructed with New and cannot be changed afterwards.
package model
