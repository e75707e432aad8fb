package transform

import "errors"

var (
	// ErrShapeDetection reports input that matches neither known variant.
	ErrShapeDetection = errors.New("transform: unrecognised form shape")
	// ErrPayloadDecode reports a recognised variant whose payload cannot be
	// decoded or is missing required structure.
	ErrPayloadDecode = errors.New("transform: payload decode failed")
)
