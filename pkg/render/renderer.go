package render

import (
	"context"

	"github.com/goliatone/go-formblock/pkg/model"
)

// FieldRenderer turns one normalised field into an HTML fragment. The
// decorator places every fragment inside the form root it builds, so
// implementations never see the surrounding document.
type FieldRenderer interface {
	Name() string
	RenderField(ctx context.Context, field model.Field) (string, error)
}
