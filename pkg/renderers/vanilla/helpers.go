package vanilla

import (
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "form-" + trimmed
}

// wrapperClass follows the "<kind>-wrapper" convention so author styles can
// target every control of one kind.
func wrapperClass(kind model.FieldKind) string {
	if kind == "" {
		return "text-wrapper"
	}
	return strings.ReplaceAll(string(kind), " ", "-") + "-wrapper"
}
