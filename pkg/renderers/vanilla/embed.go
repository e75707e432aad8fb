package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/fields/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded field templates so callers can reuse or
// override them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
