package stylesheet

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formblock/pkg/config"
	"github.com/goliatone/go-formblock/pkg/model"
)

// ErrStyleResolution reports that a style directive could not be turned into a
// link. Callers treat it as non-fatal.
var ErrStyleResolution = errors.New("stylesheet: style resolution failed")

// Registry records stylesheet links for a document. Attach must be idempotent
// per href and report whether a new link was added.
type Registry interface {
	Attach(href string) (bool, error)
}

// ResolveHref joins basePath and stylePath with exactly one separator: one
// leading slash is dropped from stylePath and one trailing slash from
// basePath. A stylePath that is already an absolute URL is returned as is. A
// blank stylePath resolves to "".
func ResolveHref(stylePath, basePath string) (string, error) {
	path := strings.TrimSpace(stylePath)
	if path == "" {
		return "", nil
	}
	if isAbsoluteURL(path) {
		return path, nil
	}

	base := strings.TrimSpace(basePath)
	if strings.ContainsAny(base, " \t\r\n") {
		return "", fmt.Errorf("%w: base path %q contains whitespace", ErrStyleResolution, basePath)
	}
	if _, err := url.Parse(base); err != nil {
		return "", fmt.Errorf("%w: base path %q: %v", ErrStyleResolution, basePath, err)
	}

	base = strings.TrimSuffix(base, "/")
	path = strings.TrimPrefix(path, "/")
	return base + "/" + path, nil
}

// ResolveAndAttach resolves style against basePath and attaches the result to
// registry. An absent style is a no-op and returns "".
func ResolveAndAttach(registry Registry, style model.StyleRef, basePath string) (string, error) {
	if !style.Present {
		return "", nil
	}
	href, err := ResolveHref(style.Path, basePath)
	if err != nil || href == "" {
		return "", err
	}
	if registry == nil {
		return "", fmt.Errorf("%w: no registry", ErrStyleResolution)
	}
	if _, err := registry.Attach(href); err != nil {
		return "", fmt.Errorf("%w: attach %q: %v", ErrStyleResolution, href, err)
	}
	return href, nil
}

// Resolver reads the base path from its provider on every call.
type Resolver struct {
	base config.BasePathProvider
}

// NewResolver builds a resolver around a base path provider.
func NewResolver(base config.BasePathProvider) *Resolver {
	return &Resolver{base: base}
}

// Attach resolves style against the current base path and records it in
// registry. An absolute URL style needs no base path provider.
func (r *Resolver) Attach(registry Registry, style model.StyleRef) (string, error) {
	if !style.Present {
		return "", nil
	}
	if isAbsoluteURL(strings.TrimSpace(style.Path)) {
		return ResolveAndAttach(registry, style, "")
	}
	if r == nil || r.base == nil {
		return "", fmt.Errorf("%w: base path provider not configured", ErrStyleResolution)
	}
	base, err := r.base.BasePath()
	if err != nil {
		return "", fmt.Errorf("%w: read base path: %v", ErrStyleResolution, err)
	}
	return ResolveAndAttach(registry, style, base)
}

func isAbsoluteURL(path string) bool {
	if !strings.Contains(path, "://") {
		return false
	}
	u, err := url.Parse(path)
	return err == nil && u.Scheme != "" && u.Host != ""
}
