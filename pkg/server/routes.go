package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-reportforms/pkg/editor"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the subtree pattern the server is registered under.
func MountPath(fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(opts.BasePath)
}

// RegisterRoutes mounts a server for ed on mux below Options.BasePath and
// returns the registered pattern.
func RegisterRoutes(mux Mux, ed *editor.Editor, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("server: missing mux")
	}
	srv, err := New(ed, fns...)
	if err != nil {
		return "", err
	}
	pattern := mountPath(srv.opts.BasePath)
	prefix := strings.TrimRight(pattern, "/")
	var handler http.Handler = srv
	if prefix != "" {
		handler = http.StripPrefix(prefix, srv)
	}
	mux.Handle(pattern, handler)
	return pattern, nil
}

func mountPath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + "/"
}
