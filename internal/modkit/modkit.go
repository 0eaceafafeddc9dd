// Package modkit wires service and API modules from shared deps and options
package modkit

import (
	"net/http"

	"interestd/internal/modkit/httpkit"
	"interestd/internal/modkit/module"
	str "interestd/internal/platform/strings"
)

// Module is the contract returned by every New constructor
type Module = module.Module

// Routes is an API module that only mounts endpoints: a name, a prefix,
// per module middleware and the func that registers its handlers
type Routes struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)
}

// NewRoutes builds a Routes module from Build output
func NewRoutes(b Built, register func(httpkit.Router)) *Routes {
	return &Routes{
		name:     str.MustString(b.Name, "module name"),
		prefix:   str.MustPrefix(b.Prefix),
		mws:      b.Mw,
		register: register,
	}
}

// MountRoutes mounts the module under its prefix with its middleware applied first
func (m *Routes) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Routes) Name() string { return m.name }

// Prefix returns the mount path
func (m *Routes) Prefix() string { return m.prefix }

// Ports is nil; route modules only consume ports
func (m *Routes) Ports() any { return nil }
