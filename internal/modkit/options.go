package modkit

import "net/http"

// Option mutates build configuration for a module
type Option func(*Built)

// WithName sets the module name
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix sets the mount path of a route module
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends per module middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects the ports a module needs from the ones built before it
// The concrete Needs type is owned by the receiving module
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}
