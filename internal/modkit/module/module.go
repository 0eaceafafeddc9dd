// Package module is the contract every service and API module satisfies
package module

import (
	phttp "interestd/internal/platform/net/http"
)

// Module mounts its routes and exposes the ports other modules are wired with
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
