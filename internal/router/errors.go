package router

import "errors"

var (
	// ErrResolve wraps failures of the Resolver.
	ErrResolve = errors.New("error resolving controller")

	// ErrNoRoutes is returned for a controller that declares no routes.
	ErrNoRoutes = errors.New("controller declares no routes")

	// ErrNilController is returned when a group lists a nil controller.
	ErrNilController = errors.New("nil controller in route group")

	// ErrControllerTypeMismatch is returned when the resolver produced an
	// instance of a different type than the controller was defined for.
	ErrControllerTypeMismatch = errors.New("resolved instance does not match controller type")

	// ErrNilHandler is returned for a route entry declared without handler.
	ErrNilHandler = errors.New("route declared without handler")

	// ErrUnsupportedMethod is returned for route entries with an HTTP method
	// the router does not know.
	ErrUnsupportedMethod = errors.New("unsupported http method")
)
