package router

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"github.com/MKhiriev/go-bootstrap/internal/database"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/middleware"
)

// HandlerFunc is a route handler bound to a controller instance.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Deps is what a controller constructor can depend on.
type Deps struct {
	Databases *database.Registry
	Logger    *logger.Logger
}

// RouteEntry is a single route declared by a controller.
type RouteEntry struct {
	Method string
	Path   string

	// Name is the name of the bound handler method.
	Name string

	Middlewares []middleware.Middleware

	bind func(instance any) (HandlerFunc, error)
}

// Bind returns the handler of the entry bound to instance.
func (e RouteEntry) Bind(instance any) (HandlerFunc, error) {
	return e.bind(instance)
}

// Controller is the static descriptor of a controller type.
type Controller struct {
	name      string
	prefix    string
	typ       reflect.Type
	construct func(ctx context.Context, deps Deps) (any, error)
	routes    []RouteEntry
}

// Name returns the controller name.
func (c *Controller) Name() string { return c.name }

// Prefix returns the path prefix shared by all routes of the controller.
func (c *Controller) Prefix() string { return c.prefix }

// Type returns the Go type of the controller instance.
func (c *Controller) Type() reflect.Type { return c.typ }

// Routes returns the declared routes in declaration order.
func (c *Controller) Routes() []RouteEntry { return slices.Clone(c.routes) }

// Construct builds a new controller instance with the declared constructor.
func (c *Controller) Construct(ctx context.Context, deps Deps) (any, error) {
	if c.construct == nil {
		return nil, fmt.Errorf("controller %s has no constructor", c.name)
	}
	return c.construct(ctx, deps)
}

// Definition accumulates the routes of a controller of type T.
type Definition[T any] struct {
	c *Controller
}

// Define starts the descriptor of a controller of type T. An empty name
// selects the name of T.
//
//	router.Define("users", "/users", NewUsers).
//		Get("/", (*Users).List).
//		Post("/", (*Users).Create, middleware.RequireBearerToken(key, iss)).
//		Build()
func Define[T any](name, prefix string, constructor func(ctx context.Context, deps Deps) (T, error)) *Definition[T] {
	typ := reflect.TypeFor[T]()
	if name == "" {
		name = typeName(typ)
	}

	c := &Controller{name: name, prefix: prefix, typ: typ}
	if constructor != nil {
		c.construct = func(ctx context.Context, deps Deps) (any, error) {
			return constructor(ctx, deps)
		}
	}
	return &Definition[T]{c: c}
}

// Handle declares a route for method and path handled by fn, usually a
// method expression such as (*Users).List.
func (d *Definition[T]) Handle(method, path string, fn func(T, http.ResponseWriter, *http.Request) error, mws ...middleware.Middleware) *Definition[T] {
	d.c.routes = append(d.c.routes, RouteEntry{
		Method:      strings.ToUpper(method),
		Path:        path,
		Name:        funcName(fn),
		Middlewares: slices.Clone(mws),
		bind: func(instance any) (HandlerFunc, error) {
			if fn == nil {
				return nil, ErrNilHandler
			}
			inst, ok := instance.(T)
			if !ok {
				return nil, fmt.Errorf("%w: want %s, got %T", ErrControllerTypeMismatch, reflect.TypeFor[T](), instance)
			}
			return func(w http.ResponseWriter, r *http.Request) error {
				return fn(inst, w, r)
			}, nil
		},
	})
	return d
}

func (d *Definition[T]) Get(path string, fn func(T, http.ResponseWriter, *http.Request) error, mws ...middleware.Middleware) *Definition[T] {
	return d.Handle(http.MethodGet, path, fn, mws...)
}

func (d *Definition[T]) Post(path string, fn func(T, http.ResponseWriter, *http.Request) error, mws ...middleware.Middleware) *Definition[T] {
	return d.Handle(http.MethodPost, path, fn, mws...)
}

func (d *Definition[T]) Put(path string, fn func(T, http.ResponseWriter, *http.Request) error, mws ...middleware.Middleware) *Definition[T] {
	return d.Handle(http.MethodPut, path, fn, mws...)
}

func (d *Definition[T]) Patch(path string, fn func(T, http.ResponseWriter, *http.Request) error, mws ...middleware.Middleware) *Definition[T] {
	return d.Handle(http.MethodPatch, path, fn, mws...)
}

func (d *Definition[T]) Delete(path string, fn func(T, http.ResponseWriter, *http.Request) error, mws ...middleware.Middleware) *Definition[T] {
	return d.Handle(http.MethodDelete, path, fn, mws...)
}

// Build returns the finished descriptor. Later calls on d do not affect it.
func (d *Definition[T]) Build() *Controller {
	c := *d.c
	c.routes = slices.Clone(d.c.routes)
	return &c
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// funcName extracts "List" from "pkg.(*Users).List".
func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return ""
	}
	name := strings.TrimSuffix(f.Name(), "-fm")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
