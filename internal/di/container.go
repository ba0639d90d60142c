// Package di provides the default controller resolver: a container of
// singleton controller instances built with their declared constructors.
package di

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/MKhiriev/go-bootstrap/internal/database"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/router"
)

// ErrNilInstance is returned when a constructor returns a nil instance
// (including a typed nil pointer) without an error.
var ErrNilInstance = errors.New("constructor returned nil instance")

// Container resolves each controller once and caches the instance.
type Container struct {
	mu        sync.Mutex
	instances map[*router.Controller]any
	deps      router.Deps
}

// NewContainer returns a container handing registry and log to constructors.
func NewContainer(registry *database.Registry, log *logger.Logger) *Container {
	return &Container{
		instances: make(map[*router.Controller]any),
		deps:      router.Deps{Databases: registry, Logger: log},
	}
}

// Resolve implements router.Resolver.
func (c *Container) Resolve(ctx context.Context, controller *router.Controller) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if instance, ok := c.instances[controller]; ok {
		return instance, nil
	}

	deps := c.deps
	if deps.Logger != nil {
		deps.Logger = deps.Logger.Named(controller.Name())
	}

	instance, err := controller.Construct(ctx, deps)
	if err != nil {
		return nil, fmt.Errorf("error constructing %s: %w", controller.Name(), err)
	}
	if isNil(instance) {
		return nil, fmt.Errorf("%w: %s", ErrNilInstance, controller.Name())
	}

	c.instances[controller] = instance
	return instance, nil
}

// Len returns the number of cached instances.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.instances)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
