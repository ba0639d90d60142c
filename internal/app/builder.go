package app

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-bootstrap/internal/database"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/middleware"
	"github.com/MKhiriev/go-bootstrap/internal/router"
)

// Module is the declarative description of an application.
type Module struct {
	Databases []database.Module
	Routes    []router.Group
}

func (m Module) clone() Module {
	return Module{
		Databases: slices.Clone(m.Databases),
		Routes:    slices.Clone(m.Routes),
	}
}

// Builder configures an application before it starts. Its methods return
// the builder for chaining. A Builder is not safe for concurrent use.
type Builder struct {
	module     Module
	logger     *logger.Logger
	production bool
	plugins    []middleware.Middleware
	pipeline   middleware.Pipeline
	healthAddr string
	resolver   router.Resolver
}

// New returns a builder for module with the default pipeline: permissive
// CORS, JSON and url-encoded parsers with a 50 MB limit, and the request
// logger chosen by the production flag. A nil log discards output.
func New(module Module, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Nop()
	}

	return &Builder{
		module:   module.clone(),
		logger:   log,
		pipeline: middleware.DefaultPipeline(),
	}
}

// SetProductionMode enables production mode. Production mode cannot be
// turned off again: SetProductionMode(false) after SetProductionMode(true)
// keeps it on.
func (b *Builder) SetProductionMode(flag bool) *Builder {
	b.production = b.production || flag
	return b
}

// InstallPlugins appends handlers to the plugins installed on the router
// before the pipeline, in call order.
func (b *Builder) InstallPlugins(handlers ...middleware.Middleware) *Builder {
	for _, h := range handlers {
		if h != nil {
			b.plugins = append(b.plugins, h)
		}
	}
	return b
}

// Use installs a single plugin. See InstallPlugins.
func (b *Builder) Use(handler middleware.Middleware) *Builder {
	return b.InstallPlugins(handler)
}

// SetBodyParser replaces the parsers set in cfg and keeps the others. An
// empty cfg changes nothing.
func (b *Builder) SetBodyParser(cfg middleware.BodyParsers) *Builder {
	b.pipeline = b.pipeline.WithBodyParsers(cfg)
	return b
}

// SetCors replaces the CORS handler. nil removes it.
func (b *Builder) SetCors(handler middleware.Middleware) *Builder {
	b.pipeline.CORS = handler
	return b
}

// SetLogger replaces the request logger. nil restores the default.
func (b *Builder) SetLogger(handler middleware.Middleware) *Builder {
	b.pipeline.Logger = handler
	return b
}

// SetHealthAddress enables the gRPC health service on addr.
func (b *Builder) SetHealthAddress(addr string) *Builder {
	b.healthAddr = addr
	return b
}

// SetResolver replaces the default DI container.
func (b *Builder) SetResolver(resolver router.Resolver) *Builder {
	b.resolver = resolver
	return b
}

// Build returns an immutable snapshot of the configuration.
func (b *Builder) Build() *App {
	return &App{
		module:     b.module.clone(),
		logger:     b.logger,
		production: b.production,
		plugins:    slices.Clone(b.plugins),
		pipeline:   b.pipeline,
		healthAddr: b.healthAddr,
		resolver:   b.resolver,
	}
}

// Start is shorthand for b.Build().Start(ctx, port).
func (b *Builder) Start(ctx context.Context, port int) (*Running, error) {
	return b.Build().Start(ctx, port)
}
