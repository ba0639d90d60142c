package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/middleware"
)

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method     string `json:"method"`
	Pattern    string `json:"pattern"`
	Controller string `json:"controller,omitempty"`
	Handler    string `json:"handler,omitempty"`
}

// MountReport lists what Mount registered and what it skipped as duplicates.
type MountReport struct {
	Routes  []RouteInfo
	Skipped []RouteInfo
}

type boundRoute struct {
	info        RouteInfo
	handler     HandlerFunc
	middlewares []middleware.Middleware
}

type boundGroup struct {
	middlewares []middleware.Middleware
	onError     ErrorCallback
	routes      []boundRoute
}

// Mount resolves the controllers of groups and registers their routes on r in
// declaration order. Every controller is resolved before the first route is
// registered, so a resolver failure leaves r untouched.
func Mount(ctx context.Context, r chi.Router, groups []Group, resolver Resolver, log *logger.Logger) (MountReport, error) {
	bound, err := bindGroups(ctx, groups, resolver)
	if err != nil {
		return MountReport{}, err
	}

	var report MountReport
	seen := make(map[string]struct{})

	for _, g := range bound {
		r.Group(func(gr chi.Router) {
			gr.Use(g.middlewares...)

			for _, route := range g.routes {
				key := route.info.Method + " " + route.info.Pattern
				if _, ok := seen[key]; ok {
					log.Warn().
						Str("method", route.info.Method).
						Str("pattern", route.info.Pattern).
						Str("controller", route.info.Controller).
						Msg("route already registered by an earlier group, skipping")
					report.Skipped = append(report.Skipped, route.info)
					continue
				}
				seen[key] = struct{}{}

				gr.With(route.middlewares...).Method(route.info.Method, route.info.Pattern, endpoint(route.handler, g.onError))
				report.Routes = append(report.Routes, route.info)

				log.Debug().
					Str("method", route.info.Method).
					Str("pattern", route.info.Pattern).
					Str("handler", route.info.Controller+"."+route.info.Handler).
					Msg("route mounted")
			}
		})
	}

	return report, nil
}

func bindGroups(ctx context.Context, groups []Group, resolver Resolver) ([]boundGroup, error) {
	bound := make([]boundGroup, 0, len(groups))

	for _, g := range groups {
		bg := boundGroup{middlewares: nonNil(g.Middlewares), onError: g.onError()}

		for _, c := range g.Controllers {
			if c == nil {
				return nil, ErrNilController
			}
			if len(c.routes) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoRoutes, c.name)
			}

			instance, err := resolver.Resolve(ctx, c)
			if err != nil {
				return nil, fmt.Errorf("%w %s: %w", ErrResolve, c.name, err)
			}

			for _, entry := range c.routes {
				if !supportedMethod(entry.Method) {
					return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedMethod, entry.Method, c.name)
				}

				h, err := entry.Bind(instance)
				if err != nil {
					return nil, fmt.Errorf("error binding %s.%s: %w", c.name, entry.Name, err)
				}

				bg.routes = append(bg.routes, boundRoute{
					info: RouteInfo{
						Method:     entry.Method,
						Pattern:    JoinPattern(g.MountPath, c.prefix, entry.Path),
						Controller: c.name,
						Handler:    entry.Name,
					},
					handler:     h,
					middlewares: nonNil(entry.Middlewares),
				})
			}
		}

		bound = append(bound, bg)
	}

	return bound, nil
}

func endpoint(h HandlerFunc, onError ErrorCallback) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := middleware.WrapResponseWriter(w)

		err := h(sw, r)
		if err == nil {
			return
		}
		if err = onError(sw, r, err); err != nil {
			RespondError(sw, r, err)
		}
	})
}

// JoinPattern concatenates route parts into a chi pattern with a single
// leading slash and no doubled or trailing slashes.
func JoinPattern(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(p)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func supportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func nonNil(mws []middleware.Middleware) []middleware.Middleware {
	out := make([]middleware.Middleware, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			out = append(out, mw)
		}
	}
	return out
}

// Routes walks r and returns every registered method and pattern.
func Routes(r chi.Routes) ([]RouteInfo, error) {
	var routes []RouteInfo
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, RouteInfo{Method: method, Pattern: route})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking routes: %w", err)
	}
	return routes, nil
}
