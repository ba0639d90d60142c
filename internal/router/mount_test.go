package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/middleware"
	"github.com/MKhiriev/go-bootstrap/models"
)

var constructing = ResolverFunc(func(ctx context.Context, c *Controller) (any, error) {
	return c.Construct(ctx, Deps{})
})

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func setHeader(key, value string) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestMount_Dispatch(t *testing.T) {
	r := chi.NewRouter()
	report, err := Mount(context.Background(), r, []Group{
		{MountPath: "/api", Controllers: []*Controller{usersController()}},
	}, constructing, logger.Nop())
	require.NoError(t, err)
	require.Len(t, report.Routes, 3)
	assert.Empty(t, report.Skipped)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "mount path + prefix + path", method: http.MethodGet, target: "/api/users/42", wantStatus: http.StatusOK, wantBody: "hello user 42"},
		{name: "root path of controller", method: http.MethodGet, target: "/api/users", wantStatus: http.StatusOK, wantBody: "hello users"},
		{name: "wrong method", method: http.MethodDelete, target: "/api/users/42", wantStatus: http.StatusMethodNotAllowed},
		{name: "missing mount path", method: http.MethodGet, target: "/users/42", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(r, tt.method, tt.target)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestMount_FallbackAfterGroups(t *testing.T) {
	r := chi.NewRouter()
	_, err := Mount(context.Background(), r, []Group{{Controllers: []*Controller{usersController()}}}, constructing, logger.Nop())
	require.NoError(t, err)
	r.NotFound(middleware.Fallback)
	r.MethodNotAllowed(middleware.Fallback)

	for _, rr := range []*httptest.ResponseRecorder{do(r, http.MethodGet, "/nope"), do(r, http.MethodPut, "/users/1")} {
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		assert.Contains(t, rr.Body.String(), middleware.MsgInvalidRequest)
	}
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/users/1").Code)
}

// TestMount_DeclaredFirstWins registers the same method and pattern from two
// groups; the first declaration must keep serving.
func TestMount_DeclaredFirstWins(t *testing.T) {
	first := Define("first", "/ping", func(context.Context, Deps) (*users, error) {
		return &users{greeting: "first"}, nil
	}).Get("/", (*users).List).Build()
	second := Define("second", "/ping", func(context.Context, Deps) (*users, error) {
		return &users{greeting: "second"}, nil
	}).Get("/", (*users).List).Post("/", (*users).List).Build()

	var buf bytes.Buffer
	r := chi.NewRouter()
	report, err := Mount(context.Background(), r, []Group{
		{Controllers: []*Controller{first}},
		{Controllers: []*Controller{second}},
	}, constructing, logger.New("test", &buf))
	require.NoError(t, err)

	assert.Equal(t, "first users", do(r, http.MethodGet, "/ping").Body.String())
	assert.Equal(t, "second users", do(r, http.MethodPost, "/ping").Body.String())

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, RouteInfo{Method: http.MethodGet, Pattern: "/ping", Controller: "second", Handler: "List"}, report.Skipped[0])
	assert.Contains(t, buf.String(), "skipping")
}

func TestMount_DefaultErrorForwarding(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("test", &buf)

	r := chi.NewRouter()
	r.Use(middleware.TraceID(log))
	_, err := Mount(context.Background(), r, []Group{{Controllers: []*Controller{usersController()}}}, constructing, log)
	require.NoError(t, err)

	rr := do(r, http.MethodPost, "/users/fail")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, resp.Error.Status)
	assert.Contains(t, buf.String(), errBoom.Error())
}

func TestMount_GroupErrorCallback(t *testing.T) {
	tests := []struct {
		name       string
		onError    ErrorCallback
		wantStatus int
	}{
		{
			name: "callback answers",
			onError: func(w http.ResponseWriter, r *http.Request, err error) error {
				w.WriteHeader(http.StatusTeapot)
				return nil
			},
			wantStatus: http.StatusTeapot,
		},
		{
			name: "callback replaces error",
			onError: func(w http.ResponseWriter, r *http.Request, err error) error {
				return errors.New("replaced")
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "callback writes and forwards",
			onError: func(w http.ResponseWriter, r *http.Request, err error) error {
				w.WriteHeader(http.StatusConflict)
				return err
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			_, err := Mount(context.Background(), r, []Group{
				{Controllers: []*Controller{usersController()}, OnError: tt.onError},
			}, constructing, logger.Nop())
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, do(r, http.MethodPost, "/users/fail").Code)
		})
	}
}

func TestMount_MiddlewareOrder(t *testing.T) {
	c := Define("users", "/users", newUsers).
		Get("/guarded", (*users).List, setHeader("X-Order", "route")).
		Get("/open", (*users).List).
		Build()

	r := chi.NewRouter()
	_, err := Mount(context.Background(), r, []Group{
		{MountPath: "/v1", Middlewares: []middleware.Middleware{setHeader("X-Order", "group"), nil}, Controllers: []*Controller{c}},
		{MountPath: "/v2", Controllers: []*Controller{c}},
	}, constructing, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"group", "route"}, do(r, http.MethodGet, "/v1/users/guarded").Header().Values("X-Order"))
	assert.Equal(t, []string{"group"}, do(r, http.MethodGet, "/v1/users/open").Header().Values("X-Order"))
	assert.Empty(t, do(r, http.MethodGet, "/v2/users/open").Header().Values("X-Order"))
}

func TestMount_Failures(t *testing.T) {
	errResolver := errors.New("no such service")

	tests := []struct {
		name     string
		groups   []Group
		resolver Resolver
		wantErr  error
	}{
		{
			name:     "resolver failure",
			groups:   []Group{{Controllers: []*Controller{usersController()}}},
			resolver: ResolverFunc(func(context.Context, *Controller) (any, error) { return nil, errResolver }),
			wantErr:  ErrResolve,
		},
		{
			name:     "controller without routes",
			groups:   []Group{{Controllers: []*Controller{Define("empty", "", newUsers).Build()}}},
			resolver: constructing,
			wantErr:  ErrNoRoutes,
		},
		{
			name:     "nil controller",
			groups:   []Group{{Controllers: []*Controller{nil}}},
			resolver: constructing,
			wantErr:  ErrNilController,
		},
		{
			name:     "instance of another type",
			groups:   []Group{{Controllers: []*Controller{usersController()}}},
			resolver: ResolverFunc(func(context.Context, *Controller) (any, error) { return struct{}{}, nil }),
			wantErr:  ErrControllerTypeMismatch,
		},
		{
			name:     "unsupported method",
			groups:   []Group{{Controllers: []*Controller{Define("odd", "", newUsers).Handle("BREW", "/", (*users).List).Build()}}},
			resolver: constructing,
			wantErr:  ErrUnsupportedMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			// the first group is valid, nothing may be registered anyway
			groups := append([]Group{{MountPath: "/ok", Controllers: []*Controller{usersController()}}}, tt.groups...)

			_, err := Mount(context.Background(), r, groups, tt.resolver, logger.Nop())

			assert.ErrorIs(t, err, tt.wantErr)
			routes, walkErr := Routes(r)
			require.NoError(t, walkErr)
			assert.Empty(t, routes)
		})
	}
}

func TestMount_NoGroups(t *testing.T) {
	r := chi.NewRouter()
	report, err := Mount(context.Background(), r, nil, constructing, logger.Nop())

	require.NoError(t, err)
	assert.Empty(t, report.Routes)
}

func TestRoutes_Walk(t *testing.T) {
	r := chi.NewRouter()
	_, err := Mount(context.Background(), r, []Group{{MountPath: "/api", Controllers: []*Controller{usersController()}}}, constructing, logger.Nop())
	require.NoError(t, err)

	routes, err := Routes(r)
	require.NoError(t, err)

	var got []string
	for _, route := range routes {
		got = append(got, route.Method+" "+route.Pattern)
	}
	assert.ElementsMatch(t, []string{"GET /api/users", "GET /api/users/{id}", "POST /api/users/fail"}, got)
}

func TestJoinPattern(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{parts: []string{"", "", ""}, want: "/"},
		{parts: []string{"/api", "/users", "/"}, want: "/api/users"},
		{parts: []string{"api/", "users", "{id}"}, want: "/api/users/{id}"},
		{parts: []string{"", "/system", "/version"}, want: "/system/version"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.parts, "|"), func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPattern(tt.parts...))
		})
	}
}
