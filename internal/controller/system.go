package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-bootstrap/internal/database"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/middleware"
	"github.com/MKhiriev/go-bootstrap/internal/router"
	"github.com/MKhiriev/go-bootstrap/internal/utils"
	"github.com/MKhiriev/go-bootstrap/models"
)

// InfoStore keeps application key/value pairs.
type InfoStore interface {
	Put(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

// System serves the /system endpoints.
type System struct {
	build     models.AppBuildInfo
	databases *database.Registry
	info      InfoStore

	logger *logger.Logger
}

// NewSystem records the build version and commit in info (when set) and
// returns the controller. It runs after the databases are connected.
func NewSystem(ctx context.Context, build models.AppBuildInfo, info InfoStore, deps router.Deps) (*System, error) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	if info != nil {
		for key, value := range map[string]string{
			"version": build.BuildVersion(),
			"commit":  build.BuildCommit(),
		} {
			if err := info.Put(ctx, key, value); err != nil {
				return nil, fmt.Errorf("error recording build info: %w", err)
			}
		}
	}

	return &System{
		build:     build,
		databases: deps.Databases,
		info:      info,
		logger:    log,
	}, nil
}

// SystemController describes the system controller. guard protects the
// echo endpoint and may be nil.
func SystemController(build models.AppBuildInfo, info InfoStore, guard middleware.Middleware) *router.Controller {
	return router.Define("system", "/system", func(ctx context.Context, deps router.Deps) (*System, error) {
		return NewSystem(ctx, build, info, deps)
	}).
		Get("/version", (*System).Version).
		Get("/databases", (*System).Databases).
		Get("/info", (*System).Info).
		Post("/echo", (*System).Echo, guard).
		Build()
}

// Version writes the build information.
func (s *System) Version(w http.ResponseWriter, _ *http.Request) error {
	_, err := utils.WriteJSON(w, s.build.Response(), http.StatusOK)
	return err
}

// Databases writes the connected databases and their models.
func (s *System) Databases(w http.ResponseWriter, _ *http.Request) error {
	info := []models.DatabaseInfo{}
	if s.databases != nil {
		info = s.databases.Info()
	}
	_, err := utils.WriteJSON(w, info, http.StatusOK)
	return err
}

// Info writes the stored app_info pairs.
func (s *System) Info(w http.ResponseWriter, r *http.Request) error {
	if s.info == nil {
		return ErrNoInfoStore
	}

	info, err := s.info.All(r.Context())
	if err != nil {
		return err
	}
	_, err = utils.WriteJSON(w, info, http.StatusOK)
	return err
}

// Echo writes the parsed JSON body back, together with the token subject
// when the route is guarded.
func (s *System) Echo(w http.ResponseWriter, r *http.Request) error {
	var payload any
	if err := middleware.DecodeJSON(r, &payload); err != nil {
		return err
	}

	resp := map[string]any{"body": payload}
	if subject, ok := utils.GetSubjectFromContext(r.Context()); ok {
		resp["subject"] = subject
	}

	logger.FromRequest(r).Debug().Msg("echoing request body")
	_, err := utils.WriteJSON(w, resp, http.StatusOK)
	return err
}
