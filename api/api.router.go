// FilePath: api/api.router.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/agrotechfields/islehub/api/middleware"
	"github.com/agrotechfields/islehub/api/resources"
	"github.com/agrotechfields/islehub/internal/config"
	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/monitoring"
	"github.com/agrotechfields/islehub/internal/token"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.AuthMiddleware
	policy    *middleware.Policy
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, codec *token.Codec, monitor *monitoring.Service, cfg *config.Config) *Router {
	policy := middleware.DefaultPolicy()
	r := &Router{
		router: mux.NewRouter(),
		auth: middleware.NewAuthMiddleware(codec, svc, policy, middleware.AuthConfig{
			LegacyHeader:   cfg.Auth.LegacyHeader,
			LegacySentinel: cfg.Auth.LegacySentinel,
		}),
		policy:    policy,
		resources: resources.NewResources(svc, codec, monitor, cfg.ImageStore),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Every request passes through authentication (which tolerates missing
	// tokens) and then through the role policy for its method and path.
	r.router.Use(r.auth.Authenticate)
	r.router.Use(r.policy.Middleware)

	// mux skips registered middleware for these two, so they respond directly.
	r.router.NotFoundHandler = http.HandlerFunc(notFound)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Public
	r.router.HandleFunc("/login", r.resources.Auth.Login).Methods(http.MethodPost)
	r.router.HandleFunc("/health", r.resources.Auth.HealthCheck).Methods(http.MethodGet)
	r.router.HandleFunc("/actuator/health", r.resources.Auth.HealthCheck).Methods(http.MethodGet)
	r.router.HandleFunc("/actuator/info", r.resources.Auth.ActuatorInfo).Methods(http.MethodGet)

	// Users
	r.router.HandleFunc("/user", r.resources.Users.CreateUser).Methods(http.MethodPost)
	r.router.HandleFunc("/user", r.resources.Users.ListUsers).Methods(http.MethodGet)
	r.router.HandleFunc("/user", r.resources.Users.UpdateContextUser).Methods(http.MethodPut)
	r.router.HandleFunc("/user/isle", r.resources.Users.RegisterIsleUser).Methods(http.MethodPost)
	r.router.HandleFunc("/user/isle", r.resources.Users.UpdateIsleUser).Methods(http.MethodPut)
	r.router.HandleFunc("/user/{id}", r.resources.Users.GetUser).Methods(http.MethodGet)
	r.router.HandleFunc("/user/{id}", r.resources.Users.DeleteUser).Methods(http.MethodDelete)
	r.router.HandleFunc("/user/{id}/toggle/role", r.resources.Users.ToggleRole).Methods(http.MethodPatch)
	r.router.HandleFunc("/user/{id}/toggle/enable", r.resources.Users.ToggleEnable).Methods(http.MethodPatch)

	// Isles
	r.router.HandleFunc("/isle", r.resources.Isles.CreateIsle).Methods(http.MethodPost)
	r.router.HandleFunc("/isle", r.resources.Isles.ListIsles).Methods(http.MethodGet)
	r.router.HandleFunc("/isle/serial/{serialNumber}", r.resources.Isles.GetIsleBySerialNumber).Methods(http.MethodGet)
	r.router.HandleFunc("/isle/{id}", r.resources.Isles.GetIsle).Methods(http.MethodGet)
	r.router.HandleFunc("/isle/{id}", r.resources.Isles.UpdateIsle).Methods(http.MethodPut)
	r.router.HandleFunc("/isle/{id}", r.resources.Isles.DeleteIsle).Methods(http.MethodDelete)
	r.router.HandleFunc("/isle/toggle/{id}", r.resources.Isles.ToggleWorkingMode).Methods(http.MethodPatch)
	r.router.HandleFunc("/isle/{id}/measures", r.resources.Isles.ListIsleMeasures).Methods(http.MethodGet)

	// Measures
	r.router.HandleFunc("/measure", r.resources.Measures.CreateMeasure).Methods(http.MethodPost)
	r.router.HandleFunc("/measure", r.resources.Measures.ListMeasures).Methods(http.MethodGet)
	r.router.HandleFunc("/measure/{id}", r.resources.Measures.GetMeasure).Methods(http.MethodGet)
	r.router.HandleFunc("/measure/{id}", r.resources.Measures.UpdateMeasure).Methods(http.MethodPut)
	r.router.HandleFunc("/measure/{id}", r.resources.Measures.DeleteMeasure).Methods(http.MethodDelete)

	// Images
	r.router.HandleFunc("/image", r.resources.Images.UploadImage).Methods(http.MethodPost)
	r.router.HandleFunc("/image", r.resources.Images.ListImages).Methods(http.MethodGet)
	r.router.HandleFunc("/image/name/{name}", r.resources.Images.GetImageByName).Methods(http.MethodGet)
	r.router.HandleFunc("/image/{id}", r.resources.Images.GetImage).Methods(http.MethodGet)
	r.router.HandleFunc("/image/{id}", r.resources.Images.DeleteImage).Methods(http.MethodDelete)
}

func notFound(w http.ResponseWriter, req *http.Request) {
	writeRoutingError(w, errors.NewNotFoundError("resource not found: "+req.URL.Path, nil))
}

func methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	writeRoutingError(w, errors.NewMethodNotAllowedError("method not allowed: "+req.Method, nil))
}

func writeRoutingError(w http.ResponseWriter, apiErr *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code)
	json.NewEncoder(w).Encode(apiErr)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
