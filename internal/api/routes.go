// Package api defines the HTTP routes and handlers of the link station
// finder.
package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-linkstation/internal/apperr"
	"github.com/joeblew999/plat-linkstation/internal/linkstation"
	"github.com/joeblew999/plat-linkstation/internal/service"
)

// Version is reported by /health and the info endpoint.
const Version = "1.0.0"

// Routes under the base path.
const (
	FindPath       = "/linkstation/findLinkStationForDevice"
	LegacyFindPath = "/linkstation/find"
	StationsPath   = "/linkstation/stations"
	InfoPath       = "/info"
)

// HealthBody is the body of GET /health.
type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

// LegacyPoint is the body of the legacy find endpoint. Coordinates are
// optional in the schema so that missing ones get the legacy 422 message.
type LegacyPoint struct {
	X *float64 `json:"x,omitempty" doc:"Device x coordinate" example:"15"`
	Y *float64 `json:"y,omitempty" doc:"Device y coordinate" example:"10"`
}

// LegacyFindInput is the input of the legacy find endpoint. An absent body
// reads as missing coordinates.
type LegacyFindInput struct {
	Body *LegacyPoint `required:"false"`
}

// OutcomeOutput is the response of both find endpoints.
type OutcomeOutput struct {
	Body linkstation.Outcome
}

// StationsOutput lists the static link stations.
type StationsOutput struct {
	Body service.StationList
}

// APIHandler holds the huma-registered handlers. Methods named Register*
// are auto-discovered by huma.AutoRegister.
type APIHandler struct {
	basePath string
	finder   *service.FinderService
}

// NewAPIHandler creates the handler for routes under basePath.
func NewAPIHandler(basePath string, finder *service.FinderService) *APIHandler {
	return &APIHandler{basePath: basePath, finder: finder}
}

// RegisterHealth registers the health check route.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

// RegisterLinkStations registers the find endpoints and the static station
// listing.
func (h *APIHandler) RegisterLinkStations(api huma.API) {
	h.registerFind(api)
	huma.Get(api, h.basePath+StationsPath, h.GetStations, huma.OperationTags("linkstation"))
	huma.Post(api, h.basePath+LegacyFindPath, h.FindStatic, huma.OperationTags("linkstation"), func(op *huma.Operation) {
		op.Summary = "Find the best static link station"
		op.Description = "Legacy variant evaluating a device point against the configured station list."
	})
}

// RegisterRoutes registers every link station operation on api.
func RegisterRoutes(api huma.API, basePath string, finder *service.FinderService) {
	huma.AutoRegister(api, NewAPIHandler(basePath, finder))
}

// GetHealth reports liveness.
func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: Version}}, nil
}

// GetStations lists the static link stations with their source file.
func (h *APIHandler) GetStations(ctx context.Context, input *struct{}) (*StationsOutput, error) {
	stations := h.finder.Stations()
	list, err := stations.List()
	if err != nil {
		return nil, err
	}
	return &StationsOutput{Body: service.StationList{StationsInfo: stations.Info(), Stations: list}}, nil
}

// FindStatic evaluates a device point against the static station list. A
// device out of reach of every station is a 404.
func (h *APIHandler) FindStatic(ctx context.Context, input *LegacyFindInput) (*OutcomeOutput, error) {
	var x, y *float64
	if input.Body != nil {
		x, y = input.Body.X, input.Body.Y
	}
	out, err := h.finder.FindStatic(x, y)
	if err != nil {
		return nil, err
	}
	if !out.Found() {
		return nil, apperr.New(apperr.NotFound, http.StatusNotFound, out.Message)
	}
	return &OutcomeOutput{Body: out}, nil
}
