package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-linkstation/internal/service"
)

type InfoHandler struct {
	basePath string
	stations *service.StationService
	metrics  bool
}

func NewInfoHandler(basePath string, stations *service.StationService, metrics bool) *InfoHandler {
	return &InfoHandler{basePath: basePath, stations: stations, metrics: metrics}
}

func (h *InfoHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, h.basePath+InfoPath, h.GetInfo, huma.OperationTags("health"))
}

type InfoBody struct {
	Name     string               `json:"name" doc:"Service name"`
	Version  string               `json:"version" doc:"Service version"`
	Stations service.StationsInfo `json:"stations" doc:"Static link station list"`
	Metrics  bool                 `json:"metrics" doc:"Whether /metrics is served"`
	Features []string             `json:"features" doc:"Available features"`
}

func (h *InfoHandler) GetInfo(ctx context.Context, input *struct{}) (*struct{ Body InfoBody }, error) {
	features := []string{"find"}
	if h.stations != nil && h.stations.Configured() {
		features = append(features, "static-stations")
	}
	if h.metrics {
		features = append(features, "metrics")
	}
	var info service.StationsInfo
	if h.stations != nil {
		info = h.stations.Info()
	}
	return &struct{ Body InfoBody }{Body: InfoBody{
		Name:     "plat-linkstation",
		Version:  Version,
		Stations: info,
		Metrics:  h.metrics,
		Features: features,
	}}, nil
}
