package service

import (
	"github.com/joeblew999/plat-linkstation/internal/apperr"
	"github.com/joeblew999/plat-linkstation/internal/linkstation"
	"github.com/joeblew999/plat-linkstation/internal/logger"
	"github.com/joeblew999/plat-linkstation/internal/metrics"
)

// FinderService evaluates find requests and records their outcome. It holds
// no per-request state and is safe for concurrent use.
type FinderService struct {
	stations *StationService
	log      logger.Logger
	rec      metrics.Recorder
}

// NewFinderService creates a finder. Nil collaborators are replaced by no-op
// implementations.
func NewFinderService(stations *StationService, log logger.Logger, rec metrics.Recorder) *FinderService {
	if stations == nil {
		stations = NewStationService("")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if rec == nil {
		rec = metrics.NopRecorder{}
	}
	return &FinderService{stations: stations, log: log, rec: rec}
}

// Stations returns the static station service.
func (s *FinderService) Stations() *StationService { return s.stations }

// Find validates an untyped payload and returns the best station outcome.
func (s *FinderService) Find(p linkstation.Payload) (linkstation.Outcome, error) {
	req, err := linkstation.Validate(p)
	if err != nil {
		s.log.Debugw("find_rejected", map[string]any{"error": err.Error()})
		s.rec.RecordLookup(metrics.OutcomeInvalid, 0)
		return linkstation.Outcome{}, err
	}
	return s.evaluate(req.Device, req.Stations)
}

// FindStatic runs the legacy lookup of a device point against the static
// station list. Missing coordinates are an InsufficientData error.
func (s *FinderService) FindStatic(x, y *float64) (linkstation.Outcome, error) {
	if x == nil || y == nil {
		s.rec.RecordLookup(metrics.OutcomeInvalid, 0)
		return linkstation.Outcome{}, apperr.Insufficient()
	}
	stations, err := s.stations.List()
	if err != nil {
		s.log.Errorf("static stations: %v", err)
		s.rec.RecordLookup(metrics.OutcomeError, 0)
		return linkstation.Outcome{}, err
	}
	return s.evaluate(linkstation.DevicePoint{X: *x, Y: *y}, stations)
}

func (s *FinderService) evaluate(device linkstation.DevicePoint, stations []linkstation.LinkStationPoint) (linkstation.Outcome, error) {
	res, ok, err := linkstation.FindBestStation(device, stations)
	if err != nil {
		s.log.Errorf("find best station: %v", err)
		s.rec.RecordLookup(metrics.OutcomeError, len(stations))
		return linkstation.Outcome{}, err
	}
	out := linkstation.NewOutcome(device, res, ok)
	if ok {
		s.rec.RecordLookup(metrics.OutcomeFound, len(stations))
		s.rec.RecordPower(res.Power)
	} else {
		s.rec.RecordLookup(metrics.OutcomeNone, len(stations))
	}
	s.log.Debugw("find", map[string]any{
		"device":     linkstation.FormatPoint(device.X, device.Y),
		"candidates": len(stations),
		"found":      ok,
		"power":      res.Power,
	})
	return out, nil
}
