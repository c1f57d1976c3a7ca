package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-linkstation/internal/apperr"
	"github.com/joeblew999/plat-linkstation/internal/linkstation"
)

// StationService serves the static link station list used by the legacy
// find endpoint. The list is loaded once at construction and never
// modified, so concurrent readers need no locking.
type StationService struct {
	file     string
	size     int64
	stations []linkstation.LinkStationPoint
	loadErr  error
}

// NewStationService loads the locations document at file. An empty file
// path yields a service with no stations. Load failures are kept and
// returned by every read.
func NewStationService(file string) *StationService {
	s := &StationService{file: file}
	if file == "" {
		return s
	}
	s.stations, s.size, s.loadErr = loadLocations(file)
	return s
}

// Configured reports whether a locations file was given.
func (s *StationService) Configured() bool { return s.file != "" }

// List returns the static stations. A load failure is returned as a
// ConfigLoadFailure error.
func (s *StationService) List() ([]linkstation.LinkStationPoint, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]linkstation.LinkStationPoint, len(s.stations))
	copy(out, s.stations)
	return out, nil
}

// Info describes the loaded locations file.
func (s *StationService) Info() StationsInfo {
	info := StationsInfo{File: filepath.Base(s.file), Count: len(s.stations), Size: formatSize(s.size)}
	if s.file == "" {
		info.File = ""
	}
	if s.loadErr != nil {
		info.Error = s.loadErr.Error()
	}
	return info
}

// loadLocations reads a JSON or YAML document holding a "locations" list.
func loadLocations(file string) ([]linkstation.LinkStationPoint, int64, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, 0, apperr.ConfigLoad(err)
	}
	size := int64(len(data))

	var doc struct {
		Locations []json.RawMessage `json:"locations"`
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		var y map[string]any
		if err := yaml.Unmarshal(data, &y); err != nil {
			return nil, 0, apperr.ConfigLoad(fmt.Errorf("parse %s: %w", file, err))
		}
		// Re-encode so YAML and JSON entries share the same shape check.
		if data, err = json.Marshal(y); err != nil {
			return nil, 0, apperr.ConfigLoad(fmt.Errorf("parse %s: %w", file, err))
		}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, apperr.ConfigLoad(fmt.Errorf("parse %s: %w", file, err))
	}
	if doc.Locations == nil {
		return nil, 0, apperr.ConfigLoad(fmt.Errorf("%s: no locations", file))
	}

	stations := make([]linkstation.LinkStationPoint, 0, len(doc.Locations))
	for i, raw := range doc.Locations {
		st, ok := linkstation.ParseLinkStationPoint(raw)
		if !ok {
			return nil, 0, apperr.ConfigLoad(fmt.Errorf("%s: location %d is not a link station point (x, y, r)", file, i))
		}
		stations = append(stations, st)
	}
	return stations, size, nil
}

// formatSize returns a human-readable file size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
