// Package service contains the business logic of the link station finder:
// request evaluation with its logging and metrics, and the static station
// list of the legacy endpoint.
package service

import "github.com/joeblew999/plat-linkstation/internal/linkstation"

// StationsInfo describes the static locations file.
type StationsInfo struct {
	File  string `json:"file,omitempty" doc:"Locations file name" example:"linkstations_locations.json"`
	Size  string `json:"size,omitempty" doc:"Human-readable file size" example:"1.2 KB"`
	Count int    `json:"count" doc:"Number of link stations loaded"`
	Error string `json:"error,omitempty" doc:"Load failure, if any"`
}

// StationList is the static station list with its source description.
type StationList struct {
	StationsInfo
	Stations []linkstation.LinkStationPoint `json:"stations" doc:"Link stations in file order"`
}
