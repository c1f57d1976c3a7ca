package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// linkTargets maps operation paths, relative to the base path, to their
// RFC 8288 Link relations. "/health" is absolute.
var linkTargets = map[string][][2]string{
	"/health": {
		{InfoPath, "info"},
		{StationsPath, "stations"},
	},
	InfoPath: {
		{"/health", "health"},
		{StationsPath, "stations"},
	},
	StationsPath: {
		{LegacyFindPath, "find"},
		{FindPath, "find-for-device"},
	},
}

// LinkTransformer returns a huma Transformer that injects Link headers for
// the operations in linkTargets.
func LinkTransformer(basePath string) huma.Transformer {
	links := make(map[string][]string, len(linkTargets))
	abs := func(p string) string {
		if p == "/health" {
			return p
		}
		return basePath + p
	}
	for path, targets := range linkTargets {
		for _, t := range targets {
			links[abs(path)] = append(links[abs(path)], "<"+abs(t[0])+`>; rel="`+t[1]+`"`)
		}
	}
	return func(ctx huma.Context, status string, v any) (any, error) {
		op := ctx.Operation()
		if op == nil {
			return v, nil
		}
		for _, link := range links[op.Path] {
			ctx.AppendHeader("Link", link)
		}
		return v, nil
	}
}
