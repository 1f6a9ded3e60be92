package swaggerkit

import (
	"encoding/json"
	"net/http"

	"herdpulse/internal/platform/config"
)

// SpecMutator lets modules tweak the served swagger spec
type SpecMutator func(map[string]any)

// mutators is the in process registry for spec mutators
var mutators []SpecMutator

// Register adds a spec mutator for swagger JSON
// call this from module init so it is wired automatically
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// baseSpec is the hand maintained OAS3 skeleton served to the UI
// module mutators fill in their own paths and schemas
func baseSpec() map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "HerdPulse API",
			"version": "1.0.0",
		},
		"servers": []any{
			map[string]any{"url": "/api/v1"},
		},
		"paths": map[string]any{},
		"components": map[string]any{
			"schemas": map[string]any{
				"ErrorResponse": map[string]any{
					"type":        "object",
					"description": "Standard error response",
					"properties": map[string]any{
						"status_code": map[string]any{"type": "integer", "format": "int32"},
						"status":      map[string]any{"type": "string"},
						"code":        map[string]any{"type": "integer", "format": "int32"},
						"error":       map[string]any{"type": "string"},
						"field":       map[string]any{"type": "string"},
						"needs":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"request_id":  map[string]any{"type": "string"},
					},
					"required": []any{"status_code", "status"},
				},
			},
			"parameters": map[string]any{
				"OwnerID": map[string]any{
					"name":     "X-Owner-ID",
					"in":       "header",
					"required": true,
					"schema":   map[string]any{"type": "string", "format": "uuid"},
				},
			},
		},
	}
}

// serveDocJSON serves swagger JSON and lets modules adjust details
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec := baseSpec()

		cfg := config.New().Prefix("CORE_API_")
		if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}
