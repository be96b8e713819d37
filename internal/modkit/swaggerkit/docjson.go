package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.Mutex
	mutators []SpecMutator
)

// Register adds a mutator, modules call it from init
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// serveDocJSON reads the raw document, shapes it for the UI and writes it
func serveDocJSON(titleSuffix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		normalizeVersion(spec, "/api/v1")
		if titleSuffix != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + titleSuffix
				}
			}
		}
		ensureEnvelopeSchema(spec)
		addDefaultResponse(spec, "500", internalErrorResponse)
		addDefaultResponse(spec, "422", invalidArgumentResponse)

		mu.Lock()
		ms := append([]SpecMutator(nil), mutators...)
		mu.Unlock()
		for _, m := range ms {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalizeVersion pins the document to OAS 3.0.3, the newest the bundled UI renders,
// and adds a servers entry so relative paths resolve under the API root
func normalizeVersion(spec map[string]any, baseURL string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": baseURL}}
	}
}

// child returns m[key] as a map, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureEnvelopeSchema describes the error envelope every handler writes
func ensureEnvelopeSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["Envelope"]; ok {
		return
	}
	schemas["Envelope"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success":     map[string]any{"type": "boolean"},
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
			"data":        map[string]any{},
		},
		"required": []any{"success", "status_code", "status"},
	}
}

func envelopeResponse(desc string, example map[string]any) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/Envelope"},
				"example": example,
			},
		},
	}
}

var (
	internalErrorResponse = envelopeResponse("Internal Server Error", map[string]any{
		"success":     false,
		"status_code": 500,
		"status":      "Internal Server Error",
		"code":        1,
		"error":       "panic recovered",
		"request_id":  "host/req-000001",
	})
	invalidArgumentResponse = envelopeResponse("Unprocessable Entity", map[string]any{
		"success":     false,
		"status_code": 422,
		"status":      "Unprocessable Entity",
		"code":        7,
		"error":       "episodeId is required",
		"field":       "episodeId",
		"request_id":  "host/req-000001",
	})
)

// addDefaultResponse sets resp on every operation that does not document status itself
func addDefaultResponse(spec map[string]any, status string, resp map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		item, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range item {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			if _, exists := responses[status]; !exists {
				responses[status] = resp
			}
		}
	}
}
