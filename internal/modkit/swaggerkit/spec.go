package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	perr "interestd/internal/platform/errors"
)

const errorRef = "#/components/schemas/ErrorResponse"

// defaultErrors are added to every operation that does not document its own
var defaultErrors = []struct {
	status int
	code   perr.ErrorCode
	msg    string
}{
	{http.StatusBadRequest, perr.ErrorCodeValidation, "articleId must be at most 256"},
	{http.StatusUnauthorized, perr.ErrorCodeUnauthorized, "missing bearer token"},
	{http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered"},
}

// decorate rewrites a generated swagger doc for the UI: OAS 3.0.3 with
// servers at base, the error envelope schema and default error responses
func decorate(raw []byte, base string) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	// the UI renders 3.0 only
	delete(doc, "swagger")
	if v, _ := doc["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": base}}
	}

	schemas := child(child(doc, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema()
	}

	paths, _ := doc["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for _, d := range defaultErrors {
				code := strconv.Itoa(d.status)
				if _, ok := resps[code]; ok {
					continue
				}
				text := http.StatusText(d.status)
				resps[code] = map[string]any{
					"description": text,
					"content": map[string]any{"application/json": map[string]any{
						"schema": map[string]any{"$ref": errorRef},
						"example": map[string]any{
							"status_code": d.status,
							"status":      text,
							"code":        d.code,
							"error":       d.msg,
						},
					}},
				}
			}
		}
	}
	return json.Marshal(doc)
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	if c, ok := m[key].(map[string]any); ok {
		return c
	}
	c := map[string]any{}
	m[key] = c
	return c
}

func errorSchema() map[string]any {
	prop := func(typ string) map[string]any { return map[string]any{"type": typ} }
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"field":       prop("string"),
			"request_id":  prop("string"),
		},
		"required": []any{"status_code", "status"},
	}
}
