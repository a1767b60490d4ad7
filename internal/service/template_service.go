// internal/service/template_service.go
package service

import (
	"strings"
)

// RenderPreview substitutes {{TOKEN}} placeholders in generated copy with
// sample values, for previewing a campaign the way a recipient would see it.
// Unknown tokens are left in place.
func RenderPreview(text string, data map[string]string) string {
	result := text
	for k, v := range data {
		result = strings.ReplaceAll(result, "{{"+k+"}}", v)
	}
	return result
}

// DefaultPreviewData covers the tokens that dominate the historical sheets.
var DefaultPreviewData = map[string]string{
	"FIRST_NAME":  "Ravi",
	"NAME":        "Ravi",
	"COURSE_NAME": "SSC CGL Complete Batch",
	"EXAM_NAME":   "SSC CGL",
	"DAY":         "Monday",
}
