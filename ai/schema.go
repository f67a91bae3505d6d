package ai

import (
	"github.com/xeipuuv/gojsonschema"
)

// reviewSchema is the contract the model response must satisfy to be
// accepted as a structured review. Anything that fails validation is wrapped
// as an unstructured summary instead.
const reviewSchema = `{
    "type": "object",
    "required": ["summary"],
    "properties": {
        "overall_quality_score": {"type": "number", "minimum": 0, "maximum": 10},
        "summary": {"type": "string"},
        "strengths": {"type": "array", "items": {"type": "string"}},
        "issues": {
            "type": "array",
            "items": {
                "type": "object",
                "required": ["title"],
                "properties": {
                    "severity": {"type": "string"},
                    "category": {"type": "string"},
                    "title": {"type": "string"},
                    "description": {"type": "string"},
                    "line_number": {"type": "integer"},
                    "suggestion": {"type": "string"},
                    "confidence": {"type": "number", "minimum": 0, "maximum": 1}
                }
            }
        },
        "suggestions": {
            "type": "array",
            "items": {
                "type": "object",
                "required": ["title"],
                "properties": {
                    "category": {"type": "string"},
                    "title": {"type": "string"},
                    "description": {"type": "string"},
                    "impact": {"type": "string"}
                }
            }
        },
        "code_metrics": {
            "type": "object",
            "properties": {
                "readability_score": {"type": "number"},
                "maintainability_score": {"type": "number"},
                "performance_score": {"type": "number"},
                "security_score": {"type": "number"}
            }
        }
    }
}`

var compiledSchema = gojsonschema.NewStringLoader(reviewSchema)

// validateReview checks a candidate JSON document against the review
// contract. A schema-engine failure (e.g. the candidate is not JSON at all)
// counts as invalid.
func validateReview(document string) bool {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewStringLoader(document))
	if err != nil {
		return false
	}
	return result.Valid()
}
