package ai

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert code reviewer. Analyze the provided code and return your findings in a structured JSON format."

// buildPrompt constructs the deterministic review prompt embedding the code
// and the exact JSON shape the pipeline expects back.
func buildPrompt(code, language string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Please analyze the following %s code and provide a comprehensive review.\n\n", language)
	fmt.Fprintf(&sb, "CODE:\n```%s\n%s\n```\n\n", language, code)
	sb.WriteString(`Provide your analysis in this JSON format:
{
    "overall_quality_score": 8.5,
    "summary": "Brief overall assessment",
    "strengths": ["List of code strengths"],
    "issues": [
        {
            "severity": "critical|major|minor",
            "category": "bug|security|performance|style|structure|best_practice|documentation",
            "title": "Issue title",
            "description": "Detailed description",
            "line_number": 10,
            "suggestion": "How to fix it",
            "confidence": 0.9
        }
    ],
    "suggestions": [
        {
            "category": "performance|structure|best_practice",
            "title": "Suggestion title",
            "description": "Detailed suggestion",
            "impact": "high|medium|low"
        }
    ],
    "code_metrics": {
        "readability_score": 8.0,
        "maintainability_score": 7.5,
        "performance_score": 8.5,
        "security_score": 9.0
    }
}

Focus on:
1. Code quality and best practices
2. Potential bugs or logical errors
3. Security vulnerabilities
4. Performance optimizations
5. Code structure and readability
6. Documentation quality

Return valid JSON only, no markdown fencing or explanation.`)

	return sb.String()
}

// stripFences removes a surrounding markdown code fence if the model added
// one despite the instructions.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	if parts := strings.SplitN(text, "\n", 2); len(parts) > 1 {
		text = parts[1]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
