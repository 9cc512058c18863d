package provider

import (
	"fmt"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/extraction/normalizer"
)

// maxPromptChars caps the résumé text embedded in a prompt so oversized
// documents do not blow past provider context windows.
const maxPromptChars = 12000

const systemPrompt = "You are a résumé parsing engine. You read raw résumé text and return structured candidate data as a single JSON object. You never add commentary."

// buildPrompt renders the extraction instruction with a fixed output
// schema. The keys here must match the wire shape decodeResult expects.
func buildPrompt(text string) string {
	text = normalizer.Preview(text, maxPromptChars)

	var b strings.Builder
	b.WriteString("Extract the candidate profile from the résumé text below.\n\n")
	b.WriteString("Return ONLY a JSON object with exactly these keys:\n")
	b.WriteString(`{
  "educationLevel": "highest attained level, one of: High School, Bachelor's, Master's, PhD",
  "fieldOfStudy": ["one or two academic fields"],
  "country": "country the candidate is based in, or International if unclear",
  "skills": ["technical skills found in the text"],
  "experience": [
    {"company": "", "position": "", "duration": "", "description": ""}
  ],
  "education": [
    {"institution": "", "degree": "", "field": "", "graduationYear": "", "gpa": ""}
  ],
  "confidence": 85
}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- confidence is an integer 0-100 reflecting how complete the résumé is.\n")
	b.WriteString("- Use empty strings or empty arrays when information is absent, never null.\n")
	b.WriteString("- Return ONLY the JSON object. No markdown code fences, no explanations.\n\n")
	fmt.Fprintf(&b, "Résumé text:\n%s\n", text)
	return b.String()
}
