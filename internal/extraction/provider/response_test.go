package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/talentflow/talentflow-backend/pkg/errors"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding whitespace", in: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestDecodeResultFullResponse(t *testing.T) {
	raw := `{
		"educationLevel": "Master's",
		"fieldOfStudy": ["Computer Science"],
		"country": "Germany",
		"skills": ["Go", "Kubernetes"],
		"experience": [{"company": "Acme", "position": "Engineer", "duration": "2018 - 2020", "description": "Backend work"}],
		"education": [{"institution": "TU Berlin", "degree": "MSc", "field": "CS", "graduationYear": "2018", "gpa": "1.3"}],
		"confidence": 85
	}`

	result, err := decodeResult("openai", raw)
	require.NoError(t, err)

	assert.Equal(t, "Master's", result.EducationLevel)
	assert.Equal(t, []string{"Computer Science"}, result.FieldOfStudy)
	assert.Equal(t, "Germany", result.Country)
	assert.Equal(t, []string{"Go", "Kubernetes"}, result.Skills)
	require.Len(t, result.Experience, 1)
	assert.Equal(t, "Acme", result.Experience[0].Company)
	require.Len(t, result.Education, 1)
	assert.Equal(t, "TU Berlin", result.Education[0].Institution)
	assert.Equal(t, 85, result.Confidence)
}

func TestDecodeResultFencedResponse(t *testing.T) {
	raw := "```json\n{\"educationLevel\": \"PhD\", \"fieldOfStudy\": [\"Science\"], \"country\": \"USA\", \"skills\": [], \"experience\": [], \"confidence\": 90}\n```"

	result, err := decodeResult("gemini", raw)
	require.NoError(t, err)
	assert.Equal(t, "PhD", result.EducationLevel)
	assert.Equal(t, 90, result.Confidence)
}

func TestDecodeResultShapeCoercion(t *testing.T) {
	// Scalar where an array is expected, a bare object instead of a list,
	// numbers where strings are expected, and several missing keys
	raw := `{
		"fieldOfStudy": "Engineering",
		"skills": "Python",
		"experience": {"company": "Acme", "position": "Dev", "duration": "2019 - 2021"},
		"education": [{"institution": "MIT", "degree": "BSc", "field": "EE", "graduationYear": 2019, "gpa": 3.8}]
	}`

	result, err := decodeResult("openai", raw)
	require.NoError(t, err)

	assert.Equal(t, "Bachelor's", result.EducationLevel, "missing level defaults")
	assert.Equal(t, []string{"Engineering"}, result.FieldOfStudy)
	assert.Equal(t, "International", result.Country, "missing country defaults")
	assert.Equal(t, []string{"Python"}, result.Skills)
	require.Len(t, result.Experience, 1)
	assert.Equal(t, "Acme", result.Experience[0].Company)
	assert.Empty(t, result.Experience[0].Description)
	require.Len(t, result.Education, 1)
	assert.Equal(t, "2019", result.Education[0].GraduationYear)
	assert.Equal(t, "3.8", result.Education[0].GPA)
	assert.Equal(t, 70, result.Confidence, "missing confidence defaults")
}

func TestDecodeResultFieldLimits(t *testing.T) {
	raw := `{"educationLevel": "Bachelor's", "fieldOfStudy": ["A", "B", "C"], "country": "UK", "skills": [], "experience": [], "confidence": 150}`

	result, err := decodeResult("groq", raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, result.FieldOfStudy, "fields truncate to two")
	assert.Equal(t, 100, result.Confidence, "confidence clamps to 100")
}

func TestDecodeResultEmptyFields(t *testing.T) {
	raw := `{"educationLevel": "", "fieldOfStudy": [], "country": "", "confidence": "80"}`

	result, err := decodeResult("openai", raw)
	require.NoError(t, err)
	assert.Equal(t, "Bachelor's", result.EducationLevel)
	assert.Equal(t, []string{"General"}, result.FieldOfStudy)
	assert.Equal(t, "International", result.Country)
	assert.Equal(t, 80, result.Confidence, "numeric strings are accepted")
}

func TestDecodeResultUnknownKeysDropped(t *testing.T) {
	raw := `{"educationLevel": "PhD", "fieldOfStudy": ["Law"], "country": "France", "skills": [], "experience": [], "confidence": 75, "commentary": "sure, here you go"}`

	result, err := decodeResult("openai", raw)
	require.NoError(t, err)
	assert.Equal(t, "PhD", result.EducationLevel)
}

func TestDecodeResultMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "I could not parse the document, sorry."},
		{name: "truncated json", raw: `{"educationLevel": "PhD", "fieldOf`},
		{name: "array root", raw: `[{"educationLevel": "PhD"}]`},
		{name: "empty response", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeResult("openai", tt.raw)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrMalformedResponse))
		})
	}
}
