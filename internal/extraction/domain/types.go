package domain

import "time"

// DocumentFormat is the declared format of an uploaded résumé
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
	FormatDOC  DocumentFormat = "doc"
	FormatRTF  DocumentFormat = "rtf"
	FormatODT  DocumentFormat = "odt"
	FormatTXT  DocumentFormat = "txt"
)

// Valid reports whether the format has a decoder
func (f DocumentFormat) Valid() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatDOC, FormatRTF, FormatODT, FormatTXT:
		return true
	}
	return false
}

// Education level labels. Every extraction path resolves to exactly one of
// these; DefaultEducationLevel is used when nothing matches.
const (
	LevelHighSchool = "High School"
	LevelBachelors  = "Bachelor's"
	LevelMasters    = "Master's"
	LevelPhD        = "PhD"
)

const (
	DefaultEducationLevel = LevelBachelors
	DefaultField          = "General"
	DefaultCountry        = "International"

	UnknownCompany  = "Unknown Company"
	UnknownPosition = "Unknown Position"

	// DefaultConfidence stands in when a model omits the confidence score
	DefaultConfidence = 70
	// FallbackConfidence is the fixed score of the safe-default placeholder
	FallbackConfidence = 30
)

// TextPreviewLimit bounds the preview attached to a parse result
const TextPreviewLimit = 2000

// ExperienceEntry is one mined or model-reported work engagement
type ExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// EducationEntry is reported by the model path only; the regex engine
// leaves the list empty.
type EducationEntry struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationYear string `json:"graduationYear"`
	GPA            string `json:"gpa"`
}

// ExtractionResult is the single output type of every extraction path.
// Exactly one path (a model provider or the regex engine) produces it;
// results are never merged.
type ExtractionResult struct {
	EducationLevel string            `json:"educationLevel"`
	FieldOfStudy   []string          `json:"fieldOfStudy"`
	Country        string            `json:"country"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Confidence     int               `json:"confidence"`
}

// ParseOutput wraps an ExtractionResult with the pipeline-level fields
type ParseOutput struct {
	ExtractionResult
	TextPreview string `json:"textPreview"`
	Fallback    bool   `json:"_fallback,omitempty"`
}

// SafeDefault is the fixed placeholder returned when an unclassified failure
// occurs anywhere in the pipeline. The feature must never hard-fail a
// user-facing upload merely because extraction could not produce an answer.
func SafeDefault() *ParseOutput {
	return &ParseOutput{
		ExtractionResult: ExtractionResult{
			EducationLevel: DefaultEducationLevel,
			FieldOfStudy:   []string{DefaultField},
			Country:        DefaultCountry,
			Skills:         []string{},
			Experience:     []ExperienceEntry{},
			Confidence:     FallbackConfidence,
		},
		TextPreview: "",
		Fallback:    true,
	}
}

// ClampConfidence bounds a confidence score to [0,100]
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// ExtractionStatus represents the processing state of an extraction job
type ExtractionStatus string

const (
	StatusProcessing ExtractionStatus = "processing"
	StatusCompleted  ExtractionStatus = "completed"
	StatusFailed     ExtractionStatus = "failed"
)

// ExtractionJob is the polling handle for an asynchronous parse
type ExtractionJob struct {
	JobID     string           `json:"job_id"`
	Status    ExtractionStatus `json:"status"`
	Format    DocumentFormat   `json:"format"`
	Result    *ParseOutput     `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
