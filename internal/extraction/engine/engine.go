// Package engine implements the deterministic, dependency-free extraction
// path. It is the final stage of the provider cascade and must always
// produce a usable result from text alone.
package engine

import (
	"context"
	"regexp"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
	"github.com/talentflow/talentflow-backend/internal/extraction/normalizer"
)

const maxExperienceEntries = 3

// dateRange matches spans like "2018 - 2020" or "2020-Present"
var dateRange = regexp.MustCompile(`(?i)\d{4}\s*[-–]\s*(?:\d{4}|present)`)

// companyTrim strips list markers and separators left over once the date
// range is removed from a line.
const companyTrim = " \t-–/|,:;.•*"

// Engine classifies résumé text with regex patterns and ordered keyword
// dictionaries. It never fails.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) Name() string {
	return "regex"
}

// Extract produces a full ExtractionResult from the canonical text. All
// keyword matching runs against the lowercase matchable view; experience
// mining reads the canonical text so literal durations survive.
func (e *Engine) Extract(_ context.Context, text string) (*domain.ExtractionResult, error) {
	matchable := normalizer.Matchable(text)

	level := extractEducationLevel(matchable)
	fields := extractFieldsOfStudy(matchable)
	country := extractCountry(matchable)
	skills := extractSkills(matchable)
	experience := extractExperience(text)

	confidence := 50
	if level != domain.DefaultEducationLevel {
		confidence += 10
	}
	if fields[0] != domain.DefaultField {
		confidence += 20
	}
	if country != domain.DefaultCountry {
		confidence += 10
	}
	if len(skills) > 0 {
		confidence += 10
	}

	return &domain.ExtractionResult{
		EducationLevel: level,
		FieldOfStudy:   fields,
		Country:        country,
		Skills:         skills,
		Experience:     experience,
		Education:      nil,
		Confidence:     confidence,
	}, nil
}

// extractEducationLevel walks the precedence table top-down; the first
// matching pattern wins so a résumé mentioning both a bachelor's and a PhD
// resolves to the higher credential.
func extractEducationLevel(matchable string) string {
	for _, entry := range educationLevels {
		if entry.Pattern.MatchString(matchable) {
			return entry.Level
		}
	}
	return domain.DefaultEducationLevel
}

// extractFieldsOfStudy collects matching categories in table order,
// truncated to the first two.
func extractFieldsOfStudy(matchable string) []string {
	var fields []string
	for _, cat := range fieldCategories {
		for _, kw := range cat.Keywords {
			if strings.Contains(matchable, kw) {
				fields = append(fields, cat.Label)
				break
			}
		}
		if len(fields) == 2 {
			break
		}
	}
	if len(fields) == 0 {
		return []string{domain.DefaultField}
	}
	return fields
}

// extractCountry returns the first country whose variant list has any
// substring match. First match wins, not best match.
func extractCountry(matchable string) string {
	for _, c := range countries {
		for _, kw := range c.Keywords {
			if strings.Contains(matchable, kw) {
				return c.Label
			}
		}
	}
	return domain.DefaultCountry
}

func extractSkills(matchable string) []string {
	var skills []string
	for _, token := range skillVocabulary {
		if strings.Contains(matchable, token) {
			skills = append(skills, capitalize(token))
		}
	}
	if skills == nil {
		skills = []string{}
	}
	return skills
}

// extractExperience mines date-range lines from the canonical text. The
// company is guessed from whatever the line holds besides the range, or from
// the previous line; position titles cannot be inferred reliably here, so the
// sentinel stands in.
func extractExperience(text string) []domain.ExperienceEntry {
	entries := []domain.ExperienceEntry{}
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		match := dateRange.FindString(line)
		if match == "" {
			continue
		}

		company := strings.Trim(strings.Replace(line, match, "", 1), companyTrim)
		if len(company) <= 3 {
			company = ""
			if i > 0 {
				prev := strings.Trim(lines[i-1], companyTrim)
				if len(prev) > 3 {
					company = prev
				}
			}
		}
		if company == "" {
			company = domain.UnknownCompany
		}

		entries = append(entries, domain.ExperienceEntry{
			Company:     company,
			Position:    domain.UnknownPosition,
			Duration:    match,
			Description: "",
		})
		if len(entries) == maxExperienceEntries {
			break
		}
	}

	return entries
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
