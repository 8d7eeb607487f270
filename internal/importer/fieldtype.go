package importer

import (
	"regexp"
	"strings"
)

// FieldType is a semantic column type inferred from a header and its values.
type FieldType string

const (
	FieldTypeEmail   FieldType = "email"
	FieldTypePhone   FieldType = "phone"
	FieldTypeAddress FieldType = "address"
	FieldTypeName    FieldType = "name"
	FieldTypeCity    FieldType = "city"
	FieldTypeState   FieldType = "state"
	FieldTypeZipCode FieldType = "zipCode"
	FieldTypeUnknown FieldType = "unknown"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRegex = regexp.MustCompile(`^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)
	zipRegex   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)
)

// Keyword sets per detectable type, checked in order. First list with a
// pattern scoring 80+ wins; no cross-type score comparison.
var fieldKeywordSets = []struct {
	fieldType FieldType
	patterns  []string
}{
	{FieldTypeEmail, []string{"email", "emailaddress", "mail", "contactemail"}},
	{FieldTypePhone, []string{"phone", "phonenumber", "telephone", "mobile", "cell", "fax"}},
	{FieldTypeAddress, []string{"address", "propertyaddress", "street", "streetaddress", "addr"}},
	{FieldTypeName, []string{"name", "fullname", "firstname", "lastname", "contactname", "company"}},
}

// DetectFieldType infers the semantic type of a column from its header name
// and a sample of its values.
func DetectFieldType(columnName string, sampleValues []string) FieldType {
	normalized := nonAlphanumeric.ReplaceAllString(strings.ToLower(columnName), "")

	// Pass 1: header keyword scoring
	for _, set := range fieldKeywordSets {
		for _, pattern := range set.patterns {
			if keywordScore(normalized, pattern) >= 80 {
				return set.fieldType
			}
		}
	}

	// Pass 2: exact-name fallbacks
	switch {
	case normalized == "city":
		return FieldTypeCity
	case normalized == "state":
		return FieldTypeState
	case strings.Contains(normalized, "zip"):
		return FieldTypeZipCode
	}

	// Pass 3: validate sample values against type regexes
	if samplesMatch(sampleValues, emailRegex) {
		return FieldTypeEmail
	}
	if samplesMatch(sampleValues, phoneRegex) {
		return FieldTypePhone
	}
	if samplesMatch(sampleValues, zipRegex) {
		return FieldTypeZipCode
	}

	return FieldTypeUnknown
}

// keywordScore ranks how well a normalized column name matches a pattern:
// exact match 100, column contains pattern 90, pattern contains column 80.
func keywordScore(column, pattern string) int {
	switch {
	case column == pattern:
		return 100
	case strings.Contains(column, pattern):
		return 90
	case column != "" && strings.Contains(pattern, column):
		return 80
	default:
		return 0
	}
}

// samplesMatch reports whether every non-empty sample matches the regex and
// at least one non-empty sample exists.
func samplesMatch(samples []string, re *regexp.Regexp) bool {
	matched := 0
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !re.MatchString(s) {
			return false
		}
		matched++
	}
	return matched > 0
}

// GenerateFieldMappingSuggestions detects a field type per header using up to
// maxSamples values from the sample rows. Headers that stay unknown are
// omitted from the result.
func GenerateFieldMappingSuggestions(headers []string, sampleRows []Row, maxSamples int) map[string]FieldType {
	suggestions := make(map[string]FieldType)

	for _, header := range headers {
		var samples []string
		for i, row := range sampleRows {
			if i >= maxSamples {
				break
			}
			samples = append(samples, FormatStringValue(row[header]))
		}

		if fieldType := DetectFieldType(header, samples); fieldType != FieldTypeUnknown {
			suggestions[header] = fieldType
		}
	}
	return suggestions
}

// EmailValidation summarizes an email column's values.
type EmailValidation struct {
	IsValid      bool     `json:"is_valid"`
	InvalidCount int      `json:"invalid_count"`
	ValidEmails  []string `json:"valid_emails"`
}

// ValidateEmailField classifies each non-empty value against the email regex.
// Empty values are ignored entirely.
func ValidateEmailField(values []string) EmailValidation {
	result := EmailValidation{ValidEmails: []string{}}

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if emailRegex.MatchString(v) {
			result.ValidEmails = append(result.ValidEmails, v)
		} else {
			result.InvalidCount++
		}
	}

	result.IsValid = result.InvalidCount == 0
	return result
}
