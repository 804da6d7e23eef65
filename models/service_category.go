package models

import "strings"

// The three service categories that partition chat sessions and histories.
// Requests naming any other category are rejected with a client error.
const (
	ServicePersonalFamily   = "personal-and-family-legal-assistance"
	ServiceBusinessCriminal = "business-consumer-and-criminal-legal-assistance"
	ServiceConsultation     = "consultation"
)

var serviceCategories = map[string]struct{}{
	ServicePersonalFamily:   {},
	ServiceBusinessCriminal: {},
	ServiceConsultation:     {},
}

// IsValidServiceCategory reports whether slug is one of the fixed categories.
func IsValidServiceCategory(slug string) bool {
	_, ok := serviceCategories[slug]
	return ok
}

// ServiceCategories returns the fixed category slugs.
func ServiceCategories() []string {
	return []string{ServicePersonalFamily, ServiceBusinessCriminal, ServiceConsultation}
}

// ServiceLabel converts a category slug to the human-readable label used in
// prompts ("personal and family legal assistance").
func ServiceLabel(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}
