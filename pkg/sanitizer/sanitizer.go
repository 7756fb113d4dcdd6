package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reMongoOperators = regexp.MustCompile(`[${}]`)
	reMultiSpace     = regexp.MustCompile(`\s+`)
)

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail lowercases and trims; emails are the natural key for users
// and bookings so they must compare consistently.
func NormalizeEmail(email string) string {
	return trimAndLower(email)
}

// NormalizeSearchTerm strips characters with operator meaning in Mongo query
// documents before the term reaches a $text filter.
func NormalizeSearchTerm(term string) string {
	p := Pipeline{
		strings.TrimSpace,
		func(s string) string { return reMongoOperators.ReplaceAllString(s, "") },
		func(s string) string { return reMultiSpace.ReplaceAllString(s, " ") },
	}
	return p.Apply(term)
}

func NormalizeServiceName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeStatus(status string) string {
	return trimAndLower(status)
}
