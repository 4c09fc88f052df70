package extractor

import (
	"fmt"
	"strings"
)

// FailureKind classifies an engine failure for the HTTP layer.
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureRateLimited
	FailureAntiBot
	FailureNotFound
)

func (k FailureKind) String() string {
	switch k {
	case FailureRateLimited:
		return "rate_limited"
	case FailureAntiBot:
		return "anti_bot"
	case FailureNotFound:
		return "not_found"
	default:
		return "generic"
	}
}

// Rule maps a lower-case substring of the engine's error output to a
// failure kind. Rules are checked in order; first match wins.
type Rule struct {
	Pattern string
	Kind    FailureKind
}

// DefaultRules covers the blocking signatures yt-dlp is known to emit.
// Matching free-text error output is a heuristic: if the engine's
// wording changes, the failure degrades to FailureGeneric.
var DefaultRules = []Rule{
	{"too many requests", FailureRateLimited},
	{"http error 429", FailureRateLimited},
	{"rate-limit", FailureRateLimited},
	{"sign in to confirm", FailureAntiBot},
	{"not a bot", FailureAntiBot},
	{"captcha", FailureAntiBot},
	{"video unavailable", FailureNotFound},
	{"http error 404", FailureNotFound},
}

// Classify matches message against rules and returns the first hit,
// or FailureGeneric when nothing matches
func Classify(rules []Rule, message string) FailureKind {
	lower := strings.ToLower(message)
	for _, rule := range rules {
		if strings.Contains(lower, rule.Pattern) {
			return rule.Kind
		}
	}
	return FailureGeneric
}

// Error is a classified engine failure. Message holds the raw engine
// output for diagnostics.
type Error struct {
	Kind    FailureKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Message)
}
