package hive

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

// suggestionLimit is how many edits a typo may be from a resource name and
// still be suggested
func suggestionLimit(length int) int {
	if length <= 5 {
		return 1
	}
	return 2
}

// ParseResource resolves a user-supplied resource name. Case and surrounding
// space are ignored. Unknown names wrap domain.ErrUnsupportedResource and
// carry a suggestion when one is close enough.
func ParseResource(name string) (domain.ResourceKind, error) {
	kind := domain.ResourceKind(strings.ToLower(strings.TrimSpace(name)))
	if kind.Valid() {
		return kind, nil
	}
	if s := SuggestResource(name); s != "" {
		return "", fmt.Errorf("%w: %q (did you mean %q?)", domain.ErrUnsupportedResource, name, s)
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedResource, name)
}

// SuggestResource returns the resource name closest to name, or "" if none
// is within a couple of edits
func SuggestResource(name string) string {
	token := strings.ToLower(strings.TrimSpace(name))
	if token == "" {
		return ""
	}

	best, bestDist := "", -1
	for _, kind := range domain.ResourceKinds {
		cand := string(kind)
		if strings.HasPrefix(cand, token) && len(token) >= 2 {
			return cand
		}
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}
