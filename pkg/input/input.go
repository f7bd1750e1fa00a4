// Package input splits free-form command arguments like
//
//	add Buy milk due:tomorrow pro:Groceries
//
// into a task name and key:value metadata, expanding unambiguous key
// prefixes.
package input

import (
	"fmt"
	"strings"
)

type Parsed struct {
	Name     string
	Metadata map[string]string
}

// Parse splits args into name words and key:value metadata. A token
// with an empty key (":foo") is part of the name.
func Parse(args []string) Parsed {
	var nameParts []string
	metadata := map[string]string{}

	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, ":"); ok && key != "" {
			metadata[key] = value
			continue
		}
		nameParts = append(nameParts, arg)
	}

	return Parsed{
		Name:     strings.Join(nameParts, " "),
		Metadata: metadata,
	}
}

// ExpandKey resolves key against candidates: exact match wins, then a
// unique prefix; an ambiguous or unknown prefix is an error.
func ExpandKey(key string, candidates []string) (string, error) {
	var matches []string
	for _, c := range candidates {
		if c == key {
			return key, nil
		}
		if strings.HasPrefix(c, key) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("unknown key: %q", key)
	default:
		return "", fmt.Errorf("ambiguous key: %q matches %v", key, matches)
	}
}
