// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestDistance is the largest edit distance still offered as a
// suggestion. Three catches transpositions and dropped or extra
// characters without proposing unrelated names.
const maxSuggestDistance = 3

// suggestCommand returns the name of the closest matching subcommand,
// or "" if nothing is close enough.
func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, len(commands))
	for i, command := range commands {
		names[i] = command.Name
	}
	return closest(unknown, names)
}

// suggestFlag finds the first flag in args that flagSet does not define
// and returns the closest defined flag, formatted with its -- or -
// prefix. Returns "" if there is no good suggestion.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var long, short []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		long = append(long, f.Name)
		if f.Shorthand != "" {
			short = append(short, f.Shorthand)
		}
	})

	for _, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			continue
		}

		isLong := strings.HasPrefix(arg, "--")
		name := strings.TrimLeft(arg, "-")
		if index := strings.IndexByte(name, '='); index >= 0 {
			name = name[:index]
		}

		if isLong {
			if flagSet.Lookup(name) != nil {
				continue
			}
			if best := closest(name, long); best != "" {
				return "--" + best
			}
			return ""
		}

		// A shorthand cluster like -xc: the first unknown letter is
		// the culprit. Suggest a long flag that starts with it.
		for _, letter := range name {
			if flagSet.ShorthandLookup(string(letter)) != nil {
				continue
			}
			for _, candidate := range long {
				if strings.HasPrefix(candidate, string(letter)) {
					return "--" + candidate
				}
			}
			return ""
		}
	}

	return ""
}

// closest returns the candidate with the smallest edit distance to
// target, if that distance is at most maxSuggestDistance.
func closest(target string, candidates []string) string {
	bestName := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range candidates {
		if distance := levenshtein(target, candidate); distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}
	return bestName
}

// levenshtein computes the Levenshtein edit distance between two
// strings, using a single row of the distance matrix.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}
		previous, current = current, previous
	}

	return previous[len(a)]
}
