package bdd

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ScenarioName derives a display name from a scenario method name: the
// prefix is stripped, the rest is split on underscores and camel-case
// boundaries, and every word is capitalized.
//
//	ScenarioName("Scenario_add_two_numbers", "Scenario") == "Add Two Numbers"
//	ScenarioName("ScenarioAddTwoNumbers", "Scenario")    == "Add Two Numbers"
func ScenarioName(method, prefix string) string {
	rest := strings.TrimPrefix(method, prefix)
	var words []string
	for _, part := range strings.Split(rest, "_") {
		words = append(words, splitCamel(part)...)
	}
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	rs := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(rs); i++ {
		prev, cur := rs[i-1], rs[i]
		if !unicode.IsUpper(cur) {
			continue
		}
		acronymEnd := unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
		if unicode.IsLower(prev) || unicode.IsDigit(prev) || acronymEnd {
			words = append(words, string(rs[start:i]))
			start = i
		}
	}
	if start < len(rs) {
		words = append(words, string(rs[start:]))
	}
	return words
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:]
}
