package acceptance

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDanglingAnd reports an AND step with no step before it in its
// scenario.
var ErrDanglingAnd = errors.New("AND without a preceding step")

// isSeparatorLine returns true if the line consists only of ;= characters.
func isSeparatorLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	for _, c := range trimmed {
		if c != ';' && c != '=' {
			return false
		}
	}
	return true
}

// isDescriptionLine returns true if the line is a ; comment (not a separator).
func isDescriptionLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, ";") && !isSeparatorLine(trimmed)
}

// parseKeyword extracts a step keyword and the remaining text from a line.
// Keywords match in any case but must be followed by whitespace or the end
// of the line. Returns an empty keyword otherwise.
func parseKeyword(line string) (keyword, text string) {
	trimmed := strings.TrimSpace(line)
	for _, kw := range []string{KeywordGiven, KeywordWhen, KeywordThen, KeywordAnd} {
		if len(trimmed) < len(kw) || !strings.EqualFold(trimmed[:len(kw)], kw) {
			continue
		}
		rest := trimmed[len(kw):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		return kw, strings.TrimSpace(rest)
	}
	return "", ""
}

// ParseSpec parses a GWT spec file's content into a Feature.
// It handles ;=== separators, ; comment lines, GIVEN/WHEN/THEN/AND keywords,
// empty lines, and multi-scenario files. This is a pure function with no I/O.
func ParseSpec(content string, sourcePath string) (*Feature, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")

	feature := &Feature{
		SourceFile: sourcePath,
	}

	// Looking for the description after an opening separator.
	expectDescription := false

	for i, line := range lines {
		lineNum := i + 1

		if isSeparatorLine(line) {
			expectDescription = !expectDescription
			continue
		}

		if expectDescription && isDescriptionLine(line) {
			desc := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ";"))
			feature.Scenarios = append(feature.Scenarios, Scenario{
				Description: desc,
				Line:        lineNum,
			})
			continue
		}

		if isDescriptionLine(line) {
			continue
		}

		keyword, text := parseKeyword(line)
		if keyword == "" {
			continue
		}
		// Steps without a scenario header go to an unnamed scenario.
		if len(feature.Scenarios) == 0 {
			feature.Scenarios = append(feature.Scenarios, Scenario{})
		}
		sc := &feature.Scenarios[len(feature.Scenarios)-1]
		step := Step{Keyword: keyword, Text: text, Line: lineNum}
		if keyword == KeywordAnd {
			if len(sc.Steps) == 0 {
				return nil, fmt.Errorf("%s:%d: %w", sourcePath, lineNum, ErrDanglingAnd)
			}
			step.Keyword = sc.Steps[len(sc.Steps)-1].Keyword
			step.And = true
		}
		sc.Steps = append(sc.Steps, step)
	}

	return feature, nil
}
