package search

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxDescriptionLength is the rune count at which a match line is
	// considered pathological (minified files, binary-ish content) and dropped.
	DefaultMaxDescriptionLength = 1000

	// NoItemsMessage is shown when a search yields nothing selectable
	NoItemsMessage = "There are no items."
)

// Parser turns ripgrep `path:line:text` output into SearchResults.
// The zero value uses DefaultMaxDescriptionLength.
type Parser struct {
	MaxDescriptionLength int
}

// ParseOutput parses output with the default limits
func ParseOutput(stdout, stderr string) ([]*SearchResult, *Notice) {
	return Parser{}.Parse(stdout, stderr)
}

// Parse converts captured rg output into results.
//
// Non-empty stderr wins over stdout: no results are returned and the Notice
// carries the error text. When nothing selectable remains, an info Notice is
// returned. At most one Notice is produced. Parse performs no I/O.
func (p Parser) Parse(stdout, stderr string) ([]*SearchResult, *Notice) {
	if stderr != "" {
		return nil, &Notice{Level: NoticeError, Message: strings.TrimSpace(stderr)}
	}

	lines := strings.Split(stdout, "\n")
	results := make([]*SearchResult, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		result, ok := p.ParseLine(line)
		if !ok {
			// Skip malformed lines
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, &Notice{Level: NoticeInfo, Message: NoItemsMessage}
	}
	return results, nil
}

// ParseLine parses a single `path:line:text` line.
// It reports false for lines without a path, without a positive line
// number, or with an oversized description.
func (p Parser) ParseLine(line string) (*SearchResult, bool) {
	parts := strings.Split(line, ":")
	file := parts[0]

	var numField string
	if len(parts) > 1 {
		numField = parts[1]
	}
	var description string
	if len(parts) > 2 {
		description = strings.TrimSpace(strings.Join(parts[2:], ":"))
	}

	if utf8.RuneCountInString(description) >= p.maxDescriptionLength() {
		return nil, false
	}
	lineNum, err := strconv.Atoi(strings.TrimSpace(numField))
	if err != nil || lineNum <= 0 {
		return nil, false
	}
	if file == "" {
		return nil, false
	}

	return &SearchResult{
		File:        file,
		Line:        lineNum,
		Label:       Basename(file) + " : " + strconv.Itoa(lineNum),
		Description: description,
	}, true
}

func (p Parser) maxDescriptionLength() int {
	if p.MaxDescriptionLength > 0 {
		return p.MaxDescriptionLength
	}
	return DefaultMaxDescriptionLength
}

// Basename returns the last slash-separated segment of an rg path
func Basename(file string) string {
	segments := strings.Split(file, "/")
	return segments[len(segments)-1]
}
