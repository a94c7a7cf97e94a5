package preview

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const (
	DefaultBefore = 5
	DefaultAfter  = 10

	maxLineBytes = 1024 * 1024
)

// LoadPreview reads the lines around lineNum (1-based) with the default window
func LoadPreview(file string, lineNum int) (*Preview, error) {
	return Load(file, lineNum, DefaultBefore, DefaultAfter)
}

// Load reads up to before lines above and after lines below lineNum.
// Reading stops at the end of the window, so large files are not read in full.
func Load(file string, lineNum, before, after int) (*Preview, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	startLine := lineNum - before
	if startLine < 1 {
		startLine = 1
	}
	endLine := lineNum + after

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lines := make([]string, 0, endLine-startLine+1)
	for current := 1; current <= endLine && scanner.Scan(); current++ {
		if current < startLine {
			continue
		}
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	hit := lineNum - startLine + 1
	if hit > len(lines) {
		hit = 0
	}

	return &Preview{
		File:      file,
		StartLine: startLine,
		Lines:     lines,
		HitLine:   hit,
	}, nil
}
