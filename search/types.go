package search

// SearchResult represents a single selectable match parsed from ripgrep output
type SearchResult struct {
	File        string // path as printed by rg, relative to the root unless rg was given an absolute path
	Line        int    // 1-based
	Label       string // "<basename> : <line>"
	Description string // matched line text, trimmed
}

// NoticeLevel tells the host how to present a Notice
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

func (l NoticeLevel) String() string {
	if l == NoticeError {
		return "error"
	}
	return "info"
}

// Notice is a user-facing message produced by a search.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Output is the captured result of one ripgrep run
type Output struct {
	Stdout string
	Stderr string
}
