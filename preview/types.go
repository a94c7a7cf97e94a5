package preview

// Preview is a window of lines around a match
type Preview struct {
	File string
	// StartLine is the 1-based file line of Lines[0]
	StartLine int
	Lines     []string
	// HitLine is the 1-based index into Lines of the matched line,
	// 0 when the match lies past the end of the file
	HitLine int
}
