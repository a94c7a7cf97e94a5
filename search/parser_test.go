package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputSingleLine(t *testing.T) {
	results, notice := ParseOutput("a/b/c.txt:12:hello world\n", "")

	assert.Nil(t, notice)
	require.Len(t, results, 1)
	assert.Equal(t, &SearchResult{
		File:        "a/b/c.txt",
		Line:        12,
		Label:       "c.txt : 12",
		Description: "hello world",
	}, results[0])
}

func TestParseOutputKeepsColonsInText(t *testing.T) {
	results, notice := ParseOutput("main.go:7:	url := \"http://example.com\"\n", "")

	assert.Nil(t, notice)
	require.Len(t, results, 1)
	assert.Equal(t, `url := "http://example.com"`, results[0].Description)
	assert.Equal(t, "main.go : 7", results[0].Label)
}

func TestParseOutputDropsMalformedLines(t *testing.T) {
	stdout := strings.Join([]string{
		"a/b/c.txt::hello",
		"a/b/c.txt:0:zero",
		"a/b/c.txt:x1:bad",
		"a/b/c.txt:-4:negative",
		":3:no path",
		"just text",
		"ok.go:3:kept",
	}, "\n")

	results, notice := ParseOutput(stdout, "")

	assert.Nil(t, notice)
	require.Len(t, results, 1)
	assert.Equal(t, "ok.go", results[0].File)
	assert.Equal(t, 3, results[0].Line)
}

func TestParseOutputDropsLongDescriptions(t *testing.T) {
	long := strings.Repeat("x", DefaultMaxDescriptionLength)
	almost := strings.Repeat("y", DefaultMaxDescriptionLength-1)
	stdout := "min.js:1:" + long + "\nmin.js:2:" + almost + "\n"

	results, _ := ParseOutput(stdout, "")

	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Line)
}

func TestParseOutputCountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("あ", DefaultMaxDescriptionLength-1)

	results, _ := ParseOutput("ja.txt:5:"+text, "")

	require.Len(t, results, 1)
}

func TestParserCustomLimit(t *testing.T) {
	p := Parser{MaxDescriptionLength: 5}

	results, notice := p.Parse("a:1:1234\na:2:12345\n", "")

	assert.Nil(t, notice)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Line)
}

func TestParseOutputStderrWins(t *testing.T) {
	results, notice := ParseOutput("a/b/c.txt:12:hello\n", "rg: regex parse error\n")

	assert.Empty(t, results)
	require.NotNil(t, notice)
	assert.Equal(t, NoticeError, notice.Level)
	assert.Equal(t, "rg: regex parse error", notice.Message)
}

func TestParseOutputEmpty(t *testing.T) {
	for _, stdout := range []string{"", "\n", "\n\n\n"} {
		results, notice := ParseOutput(stdout, "")

		assert.Empty(t, results)
		require.NotNil(t, notice)
		assert.Equal(t, NoticeInfo, notice.Level)
		assert.Equal(t, NoItemsMessage, notice.Message)
	}
}

func TestParseOutputAllFiltered(t *testing.T) {
	results, notice := ParseOutput("a::x\nb:0:y\n", "")

	assert.Empty(t, results)
	require.NotNil(t, notice)
	assert.Equal(t, NoticeInfo, notice.Level)
}

func TestParseOutputPreservesOrderAndDuplicates(t *testing.T) {
	stdout := "z.go:9:b\na.go:1:a\nz.go:9:b\n"

	results, _ := ParseOutput(stdout, "")

	require.Len(t, results, 3)
	assert.Equal(t, []string{"z.go : 9", "a.go : 1", "z.go : 9"},
		[]string{results[0].Label, results[1].Label, results[2].Label})
}

func TestParseOutputIsDeterministic(t *testing.T) {
	stdout := "a/b.go:1:one\nc/d.go:2: two \n"

	first, n1 := ParseOutput(stdout, "")
	second, n2 := ParseOutput(stdout, "")

	assert.Equal(t, first, second)
	assert.Equal(t, n1, n2)
}

func TestBasename(t *testing.T) {
	assert.Equal(t, "c.txt", Basename("a/b/c.txt"))
	assert.Equal(t, "c.txt", Basename("c.txt"))
	assert.Equal(t, "", Basename("dir/"))
}
