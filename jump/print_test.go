package jump

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takaishi/rgjump/search"
)

func TestPrintHostPromptText(t *testing.T) {
	h := &PrintHost{In: strings.NewReader("foo bar\r\n-i baz\n")}

	q, ok, err := h.PromptText(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "foo bar", q)

	q, ok, _ = h.PromptText(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "-i baz", q)

	_, ok, err = h.PromptText(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPrintHostNoInputCancels(t *testing.T) {
	_, ok, err := (&PrintHost{}).PromptText(context.Background())

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPrintHostPrintsResults(t *testing.T) {
	var out bytes.Buffer
	h := &PrintHost{Out: &out}
	results, _ := search.ParseOutput("a/b.go:3:foo\nc.go:9:  bar: baz\n", "")

	selected, ok, err := h.PromptSelection(context.Background(), results)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, selected)
	assert.Equal(t, "a/b.go:3: foo\nc.go:9: bar: baz\n", out.String())
}

func TestPrintHostNotify(t *testing.T) {
	var errOut bytes.Buffer
	h := &PrintHost{Err: &errOut}

	h.Notify(search.Notice{Level: search.NoticeError, Message: "bad regex"})
	h.Notify(search.Notice{Level: search.NoticeInfo, Message: search.NoItemsMessage})

	assert.Equal(t, "Error: bad regex\nThere are no items.\n", errOut.String())
}

func TestPipelineWithPrintHost(t *testing.T) {
	var out, errOut bytes.Buffer
	host := &PrintHost{Out: &out, Err: &errOut}
	runner := &fakeRunner{out: search.Output{Stdout: "x.go:4:needle\n"}}
	p := &Pipeline{Host: host, Runner: runner, Navigator: &fakeNavigator{}, Query: "needle"}

	require.NoError(t, p.Loop(context.Background()))

	assert.Equal(t, "x.go:4: needle\n", out.String())
	assert.Empty(t, errOut.String())
	assert.Equal(t, []string{"."}, runner.dirs)
}
