package srt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `1
00:00:01,000 --> 00:00:02,500
Hello there.

2
00:00:03,000 --> 00:00:04,000
General Kenobi!
You are a bold one.

3
00:00:05,000 --> 00:00:06,000
42
`

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		charLimit int
		want      []string
	}{
		{
			name:      "small document stays whole",
			content:   "1\n00:00\nHello\n\n2\n00:01\nWorld\n\n",
			charLimit: 20,
			want:      []string{"1\n00:00\nHello\n\n2\n00:01\nWorld"},
		},
		{
			name:      "breaks at blank line once over the limit",
			content:   "1\n00:00\nHello\n\n2\n00:01\nWorld\n\n3\n00:02\nAgain\n",
			charLimit: 12,
			want: []string{
				"1\n00:00\nHello",
				"2\n00:01\nWorld",
				"3\n00:02\nAgain",
			},
		},
		{
			name:      "never breaks inside a block",
			content:   "1\n00:00\n" + strings.Repeat("x", 50) + "\n",
			charLimit: 10,
			want:      []string{"1\n00:00\n" + strings.Repeat("x", 50)},
		},
		{
			name:      "disabled limit returns one trimmed chunk",
			content:   "\n\n1\n00:00\nHello\n\n",
			charLimit: 0,
			want:      []string{"1\n00:00\nHello"},
		},
		{
			name:      "blank input",
			content:   "\n \n",
			charLimit: 10,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.content, tt.charLimit))
		})
	}
}

func TestSplit_Reconstructs(t *testing.T) {
	for _, limit := range []int{1, 20, 40, 80, 1000} {
		chunks := Split(sample, limit)
		require.NotEmpty(t, chunks)
		assert.Equal(t, strings.TrimSpace(sample), strings.Join(chunks, "\n\n"), "limit %d", limit)
	}
}

func TestSplit_Restartable(t *testing.T) {
	first := Split(sample, 40)
	second := Split(sample, 40)
	assert.Equal(t, first, second)
}

func TestParse(t *testing.T) {
	subs, err := Parse(strings.NewReader("\ufeff" + sample))
	require.NoError(t, err)
	require.Len(t, subs, 3)

	assert.Equal(t, 1, subs[0].Index)
	assert.Equal(t, "00:00:01,000", subs[0].Start)
	assert.Equal(t, "00:00:02,500", subs[0].End)
	assert.Equal(t, []string{"Hello there."}, subs[0].Text)

	assert.Equal(t, []string{"General Kenobi!", "You are a bold one."}, subs[1].Text)

	// a numeric first text line is text, not a new block
	assert.Equal(t, 3, subs[2].Index)
	assert.Equal(t, []string{"42"}, subs[2].Text)
}

func TestParse_NumericTextLine(t *testing.T) {
	const doc = "1\n00:00:01,000 --> 00:00:02,000\nCountdown\n10\n\n2\n00:00:03,000 --> 00:00:04,000\nGo\n"

	subs, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, []string{"Countdown", "10"}, subs[0].Text)
	assert.Equal(t, 2, subs[1].Index)
	assert.Equal(t, []string{"Go"}, subs[1].Text)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, subs))
	assert.Equal(t, doc, buf.String())
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader("just some text\nwithout timestamps\n"))
	assert.ErrorIs(t, err, ErrNoSubtitles)
}

func TestFormat(t *testing.T) {
	subs, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, subs))
	assert.Equal(t, sample, buf.String())
}
