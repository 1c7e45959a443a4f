package translation

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/scribe-api/internal/models"
)

func texts(segs []models.Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Text
	}
	return out
}

func nonSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLength int
		want      []string
	}{
		{"empty", "", 10, []string{}},
		{"whitespace only", "  \n\t ", 10, []string{}},
		{"no terminators", "  hello world without an ending  ", 3, []string{"hello world without an ending"}},
		{"short text under limit", "One. Two.", 100, []string{"One. Two."}},
		{"ascii terminators", "A. B. C.", 3, []string{"A. B.", "C."}},
		{"cjk terminators", "你好。世界！再见", 2, []string{"你好。", "世界！", "再见"}},
		{"mixed terminators", "Why? Yes! 好的？Done.", 4, []string{"Why?", "Yes!", "好的？", "Done."}},
		{"default limit", "Sentence one. Sentence two.", 0, []string{"Sentence one. Sentence two."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.text, tt.maxLength)
			assert.Equal(t, tt.want, texts(got))
		})
	}
}

func TestSegment_Invariants(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		switch i % 4 {
		case 0:
			b.WriteString("The quick brown fox jumps over the lazy dog. ")
		case 1:
			b.WriteString("敏捷的棕色狐狸跳过了懒狗。")
		case 2:
			b.WriteString("Is that so? ")
		default:
			b.WriteString("真的吗！\n")
		}
	}
	source := b.String()
	runes := []rune(source)
	const maxLength = 120

	segs := Segment(source, maxLength)
	require.NotEmpty(t, segs)

	var joined strings.Builder
	prevEnd := 0
	for i, s := range segs {
		assert.Equal(t, i, s.Index, "indices are contiguous from zero")
		assert.NotEmpty(t, s.Text)
		assert.Equal(t, s.Text, strings.TrimSpace(s.Text))
		assert.Equal(t, len([]rune(s.Text)), s.Length)
		assert.Equal(t, s.Text, string(runes[s.Start:s.End]), "offsets locate the segment in the source")

		if i < len(segs)-1 {
			last := []rune(s.Text)[s.Length-1]
			assert.True(t, isTerminator(last), "segment %d must end at a terminator", i)
			assert.GreaterOrEqual(t, s.End-prevEnd, maxLength, "segment %d closed before reaching the limit", i)
		}
		prevEnd = s.End
		joined.WriteString(s.Text)
	}

	assert.Equal(t, nonSpace(source), nonSpace(joined.String()), "no characters lost or duplicated")
}

func TestSegment_SplitsOnlyAfterTerminators(t *testing.T) {
	segs := Segment("aaaa bbbb cccc. dddd eeee ffff. gggg", 5)
	require.Len(t, segs, 3)
	assert.Equal(t, "aaaa bbbb cccc.", segs[0].Text)
	assert.Equal(t, "dddd eeee ffff.", segs[1].Text)
	assert.Equal(t, "gggg", segs[2].Text)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a\n\nb", Join([]string{"a", "b"}, "\n\n"))
	assert.Equal(t, "a", Join([]string{"a", ""}, "\n\n"))
	assert.Equal(t, "", Join(nil, "\n\n"))
}
