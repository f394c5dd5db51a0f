package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(tokens []Token) []Type {
	var out []Type
	for _, t := range tokens {
		out = append(out, t.Type)
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		want   []Type
	}{
		{
			name:   "definition",
			source: "def f = 1",
			want:   []Type{KwDef, Ident, Equals, Integer, EOF},
		},
		{
			name:   "block",
			source: "[ x -> x ]",
			want:   []Type{LBracket, Ident, Arrow, Ident, RBracket, EOF},
		},
		{
			name:   "qualified name",
			source: "A::B::c",
			want:   []Type{Ident, DColon, Ident, DColon, Ident, EOF},
		},
		{
			name:   "operators",
			source: "a + b == c && d |> e",
			want:   []Type{Ident, Operator, Ident, Operator, Ident, Operator, Ident, Operator, Ident, EOF},
		},
		{
			name:   "bar and or",
			source: "| || |>",
			want:   []Type{Bar, Operator, Operator, EOF},
		},
		{
			name:   "literals",
			source: `42 0x2A 3.14 'a' "hello"`,
			want:   []Type{Integer, HexInteger, Float, Character, Text, EOF},
		},
		{
			name:   "comment",
			source: "1 # rest of line\n2",
			want:   []Type{Integer, Integer, EOF},
		},
		{
			name:   "tag and guard",
			source: "v:C ? ->",
			want:   []Type{Ident, Colon, Ident, Question, Arrow, EOF},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Tokenize(tc.source, "test.kst")
			require.NoError(t, err)
			assert.Equal(t, tc.want, types(tokens))
		})
	}
}

func TestTokenizeEscapes(t *testing.T) {
	tokens, err := Tokenize(`"a\nb" '\t'`, "test.kst")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", tokens[0].Lexeme)
	assert.Equal(t, "\t", tokens[1].Lexeme)
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("def f =\n  42", "mod.kst")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Col)
	assert.Equal(t, 1, tokens[1].Line)
	assert.Equal(t, 5, tokens[1].Col)
	assert.Equal(t, 2, tokens[3].Line)
	assert.Equal(t, 3, tokens[3].Col)
	assert.Equal(t, "mod.kst", tokens[3].Source)
}

func TestTokenizeErrors(t *testing.T) {
	testCases := []struct {
		name   string
		source string
	}{
		{"unterminated text", `"abc`},
		{"unterminated character", `'a`},
		{"empty character", `''`},
		{"single ampersand", `a & b`},
		{"bad escape", `"\q"`},
		{"bad hex", `0x`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Tokenize(tc.source, "test.kst")
			assert.Error(t, err)
		})
	}
}
