package baplie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "splits on segment terminator",
			in:   "UNB+UNOA:2'EQD+CN+MSKU1234567+22G0'LOC+147+0410102'",
			want: []string{"UNB+UNOA:2", "EQD+CN+MSKU1234567+22G0", "LOC+147+0410102"},
		},
		{
			name: "strips interior line breaks",
			in:   "EQD+CN+MSKU1\r\n234567+22G0'\nLOC+147+0410102'\r\n",
			want: []string{"EQD+CN+MSKU1234567+22G0", "LOC+147+0410102"},
		},
		{
			name: "drops empty fragments",
			in:   "''EQD+CN+ABC'''",
			want: []string{"EQD+CN+ABC"},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestTokenizePreservesOrder(t *testing.T) {
	in := "A'B'C'D'"
	assert.Equal(t, []string{"A", "B", "C", "D"}, Tokenize(in))
	// Pure function: a second call yields the same result.
	assert.Equal(t, Tokenize(in), Tokenize(in))
}
