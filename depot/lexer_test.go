package depot

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine_StripsNewline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("IM:4001:Depot1\n"))
	line, err := ReadLine(r)
	require.NoError(t, err)
	assert.Equal(t, "IM:4001:Depot1", line)
}

func TestReadLine_TruncatesOversizedLine(t *testing.T) {
	long := strings.Repeat("a", 400)
	r := bufio.NewReader(strings.NewReader(long + "\n"))
	line, err := ReadLine(r)
	require.NoError(t, err)
	assert.Len(t, line, maxLineBytes)
}

func TestReadLine_EOFWithoutTrailingNewline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Deliver:5:Nuts"))
	line, err := ReadLine(r)
	assert.Error(t, err)
	assert.Equal(t, "Deliver:5:Nuts", line)
}

func TestLex_CountsSeparators(t *testing.T) {
	args, sepCount := Lex("Transfer:5:Nuts:Depot2")
	assert.Equal(t, []string{"Transfer", "5", "Nuts", "Depot2"}, args)
	assert.Equal(t, 3, sepCount)
}

func TestLex_NoSeparators(t *testing.T) {
	args, sepCount := Lex("Ping")
	assert.Equal(t, []string{"Ping"}, args)
	assert.Equal(t, 0, sepCount)
}

func TestLex_TrailingColonKeepsEmptyField(t *testing.T) {
	args, sepCount := Lex("Connect:")
	assert.Equal(t, []string{"Connect", ""}, args)
	assert.Equal(t, 1, sepCount)
}
