package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	input := "nick,points\n  alice , 120\nbob,0\n\ncarol,-5\ndave\n,10\nerin,12x\n"

	rows, invalid, err := parseRows(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []seedRow{
		{Nick: "alice", Points: 120},
		{Nick: "bob", Points: 0},
	}, rows)
	assert.Equal(t, 4, invalid)
}

func TestParseRowsWithoutHeader(t *testing.T) {
	rows, invalid, err := parseRows(strings.NewReader("alice,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []seedRow{{Nick: "alice", Points: 1}}, rows)
	assert.Zero(t, invalid)
}
