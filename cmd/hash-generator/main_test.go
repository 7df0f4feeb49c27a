package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRootCmd_HashesEachArgument(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--cost", "4", "first", "second"})

	require.NoError(t, cmd.Execute())

	var hashes []string
	for _, line := range strings.Split(out.String(), "\n") {
		if h, ok := strings.CutPrefix(line, "Hash: "); ok {
			hashes = append(hashes, h)
		}
	}
	require.Len(t, hashes, 2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashes[0]), []byte("first")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashes[1]), []byte("second")))

	cost, err := bcrypt.Cost([]byte(hashes[0]))
	require.NoError(t, err)
	assert.Equal(t, 4, cost)
}

func TestRootCmd_RequiresPassword(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)

	assert.Error(t, cmd.Execute())
}
