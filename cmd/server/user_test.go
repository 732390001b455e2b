package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func contextWithStdin(input string) *cli.Context {
	app := &cli.App{Reader: strings.NewReader(input)}
	return cli.NewContext(app, nil, nil)
}

func TestReadPassword(t *testing.T) {
	pw, err := readPassword(contextWithStdin("s3cret\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	pw, err = readPassword(contextWithStdin("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)
}

func TestReadPassword_Empty(t *testing.T) {
	_, err := readPassword(contextWithStdin(""))
	assert.Error(t, err)

	_, err = readPassword(contextWithStdin("\n"))
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range []*cli.Command{serveCmd(), migrateCmd(), userCmd()} {
		names[c.Name] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["user"])

	var subs []string
	for _, c := range migrateCmd().Subcommands {
		subs = append(subs, c.Name)
	}
	assert.Equal(t, []string{"up", "down", "status"}, subs)
}
