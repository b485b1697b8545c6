package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merev/ds-darts-engine/internal/checkout"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestServeIsDefault(t *testing.T) {
	cli, ctx := parse(t)
	assert.Equal(t, "serve", ctx.Command())
	assert.Equal(t, "game-api.hcl", cli.Serve.Config)

	cli, _ = parse(t, "serve", "--store", "sqlite", "--port", "9000")
	assert.Equal(t, "sqlite", cli.Serve.Store)
	assert.Equal(t, "9000", cli.Serve.Port)
}

func TestCheckoutCommand(t *testing.T) {
	cli, ctx := parse(t, "checkout", "40", "--mode", "simple")
	assert.Equal(t, "checkout <score>", ctx.Command())
	assert.Equal(t, 40, cli.Checkout.Score)
	assert.Equal(t, "simple", cli.Checkout.Mode)

	var bad CLI
	parser, err := kong.New(&bad, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"checkout", "40", "--mode", "triple"})
	assert.Error(t, err)
}

func TestRenderCheckout(t *testing.T) {
	out := renderCheckout(170, checkout.Double)
	assert.Contains(t, out, "170 (double out)")
	assert.Contains(t, out, "T20")
	assert.Contains(t, out, "Bull")

	assert.Contains(t, renderCheckout(169, checkout.Double), "no checkout")
	assert.Contains(t, renderCheckout(60, checkout.Simple), "Bullseye")
}
