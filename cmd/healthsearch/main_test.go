package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestEndpointFlagHasNoEnvAlias(t *testing.T) {
	require.Len(t, globalFlags, 1)

	flag, ok := globalFlags[0].(*cli.StringFlag)
	require.True(t, ok)
	assert.Equal(t, "endpoint", flag.Name)
	assert.Empty(t, flag.EnvVars, "the endpoint is configured through HEALTHSEARCH_API_ENDPOINT only")
}
