package magetasks

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEvents = `{"Action":"run","Package":"github.com/dkoosis/recipes/pkg/version","Test":"TestParse"}
{"Action":"pass","Package":"github.com/dkoosis/recipes/pkg/version","Test":"TestParse","Elapsed":0.01}
{"Action":"skip","Package":"github.com/dkoosis/recipes/pkg/version","Test":"TestSlow"}
{"Action":"output","Package":"github.com/dkoosis/recipes/pkg/version","Output":"coverage: 91.5% of statements\n"}
{"Action":"pass","Package":"github.com/dkoosis/recipes/pkg/version","Elapsed":0.25}
not json
{"Action":"fail","Package":"github.com/dkoosis/recipes/internal/host","Test":"TestHost_Run","Elapsed":0.01}
{"Action":"pass","Package":"github.com/dkoosis/recipes/internal/host","Test":"TestHost_Add","Elapsed":0.01}
{"Action":"fail","Package":"github.com/dkoosis/recipes/internal/host","Elapsed":0.5}
{"Action":"start","Package":"github.com/dkoosis/recipes/internal/unfinished"}
`

func TestTestFormatter_Process_When_MixedEvents(t *testing.T) {
	t.Parallel()

	f := NewTestFormatter(&bytes.Buffer{}, false)

	require.NoError(t, f.Process(strings.NewReader(testEvents)))

	results := f.Results()
	require.Len(t, results, 2)

	host := results[0]
	assert.Equal(t, "github.com/dkoosis/recipes/internal/host", host.Name)
	assert.Equal(t, 1, host.Passed)
	assert.Equal(t, 1, host.Failed)
	assert.Equal(t, []string{"TestHost_Run"}, host.FailedTests)

	version := results[1]
	assert.Equal(t, 1, version.Passed)
	assert.Equal(t, 1, version.Skipped)
	assert.InDelta(t, 91.5, version.Coverage, 0.001)
}

func TestTestFormatter_Render_When_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := NewTestFormatter(&buf, false)
	require.NoError(t, f.Process(strings.NewReader(testEvents)))

	f.Render()

	out := buf.String()
	assert.Contains(t, out, "Test Results")
	assert.Contains(t, out, "✗ host")
	assert.Contains(t, out, "✓ version")
	assert.Contains(t, out, "↳ TestHost_Run")
	assert.Contains(t, out, "91.5%")
}

func TestPackageNames_When_Grouped(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "internal", topLevelDir("github.com/dkoosis/recipes/internal/stages"))
	assert.Equal(t, "stages", packageBaseName("github.com/dkoosis/recipes/internal/stages"))
	assert.Equal(t, "cmd", topLevelDir("github.com/dkoosis/recipes/cmd/recipes"))
	assert.Equal(t, "recipes", topLevelDir("github.com/dkoosis/recipes"))
	assert.Equal(t, "build", packageBaseName("github.com/dkoosis/recipes/pkg/build"))
}
