package error_handling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/tickgrid/internal/app"
	"github.com/vk/tickgrid/internal/integration_tests/harness"
	"github.com/vk/tickgrid/internal/setup"
)

func TestErrorHandling_UnknownSourceSuggestsClosest(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	markup := `
widget "time" {
  fetch_data {
    name   = "now"
    source = "clok"
    query  = "15:04"
    format = "string"
  }
}
`

	// --- Act ---
	result := harness.Run(t, map[string]string{"main.hcl": markup}, app.Config{})

	// --- Assert ---
	require.Error(t, result.Err)
	var setupErr *setup.Error
	require.True(t, errors.As(result.Err, &setupErr), "setup failures surface as *setup.Error")
	require.Equal(t, setup.UnknownSource, setupErr.Kind)
	require.Equal(t, `Unknown data source "clok"`, setupErr.Label)
	require.Contains(t, result.Err.Error(), `did you mean "clock"?`)
	require.NoFileExists(t, result.FramePath)
}

func TestErrorHandling_UnsupportedFontScheme(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	markup := `
widget "fonts" {
  import_font {
    url = "ftp://example.com/font.ttf"
  }
}
`

	// --- Act ---
	result := harness.Run(t, map[string]string{"main.hcl": markup}, app.Config{})

	// --- Assert ---
	require.Error(t, result.Err)
	var setupErr *setup.Error
	require.True(t, errors.As(result.Err, &setupErr))
	require.Equal(t, setup.UnsupportedScheme, setupErr.Kind)
	require.Equal(t, "Unsupported url scheme: ftp", setupErr.Label)
}

func TestErrorHandling_MissingFontFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	markup := `
widget "fonts" {
  import_font {
    url = "file:///definitely/not/here.ttf"
  }
}
`

	// --- Act ---
	result := harness.Run(t, map[string]string{"main.hcl": markup}, app.Config{})

	// --- Assert ---
	require.Error(t, result.Err)
	var setupErr *setup.Error
	require.True(t, errors.As(result.Err, &setupErr))
	require.Equal(t, setup.IO, setupErr.Kind)
	require.Contains(t, setupErr.Label, "Failed to read")
}
