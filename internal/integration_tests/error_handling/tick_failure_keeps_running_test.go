package error_handling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/tickgrid/internal/app"
	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/integration_tests/harness"
)

func TestErrorHandling_UnknownFontFailsTickOnly(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	markup := `
widget "label" {
  text {
    content     = "hello"
    font_family = "Goo"
  }
}
`

	// --- Act ---
	result := harness.Run(t, map[string]string{"main.hcl": markup}, app.Config{Ticks: 2})

	// --- Assert ---
	// Render errors abort the tick, not the run.
	require.NoError(t, result.Err)
	require.Contains(t, result.LogOutput, "Tick failed, keeping the previous frame.")
	require.Contains(t, result.LogOutput, "failed to find font")
	require.NoFileExists(t, result.FramePath, "no tick ever succeeded")
}

func TestErrorHandling_StrictConversionFailsTick(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	markup := `
widget "count" {
  fetch_data {
    name   = "n"
    source = "static"
    query  = "n"
    format = "i32"
  }
  text {
    content = "${var.n}"
  }
}
`
	src := harness.Module{Name: "static", Source: harness.Static{"n": data.String("twelve")}}

	// --- Act ---
	result := harness.Run(t, map[string]string{"main.hcl": markup}, app.Config{}, src)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Contains(t, result.LogOutput, "Tick failed")
	require.Contains(t, result.LogOutput, "cannot convert")
}
