package rendering

import (
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tickgrid/internal/app"
	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/integration_tests/harness"
)

func decodeFrame(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func isBackground(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0 && g == 0 && b == 0
}

// litPixels counts pixels that differ from the default black background.
func litPixels(img image.Image) int {
	b := img.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !isBackground(img, x, y) {
				n++
			}
		}
	}
	return n
}

func TestRendering_FrameSizeAndContent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	markup := `
widget "status" {
  position {
    x        = "right"
    x_offset = "4px"
    y        = "center"
  }
  hbox {
    y_align = "center"
    text {
      content = "cpu"
    }
    margin { size = "6px" }
    text {
      content = "${var.load}"
      color   = "#ffcc00"
      variable "load" {
        precision = 1
        suffix    = "%"
      }
    }
  }
  fetch_data {
    name   = "load"
    source = "static"
    query  = "load"
    format = "float"
  }
}
`
	src := harness.Module{Name: "static", Source: harness.Static{"load": data.Float64(42.25)}}

	// --- Act ---
	result := harness.Run(t, map[string]string{"main.hcl": markup}, app.Config{Width: 160, Height: 30}, src)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.NotContains(t, result.LogOutput, "Tick failed")

	img := decodeFrame(t, result.FramePath)
	assert.Equal(t, image.Rect(0, 0, 160, 30), img.Bounds())
	assert.Positive(t, litPixels(img), "text was drawn onto the frame")
}

func TestRendering_IfSelectsBranch(t *testing.T) {
	t.Parallel()

	markup := `
widget "maybe" {
  fetch_data {
    name   = "show"
    source = "static"
    query  = "show"
    format = "bool"
  }
  if {
    cond = var.show
    then {
      text {
        content = "MMMMMMMM"
      }
    }
  }
}
`

	testCases := []struct {
		name string
		show data.Data
		lit  bool
	}{
		{name: "true renders then", show: data.Bool(true), lit: true},
		{name: "false without else renders nothing", show: data.Bool(false), lit: false},
		{name: "unknown is false", show: data.Unknown(), lit: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src := harness.Module{Name: "static", Source: harness.Static{"show": tc.show}}

			result := harness.Run(t, map[string]string{"main.hcl": markup}, app.Config{Width: 120, Height: 24}, src)

			require.NoError(t, result.Err)
			require.NotContains(t, result.LogOutput, "Tick failed")
			img := decodeFrame(t, result.FramePath)
			assert.Equal(t, tc.lit, litPixels(img) > 0)
		})
	}
}

func TestRendering_GraphAcrossTicks(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	markup := `
widget "spark" {
  fetch_data {
    name   = "v"
    source = "static"
    query  = "v"
    format = "float"
  }
  graph {
    name         = "v"
    width        = "50px"
    height       = "100vh"
    min          = 0
    max          = 10
    sample_count = 5
    stroke_color = "#ffffff"
    stroke_width = 2
    fill_color   = "#3366ff"
  }
}
`
	src := harness.Module{Name: "static", Source: harness.Static{"v": data.Float64(5)}}

	// --- Act ---
	result := harness.Run(t, map[string]string{"main.hcl": markup}, app.Config{Width: 100, Height: 20, Ticks: 5}, src)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.NotContains(t, result.LogOutput, "Tick failed")
	img := decodeFrame(t, result.FramePath)
	assert.Positive(t, litPixels(img))

	// The graph is 50px wide at the left edge.
	assert.True(t, isBackground(img, 90, 10))
}
