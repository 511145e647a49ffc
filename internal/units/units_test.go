package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	testCases := []struct {
		in     string
		want   Length
		pixels float64
	}{
		{"12px", Length{12, Pixel}, 12},
		{"50vh", Length{50, ViewportHeight}, 20},
		{"10vw", Length{10, ViewportWidth}, 30},
		{"7", Length{7, Pixel}, 7},
		{" -4px ", Length{-4, Pixel}, -4},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLength(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.InDelta(t, tc.pixels, got.Pixels(300, 40), 1e-9)
		})
	}

	for _, bad := range []string{"", "px", "12em", "abcvh"} {
		_, err := ParseLength(bad)
		assert.Error(t, err, bad)
	}
}

func TestLength_String(t *testing.T) {
	assert.Equal(t, "12px", Px(12).String())
	assert.Equal(t, "2.5vh", Length{2.5, ViewportHeight}.String())
	assert.True(t, Length{0, ViewportWidth}.IsZero())
	assert.False(t, Px(1).IsZero())
}

func TestAlign(t *testing.T) {
	for in, want := range map[string]Align{"left": Start, "top": Start, "": Start, "center": Center, "right": End, "bottom": End} {
		got, err := ParseAlign(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAlign("justify")
	assert.Error(t, err)

	assert.Equal(t, 0.0, Start.Offset(20, 10))
	assert.Equal(t, 5.0, Center.Offset(20, 10))
	assert.Equal(t, 10.0, End.Offset(20, 10))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 0.0, c.G, 1e-9)
	assert.InDelta(t, 1.0, c.A, 1e-9)
	assert.Equal(t, "#ff0000", c.String())

	c, err = ParseColor("White")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.B, 1e-9)

	c, err = ParseColor("#0f08")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.G, 1e-9)
	assert.InDelta(t, 0x88/255.0, c.A, 1e-9)

	for _, bad := range []string{"ff0000", "#12345", "#gg0000", "chartreuse-ish"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
