package error_handling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/tickgrid/internal/app"
	"github.com/vk/tickgrid/internal/integration_tests/harness"
)

func TestErrorHandling_InvalidMarkupIsRejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		markup   string
		expected string
	}{
		{
			name:     "syntax error",
			markup:   "widget \"w\" {\n  text {\n",
			expected: "failed to parse HCL file",
		},
		{
			name:     "misspelled component",
			markup:   "widget \"w\" {\n  vbx {\n  }\n}\n",
			expected: `Did you mean "vbox"?`,
		},
		{
			name:     "missing required attribute",
			markup:   "widget \"w\" {\n  import_font {\n  }\n}\n",
			expected: `Missing required argument`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := harness.Run(t, map[string]string{"main.hcl": tc.markup}, app.Config{})

			// --- Assert ---
			require.Error(t, result.Err)
			require.Contains(t, result.Err.Error(), "failed to load widgets")
			require.Contains(t, result.Err.Error(), tc.expected)
			require.NoFileExists(t, result.FramePath, "no frame is written when loading fails")
		})
	}
}
