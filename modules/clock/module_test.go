package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tickgrid/internal/data"
)

func TestSource(t *testing.T) {
	now := time.Date(2024, time.March, 9, 14, 5, 7, 0, time.UTC)
	src := NewSource(func() time.Time { return now })

	testCases := []struct {
		query    string
		expected data.Data
	}{
		{query: "hour", expected: data.Int64(14)},
		{query: "minute", expected: data.Int64(5)},
		{query: "second", expected: data.Int64(7)},
		{query: "month", expected: data.Int64(3)},
		{query: "weekday", expected: data.String("Saturday")},
		{query: "unix", expected: data.Int64(now.Unix())},
		{query: "15:04", expected: data.String("14:05")},
		{query: "", expected: data.String("2024-03-09T14:05:07Z")},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			h, err := src.Query(tc.query, data.FormatString)
			require.NoError(t, err)
			assert.True(t, h.Value().IsUnknown(), "unset before the first update")
		})
	}

	require.NoError(t, src.Update(context.Background()))
	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			h, err := src.Query(tc.query, data.FormatString)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, h.Value())
		})
	}
}
