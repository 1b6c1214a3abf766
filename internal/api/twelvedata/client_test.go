package twelvedata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatetime(t *testing.T) {
	t.Run("intraday format", func(t *testing.T) {
		ts, err := parseDatetime("2025-06-01 16:00:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC), ts)
	})

	t.Run("daily format", func(t *testing.T) {
		ts, err := parseDatetime("2025-06-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), ts)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := parseDatetime("06/01/2025")
		assert.Error(t, err)
	})
}
