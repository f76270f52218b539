package format_test

import (
	"math"
	"testing"
	"time"

	"github.com/jrsteele09/captal-web/internal/format"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	require.Equal(t, "R$ 1.234,50", format.Currency(1234.5))
	require.Equal(t, "R$ 0,00", format.Currency(0))
	require.Equal(t, "R$ 0,00", format.Currency(math.NaN()))
}

func TestArea(t *testing.T) {
	require.Equal(t, "1.500 m²", format.Area(1500))
	require.Equal(t, "0 m²", format.Area(math.Inf(1)))
}

func TestDate(t *testing.T) {
	require.Equal(t, "05/03/2025", format.Date(time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)))
	require.Equal(t, "", format.Date(time.Time{}))
}

func TestStatusClass(t *testing.T) {
	require.Equal(t, "status-approved", format.StatusClass("approved"))
	require.Equal(t, "status-unknown", format.StatusClass("archived"))
}
