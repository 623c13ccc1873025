package money_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/promolab-cl/backend-promolab/internal/money"
)

func TestFormatChileanPesos(t *testing.T) {
	f := money.NewFormatter("es-CL", "CLP")
	require.Equal(t, "$154.990", f.Format(154990))
	require.Equal(t, "$0", f.Format(0))
	require.Equal(t, "$1.000", f.Format(1000))
	require.Equal(t, "CLP", f.Currency())
}

func TestFormatterFallsBackOnBadLocale(t *testing.T) {
	f := money.NewFormatter("??", "")
	require.Equal(t, "$1.000", f.Format(1000))
	require.Equal(t, "CLP", f.Currency())
}
