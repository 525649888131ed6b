package dosage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToAcres covers every accepted unit in both scripts.
func TestToAcres(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  float64
	}{
		{2, "acre", 2},
		{2, "एकड़", 2},
		{1, "hectare", 2.47105},
		{1, "हेक्टेयर", 2.47105},
		{40, "guntha", 1},
		{40, "गुंठा", 1},
		{3, " Acre ", 3},
	}

	for _, tc := range cases {
		got, err := ToAcres(tc.value, tc.unit)
		require.NoError(t, err, "unit: %s", tc.unit)
		assert.InDelta(t, tc.want, got, 1e-9, "unit: %s", tc.unit)
	}
}

func TestToAcres_UnknownUnit(t *testing.T) {
	_, err := ToAcres(1, "bigha")
	assert.Error(t, err)
}

// TestScale verifies a per-acre label dose scales to the field size.
func TestScale(t *testing.T) {
	// 500 g/acre on 2 hectares.
	got, err := Scale(500, 2, "hectare")
	require.NoError(t, err)
	assert.InDelta(t, 2471.05, got, 1e-6)

	_, err = Scale(500, 2, "bigha")
	assert.Error(t, err)
}

// TestTankMix verifies the per-tank product amount for a standard 15L
// knapsack at 200L/acre spray volume.
func TestTankMix(t *testing.T) {
	// 400 ml/acre at 200 L/acre in a 15 L tank is 30 ml per tank.
	assert.InDelta(t, 30, TankMix(400, 200, 15), 1e-9)

	assert.Zero(t, TankMix(400, 0, 15), "zero spray volume must not divide")
	assert.Zero(t, TankMix(400, -5, 15))
}
