package dosage

import (
	"fmt"
	"strings"
)

// Acres per unit of the area units farmers quote. One guntha is 1/40 acre.
var acresPerUnit = map[string]float64{
	"acre":     1,
	"एकड़":      1,
	"hectare":  2.47105,
	"हेक्टेयर": 2.47105,
	"guntha":   0.025,
	"गुंठा":    0.025,
}

// ToAcres converts an area in the given unit to acres.
func ToAcres(value float64, unit string) (float64, error) {
	factor, ok := acresPerUnit[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, fmt.Errorf("unknown area unit %q", unit)
	}
	return value * factor, nil
}

// Scale converts a label dose quoted per acre to the farmer's field size.
func Scale(dosePerAcre, area float64, unit string) (float64, error) {
	acres, err := ToAcres(area, unit)
	if err != nil {
		return 0, err
	}
	return dosePerAcre * acres, nil
}

// TankMix computes how much product goes into one knapsack tank, given
// the label dose and spray volume per acre. Typical tanks hold 15L.
func TankMix(dosePerAcre, sprayVolumePerAcre, tankLiters float64) float64 {
	if sprayVolumePerAcre <= 0 {
		return 0
	}
	return dosePerAcre * tankLiters / sprayVolumePerAcre
}
