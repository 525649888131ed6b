package prompts

import (
	"fmt"
	"strings"

	"github.com/krishigpt/server/internal/kb"
)

// maxDiseases bounds the disease detail to the first entries in KB order.
const maxDiseases = 3

// BuildContext composes the knowledge-base excerpt for a query: crop
// facts when a crop is detected, disease or fertilizer detail depending
// on the query type, and the full scheme list for scheme queries
// regardless of crop. Returns "" when nothing applies, which tells the
// caller to skip prompt augmentation entirely.
func BuildContext(query string, k *kb.KnowledgeBase) string {
	var parts []string

	cropKey, crop, found := k.DetectCrop(query)
	qtype := kb.DetectQueryType(query)

	if found {
		name := crop.DisplayName
		if name == "" {
			name = cropKey
		}
		parts = append(parts,
			fmt.Sprintf("\n📌 फसल (%s):", name),
			fmt.Sprintf("   - मौसम: %s", orNA(crop.Season)),
			fmt.Sprintf("   - पानी: %s", orNA(crop.WaterRequirement)),
		)

		if qtype == kb.QueryDisease {
			parts = append(parts, "\n🔬 आम बीमारियां:")
			for i, d := range crop.CommonDiseases {
				if i >= maxDiseases {
					break
				}
				parts = append(parts,
					fmt.Sprintf("\n   %s:", d.Name),
					fmt.Sprintf("   लक्षण: %s", orNA(d.Symptoms)),
					fmt.Sprintf("   कारण: %s", orNA(d.Causes)),
					"   उपचार:",
				)
				for _, tr := range d.Treatment {
					parts = append(parts, fmt.Sprintf("      • %s", tr))
				}
				if d.CostPerAcre != "" {
					parts = append(parts, fmt.Sprintf("   खर्च: ₹%s/एकड़", d.CostPerAcre))
				}
			}
		}

		if qtype == kb.QueryFertilizer || qtype == kb.QueryGeneral {
			parts = append(parts, "\n🌿 खाद अनुसूची:")
			for _, step := range crop.FertilizerSchedule {
				parts = append(parts, fmt.Sprintf("   • %s: %s", step.Stage, step.Fertilizer))
				if step.Cost != "" {
					parts = append(parts, fmt.Sprintf("     खर्च: ₹%s", step.Cost))
				}
			}
		}
	}

	if qtype == kb.QueryScheme {
		parts = append(parts, "\n📋 सरकारी योजनाएं:")
		for _, s := range k.Schemes {
			parts = append(parts,
				fmt.Sprintf("\n   %s:", s.Name),
				fmt.Sprintf("   लाभ: %s", orNA(s.Benefit)),
				fmt.Sprintf("   पात्रता: %s", orNA(s.Eligibility)),
				fmt.Sprintf("   आवेदन: %s", orNA(s.Apply)),
			)
			if s.Helpline != "" {
				parts = append(parts, fmt.Sprintf("   हेल्पलाइन: %s", s.Helpline))
			}
		}
	}

	return strings.Join(parts, "\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
