package kb

import (
	"encoding/json"
	"os"
	"sort"

	logx "github.com/krishigpt/server/pkg/logger"
)

// Disease describes one common disease of a crop, with treatment steps
// in the order they should be applied.
type Disease struct {
	Name        string   `json:"name"`
	Symptoms    string   `json:"symptoms"`
	Causes      string   `json:"causes"`
	Treatment   []string `json:"treatment"`
	CostPerAcre string   `json:"cost_per_acre,omitempty"`
}

// FertilizerStep is one entry of a crop's fertilizer schedule.
type FertilizerStep struct {
	Stage      string `json:"stage"`
	Fertilizer string `json:"fertilizer"`
	Cost       string `json:"cost,omitempty"`
}

// CropInfo holds the agronomic facts for a single crop.
type CropInfo struct {
	DisplayName        string           `json:"name_hi"`
	Season             string           `json:"season"`
	WaterRequirement   string           `json:"water_requirement"`
	Keywords           []string         `json:"keywords"`
	CommonDiseases     []Disease        `json:"common_diseases"`
	FertilizerSchedule []FertilizerStep `json:"fertilizer_schedule"`
}

// Scheme describes a government support scheme.
type Scheme struct {
	Name        string `json:"name"`
	Benefit     string `json:"benefit"`
	Eligibility string `json:"eligibility"`
	Apply       string `json:"apply"`
	Helpline    string `json:"helpline,omitempty"`
}

// KnowledgeBase is the static agronomic reference data. It is built once
// at startup and never mutated; all lookups are read-only.
type KnowledgeBase struct {
	Crops             map[string]CropInfo `json:"crops"`
	Schemes           []Scheme            `json:"government_schemes"`
	EmergencyContacts map[string]string   `json:"emergency_contacts"`

	cropOrder []string
}

// Empty returns a knowledge base with no data. The engine still runs
// against it; context building just always comes up empty.
func Empty() *KnowledgeBase {
	return &KnowledgeBase{
		Crops:             map[string]CropInfo{},
		Schemes:           []Scheme{},
		EmergencyContacts: map[string]string{},
	}
}

// Parse decodes a knowledge base from JSON and fixes the crop scan order.
func Parse(data []byte) (*KnowledgeBase, error) {
	k := Empty()
	if err := json.Unmarshal(data, k); err != nil {
		return nil, err
	}
	k.buildOrder()
	return k, nil
}

// Load reads the knowledge base from path, or the embedded default data
// when path is empty. A missing or malformed file degrades to an empty
// knowledge base rather than failing startup.
func Load(path string) *KnowledgeBase {
	data := defaultCropData
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			logx.Warn().Err(err).Str("path", path).Msg("crop data file unreadable, starting with empty knowledge base")
			return Empty()
		}
		data = b
	}

	k, err := Parse(data)
	if err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("crop data malformed, starting with empty knowledge base")
		return Empty()
	}

	logx.Info().Int("crops", len(k.Crops)).Int("schemes", len(k.Schemes)).Msg("knowledge base loaded")
	return k
}

// CropKeys returns crop keys in the fixed scan order. Go map iteration is
// randomized, so the order is pinned to sorted keys to keep first-match
// crop detection deterministic.
func (k *KnowledgeBase) CropKeys() []string {
	return k.cropOrder
}

func (k *KnowledgeBase) buildOrder() {
	k.cropOrder = make([]string, 0, len(k.Crops))
	for key := range k.Crops {
		k.cropOrder = append(k.cropOrder, key)
	}
	sort.Strings(k.cropOrder)
}
