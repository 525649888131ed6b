package kb

import "strings"

// QueryType categorizes a farmer query for context building.
type QueryType string

const (
	QueryDisease    QueryType = "disease"
	QueryFertilizer QueryType = "fertilizer"
	QueryScheme     QueryType = "scheme"
	QueryIrrigation QueryType = "irrigation"
	QueryGeneral    QueryType = "general"
)

// Keyword groups checked in fixed priority order:
// disease > fertilizer > scheme > irrigation > general.
// These lists are the single source of truth for query classification.
var (
	diseaseKeywords = []string{
		"रोग", "बीमारी", "कीट", "सुंडी", "मक्खी", "इलाज", "उपचार",
		"पीला", "पीले", "पीली", "सूख", "मुरझा", "धब्बे", "छेद", "सड़",
		"disease", "pest", "treatment", "yellow", "dry", "rot",
		"अळी", "माशी", "किडा",
	}
	fertilizerKeywords = []string{
		"खाद", "उर्वरक", "fertilizer", "यूरिया", "dap", "npk",
		"पोषक", "nutrient", "खत", "मात्रा", "कितना",
	}
	schemeKeywords = []string{
		"योजना", "scheme", "सरकारी", "government", "सब्सिडी",
		"pm-kisan", "बीमा", "kcc", "क्रेडिट", "loan", "yojana",
	}
	irrigationKeywords = []string{
		"सिंचाई", "पानी", "water", "irrigation", "ड्रिप", "drip", "स्प्रिंकलर",
	}
)

// DetectCrop matches the query against each crop's keyword set,
// case-insensitively. The first crop (in KB scan order) with any keyword
// hit wins; there is no ranking or scoring.
func (k *KnowledgeBase) DetectCrop(query string) (string, CropInfo, bool) {
	q := strings.ToLower(query)
	for _, key := range k.CropKeys() {
		info := k.Crops[key]
		for _, kw := range info.Keywords {
			if kw != "" && strings.Contains(q, strings.ToLower(kw)) {
				return key, info, true
			}
		}
	}
	return "", CropInfo{}, false
}

// DetectQueryType classifies the query by linear keyword scan. The first
// matching group in priority order wins; overlaps are not combined.
func DetectQueryType(query string) QueryType {
	q := strings.ToLower(query)

	groups := []struct {
		keywords []string
		qt       QueryType
	}{
		{diseaseKeywords, QueryDisease},
		{fertilizerKeywords, QueryFertilizer},
		{schemeKeywords, QueryScheme},
		{irrigationKeywords, QueryIrrigation},
	}

	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(q, kw) {
				return g.qt
			}
		}
	}
	return QueryGeneral
}
