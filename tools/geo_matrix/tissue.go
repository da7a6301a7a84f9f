package geo_matrix

import (
	"strings"
)

// UnknownGroup is assigned to samples that match no tissue rule.
const UnknownGroup = "Unknown"

// TissueRule maps a keyword found in sample metadata to a tissue group.
type TissueRule struct {
	Keyword string
	Group   string
}

// TissueRules is evaluated top to bottom; the first rule whose keyword occurs
// in the description (case-insensitive) decides the group.
type TissueRules []TissueRule

// DefaultTissueRules covers the common organs of GEO tissue panels. More
// specific keywords precede generic ones: "Heart muscle" is Heart, not Muscle,
// and "adrenal" is checked before "renal". A bare "cortex" is not a Brain
// keyword since renal and adrenal cortex samples are common.
var DefaultTissueRules = TissueRules{
	{"brain", "Brain"},
	{"cerebral", "Brain"},
	{"cerebell", "Brain"},
	{"hippocamp", "Brain"},
	{"lung", "Lung"},
	{"bronch", "Lung"},
	{"heart", "Heart"},
	{"cardiac", "Heart"},
	{"myocard", "Heart"},
	{"colon", "Colon"},
	{"colorectal", "Colon"},
	{"liver", "Liver"},
	{"hepat", "Liver"},
	{"adrenal", "Adrenal"},
	{"kidney", "Kidney"},
	{"renal", "Kidney"},
	{"spleen", "Spleen"},
	{"pancrea", "Pancreas"},
	{"stomach", "Stomach"},
	{"gastric", "Stomach"},
	{"breast", "Breast"},
	{"mammary", "Breast"},
	{"prostate", "Prostate"},
	{"testis", "Testis"},
	{"ovary", "Ovary"},
	{"skin", "Skin"},
	{"muscle", "Muscle"},
	{"blood", "Blood"},
}

// Match returns the group of the first rule matching text, and false when
// nothing matches. Empty keywords never match.
func (rules TissueRules) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	if lower == "" {
		return "", false
	}
	for _, rule := range rules {
		kw := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) {
			return rule.Group, true
		}
	}
	return "", false
}

// Classify assigns a tissue group from the sample metadata fields, tried in
// the given order. The first field with a match wins; no match at all yields
// UnknownGroup.
func (rules TissueRules) Classify(fields ...string) string {
	for _, field := range fields {
		if group, ok := rules.Match(field); ok {
			return group
		}
	}
	return UnknownGroup
}
