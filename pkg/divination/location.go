package divination

import (
	"regexp"

	"github.com/m-mizutani/omnifind/pkg/model"
)

// LocationKind is the bucket a free-text lost location falls into
type LocationKind int

const (
	LocationOther LocationKind = iota
	LocationTransit
	LocationDwelling
)

type locationProfile struct {
	kind               LocationKind
	element            Element
	desc, descEn       string
	feature, featureEn string
}

// Matching is case-sensitive; checked in slice order, first hit wins.
var locationRules = []struct {
	pattern *regexp.Regexp
	profile locationProfile
}{
	{
		pattern: regexp.MustCompile(`地铁|车|交通|路|Subway|Car|Bus|Road`),
		profile: locationProfile{
			kind:      LocationTransit,
			element:   ElementMetal,
			desc:      "金能克木，物在动处。",
			descEn:    "Metal controls Wood. Item is in motion.",
			feature:   "物在金属构件、机械或交通枢纽旁。",
			featureEn: "Item is near metal components, machinery, or transit hubs.",
		},
	},
	{
		pattern: regexp.MustCompile(`朋友|家|酒店|饭店|室内|Home|Hotel|Room`),
		profile: locationProfile{
			kind:      LocationDwelling,
			element:   ElementEarth,
			desc:      "土能生金，物在隐蔽。",
			descEn:    "Earth creates Metal. Item is hidden.",
			feature:   "物在稳固建筑内、墙角或柜底。",
			featureEn: "Item is inside stable structures, corners, or under cabinets.",
		},
	},
}

var defaultLocation = locationProfile{
	kind:      LocationOther,
	element:   ElementFire,
	desc:      "火能炼金，物在显处。",
	descEn:    "Fire refines Metal. Item is visible.",
	feature:   "物在明亮、温暖或电器、光照充足处。",
	featureEn: "Item is in bright, warm areas or near electronics/light.",
}

func classifyLocation(loc string) locationProfile {
	for _, r := range locationRules {
		if r.pattern.MatchString(loc) {
			return r.profile
		}
	}
	return defaultLocation
}

// ClassifyLocation reports which bucket loc falls into and its element
func ClassifyLocation(loc string) (LocationKind, Element) {
	p := classifyLocation(loc)
	return p.kind, p.element
}

func (p locationProfile) analysis(lang model.Language) string {
	if lang == model.LanguageEnglish {
		return "Analysis: " + p.descEn + " " + p.featureEn
	}
	return "解析：" + p.desc + p.feature
}
