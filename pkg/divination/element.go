package divination

import "github.com/m-mizutani/omnifind/pkg/model"

// Element is one of the five phases
type Element int

const (
	ElementMetal Element = iota + 1
	ElementWood
	ElementWater
	ElementFire
	ElementEarth
)

// Elements lists all five phases
var Elements = []Element{ElementMetal, ElementWood, ElementWater, ElementFire, ElementEarth}

var elementNames = map[Element][2]string{
	ElementMetal: {"金", "Metal"},
	ElementWood:  {"木", "Wood"},
	ElementWater: {"水", "Water"},
	ElementFire:  {"火", "Fire"},
	ElementEarth: {"土", "Earth"},
}

// Name returns the element name in lang
func (e Element) Name(lang model.Language) string {
	return pick(elementNames[e], lang)
}

// Relation is the Ti/Yong (essence/focus) classification
type Relation int

const (
	RelationHarmonious Relation = iota + 1
	RelationDominating
	RelationSupporting
	RelationExhausting
)

type elementPair struct{ ti, yong Element }

// Ti controls Yong. Only these three pairs count.
var dominatingPairs = map[elementPair]bool{
	{ti: ElementMetal, yong: ElementWood}: true,
	{ti: ElementWood, yong: ElementEarth}: true,
	{ti: ElementWater, yong: ElementFire}: true,
}

// Yong supports Ti. Only these three pairs count.
var supportingPairs = map[elementPair]bool{
	{ti: ElementMetal, yong: ElementEarth}: true,
	{ti: ElementWood, yong: ElementWater}:  true,
	{ti: ElementWater, yong: ElementMetal}: true,
}

// Classify applies equal, dominating, supporting in that order and falls
// through to exhausting.
func Classify(ti, yong Element) Relation {
	p := elementPair{ti: ti, yong: yong}
	switch {
	case ti == yong:
		return RelationHarmonious
	case dominatingPairs[p]:
		return RelationDominating
	case supportingPairs[p]:
		return RelationSupporting
	default:
		return RelationExhausting
	}
}

var relationProbability = map[Relation]int{
	RelationHarmonious: 85,
	RelationDominating: 75,
	RelationSupporting: 92,
	RelationExhausting: 45,
}

// BaseProbability is the retrieval chance before the small-cycle adjustment
func (r Relation) BaseProbability() int {
	return relationProbability[r]
}

type relationText struct {
	theory, theoryEn string
	plain, plainEn   string
}

var relationTexts = map[Relation]relationText{
	RelationHarmonious: {
		theory:   "体用比和",
		theoryEn: "Harmonious Essence",
		plain:    "【白话】寻物大吉。物体与周围环境颜色或性质非常接近，就在你认为最可能的地方。",
		plainEn:  "Excellent luck. The item matches its surroundings closely, check the most obvious spot.",
	},
	RelationDominating: {
		theory:   "体克用",
		theoryEn: "Dominating Force",
		plain:    "【白话】虽然寻找有些费劲，但最终能找回。物体可能被盖住了。",
		plainEn:  "Takes effort but will be found. The item might be covered by something else.",
	},
	RelationSupporting: {
		theory:   "用生体",
		theoryEn: "Supporting Flow",
		plain:    "【白话】易找。甚至会有他人提醒或者在你不经意间发现。",
		plainEn:  "Easy to find. Someone might assist you, or you will find it unexpectedly.",
	},
	RelationExhausting: {
		theory:   "体生用",
		theoryEn: "Exhausting Energy",
		plain:    "【白话】寻物波折较多。可能耗费额外精力，结果未必如愿。",
		plainEn:  "Challenging search. May require significant energy with uncertain results.",
	},
}

// Name returns the short label of the relation in lang
func (r Relation) Name(lang model.Language) string {
	t := relationTexts[r]
	return pick([2]string{t.theory, t.theoryEn}, lang)
}

func pick(names [2]string, lang model.Language) string {
	if lang == model.LanguageEnglish {
		return names[1]
	}
	return names[0]
}
