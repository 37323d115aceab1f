package divination

import "github.com/m-mizutani/omnifind/pkg/model"

// Trigram is a Plum Blossom trigram number in 1..8 (early heaven order)
type Trigram int

type trigramInfo struct {
	name, nameEn string
	element      Element
}

var trigrams = map[Trigram]trigramInfo{
	1: {"乾天", "Heaven", ElementMetal},
	2: {"兑泽", "Lake", ElementMetal},
	3: {"离火", "Fire", ElementFire},
	4: {"震雷", "Thunder", ElementWood},
	5: {"巽风", "Wind", ElementWood},
	6: {"坎水", "Water", ElementWater},
	7: {"艮山", "Mountain", ElementEarth},
	8: {"坤地", "Earth", ElementEarth},
}

// Name returns the trigram name in lang
func (g Trigram) Name(lang model.Language) string {
	t := trigrams[g]
	return pick([2]string{t.name, t.nameEn}, lang)
}

// Element returns the phase the trigram belongs to
func (g Trigram) Element() Element {
	return trigrams[g].element
}

// CycleState is a Small Liu Ren position
type CycleState int

const (
	CycleGreatPeace CycleState = iota
	CycleLingering
	CycleSwiftJoy
	CycleRedMouth
	CycleSmallLuck
	CycleVoid
)

var cycleNames = [6][2]string{
	{"大安", "Great Peace"},
	{"留连", "Lingering"},
	{"速喜", "Swift Joy"},
	{"赤口", "Red Mouth"},
	{"小吉", "Small Luck"},
	{"空亡", "Void"},
}

// Name returns the position name in lang
func (c CycleState) Name(lang model.Language) string {
	return pick(cycleNames[c], lang)
}

// adjust applies the void and peace clamps. Other positions leave prob as is.
func (c CycleState) adjust(prob int) int {
	switch c {
	case CycleVoid:
		return max(12, prob-50)
	case CycleGreatPeace:
		return min(98, prob+10)
	default:
		return prob
	}
}

type directionInfo struct {
	name, nameEn       string
	element            Element
	feature, featureEn string
}

var directions = map[model.Direction]directionInfo{
	model.DirectionNorth:     {"正北", "North", ElementWater, "阴凉、低洼、有水或黑色物体处", "cool, low-lying, watery or black-colored area"},
	model.DirectionSouth:     {"正南", "South", ElementFire, "明亮、高处、燥热、红色或电器旁", "bright, high, hot, red-colored or near electronics"},
	model.DirectionEast:      {"正东", "East", ElementWood, "花草、木家具、高大、青绿色物体处", "plants, wooden furniture, tall or green objects"},
	model.DirectionWest:      {"正西", "West", ElementMetal, "金属、钱柜、白色或坚硬物体旁", "metal, safes, white or hard objects"},
	model.DirectionNortheast: {"东北", "Northeast", ElementEarth, "墙角、山坡、黄色物体或堆积物处", "corners, slopes, yellow objects or storage piles"},
	model.DirectionNorthwest: {"西北", "Northwest", ElementMetal, "贵重物品旁、圆形或高大建筑内", "near valuables, circular or tall structures"},
	model.DirectionSoutheast: {"东南", "Southeast", ElementWood, "风口、过道、细长物体或木艺旁", "breezy spots, corridors, slender objects or woodwork"},
	model.DirectionSouthwest: {"西南", "Southwest", ElementEarth, "储藏室、低矮、柔软物体或布料处", "storage rooms, low-lying areas, soft objects or fabrics"},
	model.DirectionCenter:    {"中央", "Center", ElementEarth, "屋宅中心、桌几、土石堆旁", "center of the room, tables, or near piles of stones"},
}

// DirectionName returns the localized name of d; unknown values read as center
func DirectionName(d model.Direction, lang model.Language) string {
	info := directions[d.Normalize()]
	return pick([2]string{info.name, info.nameEn}, lang)
}

func directionFeature(d model.Direction, lang model.Language) string {
	info := directions[d.Normalize()]
	return pick([2]string{info.feature, info.featureEn}, lang)
}

var shichenNames = [12][2]string{
	{"子时", "Rat"},
	{"丑时", "Ox"},
	{"寅时", "Tiger"},
	{"卯时", "Rabbit"},
	{"辰时", "Dragon"},
	{"巳时", "Snake"},
	{"午时", "Horse"},
	{"未时", "Goat"},
	{"申时", "Monkey"},
	{"酉时", "Rooster"},
	{"戌时", "Dog"},
	{"亥时", "Pig"},
}

// HourBranch maps an hour of day to its two-hour period index (0..11).
// 23:00 starts period 0.
func HourBranch(hour int) int {
	return ((hour + 1) % 24) / 2
}

// ShiChen names the two-hour period that contains hour
func ShiChen(hour int, lang model.Language) string {
	return pick(shichenNames[HourBranch(hour)], lang)
}
