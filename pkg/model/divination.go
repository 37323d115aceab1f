package model

import "strings"

type Direction string

const (
	DirectionNorth     Direction = "NORTH"
	DirectionSouth     Direction = "SOUTH"
	DirectionEast      Direction = "EAST"
	DirectionWest      Direction = "WEST"
	DirectionNortheast Direction = "NORTHEAST"
	DirectionNorthwest Direction = "NORTHWEST"
	DirectionSoutheast Direction = "SOUTHEAST"
	DirectionSouthwest Direction = "SOUTHWEST"
	DirectionCenter    Direction = "CENTER"
)

// Directions lists every compass value in the order the form offers them
var Directions = []Direction{
	DirectionNorth,
	DirectionSouth,
	DirectionEast,
	DirectionWest,
	DirectionNortheast,
	DirectionNorthwest,
	DirectionSoutheast,
	DirectionSouthwest,
	DirectionCenter,
}

// ParseDirection accepts a direction name case-insensitively. Empty or unknown
// values resolve to DirectionCenter and ok is false for unknown values.
func ParseDirection(s string) (Direction, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return DirectionCenter, true
	}
	for _, d := range Directions {
		if string(d) == v {
			return d, true
		}
	}
	return DirectionCenter, false
}

// Normalize returns d itself when it is a known direction, otherwise DirectionCenter
func (d Direction) Normalize() Direction {
	for _, v := range Directions {
		if v == d {
			return d
		}
	}
	return DirectionCenter
}

// Input is what the seeker submits. It is not modified after submission.
type Input struct {
	ItemName     string    `json:"itemName" yaml:"itemName"`
	LostLocation string    `json:"lostLocation" yaml:"lostLocation"`
	Direction    Direction `json:"direction" yaml:"direction"`
	LostTime     string    `json:"lostTime" yaml:"lostTime"`
}

// Result holds both language renditions of a reading. Lang records which one
// was requested at cast time.
type Result struct {
	Meihua             string   `json:"meihua" yaml:"meihua"`
	XiaoLiuRen         string   `json:"xiaoliuren" yaml:"xiaoliuren"`
	LiuYao             string   `json:"liuyao" yaml:"liuyao"`
	Summary            string   `json:"summary" yaml:"summary"`
	LocationAnalysis   string   `json:"locationAnalysis" yaml:"locationAnalysis"`
	MeihuaEn           string   `json:"meihuaEn" yaml:"meihuaEn"`
	XiaoLiuRenEn       string   `json:"xiaoliurenEn" yaml:"xiaoliurenEn"`
	LiuYaoEn           string   `json:"liuyaoEn" yaml:"liuyaoEn"`
	SummaryEn          string   `json:"summaryEn" yaml:"summaryEn"`
	LocationAnalysisEn string   `json:"locationAnalysisEn" yaml:"locationAnalysisEn"`
	Probability        int      `json:"probability" yaml:"probability"`
	Lang               Language `json:"lang,omitempty" yaml:"lang,omitempty"`
}

// Localized is one language's view of a Result
type Localized struct {
	Summary          string
	LocationAnalysis string
	Meihua           string
	LiuYao           string
	XiaoLiuRen       string
	Probability      int
}

// In picks the texts for lang
func (r *Result) In(lang Language) Localized {
	if lang == LanguageEnglish {
		return Localized{
			Summary:          r.SummaryEn,
			LocationAnalysis: r.LocationAnalysisEn,
			Meihua:           r.MeihuaEn,
			LiuYao:           r.LiuYaoEn,
			XiaoLiuRen:       r.XiaoLiuRenEn,
			Probability:      r.Probability,
		}
	}
	return Localized{
		Summary:          r.Summary,
		LocationAnalysis: r.LocationAnalysis,
		Meihua:           r.Meihua,
		LiuYao:           r.LiuYao,
		XiaoLiuRen:       r.XiaoLiuRen,
		Probability:      r.Probability,
	}
}
