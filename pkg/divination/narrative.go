package divination

import (
	"time"

	"github.com/m-mizutani/omnifind/pkg/model"
)

type readingData struct {
	Direction string
	Line      int
	Yin       bool
	Period    string
}

// Narrate replaces the Six Lines texts of res with the three-step reading
// derived from the final probability: an even probability reads as a yin
// line and the line position is probability mod 6 + 1. now supplies the
// current two-hour period named in the advice.
func Narrate(res *model.Result, dir model.Direction, now time.Time) {
	line := res.Probability%6 + 1
	yin := res.Probability%2 == 0

	for _, lang := range []model.Language{model.LanguageChinese, model.LanguageEnglish} {
		text := render(templateName("reading", lang), readingData{
			Direction: DirectionName(dir, lang),
			Line:      line,
			Yin:       yin,
			Period:    ShiChen(now.Hour(), lang),
		})
		if lang == model.LanguageEnglish {
			res.LiuYaoEn = text
		} else {
			res.LiuYao = text
		}
	}
}
