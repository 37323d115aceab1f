package divination

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/omnifind/pkg/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		panic(fmt.Sprintf("render %s: %v", name, err))
	}
	return strings.TrimSpace(buf.String())
}

func templateName(base string, lang model.Language) string {
	if lang == model.LanguageEnglish {
		return base + "_en.tmpl"
	}
	return base + "_zh.tmpl"
}

type meihuaData struct {
	Upper, Lower  string
	Theory, Plain string
	Line          int
	UpperMoving   bool
	Yin           bool
	Direction     string
	Feature       string
}

type liuyaoData struct {
	Element string
	Line    int
	Yin     bool
}

// Calculate renders the bilingual result for input. lang only tags the
// result with the language it was requested in; both renditions are always
// filled.
func Calculate(input model.Input, lang model.Language, opts ...Option) *model.Result {
	c := Plot(input, opts...)

	res := &model.Result{
		Probability: c.Probability,
		Lang:        lang,
	}

	res.Meihua = c.meihua(model.LanguageChinese)
	res.MeihuaEn = c.meihua(model.LanguageEnglish)

	res.LiuYao = c.liuyao(model.LanguageChinese)
	res.LiuYaoEn = c.liuyao(model.LanguageEnglish)

	res.Summary = c.summary(input.ItemName, model.LanguageChinese)
	res.SummaryEn = c.summary(input.ItemName, model.LanguageEnglish)

	res.XiaoLiuRen = c.xiaoliuren(model.LanguageChinese)
	res.XiaoLiuRenEn = c.xiaoliuren(model.LanguageEnglish)

	res.LocationAnalysis = c.location.analysis(model.LanguageChinese)
	res.LocationAnalysisEn = c.location.analysis(model.LanguageEnglish)

	return res
}

func (c Chart) meihua(lang model.Language) string {
	text := relationTexts[c.Relation]
	return render(templateName("meihua", lang), meihuaData{
		Upper:       c.Upper.Name(lang),
		Lower:       c.Lower.Name(lang),
		Theory:      c.Relation.Name(lang),
		Plain:       pick([2]string{text.plain, text.plainEn}, lang),
		Line:        c.MovingLine,
		UpperMoving: c.UpperMoving(),
		Yin:         c.YinLine(),
		Direction:   DirectionName(c.Direction, lang),
		Feature:     directionFeature(c.Direction, lang),
	})
}

func (c Chart) liuyao(lang model.Language) string {
	return render(templateName("liuyao", lang), liuyaoData{
		Element: c.Ti.Element().Name(lang),
		Line:    c.MovingLine,
		Yin:     c.YinLine(),
	})
}

func (c Chart) summary(itemName string, lang model.Language) string {
	dir := DirectionName(c.Direction, lang)
	switch {
	case c.Cycle == CycleVoid && lang == model.LanguageEnglish:
		return fmt.Sprintf(`[Void] "%s" is elusive, difficult to retrieve.`, itemName)
	case c.Cycle == CycleVoid:
		return fmt.Sprintf("【空亡】“%s”踪迹全无，恐难寻回。", itemName)
	case lang == model.LanguageEnglish:
		return fmt.Sprintf(`[%s] "%s" is likely to the %s. Search promptly.`, c.Cycle.Name(lang), itemName, dir)
	default:
		return fmt.Sprintf("【%s】“%s”尚在%s方，速去寻之。", c.Cycle.Name(lang), itemName, dir)
	}
}

func (c Chart) xiaoliuren(lang model.Language) string {
	name := c.Cycle.Name(lang)
	if lang == model.LanguageEnglish {
		where := "nearby"
		if c.Cycle == CycleVoid {
			where = "far/lost"
		}
		return fmt.Sprintf("Result: %s\nLocated %s.", name, where)
	}
	where := "近处"
	if c.Cycle == CycleVoid {
		where = "虚无处"
	}
	return fmt.Sprintf("测得：%s\n物在%s。", name, where)
}
