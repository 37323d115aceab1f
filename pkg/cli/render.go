package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/divination"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("8")).
	Padding(0, 1)

// output holds rendering options shared by commands
type output struct {
	format string
	lang   string
}

func outputFlags(out *output) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (text, json, yaml)",
			Value:       formatText,
			Sources:     cli.EnvVars("OMNIFIND_FORMAT"),
			Destination: &out.format,
		},
		&cli.StringFlag{
			Name:        "lang",
			Usage:       "Result language (zh, en)",
			Value:       string(model.DefaultLanguage),
			Sources:     cli.EnvVars("OMNIFIND_LANG"),
			Destination: &out.lang,
		},
	}
}

func (o *output) validate() error {
	switch o.format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return goerr.New("unknown output format", goerr.V("format", o.format))
	}
}

func (o *output) language() model.Language {
	lang, _ := model.ParseLanguage(o.lang)
	return lang
}

// structured writes v as json or yaml. It reports false for text format.
func (o *output) structured(w io.Writer, v any) (bool, error) {
	switch o.format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return true, goerr.Wrap(err, "failed to encode json")
		}
		return true, nil

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, goerr.Wrap(err, "failed to encode yaml")
		}
		if err := enc.Close(); err != nil {
			return true, goerr.Wrap(err, "failed to flush yaml")
		}
		return true, nil
	}
	return false, nil
}

func probabilityStyle(p int) lipgloss.Style {
	switch {
	case p >= 75:
		return goodStyle
	case p >= 45:
		return warnStyle
	default:
		return badStyle
	}
}

type labels struct {
	probability string
	summary     string
	location    string
	meihua      string
	liuyao      string
	xiaoliuren  string
	lostAt      string
	records     string
}

var labelSets = map[model.Language]labels{
	model.LanguageChinese: {
		probability: "寻回概率",
		summary:     "断语",
		location:    "方位解析",
		meihua:      "梅花易数",
		liuyao:      "六爻",
		xiaoliuren:  "小六壬",
		lostAt:      "遗失时辰",
		records:     "历史记录 %d 条",
	},
	model.LanguageEnglish: {
		probability: "Recovery chance",
		summary:     "Verdict",
		location:    "Location",
		meihua:      "Plum Blossom",
		liuyao:      "Six Lines",
		xiaoliuren:  "Small Liu Ren",
		lostAt:      "Lost during",
		records:     "%d records in history",
	},
}

func labelsFor(lang model.Language) labels {
	if l, ok := labelSets[lang]; ok {
		return l
	}
	return labelSets[model.DefaultLanguage]
}

// renderItem draws one record as a panel in lang
func renderItem(item *model.HistoryItem, lang model.Language) string {
	l := labelsFor(lang)
	text := item.Result.In(lang)

	header := titleStyle.Render(item.Input.ItemName) + "  " +
		mutedStyle.Render(string(item.ID))
	meta := []string{mutedStyle.Render(item.CreatedAt().Format("2006-01-02 15:04"))}
	if t, ok := divination.ParseLostTime(item.Input.LostTime, item.CreatedAt().Location()); ok {
		meta = append(meta, mutedStyle.Render(l.lostAt+" "+divination.ShiChen(t.Hour(), lang)))
	}

	section := func(title, body string) string {
		return accentStyle.Render(title) + "\n" + body
	}

	body := []string{
		header,
		strings.Join(meta, "  "),
		"",
		l.probability + ": " + probabilityStyle(text.Probability).Render(fmt.Sprintf("%d%%", text.Probability)),
		"",
		section(l.summary, text.Summary),
		"",
		section(l.location, text.LocationAnalysis),
		"",
		section(l.meihua, text.Meihua),
		"",
		section(l.liuyao, text.LiuYao),
		"",
		section(l.xiaoliuren, text.XiaoLiuRen),
	}
	return panelStyle.Render(strings.Join(body, "\n"))
}

// renderHistory draws the records as a table
func renderHistory(items []*model.HistoryItem, lang model.Language) string {
	headers := []string{"ID", "DATE", "ITEM", "%"}
	if lang == model.LanguageChinese {
		headers = []string{"ID", "日期", "物品", "%"}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...)
	for _, item := range items {
		t.Row(
			string(item.ID),
			item.CreatedAt().Format("2006-01-02 15:04"),
			item.Input.ItemName,
			fmt.Sprint(item.Result.Probability),
		)
	}
	return t.String()
}
