package model

import (
	"strings"

	"golang.org/x/text/language"
)

type Language string

const (
	LanguageChinese Language = "zh"
	LanguageEnglish Language = "en"
)

// DefaultLanguage is used when nothing else is requested
const DefaultLanguage = LanguageChinese

var supportedLanguages = []Language{LanguageChinese, LanguageEnglish}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.Chinese,
	language.English,
})

// ParseLanguage maps a BCP 47 tag or a plain name ("zh-CN", "en_US",
// "english") to a supported Language. Unmatched input yields DefaultLanguage
// and false.
func ParseLanguage(s string) (Language, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "":
		return DefaultLanguage, true
	case "chinese", "中文":
		return LanguageChinese, true
	case "english":
		return LanguageEnglish, true
	}

	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return DefaultLanguage, false
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage, false
	}
	return supportedLanguages[idx], true
}
