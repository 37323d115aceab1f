package model_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/omnifind/pkg/model"
)

func TestParseDirection(t *testing.T) {
	testCases := []struct {
		input    string
		expected model.Direction
		ok       bool
	}{
		{"NORTH", model.DirectionNorth, true},
		{"southwest", model.DirectionSouthwest, true},
		{" East ", model.DirectionEast, true},
		{"", model.DirectionCenter, true},
		{"UP", model.DirectionCenter, false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			d, ok := model.ParseDirection(tc.input)
			gt.Equal(t, d, tc.expected)
			gt.Equal(t, ok, tc.ok)
		})
	}
}

func TestDirectionNormalize(t *testing.T) {
	gt.Equal(t, model.DirectionWest.Normalize(), model.DirectionWest)
	gt.Equal(t, model.Direction("nowhere").Normalize(), model.DirectionCenter)
	gt.Equal(t, model.Direction("").Normalize(), model.DirectionCenter)
}

func TestParseLanguage(t *testing.T) {
	testCases := []struct {
		input    string
		expected model.Language
		ok       bool
	}{
		{"zh", model.LanguageChinese, true},
		{"zh-CN", model.LanguageChinese, true},
		{"en", model.LanguageEnglish, true},
		{"en_US", model.LanguageEnglish, true},
		{"English", model.LanguageEnglish, true},
		{"", model.DefaultLanguage, true},
		{"not a tag!", model.DefaultLanguage, false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			lang, ok := model.ParseLanguage(tc.input)
			gt.Equal(t, lang, tc.expected)
			gt.Equal(t, ok, tc.ok)
		})
	}
}

func TestNewHistoryItem(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	item := model.NewHistoryItem(model.Input{ItemName: "keys"}, model.Result{Probability: 45}, now)

	gt.NotEqual(t, item.ID, model.HistoryID(""))
	gt.Equal(t, item.Timestamp, now.UnixMilli())
	gt.True(t, item.CreatedAt().Equal(now))
	gt.Equal(t, item.Result.Probability, 45)
}

func TestHistoryIDIsTimeOrdered(t *testing.T) {
	a := model.NewHistoryID()
	time.Sleep(2 * time.Millisecond)
	b := model.NewHistoryID()

	gt.True(t, strings.Compare(string(a), string(b)) < 0)
}

func TestResultIn(t *testing.T) {
	r := &model.Result{
		Summary:     "中文",
		SummaryEn:   "english",
		Probability: 60,
	}

	gt.Equal(t, r.In(model.LanguageChinese).Summary, "中文")
	gt.Equal(t, r.In(model.LanguageEnglish).Summary, "english")
	gt.Equal(t, r.In(model.LanguageEnglish).Probability, 60)
}
