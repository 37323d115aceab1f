package reading

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/divination"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/utils/logging"
)

// LostTimeLayout is the ISO local form lost times are resolved to
const LostTimeLayout = "2006-01-02T15:04"

// Lost-time presets offered next to an explicit datetime
const (
	PresetNow     = "now"
	PresetHourAgo = "1h"
	PresetHalfDay = "12h"
)

var presetOffsets = map[string]time.Duration{
	PresetNow:     0,
	PresetHourAgo: time.Hour,
	PresetHalfDay: 12 * time.Hour,
}

// ResolveLostTime turns a preset (or an empty value, read as now) into the
// ISO local form. Anything else is passed through untouched.
func (u *UseCase) ResolveLostTime(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		v = PresetNow
	}
	if offset, ok := presetOffsets[v]; ok {
		return u.clock().Add(-offset).Format(LostTimeLayout)
	}
	return strings.TrimSpace(s)
}

// Outcome is what one cast produces: the saved record and the history
// listed right after saving
type Outcome struct {
	Item    *model.HistoryItem
	History []*model.HistoryItem
}

// Cast validates input, runs the calculator, stores the record and lists
// history. Nothing is stored when the calculation fails.
func (u *UseCase) Cast(ctx context.Context, input model.Input, lang model.Language) (*Outcome, error) {
	input.ItemName = strings.TrimSpace(input.ItemName)
	if input.ItemName == "" {
		return nil, goerr.Wrap(ErrEmptyItemName, "cannot cast without an item")
	}
	input.Direction = input.Direction.Normalize()
	input.LostTime = u.ResolveLostTime(input.LostTime)
	if lang == "" {
		lang = model.DefaultLanguage
	}

	now := u.clock()
	result, err := u.calculate(input, lang, now)
	if err != nil {
		return nil, err
	}

	item := model.NewHistoryItem(input, *result, now)
	logging.From(ctx).Debug("cast complete",
		"id", item.ID,
		"item", input.ItemName,
		"probability", result.Probability)

	if err := u.repo.PutHistory(ctx, item); err != nil {
		return nil, goerr.Wrap(err, "failed to save history", goerr.V("id", item.ID))
	}

	history, err := u.repo.ListHistory(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list history")
	}

	return &Outcome{Item: item, History: history}, nil
}

func (u *UseCase) calculate(input model.Input, lang model.Language, now time.Time) (result *model.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = goerr.Wrap(ErrCalculationFailed, fmt.Sprint(r),
				goerr.V("item", input.ItemName),
				goerr.V("lost_time", input.LostTime))
		}
	}()

	result = divination.Calculate(input, lang, divination.WithLocation(u.location))
	divination.Narrate(result, input.Direction, now)
	return result, nil
}
