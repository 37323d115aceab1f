package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/usecase/reading"
)

// isTerminal reports whether r is an interactive terminal
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && readline.IsTerminal(int(f.Fd()))
}

type promptField struct {
	prompt string
	dest   *string
}

// promptInput asks for every field of input that was not given by flag.
// Only the item name is mandatory.
func promptInput(in io.Reader, out io.Writer, input *model.Input, lang model.Language) error {
	rc, ok := in.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(in)
	}

	rl, err := readline.NewEx(&readline.Config{
		Stdin:  rc,
		Stdout: out,
		Stderr: out,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to start prompt")
	}
	defer rl.Close()

	zh := lang == model.LanguageChinese
	label := func(zhText, enText string) string {
		if zh {
			return zhText
		}
		return enText
	}

	direction := string(input.Direction)
	fields := []promptField{
		{label("遗失物品: ", "Item name: "), &input.ItemName},
		{label("遗失地点: ", "Lost location: "), &input.LostLocation},
		{label("方位 (NORTH…CENTER): ", "Direction (NORTH…CENTER): "), &direction},
		{label("遗失时间 (now, 1h, 12h 或 2006-01-02T15:04): ", "Lost time (now, 1h, 12h or 2006-01-02T15:04): "), &input.LostTime},
	}

	for _, f := range fields {
		if *f.dest != "" {
			continue
		}
		rl.SetPrompt(f.prompt)
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to read input")
		}
		*f.dest = strings.TrimSpace(line)

		if f.dest == &input.ItemName && input.ItemName == "" {
			return goerr.Wrap(reading.ErrEmptyItemName, label("请输入物品名称", "Please enter item name"))
		}
	}

	input.Direction, _ = model.ParseDirection(direction)
	return nil
}
