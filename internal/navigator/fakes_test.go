package navigator

import (
	"context"
	"slices"

	"github.com/llehouerou/cdplay/internal/input"
)

// fakeListener replays scripted commands, then returns err (ErrQuit if unset).
type fakeListener struct {
	cmds []input.Command
	err  error
}

func (f *fakeListener) Next(ctx context.Context) (input.Command, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(f.cmds) == 0 {
		if f.err != nil {
			return 0, f.err
		}
		return 0, input.ErrQuit
	}
	cmd := f.cmds[0]
	f.cmds = f.cmds[1:]
	return cmd, nil
}

type frame struct {
	title       string
	items       []string
	highlighted int
}

type fakeSink struct {
	frames []frame
}

func (f *fakeSink) Render(title string, items []string, highlighted int) {
	f.frames = append(f.frames, frame{title: title, items: slices.Clone(items), highlighted: highlighted})
}

func (f *fakeSink) last() frame {
	return f.frames[len(f.frames)-1]
}

func (f *fakeSink) highlights() []int {
	out := make([]int, len(f.frames))
	for i, fr := range f.frames {
		out[i] = fr.highlighted
	}
	return out
}

func script(cmds ...input.Command) *fakeListener {
	return &fakeListener{cmds: cmds}
}

const (
	up   = input.CommandUp
	down = input.CommandDown
	sel  = input.CommandSelect
	back = input.CommandBack
)
