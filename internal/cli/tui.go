package cli

import (
	"github.com/julianstephens/streakly/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	return tui.Run(tr)
}
