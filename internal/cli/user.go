package cli

import (
	"github.com/julianstephens/streakly/internal/utils"
	"github.com/julianstephens/streakly/internal/validation"
)

type UserCmd struct {
	Show  UserShowCmd  `cmd:"" help:"Show the stored user name." default:"1"`
	Set   UserSetCmd   `cmd:"" help:"Set the user name used in greetings."`
	Clear UserClearCmd `cmd:"" help:"Forget the stored user name."`
}

type UserShowCmd struct{}

func (c *UserShowCmd) Run(ctx *Context) error {
	name, ok, err := ctx.Persistence.GetUserName()
	if err != nil {
		return err
	}
	if !ok || name == "" {
		ctx.println("No user name set. Use 'streakly user set NAME' to add one.")
		return nil
	}
	ctx.printf("%s, %s\n", utils.Greeting(ctx.Now()), name)
	return nil
}

type UserSetCmd struct {
	Name string `arg:"" help:"Your name."`
}

func (c *UserSetCmd) Run(ctx *Context) error {
	name, err := validation.NormalizeName(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Persistence.SaveUserName(name); err != nil {
		return err
	}
	ctx.printf("Saved user name: %s\n", name)
	return nil
}

type UserClearCmd struct{}

func (c *UserClearCmd) Run(ctx *Context) error {
	if err := ctx.Persistence.ClearUserName(); err != nil {
		return err
	}
	ctx.println("Cleared user name")
	return nil
}
