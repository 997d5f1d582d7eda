// Package sh provides the interactive menu shell.
package sh

import (
	"context"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/cmdlink/pkg/cli/menu"
	"github.com/robotalks/cmdlink/pkg/l1"
)

// Shell provides ishell backed interactive menu.
type Shell struct {
	Shell     *ishell.Shell
	Requester l1.Requester
	Context   context.Context
}

const shellKey = "$shell"

// New creates a new shell.
func New(ctx context.Context, requester l1.Requester) *Shell {
	s := &Shell{
		Shell:     ishell.New(),
		Requester: requester,
		Context:   ctx,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("cmdlink > ")
	// only menu keys are commands.
	for _, name := range []string{"exit", "help", "clear"} {
		s.Shell.DeleteCmd(name)
	}
	for _, item := range menu.Items {
		s.Shell.AddCmd(&ishell.Cmd{
			Name: item.Key,
			Help: item.Command.String(),
			Func: handleLine,
		})
	}
	s.Shell.AddCmd(&ishell.Cmd{Name: menu.KeyHelp, Help: "show this menu", Func: handleLine})
	s.Shell.AddCmd(&ishell.Cmd{Name: menu.KeyQuit, Help: "quit", Func: handleLine})
	s.Shell.NotFound(handleLine)
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

func handleLine(c *ishell.Context) {
	s := ShellFrom(c)
	var out strings.Builder
	if menu.Handle(s.Context, lineOf(c), s.Requester, &out) {
		c.Stop()
		return
	}
	c.Print(out.String())
}

// lineOf restores the input line. RawArgs is only set for lines read
// interactively.
func lineOf(c *ishell.Context) string {
	if len(c.RawArgs) > 0 {
		return strings.Join(c.RawArgs, " ")
	}
	words := c.Args
	if c.Cmd.Name != "" {
		words = append([]string{c.Cmd.Name}, c.Args...)
	}
	return strings.Join(words, " ")
}

// Run prints the menu and processes input lines until quit.
func (s *Shell) Run() {
	s.Shell.Print(menu.Text())
	s.Shell.Run()
	s.Shell.Close()
}
