package cmds

import (
	"fmt"
	"os"
	"strings"
)

// Executor maps argument words to commands. A command's parameters consume
// the words after it; words naming no command go to Fallback, or are errors
// without one.
type Executor struct {
	commands map[string]*Command
	Fallback func(arg string) error
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}
	ret.Define("-h", Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help"))
	return ret
}

func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

func (p *Executor) Execute(args []string) (err error) {
	scope := p.commands
	for len(args) > 0 {
		word := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := scope[word]
		if !ok {
			if p.Fallback == nil {
				return fmt.Errorf("unknown command: %s", word)
			}
			if err := p.Fallback(word); err != nil {
				return err
			}
			continue
		}

		if args, err = command.call(args); err != nil {
			return fmt.Errorf("%s: %w", word, err)
		}
		if scope, err = command.enter(scope); err != nil {
			return fmt.Errorf("%s: %w", word, err)
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}
