package cmds

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Func wraps fn as a command. Its parameters consume the following
// arguments; it may return an error.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)

	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	numRets := fnValue.Type().NumOut()
	if numRets >= 2 {
		panic(fmt.Errorf("must return 0 or 1 value"))
	}
	if numRets == 1 && fnValue.Type().Out(0) != errorType {
		panic(fmt.Errorf("must return error"))
	}

	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}

func (c *Command) argNames() (ret []string) {
	if !c.Func.IsValid() {
		return
	}
	t := c.Func.Type()
	for i := range t.NumIn() {
		in := t.In(i)
		if in.Kind() == reflect.Pointer {
			ret = append(ret, "["+in.Elem().Kind().String()+"]")
		} else {
			ret = append(ret, "<"+in.Kind().String()+">")
		}
	}
	return
}

// call runs the command on the leading args and returns the rest. Missing
// pointer parameters are passed as pointers to zero values.
func (c *Command) call(args []string) ([]string, error) {
	if !c.Func.IsValid() {
		return args, nil
	}
	t := c.Func.Type()
	in := make([]reflect.Value, t.NumIn())
	for i := range in {
		param := t.In(i)
		if len(args) == 0 {
			if param.Kind() != reflect.Pointer {
				return nil, errors.New("expecting argument, got nothing")
			}
			in[i] = reflect.New(param.Elem())
			continue
		}
		v, err := parseValue(param, args[0])
		if err != nil {
			return nil, err
		}
		in[i] = v
		args = args[1:]
	}
	if out := c.Func.Call(in); len(out) > 0 && !out[0].IsNil() {
		return nil, out[0].Interface().(error)
	}
	return args, nil
}

// enter returns scope extended with the sub commands.
func (c *Command) enter(scope map[string]*Command) (map[string]*Command, error) {
	if len(c.Subs) == 0 {
		return scope, nil
	}
	scope = maps.Clone(scope)
	for name, sub := range c.Subs {
		if _, ok := scope[name]; ok {
			return nil, fmt.Errorf("duplicated sub command %s", name)
		}
		scope[name] = sub
	}
	return scope, nil
}
