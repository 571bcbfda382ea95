package cmds

import "strings"

// Args gathers the words an Executor does not recognize. Up to Want words
// not starting with a dash are positional; everything else is unknown.
// Install it with
//
//	executor.Fallback = args.Collect
type Args struct {
	Want       int
	Positional []string
	Unknown    []string
}

func (a *Args) Collect(arg string) error {
	if len(a.Positional) < a.Want && !strings.HasPrefix(arg, "-") {
		a.Positional = append(a.Positional, arg)
		return nil
	}
	a.Unknown = append(a.Unknown, arg)
	return nil
}

// Get returns the i-th positional word, or "" when there are fewer.
func (a *Args) Get(i int) string {
	if i < len(a.Positional) {
		return a.Positional[i]
	}
	return ""
}
