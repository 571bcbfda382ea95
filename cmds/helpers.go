package cmds

import "strings"

func Var[T any](name string, desc ...string) *T {
	var value T

	// set
	Define(name, Func(func(v T) {
		value = v
	}).Desc(strings.Join(desc, " ")))

	// set zero
	var zero T
	Define(name+".", Func(func() {
		value = zero
	}))

	return &value
}

func Switch(name string, desc ...string) *bool {
	var value bool

	// set true
	Define(name, Func(func() {
		value = true
	}).Desc(strings.Join(desc, " ")))

	// set false
	Define("!"+name, Func(func() {
		value = false
	}))

	return &value
}

// Count is a switch that remembers how often it was given.
func Count(name string, desc ...string) *int {
	var value int
	Define(name, Func(func() {
		value++
	}).Desc(strings.Join(desc, " ")))
	return &value
}
