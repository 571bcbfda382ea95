package cmds

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/reusee/br/vars"
)

// parseValue converts one argument word to a value of type t. A pointer type
// parses into a fresh element.
func parseValue(t reflect.Type, str string) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	switch {

	case t.Kind() == reflect.Pointer:
		elem, err := parseValue(t.Elem(), str)
		if err != nil {
			return v, err
		}
		v.Set(reflect.New(t.Elem()))
		v.Elem().Set(elem)

	case t.Kind() == reflect.Bool:
		v.SetBool(vars.StrToBool(str))

	case t.Kind() == reflect.String:
		v.SetString(str)

	case v.CanInt():
		n, err := strconv.ParseInt(str, 10, t.Bits())
		if err != nil {
			return v, fmt.Errorf("convert %s to int: %w", str, err)
		}
		v.SetInt(n)

	case v.CanUint():
		n, err := strconv.ParseUint(str, 10, t.Bits())
		if err != nil {
			return v, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		v.SetUint(n)

	case v.CanFloat():
		f, err := strconv.ParseFloat(str, t.Bits())
		if err != nil {
			return v, fmt.Errorf("convert %s to float: %w", str, err)
		}
		v.SetFloat(f)

	default:
		return v, fmt.Errorf("unsupported type: %v", t)
	}
	return v, nil
}
