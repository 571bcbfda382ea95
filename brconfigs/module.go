package brconfigs

import (
	"github.com/reusee/br/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
