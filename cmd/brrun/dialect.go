package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

type dialect uint8

const (
	dialectStandard dialect = iota + 1
	dialectPlusPlus
	dialectUseful
)

func (d dialect) String() string {
	switch d {
	case dialectStandard:
		return "standard"
	case dialectPlusPlus:
		return "br++"
	case dialectUseful:
		return "useful"
	}
	return fmt.Sprintf("dialect(%d)", d)
}

var (
	standardExts = []string{".bf", ".br", ".b"}
	plusPlusExts = []string{".bpp", ".b++", ".bfpp", ".bf++", ".brpp", ".br++"}
)

func hasExt(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// dialectOf selects the language by file extension. -useful only changes the
// Br++ family.
func dialectOf(path string, useful bool) (dialect, error) {
	switch {
	case hasExt(path, standardExts):
		return dialectStandard, nil
	case hasExt(path, plusPlusExts):
		if useful {
			return dialectUseful, nil
		}
		return dialectPlusPlus, nil
	}
	ext := filepath.Ext(path)
	if ext == "" {
		ext = filepath.Base(path)
	}
	return 0, fmt.Errorf("unsupported file type %s", ext)
}
