package brconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/br/cmds"
	"github.com/reusee/br/configs"
	"github.com/reusee/br/logs"
	"github.com/reusee/br/modes"
)

//go:embed schema.cue
var schema string

var configFlag = cmds.Var[string]("-config", "read configuration from this CUE file first")

func (Module) ConfigsLoader(
	logger logs.Logger,
	mode modes.Mode,
) configs.Loader {

	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	if *configFlag != "" {
		paths = append(paths, *configFlag)
	}

	if mode == modes.ModeDevelopment {
		return configs.NewLoader(paths, schema)
	}

	filenames := []string{
		"br.cue",
		".br.cue",
	}

	// working directory
	workingDir, err := os.Getwd()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(workingDir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	// user config dir
	configDir, err := os.UserConfigDir()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(configDir, "br", filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	// system wide dir
	for _, filename := range filenames {
		path := filepath.Join("/etc", filename)
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}

	return configs.NewLoader(paths, schema)
}
