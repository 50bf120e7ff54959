package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/averas/assembunny/machine"
)

// RunConfig is the run configuration, loadable from a YAML file.
type RunConfig struct {
	Registers map[string]int64 `yaml:"registers,omitempty"` // initial register overrides
	Defines   map[string]int64 `yaml:"defines,omitempty"`   // parser equates for $(...) expressions
	Optimize  bool             `yaml:"optimize,omitempty"`  // apply the multiply rewrite before running
	Count     int              `yaml:"count,omitempty"`     // outputs to pull when streaming
}

// NewRunConfig creates a run configuration with defaults applied.
func NewRunConfig() *RunConfig {
	return &RunConfig{
		Count: 12,
	}
}

// LoadConfig loads the run configuration from the specific path/file.
func (rc *RunConfig) LoadConfig(fileName string) error {
	confPath, fileNameOnly := filepath.Split(fileName)
	fileSuffix := path.Ext(fileName)
	confName := fileNameOnly[0 : len(fileNameOnly)-len(fileSuffix)]

	v := viper.New()
	v.SetConfigName(confName)
	v.AddConfigPath(confPath)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(rc)
}

// loadRunConfig loads the --config file, or returns the defaults.
func (opts *rootOptions) loadRunConfig() (*RunConfig, error) {
	conf := NewRunConfig()
	if opts.Config != "" {
		if err := conf.LoadConfig(opts.Config); err != nil {
			return nil, err
		}
	}

	return conf, nil
}

// loadProgram parses an assembunny source file with the configured defines.
func loadProgram(fileName string, conf *RunConfig, verbose bool) (*machine.Program, error) {
	inf, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer inf.Close()

	parser := &machine.Parser{Verbose: verbose}
	for name, value := range conf.Defines {
		parser.Predefine(name, value)
	}

	prog, err := parser.Parse(inf)
	if err != nil {
		return nil, err
	}

	if conf.Optimize {
		if err := prog.Optimize(); err != nil {
			return nil, err
		}
	}

	return prog, nil
}

// initialRegisters merges the configured registers with --reg overrides.
func initialRegisters(conf *RunConfig, overrides []string) (machine.Registers, error) {
	regs := machine.Registers{}

	for name, value := range conf.Registers {
		reg, ok := machine.RegisterByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown register %q", name)
		}
		regs[reg] = value
	}

	for _, override := range overrides {
		name, text, found := strings.Cut(override, "=")
		if !found {
			return nil, fmt.Errorf("register override %q is not NAME=VALUE", override)
		}
		reg, ok := machine.RegisterByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown register %q", name)
		}
		value, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("register override %q: %w", override, err)
		}
		regs[reg] = value
	}

	return regs, nil
}
