// Package api provides the public API for using the compiler as a
// library.
//
// Basic usage:
//
//	c, err := api.NewCompiler(api.Options{})
//	if err != nil {
//	    log.Fatalf("failed to create compiler: %v", err)
//	}
//
//	objects, err := c.CompileSource("def main = 6 * 7", "main.kst")
//	if err != nil {
//	    log.Fatalf("compilation failed: %v", err)
//	}
package api

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/compiler"
	"github.com/kestrel-lang/kestrel/internal/config"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// Compiler is the compilation engine: configuration plus the machine the
// compiled objects register with. One Compiler may process several files;
// they share the machine.
type Compiler struct {
	Context *compiler.Context
	Config  *config.Config
}

// Options configures a new Compiler.
type Options struct {
	// ConfigPath is the path to a YAML configuration file; empty means
	// ./kestrel.yaml when that file exists and the defaults otherwise.
	// Environment overrides apply in both cases.
	ConfigPath string

	// Silent suppresses informational messages.
	Silent bool
}

// NewCompiler builds a Compiler from options.
func NewCompiler(options Options) (*Compiler, error) {
	cfg, err := config.LoadConfig(options.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if options.Silent {
		cfg.Silent = true
	}
	return &Compiler{
		Context: compiler.NewContext(cfg),
		Config:  cfg,
	}, nil
}

// CompileSource compiles one module given as source text and returns the
// objects registered with the machine.
func (c *Compiler) CompileSource(source, name string) ([]vm.Object, error) {
	return c.Context.CompileSource(source, name)
}

// CompileFile compiles one module from disk, searching the configured
// include paths.
func (c *Compiler) CompileFile(path string) ([]vm.Object, error) {
	return compiler.ProcessFile(path, c.Context)
}

// Machine exposes the registry the compiled objects live in.
func (c *Compiler) Machine() *vm.Machine {
	return c.Context.Machine
}
