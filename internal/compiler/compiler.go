// Package compiler wires the passes into the pipeline: parse, declare,
// identify, desugar, lift, emit. It owns the machine registry shared
// across the files of one compilation session.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/config"
	"github.com/kestrel-lang/kestrel/internal/desugar"
	"github.com/kestrel-lang/kestrel/internal/emit"
	"github.com/kestrel-lang/kestrel/internal/lift"
	"github.com/kestrel-lang/kestrel/internal/parser"
	"github.com/kestrel-lang/kestrel/internal/semantic"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// Context holds the state shared across the files of one session: the
// configuration and the machine the emitted objects register with.
type Context struct {
	Config  *config.Config
	Machine *vm.Machine
}

// NewContext builds a compilation context with the builtin combinators
// interned on a fresh machine.
func NewContext(cfg *config.Config) *Context {
	m := vm.NewMachine()
	vm.RegisterBuiltins(m)
	return &Context{Config: cfg, Machine: m}
}

// seedNamespace declares every combinator the machine already knows, so
// builtins and the definitions of previously compiled modules resolve
// like ordinary declarations. Registered names are flat qualified
// strings; they are split back into namespace segments here.
func (ctx *Context) seedNamespace(env *semantic.Namespace) {
	for _, c := range ctx.Machine.Combinators() {
		q := c.Qualified()
		segments := strings.Split(q, ast.PathSeparator)
		path, name := segments[:len(segments)-1], segments[len(segments)-1]
		// never collides on a fresh namespace tree
		if ctx.Machine.IsData(c) {
			_ = env.DeclareData(path, name, q)
		} else {
			_ = env.Declare(path, name, q)
		}
	}
}

func (ctx *Context) trace(stage string, a ast.Node) {
	if ctx.Config.Trace.Passes && !ctx.Config.Silent {
		config.PrintInfo("-- %s:\n%s\n", stage, ast.Text(a))
	}
}

// Front runs the tree transformations up to and including stage and
// returns the resulting tree.
func (ctx *Context) Front(tree ast.Node, stage string) (ast.Node, error) {
	ctx.trace(config.StageParse, tree)
	if stage == config.StageParse {
		return tree, nil
	}

	env := semantic.NewNamespace()
	ctx.seedNamespace(env)
	if err := semantic.Declare(env, tree); err != nil {
		return nil, err
	}
	tree, err := semantic.Identify(env, tree)
	if err != nil {
		return nil, err
	}
	ctx.trace(config.StageIdentify, tree)
	if stage == config.StageIdentify {
		return tree, nil
	}

	tree, err = desugar.Desugar(tree)
	if err != nil {
		return nil, err
	}
	ctx.trace(config.StageDesugar, tree)
	if stage == config.StageDesugar {
		return tree, nil
	}

	tree, err = lift.Lift(tree)
	if err != nil {
		return nil, err
	}
	ctx.trace(config.StageLift, tree)
	return tree, nil
}

// Compile runs the full pipeline over a parsed module and returns the
// objects registered with the machine, data combinators first.
func (ctx *Context) Compile(tree ast.Node) ([]vm.Object, error) {
	lifted, err := ctx.Front(tree, config.StageLift)
	if err != nil {
		return nil, err
	}

	out, err := emit.Data(ctx.Machine, lifted)
	if err != nil {
		return nil, err
	}
	code, err := emit.Code(ctx.Machine, lifted)
	if err != nil {
		return nil, err
	}
	return append(out, code...), nil
}

// CompileSource parses and compiles one source text.
func (ctx *Context) CompileSource(source, name string) ([]vm.Object, error) {
	tree, err := parser.Parse(source, name)
	if err != nil {
		return nil, err
	}
	return ctx.Compile(tree)
}

// resolve searches the include paths for a source file.
func (ctx *Context) resolve(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	for _, dir := range ctx.Config.IncludePaths {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("source file not found: %s", path)
}

// ProcessFile reads, parses and compiles a single source file.
func ProcessFile(path string, ctx *Context) ([]vm.Object, error) {
	resolved, err := ctx.resolve(path)
	if err != nil {
		return nil, err
	}
	ctx.Config.Debugf("compiling %s\n", resolved)
	src, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", resolved, err)
	}
	return ctx.CompileSource(string(src), resolved)
}

// FrontFile reads and parses a file, then runs the tree passes up to
// stage. Used by the check and dump commands.
func FrontFile(path string, stage string, ctx *Context) (ast.Node, error) {
	resolved, err := ctx.resolve(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", resolved, err)
	}
	tree, err := parser.Parse(string(src), resolved)
	if err != nil {
		return nil, err
	}
	return ctx.Front(tree, stage)
}
