// Command sutrarepl is a small interactive shell for exploring Sutra
// scripts during development. It is a REPL in the spirit of the
// terexlang trepl command, not the golden-file test CLI spec.md's
// non-goals describe: no subcommands, no colorized diffing, no
// .expected file comparison.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/eval"
	"github.com/cpond8/sutra/macro"
	"github.com/cpond8/sutra/parser"
	"github.com/cpond8/sutra/registry"
	"github.com/cpond8/sutra/sink"
	"github.com/cpond8/sutra/validate"
	"github.com/cpond8/sutra/world"
)

func tracer() tracing.Trace {
	return tracing.Select("sutra.repl")
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	seed := flag.Int64("seed", world.DefaultSeed, "World PRNG seed")
	initf := flag.String("init", "", "Sutra source file to load before the prompt starts")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to the Sutra REPL")

	reg, err := registry.NewCanonical()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	rl, err := readline.New("sutra> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer rl.Close()

	r := &repl{
		registry: reg,
		ctx:      eval.NewContext(reg, sink.NewWriter(os.Stdout)),
		env:      eval.NewEnv(nil),
		world:    world.New(*seed),
		rl:       rl,
	}
	if *initf != "" {
		r.loadFile(*initf)
	}
	tracer().Infof("Quit with <ctrl>D")
	r.loop()
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{Text: "  >>", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: "  Error", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
}

// repl holds state shared across lines: the world and the lexical
// environment both persist between inputs, so a later line can read back
// a variable or world path an earlier line set.
type repl struct {
	registry *registry.Registry
	ctx      *eval.Context
	env      *eval.Env
	world    world.World
	rl       *readline.Instance
}

func (r *repl) loadFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	r.runSource(string(src))
}

func (r *repl) loop() {
	for {
		line, err := r.rl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		r.runSource(line)
	}
	fmt.Println("Good bye!")
}

func (r *repl) runSource(src string) {
	forms, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		pterm.Error.Println(diag.Render(diags))
		return
	}
	expanded, _, mdiags := macro.Expand(forms, r.registry.Macros)
	if diag.HasErrors(mdiags) {
		pterm.Error.Println(diag.Render(mdiags))
		return
	}
	if vdiags := validate.Validate(expanded); diag.HasErrors(vdiags) {
		pterm.Error.Println(diag.Render(vdiags))
		return
	}
	v, w, err := eval.EvalAll(expanded, r.env, r.world, r.ctx)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	r.world = w
	pterm.Info.Println(v.String())
}
