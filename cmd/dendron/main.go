package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agenthands/dendron/pkg/compiler/emitter"
	"github.com/agenthands/dendron/pkg/compiler/lexer"
	"github.com/agenthands/dendron/pkg/core/diag"
	"github.com/agenthands/dendron/pkg/interp"
	"github.com/agenthands/dendron/pkg/listing"
	"github.com/agenthands/dendron/pkg/source"
	"github.com/agenthands/dendron/pkg/symtab"
	"github.com/agenthands/dendron/pkg/vm"
)

const usage = `Usage: dendron <command> [flags] <source.dd>

Commands:
  run        compile and execute a program
  list       print the compiled instructions
  infix      print the program in infix notation
  interpret  evaluate the parse tree directly
  repl       interactive session
`

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(dispatch(os.Args[1:], os.Stdout, os.Stderr))
}

func dispatch(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "run":
		return cmdRun(args[1:], stdout, stderr)
	case "list":
		return cmdList(args[1:], stdout, stderr)
	case "infix":
		return cmdInfix(args[1:], stdout, stderr)
	case "interpret":
		return cmdInterpret(args[1:], stdout, stderr)
	case "repl":
		return cmdRepl(args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return exitUsage
	}
}

// loaderFlags registers the source loader configuration on fs.
type loaderFlags struct {
	root    *string
	maxSize *int64
}

func addLoaderFlags(fs *flag.FlagSet) loaderFlags {
	wd, _ := os.Getwd()
	return loaderFlags{
		root:    fs.String("root", wd, "directory programs must live under"),
		maxSize: fs.Int64("max-size", source.DefaultMaxFileSize, "maximum program size in bytes"),
	}
}

func (lf loaderFlags) loader() *source.Loader {
	return source.NewLoader(*lf.root, *lf.maxSize)
}

// parseArgs accepts the file either before or after the flags, so both
// "run prog.dd -list" and "run -list prog.dd" work.
func parseArgs(fs *flag.FlagSet, args []string, stderr io.Writer) (string, bool) {
	var path string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		path, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", false
	}
	if path == "" {
		path = fs.Arg(0)
	}
	if path == "" {
		fmt.Fprintf(stderr, "%s: missing source file\n%s", fs.Name(), usage)
		return "", false
	}
	return path, true
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func load(lf loaderFlags, path string, stderr io.Writer) ([]lexer.Statement, bool) {
	stmts, err := lf.loader().Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file: %v\n", err)
		return nil, false
	}
	return stmts, true
}

func compile(stmts []lexer.Statement, stderr io.Writer) (vm.Program, bool) {
	prog, err := emitter.Compile(stmts)
	if err != nil {
		fmt.Fprintf(stderr, "Compilation Error: %v\n", err)
		return nil, false
	}
	return prog, true
}

func cmdRun(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("run", stderr)
	showList := fs.Bool("list", false, "print the compiled instructions before running")
	showInfix := fs.Bool("infix", false, "print the program in infix notation before running")
	quiet := fs.Bool("quiet", false, "only print program output")
	asm := fs.Bool("asm", false, "treat the file as an instruction listing")
	lf := addLoaderFlags(fs)

	path, ok := parseArgs(fs, args, stderr)
	if !ok {
		return exitUsage
	}

	var prog vm.Program
	if *asm {
		data, err := lf.loader().ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading file: %v\n", err)
			return exitError
		}
		prog, err = vm.ParseProgram(string(data))
		if err != nil {
			fmt.Fprintf(stderr, "Assembly Error: %v\n", err)
			return exitError
		}
	} else {
		stmts, ok := load(lf, path, stderr)
		if !ok {
			return exitError
		}
		if *showInfix {
			if code := printInfix(stmts, stdout, stderr); code != exitOK {
				return code
			}
		}
		if prog, ok = compile(stmts, stderr); !ok {
			return exitError
		}
	}

	if *showList {
		printListing(prog, stdout)
	}

	m := vm.NewMachine(stdout)
	if !*quiet {
		fmt.Fprintln(stdout, "Executing compiled code...")
	}
	res, err := m.Execute(prog)
	if !*quiet {
		verb := "ended"
		if err != nil {
			verb = "halted"
		}
		fmt.Fprintf(stdout, "Machine: execution %s with %d items left on the stack.\n\n", verb, res.Depth)
		dumpTable(res.Table, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Runtime Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func cmdList(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("list", stderr)
	raw := fs.Bool("raw", false, "omit the header so the output can be fed to run -asm")
	lf := addLoaderFlags(fs)

	path, ok := parseArgs(fs, args, stderr)
	if !ok {
		return exitUsage
	}
	stmts, ok := load(lf, path, stderr)
	if !ok {
		return exitError
	}
	prog, ok := compile(stmts, stderr)
	if !ok {
		return exitError
	}

	if *raw {
		fmt.Fprint(stdout, listing.Instructions(prog))
	} else {
		printListing(prog, stdout)
	}
	return exitOK
}

func cmdInfix(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("infix", stderr)
	lf := addLoaderFlags(fs)

	path, ok := parseArgs(fs, args, stderr)
	if !ok {
		return exitUsage
	}
	stmts, ok := load(lf, path, stderr)
	if !ok {
		return exitError
	}
	return printInfix(stmts, stdout, stderr)
}

func cmdInterpret(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("interpret", stderr)
	lf := addLoaderFlags(fs)

	path, ok := parseArgs(fs, args, stderr)
	if !ok {
		return exitUsage
	}
	stmts, ok := load(lf, path, stderr)
	if !ok {
		return exitError
	}

	fmt.Fprintln(stdout, "Interpreting the parse tree...")
	table, err := interp.New(stdout).Run(stmts)
	if err != nil {
		label := "Runtime Error"
		if !diag.KindOf(err).Runtime() {
			label = "Compilation Error"
		}
		fmt.Fprintf(stderr, "%s: %v\n", label, err)
		return exitError
	}
	fmt.Fprintln(stdout, "Interpretation complete")
	fmt.Fprintln(stdout)
	dumpTable(table, stdout)
	return exitOK
}

func printListing(prog vm.Program, stdout io.Writer) {
	fmt.Fprintln(stdout, "\nCompiled code:")
	fmt.Fprint(stdout, listing.Instructions(prog))
	fmt.Fprintln(stdout)
}

func printInfix(stmts []lexer.Statement, stdout, stderr io.Writer) int {
	text, err := listing.Infix(stmts)
	if err != nil {
		fmt.Fprintf(stderr, "Compilation Error: %v\n", err)
		return exitError
	}
	fmt.Fprintln(stdout, "The Program, with expressions in infix notation:")
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, text)
	fmt.Fprintln(stdout)
	return exitOK
}

func dumpTable(t *symtab.Table, stdout io.Writer) {
	fmt.Fprintln(stdout, "Symbol table:")
	if t.Len() == 0 {
		fmt.Fprintln(stdout, "  (empty)")
		return
	}
	for _, name := range t.Names() {
		v, _ := t.Lookup(name)
		fmt.Fprintf(stdout, "  %s = %d\n", name, v)
	}
}
