// Command sdfc compiles solid-description source files to GLSL, or
// evaluates the distance field they describe at a point.
//
// Usage:
//
//	sdfc [options] <input>
//	sdfc -eval x,y,z <input>
//
// Examples:
//
//	sdfc shape.sdf                      # Compile to GLSL on stdout
//	sdfc -o shape.glsl shape.sdf        # Compile to GLSL file
//	sdfc -eval 0,0,2 shape.sdf          # Evaluate the field at (0,0,2)
//	sdfc -dump-ir shape.sdf             # Print the lowered IR instead
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	geometrydsl "github.com/sai3097ganesh/geometry-dsl"
)

var (
	output      = flag.String("o", "", "output file (default: stdout)")
	evalPoint   = flag.String("eval", "", "evaluate the field at x,y,z instead of emitting GLSL")
	dumpIR      = flag.Bool("dump-ir", false, "print the lowered IR instead of GLSL")
	versionFlag = flag.Bool("version", false, "print version")
)

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("sdfc version %s\n", version())
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	inputPath := args[0]
	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	src := string(source)

	switch {
	case *evalPoint != "":
		runEval(src)
	case *dumpIR:
		runDumpIR(src)
	default:
		runCompile(src, inputPath)
	}
}

func runEval(src string) {
	p, err := parsePoint(*evalPoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -eval point: %v\n", err)
		os.Exit(1)
	}
	d, err := geometrydsl.EvalAt(src, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Evaluation error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%g\n", d)
}

func runDumpIR(src string) {
	out, err := geometrydsl.DumpIR(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}
	writeOutput(out)
}

func runCompile(src, inputPath string) {
	out, err := geometrydsl.CompileToGLSL(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		if err := os.WriteFile(*output, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully compiled %s to %s (%d bytes)\n", inputPath, *output, len(out))
		return
	}
	writeOutput(out)
}

func writeOutput(out string) {
	if *output != "" {
		if err := os.WriteFile(*output, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if _, err := os.Stdout.WriteString(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func parsePoint(s string) ([3]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]float64{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var p [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("component %d: %w", i, err)
		}
		p[i] = v
	}
	return p, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: sdfc [options] <input>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  sdfc shape.sdf               Compile to GLSL on stdout\n")
	fmt.Fprintf(os.Stderr, "  sdfc -o shape.glsl shape.sdf Compile to GLSL file\n")
	fmt.Fprintf(os.Stderr, "  sdfc -eval 0,0,2 shape.sdf   Evaluate the field at (0,0,2)\n")
	fmt.Fprintf(os.Stderr, "  sdfc -dump-ir shape.sdf      Print the lowered IR\n")
}
