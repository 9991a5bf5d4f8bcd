package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-hal/engine"
	"github.com/wippyai/wasm-hal/native"
	"github.com/wippyai/wasm-hal/platform"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to core wasm module")
		funcName    = flag.String("func", "", "Exported function to call (optional)")
		argsStr     = flag.String("args", "", "Comma-separated uint32 arguments")
		heapSize    = flag.Uint("heap", platform.EngineHeapSize, "Arena capacity in bytes")
		list        = flag.Bool("list", false, "List exported functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: run -wasm <file.wasm> [-func name] [-args 1,2,3]")
		fmt.Fprintln(os.Stderr, "       run -wasm <file.wasm> -list")
		fmt.Fprintln(os.Stderr, "       run -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			platform.SetLogger(log)
			engine.SetLogger(log)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*wasmFile, uint32(*heapSize)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *funcName, *argsStr, uint32(*heapSize), *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup wires the whole layer: platform adapter, native registry with the
// sys namespace, and an engine with the registry bound.
func setup(ctx context.Context, wasmFile string, heapSize uint32) (*platform.Adapter, *engine.Engine, *engine.Module, error) {
	hal := platform.New(platform.Config{HeapSize: heapSize})
	if err := hal.Init(); err != nil {
		return nil, nil, nil, err
	}

	reg := native.NewRegistry()
	if err := hal.RegisterNatives(reg, "sys"); err != nil {
		return nil, nil, nil, err
	}

	eng, err := engine.New(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := eng.BindRegistry(ctx, reg); err != nil {
		eng.Close(ctx)
		return nil, nil, nil, err
	}

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		eng.Close(ctx)
		return nil, nil, nil, fmt.Errorf("read file: %w", err)
	}

	mod, err := eng.LoadModule(ctx, data)
	if err != nil {
		eng.Close(ctx)
		return nil, nil, nil, err
	}

	return hal, eng, mod, nil
}

func run(wasmFile, funcName, argsStr string, heapSize uint32, listOnly bool) error {
	ctx := context.Background()

	hal, eng, mod, err := setup(ctx, wasmFile, heapSize)
	if err != nil {
		return err
	}
	defer hal.Destroy()
	defer eng.Close(ctx)

	fmt.Printf("Module: %s\n", wasmFile)
	fmt.Printf("Heap: %d bytes\n", hal.Heap().Cap())

	fmt.Printf("\nExported functions:\n")
	for _, name := range mod.ExportedFunctions() {
		fmt.Printf("  %s\n", name)
	}

	if listOnly || funcName == "" {
		return nil
	}

	args, err := parseArgs(argsStr)
	if err != nil {
		return err
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return err
	}
	defer inst.Close(ctx)

	result, err := inst.Call(ctx, funcName, args...)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s(%s) = %d\n", funcName, argsStr, result)
	fmt.Printf("Arena: %d/%d bytes used, peak %d\n",
		hal.Heap().Len(), hal.Heap().Cap(), hal.Heap().Peak())
	return nil
}

func parseArgs(argsStr string) ([]uint32, error) {
	if argsStr == "" {
		return nil, nil
	}

	var args []uint32
	for _, part := range strings.Split(argsStr, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad argument %q: %w", part, err)
		}
		args = append(args, uint32(v))
	}
	return args, nil
}
