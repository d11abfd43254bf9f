package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/scriptfs/bridge"
	"github.com/wippyai/scriptfs/engine"
	"github.com/wippyai/scriptfs/service"
)

func main() {
	var (
		scriptFile  = flag.String("script", "", "Path to JavaScript file to run")
		root        = flag.String("root", ".", "Directory exposed to scripts")
		mem         = flag.Bool("mem", false, "Use an in-memory filesystem instead of -root")
		ns          = flag.String("ns", bridge.DefaultNamespace, "Global name for the filesystem API")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *scriptFile == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: run -script <file.js> [-root dir | -mem] [-ns name] [-v]")
		fmt.Fprintln(os.Stderr, "       run -i [-root dir | -mem]  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*root, *ns, *mem); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*scriptFile, *root, *ns, *mem, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptFile, root, ns string, mem, verbose bool) error {
	log := zap.NewNop()
	if verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer log.Sync() //nolint:errcheck
	}

	src, err := os.ReadFile(scriptFile)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	var svc *service.Service
	if mem {
		svc = service.NewMemory(service.WithLogger(log))
	} else {
		svc = service.NewLocal(root, service.WithLogger(log))
	}

	eng := engine.New(engine.WithLogger(log))
	defer eng.Close()

	br, err := bridge.New(eng, svc, bridge.WithLogger(log))
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	if err := br.Install(ns); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	if err := eng.SetGlobal("print", func(args ...any) {
		fmt.Println(args...)
	}); err != nil {
		return fmt.Errorf("set print: %w", err)
	}

	defer svc.Close()

	if _, err := eng.RunScript(scriptFile, string(src)); err != nil {
		return fmt.Errorf("run %s: %w", scriptFile, err)
	}

	// Let in-flight operations (and any they chain) deliver their
	// callbacks before the engine goes away.
	svc.Wait()
	return nil
}
