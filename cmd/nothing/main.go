package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"github.com/ashmeltin/nothing/pkg/console"
	"github.com/ashmeltin/nothing/pkg/level"
	"github.com/ashmeltin/nothing/pkg/script"
)

const Version = "0.1.0"

const HelpMessage = `
nothing is a toy physics sandbox scripted through an in-game console.
	nothing v%s

Start an interactive console against a level file:
	nothing -level sandbox.yaml
Run a single line and exit:
	nothing -level sandbox.yaml -eval '(rect-apply-force "player" (10 0))'

`

const historyFile = ".nothing_history"

// one fixed simulation step runs after each handled line, matching the
// frame loop granularity the console lives inside
const frameDt = 1.0 / 60.0

func main() {
	flag.Usage = func() {
		fmt.Printf(HelpMessage, Version)
		flag.PrintDefaults()
	}

	levelPath := flag.String("level", "", "YAML level definition to load")
	eval := flag.String("eval", "", "Evaluate one console line and exit")
	maxSteps := flag.Int("max-steps", 0, "Evaluation step budget, 0 means unbounded")
	verbose := flag.Bool("verbose", false, "Log heap statistics after every line")

	version := flag.Bool("version", false, "Print version string and exit")
	help := flag.Bool("help", false, "Print help message and exit")

	flag.Parse()

	if *version {
		fmt.Printf("nothing v%s\n", Version)
		os.Exit(0)
	}

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	lvl := level.New()
	if *levelPath != "" {
		var err error
		lvl, err = level.LoadFile(*levelPath)
		if err != nil {
			script.LogErrf(script.ErrSystem, "%s", err)
		}
	}

	cons := console.New(lvl)
	cons.Context().MaxSteps = *maxSteps

	runLine := func(line string) {
		out := cons.HandleLine(line)
		lvl.Update(frameDt)

		// the first entry echoes the input the prompt already shows
		for _, l := range out[1:] {
			if l.IsErr {
				script.LogSafeErr(script.ErrRuntime, l.Text)
			} else {
				script.LogInteractive(l.Text)
			}
		}

		if *verbose {
			script.LogDebugf("heap: %d live cells", cons.Context().Heap.Live())
		}
	}

	if *eval != "" {
		out := cons.HandleLine(*eval)
		lvl.Update(frameDt)

		failed := false
		for _, l := range out[1:] {
			if l.IsErr {
				script.LogSafeErr(script.ErrRuntime, l.Text)
				failed = true
			} else {
				fmt.Println(l.Text)
			}
		}

		if failed {
			os.Exit(1)
		}
		return
	}

	repl(runLine)
}

// repl runs the interactive console with line editing and history,
// one read, eval, collect cycle plus one simulation step per line.
func repl(runLine func(string)) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("nothing v%s console, Ctrl+D exits\n", Version)

	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			// liner.ErrPromptAborted or io.EOF
			fmt.Println()
			return
		}

		if line == "" {
			continue
		}

		ln.AppendHistory(line)
		runLine(line)
	}
}
