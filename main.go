package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/autograder"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/languageServer"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/playground"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/util"
)

const usage = `usage:
  tiny16asm <file>                    assemble <file> into <file>.txt
  tiny16asm listing <file>            print an address/word/source table
  tiny16asm languageServer [debug]    serve the language server over stdio
  tiny16asm languageServer tcp [addr] serve the language server over TCP
  tiny16asm playground [addr]         serve the browser playground
  tiny16asm autograde                 grade the submission described by ` + autograder.ConfigPath

func main() {
	config, e := loadAssemblerConfig()
	if e != nil {
		atexit.Fatalf("Could not load assembler config: %v", e)
	}
	assembler.SetConfig(config)

	args := os.Args[1:]
	if len(args) == 0 && autograder.GetConfig() != nil {
		args = []string{"autograde"}
	}
	cmd, ok := parseCommand(args)
	if !ok {
		fmt.Fprintln(os.Stderr, usage)
		atexit.Exit(1)
	}

	switch cmd.name {
	case "autograde":
		runAutograder()

	case "languageServer":
		if len(cmd.args) >= 1 && cmd.args[0] == "tcp" {
			// tcp mode so it can be remotely debugged
			addr := ""
			if len(cmd.args) == 2 {
				addr = cmd.args[1]
			}
			if e := languageServer.ListenAndServeTCP(addr); e != nil {
				atexit.Fatalf("Language server stopped: %v", e)
			}
			break
		}
		if len(cmd.args) == 1 && cmd.args[0] == "debug" {
			util.LoggingEnabled = true
		}
		languageServer.ListenAndServe()

	case "playground":
		addr := ""
		if len(cmd.args) == 1 {
			addr = cmd.args[0]
		}
		if e := playground.ListenAndServe(addr); e != nil {
			atexit.Fatalf("Playground stopped: %v", e)
		}

	case "listing":
		colored := term.IsTerminal(int(os.Stdout.Fd()))
		if e := writeListing(os.Stdout, cmd.args[0], config, colored); e != nil {
			atexit.Fatalf("Could not assemble %s: %v", cmd.args[0], e)
		}

	case "assemble":
		outPath, e := assembleFile(cmd.args[0], config, os.Stderr)
		if e != nil {
			atexit.Fatalf("Could not assemble %s: %v", cmd.args[0], e)
		}
		fmt.Println("Wrote", outPath)
	}

	atexit.Exit(0)
}

func runAutograder() {
	conf := autograder.GetConfig()
	if conf == nil {
		atexit.Fatalf("No autograder config at %s", autograder.ConfigPath)
	}

	gso, e := autograder.AutogradeAssembly(conf, assembler.GetConfig())
	if e != nil {
		atexit.Fatalf("Autograding failed: %v", e)
	}
	if e := gso.Save(conf.ResultsPath); e != nil {
		atexit.Fatalf("Could not save results: %v", e)
	}
	log.Printf("Graded %s: %d points\n", conf.AssignmentName, gso.TotalScore())
}
