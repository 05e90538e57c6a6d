package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/assembler"
)

// configEnv names an assembler config file to use instead of asmconfig.yaml.
const configEnv = "TINY16_ASM_CONFIG"

const defaultConfigFile = "asmconfig.yaml"

// loadAssemblerConfig reads the file named by TINY16_ASM_CONFIG, else
// asmconfig.yaml in the working directory. No file means defaults.
func loadAssemblerConfig() (assembler.AssemblerConfig, error) {
	path := os.Getenv(configEnv)
	if path == "" {
		if _, e := os.Stat(defaultConfigFile); e != nil {
			return assembler.DefaultConfig(), nil
		}
		path = defaultConfigFile
	}
	return assembler.LoadConfig(path)
}

// command is one invocation of the tool: a subcommand name and its arguments.
type command struct {
	name string
	args []string
}

// parseCommand classifies the arguments after the program name. A lone
// argument that is not a subcommand is a source file to assemble. Known
// subcommands with the wrong arguments are rejected rather than being taken
// as file names.
func parseCommand(args []string) (command, bool) {
	if len(args) == 0 {
		return command{}, false
	}

	name, rest := args[0], args[1:]
	switch name {
	case "autograde":
		return command{name: name}, len(rest) == 0
	case "languageServer":
		switch {
		case len(rest) == 0, len(rest) == 1 && rest[0] == "debug":
			return command{name: name, args: rest}, true
		case len(rest) <= 2 && rest[0] == "tcp":
			return command{name: name, args: rest}, true
		}
		return command{}, false
	case "playground":
		return command{name: name, args: rest}, len(rest) <= 1
	case "listing":
		return command{name: name, args: rest}, len(rest) == 1
	}

	if len(rest) != 0 {
		return command{}, false
	}
	return command{name: "assemble", args: args}, true
}

func formatDiagnostic(file string, diag assembler.Diagnostic) string {
	kind := "error"
	if diag.Severity != assembler.Error {
		kind = "warning"
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", file, diag.Range.Start.Line+1, diag.Range.Start.Char+1, kind, diag.Message)
}

// assembleFile assembles path into path+".txt", one bit string per line. The
// words go to a temporary file that is renamed into place, so a failed run
// never leaves a partial output file behind.
func assembleFile(path string, config assembler.AssemblerConfig, stderr io.Writer) (string, error) {
	b, e := os.ReadFile(path)
	if e != nil {
		return "", e
	}

	res := assembler.AssembleWithConfig(string(b), config)
	for _, diag := range res.Diagnostics {
		fmt.Fprintln(stderr, formatDiagnostic(path, diag))
	}
	if res.Err != nil {
		return "", res.Err
	}

	outPath := path + ".txt"
	tmp, e := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*")
	if e != nil {
		return "", e
	}
	tmpPath := tmp.Name()
	atexit.Register(func() { os.Remove(tmpPath) })

	text := strings.Join(assembler.FormatWords(res.ProgramText), "\n")
	if len(res.ProgramText) > 0 {
		text += "\n"
	}
	if _, e = tmp.WriteString(text); e != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", e
	}
	if e = tmp.Close(); e != nil {
		os.Remove(tmpPath)
		return "", e
	}
	if e = os.Rename(tmpPath, outPath); e != nil {
		os.Remove(tmpPath)
		return "", e
	}
	return outPath, nil
}

// writeListing prints one row per word: address, label, hex, binary and the
// source line the word came from.
func writeListing(w io.Writer, path string, config assembler.AssemblerConfig, colored bool) error {
	b, e := os.ReadFile(path)
	if e != nil {
		return e
	}

	res := assembler.AssembleWithConfig(string(b), config)
	if res.Err != nil {
		for _, diag := range res.Diagnostics {
			fmt.Fprintln(w, formatDiagnostic(path, diag))
		}
		return res.Err
	}

	labelsAt := map[int][]string{}
	for label, addr := range res.Labels {
		labelsAt[addr] = append(labelsAt[addr], label)
	}

	listing := table.NewWriter()
	listing.SetOutputMirror(w)
	listing.SetTitle(filepath.Base(path))
	if colored {
		listing.SetStyle(table.StyleColoredDark)
	} else {
		listing.SetStyle(table.StyleLight)
	}
	listing.AppendHeader(table.Row{"Addr", "Label", "Hex", "Binary", "Line", "Source"})

	for addr, word := range res.ProgramText {
		line := res.AddressToLine[addr]
		source := strings.TrimSpace(res.SourceLine(line))
		if addr == 0 && res.EntryLabel != "" {
			source = "(entry jump to " + res.EntryLabel + ")"
		}
		labels := labelsAt[addr]
		sort.Strings(labels)
		listing.AppendRow(table.Row{
			addr,
			strings.Join(labels, ", "),
			fmt.Sprintf("0x%04X", word),
			fmt.Sprintf("%016b", word),
			line + 1,
			source,
		})
	}
	listing.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d words", len(res.ProgramText)), "", ""})
	listing.Render()

	for _, diag := range res.Diagnostics {
		fmt.Fprintln(w, formatDiagnostic(path, diag))
	}
	return nil
}
