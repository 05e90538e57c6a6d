package autograder

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/assembler"
)

// AutogradeAssembly assembles the submissions named by conf's test cases,
// compares the machine code with the expected listings and returns the
// Gradescope results. Missing or unreadable submissions fail their test
// cases; only a missing expected listing is an error of the grader itself.
func AutogradeAssembly(conf *Config, asmConfig assembler.AssemblerConfig) (*GradescopeOutput, error) {
	gso := CreateGradescopeOutput()

	type TCTypePair struct {
		correct      int
		total        int
		earnedPoints int
		totalPoints  int
		output       string
	}

	tcRes := make(map[string]TCTypePair) // key is the visbility of the test case

	assemblyTestCase := CreateTestCase("Assembly", conf.CompilationPoints, "visible")
	assemblyTestCase.SetStatus(true)
	assembled := map[string]bool{}
	warnings := false

	for _, testCase := range conf.TestCases {
		expected, e := readExpectedWords(filepath.Join(conf.AssignmentCodeDir, testCase.Expected))
		if e != nil {
			return nil, fmt.Errorf("test case %d (%s): %w", testCase.Number, testCase.Name, e)
		}

		sourcePath, e := findSubmission(conf.StudentCodePath, testCase.Source)
		progOut := ""
		correct := false
		if e != nil {
			progOut = "Could not find submission: " + e.Error() + "\n"
			assemblyTestCase.SetStatus(false)
		} else {
			var res *assembler.AssembledResult
			res, progOut, e = assembleSubmission(sourcePath, asmConfig)
			if !assembled[sourcePath] {
				assembled[sourcePath] = true
				assemblyTestCase.OutputPrintLn(strings.TrimRight(progOut, "\n"))
				if e != nil || res.Err != nil {
					assemblyTestCase.SetStatus(false)
				} else if len(res.Diagnostics) > 0 {
					warnings = true
				}
			}
			if e == nil && res.Err == nil {
				var diff string
				correct, diff = compareWords(expected, res.ProgramText)
				progOut += diff
			}
		}

		earnedPoints := 0
		if correct {
			earnedPoints = testCase.Points
		}

		passFail := "\n[FAIL] "
		if correct {
			passFail = "[PASS] "
		}

		outputStr := passFail + "Test Case: " + testCase.Name + " (" + strconv.Itoa(testCase.Number) + ")\n"
		outputStr += progOut

		pair := tcRes[testCase.Visibility]
		if correct {
			pair.correct++
		}
		pair.total++
		pair.earnedPoints += earnedPoints
		pair.totalPoints += testCase.Points
		pair.output += outputStr
		tcRes[testCase.Visibility] = pair
	}

	switch {
	case assemblyTestCase.Status == "failed":
		assemblyTestCase.OutputPrintLn("Failed to assemble submission.")
		gso.AddTest(assemblyTestCase, 0)
	case warnings:
		assemblyTestCase.OutputPrintLn("Assembled with warnings. Please see above for more info.")
		assemblyTestCase.SetStatus(false)
		gso.AddTest(assemblyTestCase, conf.CompilationPoints/2)
	default:
		assemblyTestCase.OutputPrintLn("Successfully assembled submission with no warnings.")
		gso.AddTest(assemblyTestCase, conf.CompilationPoints)
	}

	// collating the results, visible first for a stable order
	visibilities := make([]string, 0, len(tcRes))
	for visibility := range tcRes {
		visibilities = append(visibilities, visibility)
	}
	sort.Slice(visibilities, func(i, j int) bool {
		if (visibilities[i] == "visible") != (visibilities[j] == "visible") {
			return visibilities[i] == "visible"
		}
		return visibilities[i] < visibilities[j]
	})

	for _, visibility := range visibilities {
		res := tcRes[visibility]
		tcTypeStr := "Smoke Test Cases"
		if visibility != "visible" {
			tcTypeStr = "All Other Test Cases"
		}
		tc := CreateTestCase(tcTypeStr, res.totalPoints, visibility)
		tc.SetStatus(res.correct == res.total)
		tc.OutputPrintLn("Number Passed: " + strconv.Itoa(res.correct) + "/" + strconv.Itoa(res.total))
		tc.OutputPrintLn(res.output)
		gso.AddTest(tc, res.earnedPoints)
	}

	return gso, nil
}

// findSubmission resolves name under dir, or the first .asm file in dir when
// name is empty.
func findSubmission(dir, name string) (string, error) {
	if name != "" {
		path := filepath.Join(dir, name)
		if _, e := os.Stat(path); e != nil {
			return "", e
		}
		return path, nil
	}

	// looking for .asm file in submission dir
	dirFiles, e := os.ReadDir(dir)
	if e != nil {
		return "", e
	}
	for _, f := range dirFiles {
		if !f.IsDir() && filepath.Ext(f.Name()) == ".asm" {
			return filepath.Join(dir, f.Name()), nil
		}
	}
	return "", fmt.Errorf("no .asm file in %s", dir)
}

// assembleSubmission returns the assembled result and its diagnostics
// rendered as file:line:char lines.
func assembleSubmission(path string, asmConfig assembler.AssemblerConfig) (*assembler.AssembledResult, string, error) {
	b, e := os.ReadFile(path)
	if e != nil {
		return nil, "Could not read submission: " + e.Error() + "\n", e
	}

	res := assembler.AssembleWithConfig(string(b), asmConfig)
	builder := strings.Builder{}
	for _, diag := range res.Diagnostics {
		kind := "error"
		if diag.Severity != assembler.Error {
			kind = "warning"
		}
		builder.WriteString(fmt.Sprintf("%s:%d:%d: %s: %s\n", filepath.Base(path), diag.Range.Start.Line+1, diag.Range.Start.Char+1, kind, diag.Message))
	}
	return res, builder.String(), nil
}

func readExpectedWords(path string) ([]string, error) {
	b, e := os.ReadFile(path)
	if e != nil {
		return nil, e
	}

	words := []string{}
	for i, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) != 16 || strings.Trim(line, "01") != "" {
			return nil, fmt.Errorf("%s:%d: not a 16-bit word: %q", path, i+1, line)
		}
		words = append(words, line)
	}
	return words, nil
}

// compareWords reports whether got matches expected, and describes the first
// difference when it does not.
func compareWords(expected []string, got []uint16) (bool, string) {
	actual := assembler.FormatWords(got)
	for i := 0; i < len(expected) && i < len(actual); i++ {
		if expected[i] != actual[i] {
			return false, fmt.Sprintf("Mismatch at address %d: expected %s, got %s\n", i, expected[i], actual[i])
		}
	}
	if len(expected) != len(actual) {
		return false, fmt.Sprintf("Expected %d words, got %d\n", len(expected), len(actual))
	}
	return true, fmt.Sprintf("All %d words match\n", len(actual))
}
