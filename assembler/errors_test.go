package assembler_test

import (
	"testing"

	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/assembler"
)

func TestLexErrorDiagnosticSpansOffendingText(t *testing.T) {
	program := assembler.AssembleWithConfig("mov r1, #1\nmov r4, #1", assembler.DefaultConfig())
	validateResult(t, program, nil, []assembler.Diagnostic{
		{
			Range:    rangeOf(1, 4, 1, 6),
			Message:  "Unrecognized input \"r4\": register out of range (r0-r3)",
			Severity: assembler.Error,
		},
	})
}

func TestFactoriesKeepGivenRange(t *testing.T) {
	r := rangeOf(2, 3, 2, 9)
	diagnostics := []assembler.Diagnostic{
		assembler.Errors.UnrecognizedInput("$bad", "unknown", r),
		assembler.Errors.UnresolvedSymbolName("loop", r),
		assembler.Errors.UnsignedImmediateOverflow("#256", 8, r),
		assembler.Warnings.UnusedLabel("spare", r),
		assembler.Warnings.ValueTruncated("#256", r),
		assembler.Warnings.UnpatchedTarget("loop", r),
	}
	for i, diag := range diagnostics {
		if diag.Range != r {
			t.Errorf("Diagnostic %d (%q): expected range %+v, got %+v", i, diag.Message, r, diag.Range)
		}
	}
}
