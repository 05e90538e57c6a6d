package assembler

import (
	"errors"
	"fmt"
	"strconv"
)

func formatPosition(r TextRange) string {
	return strconv.Itoa(r.Start.Line+1) + ":" + strconv.Itoa(r.Start.Char+1)
}

// Pipeline errors. Each aborts the run; see ToDiagnostic for the editor form.

type LexError struct {
	Text    string
	Message string
	Range   TextRange
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s: %q", formatPosition(e.Range), e.Message, e.Text)
}

type ParseError struct {
	Opcode   string
	Expected string
	Actual   Token
	Message  string // set when the failure is not an operand-kind mismatch
	Overflow bool   // operand had the right kind but does not fit 8 bits
}

func (e *ParseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %q", formatPosition(e.Actual.Range), e.Message, e.Actual.Lexeme)
	}
	if e.Overflow {
		return fmt.Sprintf("%s: %s operand %q does not fit in 8 bits", formatPosition(e.Actual.Range), e.Opcode, e.Actual.Lexeme)
	}
	actual := e.Actual.Lexeme
	if e.Actual.Type == TokenEndOfInput {
		actual = "end of input"
	}
	return fmt.Sprintf("%s: %s expects %s, got %s %q", formatPosition(e.Actual.Range), e.Opcode, e.Expected, e.Actual.Type, actual)
}

type UnresolvedLabelError struct {
	Label string
	Index int // address of the referencing instruction
	Range TextRange
}

func (e *UnresolvedLabelError) Error() string {
	return fmt.Sprintf("%s: unresolved label %q referenced by instruction %d", formatPosition(e.Range), e.Label, e.Index)
}

type DuplicateLabelError struct {
	Label    string
	First    TextRange
	Repeated TextRange
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("%s: label %q already declared at %s", formatPosition(e.Repeated), e.Label, formatPosition(e.First))
}

type DuplicateEntryError struct {
	First    TextRange
	Repeated TextRange
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("%s: entry label already declared at %s", formatPosition(e.Repeated), formatPosition(e.First))
}

type TargetRangeError struct {
	Target int
	Index  int
	Length int
	Range  TextRange
}

func (e *TargetRangeError) Error() string {
	return fmt.Sprintf("%s: instruction %d targets address %d outside program [0, %d)", formatPosition(e.Range), e.Index, e.Target, e.Length)
}

type ProgramTooLargeError struct {
	Length int
	Range  TextRange // first instruction past the addressable range
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("%s: program has %d instructions, at most %d are addressable", formatPosition(e.Range), e.Length, MaxProgramLength)
}

// ToDiagnostic converts a pipeline error into an editor diagnostic.
func ToDiagnostic(err error) Diagnostic {
	var lexErr *LexError
	var parseErr *ParseError
	var unresolvedErr *UnresolvedLabelError
	var duplicateErr *DuplicateLabelError
	var entryErr *DuplicateEntryError
	var targetErr *TargetRangeError
	var sizeErr *ProgramTooLargeError

	switch {
	case errors.As(err, &lexErr):
		return Errors.UnrecognizedInput(lexErr.Text, lexErr.Message, lexErr.Range)
	case errors.As(err, &parseErr):
		if parseErr.Overflow {
			return Errors.UnsignedImmediateOverflow(parseErr.Actual.Lexeme, 8, parseErr.Actual.Range)
		}
		if parseErr.Message != "" {
			return Errors.AnonymousError(parseErr.Message+": \""+parseErr.Actual.Lexeme+"\"", parseErr.Actual.Range)
		}
		return Errors.InvalidOperand(parseErr.Opcode, parseErr.Expected, parseErr.Actual)
	case errors.As(err, &unresolvedErr):
		return Errors.UnresolvedSymbolName(unresolvedErr.Label, unresolvedErr.Range)
	case errors.As(err, &duplicateErr):
		return Errors.DuplicateLabel(duplicateErr.Label, duplicateErr.Repeated)
	case errors.As(err, &entryErr):
		return Errors.AnonymousError("Entry label declared more than once", entryErr.Repeated)
	case errors.As(err, &targetErr):
		return Errors.TargetOutOfRange(targetErr.Target, targetErr.Length, targetErr.Range)
	case errors.As(err, &sizeErr):
		return Errors.ProgramTooLarge(sizeErr.Length, sizeErr.Range)
	}
	return Errors.AnonymousError(err.Error(), TextRange{})
}

// Errors
type assemblyError struct{}

var Errors assemblyError

func (assemblyError) UnrecognizedInput(text, reason string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Unrecognized input \"" + text + "\": " + reason,
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) InvalidOperand(opcode, expected string, actual Token) Diagnostic {
	got := "\"" + actual.Lexeme + "\""
	if actual.Type == TokenEndOfInput {
		got = "end of input"
	}
	return Diagnostic{
		Range:    actual.Range,
		Message:  "Invalid operand for " + opcode + ": expected " + expected + ", got " + got + "\nFormat: " + instructionFormats[opcode],
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) UnresolvedSymbolName(symbolName string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Unresolved symbol name: \"" + symbolName + "\"",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) DuplicateLabel(label string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Label \"" + label + "\" is declared more than once",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) UnsignedImmediateOverflow(value string, maxSize int, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Value \"" + value + "\" is too large. Must fit in " + strconv.Itoa(maxSize) + " bits (less than " + strconv.Itoa(1<<maxSize) + ")",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) TargetOutOfRange(target, length int, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Jump target " + strconv.Itoa(target) + " is outside the program (0 to " + strconv.Itoa(length-1) + ")",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) ProgramTooLarge(length int, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Program has " + strconv.Itoa(length) + " instructions; only " + strconv.Itoa(MaxProgramLength) + " are addressable",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) AnonymousError(message string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  message,
		Source:   "Assembler",
		Severity: Error,
	}
}

// Warnings
type assemblyWarning struct{}

var Warnings assemblyWarning

func (assemblyWarning) UnusedLabel(label string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Unused label: \"" + label + "\"",
		Source:   "Assembler",
		Severity: Warning,
	}
}

func (assemblyWarning) DiscardedBeforeFirstLabel(r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Code before the first label is unreachable and was discarded",
		Source:   "Assembler",
		Severity: Warning,
	}
}

func (assemblyWarning) InstructionDropped(reason string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Instruction dropped: " + reason,
		Source:   "Assembler",
		Severity: Warning,
	}
}

func (assemblyWarning) ValueTruncated(value string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Value \"" + value + "\" does not fit in 8 bits and was truncated",
		Source:   "Assembler",
		Severity: Warning,
	}
}

func (assemblyWarning) UnpatchedTarget(label string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Unresolved label \"" + label + "\" left unpatched (target 0)",
		Source:   "Assembler",
		Severity: Warning,
	}
}

func (assemblyWarning) DuplicateLabelIgnored(label string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Label \"" + label + "\" is declared more than once; this declaration is not used for references",
		Source:   "Assembler",
		Severity: Warning,
	}
}
