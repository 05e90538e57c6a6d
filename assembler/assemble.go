package assembler

import (
	"strings"
)

// Assemble runs the whole pipeline with the package configuration. Any error
// is reported in Diagnostics and leaves ProgramText empty.
func Assemble(input string) *AssembledResult {
	return AssembleWithConfig(input, assemblerConfig)
}

func AssembleWithConfig(input string, config AssemblerConfig) (res *AssembledResult) {
	res = new(AssembledResult)
	res.Labels = make(map[string]int)
	res.LabelToLineNumber = make(map[string]int)
	res.AddressToLine = make(map[int]int)
	res.fileContents = strings.Split(input, "\n")

	if err := res.assemble(input, config.withDefaults()); err != nil {
		res.Err = err
		res.Program = nil
		res.ProgramText = nil
		res.Labels = make(map[string]int)
		res.AddressToLine = make(map[int]int)
		res.Diagnostics = append(res.Diagnostics, ToDiagnostic(err))
	}
	return
}

// AssembleWords is the strict form of Assemble: words on success, the first
// pipeline error otherwise.
func AssembleWords(input string, config AssemblerConfig) ([]uint16, error) {
	res := AssembleWithConfig(input, config)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.ProgramText, nil
}

func (a *AssembledResult) assemble(input string, config AssemblerConfig) error {
	tokens, err := Tokenize(input)
	if err != nil {
		return err
	}
	a.tokens = tokens

	src, err := SegmentTokens(tokens)
	if err != nil {
		return err
	}
	a.EntryLabel = src.EntryLabel
	for _, seg := range src.Segments {
		if _, seen := a.LabelToLineNumber[seg.Label]; seg.Label != "" && !seen {
			a.LabelToLineNumber[seg.Label] = seg.Declaration.Start.Line
		}
	}
	if n := len(src.Discarded); n > 0 {
		a.Diagnostics = append(a.Diagnostics, Warnings.DiscardedBeforeFirstLabel(TextRange{
			Start: src.Discarded[0].Range.Start, End: src.Discarded[n-1].Range.End,
		}))
	}

	parsed := make([][]Statement, len(src.Segments))
	for i, seg := range src.Segments {
		statements, diagnostics, err := ParseSegment(seg, config)
		a.Diagnostics = append(a.Diagnostics, diagnostics...)
		if err != nil {
			return err
		}
		parsed[i] = statements
	}

	program, diagnostics, err := Resolve(src, parsed, config)
	a.Diagnostics = append(a.Diagnostics, diagnostics...)
	if err != nil {
		return err
	}

	a.Program = program
	a.Labels = program.Labels
	for i, s := range program.Statements {
		a.AddressToLine[i] = s.Range.Start.Line
	}
	a.ProgramText = EncodeProgram(program)
	a.reportUnusedLabels(src, parsed)
	return nil
}

func (a *AssembledResult) reportUnusedLabels(src *SegmentedSource, parsed [][]Statement) {
	used := map[string]bool{src.EntryLabel: true}
	for _, statements := range parsed {
		for _, s := range statements {
			if t, ok := controlTarget(s.Instruction); ok && !t.Relative {
				used[t.Label] = true
			}
		}
	}

	// the flat-mode preamble and the first segment are reached by falling in
	for i, seg := range src.Segments {
		if seg.Label == "" || used[seg.Label] || i == 0 {
			continue
		}
		a.Diagnostics = append(a.Diagnostics, Warnings.UnusedLabel(seg.Label, seg.Declaration))
	}
}

// Tokens returns the token stream of the last successful tokenization.
func (a *AssembledResult) Tokens() []Token {
	return a.tokens
}

// SourceLine returns line n of the assembled text, or "" when out of range.
func (a *AssembledResult) SourceLine(n int) string {
	if n < 0 || n >= len(a.fileContents) {
		return ""
	}
	return strings.TrimRight(a.fileContents[n], "\r")
}
