package assembler

// MaxProgramLength is the number of addresses an 8-bit target can reach.
const MaxProgramLength = 256

// Resolve linearizes the parsed segments in declaration order, builds the
// address table and returns a new program with every control-flow target
// patched to an absolute address. When an entry label is declared, slot 0 is
// reserved for the entry jump before any label address is recorded.
//
// parsed[i] holds the statements of src.Segments[i]. Neither is modified.
func Resolve(src *SegmentedSource, parsed [][]Statement, config AssemblerConfig) (*Program, []Diagnostic, error) {
	config = config.withDefaults()
	diagnostics := []Diagnostic{}

	base := 0
	if src.EntryLabel != "" {
		base = 1
	}

	// first pass: addresses
	table := map[string]int{}
	declared := map[string]TextRange{}
	linear := []Statement{}
	for i, seg := range src.Segments {
		addr := base + len(linear)
		if seg.Label != "" {
			if first, dup := declared[seg.Label]; dup {
				switch config.DuplicateLabels {
				case DuplicateLabelsFirstWins:
					diagnostics = append(diagnostics, Warnings.DuplicateLabelIgnored(seg.Label, seg.Declaration))
				case DuplicateLabelsLastWins:
					diagnostics = append(diagnostics, Warnings.DuplicateLabelIgnored(seg.Label, first))
					table[seg.Label] = addr
					declared[seg.Label] = seg.Declaration
				default:
					return nil, diagnostics, &DuplicateLabelError{Label: seg.Label, First: first, Repeated: seg.Declaration}
				}
			} else {
				table[seg.Label] = addr
				declared[seg.Label] = seg.Declaration
			}
		}
		if i < len(parsed) {
			linear = append(linear, parsed[i]...)
		}
	}

	length := base + len(linear)
	if length > MaxProgramLength {
		return nil, diagnostics, &ProgramTooLargeError{Length: length, Range: linear[MaxProgramLength-base].Range}
	}

	// second pass: targets
	resolved := make([]Statement, length)
	if base == 1 {
		entry := Target{Label: src.EntryLabel}
		addr, ok := table[src.EntryLabel]
		if !ok {
			if !config.Compatibility {
				return nil, diagnostics, &UnresolvedLabelError{Label: src.EntryLabel, Index: 0, Range: src.EntryRange}
			}
			diagnostics = append(diagnostics, Warnings.UnpatchedTarget(src.EntryLabel, src.EntryRange))
		} else {
			if addr >= length {
				return nil, diagnostics, &TargetRangeError{Target: addr, Index: 0, Length: length, Range: src.EntryRange}
			}
			entry = resolvedTarget(entry, uint8(addr))
		}
		resolved[0] = Statement{Instruction: Jump{Op: OPCODE_JUMP, Target: entry}, Range: src.EntryRange}
	}

	for k, stmt := range linear {
		index := base + k
		t, ok := controlTarget(stmt.Instruction)
		if !ok {
			resolved[index] = stmt
			continue
		}

		addr := 0
		if t.Relative {
			addr = index + t.Offset
		} else if a, found := table[t.Label]; found {
			addr = a
		} else if config.Compatibility {
			diagnostics = append(diagnostics, Warnings.UnpatchedTarget(t.Label, stmt.Range))
			resolved[index] = stmt
			continue
		} else {
			return nil, diagnostics, &UnresolvedLabelError{Label: t.Label, Index: index, Range: stmt.Range}
		}

		if addr < 0 || addr >= length {
			return nil, diagnostics, &TargetRangeError{Target: addr, Index: index, Length: length, Range: stmt.Range}
		}
		resolved[index] = Statement{Instruction: withTarget(stmt.Instruction, resolvedTarget(t, uint8(addr))), Range: stmt.Range}
	}

	return &Program{Statements: resolved, Labels: table, HasEntry: base == 1}, diagnostics, nil
}

// Instructions returns the program's instructions in address order.
func (p *Program) Instructions() []Instruction {
	out := make([]Instruction, len(p.Statements))
	for i, s := range p.Statements {
		out[i] = s.Instruction
	}
	return out
}
