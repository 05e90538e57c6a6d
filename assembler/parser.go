package assembler

const (
	expectRegister  = "register (r0-r3)"
	expectImmediate = "immediate (#0-#255)"
	expectAddress   = "memory address (0x00-0xFF)"
	expectTarget    = "relative offset (+N/-N) or label"
	expectLabel     = "label"
)

type instructionParser struct {
	tokens      []Token
	pos         int
	config      AssemblerConfig
	diagnostics []Diagnostic
}

// ParseSegment converts one segment's tokens into statements. In strict mode
// the first malformed instruction fails the segment; in compatibility mode it
// is dropped with a warning and parsing resumes after the offending token.
func ParseSegment(seg Segment, config AssemblerConfig) ([]Statement, []Diagnostic, error) {
	p := &instructionParser{tokens: seg.Tokens, config: config.withDefaults()}
	statements := []Statement{}

	for {
		tok, ok := p.take()
		if !ok {
			break
		}
		if tok.Type == TokenComma {
			continue
		}
		if tok.Type != TokenMnemonic {
			err := &ParseError{Actual: tok, Message: "expected instruction mnemonic"}
			if p.config.Compatibility {
				p.diagnostics = append(p.diagnostics, Warnings.InstructionDropped("unexpected "+tok.Type.String(), tok.Range))
				continue
			}
			return nil, p.diagnostics, err
		}

		stmt, last, err := p.parseInstruction(tok)
		if err != nil {
			if p.config.Compatibility {
				p.diagnostics = append(p.diagnostics, Warnings.InstructionDropped(err.Error(), TextRange{Start: tok.Range.Start, End: last.Range.End}))
				continue
			}
			return nil, p.diagnostics, err
		}
		statements = append(statements, stmt)
	}

	return statements, p.diagnostics, nil
}

func (p *instructionParser) take() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

// endToken stands in for the missing operand when a segment runs out.
func (p *instructionParser) endToken() Token {
	pos := TextPosition{}
	if len(p.tokens) > 0 {
		pos = p.tokens[len(p.tokens)-1].Range.End
	}
	return Token{Type: TokenEndOfInput, Range: TextRange{Start: pos, End: pos}}
}

// operand consumes the next non-comma token, which must be one of kinds.
// A mismatched token is consumed as well.
func (p *instructionParser) operand(opcode, expected string, kinds ...TokenType) (Token, error) {
	for {
		tok, ok := p.take()
		if !ok {
			end := p.endToken()
			return end, &ParseError{Opcode: opcode, Expected: expected, Actual: end}
		}
		if tok.Type == TokenComma {
			continue
		}
		for _, k := range kinds {
			if tok.Type == k {
				return tok, nil
			}
		}
		return tok, &ParseError{Opcode: opcode, Expected: expected, Actual: tok}
	}
}

func (p *instructionParser) register(opcode string) (Register, Token, error) {
	tok, err := p.operand(opcode, expectRegister, TokenRegister)
	if err != nil {
		return 0, tok, err
	}
	return Register(tok.Value), tok, nil
}

func (p *instructionParser) byteField(opcode, expected string, kind TokenType) (uint8, Token, error) {
	tok, err := p.operand(opcode, expected, kind)
	if err != nil {
		return 0, tok, err
	}
	if tok.Value <= 0xFF {
		return uint8(tok.Value), tok, nil
	}
	if p.config.LiteralOverflow == LiteralOverflowTruncate {
		p.diagnostics = append(p.diagnostics, Warnings.ValueTruncated(tok.Lexeme, tok.Range))
		return uint8(tok.Value & 0xFF), tok, nil
	}
	return 0, tok, &ParseError{Opcode: opcode, Expected: expected, Actual: tok, Overflow: true}
}

func (p *instructionParser) target(opcode, expected string, kinds ...TokenType) (Target, Token, error) {
	tok, err := p.operand(opcode, expected, kinds...)
	if err != nil {
		return Target{}, tok, err
	}
	if tok.Type == TokenRelativeOffset {
		return Target{Relative: true, Offset: tok.Value}, tok, nil
	}
	return Target{Label: tok.Name}, tok, nil
}

// parseInstruction returns the statement and the last token it consumed.
func (p *instructionParser) parseInstruction(mnemonic Token) (Statement, Token, error) {
	name := mnemonic.Name
	opcode := MnemonicMap[name]
	last := mnemonic
	var inst Instruction
	var err error

	switch opcode {
	case OPCODE_MOV:
		var reg Register
		var imm uint8
		if reg, last, err = p.register(name); err != nil {
			break
		}
		if imm, last, err = p.byteField(name, expectImmediate, TokenImmediate); err != nil {
			break
		}
		inst = Mov{Reg: reg, Imm: imm}

	case OPCODE_STORE:
		var addr uint8
		var reg Register
		if addr, last, err = p.byteField(name, expectAddress, TokenMemoryAddress); err != nil {
			break
		}
		if reg, last, err = p.register(name); err != nil {
			break
		}
		inst = Store{Addr: addr, Reg: reg}

	case OPCODE_ADD, OPCODE_SUB, OPCODE_MUL, OPCODE_DIV:
		regs := [3]Register{}
		for i := range regs {
			if regs[i], last, err = p.register(name); err != nil {
				break
			}
		}
		if err != nil {
			break
		}
		inst = Arithmetic{Op: opcode, Dest: regs[0], Src1: regs[1], Src2: regs[2]}

	case OPCODE_COMPARE:
		var src1, src2 Register
		if src1, last, err = p.register(name); err != nil {
			break
		}
		if src2, last, err = p.register(name); err != nil {
			break
		}
		inst = Compare{Src1: src1, Src2: src2}

	case OPCODE_JUMP, OPCODE_JUMPNOTEQUAL, OPCODE_JUMPLESSEQUAL:
		var t Target
		if t, last, err = p.target(name, expectTarget, TokenRelativeOffset, TokenLabelReference); err != nil {
			break
		}
		inst = Jump{Op: opcode, Target: t}

	case OPCODE_CALL:
		var t Target
		if t, last, err = p.target(name, expectLabel, TokenLabelReference); err != nil {
			break
		}
		inst = Call{Target: t}

	case OPCODE_PRINT:
		var addr uint8
		if addr, last, err = p.byteField(name, expectAddress, TokenMemoryAddress); err != nil {
			break
		}
		inst = Print{Addr: addr}

	case OPCODE_RETURN:
		inst = Return{}

	case OPCODE_END:
		inst = End{}
	}

	if err != nil {
		return Statement{}, last, err
	}
	return Statement{Instruction: inst, Range: TextRange{Start: mnemonic.Range.Start, End: last.Range.End}}, last, nil
}
