package assembler

import (
	"fmt"
)

func (r TextRange) Contains(p TextPosition) bool {
	if p.Line < r.Start.Line || p.Line > r.End.Line {
		return false
	}
	if p.Line == r.Start.Line && p.Char < r.Start.Char {
		return false
	}
	if p.Line == r.End.Line && p.Char >= r.End.Char {
		return false
	}
	return true
}

func (a *AssembledResult) tokenAt(position TextPosition) (Token, bool) {
	for _, tok := range a.tokens {
		if tok.Type != TokenEndOfInput && tok.Range.Contains(position) {
			return tok, true
		}
	}
	return Token{}, false
}

// statementAt returns the address and statement whose source range covers
// position.
func (a *AssembledResult) statementAt(position TextPosition) (int, Statement, bool) {
	if a.Program == nil {
		return 0, Statement{}, false
	}
	for i, s := range a.Program.Statements {
		if i == 0 && a.Program.HasEntry {
			continue
		}
		if s.Range.Contains(position) {
			return i, s, true
		}
	}
	return 0, Statement{}, false
}

func (a *AssembledResult) EvaluateHover(position TextPosition) (string, bool) {
	// returns markdown
	// returns true if there is a hover
	// returns false if there is no hover

	tok, ok := a.tokenAt(position)
	if !ok {
		return "", false
	}

	switch tok.Type {
	case TokenMnemonic:
		text := hoverInfoFormats.instructions[tok.Name]
		if addr, _, ok := a.statementAt(position); ok {
			text += fmt.Sprintf(hoverInfoFormats.encodedAs, addr, a.ProgramText[addr])
		}
		return text, true

	case TokenRegister:
		return fmt.Sprintf(hoverInfoFormats.register, tok.Value), true

	case TokenImmediate:
		return fmt.Sprintf(hoverInfoFormats.integerLiteral, tok.Value, tok.Value), true

	case TokenMemoryAddress:
		return fmt.Sprintf(hoverInfoFormats.memoryAddress, tok.Value, tok.Value), true

	case TokenRelativeOffset:
		_, s, ok := a.statementAt(position)
		if !ok {
			return "", false
		}
		t, _ := controlTarget(s.Instruction)
		return fmt.Sprintf(hoverInfoFormats.relativeOffset, tok.Value, t.Address), true

	case TokenLabelDeclaration:
		addr, ok := a.Labels[tok.Name]
		if !ok {
			return "", false
		}
		return fmt.Sprintf(hoverInfoFormats.labelDefinition, tok.Name, addr), true

	case TokenLabelReference:
		addr, ok := a.Labels[tok.Name]
		if !ok {
			return "", false
		}
		return fmt.Sprintf(hoverInfoFormats.labelReference, tok.Name, addr), true

	case TokenEntryDeclaration:
		addr, ok := a.Labels[tok.Name]
		if !ok {
			return "", false
		}
		return fmt.Sprintf(hoverInfoFormats.entryLabel, tok.Name, addr), true
	}

	return "", false
}
