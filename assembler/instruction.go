package assembler

import "fmt"

type Opcode uint16

const (
	OPCODE_MOV           Opcode = 1
	OPCODE_STORE         Opcode = 2
	OPCODE_ADD           Opcode = 3
	OPCODE_SUB           Opcode = 4
	OPCODE_MUL           Opcode = 5
	OPCODE_DIV           Opcode = 6
	OPCODE_PRINT         Opcode = 7
	OPCODE_END           Opcode = 8
	OPCODE_COMPARE       Opcode = 9
	OPCODE_JUMP          Opcode = 10
	OPCODE_JUMPNOTEQUAL  Opcode = 11
	OPCODE_JUMPLESSEQUAL Opcode = 12
	OPCODE_CALL          Opcode = 13
	OPCODE_RETURN        Opcode = 14
)

// mnemonic to opcode
var MnemonicMap = map[string]Opcode{
	"mov":    OPCODE_MOV,
	"store":  OPCODE_STORE,
	"add":    OPCODE_ADD,
	"sub":    OPCODE_SUB,
	"mul":    OPCODE_MUL,
	"div":    OPCODE_DIV,
	"print":  OPCODE_PRINT,
	"end":    OPCODE_END,
	"cmp":    OPCODE_COMPARE,
	"jump":   OPCODE_JUMP,
	"jumpne": OPCODE_JUMPNOTEQUAL,
	"jumple": OPCODE_JUMPLESSEQUAL,
	"call":   OPCODE_CALL,
	"return": OPCODE_RETURN,
}

func (o Opcode) Mnemonic() string {
	for m, op := range MnemonicMap {
		if op == o {
			return m
		}
	}
	return fmt.Sprintf("opcode(%d)", uint16(o))
}

type Register uint8

const (
	R0 Register = iota
	R1
	R2
	R3
)

func (r Register) String() string {
	return fmt.Sprintf("r%d", uint8(r))
}

// Instruction is the closed set of instruction nodes below. Encode switches
// over it exhaustively.
type Instruction interface {
	Opcode() Opcode
	isInstruction()
}

type Mov struct {
	Reg Register
	Imm uint8
}

type Store struct {
	Addr uint8
	Reg  Register
}

// Arithmetic covers add, sub, mul and div.
type Arithmetic struct {
	Op   Opcode
	Dest Register
	Src1 Register
	Src2 Register
}

type Compare struct {
	Src1 Register
	Src2 Register
}

// Jump covers jump, jumpne and jumple.
type Jump struct {
	Op     Opcode
	Target Target
}

type Call struct {
	Target Target
}

type Return struct{}

type Print struct {
	Addr uint8
}

type End struct{}

func (Mov) Opcode() Opcode          { return OPCODE_MOV }
func (Store) Opcode() Opcode        { return OPCODE_STORE }
func (i Arithmetic) Opcode() Opcode { return i.Op }
func (Compare) Opcode() Opcode      { return OPCODE_COMPARE }
func (i Jump) Opcode() Opcode       { return i.Op }
func (Call) Opcode() Opcode         { return OPCODE_CALL }
func (Return) Opcode() Opcode       { return OPCODE_RETURN }
func (Print) Opcode() Opcode        { return OPCODE_PRINT }
func (End) Opcode() Opcode          { return OPCODE_END }

func (Mov) isInstruction()        {}
func (Store) isInstruction()      {}
func (Arithmetic) isInstruction() {}
func (Compare) isInstruction()    {}
func (Jump) isInstruction()       {}
func (Call) isInstruction()       {}
func (Return) isInstruction()     {}
func (Print) isInstruction()      {}
func (End) isInstruction()        {}

// Target is a control-flow operand. Before resolution it holds either a
// relative offset or a label name; Resolve sets Address and Resolved.
type Target struct {
	Relative bool
	Offset   int
	Label    string
	Address  uint8
	Resolved bool
}

func (t Target) String() string {
	if t.Resolved {
		return fmt.Sprintf("%d", t.Address)
	}
	if t.Relative {
		return fmt.Sprintf("%+d", t.Offset)
	}
	return t.Label
}

func resolvedTarget(t Target, address uint8) Target {
	t.Address = address
	t.Resolved = true
	return t
}

func controlTarget(inst Instruction) (Target, bool) {
	switch i := inst.(type) {
	case Jump:
		return i.Target, true
	case Call:
		return i.Target, true
	}
	return Target{}, false
}

func withTarget(inst Instruction, t Target) Instruction {
	switch i := inst.(type) {
	case Jump:
		i.Target = t
		return i
	case Call:
		i.Target = t
		return i
	}
	return inst
}
