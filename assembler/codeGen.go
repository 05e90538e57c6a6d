package assembler

import "fmt"

// arithmetic instructions carry this value in bits[2:0]
const registerDestinationMarker = 0b011

func makeImmediateTypeInstruction(opcode Opcode, reg Register, value uint8) uint16 {
	return uint16(opcode)<<12 | uint16(reg&0x7)<<9 | uint16(value)
}

func makeRegisterTypeInstruction(opcode Opcode, reg1, reg2, reg3 Register, marker uint16) uint16 {
	return uint16(opcode)<<12 | uint16(reg1&0x7)<<9 | uint16(reg2&0x7)<<6 | uint16(reg3&0x7)<<3 | (marker & 0x7)
}

func makeAddressTypeInstruction(opcode Opcode, addr uint8) uint16 {
	return uint16(opcode)<<12 | uint16(addr)
}

// Encode packs one instruction into its 16-bit word.
func Encode(inst Instruction) uint16 {
	switch i := inst.(type) {
	case Mov:
		return makeImmediateTypeInstruction(OPCODE_MOV, i.Reg, i.Imm)
	case Store:
		return makeImmediateTypeInstruction(OPCODE_STORE, i.Reg, i.Addr)
	case Arithmetic:
		return makeRegisterTypeInstruction(i.Op, i.Dest, i.Src1, i.Src2, registerDestinationMarker)
	case Compare:
		return makeRegisterTypeInstruction(OPCODE_COMPARE, i.Src1, i.Src2, 0, 0)
	case Jump:
		return makeAddressTypeInstruction(i.Op, i.Target.Address)
	case Call:
		return makeAddressTypeInstruction(OPCODE_CALL, i.Target.Address)
	case Print:
		return makeAddressTypeInstruction(OPCODE_PRINT, i.Addr)
	case Return:
		return makeAddressTypeInstruction(OPCODE_RETURN, 0)
	case End:
		return makeAddressTypeInstruction(OPCODE_END, 0)
	}
	panic(fmt.Sprintf("assembler: cannot encode %T", inst))
}

func EncodeProgram(p *Program) []uint16 {
	words := make([]uint16, len(p.Statements))
	for i, s := range p.Statements {
		words[i] = Encode(s.Instruction)
	}
	return words
}

// FormatWords renders each word as a 16-character bit string, MSB first.
func FormatWords(words []uint16) []string {
	lines := make([]string, len(words))
	for i, w := range words {
		lines[i] = fmt.Sprintf("%016b", w)
	}
	return lines
}

func DecodeOpcode(word uint16) Opcode {
	return Opcode(word >> 12)
}

func DecodeImmediateTypeInstruction(word uint16) (opcode Opcode, reg Register, value uint8) {
	opcode = DecodeOpcode(word)
	reg = Register((word >> 9) & 0x7)
	value = uint8(word & 0xFF)
	return
}

func DecodeRegisterTypeInstruction(word uint16) (opcode Opcode, reg1, reg2, reg3 Register, marker uint16) {
	opcode = DecodeOpcode(word)
	reg1 = Register((word >> 9) & 0x7)
	reg2 = Register((word >> 6) & 0x7)
	reg3 = Register((word >> 3) & 0x7)
	marker = word & 0x7
	return
}

func DecodeAddressTypeInstruction(word uint16) (opcode Opcode, addr uint8) {
	opcode = DecodeOpcode(word)
	addr = uint8(word & 0xFF)
	return
}
