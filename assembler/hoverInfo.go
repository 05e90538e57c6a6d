package assembler

type hoverInfoFormatsType struct {
	labelDefinition string
	labelReference  string
	entryLabel      string
	integerLiteral  string
	memoryAddress   string
	relativeOffset  string
	encodedAs       string

	register string

	// instructions, by mnemonic
	instructions map[string]string
}

// operand signature per mnemonic, shared with the diagnostics
var instructionFormats = map[string]string{
	"mov":    "`mov <dst reg>, #<imm>`",
	"store":  "`store <addr>, <src reg>`",
	"add":    "`add <dst reg>, <src reg>, <src reg>`",
	"sub":    "`sub <dst reg>, <src reg>, <src reg>`",
	"mul":    "`mul <dst reg>, <src reg>, <src reg>`",
	"div":    "`div <dst reg>, <src reg>, <src reg>`",
	"cmp":    "`cmp <src reg>, <src reg>`",
	"jump":   "`jump <+N|-N|label>`",
	"jumpne": "`jumpne <+N|-N|label>`",
	"jumple": "`jumple <+N|-N|label>`",
	"call":   "`call <label>`",
	"return": "`return`",
	"print":  "`print <addr>`",
	"end":    "`end`",
}

var hoverInfoFormats = hoverInfoFormatsType{
	labelDefinition: "Definition of label `%s`.\n\nAddress of 0x%02X",
	labelReference:  "Reference to label `%s`\n\nEvaluates to `%d`",
	entryLabel:      "Entry label `%s`\n\nAddress 0 jumps to `%d`",
	integerLiteral:  "Immediate `%d` (`0x%02X`)",
	memoryAddress:   "Memory address `%d` (`0x%02X`)",
	relativeOffset:  "Relative offset `%+d`\n\nEvaluates to `%d`",
	encodedAs:       "\n\nEncoded at address %d as `%016b`",

	register: "Register `r%d`. 16-Bit General Purpose Register",

	instructions: map[string]string{
		"mov":    "Move Immediate Instruction.\n\nFormat: " + instructionFormats["mov"] + "\n\nExample: `mov r1, #10` is the same as `r1 = 10`\n\nThe immediate is an unsigned 8-bit value, so it must be between 0 and 255.",
		"store":  "Store Instruction.\n\nFormat: " + instructionFormats["store"] + "\n\nExample: `store 0x10, r1` is the same as `mem[0x10] = r1`\n\nThe address is an unsigned 8-bit value, so it must be between 0x00 and 0xFF.",
		"add":    "Addition Instruction.\n\nFormat: " + instructionFormats["add"] + "\n\nExample: `add r0, r1, r2` is the same as `r0 = r1 + r2`",
		"sub":    "Subtraction Instruction.\n\nFormat: " + instructionFormats["sub"] + "\n\nExample: `sub r0, r1, r2` is the same as `r0 = r1 - r2`",
		"mul":    "Multiplication Instruction.\n\nFormat: " + instructionFormats["mul"] + "\n\nExample: `mul r0, r1, r2` is the same as `r0 = r1 * r2`",
		"div":    "Division Instruction.\n\nFormat: " + instructionFormats["div"] + "\n\nExample: `div r0, r1, r2` is the same as `r0 = r1 / r2`",
		"cmp":    "Compare Instruction.\n\nFormat: " + instructionFormats["cmp"] + "\n\nExample: `cmp r0, r1` sets the flags read by `jumpne` and `jumple`",
		"jump":   "Jump Instruction.\n\nFormat: " + instructionFormats["jump"] + "\n\nExample: `jump +2` skips the next instruction.\n\nA relative offset is counted in instructions from this one. A label jumps to the label's first instruction.",
		"jumpne": "Jump Not Equal Instruction.\n\nFormat: " + instructionFormats["jumpne"] + "\n\nExample: `jumpne loop` jumps to `loop` if the last `cmp` found its registers different.",
		"jumple": "Jump Less Or Equal Instruction.\n\nFormat: " + instructionFormats["jumple"] + "\n\nExample: `jumple -3` jumps back three instructions if the first register of the last `cmp` was less than or equal to the second.",
		"call":   "Call Instruction.\n\nFormat: " + instructionFormats["call"] + "\n\nExample: `call print_all` jumps to `print_all`; `return` comes back to the instruction after the call.",
		"return": "Return Instruction.\n\nFormat: " + instructionFormats["return"] + "\n\nReturns to the instruction after the most recent `call`.",
		"print":  "Print Instruction.\n\nFormat: " + instructionFormats["print"] + "\n\nExample: `print 0x10` prints `mem[0x10]`",
		"end":    "End Instruction.\n\nFormat: " + instructionFormats["end"] + "\n\nHalts the machine.",
	},
}
