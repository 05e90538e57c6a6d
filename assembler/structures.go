package assembler

type AssembledResult struct {
	Labels            map[string]int // label name to resolved address
	LabelToLineNumber map[string]int // label name to line number of its declaration
	AddressToLine     map[int]int    // address to line number
	EntryLabel        string
	Program           *Program
	ProgramText       []uint16
	Diagnostics       []Diagnostic
	Err               error    // first pipeline error, nil on success
	fileContents      []string // each line of the file
	FileName          string   // for reflection
	tokens            []Token
}

type TokenType int

const (
	TokenMnemonic TokenType = iota
	TokenRegister
	TokenImmediate
	TokenMemoryAddress
	TokenRelativeOffset
	TokenLabelDeclaration
	TokenEntryDeclaration
	TokenLabelReference
	TokenComma
	TokenEndOfInput
)

var tokenTypeNames = map[TokenType]string{
	TokenMnemonic:         "mnemonic",
	TokenRegister:         "register",
	TokenImmediate:        "immediate",
	TokenMemoryAddress:    "memory address",
	TokenRelativeOffset:   "relative offset",
	TokenLabelDeclaration: "label declaration",
	TokenEntryDeclaration: "entry declaration",
	TokenLabelReference:   "label reference",
	TokenComma:            "comma",
	TokenEndOfInput:       "end of input",
}

func (t TokenType) String() string {
	return tokenTypeNames[t]
}

// Token is produced by Tokenize and never modified afterwards. Value holds the
// decoded register index or numeric literal, Name the label, entry or mnemonic
// text.
type Token struct {
	Type   TokenType
	Lexeme string
	Value  int
	Name   string
	Range  TextRange
}

type Segment struct {
	Label       string // empty for the flat-mode preamble
	Declaration TextRange
	Tokens      []Token
}

type SegmentedSource struct {
	EntryLabel string
	EntryRange TextRange
	Segments   []Segment // first-declared-first
	Discarded  []Token   // preamble dropped because an entry label was declared
}

type Statement struct {
	Instruction Instruction
	Range       TextRange
}

// Program is a fully resolved instruction sequence. Index equals address.
type Program struct {
	Statements []Statement
	Labels     map[string]int
	HasEntry   bool
}

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type CodeDescription struct {
	URL string `json:"href"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

type Diagnostic struct {
	Range           TextRange          `json:"range"`
	Message         string             `json:"message"`
	Source          string             `json:"source,omitempty"`
	CodeDescription *CodeDescription   `json:"codeDescription,omitempty"`
	Severity        DiagnosticSeverity `json:"severity,omitempty"`
}
