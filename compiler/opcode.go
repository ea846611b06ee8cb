// Package compiler translates a parsed Script into a linear Program with
// an inlined constant pool (spec §3 Program, §4.4). No recursion is
// needed at execution time: nested subscripts (Tuple/Expression bodies)
// are compiled inline into the same instruction stream, which is what
// lets the evaluator's trampoline stay a flat loop (spec §4.5, §9).
package compiler

// Opcode is one instruction of a compiled Program. Grouped by concern,
// in the style of the opcode-enum found across the pack's bytecode-VM
// examples (e.g. funxy's OP_ constants grouped by phase).
type Opcode int

const (
	// Stack / frame management
	PushConstant Opcode = iota
	PushNil
	OpenFrame
	CloseFrameAsTuple
	CloseFrameAsString
	CloseFrameAsList

	// Selectors
	SelectIndex
	SelectKeys
	SelectRules

	// Sentence evaluation
	EvaluateSentence

	// Substitution & string assembly
	SubstituteResult
	JoinStrings
	ExpandValue

	// Literal references
	MakeScript
	ResolveValue
)

var opcodeNames = map[Opcode]string{
	PushConstant:       "PUSH_CONSTANT",
	PushNil:            "PUSH_NIL",
	OpenFrame:          "OPEN_FRAME",
	CloseFrameAsTuple:  "CLOSE_FRAME_AS_TUPLE",
	CloseFrameAsString: "CLOSE_FRAME_AS_STRING",
	CloseFrameAsList:   "CLOSE_FRAME_AS_LIST",
	SelectIndex:        "SELECT_INDEX",
	SelectKeys:         "SELECT_KEYS",
	SelectRules:        "SELECT_RULES",
	EvaluateSentence:   "EVALUATE_SENTENCE",
	SubstituteResult:   "SUBSTITUTE_RESULT",
	JoinStrings:        "JOIN_STRINGS",
	ExpandValue:        "EXPAND_VALUE",
	MakeScript:         "MAKE_SCRIPT",
	ResolveValue:       "RESOLVE_VALUE",
}

func (o Opcode) String() string {
	if n, ok := opcodeNames[o]; ok {
		return n
	}
	return "UNKNOWN"
}
