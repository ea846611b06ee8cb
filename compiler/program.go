package compiler

import (
	"github.com/helena-lang/helena-go/token"
	"github.com/helena-lang/helena-go/value"
)

// Instr is one instruction: an Opcode plus an operand that indexes into
// the owning Program's Constants pool (PUSH_CONSTANT, RESOLVE_VALUE,
// MAKE_SCRIPT) or is unused (-1) for every other opcode. Pos is the
// source position of the AST node the instruction was compiled from, set
// only for opcodes the evaluator can fail or capture an error frame at
// (EVALUATE_SENTENCE, the SELECT_* family, RESOLVE_VALUE,
// CLOSE_FRAME_AS_STRING); nil elsewhere. Carried so capture_positions
// can attach a call-site position to an error-stack entry (spec §4.5,
// §7) without the evaluator re-deriving it from the AST at run time.
type Instr struct {
	Op      Opcode
	Operand int
	Pos     *token.Position
}

// Program is a linear opcode sequence with an inlined constant pool
// (spec §3). Compiling the same Script always yields an equal Program
// (spec §8 property 3: parser/compiler determinism).
type Program struct {
	Constants []value.Value
	Code      []Instr
}

func newProgram() *Program {
	return &Program{}
}

func (p *Program) emit(op Opcode) int {
	p.Code = append(p.Code, Instr{Op: op, Operand: -1})
	return len(p.Code) - 1
}

func (p *Program) emitOperand(op Opcode, operand int) int {
	p.Code = append(p.Code, Instr{Op: op, Operand: operand})
	return len(p.Code) - 1
}

// emitAt is emit plus a source position, for opcodes whose failure or
// error-frame capture should be attributable to a call site.
func (p *Program) emitAt(op Opcode, pos *token.Position) int {
	p.Code = append(p.Code, Instr{Op: op, Operand: -1, Pos: pos})
	return len(p.Code) - 1
}

// emitOperandAt is emitOperand plus a source position.
func (p *Program) emitOperandAt(op Opcode, operand int, pos *token.Position) int {
	p.Code = append(p.Code, Instr{Op: op, Operand: operand, Pos: pos})
	return len(p.Code) - 1
}

func (p *Program) addConstant(v value.Value) int {
	p.Constants = append(p.Constants, v)
	return len(p.Constants) - 1
}
