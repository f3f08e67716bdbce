package main

import "fmt"

// AST nodes. Expressions come in exactly three shapes: literal leaves,
// variable leaves, and binary operations. Statement-level constructs live
// in statement.go and invoke expression parsing as a sub-step.
type Expression interface {
	exprNode()
	String() string
	ResultType() *SlateType
}

// OpKind identifies a binary operator. The set is closed.
type OpKind int

const (
	OpAssign OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op OpKind) String() string {
	switch op {
	case OpAssign:
		return "="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "?"
	}
}

// LiteralExpr is a leaf node holding a literal token and its inferred type.
type LiteralExpr struct {
	ExprType *SlateType
	Text     string // the literal's source text, quotes included for strings
}

func (*LiteralExpr) exprNode()                {}
func (l *LiteralExpr) String() string         { return l.Text }
func (l *LiteralExpr) ResultType() *SlateType { return l.ExprType }

// VarExpr is a leaf node referencing a declared variable.
type VarExpr struct {
	ExprType *SlateType
	Name     string
}

func (*VarExpr) exprNode()                {}
func (v *VarExpr) String() string         { return v.Name }
func (v *VarExpr) ResultType() *SlateType { return v.ExprType }

// BinaryExpr is a binary operation node. It exclusively owns its two
// children and carries the emission handler selected for its operator.
type BinaryExpr struct {
	Op       OpKind
	ExprType *SlateType
	Left     Expression
	Right    Expression
	emit     emitFunc
}

func (*BinaryExpr) exprNode() {}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func (b *BinaryExpr) ResultType() *SlateType { return b.ExprType }

// NewBinaryExpr builds a binary operation node. The result type of a
// binary operation is its right operand's resolved type.
func NewBinaryExpr(op OpKind, left, right Expression, emit emitFunc) *BinaryExpr {
	return &BinaryExpr{
		Op:       op,
		ExprType: right.ResultType(),
		Left:     left,
		Right:    right,
		emit:     emit,
	}
}
