package main

import (
	"fmt"
	"os"
	"strings"
)

// Code generation constants
const (
	StackSlotSize  = 8  // Size of a stack slot (8 bytes for int64/pointer)
	StackAlignment = 16 // x86_64 ABI requires 16-byte stack alignment
)

// emitFunc is the instruction-emission behavior attached to a binary node.
// One handler exists per operator; the parser selects it at node
// construction time and the emission stage invokes it.
type emitFunc func(*Assembler, *BinaryExpr) error

// dataItem is one entry in the .data section.
type dataItem struct {
	label string
	bytes []byte
}

// Assembler accumulates NASM-syntax x86-64 assembly for one program.
// Expression results travel in rax; variables live in rbp-relative stack
// slots handed out by the namespace.
type Assembler struct {
	text     strings.Builder
	data     []dataItem
	ns       *Namespace
	strCount int
}

func NewAssembler(ns *Namespace) *Assembler {
	return &Assembler{ns: ns}
}

// ins appends one instruction line to the text section.
func (a *Assembler) ins(format string, args ...interface{}) {
	a.text.WriteString("\t")
	fmt.Fprintf(&a.text, format, args...)
	a.text.WriteString("\n")
}

// internString adds a NUL-terminated string literal to the data section
// and returns its label. text is the literal token, quotes included.
func (a *Assembler) internString(text string) string {
	label := fmt.Sprintf("str%d", a.strCount)
	a.strCount++
	content := text[1 : len(text)-1]
	a.data = append(a.data, dataItem{label: label, bytes: append([]byte(content), 0)})
	return label
}

// EmitProgram lowers a parsed program to a complete assembly listing with
// a _start entry point, a frame sized to the namespace, and an exit(0)
// epilogue.
func (a *Assembler) EmitProgram(prog *Program) (string, error) {
	for _, stmt := range prog.Statements {
		if VerboseMode {
			fmt.Fprintf(os.Stderr, "emit: %s\n", stmt)
		}
		if err := a.emitStatement(stmt); err != nil {
			return "", err
		}
	}

	var out strings.Builder
	out.WriteString("global _start\n\nsection .text\n_start:\n")
	out.WriteString("\tpush rbp\n")
	out.WriteString("\tmov rbp, rsp\n")
	if frame := a.ns.FrameSize(); frame > 0 {
		fmt.Fprintf(&out, "\tsub rsp, %d\n", frame)
	}
	out.WriteString(a.text.String())
	out.WriteString("\tmov rax, 60\n")
	out.WriteString("\txor rdi, rdi\n")
	out.WriteString("\tsyscall\n")

	if len(a.data) > 0 {
		out.WriteString("\nsection .data\n")
		for _, item := range a.data {
			fmt.Fprintf(&out, "%s: db %s\n", item.label, byteList(item.bytes))
		}
	}
	return out.String(), nil
}

func byteList(bs []byte) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = fmt.Sprintf("%d", b)
	}
	return strings.Join(parts, ", ")
}

func (a *Assembler) emitStatement(stmt Statement) error {
	switch s := stmt.(type) {
	case *DeclStmt:
		return a.emitExpression(s.Init)
	case *ExprStmt:
		return a.emitExpression(s.Expr)
	default:
		return InternalError(fmt.Sprintf("unknown statement %T", stmt), SourceLocation{})
	}
}

// emitExpression leaves the expression's value in rax.
func (a *Assembler) emitExpression(expr Expression) error {
	switch n := expr.(type) {
	case *LiteralExpr:
		if n.ExprType.Kind == TypeStr {
			a.ins("lea rax, [rel %s]", a.internString(n.Text))
		} else {
			a.ins("mov rax, %s", n.Text)
		}
		return nil
	case *VarExpr:
		v, ok := a.ns.Lookup(n.Name)
		if !ok {
			return InternalError(fmt.Sprintf("variable '%s' vanished from namespace", n.Name), SourceLocation{})
		}
		a.ins("mov rax, [rbp-%d]", v.Offset)
		return nil
	case *BinaryExpr:
		return n.emit(a, n)
	default:
		return InternalError(fmt.Sprintf("unknown expression %T", expr), SourceLocation{})
	}
}

// emitOperands evaluates both children of a binary node, leaving the left
// value in rax and the right value in rbx.
func (a *Assembler) emitOperands(node *BinaryExpr) error {
	if err := a.emitExpression(node.Left); err != nil {
		return err
	}
	a.ins("push rax")
	if err := a.emitExpression(node.Right); err != nil {
		return err
	}
	a.ins("mov rbx, rax")
	a.ins("pop rax")
	return nil
}

// Instruction emission handlers, one per operator symbol.

func emitAdd(a *Assembler, node *BinaryExpr) error {
	if err := a.emitOperands(node); err != nil {
		return err
	}
	a.ins("add rax, rbx")
	return nil
}

func emitSub(a *Assembler, node *BinaryExpr) error {
	if err := a.emitOperands(node); err != nil {
		return err
	}
	a.ins("sub rax, rbx")
	return nil
}

func emitMul(a *Assembler, node *BinaryExpr) error {
	if err := a.emitOperands(node); err != nil {
		return err
	}
	a.ins("imul rax, rbx")
	return nil
}

func emitDiv(a *Assembler, node *BinaryExpr) error {
	if err := a.emitOperands(node); err != nil {
		return err
	}
	a.ins("cqo")
	a.ins("idiv rbx")
	return nil
}

func emitMod(a *Assembler, node *BinaryExpr) error {
	if err := a.emitOperands(node); err != nil {
		return err
	}
	a.ins("cqo")
	a.ins("idiv rbx")
	a.ins("mov rax, rdx")
	return nil
}

func emitAssign(a *Assembler, node *BinaryExpr) error {
	target, ok := node.Left.(*VarExpr)
	if !ok {
		return InternalError("assignment target is not a variable", SourceLocation{})
	}
	v, ok := a.ns.Lookup(target.Name)
	if !ok {
		return InternalError(fmt.Sprintf("variable '%s' vanished from namespace", target.Name), SourceLocation{})
	}
	if err := a.emitExpression(node.Right); err != nil {
		return err
	}
	a.ins("mov [rbp-%d], rax", v.Offset)
	return nil
}
