package main

import "fmt"

// Statement-level constructs. A statement is one source line: either a
// variable declaration or a bare expression (in practice an assignment).
// Both invoke expression parsing as a sub-step.
type Statement interface {
	stmtNode()
	String() string
}

// DeclStmt declares a variable and initializes it. The initializer is
// parsed as an assignment expression over the declared name.
type DeclStmt struct {
	Var  *Variable
	Init Expression
}

func (*DeclStmt) stmtNode() {}

func (d *DeclStmt) String() string {
	return fmt.Sprintf("%s %s", d.Var.Type, d.Init)
}

// ExprStmt is a bare expression statement.
type ExprStmt struct {
	Expr Expression
}

func (*ExprStmt) stmtNode() {}

func (e *ExprStmt) String() string { return e.Expr.String() }

// Program is one compiled source file: its statements and the namespace
// they declared into.
type Program struct {
	Statements []Statement
	Namespace  *Namespace
}

// parseStatement parses one statement's tokens. Declarations mutate the
// namespace; expression parsing itself only reads it.
func parseStatement(tokens []Token, file string, ns *Namespace) (Statement, error) {
	loc := tokens[0].Loc(file)

	if typ := LookupTypeKeyword(tokens[0].Text); typ != nil {
		// Declaration: TYPE NAME = expression
		if len(tokens) < 4 {
			return nil, UnexpectedTokenError("'<type> <name> = <expression>'", fmt.Sprintf("%d token(s)", len(tokens)), loc)
		}
		name := tokens[1]
		if name.Kind != TokenIdent {
			return nil, UnexpectedTokenError("a variable name", fmt.Sprintf("'%s'", name.Text), loc)
		}
		if tokens[2].Text != "=" {
			return nil, UnexpectedTokenError("'='", fmt.Sprintf("'%s'", tokens[2].Text), loc)
		}

		v, err := ns.Define(name.Text, typ, loc)
		if err != nil {
			return nil, err
		}

		// The initializer is the assignment "NAME = expression", so the
		// expression parser's own assignment handling applies.
		init, err := ParseExpression(tokens, loc, 1, len(tokens), ns)
		if err != nil {
			return nil, err
		}
		if init.ResultType() != typ {
			return nil, TypeMismatchError(typ.String(), init.ResultType().String(), loc)
		}
		return &DeclStmt{Var: v, Init: init}, nil
	}

	// A line shaped like a declaration whose first word is not a known
	// type keyword gets a type error, not a confusing expression error.
	if len(tokens) >= 3 && tokens[0].Kind == TokenIdent && tokens[1].Kind == TokenIdent && tokens[2].Text == "=" {
		return nil, UnknownTypeError(tokens[0].Text, loc)
	}

	expr, err := ParseExpression(tokens, loc, 0, len(tokens), ns)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

// ParseProgram splits the token stream into statements on newlines and
// parses each to completion before moving on.
func ParseProgram(tokens []Token, file string) (*Program, error) {
	ns := NewNamespace()
	prog := &Program{Namespace: ns}

	start := 0
	for i := 0; i <= len(tokens); i++ {
		if i < len(tokens) && tokens[i].Kind != TokenNewline {
			continue
		}
		if i > start {
			stmt, err := parseStatement(tokens[start:i], file, ns)
			if err != nil {
				return nil, err
			}
			prog.Statements = append(prog.Statements, stmt)
		}
		start = i + 1
	}

	return prog, nil
}
