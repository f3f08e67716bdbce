package main

import (
	"strings"
	"testing"
)

func tokensFor(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := NewLexer(source, "test.slt").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", source, err)
	}
	return tokens
}

// testNamespace returns a namespace with a few num variables declared
func testNamespace(t *testing.T) *Namespace {
	t.Helper()
	ns := NewNamespace()
	for _, name := range []string{"a", "b", "c", "x", "y"} {
		if _, err := ns.Define(name, TypeNumValue, SourceLocation{}); err != nil {
			t.Fatalf("Define(%q) failed: %v", name, err)
		}
	}
	return ns
}

func parseSource(t *testing.T, source string, ns *Namespace) (Expression, error) {
	t.Helper()
	tokens := tokensFor(t, source)
	loc := SourceLocation{File: "test.slt", Line: 1, Column: 1}
	return ParseExpression(tokens, loc, 0, len(tokens), ns)
}

func mustParse(t *testing.T, source string, ns *Namespace) Expression {
	t.Helper()
	expr, err := parseSource(t, source, ns)
	if err != nil {
		t.Fatalf("ParseExpression(%q) failed: %v", source, err)
	}
	return expr
}

func expectCompileError(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if _, ok := err.(*CompilerError); !ok {
		t.Fatalf("expected *CompilerError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error containing %q, got %q", want, err.Error())
	}
}

// TestMatchParens checks the close-to-open match table for nested pairs
func TestMatchParens(t *testing.T) {
	tokens := tokensFor(t, "( a ( b ) )")
	matches, err := matchParens(tokens, 0, len(tokens), SourceLocation{})
	if err != nil {
		t.Fatalf("matchParens failed: %v", err)
	}
	if matches[4] != 2 {
		t.Errorf("inner close should match opener at 2, got %d", matches[4])
	}
	if matches[5] != 0 {
		t.Errorf("outer close should match opener at 0, got %d", matches[5])
	}
}

// TestMatchParensImbalance checks that both imbalance directions fail
func TestMatchParensImbalance(t *testing.T) {
	for _, source := range []string{"( a + b", "a + b )", ") a (", "( ( a )"} {
		t.Run(source, func(t *testing.T) {
			tokens := tokensFor(t, source)
			_, err := matchParens(tokens, 0, len(tokens), SourceLocation{})
			expectCompileError(t, err, "mismatched parentheses")
		})
	}
}

// TestSingleTokenValues checks the recursion's base case: one token
// resolves to a leaf with the correct type
func TestSingleTokenValues(t *testing.T) {
	ns := testNamespace(t)

	t.Run("number literal", func(t *testing.T) {
		expr := mustParse(t, "42", ns)
		leaf, ok := expr.(*LiteralExpr)
		if !ok {
			t.Fatalf("expected *LiteralExpr, got %T", expr)
		}
		if leaf.ExprType != TypeNumValue {
			t.Errorf("expected num type, got %s", leaf.ExprType)
		}
		if leaf.Text != "42" {
			t.Errorf("expected text 42, got %s", leaf.Text)
		}
	})

	t.Run("string literal", func(t *testing.T) {
		expr := mustParse(t, `"hello"`, ns)
		leaf, ok := expr.(*LiteralExpr)
		if !ok {
			t.Fatalf("expected *LiteralExpr, got %T", expr)
		}
		if leaf.ExprType != TypeStrValue {
			t.Errorf("expected str type, got %s", leaf.ExprType)
		}
	})

	t.Run("declared variable", func(t *testing.T) {
		expr := mustParse(t, "a", ns)
		leaf, ok := expr.(*VarExpr)
		if !ok {
			t.Fatalf("expected *VarExpr, got %T", expr)
		}
		if leaf.Name != "a" || leaf.ExprType != TypeNumValue {
			t.Errorf("unexpected leaf %s: %s", leaf.Name, leaf.ExprType)
		}
	})

	t.Run("undeclared name", func(t *testing.T) {
		_, err := parseSource(t, "undeclared_name", ns)
		expectCompileError(t, err, "invalid value 'undeclared_name'")
	})
}

// TestParenthesisStripping checks that (E) parses identically to E
func TestParenthesisStripping(t *testing.T) {
	ns := testNamespace(t)

	plain := mustParse(t, "a + b", ns)
	wrapped := mustParse(t, "(a + b)", ns)
	doubly := mustParse(t, "((a + b))", ns)

	if wrapped.String() != plain.String() {
		t.Errorf("(E) parsed differently from E: %s vs %s", wrapped, plain)
	}
	if doubly.String() != plain.String() {
		t.Errorf("((E)) parsed differently from E: %s vs %s", doubly, plain)
	}
}

// TestLeftAssociativity checks that same-tier operators nest on the left
func TestLeftAssociativity(t *testing.T) {
	ns := testNamespace(t)

	cases := []struct {
		source string
		want   string
	}{
		{"a - b - c", "((a - b) - c)"},
		{"a + b + c", "((a + b) + c)"},
		{"a / b / c", "((a / b) / c)"},
		{"a % b / c", "((a % b) / c)"},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			expr := mustParse(t, tc.source, ns)
			if expr.String() != tc.want {
				t.Errorf("expected %s, got %s", tc.want, expr)
			}
		})
	}
}

// TestPrecedence checks that multiplicative operators bind tighter than
// additive ones
func TestPrecedence(t *testing.T) {
	ns := testNamespace(t)

	cases := []struct {
		source string
		want   string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b % c", "(a - (b % c))"},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			expr := mustParse(t, tc.source, ns)
			if expr.String() != tc.want {
				t.Errorf("expected %s, got %s", tc.want, expr)
			}
		})
	}
}

// TestParenthesisOverride checks that grouping beats precedence
func TestParenthesisOverride(t *testing.T) {
	ns := testNamespace(t)

	expr := mustParse(t, "(a + b) * c", ns)
	root, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected *BinaryExpr, got %T", expr)
	}
	if root.Op != OpMul {
		t.Errorf("expected * at the root, got %s", root.Op)
	}
	if root.Left.String() != "(a + b)" {
		t.Errorf("expected (a + b) as the left operand, got %s", root.Left)
	}
}

// TestSiblingParentheses checks that a range that merely starts and ends
// with parentheses is not stripped
func TestSiblingParentheses(t *testing.T) {
	ns := testNamespace(t)

	expr := mustParse(t, "(a) + (b)", ns)
	if expr.String() != "(a + b)" {
		t.Errorf("expected (a + b), got %s", expr)
	}

	expr = mustParse(t, "(a + b) * (c - a)", ns)
	if expr.String() != "((a + b) * (c - a))" {
		t.Errorf("expected ((a + b) * (c - a)), got %s", expr)
	}
}

// TestAssignment checks the assignment special form
func TestAssignment(t *testing.T) {
	ns := testNamespace(t)

	t.Run("valid assignment", func(t *testing.T) {
		expr := mustParse(t, "x = a + b", ns)
		root, ok := expr.(*BinaryExpr)
		if !ok {
			t.Fatalf("expected *BinaryExpr, got %T", expr)
		}
		if root.Op != OpAssign {
			t.Errorf("expected = at the root, got %s", root.Op)
		}
		left, ok := root.Left.(*VarExpr)
		if !ok || left.Name != "x" {
			t.Errorf("expected variable x on the left, got %s", root.Left)
		}
		if root.ExprType != TypeNumValue {
			t.Errorf("assignment should take the right side's type, got %s", root.ExprType)
		}
	})

	t.Run("left side not a single token", func(t *testing.T) {
		_, err := parseSource(t, "x + y = a", ns)
		expectCompileError(t, err, "invalid assignment")
	})

	t.Run("nothing before the equals", func(t *testing.T) {
		_, err := parseSource(t, "= a", ns)
		expectCompileError(t, err, "invalid assignment")
	})

	t.Run("assignment to undeclared variable", func(t *testing.T) {
		_, err := parseSource(t, "nope = a", ns)
		expectCompileError(t, err, "invalid value 'nope'")
	})
}

// TestUnmatchedParentheses checks that imbalance is caught before parsing
func TestUnmatchedParentheses(t *testing.T) {
	ns := testNamespace(t)

	for _, source := range []string{"( a + b", "a + b )"} {
		t.Run(source, func(t *testing.T) {
			_, err := parseSource(t, source, ns)
			expectCompileError(t, err, "mismatched parentheses")
		})
	}
}

// TestInvalidValueInOperand checks unknown identifiers inside expressions
func TestInvalidValueInOperand(t *testing.T) {
	ns := testNamespace(t)
	_, err := parseSource(t, "a + undeclared_name", ns)
	expectCompileError(t, err, "invalid value 'undeclared_name'")
}

// TestMalformedExpression checks multi-token ranges with no operator
func TestMalformedExpression(t *testing.T) {
	ns := testNamespace(t)

	for _, source := range []string{"a b", "a (b)", "1 2 3"} {
		t.Run(source, func(t *testing.T) {
			_, err := parseSource(t, source, ns)
			expectCompileError(t, err, "malformed expression")
		})
	}
}

// TestOperatorTable checks the tier layout: assignment binds loosest,
// multiplicative operators bind tightest
func TestOperatorTable(t *testing.T) {
	want := [][]string{{"="}, {"+", "-"}, {"*", "/", "%"}}
	if len(operatorGroups) != len(want) {
		t.Fatalf("expected %d tiers, got %d", len(want), len(operatorGroups))
	}
	for i, tier := range want {
		if len(operatorGroups[i]) != len(tier) {
			t.Fatalf("tier %d: expected %d operators, got %d", i, len(tier), len(operatorGroups[i]))
		}
		for j, symbol := range tier {
			entry := operatorGroups[i][j]
			if entry.symbol != symbol {
				t.Errorf("tier %d entry %d: expected %q, got %q", i, j, symbol, entry.symbol)
			}
			if entry.parse == nil {
				t.Errorf("tier %d entry %d (%q): no sub-parser bound", i, j, symbol)
			}
		}
	}
}

// TestMissingOperand checks that an operator with an empty side is a
// compile error, not a crash
func TestMissingOperand(t *testing.T) {
	ns := testNamespace(t)

	for _, source := range []string{"a +", "x =", "+ a", "a + (b *)"} {
		t.Run(source, func(t *testing.T) {
			_, err := parseSource(t, source, ns)
			expectCompileError(t, err, "malformed expression")
		})
	}
}

// TestReparseIdempotence checks that parsing has no hidden mutable state:
// the same tokens with the same namespace always give the same tree
func TestReparseIdempotence(t *testing.T) {
	ns := testNamespace(t)
	source := "x = (a + b) * c - a % b"

	tokens := tokensFor(t, source)
	loc := SourceLocation{File: "test.slt", Line: 1, Column: 1}

	first, err := ParseExpression(tokens, loc, 0, len(tokens), ns)
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	second, err := ParseExpression(tokens, loc, 0, len(tokens), ns)
	if err != nil {
		t.Fatalf("second parse failed: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("re-parse gave a different tree: %s vs %s", first, second)
	}
}

// TestNestingTooDeep checks that pathological nesting is a compile error
// instead of a stack overflow
func TestNestingTooDeep(t *testing.T) {
	ns := testNamespace(t)
	depth := maxExpressionDepth + 10
	source := strings.Repeat("(", depth) + "a" + strings.Repeat(")", depth)

	_, err := parseSource(t, source, ns)
	expectCompileError(t, err, "too deeply nested")
}

// TestDeepButLegalNesting checks that nesting below the bound still parses
func TestDeepButLegalNesting(t *testing.T) {
	ns := testNamespace(t)
	depth := maxExpressionDepth / 2
	source := strings.Repeat("(", depth) + "a" + strings.Repeat(")", depth)

	expr := mustParse(t, source, ns)
	if expr.String() != "a" {
		t.Errorf("expected a, got %s", expr)
	}
}

// TestEmptyParentheses checks that () has no value to resolve
func TestEmptyParentheses(t *testing.T) {
	ns := testNamespace(t)
	_, err := parseSource(t, "()", ns)
	if err == nil {
		t.Fatal("expected an error for ()")
	}
}
