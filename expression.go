package main

import "github.com/xyproto/env/v2"

const (
	parenOpen  = "("
	parenClose = ")"

	// defaultMaxExpressionDepth bounds expression parser recursion so that
	// pathologically nested input becomes a compile error instead of
	// unbounded stack growth.
	defaultMaxExpressionDepth = 512
)

// maxExpressionDepth is the recursion bound, overridable through the
// SLATEC_MAX_DEPTH environment variable.
var maxExpressionDepth = env.Int("SLATEC_MAX_DEPTH", defaultMaxExpressionDepth)

// operatorEntry binds an operator symbol to the sub-parser that handles it.
type operatorEntry struct {
	symbol string
	parse  func(*exprParser) (Expression, error)
}

// operatorGroups lists the precedence tiers from loosest to tightest
// binding: assignment, additive, multiplicative. Populated in init because
// the sub-parsers recurse through the table.
var operatorGroups [][]operatorEntry

func init() {
	operatorGroups = [][]operatorEntry{
		{
			{symbol: "=", parse: (*exprParser).parseAssignment},
		},
		{
			{symbol: "+", parse: (*exprParser).parseAdd},
			{symbol: "-", parse: (*exprParser).parseSub},
		},
		{
			{symbol: "*", parse: (*exprParser).parseMul},
			{symbol: "/", parse: (*exprParser).parseDiv},
			{symbol: "%", parse: (*exprParser).parseMod},
		},
	}
}

// exprParser is one recursive invocation's view of the shared token
// sequence. Recursive calls copy the struct and narrow start/end, so
// sibling calls never alias mutable state; the token slice, the match
// table, and the namespace are borrowed read-only.
type exprParser struct {
	tokens     []Token
	loc        SourceLocation
	exprStart  int   // anchor of the whole expression, indexes the match table
	start      int   // current range [start, end)
	end        int
	tokenIndex int   // current scan position during operator search
	groupIndex int   // current precedence tier
	parens     []int // match table: parens[close-exprStart] = opener index
	ns         *Namespace
	depth      int
	maxDepth   int
}

// matchParens scans tokens[start:end] once and records, for every closing
// parenthesis, the index of its matching opener. The table is indexed by
// closeIndex-start and holds absolute token indices.
func matchParens(tokens []Token, start, end int, loc SourceLocation) ([]int, error) {
	matches := make([]int, end-start)
	var openStack []int

	for i := start; i < end; i++ {
		switch tokens[i].Text {
		case parenOpen:
			openStack = append(openStack, i)
		case parenClose:
			if len(openStack) == 0 {
				return nil, MismatchedParenthesesError(loc)
			}
			matches[i-start] = openStack[len(openStack)-1]
			openStack = openStack[:len(openStack)-1]
		}
	}

	if len(openStack) != 0 {
		return nil, MismatchedParenthesesError(loc)
	}
	return matches, nil
}

// ParseExpression parses tokens[start:end] into an expression tree. The
// namespace is consulted read-only to resolve variable references; loc
// tags every error with the statement's source location.
func ParseExpression(tokens []Token, loc SourceLocation, start, end int, ns *Namespace) (Expression, error) {
	if end <= start {
		return nil, MalformedExpressionError(loc)
	}

	parens, err := matchParens(tokens, start, end, loc)
	if err != nil {
		return nil, err
	}

	p := &exprParser{
		tokens:    tokens,
		loc:       loc,
		exprStart: start,
		start:     start,
		end:       end,
		parens:    parens,
		ns:        ns,
		maxDepth:  maxExpressionDepth,
	}
	return p.parseSubExpression()
}

// parseSubExpression is the recursive core. A single token is a value; a
// fully parenthesized range is stripped and re-parsed; otherwise the range
// is scanned per precedence tier, rightmost token first, for the split
// point.
func (p *exprParser) parseSubExpression() (Expression, error) {
	p.depth++
	if p.depth > p.maxDepth {
		return nil, NestingTooDeepError(p.maxDepth, p.loc)
	}

	// An empty range means an operator had no operand on one side.
	if p.end <= p.start {
		return nil, MalformedExpressionError(p.loc)
	}

	if p.start+1 == p.end {
		return p.parseValue()
	}

	if p.wholeRangeParenthesized() {
		return p.parseParenthetical()
	}

	for ; p.groupIndex < len(operatorGroups); p.groupIndex++ {
		for p.tokenIndex = p.end - 1; p.tokenIndex >= p.start; p.tokenIndex-- {
			token := p.tokens[p.tokenIndex].Text

			if token == parenClose {
				// Skip the parenthesized span in one jump so its content is
				// never a candidate top-level operator.
				p.tokenIndex = p.parens[p.tokenIndex-p.exprStart]
				continue
			}

			node, err := p.compileOperator(token)
			if err != nil {
				return nil, err
			}
			if node != nil {
				return node, nil
			}
		}
	}

	return nil, MalformedExpressionError(p.loc)
}

// wholeRangeParenthesized reports whether the entire range is wrapped in
// one matching pair. Checking the match table (not just the first and last
// tokens) keeps ranges like "(a) + (b)" from being stripped.
func (p *exprParser) wholeRangeParenthesized() bool {
	return p.tokens[p.start].Text == parenOpen &&
		p.tokens[p.end-1].Text == parenClose &&
		p.parens[p.end-1-p.exprStart] == p.start
}

// parseParenthetical strips the outer pair and recurses on the interior.
// This does not consume a tier: the current tier carries through.
func (p *exprParser) parseParenthetical() (Expression, error) {
	inner := *p
	inner.start++
	inner.end--
	return inner.parseSubExpression()
}

// compileOperator dispatches token against the current tier. A nil, nil
// return means "no match here", so the caller keeps scanning.
func (p *exprParser) compileOperator(token string) (Expression, error) {
	for _, op := range operatorGroups[p.groupIndex] {
		if token == op.symbol {
			return op.parse(p)
		}
	}
	return nil, nil
}

// parseValue resolves a single token as a literal or a declared variable.
func (p *exprParser) parseValue() (Expression, error) {
	token := p.tokens[p.start]

	if literalType := InferLiteralType(token.Text); literalType != nil {
		return &LiteralExpr{ExprType: literalType, Text: token.Text}, nil
	}

	if v, ok := p.ns.Lookup(token.Text); ok {
		return &VarExpr{ExprType: v.Type, Name: token.Text}, nil
	}

	return nil, InvalidValueError(token.Text, p.loc)
}

// parseBinaryOperation splits the range at the current token into left and
// right operands. Operand sub-expressions may use any operator, so both
// recursions restart their tier scan from the lowest tier.
func (p *exprParser) parseBinaryOperation(op OpKind, emit emitFunc) (Expression, error) {
	leftParser := *p
	leftParser.end = p.tokenIndex
	leftParser.groupIndex = 0
	left, err := leftParser.parseSubExpression()
	if err != nil {
		return nil, err
	}

	rightParser := *p
	rightParser.start = p.tokenIndex + 1
	rightParser.groupIndex = 0
	right, err := rightParser.parseSubExpression()
	if err != nil {
		return nil, err
	}

	return NewBinaryExpr(op, left, right, emit), nil
}

func (p *exprParser) parseAdd() (Expression, error) {
	return p.parseBinaryOperation(OpAdd, emitAdd)
}

func (p *exprParser) parseSub() (Expression, error) {
	return p.parseBinaryOperation(OpSub, emitSub)
}

func (p *exprParser) parseMul() (Expression, error) {
	return p.parseBinaryOperation(OpMul, emitMul)
}

func (p *exprParser) parseDiv() (Expression, error) {
	return p.parseBinaryOperation(OpDiv, emitDiv)
}

func (p *exprParser) parseMod() (Expression, error) {
	return p.parseBinaryOperation(OpMod, emitMod)
}

// parseAssignment handles the special binary form: the left side must be
// exactly one variable token at the start of the statement's expression,
// and the right side is everything after the '='.
func (p *exprParser) parseAssignment() (Expression, error) {
	if p.tokenIndex-p.exprStart != 1 {
		return nil, InvalidAssignmentError(p.loc)
	}

	name := p.tokens[p.tokenIndex-1].Text
	v, ok := p.ns.Lookup(name)
	if !ok {
		return nil, InvalidValueError(name, p.loc)
	}
	varNode := &VarExpr{ExprType: v.Type, Name: name}

	valueParser := *p
	valueParser.start = p.tokenIndex + 1
	valueParser.groupIndex = 0
	value, err := valueParser.parseSubExpression()
	if err != nil {
		return nil, err
	}

	return NewBinaryExpr(OpAssign, varNode, value, emitAssign), nil
}
