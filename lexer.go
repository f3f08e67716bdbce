package main

import (
	"strings"
	"unicode"
)

// Token types for the Slate language
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenSymbol // operators and parentheses
	TokenNewline
	TokenIllegal
)

type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int // Column position (1-indexed) where the token starts
}

// Loc returns the token's source location within file.
func (t Token) Loc(file string) SourceLocation {
	return SourceLocation{File: file, Line: t.Line, Column: t.Column}
}

// processEscapeSequences converts escape sequences in a string to their actual characters
func processEscapeSequences(s string) string {
	var result strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			switch runes[i+1] {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case 'r':
				result.WriteRune('\r')
			case '\\':
				result.WriteRune('\\')
			case '"':
				result.WriteRune('"')
			default:
				// Unknown escape sequence - keep backslash and the character
				result.WriteRune(runes[i])
				result.WriteRune(runes[i+1])
			}
			i++ // Skip the escaped character
		} else {
			result.WriteRune(runes[i])
		}
	}
	return result.String()
}

// Lexer for Slate source text
type Lexer struct {
	input     string
	file      string
	pos       int
	line      int
	lineStart int // Position where current line starts
}

func NewLexer(input, file string) *Lexer {
	return &Lexer{input: input, file: file, pos: 0, line: 1, lineStart: 0}
}

func (l *Lexer) column() int {
	return l.pos - l.lineStart + 1
}

// NextToken returns the next token in the input. The statement separator
// (newline) is a token of its own; EOF ends the stream.
func (l *Lexer) NextToken() Token {
	// Skip whitespace (except newlines)
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t' || l.input[l.pos] == '\r') {
		l.pos++
	}

	// Skip comments (from // to end of line)
	if l.pos < len(l.input)-1 && l.input[l.pos] == '/' && l.input[l.pos+1] == '/' {
		for l.pos < len(l.input) && l.input[l.pos] != '\n' {
			l.pos++
		}
		return l.NextToken()
	}

	tokenColumn := l.column()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Line: l.line, Column: tokenColumn}
	}
	ch := l.input[l.pos]

	// Newline
	if ch == '\n' {
		tok := Token{Kind: TokenNewline, Text: "\n", Line: l.line, Column: tokenColumn}
		l.pos++
		l.line++
		l.lineStart = l.pos
		return tok
	}

	// String literal. The token text keeps the surrounding quotes so the
	// literal-type inference can recognize it from the text alone.
	if ch == '"' {
		l.pos++
		start := l.pos
		for l.pos < len(l.input) && l.input[l.pos] != '"' && l.input[l.pos] != '\n' {
			// Skip escaped characters (including escaped quotes)
			if l.input[l.pos] == '\\' && l.pos+1 < len(l.input) {
				l.pos += 2
			} else {
				l.pos++
			}
		}
		if l.pos >= len(l.input) || l.input[l.pos] != '"' {
			return Token{Kind: TokenIllegal, Text: "\"", Line: l.line, Column: tokenColumn}
		}
		value := processEscapeSequences(l.input[start:l.pos])
		l.pos++ // skip closing "
		return Token{Kind: TokenString, Text: "\"" + value + "\"", Line: l.line, Column: tokenColumn}
	}

	// Number literal (decimal integers)
	if ch >= '0' && ch <= '9' {
		start := l.pos
		for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
			l.pos++
		}
		return Token{Kind: TokenNumber, Text: l.input[start:l.pos], Line: l.line, Column: tokenColumn}
	}

	// Identifier or type keyword
	if unicode.IsLetter(rune(ch)) || ch == '_' {
		start := l.pos
		for l.pos < len(l.input) && (unicode.IsLetter(rune(l.input[l.pos])) || unicode.IsDigit(rune(l.input[l.pos])) || l.input[l.pos] == '_') {
			l.pos++
		}
		return Token{Kind: TokenIdent, Text: l.input[start:l.pos], Line: l.line, Column: tokenColumn}
	}

	// Operators and punctuation
	switch ch {
	case '=', '+', '-', '*', '/', '%', '(', ')':
		l.pos++
		return Token{Kind: TokenSymbol, Text: string(ch), Line: l.line, Column: tokenColumn}
	}

	return Token{Kind: TokenIllegal, Text: string(ch), Line: l.line, Column: tokenColumn}
}

// Tokenize scans the whole input, returning every token up to EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok := l.NextToken()
		switch tok.Kind {
		case TokenEOF:
			return tokens, nil
		case TokenIllegal:
			return nil, UnexpectedCharacterError(tok.Text[0], tok.Loc(l.file))
		}
		tokens = append(tokens, tok)
	}
}
