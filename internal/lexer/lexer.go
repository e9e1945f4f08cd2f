package lexer

import (
	"strings"

	"github.com/ucodekit/ucls/internal/token"
)

// Lexer turns ucode source text into a token stream. Tokens carry byte
// offsets only; line/column conversion happens at the display boundary.
type Lexer struct {
	input string
	pos   int // current reading position
	last  token.Type
}

func New(input string) *Lexer {
	l := &Lexer{input: input, last: token.ILLEGAL}
	// A shebang line is valid at the very top of a script.
	if strings.HasPrefix(input, "#!") {
		if idx := strings.IndexByte(input, '\n'); idx >= 0 {
			l.pos = idx + 1
		} else {
			l.pos = len(input)
		}
	}
	return l
}

// Tokens lexes the whole input, ending with one EOF token.
func (l *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Type == token.EOF {
			return out
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.input) {
		return 0
	}
	return l.input[l.pos+off]
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch c := l.input[l.pos]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peekAt(1) == '*':
			l.pos += 2
			for l.pos < len(l.input) {
				if l.input[l.pos] == '*' && l.peekAt(1) == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
		default:
			return
		}
	}
}

// Next returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipSpace()

	start := l.pos
	if l.pos >= len(l.input) {
		return l.emit(token.EOF, "", start)
	}

	c := l.input[l.pos]
	switch {
	case isLetter(c):
		return l.lexIdent(start)
	case isDigit(c):
		return l.lexNumber(start)
	case c == '"' || c == '\'':
		return l.lexString(start, c)
	case c == '/' && l.regexAllowed():
		return l.lexRegex(start)
	}
	return l.lexOperator(start)
}

func (l *Lexer) emit(t token.Type, lit string, start int) token.Token {
	l.last = t
	return token.Token{Type: t, Literal: lit, Start: start, End: l.pos}
}

// regexAllowed reports whether a `/` at the current position starts a regex
// literal rather than a division operator, judged by the preceding token.
func (l *Lexer) regexAllowed() bool {
	switch l.last {
	case token.IDENT, token.INT, token.DOUBLE, token.STRING, token.REGEX,
		token.RPAREN, token.RBRACKET, token.TRUE, token.FALSE, token.NULL,
		token.INC, token.DEC:
		return false
	}
	return true
}

func (l *Lexer) lexIdent(start int) token.Token {
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.pos++
	}
	lit := l.input[start:l.pos]
	return l.emit(token.LookupIdent(lit), lit, start)
}

func (l *Lexer) lexNumber(start int) token.Token {
	isDouble := false

	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.pos += 2
		for l.pos < len(l.input) && isHexDigit(l.input[l.pos]) {
			l.pos++
		}
		return l.emit(token.INT, l.input[start:l.pos], start)
	}

	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isDouble = true
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			isDouble = true
			l.pos += 2
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		}
	}

	if isDouble {
		return l.emit(token.DOUBLE, l.input[start:l.pos], start)
	}
	return l.emit(token.INT, l.input[start:l.pos], start)
}

func (l *Lexer) lexString(start int, quote byte) token.Token {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == quote {
			l.pos++
			return l.emit(token.STRING, sb.String(), start)
		}
		if c == '\\' && l.pos+1 < len(l.input) {
			l.pos++
			switch e := l.input[l.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			default:
				sb.WriteByte(e)
			}
			l.pos++
			continue
		}
		sb.WriteByte(c)
		l.pos++
	}
	// Unterminated string; the parser reports the span.
	return l.emit(token.ILLEGAL, sb.String(), start)
}

func (l *Lexer) lexRegex(start int) token.Token {
	l.pos++ // opening slash
	inClass := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			l.pos++
			// flags
			for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
				l.pos++
			}
			return l.emit(token.REGEX, l.input[start:l.pos], start)
		} else if c == '\n' {
			break
		}
		l.pos++
	}
	return l.emit(token.ILLEGAL, l.input[start:l.pos], start)
}

func (l *Lexer) lexOperator(start int) token.Token {
	two := ""
	if l.pos+1 < len(l.input) {
		two = l.input[l.pos : l.pos+2]
	}
	three := ""
	if l.pos+2 < len(l.input) {
		three = l.input[l.pos : l.pos+3]
	}

	switch three {
	case "===":
		l.pos += 3
		return l.emit(token.SEQ, three, start)
	case "!==":
		l.pos += 3
		return l.emit(token.SNE, three, start)
	case "...":
		l.pos += 3
		return l.emit(token.ELLIPSIS, three, start)
	}

	switch two {
	case "==":
		l.pos += 2
		return l.emit(token.EQ, two, start)
	case "!=":
		l.pos += 2
		return l.emit(token.NOT_EQ, two, start)
	case "<=":
		l.pos += 2
		return l.emit(token.LE, two, start)
	case ">=":
		l.pos += 2
		return l.emit(token.GE, two, start)
	case "&&":
		l.pos += 2
		return l.emit(token.AND, two, start)
	case "||":
		l.pos += 2
		return l.emit(token.OR, two, start)
	case "??":
		l.pos += 2
		return l.emit(token.NULLISH, two, start)
	case "<<":
		l.pos += 2
		return l.emit(token.SHL, two, start)
	case ">>":
		l.pos += 2
		return l.emit(token.SHR, two, start)
	case "++":
		l.pos += 2
		return l.emit(token.INC, two, start)
	case "--":
		l.pos += 2
		return l.emit(token.DEC, two, start)
	case "+=":
		l.pos += 2
		return l.emit(token.PLUS_ASSIGN, two, start)
	case "-=":
		l.pos += 2
		return l.emit(token.MINUS_ASSIGN, two, start)
	case "*=":
		l.pos += 2
		return l.emit(token.STAR_ASSIGN, two, start)
	case "/=":
		l.pos += 2
		return l.emit(token.SLASH_ASSIGN, two, start)
	case "%=":
		l.pos += 2
		return l.emit(token.MOD_ASSIGN, two, start)
	case "=>":
		l.pos += 2
		return l.emit(token.ARROW, two, start)
	case "?.":
		l.pos += 2
		return l.emit(token.OPTCHAIN, two, start)
	}

	c := l.input[l.pos]
	l.pos++
	switch c {
	case '=':
		return l.emit(token.ASSIGN, "=", start)
	case '+':
		return l.emit(token.PLUS, "+", start)
	case '-':
		return l.emit(token.MINUS, "-", start)
	case '*':
		return l.emit(token.ASTERISK, "*", start)
	case '/':
		return l.emit(token.SLASH, "/", start)
	case '%':
		return l.emit(token.PERCENT, "%", start)
	case '!':
		return l.emit(token.BANG, "!", start)
	case '<':
		return l.emit(token.LT, "<", start)
	case '>':
		return l.emit(token.GT, ">", start)
	case '&':
		return l.emit(token.AMP, "&", start)
	case '|':
		return l.emit(token.PIPE, "|", start)
	case '^':
		return l.emit(token.CARET, "^", start)
	case '~':
		return l.emit(token.TILDE, "~", start)
	case '.':
		return l.emit(token.DOT, ".", start)
	case ',':
		return l.emit(token.COMMA, ",", start)
	case ';':
		return l.emit(token.SEMICOLON, ";", start)
	case ':':
		return l.emit(token.COLON, ":", start)
	case '?':
		return l.emit(token.QUESTION, "?", start)
	case '(':
		return l.emit(token.LPAREN, "(", start)
	case ')':
		return l.emit(token.RPAREN, ")", start)
	case '{':
		return l.emit(token.LBRACE, "{", start)
	case '}':
		return l.emit(token.RBRACE, "}", start)
	case '[':
		return l.emit(token.LBRACKET, "[", start)
	case ']':
		return l.emit(token.RBRACKET, "]", start)
	}
	return l.emit(token.ILLEGAL, string(c), start)
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
