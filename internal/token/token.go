package token

// Type identifies the lexical class of a token.
type Type string

// Token is a single lexeme with its byte-offset span in the source.
// Line/column conversion happens at the display boundary only.
type Token struct {
	Type    Type
	Literal string
	Start   int // byte offset of the first character
	End     int // byte offset one past the last character
}

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Identifiers and literals
	IDENT  Type = "IDENT"
	INT    Type = "INT"
	DOUBLE Type = "DOUBLE"
	STRING Type = "STRING"
	REGEX  Type = "REGEX"

	// Operators
	ASSIGN   Type = "="
	PLUS     Type = "+"
	MINUS    Type = "-"
	BANG     Type = "!"
	ASTERISK Type = "*"
	SLASH    Type = "/"
	PERCENT  Type = "%"

	PLUS_ASSIGN  Type = "+="
	MINUS_ASSIGN Type = "-="
	STAR_ASSIGN  Type = "*="
	SLASH_ASSIGN Type = "/="
	MOD_ASSIGN   Type = "%="

	EQ     Type = "=="
	NOT_EQ Type = "!="
	SEQ    Type = "==="
	SNE    Type = "!=="
	LT     Type = "<"
	GT     Type = ">"
	LE     Type = "<="
	GE     Type = ">="

	AND     Type = "&&"
	OR      Type = "||"
	NULLISH Type = "??"

	AMP   Type = "&"
	PIPE  Type = "|"
	CARET Type = "^"
	SHL   Type = "<<"
	SHR   Type = ">>"
	TILDE Type = "~"

	INC Type = "++"
	DEC Type = "--"

	DOT      Type = "."
	OPTCHAIN Type = "?."
	ELLIPSIS Type = "..."
	ARROW    Type = "=>"

	// Delimiters
	COMMA     Type = ","
	SEMICOLON Type = ";"
	COLON     Type = ":"
	QUESTION  Type = "?"
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	LBRACKET  Type = "["
	RBRACKET  Type = "]"

	// Keywords
	LET      Type = "LET"
	CONST    Type = "CONST"
	FUNCTION Type = "FUNCTION"
	RETURN   Type = "RETURN"
	IF       Type = "IF"
	ELSE     Type = "ELSE"
	WHILE    Type = "WHILE"
	FOR      Type = "FOR"
	IN       Type = "IN"
	BREAK    Type = "BREAK"
	CONTINUE Type = "CONTINUE"
	TRUE     Type = "TRUE"
	FALSE    Type = "FALSE"
	NULL     Type = "NULL"
	TRY      Type = "TRY"
	CATCH    Type = "CATCH"
	SWITCH   Type = "SWITCH"
	CASE     Type = "CASE"
	DEFAULT  Type = "DEFAULT"
	DELETE   Type = "DELETE"
	IMPORT   Type = "IMPORT"
	EXPORT   Type = "EXPORT"
	FROM     Type = "FROM"
	AS       Type = "AS"
)

var keywords = map[string]Type{
	"let":      LET,
	"const":    CONST,
	"function": FUNCTION,
	"return":   RETURN,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"break":    BREAK,
	"continue": CONTINUE,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
	"try":      TRY,
	"catch":    CATCH,
	"switch":   SWITCH,
	"case":     CASE,
	"default":  DEFAULT,
	"delete":   DELETE,
	"import":   IMPORT,
	"export":   EXPORT,
	"from":     FROM,
	"as":       AS,
}

// LookupIdent maps an identifier to its keyword type, or IDENT.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}
