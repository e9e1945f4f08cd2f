package parser

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/ucodekit/ucls/internal/ast"
	"github.com/ucodekit/ucls/internal/diagnostics"
	"github.com/ucodekit/ucls/internal/lexer"
	"github.com/ucodekit/ucls/internal/token"
)

// Operator precedence levels, lowest binds weakest.
const (
	_ int = iota
	lowest
	assignPrec
	ternary
	nullish
	logicalOr
	logicalAnd
	bitOr
	bitXor
	bitAnd
	equality
	relational
	shift
	sum
	product
	prefix
	postfix
)

var precedences = map[token.Type]int{
	token.ASSIGN:       assignPrec,
	token.PLUS_ASSIGN:  assignPrec,
	token.MINUS_ASSIGN: assignPrec,
	token.STAR_ASSIGN:  assignPrec,
	token.SLASH_ASSIGN: assignPrec,
	token.MOD_ASSIGN:   assignPrec,
	token.QUESTION:     ternary,
	token.NULLISH:      nullish,
	token.OR:           logicalOr,
	token.AND:          logicalAnd,
	token.PIPE:         bitOr,
	token.CARET:        bitXor,
	token.AMP:          bitAnd,
	token.EQ:           equality,
	token.NOT_EQ:       equality,
	token.SEQ:          equality,
	token.SNE:          equality,
	token.LT:           relational,
	token.GT:           relational,
	token.LE:           relational,
	token.GE:           relational,
	token.IN:           relational,
	token.SHL:          shift,
	token.SHR:          shift,
	token.PLUS:         sum,
	token.MINUS:        sum,
	token.ASTERISK:     product,
	token.SLASH:        product,
	token.PERCENT:      product,
	token.LPAREN:       postfix,
	token.LBRACKET:     postfix,
	token.DOT:          postfix,
	token.OPTCHAIN:     postfix,
	token.INC:          postfix,
	token.DEC:          postfix,
}

// Parser is a recursive-descent Pratt parser over the full token stream.
type Parser struct {
	toks   []token.Token
	pos    int
	errors []diagnostics.Diagnostic
	file   string
}

// New builds a parser for the given source text.
func New(source string) *Parser {
	return &Parser{toks: lexer.New(source).Tokens()}
}

// SetFile records the file path attached to the produced Program.
func (p *Parser) SetFile(file string) { p.file = file }

// Errors returns the parse diagnostics collected so far.
func (p *Parser) Errors() []diagnostics.Diagnostic { return p.errors }

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

// prevEnd is the end offset of the most recently consumed token.
func (p *Parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].End
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, diagnostics.New(diagnostics.ErrSyntax, tok.Start, tok.End, format, args...))
}

func (p *Parser) expect(t token.Type) (token.Token, bool) {
	if p.cur().Type == t {
		return p.advance(), true
	}
	p.errorf(p.cur(), "expected %q, got %q", string(t), p.cur().Literal)
	return p.cur(), false
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{File: p.file}
	prog.StartPos = p.cur().Start

	for p.cur().Type != token.EOF {
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		if p.pos == before {
			// No progress; skip the offending token to avoid spinning.
			p.errorf(p.cur(), "unexpected token %q", p.cur().Literal)
			p.advance()
		}
	}
	prog.EndPos = p.prevEnd()
	if prog.EndPos == 0 {
		prog.EndPos = p.cur().End
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.LET, token.CONST:
		return p.parseVariableDeclaration()
	case token.FUNCTION:
		if p.peek().Type == token.IDENT {
			return p.parseFunctionDeclaration()
		}
		return p.parseExpressionStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BREAK:
		tok := p.advance()
		p.eatSemicolon()
		return &ast.BreakStatement{Span: ast.Span{StartPos: tok.Start, EndPos: p.prevEnd()}}
	case token.CONTINUE:
		tok := p.advance()
		p.eatSemicolon()
		return &ast.ContinueStatement{Span: ast.Span{StartPos: tok.Start, EndPos: p.prevEnd()}}
	case token.TRY:
		return p.parseTryStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.IMPORT:
		return p.parseImportDeclaration()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		tok := p.advance()
		return &ast.EmptyStatement{Span: ast.Span{StartPos: tok.Start, EndPos: tok.End}}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) eatSemicolon() {
	if p.cur().Type == token.SEMICOLON {
		p.advance()
	}
}

func (p *Parser) parseVariableDeclaration() ast.Statement {
	kw := p.advance() // let or const
	decl := &ast.VariableDeclaration{Kind: kw.Literal}
	decl.StartPos = kw.Start

	for {
		nameTok, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		d := &ast.VariableDeclarator{Name: ident(nameTok)}
		d.StartPos = nameTok.Start
		if p.cur().Type == token.ASSIGN {
			p.advance()
			d.Init = p.parseExpression(lowest)
		}
		d.EndPos = p.prevEnd()
		decl.Declarations = append(decl.Declarations, d)

		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	p.eatSemicolon()
	decl.EndPos = p.prevEnd()
	return decl
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	kw := p.advance() // function
	nameTok, _ := p.expect(token.IDENT)

	fd := &ast.FunctionDeclaration{Name: ident(nameTok)}
	fd.StartPos = kw.Start
	fd.Params, fd.Rest = p.parseParams()
	fd.Body = p.parseBlockStatement()
	fd.EndPos = p.prevEnd()
	return fd
}

func (p *Parser) parseParams() ([]*ast.Identifier, *ast.Identifier) {
	var params []*ast.Identifier
	var rest *ast.Identifier

	if _, ok := p.expect(token.LPAREN); !ok {
		return params, rest
	}
	for p.cur().Type != token.RPAREN && p.cur().Type != token.EOF {
		if p.cur().Type == token.ELLIPSIS {
			p.advance()
			if tok, ok := p.expect(token.IDENT); ok {
				rest = ident(tok)
			}
			break
		}
		tok, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		params = append(params, ident(tok))
		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return params, rest
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	lb, _ := p.expect(token.LBRACE)
	block := &ast.BlockStatement{}
	block.StartPos = lb.Start

	for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
		before := p.pos
		if stmt := p.parseStatement(); stmt != nil {
			block.Body = append(block.Body, stmt)
		}
		if p.pos == before {
			p.errorf(p.cur(), "unexpected token %q", p.cur().Literal)
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	block.EndPos = p.prevEnd()
	return block
}

func (p *Parser) parseReturnStatement() ast.Statement {
	kw := p.advance()
	rs := &ast.ReturnStatement{}
	rs.StartPos = kw.Start
	if p.cur().Type != token.SEMICOLON && p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
		rs.Argument = p.parseExpression(lowest)
	}
	p.eatSemicolon()
	rs.EndPos = p.prevEnd()
	return rs
}

func (p *Parser) parseIfStatement() ast.Statement {
	kw := p.advance()
	is := &ast.IfStatement{}
	is.StartPos = kw.Start

	p.expect(token.LPAREN)
	is.Test = p.parseExpression(lowest)
	p.expect(token.RPAREN)

	is.Consequent = p.parseStatement()
	if p.cur().Type == token.ELSE {
		p.advance()
		is.Alternate = p.parseStatement()
	}
	is.EndPos = p.prevEnd()
	return is
}

func (p *Parser) parseWhileStatement() ast.Statement {
	kw := p.advance()
	ws := &ast.WhileStatement{}
	ws.StartPos = kw.Start

	p.expect(token.LPAREN)
	ws.Test = p.parseExpression(lowest)
	p.expect(token.RPAREN)
	ws.Body = p.parseStatement()
	ws.EndPos = p.prevEnd()
	return ws
}

// parseForStatement handles both the C-style and the for-in forms.
func (p *Parser) parseForStatement() ast.Statement {
	kw := p.advance()
	p.expect(token.LPAREN)

	if forIn, ok := p.tryParseForIn(kw); ok {
		return forIn
	}

	fs := &ast.ForStatement{}
	fs.StartPos = kw.Start

	if p.cur().Type != token.SEMICOLON {
		if p.cur().Type == token.LET || p.cur().Type == token.CONST {
			fs.Init = p.parseVariableDeclaration() // consumes its semicolon
		} else {
			expr := p.parseExpression(lowest)
			fs.Init = &ast.ExpressionStatement{
				Span:       ast.Span{StartPos: expr.Pos(), EndPos: expr.End()},
				Expression: expr,
			}
			p.eatSemicolon()
		}
	} else {
		p.advance()
	}

	if p.cur().Type != token.SEMICOLON {
		fs.Test = p.parseExpression(lowest)
	}
	p.eatSemicolon()

	if p.cur().Type != token.RPAREN {
		fs.Update = p.parseExpression(lowest)
	}
	p.expect(token.RPAREN)
	fs.Body = p.parseStatement()
	fs.EndPos = p.prevEnd()
	return fs
}

// tryParseForIn recognizes `[let|const] name [, name] in expr` right after
// the opening parenthesis of a for statement. On a miss it rewinds.
func (p *Parser) tryParseForIn(kw token.Token) (ast.Statement, bool) {
	save := p.pos

	declared := false
	if p.cur().Type == token.LET || p.cur().Type == token.CONST {
		declared = true
		p.advance()
	}
	if p.cur().Type != token.IDENT {
		p.pos = save
		return nil, false
	}

	var names []*ast.Identifier
	names = append(names, ident(p.advance()))
	if p.cur().Type == token.COMMA {
		p.advance()
		if p.cur().Type != token.IDENT {
			p.pos = save
			return nil, false
		}
		names = append(names, ident(p.advance()))
	}
	if p.cur().Type != token.IN {
		p.pos = save
		return nil, false
	}
	p.advance() // in

	fi := &ast.ForInStatement{Names: names, Declared: declared}
	fi.StartPos = kw.Start
	fi.Right = p.parseExpression(lowest)
	p.expect(token.RPAREN)
	fi.Body = p.parseStatement()
	fi.EndPos = p.prevEnd()
	return fi, true
}

func (p *Parser) parseTryStatement() ast.Statement {
	kw := p.advance()
	tsm := &ast.TryStatement{}
	tsm.StartPos = kw.Start
	tsm.Block = p.parseBlockStatement()

	if p.cur().Type == token.CATCH {
		p.advance()
		if p.cur().Type == token.LPAREN {
			p.advance()
			if tok, ok := p.expect(token.IDENT); ok {
				tsm.Param = ident(tok)
			}
			p.expect(token.RPAREN)
		}
		tsm.Handler = p.parseBlockStatement()
	} else {
		p.errorf(p.cur(), "expected catch clause after try block")
	}
	tsm.EndPos = p.prevEnd()
	return tsm
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	kw := p.advance()
	ss := &ast.SwitchStatement{}
	ss.StartPos = kw.Start

	p.expect(token.LPAREN)
	ss.Discriminant = p.parseExpression(lowest)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	for p.cur().Type == token.CASE || p.cur().Type == token.DEFAULT {
		c := &ast.SwitchCase{}
		c.StartPos = p.cur().Start
		if p.cur().Type == token.CASE {
			p.advance()
			c.Test = p.parseExpression(lowest)
		} else {
			p.advance()
		}
		p.expect(token.COLON)
		for p.cur().Type != token.CASE && p.cur().Type != token.DEFAULT &&
			p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
			before := p.pos
			if stmt := p.parseStatement(); stmt != nil {
				c.Body = append(c.Body, stmt)
			}
			if p.pos == before {
				p.advance()
			}
		}
		c.EndPos = p.prevEnd()
		ss.Cases = append(ss.Cases, c)
	}
	p.expect(token.RBRACE)
	ss.EndPos = p.prevEnd()
	return ss
}

func (p *Parser) parseImportDeclaration() ast.Statement {
	kw := p.advance()
	id := &ast.ImportDeclaration{}
	id.StartPos = kw.Start

	switch p.cur().Type {
	case token.LBRACE:
		p.advance()
		for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
			tok, ok := p.expect(token.IDENT)
			if !ok {
				break
			}
			spec := &ast.ImportSpecifier{Imported: ident(tok), Local: ident(tok)}
			spec.StartPos = tok.Start
			if p.cur().Type == token.AS {
				p.advance()
				if localTok, ok := p.expect(token.IDENT); ok {
					spec.Local = ident(localTok)
				}
			}
			spec.EndPos = p.prevEnd()
			id.Specifiers = append(id.Specifiers, spec)
			if p.cur().Type != token.COMMA {
				break
			}
			p.advance()
		}
		p.expect(token.RBRACE)
	case token.ASTERISK:
		star := p.advance()
		p.expect(token.AS)
		if tok, ok := p.expect(token.IDENT); ok {
			spec := &ast.ImportSpecifier{Local: ident(tok), Namespace: true}
			spec.StartPos = star.Start
			spec.EndPos = tok.End
			id.Specifiers = append(id.Specifiers, spec)
		}
	case token.IDENT:
		tok := p.advance()
		spec := &ast.ImportSpecifier{Local: ident(tok), Default: true}
		spec.StartPos = tok.Start
		spec.EndPos = tok.End
		id.Specifiers = append(id.Specifiers, spec)
	default:
		p.errorf(p.cur(), "expected import specifier, got %q", p.cur().Literal)
	}

	p.expect(token.FROM)
	if tok, ok := p.expect(token.STRING); ok {
		id.Source = tok.Literal
	}
	p.eatSemicolon()
	id.EndPos = p.prevEnd()
	return id
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(lowest)
	if expr == nil {
		return nil
	}
	p.eatSemicolon()
	return &ast.ExpressionStatement{
		Span:       ast.Span{StartPos: expr.Pos(), EndPos: p.prevEnd()},
		Expression: expr,
	}
}

func ident(tok token.Token) *ast.Identifier {
	return &ast.Identifier{
		Span: ast.Span{StartPos: tok.Start, EndPos: tok.End},
		Name: tok.Literal,
	}
}

// validRegexFlags are the flag characters the runtime accepts.
const validRegexFlags = "gis"

func (p *Parser) parseRegexLiteral(tok token.Token) ast.Expression {
	body := tok.Literal
	pattern, flags := body, ""
	if idx := strings.LastIndexByte(body, '/'); idx > 0 {
		pattern = body[1:idx]
		flags = body[idx+1:]
	}

	for _, f := range flags {
		if !strings.ContainsRune(validRegexFlags, f) {
			p.errorf(tok, "invalid regular expression flag %q", string(f))
		}
	}

	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if strings.ContainsRune(flags, 'i') {
		opts |= regexp2.IgnoreCase
	}
	if _, err := regexp2.Compile(pattern, opts); err != nil {
		p.errorf(tok, "invalid regular expression: %v", err)
	}

	return &ast.RegexLiteral{
		Span:    ast.Span{StartPos: tok.Start, EndPos: tok.End},
		Pattern: pattern,
		Flags:   flags,
	}
}

func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		prec, ok := precedences[p.cur().Type]
		if !ok || prec <= minPrec {
			return left
		}
		left = p.parseInfix(left)
		if left == nil {
			return nil
		}
	}
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.IDENT:
		p.advance()
		id := ident(tok)
		if p.cur().Type == token.ARROW {
			return p.parseArrowBody([]*ast.Identifier{id}, nil, tok.Start)
		}
		return id
	case token.INT:
		p.advance()
		v, _ := strconv.ParseInt(tok.Literal, 0, 64)
		return &ast.IntegerLiteral{Span: ast.Span{StartPos: tok.Start, EndPos: tok.End}, Value: v}
	case token.DOUBLE:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		return &ast.DoubleLiteral{Span: ast.Span{StartPos: tok.Start, EndPos: tok.End}, Value: v}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Span: ast.Span{StartPos: tok.Start, EndPos: tok.End}, Value: tok.Literal}
	case token.REGEX:
		p.advance()
		return p.parseRegexLiteral(tok)
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Span: ast.Span{StartPos: tok.Start, EndPos: tok.End}, Value: tok.Type == token.TRUE}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Span: ast.Span{StartPos: tok.Start, EndPos: tok.End}}
	case token.BANG, token.MINUS, token.PLUS, token.TILDE, token.DELETE:
		p.advance()
		arg := p.parseExpression(prefix)
		return &ast.UnaryExpression{
			Span:     ast.Span{StartPos: tok.Start, EndPos: p.prevEnd()},
			Operator: tok.Literal,
			Argument: arg,
		}
	case token.INC, token.DEC:
		p.advance()
		arg := p.parseExpression(prefix)
		return &ast.UnaryExpression{
			Span:     ast.Span{StartPos: tok.Start, EndPos: p.prevEnd()},
			Operator: tok.Literal,
			Argument: arg,
		}
	case token.LPAREN:
		return p.parseParenOrArrow()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.FUNCTION:
		return p.parseFunctionExpression()
	}
	p.errorf(tok, "unexpected token %q in expression", tok.Literal)
	return nil
}

// parseParenOrArrow disambiguates `(expr)` from `(params) => body` by
// scanning ahead for the matching close paren followed by an arrow.
func (p *Parser) parseParenOrArrow() ast.Expression {
	start := p.cur().Start
	if p.isArrowAhead() {
		params, rest := p.parseParams()
		return p.parseArrowBody(params, rest, start)
	}
	p.advance() // (
	expr := p.parseExpression(lowest)
	p.expect(token.RPAREN)
	return expr
}

func (p *Parser) isArrowAhead() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.toks) && p.toks[i+1].Type == token.ARROW
			}
		case token.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseArrowBody(params []*ast.Identifier, rest *ast.Identifier, start int) ast.Expression {
	p.expect(token.ARROW)
	af := &ast.ArrowFunctionExpression{Params: params, Rest: rest}
	af.StartPos = start
	if p.cur().Type == token.LBRACE {
		af.Body = p.parseBlockStatement()
	} else {
		af.Expr = p.parseExpression(lowest)
	}
	af.EndPos = p.prevEnd()
	return af
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	kw := p.advance()
	fe := &ast.FunctionExpression{}
	fe.StartPos = kw.Start
	if p.cur().Type == token.IDENT {
		fe.Name = ident(p.advance())
	}
	fe.Params, fe.Rest = p.parseParams()
	fe.Body = p.parseBlockStatement()
	fe.EndPos = p.prevEnd()
	return fe
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lb := p.advance()
	arr := &ast.ArrayExpression{}
	arr.StartPos = lb.Start

	for p.cur().Type != token.RBRACKET && p.cur().Type != token.EOF {
		if el := p.parseExpression(lowest); el != nil {
			arr.Elements = append(arr.Elements, el)
		} else {
			break
		}
		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.RBRACKET)
	arr.EndPos = p.prevEnd()
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	lb := p.advance()
	obj := &ast.ObjectExpression{}
	obj.StartPos = lb.Start

	for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
		prop := &ast.Property{}
		prop.StartPos = p.cur().Start

		switch p.cur().Type {
		case token.IDENT, token.STRING:
			tok := p.advance()
			if tok.Type == token.IDENT {
				prop.Key = ident(tok)
			} else {
				prop.Key = &ast.StringLiteral{Span: ast.Span{StartPos: tok.Start, EndPos: tok.End}, Value: tok.Literal}
			}
			if p.cur().Type == token.COLON {
				p.advance()
				prop.Value = p.parseExpression(lowest)
			} else if tok.Type == token.IDENT {
				// shorthand { name }
				prop.Value = ident(tok)
			} else {
				p.expect(token.COLON)
			}
		case token.LBRACKET:
			p.advance()
			prop.Computed = true
			prop.Key = p.parseExpression(lowest)
			p.expect(token.RBRACKET)
			p.expect(token.COLON)
			prop.Value = p.parseExpression(lowest)
		default:
			p.errorf(p.cur(), "expected property name, got %q", p.cur().Literal)
			p.advance()
			continue
		}
		prop.EndPos = p.prevEnd()
		obj.Properties = append(obj.Properties, prop)

		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.RBRACE)
	obj.EndPos = p.prevEnd()
	return obj
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.MOD_ASSIGN:
		p.advance()
		if !isAssignTarget(left) {
			p.errorf(tok, "invalid assignment target")
		}
		right := p.parseExpression(assignPrec - 1)
		return &ast.AssignmentExpression{
			Span:     ast.Span{StartPos: left.Pos(), EndPos: p.prevEnd()},
			Operator: tok.Literal,
			Left:     left,
			Right:    right,
		}
	case token.QUESTION:
		p.advance()
		cons := p.parseExpression(lowest)
		p.expect(token.COLON)
		alt := p.parseExpression(lowest)
		return &ast.ConditionalExpression{
			Span:       ast.Span{StartPos: left.Pos(), EndPos: p.prevEnd()},
			Test:       left,
			Consequent: cons,
			Alternate:  alt,
		}
	case token.LPAREN:
		return p.parseCall(left, false)
	case token.LBRACKET:
		p.advance()
		prop := p.parseExpression(lowest)
		p.expect(token.RBRACKET)
		return &ast.MemberExpression{
			Span:     ast.Span{StartPos: left.Pos(), EndPos: p.prevEnd()},
			Object:   left,
			Property: prop,
			Computed: true,
		}
	case token.DOT, token.OPTCHAIN:
		p.advance()
		optional := tok.Type == token.OPTCHAIN
		if optional && p.cur().Type == token.LPAREN {
			return p.parseCall(left, true)
		}
		nameTok, ok := p.expect(token.IDENT)
		if !ok {
			return left
		}
		return &ast.MemberExpression{
			Span:     ast.Span{StartPos: left.Pos(), EndPos: nameTok.End},
			Object:   left,
			Property: ident(nameTok),
			Optional: optional,
		}
	case token.INC, token.DEC:
		p.advance()
		return &ast.UnaryExpression{
			Span:     ast.Span{StartPos: left.Pos(), EndPos: tok.End},
			Operator: tok.Literal,
			Argument: left,
			Postfix:  true,
		}
	}

	// Plain binary operator.
	prec := precedences[tok.Type]
	p.advance()
	op := tok.Literal
	if tok.Type == token.IN {
		op = "in"
	}
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{
		Span:     ast.Span{StartPos: left.Pos(), EndPos: p.prevEnd()},
		Operator: op,
		Left:     left,
		Right:    right,
	}
}

func (p *Parser) parseCall(callee ast.Expression, optional bool) ast.Expression {
	p.advance() // (
	call := &ast.CallExpression{Callee: callee, Optional: optional}
	call.StartPos = callee.Pos()

	for p.cur().Type != token.RPAREN && p.cur().Type != token.EOF {
		if arg := p.parseExpression(lowest); arg != nil {
			call.Arguments = append(call.Arguments, arg)
		} else {
			break
		}
		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	call.EndPos = p.prevEnd()
	return call
}

func isAssignTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return true
	}
	return false
}
