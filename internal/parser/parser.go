// Package parser builds the AST from a token stream. Expressions combine
// recursive descent with precedence climbing for the binary operators;
// juxtaposition is application and binds tighter than any operator.
package parser

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/lexer"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

type Parser struct {
	tokens []lexer.Token
	pos    int
}

func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes and parses one module into a wrapper of declarations. The
// System namespace is in scope implicitly.
func Parse(source, name string) (out ast.Node, err error) {
	defer diag.Recover(&err)
	tokens, err := lexer.Tokenize(source, name)
	if err != nil {
		return nil, err
	}
	p := New(tokens)
	return p.module(), nil
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAhead(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if t.Type != lexer.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) check(t lexer.Type) bool {
	return p.peek().Type == t
}

func (p *Parser) match(t lexer.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func position(t lexer.Token) ast.Position {
	return ast.Position{Source: t.Source, Line: t.Line, Col: t.Col}
}

func (p *Parser) fail(t lexer.Token, format string, args ...interface{}) {
	diag.Panic(diag.SyntacticalError(position(t).Diag(), format, args...))
}

func (p *Parser) expect(t lexer.Type) lexer.Token {
	if !p.check(t) {
		p.fail(p.peek(), "expected %s, found %s", t, p.peek())
	}
	return p.advance()
}

// --- declarations ---

func (p *Parser) module() ast.Node {
	start := p.peek()
	decls := []ast.Node{ast.NewUsing(position(start), vm.SystemPath)}
	for !p.check(lexer.EOF) {
		decls = append(decls, p.declaration())
	}
	return ast.NewWrapper(position(start), decls)
}

func (p *Parser) declaration() ast.Node {
	t := p.peek()
	switch t.Type {
	case lexer.KwNamespace:
		return p.namespaceDecl()
	case lexer.KwImport:
		p.advance()
		f := p.expect(lexer.Text)
		return ast.NewImport(position(t), f.Lexeme)
	case lexer.KwUsing:
		p.advance()
		return ast.NewUsing(position(t), p.path())
	case lexer.KwDef:
		return p.definition()
	case lexer.KwVal:
		p.advance()
		name := p.expect(lexer.Ident)
		p.expect(lexer.Equals)
		body := p.expression()
		c := ast.NewCombinator(position(name), nil, name.Lexeme)
		return ast.NewValueDecl(position(t), c, body)
	case lexer.KwData:
		return p.dataDecl()
	case lexer.KwObject:
		return p.objectDecl()
	default:
		p.fail(t, "expected a declaration, found %s", t)
		return nil
	}
}

func (p *Parser) path() []string {
	var segments []string
	segments = append(segments, p.expect(lexer.Ident).Lexeme)
	for p.match(lexer.DColon) {
		segments = append(segments, p.expect(lexer.Ident).Lexeme)
	}
	return segments
}

func (p *Parser) namespaceDecl() ast.Node {
	t := p.expect(lexer.KwNamespace)
	path := p.path()
	p.expect(lexer.LParen)
	var decls []ast.Node
	for !p.check(lexer.RParen) && !p.check(lexer.EOF) {
		decls = append(decls, p.declaration())
	}
	p.expect(lexer.RParen)
	return ast.NewNamespaceDecl(position(t), path, decls)
}

func (p *Parser) definition() ast.Node {
	t := p.expect(lexer.KwDef)
	if p.check(lexer.Operator) {
		op := p.advance()
		c := ast.NewOperator(position(op), nil, op.Lexeme)
		p.expect(lexer.Equals)
		return ast.NewOperatorDecl(position(t), c, p.expression())
	}
	name := p.expect(lexer.Ident)
	c := ast.NewCombinator(position(name), nil, name.Lexeme)
	p.expect(lexer.Equals)
	return ast.NewDefinition(position(t), c, p.expression())
}

func (p *Parser) dataDecl() ast.Node {
	t := p.expect(lexer.KwData)
	var cc []ast.Node
	name := p.expect(lexer.Ident)
	cc = append(cc, ast.NewCombinator(position(name), nil, name.Lexeme))
	for p.match(lexer.Comma) {
		name = p.expect(lexer.Ident)
		cc = append(cc, ast.NewCombinator(position(name), nil, name.Lexeme))
	}
	return ast.NewDataDecl(position(t), cc)
}

// objectDecl parses
//
//	object C v.. extends e, .. with ( fields )
//
// where a field is `def n = e` or `data n = e`.
func (p *Parser) objectDecl() ast.Node {
	t := p.expect(lexer.KwObject)
	name := p.expect(lexer.Ident)
	c := ast.NewCombinator(position(name), nil, name.Lexeme)

	var vars []ast.Node
	for p.check(lexer.Ident) {
		v := p.advance()
		vars = append(vars, ast.NewVariable(position(v), v.Lexeme))
	}

	var extends []ast.Node
	if p.match(lexer.KwExtends) {
		extends = append(extends, p.expression())
		for p.match(lexer.Comma) {
			extends = append(extends, p.expression())
		}
	}

	p.expect(lexer.KwWith)
	p.expect(lexer.LParen)
	var fields []ast.Node
	for !p.check(lexer.RParen) && !p.check(lexer.EOF) {
		fields = append(fields, p.objectField())
	}
	p.expect(lexer.RParen)

	return ast.NewObjectDecl(position(t), c, vars, fields, extends)
}

func (p *Parser) objectField() ast.Node {
	t := p.peek()
	switch t.Type {
	case lexer.KwDef:
		p.advance()
		name := p.expect(lexer.Ident)
		c := ast.NewCombinator(position(name), nil, name.Lexeme)
		p.expect(lexer.Equals)
		return ast.NewDefinition(position(t), c, p.expression())
	case lexer.KwData:
		p.advance()
		name := p.expect(lexer.Ident)
		c := ast.NewCombinator(position(name), nil, name.Lexeme)
		p.expect(lexer.Equals)
		e := p.expression()
		return ast.NewDataDecl(position(t), []ast.Node{c, e})
	default:
		p.fail(t, "expected an object field, found %s", t)
		return nil
	}
}

// --- expressions ---

// binding strength of the binary operators; application binds tighter
var precedences = map[string]int{
	"|>": 1,
	"||": 2,
	"&&": 3,
	"==": 4, "/=": 4,
	"<": 5, "<=": 5, ">": 5, ">=": 5,
	"+": 6, "-": 6,
	"*": 7, "/": 7, "%": 7,
}

// expression parses with statement sequencing as the loosest binder.
func (p *Parser) expression() ast.Node {
	t := p.peek()
	e := p.binary(1)
	if p.match(lexer.Semicolon) {
		rest := p.expression()
		return ast.NewStatement(position(t), e, rest)
	}
	return e
}

func (p *Parser) binary(minPrec int) ast.Node {
	left := p.application()
	for p.check(lexer.Operator) {
		op := p.peek()
		prec, ok := precedences[op.Lexeme]
		if !ok || prec < minPrec {
			break
		}
		p.advance()
		right := p.binary(prec + 1)
		opNode := ast.NewOperator(position(op), nil, op.Lexeme)
		left = ast.NewApplication(position(op), opNode, left, right)
	}
	return left
}

func (p *Parser) startsPrimary() bool {
	switch p.peek().Type {
	case lexer.Integer, lexer.HexInteger, lexer.Float, lexer.Character,
		lexer.Text, lexer.Ident, lexer.LParen, lexer.LBrace, lexer.LBracket,
		lexer.Backslash, lexer.KwIf, lexer.KwLet, lexer.KwTry, lexer.KwThrow,
		lexer.KwDo:
		return true
	default:
		return false
	}
}

func (p *Parser) application() ast.Node {
	t := p.peek()
	first := p.primary()
	var terms []ast.Node
	terms = append(terms, first)
	for p.startsPrimary() {
		terms = append(terms, p.primary())
	}
	if len(terms) == 1 {
		return first
	}
	return ast.NewApplication(position(t), terms...)
}

// name parses a possibly qualified identifier; unqualified identifiers
// stay variables until identification decides what they are.
func (p *Parser) name() ast.Node {
	t := p.expect(lexer.Ident)
	if t.Lexeme == "_" {
		return ast.NewWildcard(position(t), "_")
	}
	if !p.check(lexer.DColon) {
		return ast.NewVariable(position(t), t.Lexeme)
	}
	segments := []string{t.Lexeme}
	for p.match(lexer.DColon) {
		segments = append(segments, p.expect(lexer.Ident).Lexeme)
	}
	path := segments[:len(segments)-1]
	return ast.NewCombinator(position(t), path, segments[len(segments)-1])
}

func (p *Parser) primary() ast.Node {
	t := p.peek()
	switch t.Type {
	case lexer.Integer:
		p.advance()
		return ast.NewInteger(position(t), t.Lexeme)
	case lexer.HexInteger:
		p.advance()
		return ast.NewHexInteger(position(t), t.Lexeme)
	case lexer.Float:
		p.advance()
		return ast.NewFloat(position(t), t.Lexeme)
	case lexer.Character:
		p.advance()
		return ast.NewCharacter(position(t), t.Lexeme)
	case lexer.Text:
		p.advance()
		return ast.NewText(position(t), t.Lexeme)
	case lexer.Ident:
		return p.name()
	case lexer.Operator:
		// prefix minus; other operators cannot start a primary
		if t.Lexeme == "-" {
			p.advance()
			op := ast.NewOperator(position(t), nil, vm.SymbolMonMin)
			return ast.NewApplication(position(t), op, p.primary())
		}
		p.fail(t, "unexpected %s", t)
		return nil
	case lexer.LParen:
		return p.parenExpression()
	case lexer.LBrace:
		return p.list(p.expressionElement)
	case lexer.LBracket:
		return p.block()
	case lexer.Backslash:
		p.advance()
		m := p.matchClause(lexer.Arrow)
		return ast.NewLambda(position(t), m)
	case lexer.KwIf:
		p.advance()
		cond := p.expression()
		p.expect(lexer.KwThen)
		then := p.expression()
		p.expect(lexer.KwElse)
		els := p.expression()
		return ast.NewIf(position(t), cond, then, els)
	case lexer.KwLet:
		p.advance()
		var patterns []ast.Node
		patterns = append(patterns, p.pattern())
		for !p.check(lexer.Equals) {
			patterns = append(patterns, p.pattern())
		}
		p.expect(lexer.Equals)
		rhs := p.expression()
		p.expect(lexer.KwIn)
		body := p.expression()
		return ast.NewLet(position(t), patterns, rhs, body)
	case lexer.KwTry:
		p.advance()
		body := p.expression()
		p.expect(lexer.KwCatch)
		handler := p.expression()
		return ast.NewTry(position(t), body, handler)
	case lexer.KwThrow:
		p.advance()
		return ast.NewThrow(position(t), p.expression())
	case lexer.KwDo:
		p.advance()
		return ast.NewDo(position(t), p.expression())
	default:
		p.fail(t, "expected an expression, found %s", t)
		return nil
	}
}

// parenExpression parses grouping, a tuple, or an operator section like
// (+).
func (p *Parser) parenExpression() ast.Node {
	t := p.expect(lexer.LParen)
	if p.check(lexer.Operator) && p.peekAhead(1).Type == lexer.RParen {
		op := p.advance()
		p.advance()
		return ast.NewOperator(position(op), nil, op.Lexeme)
	}
	e := p.expression()
	if !p.check(lexer.Comma) {
		p.expect(lexer.RParen)
		return e
	}
	elements := []ast.Node{e}
	for p.match(lexer.Comma) {
		elements = append(elements, p.expression())
	}
	p.expect(lexer.RParen)
	return ast.NewTuple(position(t), elements)
}

func (p *Parser) expressionElement() ast.Node {
	return p.expression()
}

// list parses `{e, .. | tail}` with element parsing shared between
// expression and pattern position.
func (p *Parser) list(element func() ast.Node) ast.Node {
	t := p.expect(lexer.LBrace)
	var elements []ast.Node
	var tail ast.Node
	if !p.check(lexer.RBrace) {
		elements = append(elements, element())
		for p.match(lexer.Comma) {
			elements = append(elements, element())
		}
		if p.match(lexer.Bar) {
			tail = element()
		}
	}
	p.expect(lexer.RBrace)
	return ast.NewList(position(t), elements, tail)
}

func (p *Parser) block() ast.Node {
	t := p.expect(lexer.LBracket)
	var matches []ast.Node
	matches = append(matches, p.matchClause(lexer.Arrow))
	for p.match(lexer.Bar) {
		matches = append(matches, p.matchClause(lexer.Arrow))
	}
	p.expect(lexer.RBracket)
	return ast.NewBlock(position(t), matches...)
}

// matchClause parses `p0 .. pn [? guard] -> e`.
func (p *Parser) matchClause(arrow lexer.Type) ast.Node {
	t := p.peek()
	var patterns []ast.Node
	for !p.check(arrow) && !p.check(lexer.Question) {
		patterns = append(patterns, p.pattern())
	}
	var guard ast.Node = ast.NewEmpty()
	if p.match(lexer.Question) {
		guard = p.expression()
	}
	p.expect(arrow)
	result := p.expression()
	return ast.NewMatch(position(t), patterns, guard, result)
}

// --- patterns ---

func (p *Parser) pattern() ast.Node {
	pat := p.patternPrimary()
	if p.match(lexer.Colon) {
		tagger := p.name()
		return ast.NewTagged(pat.Pos(), pat, tagger)
	}
	return pat
}

func (p *Parser) patternPrimary() ast.Node {
	t := p.peek()
	switch t.Type {
	case lexer.Integer:
		p.advance()
		return ast.NewInteger(position(t), t.Lexeme)
	case lexer.HexInteger:
		p.advance()
		return ast.NewHexInteger(position(t), t.Lexeme)
	case lexer.Float:
		p.advance()
		return ast.NewFloat(position(t), t.Lexeme)
	case lexer.Character:
		p.advance()
		return ast.NewCharacter(position(t), t.Lexeme)
	case lexer.Text:
		p.advance()
		return ast.NewText(position(t), t.Lexeme)
	case lexer.Operator:
		if t.Lexeme == "-" && p.peekAhead(1).Type == lexer.Integer {
			p.advance()
			i := p.advance()
			return ast.NewInteger(position(t), "-"+i.Lexeme)
		}
		p.fail(t, "unexpected %s in pattern", t)
		return nil
	case lexer.Ident:
		return p.name()
	case lexer.LBrace:
		return p.list(p.pattern)
	case lexer.LParen:
		return p.parenPattern()
	default:
		p.fail(t, "expected a pattern, found %s", t)
		return nil
	}
}

// parenPattern parses a grouped pattern, a tuple pattern, or an
// application pattern like (cons x xs).
func (p *Parser) parenPattern() ast.Node {
	t := p.expect(lexer.LParen)
	first := p.pattern()
	if p.check(lexer.Comma) {
		elements := []ast.Node{first}
		for p.match(lexer.Comma) {
			elements = append(elements, p.pattern())
		}
		p.expect(lexer.RParen)
		return ast.NewTuple(position(t), elements)
	}
	terms := []ast.Node{first}
	for !p.check(lexer.RParen) && !p.check(lexer.EOF) {
		terms = append(terms, p.pattern())
	}
	p.expect(lexer.RParen)
	if len(terms) == 1 {
		return first
	}
	return ast.NewApplication(position(t), terms...)
}
