// Package exprparse implements the L2 expression front end from spec.md
// §4.2: a recursive-descent parser with precedence
// primary -> multiplicative -> additive -> relational -> equality, and a
// stateless evaluator over the resulting AST.
//
// The parser is instantiable: each Parser is bound to one input string and
// one log sink at construction, exactly as spec.md requires.
package exprparse

import (
	"strconv"

	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/lexer"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// Parser parses a single expression out of a fixed input string.
type Parser struct {
	l      *lexer.Lexer
	log    *rerrors.Log
	source string
	cur    token.Token
	peek   token.Token
}

// New binds a fresh Parser to src, reporting any errors to log.
func New(src string, log *rerrors.Log) *Parser {
	p := &Parser{l: lexer.New(src), log: log, source: src}
	p.cur = p.l.NextToken()
	p.peek = p.l.NextToken()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.log.Report(rerrors.ParseError, pos, p.source, format, args...)
}

// ParseExpression is the whole-expression entry point. It rejects trailing
// non-whitespace: any token left over after a complete expression is a
// parse error and nil is returned.
func (p *Parser) ParseExpression() ast.Expr {
	expr := p.parseEquality()
	if p.cur.Type != token.EOF {
		p.errorf(p.cur.Pos, "unexpected trailing input %q", p.cur.Literal)
		return nil
	}
	return expr
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.cur.Type == token.EQ || p.cur.Type == token.NOT_EQ {
		opTok := p.cur
		op := ast.OpEq
		if opTok.Type == token.NOT_EQ {
			op = ast.OpNeq
		}
		p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for isRelational(p.cur.Type) {
		opTok := p.cur
		op := relationalOp(opTok.Type)
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Op: op, Right: right}
	}
	return left
}

func isRelational(t token.Type) bool {
	return t == token.LT || t == token.LT_EQ || t == token.GT || t == token.GT_EQ
}

func relationalOp(t token.Type) ast.BinOp {
	switch t {
	case token.LT:
		return ast.OpLt
	case token.LT_EQ:
		return ast.OpLte
	case token.GT:
		return ast.OpGt
	default:
		return ast.OpGte
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		opTok := p.cur
		op := ast.OpAdd
		if opTok.Type == token.MINUS {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parsePrimary()
	for p.cur.Type == token.ASTERISK || p.cur.Type == token.SLASH {
		opTok := p.cur
		op := ast.OpMul
		if opTok.Type == token.SLASH {
			op = ast.OpDiv
		}
		p.advance()
		right := p.parsePrimary()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Op: op, Right: right}
	}
	return left
}

// parsePrimary handles literal | memory access | '(' expr ')'. A MINUS
// directly followed by a numeric literal is folded into a signed literal
// here rather than treated as a unary operator, per spec.md §4.2: "a
// literal beginning with '-' followed by digits is a signed number; signs
// are not treated as operators."
func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Type {
	case token.MINUS:
		signTok := p.cur
		if p.peek.Type != token.INT && p.peek.Type != token.FLOAT {
			p.errorf(signTok.Pos, "expected a number after '-', found %q", p.peek.Literal)
			return nil
		}
		numTok := p.peek
		p.advance() // consume '-'
		lit := p.parseNumberLiteral(numTok, true)
		p.advance() // consume the number
		return lit

	case token.INT, token.FLOAT:
		tok := p.cur
		lit := p.parseNumberLiteral(tok, false)
		p.advance()
		return lit

	case token.STRING:
		tok := p.cur
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}

	case token.IDENT:
		return p.parseMemoryAccess()

	case token.LPAREN:
		p.advance()
		inner := p.parseEquality()
		if p.cur.Type != token.RPAREN {
			p.errorf(p.cur.Pos, "expected ')', found %q", p.cur.Literal)
			return inner
		}
		p.advance()
		return inner

	default:
		p.errorf(p.cur.Pos, "unexpected token %q", p.cur.Literal)
		p.advance()
		return nil
	}
}

func (p *Parser) parseNumberLiteral(tok token.Token, negative bool) ast.Expr {
	if tok.Type == token.FLOAT {
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf(tok.Pos, "invalid float literal %q", tok.Literal)
			return nil
		}
		if negative {
			f = -f
		}
		return &ast.DoubleLiteral{Token: tok, Value: f}
	}
	i, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf(tok.Pos, "invalid integer literal %q", tok.Literal)
		return nil
	}
	if negative {
		i = -i
	}
	return &ast.IntLiteral{Token: tok, Value: i}
}

func (p *Parser) parseMemoryAccess() ast.Expr {
	tok := p.cur
	var base ast.Base
	switch tok.Literal {
	case token.KeywordMemory:
		base = ast.BaseMemory
	case token.KeywordMessage:
		base = ast.BaseMessage
	case token.KeywordContext:
		base = ast.BaseContext
	default:
		p.errorf(tok.Pos, "unknown identifier %q (expected memory, message, or context)", tok.Literal)
		p.advance()
		return nil
	}
	p.advance()

	var path []string
	for p.cur.Type == token.DOT {
		p.advance()
		if p.cur.Type != token.IDENT {
			p.errorf(p.cur.Pos, "expected identifier after '.', found %q", p.cur.Literal)
			break
		}
		path = append(path, p.cur.Literal)
		p.advance()
	}
	return &ast.MemoryAccess{Token: tok, Base: base, Path: path}
}
