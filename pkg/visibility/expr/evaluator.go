package expr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-sheetform/pkg/visibility"
)

// Evaluator interprets the expression dialect emitted for validators and
// visibility rules.
//
// Supported forms:
//   - references: `${field3}`
//   - literals: numbers, 'quoted strings', [list, of, literals]
//   - members: `.length`, `.includes(x)`, `.match(/re/)`,
//     `.some(item => [..].includes(item))`
//   - comparisons: `>=`, `>`, `<=`, `<`, `===`, `!==`, `==`, `!=`
//   - composition: `!`, `&&`, `||`, parentheses
//
// `&&` and `||` yield one of their operands, as in the form runtime. The
// final value is reduced to a boolean by truthiness. References are read from
// visibility.Context.Values, falling back to Extras.
type Evaluator struct {
	mu      sync.Mutex
	regexps map[string]*regexp.Regexp
}

func New() *Evaluator { return &Evaluator{regexps: make(map[string]*regexp.Regexp)} }

var _ visibility.Evaluator = (*Evaluator)(nil)

func (e *Evaluator) Eval(fieldPath, rule string, ctx visibility.Context) (bool, error) {
	_ = fieldPath
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return false, err
	}
	node, err := parseExpression(tokens)
	if err != nil {
		return false, err
	}
	value, err := node.eval(&scope{ctx: ctx, evaluator: e})
	if err != nil {
		return false, err
	}
	return truthy(value), nil
}

func (e *Evaluator) compile(pattern string) (*regexp.Regexp, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if re, ok := e.regexps[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("visibility/expr: invalid pattern /%s/: %w", pattern, err)
	}
	if e.regexps == nil {
		e.regexps = make(map[string]*regexp.Regexp)
	}
	e.regexps[pattern] = re
	return re, nil
}

type tokenKind int

const (
	tokenReference tokenKind = iota
	tokenIdentifier
	tokenString
	tokenNumber
	tokenRegexp
	tokenCompare
	tokenAnd
	tokenOr
	tokenNot
	tokenArrow
	tokenDot
	tokenComma
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	peek := func(offset int) byte {
		if i+offset >= len(input) {
			return 0
		}
		return input[i+offset]
	}

	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '$' && peek(1) == '{':
			end := strings.IndexByte(input[i:], '}')
			if end < 0 {
				return nil, errors.New("visibility/expr: unterminated reference")
			}
			name := strings.TrimSpace(input[i+2 : i+end])
			if name == "" {
				return nil, errors.New("visibility/expr: empty reference")
			}
			tokens = append(tokens, token{kind: tokenReference, raw: name})
			i += end + 1
		case ch == '(' || ch == ')' || ch == '[' || ch == ']' || ch == ',' || ch == '.':
			kinds := map[byte]tokenKind{
				'(': tokenLParen, ')': tokenRParen, '[': tokenLBracket,
				']': tokenRBracket, ',': tokenComma, '.': tokenDot,
			}
			tokens = append(tokens, token{kind: kinds[ch], raw: string(ch)})
			i++
		case ch == '&' || ch == '|':
			if peek(1) != ch {
				return nil, fmt.Errorf("visibility/expr: unexpected %q; use %q", ch, string([]byte{ch, ch}))
			}
			kind := tokenAnd
			if ch == '|' {
				kind = tokenOr
			}
			tokens = append(tokens, token{kind: kind, raw: input[i : i+2]})
			i += 2
		case ch == '!' || ch == '=' || ch == '<' || ch == '>':
			op := operatorAt(input[i:])
			switch op {
			case "":
				return nil, fmt.Errorf("visibility/expr: unexpected %q", ch)
			case "!":
				tokens = append(tokens, token{kind: tokenNot, raw: op})
			case "=>":
				tokens = append(tokens, token{kind: tokenArrow, raw: op})
			default:
				tokens = append(tokens, token{kind: tokenCompare, raw: op})
			}
			i += len(op)
		case ch == '\'' || ch == '"':
			end := strings.IndexByte(input[i+1:], ch)
			if end < 0 {
				return nil, errors.New("visibility/expr: unterminated string literal")
			}
			tokens = append(tokens, token{kind: tokenString, raw: input[i+1 : i+1+end]})
			i += end + 2
		case ch == '/':
			end := strings.IndexByte(input[i+1:], '/')
			if end < 0 {
				return nil, errors.New("visibility/expr: unterminated pattern")
			}
			tokens = append(tokens, token{kind: tokenRegexp, raw: input[i+1 : i+1+end]})
			i += end + 2
		case ch >= '0' && ch <= '9':
			start := i
			for i < len(input) && (input[i] >= '0' && input[i] <= '9' || input[i] == '.' && peek(1) >= '0' && peek(1) <= '9') {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, raw: input[start:i]})
		case isIdentStart(ch):
			start := i
			for i < len(input) && (isIdentStart(input[i]) || input[i] >= '0' && input[i] <= '9') {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdentifier, raw: input[start:i]})
		default:
			return nil, fmt.Errorf("visibility/expr: unexpected character %q", ch)
		}
	}
	return tokens, nil
}

func operatorAt(s string) string {
	for _, op := range []string{"===", "!==", "==", "!=", ">=", "<=", "=>", ">", "<", "!"} {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

type scope struct {
	ctx       visibility.Context
	evaluator *Evaluator
	item      any
	hasItem   bool
}

type exprNode interface {
	eval(s *scope) (any, error)
}

type exprOr struct{ left, right exprNode }

func (n exprOr) eval(s *scope) (any, error) {
	left, err := n.left.eval(s)
	if err != nil || truthy(left) {
		return left, err
	}
	return n.right.eval(s)
}

type exprAnd struct{ left, right exprNode }

func (n exprAnd) eval(s *scope) (any, error) {
	left, err := n.left.eval(s)
	if err != nil || !truthy(left) {
		return left, err
	}
	return n.right.eval(s)
}

type exprNot struct{ inner exprNode }

func (n exprNot) eval(s *scope) (any, error) {
	value, err := n.inner.eval(s)
	if err != nil {
		return nil, err
	}
	return !truthy(value), nil
}

type exprCompare struct {
	op          string
	left, right exprNode
}

func (n exprCompare) eval(s *scope) (any, error) {
	left, err := n.left.eval(s)
	if err != nil {
		return nil, err
	}
	right, err := n.right.eval(s)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case "===", "==":
		return equal(left, right), nil
	case "!==", "!=":
		return !equal(left, right), nil
	}

	l, lok := coerceNumber(left)
	r, rok := coerceNumber(right)
	if !lok || !rok {
		return false, nil
	}
	switch n.op {
	case ">=":
		return l >= r, nil
	case ">":
		return l > r, nil
	case "<=":
		return l <= r, nil
	default:
		return l < r, nil
	}
}

type exprReference struct{ name string }

func (n exprReference) eval(s *scope) (any, error) {
	value, _ := lookup(s.ctx, n.name)
	return value, nil
}

type exprItem struct{}

func (exprItem) eval(s *scope) (any, error) {
	if !s.hasItem {
		return nil, errors.New("visibility/expr: item used outside of a callback")
	}
	return s.item, nil
}

type exprLiteral struct{ value any }

func (n exprLiteral) eval(*scope) (any, error) { return n.value, nil }

type exprList struct{ items []exprNode }

func (n exprList) eval(s *scope) (any, error) {
	out := make([]any, 0, len(n.items))
	for _, item := range n.items {
		value, err := item.eval(s)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}

type exprLength struct{ target exprNode }

func (n exprLength) eval(s *scope) (any, error) {
	value, err := n.target.eval(s)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case string:
		return float64(utf8.RuneCountInString(v)), nil
	case nil:
		return nil, nil
	default:
		if items, ok := asList(v); ok {
			return float64(len(items)), nil
		}
		return nil, nil
	}
}

type exprIncludes struct{ target, needle exprNode }

func (n exprIncludes) eval(s *scope) (any, error) {
	target, err := n.target.eval(s)
	if err != nil {
		return nil, err
	}
	needle, err := n.needle.eval(s)
	if err != nil {
		return nil, err
	}
	if str, ok := target.(string); ok {
		return strings.Contains(str, coerceString(needle)), nil
	}
	items, _ := asList(target)
	for _, item := range items {
		if equal(item, needle) {
			return true, nil
		}
	}
	return false, nil
}

type exprMatch struct {
	target  exprNode
	pattern string
}

func (n exprMatch) eval(s *scope) (any, error) {
	target, err := n.target.eval(s)
	if err != nil {
		return nil, err
	}
	re, err := s.evaluator.compile(n.pattern)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return false, nil
	}
	return re.MatchString(coerceString(target)), nil
}

type exprSome struct {
	target exprNode
	body   exprNode
}

func (n exprSome) eval(s *scope) (any, error) {
	target, err := n.target.eval(s)
	if err != nil {
		return nil, err
	}
	items, _ := asList(target)
	for _, item := range items {
		inner := &scope{ctx: s.ctx, evaluator: s.evaluator, item: item, hasItem: true}
		value, err := n.body.eval(inner)
		if err != nil {
			return nil, err
		}
		if truthy(value) {
			return true, nil
		}
	}
	return false, nil
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseExpression(tokens []token) (exprNode, error) {
	if len(tokens) == 0 {
		return nil, errors.New("visibility/expr: empty expression")
	}
	stream := &tokenStream{tokens: tokens}
	node, err := parseOr(stream, false)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return node, nil
}

func parseOr(stream *tokenStream, inCallback bool) (exprNode, error) {
	left, err := parseAnd(stream, inCallback)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream, inCallback)
		if err != nil {
			return nil, err
		}
		left = exprOr{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream, inCallback bool) (exprNode, error) {
	left, err := parseUnary(stream, inCallback)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream, inCallback)
		if err != nil {
			return nil, err
		}
		left = exprAnd{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream, inCallback bool) (exprNode, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream, inCallback)
		if err != nil {
			return nil, err
		}
		return exprNot{inner: inner}, nil
	}
	return parseComparison(stream, inCallback)
}

func parseComparison(stream *tokenStream, inCallback bool) (exprNode, error) {
	left, err := parsePostfix(stream, inCallback)
	if err != nil {
		return nil, err
	}
	if op, ok := stream.consume(tokenCompare); ok {
		right, err := parsePostfix(stream, inCallback)
		if err != nil {
			return nil, err
		}
		return exprCompare{op: op.raw, left: left, right: right}, nil
	}
	return left, nil
}

func parsePostfix(stream *tokenStream, inCallback bool) (exprNode, error) {
	node, err := parsePrimary(stream, inCallback)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenDot) {
		member, ok := stream.consume(tokenIdentifier)
		if !ok {
			return nil, errors.New("visibility/expr: expected member name after '.'")
		}
		switch member.raw {
		case "length":
			node = exprLength{target: node}
		case "includes":
			arg, err := parseCall(stream, func() (exprNode, error) { return parseOr(stream, inCallback) })
			if err != nil {
				return nil, err
			}
			node = exprIncludes{target: node, needle: arg}
		case "match":
			var pattern string
			_, err := parseCall(stream, func() (exprNode, error) {
				tok, ok := stream.consume(tokenRegexp)
				if !ok {
					return nil, errors.New("visibility/expr: match expects a /pattern/")
				}
				pattern = tok.raw
				return nil, nil
			})
			if err != nil {
				return nil, err
			}
			node = exprMatch{target: node, pattern: pattern}
		case "some":
			body, err := parseCall(stream, func() (exprNode, error) { return parseCallback(stream) })
			if err != nil {
				return nil, err
			}
			node = exprSome{target: node, body: body}
		default:
			return nil, fmt.Errorf("visibility/expr: unsupported member %q", member.raw)
		}
	}
	return node, nil
}

func parseCall(stream *tokenStream, arg func() (exprNode, error)) (exprNode, error) {
	if !stream.match(tokenLParen) {
		return nil, errors.New("visibility/expr: expected '('")
	}
	node, err := arg()
	if err != nil {
		return nil, err
	}
	if !stream.match(tokenRParen) {
		return nil, errors.New("visibility/expr: missing closing ')'")
	}
	return node, nil
}

// parseCallback reads `item => body`. Only the name item is bound.
func parseCallback(stream *tokenStream) (exprNode, error) {
	param, ok := stream.consume(tokenIdentifier)
	if !ok || param.raw != "item" {
		return nil, errors.New("visibility/expr: callbacks must take a single item parameter")
	}
	if !stream.match(tokenArrow) {
		return nil, errors.New("visibility/expr: expected '=>'")
	}
	return parseOr(stream, true)
}

func parsePrimary(stream *tokenStream, inCallback bool) (exprNode, error) {
	if stream.pos >= len(stream.tokens) {
		return nil, errors.New("visibility/expr: unexpected end of expression")
	}
	tok := stream.tokens[stream.pos]
	stream.pos++

	switch tok.kind {
	case tokenLParen:
		inner, err := parseOr(stream, inCallback)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	case tokenLBracket:
		var items []exprNode
		for !stream.match(tokenRBracket) {
			if len(items) > 0 && !stream.match(tokenComma) {
				return nil, errors.New("visibility/expr: expected ',' in list")
			}
			item, err := parseOr(stream, inCallback)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return exprList{items: items}, nil
	case tokenReference:
		return exprReference{name: tok.raw}, nil
	case tokenString:
		return exprLiteral{value: tok.raw}, nil
	case tokenNumber:
		f, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("visibility/expr: invalid number literal %q", tok.raw)
		}
		return exprLiteral{value: f}, nil
	case tokenIdentifier:
		switch tok.raw {
		case "true", "false":
			return exprLiteral{value: tok.raw == "true"}, nil
		case "null", "undefined":
			return exprLiteral{value: nil}, nil
		case "item":
			if inCallback {
				return exprItem{}, nil
			}
		}
		return nil, fmt.Errorf("visibility/expr: unknown identifier %q", tok.raw)
	default:
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", tok.raw)
	}
}

func (s *tokenStream) match(kind tokenKind) bool {
	_, ok := s.consume(kind)
	return ok
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func lookup(ctx visibility.Context, key string) (any, bool) {
	if v, ok := ctx.Values[key]; ok {
		return v, true
	}
	if v, ok := ctx.Extras[key]; ok {
		return v, true
	}
	return nil, false
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		// Lists are truthy even when empty.
		return true
	}
}

func equal(a, b any) bool {
	if an, ok := coerceNumberStrict(a); ok {
		if bn, ok := coerceNumberStrict(b); ok {
			return an == bn
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as == bs
	}
	ab, aok := a.(bool)
	bb, bok := b.(bool)
	if aok && bok {
		return ab == bb
	}
	return a == nil && b == nil
}

func coerceNumberStrict(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

func coerceNumber(value any) (float64, bool) {
	if n, ok := coerceNumberStrict(value); ok {
		return n, true
	}
	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
