package lang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/cjhanks/appconf/log"
)

// Directive keywords. They cannot be used as keys or macro names.
const (
	keywordDefine  = "define"
	keywordExport  = "export"
	keywordInclude = "include"
)

func isKeyword(s string) bool {
	return s == keywordDefine || s == keywordExport || s == keywordInclude
}

var (
	integralPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatingPattern = regexp.MustCompile(
		`^[+-]?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)([eE][+-]?[0-9]+)?$`,
	)
)

var (
	errVector       = errors.New("vector literals are not supported")
	errUnterminated = errors.New("unterminated section")
	errMissingValue = errors.New("missing value")
)

// session is the state shared by a file and every file it includes.
type session struct {
	ctx      context.Context
	opts     options
	logger   log.Logger
	scope    *Registry
	includes []string // files currently being parsed, outermost first
	files    []string // every file read, in order
	hash     *xxh3.Hasher
}

func newSession(ctx context.Context, opts options) *session {
	return &session{
		ctx:    ctx,
		opts:   opts,
		logger: opts.logger,
		scope:  NewRegistry(),
		hash:   xxh3.New(),
	}
}

// parse parses data as the contents of file into sec.
func (s *session) parse(file string, data []byte, sec *Section) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	s.files = append(s.files, file)
	s.includes = append(s.includes, file)
	_, _ = s.hash.Write(data)

	defer func() { s.includes = s.includes[:len(s.includes)-1] }()

	s.logger.TraceContext(s.ctx, "parse file",
		slog.String("file", file),
		slog.Int("size", len(data)))

	p := &parser{session: s, file: file, input: string(data)}

	return p.parseFile(sec)
}

// parser holds the cursor over one file's text.
//
// Macro expansion splices replacement text into input. Offsets below
// expanded belong to the most recent expansion and are never probed for
// further macro invocations.
type parser struct {
	*session
	file     string
	input    string
	pos      int
	expanded int
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.input[p.pos]
}

// fail returns a [ParseError] located at offset.
func (p *parser) fail(offset int, key string, err error) error {
	return newParseError(p.file, p.input, offset, key, err)
}

func (p *parser) failf(offset int, key, format string, args ...any) error {
	return p.fail(offset, key, fmt.Errorf(format, args...))
}

// parseFile parses a whole file, which may wrap its body in one anonymous
// pair of braces.
func (p *parser) parseFile(sec *Section) error {
	p.skipSpace()

	if p.peek() != '{' {
		return p.parseBody(sec, false)
	}

	p.pos++

	if err := p.parseBody(sec, true); err != nil {
		return err
	}

	p.skipSpace()

	for !p.eof() && (p.peek() == ';' || p.peek() == ',') {
		p.pos++
		p.skipSpace()
	}

	if !p.eof() {
		return p.failf(p.pos, "", "unexpected %q after closing brace", p.peek())
	}

	return nil
}

// parseBody parses items into sec until end of input or, when closing is
// set, until the matching '}'.
func (p *parser) parseBody(sec *Section, closing bool) error {
	for {
		p.skipSpace()

		if p.eof() {
			if closing {
				return p.fail(p.pos, sec.name, errUnterminated)
			}

			return nil
		}

		switch p.peek() {
		case '}':
			if !closing {
				return p.failf(p.pos, "", "unexpected '}'")
			}

			p.pos++

			return nil

		case ';', ',':
			p.pos++

			continue
		}

		if p.expand() {
			continue
		}

		var err error

		switch p.word() {
		case keywordDefine:
			_, err = p.parseDefine()
		case keywordExport:
			err = p.parseExport()
		case keywordInclude:
			err = p.parseInclude(sec)
		default:
			err = p.parseAssignment(sec)
		}

		if err != nil {
			return err
		}
	}
}

// expand replaces a macro invocation at the cursor with its text.
// It reports whether a replacement was made.
func (p *parser) expand() bool {
	if p.pos < p.expanded || p.eof() || !isIdentifierStart(p.peek()) {
		return false
	}

	name, text, ok := p.scope.Match(p.input[p.pos:])
	if !ok {
		return false
	}

	end := p.pos + len(name)
	if end < len(p.input) && isIdentifierContinue(p.input[end]) {
		return false
	}

	p.input = p.input[:p.pos] + text + p.input[end:]
	p.expanded = p.pos + len(text)

	p.logger.TraceContext(p.ctx, "expand",
		slog.String("macro", name),
		slog.String("text", text),
		slog.Int("offset", p.pos))

	return true
}

// parseDefine parses "define NAME TEXT" and returns NAME.
func (p *parser) parseDefine() (string, error) {
	p.pos += len(keywordDefine)
	p.skipSpace()

	start := p.pos

	name := p.identifier()
	if name == "" {
		return "", p.failf(start, keywordDefine, "expected macro name")
	}

	if isKeyword(name) {
		return "", p.failf(start, name, "keyword %q cannot be a macro name", name)
	}

	p.skipSpace()

	text, err := p.parseText(name)
	if err != nil {
		return "", err
	}

	p.scope.Define(name, text)

	p.logger.TraceContext(p.ctx, "define",
		slog.String("macro", name),
		slog.String("text", text),
		slog.Int("scope", p.scope.Depth()))

	return name, nil
}

// parseExport parses "export NAME" or "export define NAME TEXT".
func (p *parser) parseExport() error {
	p.pos += len(keywordExport)
	p.skipSpace()

	start := p.pos

	var name string

	if p.word() == keywordDefine {
		var err error
		if name, err = p.parseDefine(); err != nil {
			return err
		}
	} else if name = p.identifier(); name == "" {
		return p.failf(start, keywordExport, "expected macro name")
	}

	if err := p.scope.Export(name); err != nil {
		return p.fail(start, name, err)
	}

	p.logger.TraceContext(p.ctx, "export",
		slog.String("macro", name),
		slog.Int("scope", p.scope.Depth()))

	return nil
}

// parseInclude parses "include PATH" and parses the named file into sec
// using the current macro scope.
func (p *parser) parseInclude(sec *Section) error {
	p.pos += len(keywordInclude)
	p.skipSpace()

	start := p.pos

	name, err := p.parseText(keywordInclude)
	if err != nil {
		return err
	}

	file := p.opts.reader.Resolve(p.file, name)

	if slices.Contains(p.includes, file) {
		return p.fail(start, name, ErrIncludeCycle.
			Wrapf("%s includes itself", file).
			With(slog.String("path", file)))
	}

	if len(p.includes) > p.opts.maxIncludeDepth {
		return p.fail(start, name, ErrMaxDepthExceeded.
			Wrapf("includes nested deeper than %d", p.opts.maxIncludeDepth).
			With(slog.String("path", file)))
	}

	p.logger.TraceContext(p.ctx, "include",
		slog.String("from", p.file),
		slog.String("path", file))

	data, err := p.opts.reader.ReadFile(p.ctx, file)
	if err != nil {
		return err
	}

	return p.parse(file, data, sec)
}

// parseText parses the operand of a directive: a quoted string or a single
// bare token.
func (p *parser) parseText(key string) (string, error) {
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		return p.quoted(key)
	default:
		start := p.pos
		if tok := p.bare(); tok != "" {
			return tok, nil
		}

		return "", p.fail(start, key, errMissingValue)
	}
}

// parseAssignment parses "NAME = value" or "NAME { ... }" into sec.
func (p *parser) parseAssignment(sec *Section) error {
	start := p.pos

	key := p.identifier()
	if key == "" {
		return p.failf(start, "", "expected key, found %q", p.peek())
	}

	p.skipSpace()

	if p.peek() == '=' {
		p.pos++
	} else {
		if p.expand() {
			p.skipSpace()
		}

		if p.peek() != '{' {
			return p.failf(p.pos, key, "expected '=' or '{' after key")
		}
	}

	value, err := p.parseValue(key)
	if err != nil {
		return err
	}

	if err := sec.set(value); err != nil {
		return p.fail(start, key, err)
	}

	return nil
}

// parseValue parses the value assigned to key.
func (p *parser) parseValue(key string) (Value, error) {
	p.skipSpace()

	if p.expand() {
		p.skipSpace()
	}

	start := p.pos

	switch c := p.peek(); {
	case p.eof():
		return nil, p.fail(start, key, errMissingValue)

	case c == '{':
		return p.parseSection(key)

	case c == '[':
		return nil, p.fail(start, key, errVector)

	case c == '"' || c == '\'':
		s, err := p.quoted(key)
		if err != nil {
			return nil, err
		}

		return NewString(key, s), nil

	default:
		tok := p.bare()
		if tok == "" {
			return nil, p.failf(start, key, "unexpected %q", c)
		}

		return p.scalar(start, key, tok)
	}
}

// parseSection parses a nested section body in a new macro scope.
func (p *parser) parseSection(key string) (*Section, error) {
	start := p.pos
	p.pos++

	if p.scope.Depth() >= p.opts.maxSectionDepth {
		return nil, p.fail(start, key, ErrMaxDepthExceeded.
			Wrapf("sections nested deeper than %d", p.opts.maxSectionDepth))
	}

	p.scope.Enter()

	p.logger.TraceContext(p.ctx, "section open",
		slog.String("key", key),
		slog.Int("scope", p.scope.Depth()))

	sec := newSection(key)
	if err := p.parseBody(sec, true); err != nil {
		return nil, err
	}

	if err := p.scope.Leave(); err != nil {
		return nil, p.fail(p.pos, key, err)
	}

	p.logger.TraceContext(p.ctx, "section close",
		slog.String("key", key),
		slog.Int("items", sec.Len()))

	return sec, nil
}

// scalar classifies a bare token.
func (p *parser) scalar(offset int, key, tok string) (Value, error) {
	switch {
	case integralPattern.MatchString(tok):
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, p.fail(offset, key, ErrOutOfRange.
				Wrapf("%s overflows a 64-bit integer", tok))
		}

		return NewInt(key, n), nil

	case floatingPattern.MatchString(tok):
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, p.fail(offset, key, ErrOutOfRange.
				Wrapf("%s overflows a 64-bit float", tok))
		}

		return NewFloat(key, f), nil

	default:
		return NewString(key, tok), nil
	}
}

// quoted parses a double-quoted (escaped) or single-quoted (raw) string and
// returns its content.
func (p *parser) quoted(key string) (string, error) {
	start := p.pos
	quote := p.peek()
	p.pos++

	for !p.eof() {
		switch c := p.peek(); {
		case c == '\\' && quote == '"':
			p.pos += 2

		case c == quote:
			p.pos++

			if quote == '\'' {
				return p.input[start+1 : p.pos-1], nil
			}

			s, err := strconv.Unquote(p.input[start:p.pos])
			if err != nil {
				return "", p.failf(start, key, "invalid string literal: %w", err)
			}

			return s, nil

		default:
			p.pos++
		}
	}

	p.pos = len(p.input)

	return "", p.failf(start, key, "unterminated string")
}

// bare consumes a token ended by whitespace, end of input or one of the
// delimiters "{}=;,#".
func (p *parser) bare() string {
	start := p.pos

	for !p.eof() && !isDelimiter(p.peek()) {
		p.pos++
	}

	return p.input[start:p.pos]
}

// identifier consumes and returns an identifier, or "" if none starts at
// the cursor.
func (p *parser) identifier() string {
	w := p.word()
	p.pos += len(w)

	return w
}

// word returns the identifier at the cursor without consuming it.
func (p *parser) word() string {
	if p.eof() || !isIdentifierStart(p.peek()) {
		return ""
	}

	end := p.pos + 1
	for end < len(p.input) && isIdentifierContinue(p.input[end]) {
		end++
	}

	return p.input[p.pos:end]
}

// skipSpace skips whitespace and comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.peek(); {
		case isSpace(c):
			p.pos++

		case c == '#':
			p.skipLine()

		case strings.HasPrefix(p.input[p.pos:], "//"):
			p.skipLine()

		case strings.HasPrefix(p.input[p.pos:], "/*"):
			end := strings.Index(p.input[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.input)

				return
			}

			p.pos += end + 4

		default:
			return
		}
	}
}

func (p *parser) skipLine() {
	if i := strings.IndexByte(p.input[p.pos:], '\n'); i >= 0 {
		p.pos += i + 1
	} else {
		p.pos = len(p.input)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || strings.IndexByte("{}=;,#", c) >= 0
}

func isIdentifierStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentifierContinue(c byte) bool {
	return isIdentifierStart(c) || ('0' <= c && c <= '9') || c == '-'
}
