package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/timescript/pkg/domain"
)

// Field is an extracted token and the 1-based column where it starts.
type Field struct {
	Value  string
	Column int
}

// Header holds the fields shared by every bracketed statement form.
type Header struct {
	UIType    Field
	DataTag   Field
	VoiceType Field
	Speaker   Field
}

// Statement is the result of extracting one line.
type Statement struct {
	Form   Form
	Header Header
	// Number is the option id (FormOption) or the qid (FormAnswer).
	Number      int
	NumberField Field
	// Target is the branch label of an option.
	Target   Field
	Content  string
	Metadata domain.Metadata
	// Block reports whether a trailing {...} block was found.
	Block bool
}

// Parse extracts a line of the given form. FormConversationEnd and
// FormParameter carry no fields and are handled by ParseConversationEnd and
// the callers respectively.
//
// The returned Statement is non-nil whenever the fixed part of the form
// matched, even when err reports a problem in the trailing part
// (ErrMissingContent, ErrNumberRange). A nil Statement means ErrMismatch.
func Parse(form Form, line string) (*Statement, error) {
	switch form {
	case FormStatement:
		return ParseStatement(line)
	case FormAnswer:
		return ParseAnswer(line)
	case FormOption:
		return ParseOption(line)
	case FormConversation:
		return ParseConversation(line)
	default:
		return nil, &Error{Form: form, Column: 1, Reason: "no fields to extract", Err: ErrMismatch}
	}
}

// ParseStatement extracts "#[uiType-dataTag]-voice<speaker>~: content {meta}".
// The uiType may be wrapped in parentheses, as in "#[(Q1)-...".
func ParseStatement(line string) (*Statement, error) {
	return parseSpoken(FormStatement, "#[", line)
}

// ParseConversation extracts "+#[uiType-dataTag]-voice<speaker>~: content {meta}".
func ParseConversation(line string) (*Statement, error) {
	return parseSpoken(FormConversation, "+#[", line)
}

func parseSpoken(form Form, open string, line string) (*Statement, error) {
	c := newCursor(form, line)
	c.skipSpace()
	h, err := c.header(open, false)
	if err != nil {
		return nil, err
	}
	if err := c.expect("~:"); err != nil {
		return nil, err
	}
	st := &Statement{Form: form, Header: h}
	return st, c.body(st)
}

// ParseAnswer extracts "#[(A1)-dataTag]-voice<speaker>~(qid):".
// Text after the closing "):" is ignored.
func ParseAnswer(line string) (*Statement, error) {
	c := newCursor(FormAnswer, line)
	c.skipSpace()
	h, err := c.header("#[", true)
	if err != nil {
		return nil, err
	}
	if err := c.expect("~("); err != nil {
		return nil, err
	}
	field, err := c.take("qid", isDigit)
	if err != nil {
		return nil, err
	}
	if err := c.expect("):"); err != nil {
		return nil, err
	}
	st := &Statement{Form: FormAnswer, Header: h, NumberField: field}
	st.Number, err = c.number(field)
	return st, err
}

// ParseOption extracts
// "        -(id)::[uiType-dataTag]-voice<speaker>::<target>~: content {meta}".
// The eight-space indent is part of the form.
func ParseOption(line string) (*Statement, error) {
	c := newCursor(FormOption, line)
	if err := c.expect(OptionIndent + "-("); err != nil {
		return nil, err
	}
	field, err := c.take("option id", isDigit)
	if err != nil {
		return nil, err
	}
	if err := c.expect(")::"); err != nil {
		return nil, err
	}
	h, err := c.header("[", false)
	if err != nil {
		return nil, err
	}
	if err := c.expect("::<"); err != nil {
		return nil, err
	}
	target, err := c.take("target", isAlnum)
	if err != nil {
		return nil, err
	}
	if err := c.expect(">~:"); err != nil {
		return nil, err
	}
	st := &Statement{Form: FormOption, Header: h, NumberField: field, Target: target}
	var numErr error
	st.Number, numErr = c.number(field)
	if err := c.body(st); err != nil {
		if numErr != nil {
			return st, errors.Join(err, numErr)
		}
		return st, err
	}
	return st, numErr
}

// ParseConversationEnd checks the strict end marker "#<label> end;" and
// returns the label. Leading and trailing whitespace is allowed; anything else
// around the marker is not.
func ParseConversationEnd(line string) (Field, error) {
	c := newCursor(FormConversationEnd, strings.TrimRight(line, " \t"))
	c.skipSpace()
	if err := c.expect("#<"); err != nil {
		return Field{}, err
	}
	label, err := c.take("label", isAlnum)
	if err != nil {
		return Field{}, err
	}
	if err := c.expect(">"); err != nil {
		return Field{}, err
	}
	if c.skipSpace() == 0 {
		return Field{}, c.fail("expected whitespace before \"end;\"", ErrMismatch)
	}
	if err := c.expect("end;"); err != nil {
		return Field{}, err
	}
	if !c.done() {
		return Field{}, c.fail("unexpected text after \"end;\"", ErrMismatch)
	}
	return label, nil
}

// cursor walks a single line left to right.
type cursor struct {
	form Form
	line string
	pos  int
}

func newCursor(form Form, line string) *cursor {
	return &cursor{form: form, line: line}
}

// col converts a byte offset into a 1-based rune column.
func (c *cursor) colAt(pos int) int {
	return utf8.RuneCountInString(c.line[:pos]) + 1
}

func (c *cursor) col() int { return c.colAt(c.pos) }

func (c *cursor) done() bool { return c.pos >= len(c.line) }

func (c *cursor) fail(reason string, kind error) *Error {
	return &Error{Form: c.form, Column: c.col(), Reason: reason, Err: kind}
}

func (c *cursor) skipSpace() int {
	start := c.pos
	for c.pos < len(c.line) && (c.line[c.pos] == ' ' || c.line[c.pos] == '\t') {
		c.pos++
	}
	return c.pos - start
}

func (c *cursor) accept(lit string) bool {
	if strings.HasPrefix(c.line[c.pos:], lit) {
		c.pos += len(lit)
		return true
	}
	return false
}

func (c *cursor) expect(lit string) error {
	if !c.accept(lit) {
		return c.fail(fmt.Sprintf("expected %q", lit), ErrMismatch)
	}
	return nil
}

// take consumes a non-empty run of bytes accepted by class.
func (c *cursor) take(name string, class func(byte) bool) (Field, error) {
	start := c.pos
	for c.pos < len(c.line) && class(c.line[c.pos]) {
		c.pos++
	}
	if c.pos == start {
		return Field{}, c.fail("expected "+name, ErrMismatch)
	}
	return Field{Value: c.line[start:c.pos], Column: c.colAt(start)}, nil
}

func (c *cursor) number(f Field) (int, error) {
	n, err := strconv.Atoi(f.Value)
	if err != nil {
		return 0, &Error{Form: c.form, Column: f.Column, Reason: fmt.Sprintf("%s does not fit an integer", f.Value), Err: ErrNumberRange}
	}
	return n, nil
}

// header consumes open [ "(" ] uiType [ ")" ] "-" dataTag "]-" voiceType "<" speaker ">".
func (c *cursor) header(open string, requireParen bool) (Header, error) {
	var h Header
	var err error
	if err = c.expect(open); err != nil {
		return h, err
	}
	paren := c.accept("(")
	if requireParen && !paren {
		return h, c.fail(`expected "("`, ErrMismatch)
	}
	if h.UIType, err = c.take("uiType", isUpperDigit); err != nil {
		return h, err
	}
	if paren {
		if err = c.expect(")"); err != nil {
			return h, err
		}
	}
	if err = c.expect("-"); err != nil {
		return h, err
	}
	if h.DataTag, err = c.take("dataTag", isDataTag); err != nil {
		return h, err
	}
	if err = c.expect("]-"); err != nil {
		return h, err
	}
	if h.VoiceType, err = c.take("voiceType", isAlnum); err != nil {
		return h, err
	}
	if err = c.expect("<"); err != nil {
		return h, err
	}
	if h.Speaker, err = c.take("speaker", isAlnum); err != nil {
		return h, err
	}
	return h, c.expect(">")
}

// body reads the content and the optional trailing {...} block.
// The block is the last "{" ... "}" pair closing the line whose body holds no "}".
// Content before the block must be non-empty, so "~: {a:1}" is plain content.
func (c *cursor) body(st *Statement) error {
	rest := strings.TrimSpace(c.line[c.pos:])
	content := rest
	if strings.HasSuffix(rest, "}") {
		inner := rest[:len(rest)-1]
		from := strings.LastIndex(inner, "}") + 1
		if open := strings.Index(inner[from:], "{"); open >= 0 {
			open += from
			head := strings.TrimSpace(rest[:open])
			if block := inner[open+1:]; block != "" && head != "" {
				content = head
				st.Metadata = ParseMetadata(block)
				st.Block = true
			}
		}
	}
	st.Content = content
	if content == "" && !st.Block {
		return c.fail("missing content after \"~:\"", ErrMissingContent)
	}
	return nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isUpperDigit(b byte) bool { return (b >= 'A' && b <= 'Z') || isDigit(b) }

func isAlnum(b byte) bool { return isUpperDigit(b) || (b >= 'a' && b <= 'z') }

func isDataTag(b byte) bool { return isUpperDigit(b) || b == '|' || b == ':' || b == ' ' }
