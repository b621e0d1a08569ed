package lisp

import (
	"io"
	"strings"
)

// symbolChars lists the punctuation runes (beyond alnum) a symbol may
// contain or start with, grounded on the `SYMBOLS` constant of
// original_source/scheme/src/scheme.c.
const symbolChars = "~!@#$%^&*_-+\\:,.<>|{}[]?=/"

const (
	maxStringLen = 256
	maxSymbolLen = 128
)

// Reader turns a character stream into value trees (spec.md §4.3). It
// wraps any io.RuneReader, in the teacher's BaseParser style of explicit
// cursor/line/column state and a one-rune lookahead buffer, generalized
// from grammar-expression parsing to s-expression reading.
type Reader struct {
	heap   *Heap
	symtab *SymbolTable

	in     io.RuneReader
	source string
	line   int
	column int

	has  bool
	next rune

	// Interactive, when true, prints a `..`-per-nesting-level continuation
	// prompt to Prompter on every newline, matching scheme.c's read_exp
	// behavior when reading from stdin.
	Interactive bool
	Prompter    io.Writer
	depth       int
}

// NewReader constructs a Reader over in. source is used only in
// diagnostics (e.g. the path of a loaded file).
func NewReader(heap *Heap, symtab *SymbolTable, in io.RuneReader, source string) *Reader {
	return &Reader{heap: heap, symtab: symtab, in: in, source: source, line: 1, column: 1}
}

func (r *Reader) loc() Location {
	return Location{Source: r.source, Line: r.line, Column: r.column}
}

const eof rune = -1

func (r *Reader) getc() rune {
	if r.has {
		r.has = false
		return r.consumeTracking(r.next)
	}
	c, _, err := r.in.ReadRune()
	if err != nil {
		return eof
	}
	return r.consumeTracking(c)
}

func (r *Reader) consumeTracking(c rune) rune {
	if c == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}
	return c
}

func (r *Reader) peek() rune {
	if !r.has {
		c, _, err := r.in.ReadRune()
		if err != nil {
			r.next = eof
		} else {
			r.next = c
		}
		r.has = true
	}
	return r.next
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }
func isAlpha(c rune) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlnum(c rune) bool { return isDigit(c) || isAlpha(c) }

// Read returns the next value from the stream, nil at end of input (the
// reader's "null result" for EOF), or a ReadError for a malformed token.
func (r *Reader) Read() (*Object, error) {
	for {
		c := r.getc()
		switch {
		case c == '\n' || c == '\r' || c == ' ' || c == '\t':
			if r.Interactive && (c == '\n' || c == '\r') && r.Prompter != nil {
				io.WriteString(r.Prompter, strings.Repeat("..", r.depth))
			}
			continue
		case c == ';':
			r.skipComment()
			continue
		case c == eof:
			return nil, nil
		case c == '"':
			return r.readString()
		case c == '\'':
			return r.readQuote()
		case c == '(':
			r.depth++
			return r.readList()
		case c == ')':
			r.depth--
			return EmptyList, nil
		case isDigit(c):
			return r.heap.NewInteger(int64(r.readInt(int(c - '0')))), nil
		case c == '-' && isDigit(r.peek()):
			d := r.getc()
			return r.heap.NewInteger(-1 * int64(r.readInt(int(d-'0')))), nil
		case isAlpha(c) || strings.ContainsRune(symbolChars, c):
			return r.readSymbol(c)
		default:
			continue
		}
	}
}

func (r *Reader) skipComment() {
	for {
		c := r.getc()
		if c == '\n' || c == eof {
			return
		}
	}
}

func (r *Reader) readString() (*Object, error) {
	var b strings.Builder
	loc := r.loc()
	for {
		c := r.getc()
		if c == eof {
			return nil, ReadError{Message: "unterminated string literal", Location: loc}
		}
		if c == '"' {
			break
		}
		if b.Len() >= maxStringLen {
			return nil, ReadError{Message: "string too long - maximum length 256 characters", Location: loc}
		}
		b.WriteRune(c)
	}
	return r.symtab.NewString(r.heap, b.String()), nil
}

func (r *Reader) readSymbol(start rune) (*Object, error) {
	var b strings.Builder
	b.WriteRune(start)
	loc := r.loc()
	for isAlnum(r.peek()) || strings.ContainsRune(symbolChars, r.peek()) {
		if b.Len() >= maxSymbolLen {
			return nil, ReadError{Message: "symbol name too long - maximum length 128 characters", Location: loc}
		}
		b.WriteRune(r.getc())
	}
	return r.symtab.Intern(r.heap, b.String()), nil
}

func (r *Reader) readInt(start int) int {
	for isDigit(r.peek()) {
		start = start*10 + int(r.getc()-'0')
	}
	return start
}

// readList accumulates expressions by prepending (so the in-progress tail
// is always rooted through the newest cons cell) and reverses on the
// EMPTY_LIST terminator to restore source order, mirroring `read_list`.
func (r *Reader) readList() (*Object, error) {
	acc := (*Object)(nil)
	for {
		obj, err := r.Read()
		if err != nil {
			return nil, err
		}
		if Eq(obj, EmptyList) {
			return reverseList(r.heap, acc), nil
		}
		// Read returns nil both for end of input and for a nested `()`;
		// only the former leaves the stream exhausted.
		if obj == nil && r.peek() == eof {
			return nil, ReadError{Message: "unexpected end of input inside list", Location: r.loc()}
		}
		acc = r.heap.NewPair(obj, acc)
	}
}

func (r *Reader) readQuote() (*Object, error) {
	obj, err := r.Read()
	if err != nil {
		return nil, err
	}
	quote := r.symtab.Intern(r.heap, "quote")
	return r.heap.NewPair(quote, r.heap.NewPair(obj, nil)), nil
}

func reverseList(heap *Heap, list *Object) *Object {
	var out *Object
	for !IsNil(list) {
		out = heap.NewPair(list.Car, out)
		list = list.Cdr
	}
	return out
}
