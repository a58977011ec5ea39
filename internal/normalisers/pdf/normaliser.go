package pdf

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
	"github.com/custodia-labs/docvault/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Extension is the file extension handled by this normaliser.
const Extension = ".pdf"

// Normaliser reads PDF files with pdfcpu.
type Normaliser struct {
	conf *model.Configuration
}

// New creates a new PDF normaliser using relaxed validation, so slightly
// malformed files from scanners and office suites still load.
func New() *Normaliser {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Normaliser{conf: conf}
}

// Extension returns ".pdf".
func (n *Normaliser) Extension() string {
	return Extension
}

// Normalise extracts page text and Keywords metadata from the PDF at path.
func (n *Normaliser) Normalise(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, n.conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read %s: %w", filepath.Base(path), err)
	}

	pages := make([]string, 0, pdfCtx.PageCount)
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := extractPageText(pdfCtx, pageNr)
		if err != nil {
			logger.Warn("%s: page %d: %v", filepath.Base(path), pageNr, err)
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	return &domain.Document{
		Source:   filepath.Base(path),
		Path:     path,
		Content:  strings.Join(pages, "\n\n"),
		Pages:    pdfCtx.PageCount,
		Keywords: ParseKeywords(pdfCtx.Keywords),
	}, nil
}

// ParseKeywords parses "key: value; key: value" into a map. Keys and values
// are trimmed; items without a colon are ignored. The first colon splits,
// so values may contain colons.
func ParseKeywords(s string) map[string]string {
	result := make(map[string]string)
	for _, item := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		result[key] = strings.TrimSpace(value)
	}
	return result
}

// extractPageText returns the text drawn on one page.
func extractPageText(ctx *model.Context, pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return textFromContentStream(data), nil
}

// textFromContentStream interprets the text operators of a decoded content
// stream. Operands are collected on a stack until their operator is read, so
// operators may share a line. A vertical move starts a new line; a
// horizontal move adds a space.
func textFromContentStream(data []byte) string {
	var (
		sb      strings.Builder
		stack   []operand
		arr     []string
		depth   int
		lastY   float64
		hasLast bool
	)

	newline := func() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
	}
	space := func() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
	}
	show := func() {
		if len(stack) > 0 {
			sb.WriteString(strings.Join(stack[len(stack)-1].text, ""))
		}
	}
	number := func(fromEnd int) (float64, bool) {
		i := len(stack) - fromEnd
		if i < 0 || !stack[i].isNum {
			return 0, false
		}
		return stack[i].num, true
	}

	lx := &lexer{data: data}
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}

		if depth > 0 {
			switch tok.kind {
			case tokArrayStart:
				depth++
			case tokArrayEnd:
				depth--
				if depth == 0 {
					stack = append(stack, operand{text: arr})
				}
			case tokString:
				arr = append(arr, tok.text)
			}
			continue
		}

		switch tok.kind {
		case tokArrayStart:
			depth = 1
			arr = nil
		case tokString:
			stack = append(stack, operand{text: []string{tok.text}})
		case tokNumber:
			stack = append(stack, operand{num: tok.num, isNum: true})
		case tokOther, tokArrayEnd:
			stack = append(stack, operand{})
		case tokOperator:
			switch tok.text {
			case "Tj", "TJ":
				show()
			case "'", "\"":
				newline()
				show()
			case "T*":
				newline()
			case "Td", "TD":
				if ty, ok := number(1); ok && ty != 0 {
					newline()
				} else {
					space()
				}
			case "Tm":
				if y, ok := number(1); ok {
					if hasLast && y != lastY {
						newline()
					} else {
						space()
					}
					lastY, hasLast = y, true
				}
			case "ID":
				lx.skipInlineImage()
			}
			stack = stack[:0]
		}
	}

	return trimLines(sb.String())
}

// operand is a number, or the strings of a string or array operand.
type operand struct {
	num   float64
	isNum bool
	text  []string
}

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokNumber
	tokString
	tokArrayStart
	tokArrayEnd
	tokOther
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

// lexer splits a content stream into PDF tokens.
type lexer struct {
	data []byte
	pos  int
}

func (l *lexer) next() (token, bool) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, false
	}

	switch c := l.data[l.pos]; c {
	case '(':
		return token{kind: tokString, text: l.readLiteral()}, true
	case '<':
		if l.peek(1) == '<' {
			l.pos += 2
			return token{kind: tokOther}, true
		}
		return token{kind: tokString, text: l.readHex()}, true
	case '>':
		l.pos++
		if l.peek(0) == '>' {
			l.pos++
		}
		return token{kind: tokOther}, true
	case '[':
		l.pos++
		return token{kind: tokArrayStart}, true
	case ']':
		l.pos++
		return token{kind: tokArrayEnd}, true
	case '{', '}':
		l.pos++
		return token{kind: tokOther}, true
	case '/':
		l.pos++
		l.readRegular()
		return token{kind: tokOther}, true
	}

	word := l.readRegular()
	if word == "" {
		// Stray delimiter such as ')'.
		l.pos++
		return token{kind: tokOther}, true
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: tokNumber, num: f}, true
	}
	return token{kind: tokOperator, text: word}, true
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.data) {
		return 0
	}
	return l.data[l.pos+offset]
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) readRegular() string {
	start := l.pos
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// readLiteral reads a (string), honouring escapes and balanced parentheses.
func (l *lexer) readLiteral() string {
	l.pos++
	start, depth := l.pos, 1
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				raw := l.data[start:l.pos]
				l.pos++
				return decodePDFString(raw)
			}
		}
		l.pos++
	}
	return decodePDFString(l.data[start:])
}

// readHex reads a <hex> string. Whitespace is ignored and an odd final
// digit is padded with zero.
func (l *lexer) readHex() string {
	l.pos++
	var digits []byte
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		if c := l.data[l.pos]; isHexDigit(c) {
			digits = append(digits, c)
		}
		l.pos++
	}
	l.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	b := make([]byte, len(digits)/2)
	if _, err := hex.Decode(b, digits); err != nil {
		return ""
	}
	return decodeHexBytes(b)
}

// skipInlineImage skips binary image data up to the EI operator.
func (l *lexer) skipInlineImage() {
	if l.pos < len(l.data) {
		l.pos++
	}
	for l.pos+1 < len(l.data) {
		if l.data[l.pos] == 'E' && l.data[l.pos+1] == 'I' &&
			l.pos > 0 && isSpace(l.data[l.pos-1]) &&
			(l.pos+2 == len(l.data) || isSpace(l.data[l.pos+2])) {
			l.pos += 2
			return
		}
		l.pos++
	}
	l.pos = len(l.data)
}

// decodeHexBytes treats a byte order mark, or two-byte codes with a zero
// high byte, as UTF-16BE; anything else is taken byte for byte.
func decodeHexBytes(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		return decodeUTF16(b[2:])
	}
	if len(b) >= 2 && len(b)%2 == 0 {
		wide := true
		for i := 0; i < len(b); i += 2 {
			if b[i] != 0 {
				wide = false
				break
			}
		}
		if wide {
			return decodeUTF16(b)
		}
	}
	return string(b)
}

func decodeUTF16(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return string(utf16.Decode(units))
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// trimLines trims trailing blanks from every line and surrounding blank lines.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		case '\r', '\n':
			// Line continuation.
			if raw[i] == '\r' && i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		default:
			// Octal escape (e.g. \040 for space).
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				continue
			}
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}
