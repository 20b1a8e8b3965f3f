// Package resolve classifies raw source tokens into resolution keys using
// static lexical evidence from a bounded window around the cursor. It is
// pure: no I/O, no shared state, no type inference beyond literal shapes,
// prior assignments, and annotations.
package resolve

import (
	"strings"

	"github.com/KiidxAtlas/pyhover"
)

// DefaultWindowBytes bounds how much source text is inspected on each side
// of the cursor. Classification never reads the whole file.
const DefaultWindowBytes = 2048

// Python reserved words. Soft keywords (match, case, type) are excluded:
// they are ordinary identifiers in most positions.
var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true,
}

// receiverShape is the statically inferred shape of a dotted-access
// receiver.
type receiverShape int

const (
	shapeUnknown receiverShape = iota
	shapeString
	shapeList
	shapeDict
	shapeSet
)

var shapeCategories = map[receiverShape]pyhover.Category{
	shapeString: pyhover.CategoryStringMethod,
	shapeList:   pyhover.CategoryListMethod,
	shapeDict:   pyhover.CategoryDictMethod,
	shapeSet:    pyhover.CategorySetMethod,
}

var annotationShapes = map[string]receiverShape{
	"str": shapeString, "list": shapeList, "dict": shapeDict, "set": shapeSet,
	"List": shapeList, "Dict": shapeDict, "Set": shapeSet,
}

// Ensure Resolver implements pyhover.Resolver at compile time.
var _ pyhover.Resolver = (*Resolver)(nil)

// Resolver classifies tokens against an injected symbol dictionary.
type Resolver struct {
	dict       pyhover.Dictionary
	versionTag string
	window     int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithWindowBytes overrides the inspection window size.
func WithWindowBytes(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.window = n
		}
	}
}

// NewResolver creates a Resolver for the given dictionary and documentation
// version tag.
func NewResolver(dict pyhover.Dictionary, versionTag string, opts ...Option) *Resolver {
	r := &Resolver{dict: dict, versionTag: versionTag, window: DefaultWindowBytes}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve determines the resolution key for token at cursorOffset.
//
// Rule priority is strict: dotted access on a known receiver shape, then
// reserved words, then builtins called as functions, then module imports,
// then bare dictionary symbols. A dotted-access match always wins over a
// keyword match, so "x.class" is an attribute, never the class keyword.
func (r *Resolver) Resolve(source string, cursorOffset int, token string) (*pyhover.Resolution, error) {
	if token == "" {
		return nil, pyhover.Errorf(pyhover.EINVALID, "token required")
	}
	if cursorOffset < 0 || cursorOffset > len(source) {
		return nil, pyhover.Errorf(pyhover.EINVALID, "cursor offset %d out of range", cursorOffset)
	}

	win, cursor := r.clip(source, cursorOffset)
	start, end, ok := locateToken(win, cursor, token)
	if !ok {
		return nil, pyhover.Errorf(pyhover.EUNRESOLVABLE, "token %q not at cursor", token)
	}

	key := func(cat pyhover.Category) pyhover.ResolutionKey {
		return pyhover.ResolutionKey{Symbol: token, Category: cat, VersionTag: r.versionTag}
	}

	// Rule 1: dotted access. Handles the whole dotted case so a reserved
	// word after a dot can never be classified as a keyword.
	if dot, isDotted := precedingDot(win, start); isDotted {
		if cat, ok := r.classifyDotted(win, dot, token); ok {
			return &pyhover.Resolution{Key: key(cat)}, nil
		}
		return nil, pyhover.Errorf(pyhover.EUNRESOLVABLE, "attribute %q has no inferable receiver type", token)
	}

	// Rule 2: reserved words.
	if keywords[token] {
		res := &pyhover.Resolution{Key: key(pyhover.CategoryKeyword)}
		if token == "await" && !insideAsyncDef(win, start) {
			res.ContextWarning = "await outside async"
		}
		return res, nil
	}

	// Rule 3: called as a function.
	if nextNonSpace(win, end) == '(' {
		if _, ok := r.dict.Lookup(token, pyhover.CategoryBuiltin); ok {
			return &pyhover.Resolution{Key: key(pyhover.CategoryBuiltin)}, nil
		}
		return nil, pyhover.Errorf(pyhover.EUNRESOLVABLE, "%q is not a documented builtin", token)
	}

	// Rule 4: import targets.
	if inImportStatement(win, start) {
		return &pyhover.Resolution{Key: key(pyhover.CategoryModule)}, nil
	}

	// Rule 5: bare dictionary symbols.
	if _, ok := r.dict.Lookup(token, pyhover.CategoryOther); ok {
		return &pyhover.Resolution{Key: key(pyhover.CategoryOther)}, nil
	}
	return nil, pyhover.Errorf(pyhover.EUNRESOLVABLE, "%q is not a documented symbol", token)
}

// clip returns the bounded window around offset and the offset translated
// into window coordinates.
func (r *Resolver) clip(source string, offset int) (string, int) {
	lo := offset - r.window
	if lo < 0 {
		lo = 0
	}
	hi := offset + r.window
	if hi > len(source) {
		hi = len(source)
	}
	return source[lo:hi], offset - lo
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// locateToken finds the identifier containing cursor and verifies it matches
// token. The cursor may sit anywhere inside the token or just past its end.
func locateToken(win string, cursor int, token string) (start, end int, ok bool) {
	start = cursor
	for start > 0 && isIdentByte(win[start-1]) {
		start--
	}
	end = start
	for end < len(win) && isIdentByte(win[end]) {
		end++
	}
	if win[start:end] == token {
		return start, end, true
	}
	return 0, 0, false
}

// precedingDot reports whether the token at start is an attribute access and
// returns the index of the dot.
func precedingDot(win string, start int) (int, bool) {
	i := start - 1
	for i >= 0 && (win[i] == ' ' || win[i] == '\t') {
		i--
	}
	if i >= 0 && win[i] == '.' {
		return i, true
	}
	return 0, false
}

// nextNonSpace returns the first non-blank byte at or after i, or zero.
func nextNonSpace(win string, i int) byte {
	for ; i < len(win); i++ {
		if win[i] != ' ' && win[i] != '\t' {
			return win[i]
		}
	}
	return 0
}

// classifyDotted determines the category of an attribute token from the
// static shape of its receiver. When the shape is unknown, a method name
// unique to exactly one receiver category still resolves; anything more
// ambiguous does not.
func (r *Resolver) classifyDotted(win string, dot int, token string) (pyhover.Category, bool) {
	if inImportStatement(win, dot) {
		// Dotted module path, e.g. the "path" in "import os.path".
		return pyhover.CategoryModule, true
	}

	shape := receiverShapeAt(win, dot)
	if shape == shapeUnknown {
		if name, ok := receiverName(win, dot); ok {
			shape = inferNameShape(win, name)
		}
	}
	if cat, ok := shapeCategories[shape]; ok {
		return cat, true
	}

	var found pyhover.Category
	var matches int
	for _, cat := range []pyhover.Category{
		pyhover.CategoryStringMethod,
		pyhover.CategoryListMethod,
		pyhover.CategoryDictMethod,
		pyhover.CategorySetMethod,
	} {
		if _, ok := r.dict.Lookup(token, cat); ok {
			found = cat
			matches++
		}
	}
	if matches == 1 {
		return found, true
	}
	return "", false
}

// receiverShapeAt inspects the expression ending just before the dot for a
// literal shape.
func receiverShapeAt(win string, dot int) receiverShape {
	i := dot - 1
	for i >= 0 && (win[i] == ' ' || win[i] == '\t') {
		i--
	}
	if i < 0 {
		return shapeUnknown
	}
	switch win[i] {
	case '"', '\'':
		return shapeString
	case ']':
		if open := matchOpen(win, i, '[', ']'); open >= 0 && !isIndexing(win, open) {
			return shapeList
		}
	case '}':
		if open := matchOpen(win, i, '{', '}'); open >= 0 {
			return braceShape(win[open : i+1])
		}
	}
	return shapeUnknown
}

// isIndexing reports whether the bracket at open subscripts a preceding
// expression rather than opening a list literal.
func isIndexing(win string, open int) bool {
	i := open - 1
	for i >= 0 && (win[i] == ' ' || win[i] == '\t') {
		i--
	}
	return i >= 0 && (isIdentByte(win[i]) || win[i] == ']' || win[i] == ')' || win[i] == '"' || win[i] == '\'')
}

// matchOpen scans backward from the closer at i for its matching opener.
func matchOpen(win string, i int, opener, closer byte) int {
	depth := 0
	for ; i >= 0; i-- {
		switch win[i] {
		case closer:
			depth++
		case opener:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// braceShape distinguishes dict from set literals. A top-level colon means
// dict; empty braces are a dict.
func braceShape(lit string) receiverShape {
	inner := strings.TrimSpace(lit[1 : len(lit)-1])
	if inner == "" {
		return shapeDict
	}
	depth := 0
	for i := 0; i < len(lit); i++ {
		switch lit[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ':':
			if depth == 1 {
				return shapeDict
			}
		}
	}
	return shapeSet
}

// receiverName extracts a simple identifier receiver, e.g. the "x" in
// "x.upper".
func receiverName(win string, dot int) (string, bool) {
	end := dot
	for end > 0 && (win[end-1] == ' ' || win[end-1] == '\t') {
		end--
	}
	start := end
	for start > 0 && isIdentByte(win[start-1]) {
		start--
	}
	if start == end {
		return "", false
	}
	// A dotted chain like a.b.c has no simple receiver.
	if i := start - 1; i >= 0 && win[i] == '.' {
		return "", false
	}
	return win[start:end], true
}

// inferNameShape scans the window before the receiver's use for the most
// recent assignment or annotation that pins its shape.
func inferNameShape(win, name string) receiverShape {
	shape := shapeUnknown
	for i := 0; i+len(name) <= len(win); i++ {
		if win[i:i+len(name)] != name {
			continue
		}
		if i > 0 && (isIdentByte(win[i-1]) || win[i-1] == '.') {
			continue
		}
		j := i + len(name)
		if j < len(win) && isIdentByte(win[j]) {
			continue
		}
		for j < len(win) && (win[j] == ' ' || win[j] == '\t') {
			j++
		}
		if j >= len(win) {
			break
		}
		switch win[j] {
		case ':':
			if s, ok := annotationAt(win, j+1); ok {
				shape = s
			}
		case '=':
			if j+1 < len(win) && win[j+1] == '=' {
				continue // comparison, not assignment
			}
			if s := literalShapeAt(win, j+1); s != shapeUnknown {
				shape = s
			}
		}
	}
	return shape
}

// annotationAt reads a type annotation after a colon.
func annotationAt(win string, i int) (receiverShape, bool) {
	for i < len(win) && (win[i] == ' ' || win[i] == '\t') {
		i++
	}
	start := i
	for i < len(win) && isIdentByte(win[i]) {
		i++
	}
	s, ok := annotationShapes[win[start:i]]
	return s, ok
}

// literalShapeAt reads the shape of the literal starting at or after i.
func literalShapeAt(win string, i int) receiverShape {
	for i < len(win) && (win[i] == ' ' || win[i] == '\t') {
		i++
	}
	// Skip string prefixes (r"", f"", b-prefixed stays unknown: bytes are
	// not str).
	if i+1 < len(win) && (win[i] == 'r' || win[i] == 'f' || win[i] == 'u') &&
		(win[i+1] == '"' || win[i+1] == '\'') {
		i++
	}
	if i >= len(win) {
		return shapeUnknown
	}
	switch win[i] {
	case '"', '\'':
		return shapeString
	case '[':
		return shapeList
	case '{':
		if end := matchClose(win, i); end >= 0 {
			return braceShape(win[i : end+1])
		}
		return shapeDict
	}
	return shapeUnknown
}

// matchClose scans forward from the opening brace at i for its closer.
func matchClose(win string, i int) int {
	depth := 0
	for ; i < len(win); i++ {
		switch win[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// inImportStatement reports whether the token at pos sits in an import or
// from-import statement.
func inImportStatement(win string, pos int) bool {
	lineStart := strings.LastIndexByte(win[:pos], '\n') + 1
	line := win[lineStart:pos]
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "from ") {
		return true
	}
	if strings.HasPrefix(trimmed, "import ") || trimmed == "import" {
		return true
	}
	return strings.Contains(line, " import ")
}

// insideAsyncDef reports whether the token at pos is enclosed by an
// async-marked function boundary. The nearest enclosing def is the first
// line above with strictly smaller indentation that opens a function.
func insideAsyncDef(win string, pos int) bool {
	lineStart := strings.LastIndexByte(win[:pos], '\n') + 1
	indent := indentWidth(win[lineStart:pos])

	rest := win[:lineStart]
	for len(rest) > 0 {
		prevStart := strings.LastIndexByte(rest[:len(rest)-1], '\n') + 1
		line := strings.TrimRight(rest[prevStart:], "\n")
		rest = rest[:prevStart]

		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		w := indentWidth(line)
		if w >= indent {
			continue
		}
		if strings.HasPrefix(trimmed, "async def ") {
			return true
		}
		if strings.HasPrefix(trimmed, "def ") || strings.HasPrefix(trimmed, "class ") {
			return false
		}
		indent = w
	}
	return false
}

func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 8
		default:
			return w
		}
	}
	return w
}
