// Package pydict bundles a static Python symbol dictionary mapping
// (symbol, category) pairs to docs.python.org identifiers. The core treats
// it as an injected read-only collaborator; hosts may supply their own.
package pydict

import (
	"sort"

	"github.com/KiidxAtlas/pyhover"
)

// Ensure Dictionary implements pyhover.Dictionary at compile time.
var _ pyhover.Dictionary = (*Dictionary)(nil)

// Dictionary is an immutable symbol table.
type Dictionary struct {
	entries map[pyhover.Category]map[string]pyhover.DictionaryEntry
}

// New returns the bundled dictionary.
func New() *Dictionary {
	d := &Dictionary{entries: make(map[pyhover.Category]map[string]pyhover.DictionaryEntry)}
	d.add(pyhover.CategoryKeyword, keywords)
	d.add(pyhover.CategoryBuiltin, builtins)
	d.add(pyhover.CategoryStringMethod, strMethods)
	d.add(pyhover.CategoryListMethod, listMethods)
	d.add(pyhover.CategoryDictMethod, dictMethods)
	d.add(pyhover.CategorySetMethod, setMethods)
	d.add(pyhover.CategoryModule, modules)
	d.add(pyhover.CategoryOther, others)
	return d
}

func (d *Dictionary) add(cat pyhover.Category, table map[string]pyhover.DictionaryEntry) {
	d.entries[cat] = table
}

// Lookup returns the entry for a symbol in a category, if known.
func (d *Dictionary) Lookup(symbol string, category pyhover.Category) (pyhover.DictionaryEntry, bool) {
	entry, ok := d.entries[category][symbol]
	return entry, ok
}

// Symbols returns every known symbol name, across categories, sorted and
// without duplicates.
func (d *Dictionary) Symbols() []string {
	seen := make(map[string]bool)
	for _, table := range d.entries {
		for symbol := range table {
			seen[symbol] = true
		}
	}
	out := make([]string, 0, len(seen))
	for symbol := range seen {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

func entry(slug, summary string) pyhover.DictionaryEntry {
	return pyhover.DictionaryEntry{Slug: slug, Summary: summary}
}

var keywords = map[string]pyhover.DictionaryEntry{
	"False":    entry("library/constants.html#False", "Boolean false constant"),
	"None":     entry("library/constants.html#None", "The sole value of NoneType"),
	"True":     entry("library/constants.html#True", "Boolean true constant"),
	"and":      entry("reference/expressions.html#and", "Boolean AND"),
	"as":       entry("reference/compound_stmts.html#as", "Binding alias in import/with/except"),
	"assert":   entry("reference/simple_stmts.html#assert", "Debugging assertion"),
	"async":    entry("reference/compound_stmts.html#async", "Coroutine definition marker"),
	"await":    entry("reference/expressions.html#await", "Suspend until awaitable completes"),
	"break":    entry("reference/simple_stmts.html#break", "Exit the nearest loop"),
	"class":    entry("reference/compound_stmts.html#class", "Class definition"),
	"continue": entry("reference/simple_stmts.html#continue", "Next loop iteration"),
	"def":      entry("reference/compound_stmts.html#function-definitions", "Function definition"),
	"del":      entry("reference/simple_stmts.html#del", "Unbind a name or item"),
	"elif":     entry("reference/compound_stmts.html#elif", "Conditional alternative"),
	"else":     entry("reference/compound_stmts.html#else", "Conditional fallback"),
	"except":   entry("reference/compound_stmts.html#except", "Exception handler clause"),
	"finally":  entry("reference/compound_stmts.html#finally", "Cleanup clause"),
	"for":      entry("reference/compound_stmts.html#for", "Iteration over an iterable"),
	"from":     entry("reference/simple_stmts.html#from", "Import names from a module"),
	"global":   entry("reference/simple_stmts.html#global", "Declare module-level binding"),
	"if":       entry("reference/compound_stmts.html#if", "Conditional execution"),
	"import":   entry("reference/simple_stmts.html#import", "Module import"),
	"in":       entry("reference/expressions.html#in", "Membership test"),
	"is":       entry("reference/expressions.html#is-not", "Identity comparison"),
	"lambda":   entry("reference/expressions.html#lambda", "Anonymous function"),
	"nonlocal": entry("reference/simple_stmts.html#nonlocal", "Declare enclosing-scope binding"),
	"not":      entry("reference/expressions.html#not", "Boolean NOT"),
	"or":       entry("reference/expressions.html#or", "Boolean OR"),
	"pass":     entry("reference/simple_stmts.html#pass", "No-op statement"),
	"raise":    entry("reference/simple_stmts.html#raise", "Raise an exception"),
	"return":   entry("reference/simple_stmts.html#return", "Return from a function"),
	"try":      entry("reference/compound_stmts.html#try", "Exception handling block"),
	"while":    entry("reference/compound_stmts.html#while", "Conditional loop"),
	"with":     entry("reference/compound_stmts.html#with", "Context manager block"),
	"yield":    entry("reference/simple_stmts.html#yield", "Produce a generator value"),
}

var builtins = map[string]pyhover.DictionaryEntry{
	"abs":        entry("library/functions.html#abs", "Absolute value"),
	"all":        entry("library/functions.html#all", "True if every element is truthy"),
	"any":        entry("library/functions.html#any", "True if any element is truthy"),
	"bin":        entry("library/functions.html#bin", "Binary string of an integer"),
	"bool":       entry("library/functions.html#bool", "Boolean constructor"),
	"bytes":      entry("library/stdtypes.html#bytes", "Immutable byte sequence"),
	"callable":   entry("library/functions.html#callable", "True if object is callable"),
	"chr":        entry("library/functions.html#chr", "Character for a code point"),
	"dict":       entry("library/stdtypes.html#dict", "Mapping constructor"),
	"dir":        entry("library/functions.html#dir", "Attribute listing"),
	"divmod":     entry("library/functions.html#divmod", "Quotient and remainder"),
	"enumerate":  entry("library/functions.html#enumerate", "Indexed iteration"),
	"filter":     entry("library/functions.html#filter", "Filter an iterable"),
	"float":      entry("library/functions.html#float", "Floating point constructor"),
	"format":     entry("library/functions.html#format", "Format a value"),
	"frozenset":  entry("library/stdtypes.html#frozenset", "Immutable set constructor"),
	"getattr":    entry("library/functions.html#getattr", "Named attribute access"),
	"hasattr":    entry("library/functions.html#hasattr", "Attribute existence test"),
	"hash":       entry("library/functions.html#hash", "Hash value"),
	"hex":        entry("library/functions.html#hex", "Hexadecimal string of an integer"),
	"id":         entry("library/functions.html#id", "Object identity"),
	"input":      entry("library/functions.html#input", "Read a line from stdin"),
	"int":        entry("library/functions.html#int", "Integer constructor"),
	"isinstance": entry("library/functions.html#isinstance", "Type test"),
	"issubclass": entry("library/functions.html#issubclass", "Subclass test"),
	"iter":       entry("library/functions.html#iter", "Iterator over an iterable"),
	"len":        entry("library/functions.html#len", "Number of items"),
	"list":       entry("library/stdtypes.html#list", "List constructor"),
	"map":        entry("library/functions.html#map", "Apply a function to an iterable"),
	"max":        entry("library/functions.html#max", "Largest item"),
	"min":        entry("library/functions.html#min", "Smallest item"),
	"next":       entry("library/functions.html#next", "Next item from an iterator"),
	"open":       entry("library/functions.html#open", "Open a file"),
	"ord":        entry("library/functions.html#ord", "Code point of a character"),
	"pow":        entry("library/functions.html#pow", "Exponentiation"),
	"print":      entry("library/functions.html#print", "Write to stdout"),
	"range":      entry("library/stdtypes.html#range", "Arithmetic progression"),
	"repr":       entry("library/functions.html#repr", "Printable representation"),
	"reversed":   entry("library/functions.html#reversed", "Reverse iterator"),
	"round":      entry("library/functions.html#round", "Round a number"),
	"set":        entry("library/stdtypes.html#set", "Set constructor"),
	"setattr":    entry("library/functions.html#setattr", "Named attribute assignment"),
	"sorted":     entry("library/functions.html#sorted", "Sorted list from an iterable"),
	"str":        entry("library/stdtypes.html#str", "String constructor"),
	"sum":        entry("library/functions.html#sum", "Sum of an iterable"),
	"tuple":      entry("library/stdtypes.html#tuple", "Immutable sequence constructor"),
	"type":       entry("library/functions.html#type", "Type of an object"),
	"vars":       entry("library/functions.html#vars", "__dict__ of an object"),
	"zip":        entry("library/functions.html#zip", "Parallel iteration"),
}

var strMethods = map[string]pyhover.DictionaryEntry{
	"capitalize":   entry("library/stdtypes.html#str.capitalize", "First character upper-cased"),
	"casefold":     entry("library/stdtypes.html#str.casefold", "Aggressive lower-casing"),
	"center":       entry("library/stdtypes.html#str.center", "Center in a field"),
	"count":        entry("library/stdtypes.html#str.count", "Non-overlapping occurrences"),
	"encode":       entry("library/stdtypes.html#str.encode", "Encode to bytes"),
	"endswith":     entry("library/stdtypes.html#str.endswith", "Suffix test"),
	"expandtabs":   entry("library/stdtypes.html#str.expandtabs", "Replace tabs with spaces"),
	"find":         entry("library/stdtypes.html#str.find", "Lowest index of a substring"),
	"format":       entry("library/stdtypes.html#str.format", "Format with replacement fields"),
	"format_map":   entry("library/stdtypes.html#str.format_map", "Format from a mapping"),
	"index":        entry("library/stdtypes.html#str.index", "Lowest index, raising on miss"),
	"isalnum":      entry("library/stdtypes.html#str.isalnum", "Alphanumeric test"),
	"isalpha":      entry("library/stdtypes.html#str.isalpha", "Alphabetic test"),
	"isascii":      entry("library/stdtypes.html#str.isascii", "ASCII test"),
	"isdecimal":    entry("library/stdtypes.html#str.isdecimal", "Decimal digit test"),
	"isdigit":      entry("library/stdtypes.html#str.isdigit", "Digit test"),
	"isidentifier": entry("library/stdtypes.html#str.isidentifier", "Identifier test"),
	"islower":      entry("library/stdtypes.html#str.islower", "Lower-case test"),
	"isnumeric":    entry("library/stdtypes.html#str.isnumeric", "Numeric test"),
	"isspace":      entry("library/stdtypes.html#str.isspace", "Whitespace test"),
	"istitle":      entry("library/stdtypes.html#str.istitle", "Title-case test"),
	"isupper":      entry("library/stdtypes.html#str.isupper", "Upper-case test"),
	"join":         entry("library/stdtypes.html#str.join", "Concatenate with separator"),
	"ljust":        entry("library/stdtypes.html#str.ljust", "Left-justify in a field"),
	"lower":        entry("library/stdtypes.html#str.lower", "Lower-cased copy"),
	"lstrip":       entry("library/stdtypes.html#str.lstrip", "Strip leading characters"),
	"partition":    entry("library/stdtypes.html#str.partition", "Split at first separator"),
	"removeprefix": entry("library/stdtypes.html#str.removeprefix", "Drop a leading prefix"),
	"removesuffix": entry("library/stdtypes.html#str.removesuffix", "Drop a trailing suffix"),
	"replace":      entry("library/stdtypes.html#str.replace", "Substring replacement"),
	"rfind":        entry("library/stdtypes.html#str.rfind", "Highest index of a substring"),
	"rindex":       entry("library/stdtypes.html#str.rindex", "Highest index, raising on miss"),
	"rjust":        entry("library/stdtypes.html#str.rjust", "Right-justify in a field"),
	"rsplit":       entry("library/stdtypes.html#str.rsplit", "Split from the right"),
	"rstrip":       entry("library/stdtypes.html#str.rstrip", "Strip trailing characters"),
	"split":        entry("library/stdtypes.html#str.split", "Split into a list"),
	"splitlines":   entry("library/stdtypes.html#str.splitlines", "Split at line boundaries"),
	"startswith":   entry("library/stdtypes.html#str.startswith", "Prefix test"),
	"strip":        entry("library/stdtypes.html#str.strip", "Strip surrounding characters"),
	"swapcase":     entry("library/stdtypes.html#str.swapcase", "Swap character case"),
	"title":        entry("library/stdtypes.html#str.title", "Title-cased copy"),
	"upper":        entry("library/stdtypes.html#str.upper", "Upper-cased copy"),
	"zfill":        entry("library/stdtypes.html#str.zfill", "Zero-pad on the left"),
}

var listMethods = map[string]pyhover.DictionaryEntry{
	"append":  entry("library/stdtypes.html#list.append", "Add an item at the end"),
	"clear":   entry("library/stdtypes.html#list.clear", "Remove all items"),
	"copy":    entry("library/stdtypes.html#list.copy", "Shallow copy"),
	"count":   entry("library/stdtypes.html#list.count", "Occurrences of a value"),
	"extend":  entry("library/stdtypes.html#list.extend", "Append items from an iterable"),
	"index":   entry("library/stdtypes.html#list.index", "Index of a value"),
	"insert":  entry("library/stdtypes.html#list.insert", "Insert at a position"),
	"pop":     entry("library/stdtypes.html#list.pop", "Remove and return an item"),
	"remove":  entry("library/stdtypes.html#list.remove", "Remove first occurrence"),
	"reverse": entry("library/stdtypes.html#list.reverse", "Reverse in place"),
	"sort":    entry("library/stdtypes.html#list.sort", "Sort in place"),
}

var dictMethods = map[string]pyhover.DictionaryEntry{
	"clear":      entry("library/stdtypes.html#dict.clear", "Remove all items"),
	"copy":       entry("library/stdtypes.html#dict.copy", "Shallow copy"),
	"fromkeys":   entry("library/stdtypes.html#dict.fromkeys", "New dict from keys"),
	"get":        entry("library/stdtypes.html#dict.get", "Value with a default"),
	"items":      entry("library/stdtypes.html#dict.items", "View of (key, value) pairs"),
	"keys":       entry("library/stdtypes.html#dict.keys", "View of keys"),
	"pop":        entry("library/stdtypes.html#dict.pop", "Remove and return by key"),
	"popitem":    entry("library/stdtypes.html#dict.popitem", "Remove and return a pair"),
	"setdefault": entry("library/stdtypes.html#dict.setdefault", "Get or insert a default"),
	"update":     entry("library/stdtypes.html#dict.update", "Merge another mapping"),
	"values":     entry("library/stdtypes.html#dict.values", "View of values"),
}

var setMethods = map[string]pyhover.DictionaryEntry{
	"add":                  entry("library/stdtypes.html#frozenset.add", "Add an element"),
	"clear":                entry("library/stdtypes.html#frozenset.clear", "Remove all elements"),
	"copy":                 entry("library/stdtypes.html#frozenset.copy", "Shallow copy"),
	"difference":           entry("library/stdtypes.html#frozenset.difference", "Elements not in others"),
	"difference_update":    entry("library/stdtypes.html#frozenset.difference_update", "Remove elements found in others"),
	"discard":              entry("library/stdtypes.html#frozenset.discard", "Remove if present"),
	"intersection":         entry("library/stdtypes.html#frozenset.intersection", "Elements common to all"),
	"intersection_update":  entry("library/stdtypes.html#frozenset.intersection_update", "Keep only common elements"),
	"isdisjoint":           entry("library/stdtypes.html#frozenset.isdisjoint", "No common elements test"),
	"issubset":             entry("library/stdtypes.html#frozenset.issubset", "Subset test"),
	"issuperset":           entry("library/stdtypes.html#frozenset.issuperset", "Superset test"),
	"pop":                  entry("library/stdtypes.html#frozenset.pop", "Remove and return an element"),
	"remove":               entry("library/stdtypes.html#frozenset.remove", "Remove, raising on miss"),
	"symmetric_difference": entry("library/stdtypes.html#frozenset.symmetric_difference", "Elements in exactly one set"),
	"union":                entry("library/stdtypes.html#frozenset.union", "Elements from all sets"),
	"update":               entry("library/stdtypes.html#frozenset.update", "Add elements from others"),
}

var modules = map[string]pyhover.DictionaryEntry{
	"argparse":    entry("library/argparse.html", "Command-line argument parsing"),
	"asyncio":     entry("library/asyncio.html", "Asynchronous I/O"),
	"base64":      entry("library/base64.html", "Base16/32/64 encodings"),
	"collections": entry("library/collections.html", "Container datatypes"),
	"copy":        entry("library/copy.html", "Shallow and deep copies"),
	"csv":         entry("library/csv.html", "CSV file reading and writing"),
	"dataclasses": entry("library/dataclasses.html", "Data class decorator"),
	"datetime":    entry("library/datetime.html", "Date and time handling"),
	"decimal":     entry("library/decimal.html", "Decimal fixed/floating arithmetic"),
	"enum":        entry("library/enum.html", "Enumeration support"),
	"functools":   entry("library/functools.html", "Higher-order functions"),
	"glob":        entry("library/glob.html", "Unix-style pathname expansion"),
	"gzip":        entry("library/gzip.html", "Gzip file support"),
	"hashlib":     entry("library/hashlib.html", "Secure hashes and digests"),
	"heapq":       entry("library/heapq.html", "Heap queue algorithm"),
	"html":        entry("library/html.html", "HTML support"),
	"http":        entry("library/http.html", "HTTP modules"),
	"importlib":   entry("library/importlib.html", "Import machinery"),
	"inspect":     entry("library/inspect.html", "Live object inspection"),
	"io":          entry("library/io.html", "Core stream tools"),
	"itertools":   entry("library/itertools.html", "Iterator building blocks"),
	"json":        entry("library/json.html", "JSON encoder and decoder"),
	"logging":     entry("library/logging.html", "Logging facility"),
	"math":        entry("library/math.html", "Mathematical functions"),
	"os":          entry("library/os.html", "Operating system interfaces"),
	"path":        entry("library/os.path.html", "Pathname manipulations"),
	"pathlib":     entry("library/pathlib.html", "Object-oriented filesystem paths"),
	"pickle":      entry("library/pickle.html", "Python object serialization"),
	"queue":       entry("library/queue.html", "Synchronized queues"),
	"random":      entry("library/random.html", "Pseudo-random numbers"),
	"re":          entry("library/re.html", "Regular expressions"),
	"secrets":     entry("library/secrets.html", "Cryptographic randomness"),
	"shutil":      entry("library/shutil.html", "High-level file operations"),
	"socket":      entry("library/socket.html", "Low-level networking"),
	"sqlite3":     entry("library/sqlite3.html", "SQLite database interface"),
	"statistics":  entry("library/statistics.html", "Statistics functions"),
	"string":      entry("library/string.html", "Common string operations"),
	"subprocess":  entry("library/subprocess.html", "Subprocess management"),
	"sys":         entry("library/sys.html", "Interpreter parameters"),
	"tempfile":    entry("library/tempfile.html", "Temporary files and directories"),
	"threading":   entry("library/threading.html", "Thread-based parallelism"),
	"time":        entry("library/time.html", "Time access and conversions"),
	"typing":      entry("library/typing.html", "Type hint support"),
	"unittest":    entry("library/unittest.html", "Unit testing framework"),
	"urllib":      entry("library/urllib.html", "URL handling"),
	"uuid":        entry("library/uuid.html", "UUID objects"),
	"xml":         entry("library/xml.html", "XML processing"),
	"zipfile":     entry("library/zipfile.html", "ZIP archive support"),
}

var others = map[string]pyhover.DictionaryEntry{
	"__init__":     entry("reference/datamodel.html#object.__init__", "Instance initializer"),
	"__main__":     entry("library/__main__.html", "Top-level code environment"),
	"__name__":     entry("reference/import.html#name__", "Module name binding"),
	"__repr__":     entry("reference/datamodel.html#object.__repr__", "Printable representation hook"),
	"__str__":      entry("reference/datamodel.html#object.__str__", "Informal string hook"),
	"self":         entry("tutorial/classes.html#random-remarks", "Conventional instance receiver"),
	"str":          entry("library/stdtypes.html#str", "Text sequence type"),
	"Ellipsis":     entry("library/constants.html#Ellipsis", "The ... constant"),
	"NotImplemented": entry("library/constants.html#NotImplemented", "Unsupported-operation sentinel"),
}
