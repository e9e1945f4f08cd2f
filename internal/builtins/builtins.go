package builtins

import (
	"sort"

	"github.com/ucodekit/ucls/internal/symbols"
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

// table maps every always-available global function to its signature. It is
// populated once at init and read-only afterwards, so it is safe to share
// across concurrently analyzed documents.
var table map[string]ts.Signature

func init() {
	str := ts.String
	strOrNull := ts.Union(ts.String, ts.Null)
	intOrNull := ts.Union(ts.Integer, ts.Null)
	arrOrNull := ts.Union(ts.Array, ts.Null)
	objOrNull := ts.Union(ts.Object, ts.Null)
	num := ts.Union(ts.Double, ts.Integer)
	anyT := ts.Unknown

	table = map[string]ts.Signature{
		// String primitives
		"length":  {Params: []ts.Type{ts.Union(ts.Array, ts.Object, ts.String)}, Required: 1, Return: intOrNull},
		"substr":  {Params: []ts.Type{str, ts.Integer, ts.Integer}, Required: 2, Return: strOrNull},
		"index":   {Params: []ts.Type{ts.Union(ts.Array, ts.String), anyT}, Required: 2, Return: intOrNull},
		"rindex":  {Params: []ts.Type{ts.Union(ts.Array, ts.String), anyT}, Required: 2, Return: intOrNull},
		"match":   {Params: []ts.Type{str, ts.Regex}, Required: 2, Return: arrOrNull},
		"split":   {Params: []ts.Type{str, ts.Union(ts.Regex, ts.String), ts.Integer}, Required: 2, Return: arrOrNull},
		"replace": {Params: []ts.Type{str, ts.Union(ts.Regex, ts.String), ts.Union(ts.Function, ts.String), ts.Integer}, Required: 3, Return: strOrNull},
		"join":    {Params: []ts.Type{str, ts.Array}, Required: 2, Return: strOrNull},
		"trim":    {Params: []ts.Type{str, str}, Required: 1, Return: strOrNull},
		"ltrim":   {Params: []ts.Type{str, str}, Required: 1, Return: strOrNull},
		"rtrim":   {Params: []ts.Type{str, str}, Required: 1, Return: strOrNull},
		"lc":      {Params: []ts.Type{str}, Required: 1, Return: strOrNull},
		"uc":      {Params: []ts.Type{str}, Required: 1, Return: strOrNull},
		"chr":     {Params: []ts.Type{ts.Integer}, Required: 0, Variadic: true, Return: str},
		"uchr":    {Params: []ts.Type{ts.Integer}, Required: 0, Variadic: true, Return: strOrNull},
		"ord":     {Params: []ts.Type{str, ts.Integer}, Required: 1, Return: intOrNull},
		"sprintf": {Params: []ts.Type{str, anyT}, Required: 1, Variadic: true, Return: str},
		"regexp":  {Params: []ts.Type{str, str}, Required: 1, Return: ts.Union(ts.Regex, ts.Null)},
		"wildcard": {
			Params:   []ts.Type{anyT, str, ts.Boolean},
			Required: 2,
			Return:   ts.Union(ts.Boolean, ts.Null),
		},

		// Array primitives
		"push":    {Params: []ts.Type{ts.Array, anyT}, Required: 2, Variadic: true, Return: anyT},
		"pop":     {Params: []ts.Type{ts.Array}, Required: 1, Return: anyT},
		"shift":   {Params: []ts.Type{ts.Array}, Required: 1, Return: anyT},
		"unshift": {Params: []ts.Type{ts.Array, anyT}, Required: 2, Variadic: true, Return: anyT},
		"slice":   {Params: []ts.Type{ts.Array, ts.Integer, ts.Integer}, Required: 1, Return: arrOrNull},
		"splice":  {Params: []ts.Type{ts.Array, ts.Integer, ts.Integer, anyT}, Required: 2, Variadic: true, Return: arrOrNull},
		"sort":    {Params: []ts.Type{ts.Array, ts.Function}, Required: 1, Return: arrOrNull},
		"reverse": {Params: []ts.Type{ts.Union(ts.Array, ts.String)}, Required: 1, Return: ts.Union(ts.Array, ts.Null, ts.String)},
		"filter":  {Params: []ts.Type{ts.Array, ts.Function}, Required: 2, Return: arrOrNull},
		"map":     {Params: []ts.Type{ts.Array, ts.Function}, Required: 2, Return: arrOrNull},
		"uniq":    {Params: []ts.Type{ts.Array}, Required: 1, Return: arrOrNull},

		// Object primitives
		"keys":   {Params: []ts.Type{ts.Object}, Required: 1, Return: arrOrNull},
		"values": {Params: []ts.Type{ts.Object}, Required: 1, Return: arrOrNull},
		"exists": {Params: []ts.Type{ts.Object, str}, Required: 2, Return: ts.Boolean},
		"proto":  {Params: []ts.Type{anyT, ts.Object}, Required: 1, Return: anyT},

		// Output and control
		"print":  {Params: []ts.Type{anyT}, Required: 0, Variadic: true, Return: ts.Integer},
		"printf": {Params: []ts.Type{str, anyT}, Required: 1, Variadic: true, Return: ts.Integer},
		"warn":   {Params: []ts.Type{anyT}, Required: 0, Variadic: true, Return: ts.Integer},
		"die":    {Params: []ts.Type{str}, Required: 0, Return: ts.Null},
		"exit":   {Params: []ts.Type{ts.Integer}, Required: 0, Return: ts.Null},
		"assert": {Params: []ts.Type{anyT, str}, Required: 1, Return: anyT},
		"call":   {Params: []ts.Type{ts.Function, anyT}, Required: 1, Variadic: true, Return: anyT},
		"signal": {Params: []ts.Type{ts.Union(ts.Integer, ts.String), ts.Union(ts.Function, ts.String)}, Required: 1, Return: anyT},
		"system": {Params: []ts.Type{ts.Union(ts.Array, ts.String), ts.Integer}, Required: 1, Return: intOrNull},
		"sleep":  {Params: []ts.Type{ts.Integer}, Required: 1, Return: ts.Boolean},
		"gc":     {Params: []ts.Type{str, ts.Integer}, Required: 0, Return: ts.Union(ts.Boolean, ts.Integer, ts.Null)},

		// Conversion and introspection
		"int":  {Params: []ts.Type{anyT}, Required: 1, Return: ts.Union(ts.Double, ts.Integer)},
		"hex":  {Params: []ts.Type{anyT}, Required: 1, Return: ts.Union(ts.Double, ts.Integer)},
		"type": {Params: []ts.Type{anyT}, Required: 1, Return: strOrNull},
		"min":  {Params: []ts.Type{anyT}, Required: 0, Variadic: true, Return: anyT},
		"max":  {Params: []ts.Type{anyT}, Required: 0, Variadic: true, Return: anyT},
		"json": {Params: []ts.Type{anyT}, Required: 1, Return: anyT},

		// Math
		"abs":   {Params: []ts.Type{anyT}, Required: 1, Return: ts.Union(ts.Double, ts.Integer)},
		"ceil":  {Params: []ts.Type{num}, Required: 1, Return: ts.Union(ts.Double, ts.Integer)},
		"floor": {Params: []ts.Type{num}, Required: 1, Return: ts.Union(ts.Double, ts.Integer)},
		"pow":   {Params: []ts.Type{num, num}, Required: 2, Return: ts.Double},
		"sqrt":  {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
		"exp":   {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
		"log":   {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
		"sin":   {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
		"cos":   {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
		"atan2": {Params: []ts.Type{num, num}, Required: 2, Return: ts.Double},
		"rand":  {Return: ts.Integer},
		"srand": {Params: []ts.Type{ts.Integer}, Required: 1, Return: ts.Null},
		"isnan": {Params: []ts.Type{num}, Required: 1, Return: ts.Boolean},

		// Time
		"time":      {Return: ts.Integer},
		"clock":     {Params: []ts.Type{ts.Boolean}, Required: 0, Return: arrOrNull},
		"localtime": {Params: []ts.Type{ts.Integer}, Required: 0, Return: objOrNull},
		"gmtime":    {Params: []ts.Type{ts.Integer}, Required: 0, Return: objOrNull},
		"timelocal": {Params: []ts.Type{ts.Object}, Required: 1, Return: intOrNull},
		"timegm":    {Params: []ts.Type{ts.Object}, Required: 1, Return: intOrNull},

		// Encoding
		"b64enc": {Params: []ts.Type{str}, Required: 1, Return: strOrNull},
		"b64dec": {Params: []ts.Type{str}, Required: 1, Return: strOrNull},
		"hexenc": {Params: []ts.Type{str}, Required: 1, Return: strOrNull},
		"hexdec": {Params: []ts.Type{str, str}, Required: 1, Return: strOrNull},
		"iptoarr": {
			Params:   []ts.Type{str},
			Required: 1,
			Return:   arrOrNull,
		},
		"arrtoip": {Params: []ts.Type{ts.Array}, Required: 1, Return: strOrNull},

		// Loading
		"require":    {Params: []ts.Type{str}, Required: 1, Return: objOrNull},
		"include":    {Params: []ts.Type{str, ts.Object}, Required: 1, Return: anyT},
		"render":     {Params: []ts.Type{str, ts.Object}, Required: 1, Return: str},
		"loadstring": {Params: []ts.Type{str, ts.Object}, Required: 1, Return: ts.Union(ts.Function, ts.Null)},
		"loadfile":   {Params: []ts.Type{str, ts.Object}, Required: 1, Return: ts.Union(ts.Function, ts.Null)},
		"sourcepath": {Params: []ts.Type{ts.Integer, ts.Boolean}, Required: 0, Return: strOrNull},
		"getenv":     {Params: []ts.Type{str}, Required: 0, Return: ts.Union(ts.Object, ts.String, ts.Null)},
	}
}

// Lookup returns the signature of a builtin function.
func Lookup(name string) (ts.Signature, bool) {
	sig, ok := table[name]
	return sig, ok
}

// Names returns the sorted builtin function names.
func Names() []string {
	out := make([]string, 0, len(table))
	for name := range table {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Register seeds the permanent global scope with every builtin function and
// the language globals.
func Register(st *symbols.SymbolTable) {
	for name := range table {
		st.Declare(name, symbols.BuiltinSymbol, ts.Function, 0)
	}
	st.Declare("ARGV", symbols.BuiltinSymbol, ts.Array, 0)
	st.Declare("SCRIPT_NAME", symbols.BuiltinSymbol, ts.Union(ts.Null, ts.String), 0)
	st.Declare("REQUIRE_SEARCH_PATH", symbols.BuiltinSymbol, ts.Array, 0)
	st.Declare("global", symbols.BuiltinSymbol, ts.Object, 0)
	st.Declare("NaN", symbols.BuiltinSymbol, ts.Double, 0)
	st.Declare("Infinity", symbols.BuiltinSymbol, ts.Double, 0)
}
