package modules

import (
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

// StructInstance is the handle type produced by struct.new.
const StructInstance = "struct.instance"

func (r *Registry) registerStruct() {
	instance := ts.ModuleType{Name: StructInstance}
	strOrNull := ts.Union(ts.String, ts.Null)
	arrOrNull := ts.Union(ts.Array, ts.Null)

	r.register(&Module{
		Name: "struct",
		Functions: map[string]ts.Signature{
			"pack":   {Params: []ts.Type{ts.String, ts.Unknown}, Required: 1, Variadic: true, Return: strOrNull},
			"unpack": {Params: []ts.Type{ts.String, ts.String, ts.Integer}, Required: 2, Return: arrOrNull},
			"new":    {Params: []ts.Type{ts.String}, Required: 1, Return: ts.NullableModule{Handle: instance}},
		},
	})

	r.registerHandle(StructInstance, map[string]ts.Signature{
		"pack":   {Params: []ts.Type{ts.Unknown}, Required: 0, Variadic: true, Return: strOrNull},
		"unpack": {Params: []ts.Type{ts.String, ts.Integer}, Required: 1, Return: arrOrNull},
	})
}

func (r *Registry) registerLog() {
	boolType := ts.Boolean

	r.register(&Module{
		Name: "log",
		Functions: map[string]ts.Signature{
			"openlog":  {Params: []ts.Type{ts.String, ts.Union(ts.Integer, ts.String), ts.Union(ts.Integer, ts.String)}, Required: 0, Variadic: true, Return: boolType},
			"syslog":   {Params: []ts.Type{ts.Union(ts.Integer, ts.String), ts.String, ts.Unknown}, Required: 2, Variadic: true, Return: boolType},
			"closelog": {Return: ts.Null},
			"ulog_open": {
				Params:   []ts.Type{ts.Union(ts.Integer, ts.String, ts.Array), ts.String, ts.String},
				Required: 0,
				Return:   boolType,
			},
			"ulog":       {Params: []ts.Type{ts.Union(ts.Integer, ts.String), ts.String, ts.Unknown}, Required: 2, Variadic: true, Return: boolType},
			"ulog_close": {Return: ts.Null},
			"INFO":       {Params: []ts.Type{ts.String, ts.Unknown}, Required: 1, Variadic: true, Return: boolType},
			"NOTE":       {Params: []ts.Type{ts.String, ts.Unknown}, Required: 1, Variadic: true, Return: boolType},
			"WARN":       {Params: []ts.Type{ts.String, ts.Unknown}, Required: 1, Variadic: true, Return: boolType},
			"ERR":        {Params: []ts.Type{ts.String, ts.Unknown}, Required: 1, Variadic: true, Return: boolType},
		},
	})
}

func (r *Registry) registerDebug() {
	strOrNull := ts.Union(ts.String, ts.Null)
	objOrNull := ts.Union(ts.Object, ts.Null)
	boolOrNull := ts.Union(ts.Boolean, ts.Null)

	r.register(&Module{
		Name: "debug",
		Functions: map[string]ts.Signature{
			"memdump":   {Params: []ts.Type{ts.String}, Required: 1, Return: boolOrNull},
			"traceback": {Params: []ts.Type{ts.Integer}, Required: 0, Return: ts.Union(ts.Array, ts.Null)},
			"sourcepos": {Return: objOrNull},
			"getinfo":   {Params: []ts.Type{ts.Unknown}, Required: 1, Return: objOrNull},
			"getlocal":  {Params: []ts.Type{ts.Integer, ts.Union(ts.Integer, ts.String)}, Required: 2, Return: objOrNull},
			"setlocal":  {Params: []ts.Type{ts.Integer, ts.Union(ts.Integer, ts.String), ts.Unknown}, Required: 2, Return: objOrNull},
			"getupval":  {Params: []ts.Type{ts.Union(ts.Function, ts.Integer), ts.Union(ts.Integer, ts.String)}, Required: 2, Return: objOrNull},
			"setupval":  {Params: []ts.Type{ts.Union(ts.Function, ts.Integer), ts.Union(ts.Integer, ts.String), ts.Unknown}, Required: 3, Return: objOrNull},
			"sourcepath": {
				Params:   []ts.Type{ts.Integer, ts.Boolean},
				Required: 0,
				Return:   strOrNull,
			},
		},
	})
}

func (r *Registry) registerMath() {
	num := ts.Union(ts.Double, ts.Integer)

	r.register(&Module{
		Name: "math",
		Functions: map[string]ts.Signature{
			"abs":   {Params: []ts.Type{ts.Unknown}, Required: 1, Return: num},
			"atan2": {Params: []ts.Type{num, num}, Required: 2, Return: ts.Double},
			"cos":   {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
			"sin":   {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
			"exp":   {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
			"log":   {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
			"sqrt":  {Params: []ts.Type{num}, Required: 1, Return: ts.Double},
			"pow":   {Params: []ts.Type{num, num}, Required: 2, Return: ts.Double},
			"rand":  {Return: ts.Integer},
			"srand": {Params: []ts.Type{ts.Integer}, Required: 1, Return: ts.Null},
			"isnan": {Params: []ts.Type{num}, Required: 1, Return: ts.Boolean},
		},
	})
}
