package modules

import (
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

// Handle type names produced by fs factory functions.
const (
	FsFile = "fs.file"
	FsDir  = "fs.dir"
	FsProc = "fs.proc"
)

func (r *Registry) registerFs() {
	fileHandle := ts.ModuleType{Name: FsFile}
	dirHandle := ts.ModuleType{Name: FsDir}
	procHandle := ts.ModuleType{Name: FsProc}

	strOrNull := ts.Union(ts.String, ts.Null)
	intOrNull := ts.Union(ts.Integer, ts.Null)
	objOrNull := ts.Union(ts.Object, ts.Null)
	arrOrNull := ts.Union(ts.Array, ts.Null)
	boolOrNull := ts.Union(ts.Boolean, ts.Null)

	r.register(&Module{
		Name: "fs",
		Functions: map[string]ts.Signature{
			"error":    {Return: strOrNull},
			"open":     {Params: []ts.Type{ts.String, ts.String, ts.Integer}, Required: 1, Return: ts.NullableModule{Handle: fileHandle}},
			"fdopen":   {Params: []ts.Type{ts.Integer, ts.String}, Required: 1, Return: ts.NullableModule{Handle: fileHandle}},
			"opendir":  {Params: []ts.Type{ts.String}, Required: 1, Return: ts.NullableModule{Handle: dirHandle}},
			"popen":    {Params: []ts.Type{ts.String, ts.String}, Required: 1, Return: ts.NullableModule{Handle: procHandle}},
			"readlink": {Params: []ts.Type{ts.String}, Required: 1, Return: strOrNull},
			"stat":     {Params: []ts.Type{ts.String}, Required: 1, Return: objOrNull},
			"lstat":    {Params: []ts.Type{ts.String}, Required: 1, Return: objOrNull},
			"mkdir":    {Params: []ts.Type{ts.String, ts.Integer}, Required: 1, Return: boolOrNull},
			"rmdir":    {Params: []ts.Type{ts.String}, Required: 1, Return: boolOrNull},
			"symlink":  {Params: []ts.Type{ts.String, ts.String}, Required: 2, Return: boolOrNull},
			"unlink":   {Params: []ts.Type{ts.String}, Required: 1, Return: boolOrNull},
			"getcwd":   {Return: strOrNull},
			"chdir":    {Params: []ts.Type{ts.String}, Required: 1, Return: boolOrNull},
			"chmod":    {Params: []ts.Type{ts.String, ts.Integer}, Required: 2, Return: boolOrNull},
			"chown":    {Params: []ts.Type{ts.String, ts.Union(ts.Integer, ts.String), ts.Union(ts.Integer, ts.String)}, Required: 1, Return: boolOrNull},
			"rename":   {Params: []ts.Type{ts.String, ts.String}, Required: 2, Return: boolOrNull},
			"glob":     {Params: []ts.Type{ts.String}, Required: 1, Variadic: true, Return: arrOrNull},
			"dirname":  {Params: []ts.Type{ts.String}, Required: 1, Return: strOrNull},
			"basename": {Params: []ts.Type{ts.String}, Required: 1, Return: strOrNull},
			"lsdir":    {Params: []ts.Type{ts.String, ts.Union(ts.Regex, ts.String)}, Required: 1, Return: arrOrNull},
			"mkstemp":  {Params: []ts.Type{ts.String}, Required: 0, Return: ts.NullableModule{Handle: fileHandle}},
			"access":   {Params: []ts.Type{ts.String, ts.String}, Required: 1, Return: boolOrNull},
			"readfile": {Params: []ts.Type{ts.String, ts.Integer}, Required: 1, Return: strOrNull},
			"writefile": {
				Params:   []ts.Type{ts.String, ts.Unknown, ts.Integer},
				Required: 2,
				Return:   intOrNull,
			},
			"realpath": {Params: []ts.Type{ts.String}, Required: 1, Return: strOrNull},
			"pipe":     {Return: arrOrNull},
		},
	})

	r.registerHandle(FsFile, map[string]ts.Signature{
		"read":     {Params: []ts.Type{ts.Union(ts.Integer, ts.String)}, Required: 0, Return: strOrNull},
		"write":    {Params: []ts.Type{ts.Unknown}, Required: 1, Return: intOrNull},
		"seek":     {Params: []ts.Type{ts.Integer, ts.Integer}, Required: 0, Return: boolOrNull},
		"tell":     {Return: intOrNull},
		"close":    {Return: boolOrNull},
		"flush":    {Return: boolOrNull},
		"fileno":   {Return: intOrNull},
		"error":    {Return: strOrNull},
		"isatty":   {Return: boolOrNull},
		"truncate": {Params: []ts.Type{ts.Integer}, Required: 0, Return: boolOrNull},
		"lock":     {Params: []ts.Type{ts.String}, Required: 1, Return: boolOrNull},
	})

	r.registerHandle(FsDir, map[string]ts.Signature{
		"read":  {Return: strOrNull},
		"tell":  {Return: intOrNull},
		"seek":  {Params: []ts.Type{ts.Integer}, Required: 1, Return: boolOrNull},
		"close": {Return: boolOrNull},
		"error": {Return: strOrNull},
	})

	r.registerHandle(FsProc, map[string]ts.Signature{
		"read":   {Params: []ts.Type{ts.Union(ts.Integer, ts.String)}, Required: 0, Return: strOrNull},
		"write":  {Params: []ts.Type{ts.Unknown}, Required: 1, Return: intOrNull},
		"close":  {Return: intOrNull},
		"flush":  {Return: boolOrNull},
		"fileno": {Return: intOrNull},
		"error":  {Return: strOrNull},
	})
}
