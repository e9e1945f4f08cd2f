package modules

import (
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

// SocketSocket is the handle type produced by socket factory functions.
const SocketSocket = "socket.socket"

func (r *Registry) registerSocket() {
	sock := ts.ModuleType{Name: SocketSocket}
	sockOrNull := ts.NullableModule{Handle: sock}

	strOrNull := ts.Union(ts.String, ts.Null)
	intOrNull := ts.Union(ts.Integer, ts.Null)
	objOrNull := ts.Union(ts.Object, ts.Null)
	boolOrNull := ts.Union(ts.Boolean, ts.Null)

	r.register(&Module{
		Name: "socket",
		Functions: map[string]ts.Signature{
			"error":    {Params: []ts.Type{ts.Boolean}, Required: 0, Return: ts.Union(ts.Object, ts.String, ts.Null)},
			"create":   {Params: []ts.Type{ts.Integer, ts.Integer, ts.Integer}, Required: 0, Return: sockOrNull},
			"connect":  {Params: []ts.Type{ts.Union(ts.Object, ts.String), ts.Union(ts.Integer, ts.String)}, Required: 1, Return: sockOrNull},
			"listen":   {Params: []ts.Type{ts.Union(ts.Object, ts.String), ts.Union(ts.Integer, ts.String)}, Required: 1, Return: sockOrNull},
			"sockaddr": {Params: []ts.Type{ts.Unknown}, Required: 1, Return: objOrNull},
			"nameinfo": {Params: []ts.Type{ts.Unknown, ts.Integer}, Required: 1, Return: objOrNull},
			"addrinfo": {Params: []ts.Type{ts.String, ts.String, ts.Object}, Required: 1, Return: ts.Union(ts.Array, ts.Null)},
			"poll":     {Params: []ts.Type{ts.Integer, ts.Unknown}, Required: 2, Variadic: true, Return: ts.Union(ts.Array, ts.Null)},
		},
	})

	r.registerHandle(SocketSocket, map[string]ts.Signature{
		"connect":  {Params: []ts.Type{ts.Unknown, ts.Union(ts.Integer, ts.String)}, Required: 1, Return: boolOrNull},
		"bind":     {Params: []ts.Type{ts.Unknown}, Required: 0, Return: boolOrNull},
		"listen":   {Params: []ts.Type{ts.Integer}, Required: 0, Return: boolOrNull},
		"accept":   {Params: []ts.Type{ts.Integer}, Required: 0, Return: sockOrNull},
		"send":     {Params: []ts.Type{ts.Unknown, ts.Integer, ts.Unknown}, Required: 1, Return: intOrNull},
		"recv":     {Params: []ts.Type{ts.Integer, ts.Integer}, Required: 0, Return: strOrNull},
		"setopt":   {Params: []ts.Type{ts.Integer, ts.Integer, ts.Unknown}, Required: 3, Return: boolOrNull},
		"getopt":   {Params: []ts.Type{ts.Integer, ts.Integer}, Required: 2, Return: ts.Unknown},
		"shutdown": {Params: []ts.Type{ts.Integer}, Required: 1, Return: boolOrNull},
		"fileno":   {Return: intOrNull},
		"peername": {Return: objOrNull},
		"sockname": {Return: objOrNull},
		"close":    {Return: boolOrNull},
		"error":    {Params: []ts.Type{ts.Boolean}, Required: 0, Return: ts.Union(ts.Object, ts.String, ts.Null)},
	})
}
