package modules

import (
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

// Handle type names produced by uloop factory functions.
const (
	UloopTimer    = "uloop.timer"
	UloopHandle   = "uloop.handle"
	UloopProcess  = "uloop.process"
	UloopInterval = "uloop.interval"
	UloopSignal   = "uloop.signal"
)

func (r *Registry) registerUloop() {
	timer := ts.ModuleType{Name: UloopTimer}
	handle := ts.ModuleType{Name: UloopHandle}
	process := ts.ModuleType{Name: UloopProcess}
	interval := ts.ModuleType{Name: UloopInterval}
	signal := ts.ModuleType{Name: UloopSignal}

	intOrNull := ts.Union(ts.Integer, ts.Null)
	boolOrNull := ts.Union(ts.Boolean, ts.Null)

	r.register(&Module{
		Name: "uloop",
		Functions: map[string]ts.Signature{
			"error":    {Return: ts.Union(ts.String, ts.Null)},
			"init":     {Return: boolOrNull},
			"run":      {Params: []ts.Type{ts.Integer}, Required: 0, Return: intOrNull},
			"end":      {Return: ts.Null},
			"done":     {Return: ts.Null},
			"timer":    {Params: []ts.Type{ts.Integer, ts.Function}, Required: 0, Return: ts.NullableModule{Handle: timer}},
			"handle":   {Params: []ts.Type{ts.Unknown, ts.Function, ts.Integer}, Required: 3, Return: ts.NullableModule{Handle: handle}},
			"process":  {Params: []ts.Type{ts.String, ts.Array, ts.Object, ts.Function}, Required: 1, Return: ts.NullableModule{Handle: process}},
			"interval": {Params: []ts.Type{ts.Integer, ts.Function}, Required: 0, Return: ts.NullableModule{Handle: interval}},
			"signal":   {Params: []ts.Type{ts.String, ts.Function}, Required: 1, Return: ts.NullableModule{Handle: signal}},
		},
	})

	r.registerHandle(UloopTimer, map[string]ts.Signature{
		"set":       {Params: []ts.Type{ts.Integer}, Required: 0, Return: boolOrNull},
		"remaining": {Return: ts.Integer},
		"cancel":    {Return: boolOrNull},
	})

	r.registerHandle(UloopHandle, map[string]ts.Signature{
		"fileno": {Return: ts.Integer},
		"handle": {Return: ts.Unknown},
		"delete": {Return: ts.Null},
	})

	r.registerHandle(UloopProcess, map[string]ts.Signature{
		"pid":    {Return: ts.Integer},
		"delete": {Return: intOrNull},
	})

	r.registerHandle(UloopInterval, map[string]ts.Signature{
		"set":       {Params: []ts.Type{ts.Integer}, Required: 0, Return: boolOrNull},
		"remaining": {Return: ts.Integer},
		"cancel":    {Return: boolOrNull},
	})

	r.registerHandle(UloopSignal, map[string]ts.Signature{
		"signo":  {Return: ts.Integer},
		"delete": {Return: boolOrNull},
	})
}
