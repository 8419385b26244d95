// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package monitor evaluates Starlark expressions against the processor
// state, for breakpoints and stop conditions.
//
// Predeclared names:
//
//	pc, ticks, instructions, active    core state
//	acc, psw, sp, tcon, ...            every named SFR latch
//	r0 ... r7                          registers of the selected bank
//	pending                            tuple of pending interrupt sources
//	iram(a), xram(a), code(a)          memory reads
//	bit(n)                             bit address read
package monitor

import (
	"iter"
	"maps"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/emu8051/cpu"
	"github.com/ezrec/emu8051/internal"
)

// resultName holds the expression value in the compiled program.
const resultName = "rc"

// Condition is a compiled expression.
type Condition struct {
	Expr string

	program *starlark.Program
}

var builtinNames = []string{"iram", "xram", "code", "bit", "pending"}

// state iterates over the integer valued core state.
func state(mcu *cpu.Cpu) iter.Seq2[string, int] {
	return maps.All(map[string]int{
		"pc":           mcu.PC & 0xffff,
		"ticks":        mcu.Ticks,
		"instructions": mcu.Instructions,
		"active":       mcu.InterruptActive,
	})
}

// symbols iterates over every integer valued predeclared name.
func symbols(mcu *cpu.Cpu) iter.Seq2[string, starlark.Value] {
	return internal.IterSeq2Map(
		internal.IterSeq2Concat(state(mcu), mcu.Symbols(), mcu.Registers()),
		func(value int) starlark.Value { return starlark.MakeInt(value) },
	)
}

// isPredeclared reports the names known to every expression.
func isPredeclared() func(name string) bool {
	names := map[string]bool{}
	for name := range symbols(&cpu.Cpu{}) {
		names[name] = true
	}
	for _, name := range builtinNames {
		names[name] = true
	}

	return func(name string) bool {
		return names[name]
	}
}

// Compile an expression into a Condition.
func Compile(expr string) (cond *Condition, err error) {
	if len(strings.TrimSpace(expr)) == 0 {
		err = &ErrCondition{Expr: expr, Err: ErrEmpty}
		return
	}

	// The newline ends any trailing comment before the closing paren.
	src := resultName + " = (" + expr + "\n)\n"
	_, program, err := starlark.SourceProgramOptions(&syntax.FileOptions{}, "condition", src, isPredeclared())
	if err != nil {
		err = &ErrCondition{Expr: expr, Err: err}
		return
	}

	cond = &Condition{
		Expr:    expr,
		program: program,
	}

	return
}

func memoryBuiltin(name string, read func(addr int) byte) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var addr int
		err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr)
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt(int(read(addr))), nil
	})
}

// predeclared builds the name bindings for one evaluation.
func predeclared(mcu *cpu.Cpu) (dict starlark.StringDict) {
	dict = starlark.StringDict{}
	for name, value := range symbols(mcu) {
		dict[name] = value
	}

	dict["iram"] = memoryBuiltin("iram", mcu.ReadIndirect)
	dict["xram"] = memoryBuiltin("xram", mcu.ReadExternal)
	dict["code"] = memoryBuiltin("code", mcu.ReadCode)
	dict["bit"] = starlark.NewBuiltin("bit", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var bit int
		err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &bit)
		if err != nil {
			return nil, err
		}
		return starlark.Bool(mcu.ReadBit(bit)), nil
	})

	var pending starlark.Tuple
	for _, src := range mcu.Pending() {
		pending = append(pending, starlark.String(src.String()))
	}
	dict["pending"] = pending

	return
}

// Value evaluates the expression against the processor state.
func (cond *Condition) Value(mcu *cpu.Cpu) (value starlark.Value, err error) {
	thread := &starlark.Thread{Name: "monitor"}

	globals, err := cond.program.Init(thread, predeclared(mcu))
	if err != nil {
		err = &ErrCondition{Expr: cond.Expr, Err: err}
		return
	}

	value, ok := globals[resultName]
	if !ok {
		err = &ErrCondition{Expr: cond.Expr, Err: ErrNoResult}
		return
	}

	return
}

// Eval returns the truth of the expression against the processor state.
func (cond *Condition) Eval(mcu *cpu.Cpu) (ok bool, err error) {
	value, err := cond.Value(mcu)
	if err != nil {
		return
	}

	ok = bool(value.Truth())
	return
}

// String returns the source expression.
func (cond *Condition) String() string {
	return cond.Expr
}
