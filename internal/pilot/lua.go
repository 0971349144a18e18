package pilot

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Lua is a scripted pilot. The script defines a global function
// flap(view) returning true while the button should be held.
//
// view fields: frame, mode ("menu" or "in-game"), score, x, y, vy, floor,
// has_gap, gap_x, gap_low, gap_high.
//
// Single-goroutine access only.
type Lua struct {
	vm *lua.LState
	fn lua.LValue
}

// LoadLua runs the script at path and looks up its flap function.
func LoadLua(path string) (*Lua, error) {
	vm := lua.NewState()
	if err := vm.DoFile(path); err != nil {
		vm.Close()
		return nil, fmt.Errorf("pilot: load %s: %w", path, err)
	}
	return newLua(vm)
}

// LoadLuaString is LoadLua for an in-memory script.
func LoadLuaString(src string) (*Lua, error) {
	vm := lua.NewState()
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("pilot: load script: %w", err)
	}
	return newLua(vm)
}

func newLua(vm *lua.LState) (*Lua, error) {
	fn := vm.GetGlobal("flap")
	if fn.Type() != lua.LTFunction {
		vm.Close()
		return nil, fmt.Errorf("pilot: script does not define function flap(view)")
	}
	return &Lua{vm: vm, fn: fn}, nil
}

func (l *Lua) Name() string { return "lua" }

func (l *Lua) Hold(v flappy.View) (bool, error) {
	t := l.vm.NewTable()
	t.RawSetString("frame", lua.LNumber(v.Frame))
	t.RawSetString("mode", lua.LString(v.Mode.String()))
	t.RawSetString("score", lua.LNumber(v.Score))
	t.RawSetString("x", lua.LNumber(v.Avatar.X))
	t.RawSetString("y", lua.LNumber(v.Avatar.Y))
	t.RawSetString("vy", lua.LNumber(v.Vel.Y))
	t.RawSetString("floor", lua.LNumber(v.Floor))
	t.RawSetString("has_gap", lua.LBool(v.HasGap))
	t.RawSetString("gap_x", lua.LNumber(v.GapX))
	t.RawSetString("gap_low", lua.LNumber(v.GapLow))
	t.RawSetString("gap_high", lua.LNumber(v.GapHigh))

	if err := l.vm.CallByParam(lua.P{
		Fn:      l.fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return false, fmt.Errorf("lua flap: %w", err)
	}

	result := l.vm.Get(-1)
	l.vm.Pop(1)
	return lua.LVAsBool(result), nil
}

// Close shuts down the Lua VM.
func (l *Lua) Close() error {
	l.vm.Close()
	return nil
}
