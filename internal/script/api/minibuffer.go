package api

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/adclient"
)

// MinibufferModule implements the ad.minibuffer API module.
type MinibufferModule struct {
	ctx *Context
}

// NewMinibufferModule creates a new minibuffer module.
func NewMinibufferModule(ctx *Context) *MinibufferModule {
	return &MinibufferModule{ctx: ctx}
}

// Name returns the module name.
func (m *MinibufferModule) Name() string {
	return "minibuffer"
}

// Register registers the module into the Lua state.
func (m *MinibufferModule) Register(L *lua.LState, ad *lua.LTable) error {
	mod := L.NewTable()
	L.SetField(mod, "select", L.NewFunction(m.selectFrom))
	L.SetField(ad, m.Name(), mod)
	return nil
}

// select(candidates [, prompt]) -> string | nil
// Blocks until the user picks one of candidates (an array of strings) in
// the editor's minibuffer. Returns nil when the user cancels.
func (m *MinibufferModule) selectFrom(L *lua.LState) int {
	tbl := L.CheckTable(1)
	prompt := L.OptString(2, "")

	candidates := make([]string, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		v := tbl.RawGetInt(i)
		s, ok := v.(lua.LString)
		if !ok {
			L.RaiseError("select: candidate %d is not a string", i)
			return 0
		}
		candidates = append(candidates, string(s))
	}

	selected, err := m.ctx.Minibuffer.SelectFromMinibuffer(candidates, prompt)
	if err != nil {
		if errors.Is(err, adclient.ErrCancelled) {
			L.Push(lua.LNil)
			return 1
		}
		L.RaiseError("select: %v", err)
		return 0
	}

	L.Push(lua.LString(selected))
	return 1
}
