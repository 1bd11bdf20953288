package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/adclient"
)

// CtlModule implements the ad.ctl API module: typed wrappers over the
// editor's control file.
type CtlModule struct {
	ctx *Context
}

// NewCtlModule creates a new ctl module.
func NewCtlModule(ctx *Context) *CtlModule {
	return &CtlModule{ctx: ctx}
}

// Name returns the module name.
func (m *CtlModule) Name() string {
	return "ctl"
}

// Register registers the module into the Lua state.
func (m *CtlModule) Register(L *lua.LState, ad *lua.LTable) error {
	mod := L.NewTable()

	L.SetField(mod, "edit", L.NewFunction(m.edit))
	L.SetField(mod, "echo", L.NewFunction(m.echo))
	L.SetField(mod, "open", L.NewFunction(m.open))
	L.SetField(mod, "open_in_new_window", L.NewFunction(m.openInNewWindow))
	L.SetField(mod, "reload", L.NewFunction(m.reload))
	L.SetField(mod, "mark_clean", L.NewFunction(m.markClean))
	L.SetField(mod, "raw", L.NewFunction(m.raw))

	L.SetField(ad, m.Name(), mod)
	return nil
}

func (m *CtlModule) send(L *lua.LState, cmd adclient.Command) int {
	if err := m.ctx.Control.Ctl(cmd); err != nil {
		L.RaiseError("ctl: %v", err)
		return 0
	}
	return 0
}

// edit(script)
// Runs an ad edit script against the current buffer.
func (m *CtlModule) edit(L *lua.LState) int {
	return m.send(L, adclient.EditScript{Script: L.CheckString(1)})
}

// echo(msg)
// Shows msg in the editor's status line.
func (m *CtlModule) echo(L *lua.LState) int {
	return m.send(L, adclient.Echo{Message: L.CheckString(1)})
}

// open(path)
func (m *CtlModule) open(L *lua.LState) int {
	return m.send(L, adclient.Open{Path: L.CheckString(1)})
}

// open_in_new_window(path)
func (m *CtlModule) openInNewWindow(L *lua.LState) int {
	return m.send(L, adclient.OpenInNewWindow{Path: L.CheckString(1)})
}

// reload()
// Re-reads the active buffer from disk.
func (m *CtlModule) reload(L *lua.LState) int {
	return m.send(L, adclient.Reload{})
}

// mark_clean([id])
// Clears the dirty flag without altering content.
func (m *CtlModule) markClean(L *lua.LState) int {
	id := optBufferID(L, 1, m.ctx)
	return m.send(L, adclient.MarkClean{BufferID: id})
}

// raw(line)
// Sends an arbitrary ctl line verbatim.
func (m *CtlModule) raw(L *lua.LState) int {
	return m.send(L, adclient.Raw{Line: L.CheckString(1)})
}
