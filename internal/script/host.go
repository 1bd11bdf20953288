// Package script hosts Lua scripts that drive the ad editor through its
// 9p filesystem.
//
// The host exposes a single global `ad` table holding the API modules
// (ad.buf, ad.ctl, ad.minibuffer, ad.log), the id of the launching buffer
// as ad.bufid, script arguments as ad.args and the guard function
// ad.require_editor_context(). A user profile is sourced before the
// requested script runs, so functions it defines are available everywhere.
package script

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/adclient/internal/script/api"
)

// Options configures a Host.
type Options struct {
	// Args are the script's command line arguments, exposed as ad.args.
	Args []string
}

// Host owns one Lua state wired to the editor.
//
// gopher-lua states are not goroutine safe; all Host methods must be
// called from a single goroutine.
type Host struct {
	L    *lua.LState
	logs *api.LogModule
}

// NewHost creates a Lua state with the ad API registered.
func NewHost(ctx *api.Context, opts Options) (*Host, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLibraries(L)

	h := &Host{L: L}

	ad := L.NewTable()
	for _, m := range api.Modules(ctx) {
		if err := m.Register(L, ad); err != nil {
			L.Close()
			return nil, fmt.Errorf("registering ad.%s: %w", m.Name(), err)
		}
		if logs, ok := m.(*api.LogModule); ok {
			h.logs = logs
		}
	}

	if ctx.BufferID != "" {
		L.SetField(ad, "bufid", lua.LString(ctx.BufferID))
	}

	args := L.NewTable()
	for i, a := range opts.Args {
		args.RawSetInt(i+1, lua.LString(a))
	}
	L.SetField(ad, "args", args)

	L.SetField(ad, "require_editor_context", L.NewFunction(func(L *lua.LState) int {
		if ctx.BufferID == "" {
			L.RaiseError("not launched from inside ad: bufid is not set")
			return 0
		}
		L.Push(lua.LString(ctx.BufferID))
		return 1
	}))

	L.SetGlobal("ad", ad)
	return h, nil
}

// openLibraries opens the Lua standard libraries scripts get. The io and
// debug libraries stay closed; filesystem access goes through the editor.
func openLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	lua.OpenOs(L)
}

// SourceProfile runs the user profile if one exists. A missing file is not
// an error; the profile is an optional customization hook.
func (h *Host) SourceProfile(path string) error {
	if path == "" || path == "none" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("sourcing profile %s: %w", path, err)
	}
	return nil
}

// RunFile executes a script file.
func (h *Host) RunFile(path string) error {
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}
	return nil
}

// RunString executes an inline script.
func (h *Host) RunString(src string) error {
	if err := h.L.DoString(src); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// Close shuts the host down, closing any streams the script left open.
func (h *Host) Close() {
	if h.logs != nil {
		h.logs.CloseAll()
	}
	h.L.Close()
}
