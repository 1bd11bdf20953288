package api

import (
	lua "github.com/yuin/gopher-lua"
)

// BufferModule implements the ad.buf API module.
//
// Functions that operate on a buffer accept an optional leading buffer id
// and default to the buffer the script was launched from.
type BufferModule struct {
	ctx *Context
}

// NewBufferModule creates a new buffer module.
func NewBufferModule(ctx *Context) *BufferModule {
	return &BufferModule{ctx: ctx}
}

// Name returns the module name.
func (m *BufferModule) Name() string {
	return "buf"
}

// Register registers the module into the Lua state.
func (m *BufferModule) Register(L *lua.LState, ad *lua.LTable) error {
	mod := L.NewTable()

	L.SetField(mod, "current", L.NewFunction(m.current))
	L.SetField(mod, "focus", L.NewFunction(m.focus))
	L.SetField(mod, "index", L.NewFunction(m.index))

	L.SetField(mod, "body", L.NewFunction(m.body))
	L.SetField(mod, "append", L.NewFunction(m.appendBody))
	L.SetField(mod, "dot", L.NewFunction(m.dot))
	L.SetField(mod, "write_dot", L.NewFunction(m.writeDot))
	L.SetField(mod, "filename", L.NewFunction(m.filename))
	L.SetField(mod, "addr", L.NewFunction(m.addr))
	L.SetField(mod, "write_addr", L.NewFunction(m.writeAddr))
	L.SetField(mod, "xaddr", L.NewFunction(m.xaddr))
	L.SetField(mod, "write_xaddr", L.NewFunction(m.writeXAddr))
	L.SetField(mod, "xdot", L.NewFunction(m.xdot))
	L.SetField(mod, "write_xdot", L.NewFunction(m.writeXDot))

	L.SetField(mod, "clear", L.NewFunction(m.clear))
	L.SetField(mod, "to_bof", L.NewFunction(m.toBOF))
	L.SetField(mod, "to_eof", L.NewFunction(m.toEOF))

	L.SetField(ad, m.Name(), mod)
	return nil
}

// current() -> string
// Returns the id of the focused buffer.
func (m *BufferModule) current(L *lua.LState) int {
	id, err := m.ctx.Buffers.CurrentBuffer()
	if err != nil {
		L.RaiseError("current: %v", err)
		return 0
	}
	L.Push(lua.LString(id))
	return 1
}

// focus(id)
// Focuses the given buffer.
func (m *BufferModule) focus(L *lua.LState) int {
	id := L.CheckString(1)
	if err := m.ctx.Buffers.SetCurrentBuffer(id); err != nil {
		L.RaiseError("focus: %v", err)
		return 0
	}
	return 0
}

// index() -> string
// Returns the raw buffers/index listing; the entry format is owned by the
// editor.
func (m *BufferModule) index(L *lua.LState) int {
	listing, err := m.ctx.Buffers.ListBuffers()
	if err != nil {
		L.RaiseError("index: %v", err)
		return 0
	}
	L.Push(lua.LString(listing))
	return 1
}

// read wraps the one-optional-arg getter shape shared by body, dot, etc.
func (m *BufferModule) read(L *lua.LState, name string, get func(id string) (string, error)) int {
	id := optBufferID(L, 1, m.ctx)
	s, err := get(id)
	if err != nil {
		L.RaiseError("%s: %v", name, err)
		return 0
	}
	L.Push(lua.LString(s))
	return 1
}

// write wraps the ([id,] value) setter shape shared by write_dot, append,
// etc.
func (m *BufferModule) write(L *lua.LState, name string, set func(id, value string) error) int {
	var id, value string
	if L.GetTop() >= 2 {
		id = L.CheckString(1)
		value = L.CheckString(2)
	} else {
		value = L.CheckString(1)
		if m.ctx.BufferID == "" {
			L.RaiseError("%s: no buffer id given and not running inside ad", name)
			return 0
		}
		id = m.ctx.BufferID
	}

	if err := set(id, value); err != nil {
		L.RaiseError("%s: %v", name, err)
		return 0
	}
	return 0
}

// act wraps the one-optional-arg action shape shared by clear, to_bof and
// to_eof.
func (m *BufferModule) act(L *lua.LState, name string, do func(id string) error) int {
	id := optBufferID(L, 1, m.ctx)
	if err := do(id); err != nil {
		L.RaiseError("%s: %v", name, err)
		return 0
	}
	return 0
}

// body([id]) -> string
func (m *BufferModule) body(L *lua.LState) int {
	return m.read(L, "body", m.ctx.Buffers.ReadBody)
}

// append([id,] content)
// Appends content to the buffer body.
func (m *BufferModule) appendBody(L *lua.LState) int {
	return m.write(L, "append", m.ctx.Buffers.AppendBody)
}

// dot([id]) -> string
func (m *BufferModule) dot(L *lua.LState) int {
	return m.read(L, "dot", m.ctx.Buffers.ReadDot)
}

// write_dot([id,] content)
// Replaces the buffer's selection with content.
func (m *BufferModule) writeDot(L *lua.LState) int {
	return m.write(L, "write_dot", m.ctx.Buffers.WriteDot)
}

// filename([id]) -> string
func (m *BufferModule) filename(L *lua.LState) int {
	return m.read(L, "filename", m.ctx.Buffers.ReadFilename)
}

// addr([id]) -> string
func (m *BufferModule) addr(L *lua.LState) int {
	return m.read(L, "addr", m.ctx.Buffers.ReadAddr)
}

// write_addr([id,] a)
// Sets the buffer's dot address using the editor's addressing language.
func (m *BufferModule) writeAddr(L *lua.LState) int {
	return m.write(L, "write_addr", m.ctx.Buffers.WriteAddr)
}

// xaddr([id]) -> string
func (m *BufferModule) xaddr(L *lua.LState) int {
	return m.read(L, "xaddr", m.ctx.Buffers.ReadXAddr)
}

// write_xaddr([id,] a)
func (m *BufferModule) writeXAddr(L *lua.LState) int {
	return m.write(L, "write_xaddr", m.ctx.Buffers.WriteXAddr)
}

// xdot([id]) -> string
func (m *BufferModule) xdot(L *lua.LState) int {
	return m.read(L, "xdot", m.ctx.Buffers.ReadXDot)
}

// write_xdot([id,] content)
func (m *BufferModule) writeXDot(L *lua.LState) int {
	return m.write(L, "write_xdot", m.ctx.Buffers.WriteXDot)
}

// clear([id])
// Removes all content from the buffer. Select-then-replace under the hood;
// not atomic with respect to other clients.
func (m *BufferModule) clear(L *lua.LState) int {
	return m.act(L, "clear", m.ctx.Buffers.ClearBuffer)
}

// to_bof([id])
// Moves the cursor to the start of the file.
func (m *BufferModule) toBOF(L *lua.LState) int {
	return m.act(L, "to_bof", m.ctx.Buffers.CurToBOF)
}

// to_eof([id])
// Moves the cursor to the end of the file.
func (m *BufferModule) toEOF(L *lua.LState) int {
	return m.act(L, "to_eof", m.ctx.Buffers.CurToEOF)
}
