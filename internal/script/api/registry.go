// Package api implements the Lua modules exposed to ads scripts.
//
// Each module installs a table of functions under the global `ad` table:
// ad.buf for buffer registers, ad.ctl for control commands, ad.minibuffer
// for interactive selections and ad.log for tailing streams. Modules talk
// to the editor through the narrow provider interfaces in Context, so
// tests substitute mocks and the production wiring passes the adclient
// client.
package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/adclient"
)

// Module is one Lua API module.
type Module interface {
	// Name is the field the module occupies on the ad table.
	Name() string

	// Register installs the module's functions.
	Register(L *lua.LState, ad *lua.LTable) error
}

// Context wires modules to the editor.
type Context struct {
	// BufferID is the buffer this process was launched from, or empty when
	// the process was not started by the editor. Module functions that
	// take an optional buffer id default to it.
	BufferID string

	Buffers    BufferProvider
	Control    ControlProvider
	Minibuffer MinibufferProvider
	Streams    StreamProvider
}

// BufferProvider exposes per-buffer register files and focus control.
type BufferProvider interface {
	CurrentBuffer() (string, error)
	SetCurrentBuffer(id string) error
	ListBuffers() ([]byte, error)

	ReadBody(id string) (string, error)
	AppendBody(id, content string) error
	ReadDot(id string) (string, error)
	WriteDot(id, content string) error
	ReadFilename(id string) (string, error)
	ReadAddr(id string) (string, error)
	WriteAddr(id, a string) error
	ReadXAddr(id string) (string, error)
	WriteXAddr(id, a string) error
	ReadXDot(id string) (string, error)
	WriteXDot(id, content string) error

	ClearBuffer(id string) error
	CurToBOF(id string) error
	CurToEOF(id string) error
}

// ControlProvider sends commands to the editor's ctl file.
type ControlProvider interface {
	Ctl(cmd adclient.Command) error
}

// MinibufferProvider runs interactive selections.
type MinibufferProvider interface {
	SelectFromMinibuffer(candidates []string, prompt string) (string, error)
}

// LineFollower is a blocking line stream over one of the editor's tailing
// files.
type LineFollower interface {
	Next() (string, error)
	Close() error
}

// StreamProvider opens tailing streams.
type StreamProvider interface {
	FollowLog() (LineFollower, error)
	FollowEvents(id string) (LineFollower, error)
}

// Modules returns the full module set for a context.
func Modules(ctx *Context) []Module {
	return []Module{
		NewBufferModule(ctx),
		NewCtlModule(ctx),
		NewMinibufferModule(ctx),
		NewLogModule(ctx),
	}
}

// optBufferID resolves the optional leading buffer-id argument at position
// pos, falling back to the context's launch buffer. Raises a Lua error when
// neither is available.
func optBufferID(L *lua.LState, pos int, ctx *Context) string {
	if L.GetTop() >= pos {
		return L.CheckString(pos)
	}
	if ctx.BufferID == "" {
		L.RaiseError("no buffer id given and not running inside ad")
	}
	return ctx.BufferID
}
