package api

import (
	"sync"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
)

// LogModule implements the ad.log API module.
//
// Streams are handle based: follow() and events() open a tailing stream
// and return an opaque handle id; next(handle) blocks for the next line;
// stop(handle) closes the stream, unblocking any in-flight next. Handles
// left open are closed when the host shuts down.
type LogModule struct {
	ctx *Context

	mu        sync.Mutex
	followers map[string]LineFollower
}

// NewLogModule creates a new log module.
func NewLogModule(ctx *Context) *LogModule {
	return &LogModule{
		ctx:       ctx,
		followers: make(map[string]LineFollower),
	}
}

// Name returns the module name.
func (m *LogModule) Name() string {
	return "log"
}

// Register registers the module into the Lua state.
func (m *LogModule) Register(L *lua.LState, ad *lua.LTable) error {
	mod := L.NewTable()

	L.SetField(mod, "follow", L.NewFunction(m.follow))
	L.SetField(mod, "events", L.NewFunction(m.events))
	L.SetField(mod, "next", L.NewFunction(m.next))
	L.SetField(mod, "stop", L.NewFunction(m.stop))

	L.SetField(ad, m.Name(), mod)
	return nil
}

// CloseAll closes any followers a script left open.
func (m *LogModule) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, f := range m.followers {
		_ = f.Close()
		delete(m.followers, id)
	}
}

func (m *LogModule) register(f LineFollower) string {
	id := uuid.New().String()
	m.mu.Lock()
	m.followers[id] = f
	m.mu.Unlock()
	return id
}

func (m *LogModule) lookup(id string) (LineFollower, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.followers[id]
	return f, ok
}

// follow() -> handle
// Opens a tailing stream over the editor's event log. Only events that
// occur after the stream is opened are delivered.
func (m *LogModule) follow(L *lua.LState) int {
	f, err := m.ctx.Streams.FollowLog()
	if err != nil {
		L.RaiseError("follow: %v", err)
		return 0
	}
	L.Push(lua.LString(m.register(f)))
	return 1
}

// events([id]) -> handle
// Opens a tailing stream over a buffer's event file.
func (m *LogModule) events(L *lua.LState) int {
	id := optBufferID(L, 1, m.ctx)
	f, err := m.ctx.Streams.FollowEvents(id)
	if err != nil {
		L.RaiseError("events: %v", err)
		return 0
	}
	L.Push(lua.LString(m.register(f)))
	return 1
}

// next(handle) -> string | nil
// Blocks until the stream yields its next line. Returns nil once the
// stream has been stopped.
func (m *LogModule) next(L *lua.LState) int {
	handle := L.CheckString(1)

	f, ok := m.lookup(handle)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	line, err := f.Next()
	if err != nil {
		if _, open := m.lookup(handle); !open {
			L.Push(lua.LNil)
			return 1
		}
		L.RaiseError("next: %v", err)
		return 0
	}

	L.Push(lua.LString(line))
	return 1
}

// stop(handle)
// Closes the stream, unblocking any in-flight next.
func (m *LogModule) stop(L *lua.LState) int {
	handle := L.CheckString(1)

	m.mu.Lock()
	f, ok := m.followers[handle]
	if ok {
		delete(m.followers, handle)
	}
	m.mu.Unlock()

	if ok {
		if err := f.Close(); err != nil {
			L.RaiseError("stop: %v", err)
			return 0
		}
	}
	return 0
}
