package api

import (
	"fmt"
	"sync"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/adclient"
)

// mockEditor implements every provider interface and records calls.
type mockEditor struct {
	mu    sync.Mutex
	calls []string

	current string
	index   string
	reads   map[string]string // "<register>/<id>" -> content

	ctl []adclient.Command

	selected      string
	selectErr     error
	gotCandidates []string
	gotPrompt     string

	logLines   chan string
	eventLines chan string
}

func newMockEditor() *mockEditor {
	return &mockEditor{
		reads:      make(map[string]string),
		logLines:   make(chan string, 16),
		eventLines: make(chan string, 16),
	}
}

func (m *mockEditor) record(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockEditor) callLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockEditor) CurrentBuffer() (string, error) {
	m.record("CurrentBuffer")
	return m.current, nil
}

func (m *mockEditor) SetCurrentBuffer(id string) error {
	m.record("SetCurrentBuffer %s", id)
	return nil
}

func (m *mockEditor) ListBuffers() ([]byte, error) {
	m.record("ListBuffers")
	return []byte(m.index), nil
}

func (m *mockEditor) readReg(reg, id string) (string, error) {
	m.record("Read %s %s", reg, id)
	return m.reads[reg+"/"+id], nil
}

func (m *mockEditor) writeReg(reg, id, value string) error {
	m.record("Write %s %s %q", reg, id, value)
	return nil
}

func (m *mockEditor) ReadBody(id string) (string, error)     { return m.readReg("body", id) }
func (m *mockEditor) AppendBody(id, s string) error          { return m.writeReg("body", id, s) }
func (m *mockEditor) ReadDot(id string) (string, error)      { return m.readReg("dot", id) }
func (m *mockEditor) WriteDot(id, s string) error            { return m.writeReg("dot", id, s) }
func (m *mockEditor) ReadFilename(id string) (string, error) { return m.readReg("filename", id) }
func (m *mockEditor) ReadAddr(id string) (string, error)     { return m.readReg("addr", id) }
func (m *mockEditor) WriteAddr(id, a string) error           { return m.writeReg("addr", id, a) }
func (m *mockEditor) ReadXAddr(id string) (string, error)    { return m.readReg("xaddr", id) }
func (m *mockEditor) WriteXAddr(id, a string) error          { return m.writeReg("xaddr", id, a) }
func (m *mockEditor) ReadXDot(id string) (string, error)     { return m.readReg("xdot", id) }
func (m *mockEditor) WriteXDot(id, s string) error           { return m.writeReg("xdot", id, s) }

func (m *mockEditor) ClearBuffer(id string) error {
	m.record("ClearBuffer %s", id)
	return nil
}

func (m *mockEditor) CurToBOF(id string) error {
	m.record("CurToBOF %s", id)
	return nil
}

func (m *mockEditor) CurToEOF(id string) error {
	m.record("CurToEOF %s", id)
	return nil
}

func (m *mockEditor) Ctl(cmd adclient.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctl = append(m.ctl, cmd)
	return nil
}

func (m *mockEditor) ctlLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := make([]string, 0, len(m.ctl))
	for _, cmd := range m.ctl {
		lines = append(lines, cmd.CtlLine())
	}
	return lines
}

func (m *mockEditor) SelectFromMinibuffer(candidates []string, prompt string) (string, error) {
	m.mu.Lock()
	m.gotCandidates = candidates
	m.gotPrompt = prompt
	m.mu.Unlock()

	if m.selectErr != nil {
		return "", m.selectErr
	}
	return m.selected, nil
}

func (m *mockEditor) FollowLog() (LineFollower, error) {
	return &mockFollower{lines: m.logLines, done: make(chan struct{})}, nil
}

func (m *mockEditor) FollowEvents(id string) (LineFollower, error) {
	m.record("FollowEvents %s", id)
	return &mockFollower{lines: m.eventLines, done: make(chan struct{})}, nil
}

type mockFollower struct {
	lines chan string
	done  chan struct{}
	once  sync.Once
}

func (f *mockFollower) Next() (string, error) {
	select {
	case line := <-f.lines:
		return line, nil
	case <-f.done:
		return "", adclient.ErrFollowerClosed
	}
}

func (f *mockFollower) Close() error {
	f.once.Do(func() { close(f.done) })
	return nil
}

// newTestState builds a Lua state with the full ad module set registered
// against the mock editor.
func newTestState(t *testing.T, ed *mockEditor, bufferID string) *lua.LState {
	t.Helper()

	ctx := &Context{
		BufferID:   bufferID,
		Buffers:    ed,
		Control:    ed,
		Minibuffer: ed,
		Streams:    ed,
	}

	L := lua.NewState()
	t.Cleanup(L.Close)

	ad := L.NewTable()
	for _, m := range Modules(ctx) {
		if err := m.Register(L, ad); err != nil {
			t.Fatalf("registering ad.%s: %v", m.Name(), err)
		}
	}
	L.SetGlobal("ad", ad)
	return L
}
