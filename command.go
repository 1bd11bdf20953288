package adclient

// Command is a control message accepted by the editor's ctl file. The
// concrete types below form the full set of commands ad understands; Raw is
// the escape hatch for anything newer than this package.
//
// CtlLine returns the exact wire form. Serialization is raw pass-through:
// no quoting or escaping is applied to argument text, matching the ctl
// file's own line-oriented grammar.
type Command interface {
	CtlLine() string
}

// EditScript executes an ad edit script against the current buffer.
type EditScript struct {
	Script string
}

// CtlLine implements Command.
func (c EditScript) CtlLine() string { return "Edit " + c.Script }

// Echo displays a message in the editor's status line.
type Echo struct {
	Message string
}

// CtlLine implements Command.
func (c Echo) CtlLine() string { return "echo " + c.Message }

// MarkClean clears the dirty flag for a buffer without altering its content.
type MarkClean struct {
	BufferID string
}

// CtlLine implements Command.
func (c MarkClean) CtlLine() string { return "mark-clean " + c.BufferID }

// MinibufferPrompt sets the prompt label for an in-flight minibuffer
// selection. It must be issued after the candidate list has been written
// and before the response is read; outside that window the editor may
// ignore it or apply it to a stale request.
type MinibufferPrompt struct {
	Text string
}

// CtlLine implements Command.
func (c MinibufferPrompt) CtlLine() string { return "minibuffer-prompt " + c.Text }

// Open opens the requested file in the editor.
type Open struct {
	Path string
}

// CtlLine implements Command.
func (c Open) CtlLine() string { return "open " + c.Path }

// OpenInNewWindow opens the requested file in a new editor window.
type OpenInNewWindow struct {
	Path string
}

// CtlLine implements Command.
func (c OpenInNewWindow) CtlLine() string { return "open-in-new-window " + c.Path }

// Reload re-reads the currently active buffer from disk.
type Reload struct{}

// CtlLine implements Command.
func (Reload) CtlLine() string { return "reload" }

// Raw sends an arbitrary line to ctl verbatim.
type Raw struct {
	Line string
}

// CtlLine implements Command.
func (c Raw) CtlLine() string { return c.Line }
