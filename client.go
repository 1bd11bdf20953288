package adclient

import (
	"fmt"
	"io"
	"os"
	"strings"

	"9fans.net/go/plan9"
)

const (
	// DefaultService is the 9p service name ad registers in its namespace.
	DefaultService = "ad"

	// BufferIDEnvVar is set by ad in the environment of processes it spawns
	// and names the buffer the process was launched from.
	BufferIDEnvVar = "bufid"
)

// Config carries the explicit inputs the client needs. Ambient process
// state (the bufid environment variable, the plan9 namespace) is read once
// by ConfigFromEnv and passed in, so that operations depending on editor
// context are functions of explicit input.
type Config struct {
	// BufferID is the buffer this process was launched from, or empty when
	// the process was not started by ad.
	BufferID string

	// Service is the 9p service name to mount. Empty means DefaultService.
	Service string

	// Namespace overrides the plan9 namespace directory used to locate the
	// service socket. Empty means the environment's namespace.
	Namespace string
}

// ConfigFromEnv captures the editor-launch contract from the process
// environment.
func ConfigFromEnv() Config {
	return Config{
		BufferID: os.Getenv(BufferIDEnvVar),
		Service:  DefaultService,
	}
}

// Client talks to a running ad instance through its synthetic filesystem.
//
// Methods are safe for sequential use; the editor observes operations in
// the order a single caller issues them. Multi-step operations (see
// ClearBuffer) are not atomic with respect to other clients.
type Client struct {
	fsys Fsys
	cfg  Config
}

// Dial connects to ad using configuration from the process environment.
func Dial() (*Client, error) {
	return DialConfig(ConfigFromEnv())
}

// DialConfig connects to ad using explicit configuration.
func DialConfig(cfg Config) (*Client, error) {
	fsys, err := mount(cfg.Service, cfg.Namespace)
	if err != nil {
		return nil, err
	}
	return New(fsys, cfg), nil
}

// New builds a client over an already mounted filesystem.
func New(fsys Fsys, cfg Config) *Client {
	return &Client{fsys: fsys, cfg: cfg}
}

// EditorBufferID reports the buffer id this process was launched from, or
// an empty string when the process was not started by ad.
func (c *Client) EditorBufferID() string {
	return c.cfg.BufferID
}

// RequireEditorContext returns the launching buffer id, or
// ErrNoEditorContext when the process was not started by ad. Operations
// that act on "the buffer this script was invoked from" must call this
// before doing any work.
func (c *Client) RequireEditorContext() (string, error) {
	if c.cfg.BufferID == "" {
		return "", ErrNoEditorContext
	}
	return c.cfg.BufferID, nil
}

// readFile reads the full contents of a file on the editor filesystem.
func (c *Client) readFile(path string) ([]byte, error) {
	fid, err := c.fsys.Open(path, plan9.OREAD)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fid.Close()

	data, err := io.ReadAll(ioReader{fid})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeFile writes data to a file on the editor filesystem in one open.
func (c *Client) writeFile(path string, data []byte) error {
	fid, err := c.fsys.Open(path, plan9.OWRITE)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer fid.Close()

	if err := writeAll(fid, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ioReader narrows a Fid to io.Reader for io.ReadAll.
type ioReader struct {
	fid Fid
}

func (r ioReader) Read(b []byte) (int, error) { return r.fid.Read(b) }

// writeAll writes data in full. A zero-length write is still issued: the
// editor gives meaning to empty writes (clearing the current selection), so
// they must reach the wire.
func writeAll(fid Fid, data []byte) error {
	for {
		n, err := fid.Write(data)
		if err != nil {
			return err
		}
		if n == 0 && len(data) > 0 {
			return io.ErrShortWrite
		}
		data = data[n:]
		if len(data) == 0 {
			return nil
		}
	}
}

func bufferFile(id, name string) string {
	return "buffers/" + id + "/" + name
}

// Ctl sends a control command to the editor. Control messages are
// fire-and-forget: a nil return means the write was accepted, not that the
// command succeeded inside the editor.
func (c *Client) Ctl(cmd Command) error {
	return c.writeFile("ctl", []byte(cmd.CtlLine()))
}

// Echo displays a message in the editor's status line.
func (c *Client) Echo(msg string) error {
	return c.Ctl(Echo{Message: msg})
}

// Edit runs an ad edit script against the current buffer.
func (c *Client) Edit(script string) error {
	return c.Ctl(EditScript{Script: script})
}

// Open asks the editor to open the given file.
func (c *Client) Open(path string) error {
	return c.Ctl(Open{Path: path})
}

// OpenInNewWindow asks the editor to open the given file in a new window.
func (c *Client) OpenInNewWindow(path string) error {
	return c.Ctl(OpenInNewWindow{Path: path})
}

// ReloadCurrentBuffer re-reads the active buffer from disk.
func (c *Client) ReloadCurrentBuffer() error {
	return c.Ctl(Reload{})
}

// MarkClean clears the dirty flag for the given buffer.
func (c *Client) MarkClean(id string) error {
	return c.Ctl(MarkClean{BufferID: id})
}

// ReadBufferFile reads buffers/<id>/<name>. Reads against ids for buffers
// that have been closed fail with whatever error the editor returns; no
// client-side existence check is performed.
func (c *Client) ReadBufferFile(id, name string) ([]byte, error) {
	return c.readFile(bufferFile(id, name))
}

// WriteBufferFile writes buffers/<id>/<name>.
func (c *Client) WriteBufferFile(id, name string, data []byte) error {
	return c.writeFile(bufferFile(id, name), data)
}

func (c *Client) readBufferString(id, name string) (string, error) {
	data, err := c.ReadBufferFile(id, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadBody returns the full content of the given buffer.
func (c *Client) ReadBody(id string) (string, error) {
	return c.readBufferString(id, "body")
}

// AppendBody appends content to the given buffer.
func (c *Client) AppendBody(id, content string) error {
	return c.WriteBufferFile(id, "body", []byte(content))
}

// ReadDot returns the content of the given buffer's dot (its selection).
func (c *Client) ReadDot(id string) (string, error) {
	return c.readBufferString(id, "dot")
}

// WriteDot replaces the content of the given buffer's dot.
func (c *Client) WriteDot(id, content string) error {
	return c.WriteBufferFile(id, "dot", []byte(content))
}

// ReadFilename returns the file name backing the given buffer.
func (c *Client) ReadFilename(id string) (string, error) {
	s, err := c.readBufferString(id, "filename")
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(s, "\n"), nil
}

// ReadAddr returns the given buffer's current dot address.
func (c *Client) ReadAddr(id string) (string, error) {
	return c.readBufferString(id, "addr")
}

// WriteAddr sets the given buffer's dot address. The addr string uses the
// editor's Sam-style addressing language; see the addr package for a typed
// builder. Address resolution happens editor-side: an out-of-bounds address
// fails at write time rather than being validated here.
func (c *Client) WriteAddr(id, a string) error {
	return c.WriteBufferFile(id, "addr", []byte(a))
}

// ReadXAddr returns the given buffer's external address register. The x
// registers are scripting-only state served by the filesystem interface;
// they do not move the editor's own cursor.
func (c *Client) ReadXAddr(id string) (string, error) {
	return c.readBufferString(id, "xaddr")
}

// WriteXAddr sets the given buffer's external address register.
func (c *Client) WriteXAddr(id, a string) error {
	return c.WriteBufferFile(id, "xaddr", []byte(a))
}

// ReadXDot returns the content selected by the external address register.
func (c *Client) ReadXDot(id string) (string, error) {
	return c.readBufferString(id, "xdot")
}

// WriteXDot replaces the content selected by the external address register.
func (c *Client) WriteXDot(id, content string) error {
	return c.WriteBufferFile(id, "xdot", []byte(content))
}

// ClearBuffer removes all content from the given buffer.
//
// The editor models "replace" as select-then-overwrite, so this is two
// writes: `,` to xaddr to select the whole file, then empty content to
// xdot. The pair is not atomic: a concurrent writer that moves the external
// selection between the two writes changes what the second write replaces.
func (c *Client) ClearBuffer(id string) error {
	if err := c.WriteXAddr(id, ","); err != nil {
		return err
	}
	return c.WriteXDot(id, "")
}

// CurToBOF moves the cursor of the given buffer to the start of the file.
func (c *Client) CurToBOF(id string) error {
	return c.WriteAddr(id, "0")
}

// CurToEOF moves the cursor of the given buffer to the end of the file.
func (c *Client) CurToEOF(id string) error {
	return c.WriteAddr(id, "$")
}

// ListBuffers returns the raw buffers/index listing. The entry format is
// owned by the editor and passed through opaquely.
func (c *Client) ListBuffers() ([]byte, error) {
	return c.readFile("buffers/index")
}

// CurrentBuffer returns the id of the focused buffer.
func (c *Client) CurrentBuffer() (string, error) {
	data, err := c.readFile("buffers/current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SetCurrentBuffer focuses the given buffer. The id is not validated
// client-side; focusing an unknown id fails however the editor decides.
func (c *Client) SetCurrentBuffer(id string) error {
	return c.writeFile("buffers/current", []byte(id))
}
