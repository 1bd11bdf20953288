// Package adclient is a 9p based client for interacting with the ad text
// editor.
//
// ad exposes its internal state as a synthetic filesystem served over 9p:
// per-buffer register files under buffers/<id>/, a buffers/index listing,
// a buffers/current focus file, a ctl file accepting line commands, a log
// file streaming buffer events, and a minibuffer file used for interactive
// selections. This package wraps reads and writes against those paths with
// typed operations.
//
// The zero-setup entry point is Dial, which mounts ad's 9p service in the
// current namespace:
//
//	c, err := adclient.Dial()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	id, err := c.CurrentBuffer()
//
// Every operation is a synchronous call against the mounted filesystem.
// Reads of the log and minibuffer files block until the editor (or the
// user) produces data; everything else completes in one round trip.
//
// Multi-step operations such as ClearBuffer are not atomic with respect to
// other clients of the same editor: the editor serializes individual file
// operations, not sequences of them.
package adclient
