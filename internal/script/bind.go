package script

import (
	"github.com/dshills/adclient"
	"github.com/dshills/adclient/internal/script/api"
)

// Bind builds the module context for a connected client.
func Bind(c *adclient.Client) *api.Context {
	return &api.Context{
		BufferID:   c.EditorBufferID(),
		Buffers:    c,
		Control:    c,
		Minibuffer: c,
		Streams:    clientStreams{c: c},
	}
}

// clientStreams adapts the client's concrete follower type to the module
// interface.
type clientStreams struct {
	c *adclient.Client
}

func (s clientStreams) FollowLog() (api.LineFollower, error) {
	return s.c.FollowLog()
}

func (s clientStreams) FollowEvents(id string) (api.LineFollower, error) {
	return s.c.FollowEvents(id)
}
