package adclient

import (
	"errors"
	"testing"
)

func TestSelectFromMinibuffer(t *testing.T) {
	fsys := newMockFsys()
	fsys.reads["minibuffer"] = []string{"beta\n"}
	c := newTestClient(fsys)

	got, err := c.SelectFromMinibuffer([]string{"alpha", "beta", "gamma"}, "pick one")
	if err != nil {
		t.Fatalf("SelectFromMinibuffer: %v", err)
	}
	if got != "beta" {
		t.Errorf("selected = %q, want %q", got, "beta")
	}

	if writes := fsys.writesTo("minibuffer"); len(writes) != 1 || writes[0] != "alpha\nbeta\ngamma\n" {
		t.Errorf("candidate writes = %q", writes)
	}
	if writes := fsys.writesTo("ctl"); len(writes) != 1 || writes[0] != "minibuffer-prompt pick one" {
		t.Errorf("ctl writes = %q", writes)
	}

	// The prompt must be set strictly between the candidate write and the
	// response read.
	var candidateAt, promptAt, readAt int
	for i, line := range fsys.opTrace() {
		switch line {
		case "write minibuffer":
			candidateAt = i
		case "write ctl":
			promptAt = i
		case "open minibuffer":
			// The second open of minibuffer is the response read.
			readAt = i
		}
	}
	if !(candidateAt < promptAt && promptAt < readAt) {
		t.Errorf("prompt issued outside the candidate-write/response-read window: %v", fsys.opTrace())
	}
}

func TestSelectFromMinibufferNoPrompt(t *testing.T) {
	fsys := newMockFsys()
	fsys.reads["minibuffer"] = []string{"alpha"}
	c := newTestClient(fsys)

	got, err := c.SelectFromMinibuffer([]string{"alpha"}, "")
	if err != nil {
		t.Fatalf("SelectFromMinibuffer: %v", err)
	}
	if got != "alpha" {
		t.Errorf("selected = %q, want %q", got, "alpha")
	}
	if writes := fsys.writesTo("ctl"); len(writes) != 0 {
		t.Errorf("unexpected ctl writes: %q", writes)
	}
}

func TestSelectFromMinibufferCancelled(t *testing.T) {
	fsys := newMockFsys()
	fsys.reads["minibuffer"] = []string{"\n"}
	c := newTestClient(fsys)

	_, err := c.SelectFromMinibuffer([]string{"alpha", "beta"}, "")
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
}

func TestSelectFromMinibufferNoCandidates(t *testing.T) {
	c := newTestClient(newMockFsys())

	if _, err := c.SelectFromMinibuffer(nil, "pick"); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("err = %v, want ErrNoCandidates", err)
	}
}
