package api

import (
	"testing"

	"github.com/dshills/adclient"
)

func TestMinibufferSelect(t *testing.T) {
	ed := newMockEditor()
	ed.selected = "beta"
	L := newTestState(t, ed, "")

	script := `
		local pick = ad.minibuffer.select({"alpha", "beta", "gamma"}, "pick one")
		assert(pick == "beta", "picked " .. tostring(pick))
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script: %v", err)
	}

	if len(ed.gotCandidates) != 3 || ed.gotCandidates[1] != "beta" {
		t.Errorf("candidates = %q", ed.gotCandidates)
	}
	if ed.gotPrompt != "pick one" {
		t.Errorf("prompt = %q", ed.gotPrompt)
	}
}

func TestMinibufferCancelledYieldsNil(t *testing.T) {
	ed := newMockEditor()
	ed.selectErr = adclient.ErrCancelled
	L := newTestState(t, ed, "")

	script := `
		local pick = ad.minibuffer.select({"alpha"})
		assert(pick == nil, "expected nil on cancel")
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script: %v", err)
	}
}

func TestMinibufferRejectsNonStringCandidate(t *testing.T) {
	ed := newMockEditor()
	L := newTestState(t, ed, "")

	if err := L.DoString(`ad.minibuffer.select({"alpha", 42})`); err == nil {
		t.Error("select accepted a non-string candidate")
	}
}
