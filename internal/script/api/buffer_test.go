package api

import (
	"strings"
	"testing"
)

func TestBufferDefaultsToLaunchBuffer(t *testing.T) {
	ed := newMockEditor()
	ed.reads["body/1"] = "hello\n"
	L := newTestState(t, ed, "1")

	script := `
		local body = ad.buf.body()
		assert(body == "hello\n", "unexpected body: " .. body)
		ad.buf.write_dot("replaced")
		ad.buf.clear()
		ad.buf.to_bof()
		ad.buf.to_eof()
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script: %v", err)
	}

	want := []string{
		"Read body 1",
		`Write dot 1 "replaced"`,
		"ClearBuffer 1",
		"CurToBOF 1",
		"CurToEOF 1",
	}
	got := ed.callLog()
	if len(got) != len(want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBufferExplicitID(t *testing.T) {
	ed := newMockEditor()
	ed.reads["dot/7"] = "selected text"
	L := newTestState(t, ed, "1")

	script := `
		assert(ad.buf.dot("7") == "selected text")
		ad.buf.write_addr("7", "$")
		ad.buf.write_xaddr("7", ",")
		ad.buf.write_xdot("7", "")
		ad.buf.append("7", "tail\n")
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script: %v", err)
	}

	want := []string{
		"Read dot 7",
		`Write addr 7 "$"`,
		`Write xaddr 7 ","`,
		`Write xdot 7 ""`,
		`Write body 7 "tail\n"`,
	}
	got := ed.callLog()
	if len(got) != len(want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBufferFocusAndIndex(t *testing.T) {
	ed := newMockEditor()
	ed.current = "3"
	ed.index = "1 /tmp/a.txt\n3 /tmp/b.txt\n"
	L := newTestState(t, ed, "")

	script := `
		assert(ad.buf.current() == "3")
		ad.buf.focus("1")
		local index = ad.buf.index()
		assert(string.find(index, "/tmp/b.txt", 1, true) ~= nil)
	`
	if err := L.DoString(script); err != nil {
		t.Fatalf("script: %v", err)
	}
}

func TestBufferNoDefaultIDOutsideEditor(t *testing.T) {
	ed := newMockEditor()
	L := newTestState(t, ed, "")

	err := L.DoString(`ad.buf.body()`)
	if err == nil {
		t.Fatal("body() succeeded with no buffer id available")
	}
	if !strings.Contains(err.Error(), "not running inside ad") {
		t.Errorf("err = %v", err)
	}
}
