package terminal

import (
	"bytes"
	"testing"
)

func TestSize_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Error("bytes.Buffer reported as terminal")
	}
	w, h := Size(&buf)
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
	if got := Width(&buf); got != DefaultWidth {
		t.Errorf("Width = %d, want %d", got, DefaultWidth)
	}
}
