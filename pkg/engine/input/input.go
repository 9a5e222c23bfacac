package input

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"
)

// LineReader reads commands line by line, e.g. from stdin when the viewer
// runs in a terminal
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps r
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next reads the next non-empty line as a raw terminal event. It returns
// io.EOF when the input ends.
func (l *LineReader) Next() (RawInput, error) {
	for {
		line, err := l.r.ReadString('\n')
		code := strings.TrimSpace(line)
		if code != "" {
			return RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return RawInput{}, io.EOF
			}
			return RawInput{}, err
		}
	}
}
