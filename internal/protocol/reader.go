package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is returned when engine input does not match the protocol.
var ErrMalformed = errors.New("malformed engine input")

// lineReader reads the engine's newline-terminated lines.
type lineReader struct {
	r    *bufio.Reader
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// readLine returns the next line without its terminator. A clean end of
// input before any byte is read returns io.EOF; a truncated line returns
// io.ErrUnexpectedEOF.
func (lr *lineReader) readLine() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if s == "" {
				return "", io.EOF
			}
			return "", io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("read line %d: %w", lr.line+1, err)
	}
	lr.line++
	return strings.TrimRight(s, "\r\n"), nil
}

// readInts reads one line holding exactly n integers.
func (lr *lineReader) readInts(n int) ([]int, error) {
	s, err := lr.readLine()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("line %d: want %d fields, got %d: %w", lr.line, n, len(fields), ErrMalformed)
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("line %d field %d: %q: %w", lr.line, i, f, ErrMalformed)
		}
		out[i] = v
	}
	return out, nil
}

// unexpectedEOF turns io.EOF into io.ErrUnexpectedEOF for reads that happen
// in the middle of a message.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
