package scpi

import (
	"bufio"
	"bytes"
)

// Splitter returns a bufio.SplitFunc that tokenizes an instrument reply
// stream on the given terminator. The terminator is configurable because
// instruments disagree on framing ("\n", "\r\n", sometimes "\r").
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining unterminated data is returned as the final
// token, matching how instruments flush a last partial line on close.
func Splitter(terminator string) bufio.SplitFunc {
	term := []byte(terminator)
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		if i := bytes.Index(data, term); i >= 0 {
			return i + len(term), data[0:i], nil
		}

		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
