package at

import (
	"bufio"
	"bytes"
)

// Splitter is used for tokenizing WiFi module and console output. It uses
// the signature of bufio.SplitFunc so it can be directly used with
// bufio.Scanner.
//
// Lines are terminated by LF. A trailing CR is dropped from the token, so
// both "OK\n" and "OK\r\n" yield "OK".
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, LF); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[0:i], []byte{CR}), nil
	}

	if atEOF {
		return len(data), bytes.TrimSuffix(data, []byte{CR}), nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

// Match reports the first keyword of kws, in the given order, that occurs
// anywhere in line. Order matters: "SEND OK" must be listed before "OK"
// when both are expected.
func Match(line []byte, kws ...Keyword) (Keyword, bool) {
	for _, kw := range kws {
		if bytes.Contains(line, []byte(kw)) {
			return kw, true
		}
	}
	return "", false
}
