package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/weaver-sensing/weaver/at"
)

var errTimeout = errors.New("no reply from node")

// client sends one console request at a time and waits for its JSON
// reply line. Lines that are not JSON objects, such as log output or an
// echo, are skipped.
type client struct {
	conn    io.ReadWriter
	timeout time.Duration
	buf     []byte
	chunk   []byte
}

func newClient(conn io.ReadWriter, timeout time.Duration) *client {
	return &client{conn: conn, timeout: timeout, chunk: make([]byte, 256)}
}

func (c *client) request(line string, reply any) error {
	c.buf = c.buf[:0]
	if _, err := io.WriteString(c.conn, line+at.CRLF); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	deadline := time.Now().Add(c.timeout)
	for {
		for {
			advance, token, _ := at.Splitter(c.buf, false)
			if advance == 0 {
				break
			}
			c.buf = c.buf[advance:]
			if len(token) > 0 && token[0] == '{' {
				if err := json.Unmarshal(token, reply); err != nil {
					return fmt.Errorf("decode reply %q: %w", token, err)
				}
				return nil
			}
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w within %s", errTimeout, c.timeout)
		}
		n, err := c.conn.Read(c.chunk)
		c.buf = append(c.buf, c.chunk[:n]...)
		if err != nil {
			return fmt.Errorf("read reply: %w", err)
		}
	}
}
