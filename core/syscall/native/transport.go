package native

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gogo/protobuf/proto"
)

// checksumSize is the length of the frame checksum, the same 4-byte
// truncated-double-SHA256 prefix the Bitcoin wire protocol uses to catch a
// corrupted message before it reaches the protobuf decoder.
const checksumSize = 4

// Conn frames Envelope messages over an underlying stream (a pipe or
// socket to the native executor subprocess): a 4-byte big-endian length
// prefix, a 4-byte checksum, then the protobuf-encoded Envelope, per
// spec.md §4.5 "Protocol is framed".
type Conn struct {
	rw io.ReadWriter
}

// NewConn wraps rw (typically the two ends of an os.Pipe to the executor
// subprocess) as a framed Envelope transport.
func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{rw: rw}
}

// frameChecksum returns the Bitcoin-style checksum for a frame body: the
// first 4 bytes of its double-SHA256 digest.
func frameChecksum(data []byte) [checksumSize]byte {
	digest := chainhash.DoubleHashB(data)
	var sum [checksumSize]byte
	copy(sum[:], digest[:checksumSize])
	return sum
}

// Send marshals and frames one Envelope.
func (c *Conn) Send(e *Envelope) error {
	data, err := proto.Marshal(e)
	if err != nil {
		return fmt.Errorf("native: marshal envelope: %w", err)
	}
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(data)))
	sum := frameChecksum(data)
	if _, err := c.rw.Write(lenPrefix[:]); err != nil {
		return fmt.Errorf("native: write frame length: %w", err)
	}
	if _, err := c.rw.Write(sum[:]); err != nil {
		return fmt.Errorf("native: write frame checksum: %w", err)
	}
	if _, err := c.rw.Write(data); err != nil {
		return fmt.Errorf("native: write frame body: %w", err)
	}
	return nil
}

// Receive reads and unmarshals one framed Envelope, rejecting it if the
// body doesn't match its checksum.
func (c *Conn) Receive() (*Envelope, error) {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(c.rw, lenPrefix[:]); err != nil {
		return nil, fmt.Errorf("native: read frame length: %w", err)
	}
	n := binary.BigEndian.Uint32(lenPrefix[:])

	var wantSum [checksumSize]byte
	if _, err := io.ReadFull(c.rw, wantSum[:]); err != nil {
		return nil, fmt.Errorf("native: read frame checksum: %w", err)
	}

	data := make([]byte, n)
	if _, err := io.ReadFull(c.rw, data); err != nil {
		return nil, fmt.Errorf("native: read frame body: %w", err)
	}
	if gotSum := frameChecksum(data); !bytes.Equal(gotSum[:], wantSum[:]) {
		return nil, fmt.Errorf("native: frame checksum mismatch")
	}

	var e Envelope
	if err := proto.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("native: unmarshal envelope: %w", err)
	}
	return &e, nil
}
