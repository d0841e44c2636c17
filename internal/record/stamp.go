// Package record holds the fixed-size binary layouts that timestamps are packed into. All layouts are encoded with
// the [struc] library.
package record

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/itchio/headway/counter"
	"github.com/lunixbochs/struc"
	"io"
)

var (
	// ErrBufferSize indicates that an encoded record does not have the size of its layout
	ErrBufferSize = errors.New("encoded record has the wrong size")

	// ErrOutOfRange indicates that a value cannot be represented by the fields of a record
	ErrOutOfRange = errors.New("value out of range for record")
)

// StampSize is the encoded size of a [Stamp] in bytes
const StampSize = 16

// Stamp is the binary form of a timestamp: the Julian Day Number followed by nanoseconds since midnight, each a
// big endian two's complement 64-bit integer.
type Stamp struct {
	JDN        int64 `struc:"int64,big"`
	NanosOfDay int64 `struc:"int64,big"`
}

// Ensure Stamp implements [io.WriterTo]
var _ io.WriterTo = &Stamp{}

func (s *Stamp) WriteTo(w io.Writer) (int64, error) {
	return pack(w, s)
}

// UnpackStamp decodes a [Stamp] from exactly [StampSize] bytes
func UnpackStamp(b []byte) (Stamp, error) {
	var s Stamp
	if err := unpack(b, StampSize, &s); err != nil {
		return Stamp{}, err
	}

	return s, nil
}

func pack(w io.Writer, data any) (int64, error) {
	cw := counter.NewWriter(w)

	if err := struc.Pack(cw, data); err != nil {
		return cw.Count(), fmt.Errorf("could not pack record: %w", err)
	}

	return cw.Count(), nil
}

func unpack(b []byte, size int, data any) error {
	if len(b) != size {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrBufferSize, size, len(b))
	}

	if err := struc.Unpack(bytes.NewReader(b), data); err != nil {
		return fmt.Errorf("could not unpack record: %w", err)
	}

	return nil
}
