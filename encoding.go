package utc

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding"
	"errors"
	"fmt"
	"github.com/davejbax/go-utc/internal/record"
	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"io"
	"time"
)

var (
	_ encoding.TextMarshaler     = Timestamp{}
	_ encoding.TextUnmarshaler   = (*Timestamp)(nil)
	_ encoding.BinaryMarshaler   = Timestamp{}
	_ encoding.BinaryUnmarshaler = (*Timestamp)(nil)
	_ json.Marshaler             = Timestamp{}
	_ json.Unmarshaler           = (*Timestamp)(nil)
	_ cbor.Marshaler             = Timestamp{}
	_ cbor.Unmarshaler           = (*Timestamp)(nil)
	_ msgpack.CustomEncoder      = Timestamp{}
	_ msgpack.CustomDecoder      = (*Timestamp)(nil)
	_ sql.Scanner                = (*Timestamp)(nil)
	_ driver.Valuer              = Timestamp{}
	_ io.WriterTo                = Timestamp{}
)

var errUnsupportedSource = errors.New("unsupported source type for timestamp")

// MarshalText writes t in the [ISO8601] layout
func (t Timestamp) MarshalText() ([]byte, error) {
	return t.AppendFormat(nil, ISO8601), nil
}

// UnmarshalText reads any text accepted by [Parse]
func (t *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("timestamp must be a JSON string: %w", err)
	}

	return t.UnmarshalText([]byte(text))
}

// WriteTo writes the 16-byte binary form of t: the Julian Day Number, then nanoseconds since midnight, each as a
// big endian 64-bit integer
func (t Timestamp) WriteTo(w io.Writer) (int64, error) {
	stamp := record.Stamp{JDN: t.jdn, NanosOfDay: t.nsOfDay}
	return stamp.WriteTo(w)
}

// MarshalBinary returns the binary form written by [Timestamp.WriteTo]
func (t Timestamp) MarshalBinary() ([]byte, error) {
	return packRecord(t)
}

func (t *Timestamp) UnmarshalBinary(data []byte) error {
	stamp, err := record.UnpackStamp(data)
	if err != nil {
		return fmt.Errorf("invalid binary timestamp: %w", err)
	}

	*t = New(stamp.JDN, stamp.NanosOfDay)
	return nil
}

type cborTimestamp struct {
	JDN        int64 `cbor:"0,keyasint"`
	NanosOfDay int64 `cbor:"1,keyasint"`
}

// MarshalCBOR encodes t as the map {0: JDN, 1: nanoseconds of day}
func (t Timestamp) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cborTimestamp{JDN: t.jdn, NanosOfDay: t.nsOfDay})
}

func (t *Timestamp) UnmarshalCBOR(data []byte) error {
	var decoded cborTimestamp
	if err := cbor.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("invalid CBOR timestamp: %w", err)
	}

	*t = New(decoded.JDN, decoded.NanosOfDay)
	return nil
}

// EncodeMsgpack encodes t as the array [JDN, nanoseconds of day]
func (t Timestamp) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}

	if err := enc.EncodeInt(t.jdn); err != nil {
		return err
	}

	return enc.EncodeInt(t.nsOfDay)
}

func (t *Timestamp) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("invalid msgpack timestamp: %w", err)
	}

	if n != 2 {
		return fmt.Errorf("invalid msgpack timestamp: expected array of 2 elements, got %d", n)
	}

	jdn, err := dec.DecodeInt64()
	if err != nil {
		return fmt.Errorf("invalid msgpack timestamp day number: %w", err)
	}

	nsOfDay, err := dec.DecodeInt64()
	if err != nil {
		return fmt.Errorf("invalid msgpack timestamp nanoseconds: %w", err)
	}

	*t = New(jdn, nsOfDay)
	return nil
}

// Value stores t as [ISO8601] text, which every database driver accepts
func (t Timestamp) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan reads a [time.Time] or ISO-8601 text from a database column
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = FromTime(v)
		return nil
	case string:
		return t.UnmarshalText([]byte(v))
	case []byte:
		return t.UnmarshalText(v)
	}

	return fmt.Errorf("%w: %T", errUnsupportedSource, src)
}

func packRecord(r io.WriterTo) ([]byte, error) {
	buff := bytes.NewBuffer(nil)
	if _, err := r.WriteTo(buff); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}
