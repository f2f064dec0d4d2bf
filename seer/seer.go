// Package seer implements the verdict header that the classifier under
// evaluation sends back for every probe it has seen.
//
//	+--------+-----+-------+-----+------------+-------+
//	| "SEER" | VER | FLAGS | LEN |    DATA    | CRC32 |
//	+--------+-----+-------+-----+------------+-------+
//	|   4    |  1  |   1   |  2  |  Variable  |   4   |
//	+--------+-----+-------+-----+------------+-------+
//
// All integers are big-endian. DATA is the payload of the probe the
// verdict refers to. CRC32 (IEEE) covers every preceding byte.
package seer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"math"
)

const (
	Version1 = 0x01
)

const (
	// FlagMalicious marks a verdict classifying the probe as malicious.
	FlagMalicious uint8 = 0x01
)

const (
	HeaderLen  = 8
	TrailerLen = 4
	MaxDataLen = math.MaxUint16
)

var (
	Magic = [4]byte{'S', 'E', 'E', 'R'}
)

var (
	ErrShortBuffer     = errors.New("seer: short buffer")
	ErrBadMagic        = errors.New("seer: bad magic")
	ErrBadVersion      = errors.New("seer: bad version")
	ErrBadLength       = errors.New("seer: length mismatch")
	ErrChecksum        = errors.New("seer: checksum mismatch")
	ErrPayloadTooLarge = errors.New("seer: payload too large")
)

// Verdict is the classifier's prediction for a single probe.
type Verdict struct {
	Malicious bool
	Payload   []byte
}

func (v *Verdict) flags() (flags uint8) {
	if v.Malicious {
		flags |= FlagMalicious
	}
	return
}

// MarshalBinary encodes the verdict into a single wire unit.
func (v *Verdict) MarshalBinary() ([]byte, error) {
	if len(v.Payload) > MaxDataLen {
		return nil, ErrPayloadTooLarge
	}

	b := make([]byte, HeaderLen+len(v.Payload)+TrailerLen)
	copy(b[:4], Magic[:])
	b[4] = Version1
	b[5] = v.flags()
	binary.BigEndian.PutUint16(b[6:8], uint16(len(v.Payload)))
	n := HeaderLen + copy(b[HeaderLen:], v.Payload)
	binary.BigEndian.PutUint32(b[n:], crc32.ChecksumIEEE(b[:n]))

	return b, nil
}

// UnmarshalBinary decodes a complete wire unit. Bytes following the
// trailer are rejected.
func (v *Verdict) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderLen+TrailerLen {
		return ErrShortBuffer
	}
	if !IsVerdict(b) {
		return ErrBadMagic
	}
	if b[4] != Version1 {
		return ErrBadVersion
	}

	dlen := int(binary.BigEndian.Uint16(b[6:8]))
	if len(b) != HeaderLen+dlen+TrailerLen {
		return ErrBadLength
	}

	n := HeaderLen + dlen
	if crc32.ChecksumIEEE(b[:n]) != binary.BigEndian.Uint32(b[n:]) {
		return ErrChecksum
	}

	v.Malicious = b[5]&FlagMalicious != 0
	v.Payload = bytes.Clone(b[HeaderLen:n])
	return nil
}

// ReadFrom reads exactly one verdict from a stream.
func (v *Verdict) ReadFrom(r io.Reader) (n int64, err error) {
	var header [HeaderLen]byte
	nn, err := io.ReadFull(r, header[:])
	n += int64(nn)
	if err != nil {
		return
	}

	dlen := int(binary.BigEndian.Uint16(header[6:8]))
	b := make([]byte, HeaderLen+dlen+TrailerLen)
	copy(b, header[:])
	nn, err = io.ReadFull(r, b[HeaderLen:])
	n += int64(nn)
	if err != nil {
		return
	}

	err = v.UnmarshalBinary(b)
	return
}

// WriteTo writes the encoded verdict to w.
func (v *Verdict) WriteTo(w io.Writer) (n int64, err error) {
	b, err := v.MarshalBinary()
	if err != nil {
		return
	}
	nn, err := w.Write(b)
	return int64(nn), err
}

// Decode parses a wire unit into a verdict.
func Decode(b []byte) (Verdict, error) {
	var v Verdict
	err := v.UnmarshalBinary(b)
	return v, err
}

// IsVerdict reports whether b starts with the seer magic. It does not
// validate the rest of the unit.
func IsVerdict(b []byte) bool {
	return len(b) >= len(Magic) && bytes.Equal(b[:len(Magic)], Magic[:])
}
