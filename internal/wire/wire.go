package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const (
	version      byte = 1
	KindValue    byte = 1
	KindNegative byte = 2

	hdrLen = 4 + 1 + 1 + 8 + 4
)

var (
	ErrCorrupt = errors.New("asidecache: corrupt entry")
	magic4     = [...]byte{'A', 'S', 'D', 'E'}
)

// Entry is a decoded store record. ExpiresAt is zero when the entry never expires.
type Entry struct {
	Kind      byte
	ExpiresAt time.Time
	Payload   []byte
}

// Expired reports whether the entry is past its deadline at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// magic(4) | ver(1) | kind(1) | expiresAt(i64 be, unix nanos, 0=none) | vlen(u32 be) | payload(vlen)
func Encode(kind byte, expiresAt time.Time, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kind)

	var u8 [8]byte
	var u4 [4]byte

	var exp int64
	if !expiresAt.IsZero() {
		exp = expiresAt.UnixNano()
	}
	binary.BigEndian.PutUint64(u8[:], uint64(exp))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// EncodeValue frames a positive entry.
func EncodeValue(expiresAt time.Time, payload []byte) []byte {
	return Encode(KindValue, expiresAt, payload)
}

// EncodeNegative frames a not-found marker. It never carries a payload.
func EncodeNegative(expiresAt time.Time) []byte {
	return Encode(KindNegative, expiresAt, nil)
}

func Decode(b []byte) (Entry, error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return Entry{}, ErrCorrupt
	}
	kind := b[5]
	if kind != KindValue && kind != KindNegative {
		return Entry{}, ErrCorrupt
	}

	off := 6

	exp := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8
	if exp < 0 {
		return Entry{}, ErrCorrupt
	}

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	// exact length: rejects truncation and trailing junk alike
	if vlen < 0 || vlen != len(b)-off {
		return Entry{}, ErrCorrupt
	}
	if kind == KindNegative && vlen != 0 {
		return Entry{}, ErrCorrupt
	}

	e := Entry{Kind: kind, Payload: b[off : off+vlen]}
	if exp != 0 {
		e.ExpiresAt = time.Unix(0, exp)
	}
	return e, nil
}
