package wire

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func mustDecode(t *testing.T, b []byte) Entry {
	t.Helper()
	e, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return e
}

func TestValueRTEmptyAndNonEmpty(t *testing.T) {
	exp := time.Unix(1700000000, 123456789)
	cases := []struct {
		exp     time.Time
		payload []byte
	}{
		{time.Time{}, nil},
		{exp, []byte("Data from database")},
		{exp, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		e := mustDecode(t, EncodeValue(tc.exp, tc.payload))
		if e.Kind != KindValue {
			t.Fatalf("kind: got %d want %d", e.Kind, KindValue)
		}
		if !e.ExpiresAt.Equal(tc.exp) {
			t.Fatalf("expiresAt: got %v want %v", e.ExpiresAt, tc.exp)
		}
		if !bytes.Equal(e.Payload, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", e.Payload, tc.payload)
		}
	}
}

func TestNegativeRT(t *testing.T) {
	exp := time.Unix(1700000000, 0)
	e := mustDecode(t, EncodeNegative(exp))
	if e.Kind != KindNegative {
		t.Fatalf("kind: got %d want %d", e.Kind, KindNegative)
	}
	if len(e.Payload) != 0 {
		t.Fatalf("negative entry carries payload %x", e.Payload)
	}
	if !e.ExpiresAt.Equal(exp) {
		t.Fatalf("expiresAt: got %v want %v", e.ExpiresAt, exp)
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := EncodeValue(time.Time{}, []byte("x"))
	enc = append(enc, 0xDE, 0xAD)
	if _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := EncodeValue(time.Unix(10, 0), []byte("abc"))

	mutate := func(f func(b []byte) []byte) []byte {
		return f(append([]byte(nil), enc...))
	}

	cases := map[string][]byte{
		"empty":     nil,
		"short":     enc[:hdrLen-1],
		"bad magic": mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
		"bad ver":   mutate(func(b []byte) []byte { b[4] = version + 1; return b }),
		"bad kind":  mutate(func(b []byte) []byte { b[5] = 9; return b }),
		"truncated": enc[:len(enc)-1],
		"vlen too big": mutate(func(b []byte) []byte {
			binary.BigEndian.PutUint32(b[14:18], 1<<31)
			return b
		}),
		"negative expiry": mutate(func(b []byte) []byte {
			b[6] = 0x80
			return b
		}),
		"negative with payload": mutate(func(b []byte) []byte { b[5] = KindNegative; return b }),
	}
	for name, b := range cases {
		if _, err := Decode(b); err != ErrCorrupt {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
}

func TestExpired(t *testing.T) {
	now := time.Unix(100, 0)
	cases := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{"no expiry", time.Time{}, false},
		{"future", now.Add(time.Second), false},
		{"exact", now, true},
		{"past", now.Add(-time.Nanosecond), true},
	}
	for _, tc := range cases {
		if got := (Entry{ExpiresAt: tc.exp}).Expired(now); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}
