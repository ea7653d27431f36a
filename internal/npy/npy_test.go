package npy

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		descr string
		shape []int
		dict  string
	}{
		{"|u1", []int{2, 3}, "{'descr': '|u1', 'fortran_order': False, 'shape': (2, 3), }"},
		{"<i8", []int{5}, "{'descr': '<i8', 'fortran_order': False, 'shape': (5,), }"},
		{"<i8", []int{}, "{'descr': '<i8', 'fortran_order': False, 'shape': (), }"},
	}
	for _, tt := range tests {
		hdr, err := Header(tt.descr, tt.shape)
		if err != nil {
			t.Fatal(err)
		}
		if len(hdr)%64 != 0 {
			t.Errorf("%v: header length %d not 64-aligned", tt.shape, len(hdr))
		}
		if string(hdr[:6]) != Magic || hdr[6] != 1 || hdr[7] != 0 {
			t.Errorf("%v: bad preamble %q", tt.shape, hdr[:8])
		}
		n := int(binary.LittleEndian.Uint16(hdr[8:10]))
		if n != len(hdr)-10 {
			t.Errorf("%v: header length field %d, want %d", tt.shape, n, len(hdr)-10)
		}
		dict := string(hdr[10:])
		if !strings.HasPrefix(dict, tt.dict) || !strings.HasSuffix(dict, "\n") {
			t.Errorf("%v: dict = %q", tt.shape, dict)
		}
	}
}

func TestWriteUint8(t *testing.T) {
	var buf bytes.Buffer
	data := []uint8{1, 0, 1, 0, 0, 1}
	if err := WriteUint8(&buf, []int{2, 3}, data); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	if !bytes.Equal(out[len(out)-6:], data) {
		t.Errorf("payload = %v, want %v", out[len(out)-6:], data)
	}
	if err := WriteUint8(&buf, []int{2, 2}, data); err == nil {
		t.Error("expected shape mismatch error")
	}
}

func TestWriteInt64File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "y.npy")
	err := WriteFile(path, func(w io.Writer) error {
		return WriteInt64(w, []int{3}, []int64{1, 0, 1})
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	payload := out[len(out)-24:]
	for i, want := range []int64{1, 0, 1} {
		if got := int64(binary.LittleEndian.Uint64(payload[i*8:])); got != want {
			t.Errorf("y[%d] = %d, want %d", i, got, want)
		}
	}
	if (len(out)-24)%64 != 0 {
		t.Errorf("payload does not start on a 64-byte boundary")
	}
}
