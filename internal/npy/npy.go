// Package npy writes arrays in NumPy's .npy format (version 1.0).
package npy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Magic is the .npy file prefix.
const Magic = "\x93NUMPY"

const headerAlign = 64

// Header builds the padded version 1.0 header for dtype descr and shape.
func Header(descr string, shape []int) ([]byte, error) {
	dims := make([]string, len(shape))
	for i, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("npy: negative dimension %d", d)
		}
		dims[i] = strconv.Itoa(d)
	}
	shapeStr := "(" + strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeStr += ","
	}
	shapeStr += ")"

	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, shapeStr)
	// magic(6) + version(2) + length(2) + dict + padding + '\n'
	total := len(Magic) + 4 + len(dict) + 1
	pad := (headerAlign - total%headerAlign) % headerAlign
	dict += strings.Repeat(" ", pad) + "\n"
	if len(dict) > 0xffff {
		return nil, fmt.Errorf("npy: header too long (%d bytes)", len(dict))
	}

	buf := make([]byte, 0, len(Magic)+4+len(dict))
	buf = append(buf, Magic...)
	buf = append(buf, 1, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(dict)))
	buf = append(buf, dict...)
	return buf, nil
}

// WriteUint8 writes a C-ordered uint8 array.
func WriteUint8(w io.Writer, shape []int, data []uint8) error {
	if err := checkSize(shape, len(data)); err != nil {
		return err
	}
	hdr, err := Header("|u1", shape)
	if err != nil {
		return err
	}
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteInt64 writes a C-ordered little-endian int64 array.
func WriteInt64(w io.Writer, shape []int, data []int64) error {
	if err := checkSize(shape, len(data)); err != nil {
		return err
	}
	hdr, err := Header("<i8", shape)
	if err != nil {
		return err
	}
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

// WriteFile creates path and writes the array with write.
func WriteFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func checkSize(shape []int, n int) error {
	size := 1
	for _, d := range shape {
		size *= d
	}
	if size != n {
		return fmt.Errorf("npy: shape %v holds %d elements, got %d", shape, size, n)
	}
	return nil
}
