// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package bmp writes packed pixel buffers as uncompressed 24-bit BMP files.
//
// The encoder takes the buffer an engine rendered into directly: packed
// premultiplied A<<24|R<<16|G<<8|B pixels. Partially transparent pixels are
// unpremultiplied on the fly and alpha is dropped. Rows are stored bottom-up
// as B,G,R triples padded to a multiple of four bytes.
package bmp

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/frameplay/internal/pixel"
)

// Errors returned by Encode and WriteFile.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("bmp: invalid dimensions")

	// ErrBufferTooSmall is returned when the buffer holds fewer than
	// width*height pixels.
	ErrBufferTooSmall = errors.New("bmp: pixel buffer too small")
)

// Header sizes in bytes.
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	HeaderSize     = FileHeaderSize + InfoHeaderSize
)

const bitsPerPixel = 24

// RowBytes returns the padded size of one stored row.
func RowBytes(width int) int {
	return ((width*3 + 3) / 4) * 4
}

// FileSize returns the total size of a width x height file.
func FileSize(width, height int) int {
	return HeaderSize + RowBytes(width)*height
}

// Encode writes pix as a BMP image to w. pix holds width*height packed
// pixels in row-major order, top row first.
//
//nolint:gosec // G115: dimensions are validated positive and sizes fit uint32 for any addressable buffer
func Encode(w io.Writer, pix []uint32, width, height int) error {
	if err := validate(pix, width, height); err != nil {
		return err
	}

	rowBytes := RowBytes(width)

	var hdr [HeaderSize]byte
	le := binary.LittleEndian

	// BITMAPFILEHEADER
	hdr[0], hdr[1] = 'B', 'M'
	le.PutUint32(hdr[2:], uint32(FileSize(width, height)))
	le.PutUint32(hdr[10:], HeaderSize)

	// BITMAPINFOHEADER
	le.PutUint32(hdr[14:], InfoHeaderSize)
	le.PutUint32(hdr[18:], uint32(width))
	le.PutUint32(hdr[22:], uint32(height)) // positive: bottom-up
	le.PutUint16(hdr[26:], 1)
	le.PutUint16(hdr[28:], bitsPerPixel)
	le.PutUint32(hdr[34:], uint32(rowBytes*height))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("bmp: write header: %w", err)
	}

	row := make([]byte, rowBytes)
	for y := height - 1; y >= 0; y-- {
		src := pix[y*width : (y+1)*width]
		for x, p := range src {
			_, r, g, b := pixel.Unpack(pixel.UnpremultiplyPixel(p))
			row[x*3+0] = b
			row[x*3+1] = g
			row[x*3+2] = r
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("bmp: write row %d: %w", y, err)
		}
	}
	return nil
}

// WriteFile encodes pix into a new file at path, replacing any existing file.
// On failure a partially written file may remain.
func WriteFile(path string, pix []uint32, width, height int) (err error) {
	if err := validate(pix, width, height); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bmp: create: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("bmp: close: %w", cerr)
		}
	}()

	bw := bufio.NewWriterSize(f, HeaderSize+RowBytes(width)*min(height, 64))
	if err := Encode(bw, pix, width, height); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("bmp: write: %w", err)
	}
	return nil
}

func validate(pix []uint32, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pix) < width*height {
		return fmt.Errorf("%w: have %d pixels, need %d", ErrBufferTooSmall, len(pix), width*height)
	}
	return nil
}
