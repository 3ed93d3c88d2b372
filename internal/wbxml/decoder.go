// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

package wbxml

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrEmptyStream reports that the response stream contained zero bytes.
// This is not a protocol violation: a gzip-compressed empty body is a valid
// "no changes" reply, and callers treat it as a completed cycle.
var ErrEmptyStream = errors.New("wbxml: empty stream")

// ErrMalformed is wrapped by every parse failure so callers can classify
// with errors.Is without inspecting messages.
var ErrMalformed = errors.New("wbxml: malformed document")

// Decoder is a pull parser over one WBXML document. The typical walk is
// NextTag to descend into expected elements, Value to read leaf content,
// and Skip for anything the caller does not understand.
type Decoder struct {
	r      *bufio.Reader
	page   int
	stack  []Tag
	header bool

	// lastEmpty is set when NextTag returned an element with no content.
	// Value and Skip on such an element are no-ops: there is nothing on
	// the wire to consume.
	lastEmpty bool
}

// NewDecoder wraps r. The document header is consumed lazily on first use
// so that an empty stream can be distinguished from a bad header.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

func (d *Decoder) readHeader() error {
	if d.header {
		return nil
	}
	first, err := d.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyStream
		}
		return fmt.Errorf("%w: reading version: %v", ErrMalformed, err)
	}
	if first != headerVersion && first != 0x01 && first != 0x02 {
		return fmt.Errorf("%w: unsupported version 0x%02x", ErrMalformed, first)
	}
	// Public id, charset, string table length. EAS fixes all three but we
	// only hard-require the empty string table.
	if _, err := d.readMultiByteInt(); err != nil {
		return fmt.Errorf("%w: reading public id: %v", ErrMalformed, err)
	}
	if _, err := d.readMultiByteInt(); err != nil {
		return fmt.Errorf("%w: reading charset: %v", ErrMalformed, err)
	}
	tableLen, err := d.readMultiByteInt()
	if err != nil {
		return fmt.Errorf("%w: reading string table: %v", ErrMalformed, err)
	}
	if tableLen != 0 {
		return fmt.Errorf("%w: unexpected string table (%d bytes)", ErrMalformed, tableLen)
	}
	d.header = true
	return nil
}

// NextTag advances to the next start tag nested directly or indirectly
// inside parent. It returns ok=false once parent's end tag (or the end of
// the document, for the root) has been consumed. Text and opaque content
// encountered on the way is discarded.
//
// For the document root, call NextTag with parent < 0; the first start tag
// of the document is returned.
func (d *Decoder) NextTag(parent Tag) (Tag, bool, error) {
	if err := d.readHeader(); err != nil {
		return 0, false, err
	}
	d.lastEmpty = false
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && parent < 0 && len(d.stack) == 0 {
				return 0, false, nil
			}
			return 0, false, fmt.Errorf("%w: unexpected end of stream", ErrMalformed)
		}
		switch b {
		case tokenSwitchPage:
			p, err := d.r.ReadByte()
			if err != nil {
				return 0, false, fmt.Errorf("%w: truncated page switch", ErrMalformed)
			}
			d.page = int(p)
		case tokenEnd:
			if len(d.stack) == 0 {
				return 0, false, fmt.Errorf("%w: end tag at document level", ErrMalformed)
			}
			closed := d.stack[len(d.stack)-1]
			d.stack = d.stack[:len(d.stack)-1]
			if closed == parent {
				return 0, false, nil
			}
		case tokenStrI:
			if err := d.discardString(); err != nil {
				return 0, false, err
			}
		case tokenOpaque:
			if err := d.discardOpaque(); err != nil {
				return 0, false, err
			}
		default:
			if b&0x80 != 0 {
				return 0, false, fmt.Errorf("%w: attributes are not supported (token 0x%02x)", ErrMalformed, b)
			}
			t := Tag(d.page<<6 | int(b&0x3f))
			if b&contentBit != 0 {
				d.stack = append(d.stack, t)
				d.lastEmpty = false
				return t, true, nil
			}
			// Empty element, fully consumed already.
			d.lastEmpty = true
			return t, true, nil
		}
	}
}

// Depth returns how many elements are currently open.
func (d *Decoder) Depth() int { return len(d.stack) }

// Value reads the text content of the current element and consumes its end
// tag. Opaque content is returned as-is; an immediately closed element
// yields the empty string.
func (d *Decoder) Value() (string, error) {
	b, err := d.ValueBytes()
	return string(b), err
}

// ValueInt reads the current element's content as a decimal integer.
func (d *Decoder) ValueInt() (int, error) {
	s, err := d.Value()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: expected integer content, got %q", ErrMalformed, s)
	}
	return v, nil
}

// ValueBytes reads the raw content of the current element and consumes its
// end tag.
func (d *Decoder) ValueBytes() ([]byte, error) {
	if d.lastEmpty {
		d.lastEmpty = false
		return nil, nil
	}
	if len(d.stack) == 0 {
		return nil, fmt.Errorf("%w: value outside any element", ErrMalformed)
	}
	var out []byte
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: unexpected end of stream in value", ErrMalformed)
		}
		switch b {
		case tokenEnd:
			d.stack = d.stack[:len(d.stack)-1]
			return out, nil
		case tokenStrI:
			s, err := d.readString()
			if err != nil {
				return nil, err
			}
			out = append(out, s...)
		case tokenOpaque:
			o, err := d.readOpaque()
			if err != nil {
				return nil, err
			}
			out = append(out, o...)
		case tokenSwitchPage:
			if _, err := d.r.ReadByte(); err != nil {
				return nil, fmt.Errorf("%w: truncated page switch", ErrMalformed)
			}
		default:
			return nil, fmt.Errorf("%w: element content mixed with tags (token 0x%02x)", ErrMalformed, b)
		}
	}
}

// Skip discards the rest of the current element, including nested elements,
// and consumes its end tag. After an empty element it is a no-op.
func (d *Decoder) Skip() error {
	if d.lastEmpty {
		d.lastEmpty = false
		return nil
	}
	if len(d.stack) == 0 {
		return fmt.Errorf("%w: skip outside any element", ErrMalformed)
	}
	target := len(d.stack) - 1
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: unexpected end of stream in skip", ErrMalformed)
		}
		switch b {
		case tokenSwitchPage:
			p, err := d.r.ReadByte()
			if err != nil {
				return fmt.Errorf("%w: truncated page switch", ErrMalformed)
			}
			d.page = int(p)
		case tokenEnd:
			d.stack = d.stack[:len(d.stack)-1]
			if len(d.stack) == target {
				return nil
			}
		case tokenStrI:
			if err := d.discardString(); err != nil {
				return err
			}
		case tokenOpaque:
			if err := d.discardOpaque(); err != nil {
				return err
			}
		default:
			if b&0x80 != 0 {
				return fmt.Errorf("%w: attributes are not supported (token 0x%02x)", ErrMalformed, b)
			}
			if b&contentBit != 0 {
				d.stack = append(d.stack, Tag(d.page<<6|int(b&0x3f)))
			}
		}
	}
}

func (d *Decoder) readString() ([]byte, error) {
	s, err := d.r.ReadBytes(0x00)
	if err != nil {
		return nil, fmt.Errorf("%w: unterminated inline string", ErrMalformed)
	}
	return s[:len(s)-1], nil
}

func (d *Decoder) discardString() error {
	_, err := d.readString()
	return err
}

func (d *Decoder) readOpaque() ([]byte, error) {
	n, err := d.readMultiByteInt()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated opaque length", ErrMalformed)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, fmt.Errorf("%w: truncated opaque data", ErrMalformed)
	}
	return buf, nil
}

func (d *Decoder) discardOpaque() error {
	_, err := d.readOpaque()
	return err
}

func (d *Decoder) readMultiByteInt() (int, error) {
	v := 0
	for i := 0; i < 5; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, err
		}
		v = v<<7 | int(b&0x7f)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: multi-byte integer too long", ErrMalformed)
}
