package wbxml

import (
	"bytes"
	"fmt"
)

// WBXML global tokens used by EAS bodies.
const (
	tokenSwitchPage = 0x00
	tokenEnd        = 0x01
	tokenStrI       = 0x03
	tokenOpaque     = 0xC3

	contentBit = 0x40

	headerVersion  = 0x03 // WBXML 1.3
	headerPublicID = 0x01 // unknown public identifier
	headerCharset  = 0x6A // UTF-8
	headerStrTable = 0x00 // empty string table
)

// Encoder builds one WBXML command body. Calls chain in document order:
//
//	e := wbxml.NewEncoder()
//	e.Start(wbxml.SyncSync).Start(wbxml.SyncCollections)
//	e.Data(wbxml.SyncSyncKey, "0")
//	e.End().End()
//	body, err := e.Bytes()
//
// The first error sticks; subsequent calls are no-ops and Bytes reports it.
type Encoder struct {
	buf   bytes.Buffer
	page  int
	stack []Tag
	err   error
}

// NewEncoder returns an encoder with the WBXML document header already
// written.
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.buf.Write([]byte{headerVersion, headerPublicID, headerCharset, headerStrTable})
	return e
}

// Start opens an element that will carry content. It must be balanced by a
// matching End call.
func (e *Encoder) Start(t Tag) *Encoder {
	if e.err != nil {
		return e
	}
	e.switchPage(t)
	e.buf.WriteByte(t.Token() | contentBit)
	e.stack = append(e.stack, t)
	return e
}

// End closes the most recently started element.
func (e *Encoder) End() *Encoder {
	if e.err != nil {
		return e
	}
	if len(e.stack) == 0 {
		e.err = fmt.Errorf("wbxml: end without matching start")
		return e
	}
	e.stack = e.stack[:len(e.stack)-1]
	e.buf.WriteByte(tokenEnd)
	return e
}

// Tag writes an empty element (no content, no End needed), e.g. Partial.
func (e *Encoder) Tag(t Tag) *Encoder {
	if e.err != nil {
		return e
	}
	e.switchPage(t)
	e.buf.WriteByte(t.Token())
	return e
}

// Data writes an element containing a single inline string.
func (e *Encoder) Data(t Tag, value string) *Encoder {
	return e.Start(t).Text(value).End()
}

// Text writes inline string content into the currently open element.
func (e *Encoder) Text(value string) *Encoder {
	if e.err != nil {
		return e
	}
	e.buf.WriteByte(tokenStrI)
	e.buf.WriteString(value)
	e.buf.WriteByte(0x00)
	return e
}

// Opaque writes opaque binary content into the currently open element.
func (e *Encoder) Opaque(data []byte) *Encoder {
	if e.err != nil {
		return e
	}
	e.buf.WriteByte(tokenOpaque)
	e.writeMultiByteInt(len(data))
	e.buf.Write(data)
	return e
}

// Bytes finalizes the document and returns the encoded body. It fails if
// any element is still open or an earlier call failed.
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if len(e.stack) > 0 {
		return nil, fmt.Errorf("wbxml: unclosed element %s", e.stack[len(e.stack)-1])
	}
	return e.buf.Bytes(), nil
}

func (e *Encoder) switchPage(t Tag) {
	if page := t.Page(); page != e.page {
		e.buf.WriteByte(tokenSwitchPage)
		e.buf.WriteByte(byte(page))
		e.page = page
	}
}

// writeMultiByteInt emits the WBXML mb_u_int32 form: 7 bits per byte, high
// bit set on all but the final byte.
func (e *Encoder) writeMultiByteInt(v int) {
	var tmp [5]byte
	i := len(tmp)
	i--
	tmp[i] = byte(v & 0x7f)
	v >>= 7
	for v > 0 {
		i--
		tmp[i] = byte(v&0x7f) | 0x80
		v >>= 7
	}
	e.buf.Write(tmp[i:])
}
