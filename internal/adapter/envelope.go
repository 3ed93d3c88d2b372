package adapter

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Status is the coarse classification of an EAS HTTP response.
type Status int

const (
	// StatusOK: 2xx, the command body (possibly empty) can be parsed.
	StatusOK Status = iota

	// StatusAuthError: the server rejected the credentials or denied
	// access. Fatal for the current operation.
	StatusAuthError

	// StatusProvisionError: the server requires a provisioning exchange
	// before it will serve this command.
	StatusProvisionError

	// StatusRedirect: the mailbox moved; the new address is in Location.
	StatusRedirect

	// StatusOther: anything else, terminal for the current cycle.
	StatusOther
)

// String implements fmt.Stringer for log output.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAuthError:
		return "auth_error"
	case StatusProvisionError:
		return "provision_error"
	case StatusRedirect:
		return "redirect"
	default:
		return "other"
	}
}

// EAS-specific status codes not named by net/http.
const (
	httpNeedProvisioning = 449
	httpRedirect         = 451
)

// ErrBodyConsumed reports a second attempt to read an envelope body.
var ErrBodyConsumed = errors.New("response body already consumed")

// Envelope wraps one raw EAS HTTP response. It classifies the status code
// and exposes the decompressed body exactly once: EAS responses are
// streamed tag-by-tag into the WBXML decoder and must not be re-read.
type Envelope struct {
	code     int
	header   http.Header
	raw      io.ReadCloser
	consumed bool

	// cancel releases the request context backing raw. The body streams
	// lazily, so the context must stay alive until Close; canceling it any
	// earlier kills partially-read bodies with a spurious context error.
	cancel context.CancelFunc
}

// NewEnvelope wraps a status code, header set, and raw body stream. body
// may be nil for bodyless responses.
func NewEnvelope(code int, header http.Header, body io.ReadCloser) *Envelope {
	if header == nil {
		header = http.Header{}
	}
	return &Envelope{code: code, header: header, raw: body}
}

// StatusCode returns the raw HTTP status code.
func (e *Envelope) StatusCode() int { return e.code }

// Header returns the response headers.
func (e *Envelope) Header() http.Header { return e.header }

// Classify maps the status code onto the coarse Status taxonomy.
func (e *Envelope) Classify() Status {
	switch {
	case e.code >= 200 && e.code < 300:
		return StatusOK
	case e.code == http.StatusUnauthorized, e.code == http.StatusForbidden:
		return StatusAuthError
	case e.code == httpNeedProvisioning:
		return StatusProvisionError
	case e.code == httpRedirect:
		return StatusRedirect
	default:
		return StatusOther
	}
}

// Location returns the redirect target for StatusRedirect responses. EAS
// uses the X-MS-Location header; a plain Location header is accepted too.
func (e *Envelope) Location() string {
	if loc := e.header.Get("X-MS-Location"); loc != "" {
		return loc
	}
	return e.header.Get("Location")
}

// Empty reports whether the response declares a zero-length body. A truly
// empty uncompressed body is checked here before any parse is attempted; an
// empty *compressed* stream is only discoverable by the decoder and is
// reported as wbxml.ErrEmptyStream.
func (e *Envelope) Empty() bool {
	if e.raw == nil {
		return true
	}
	return e.header.Get("Content-Length") == "0"
}

// Body returns the response body with any gzip content encoding already
// removed. It may be called once; subsequent calls fail with
// ErrBodyConsumed so a double decompression bug cannot pass silently.
func (e *Envelope) Body() (io.Reader, error) {
	if e.consumed {
		return nil, ErrBodyConsumed
	}
	e.consumed = true

	if e.raw == nil {
		return strings.NewReader(""), nil
	}

	if strings.EqualFold(e.header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(e.raw)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// A zero-byte gzip stream: valid "no changes" reply.
				return strings.NewReader(""), nil
			}
			return nil, fmt.Errorf("opening gzip body: %w", err)
		}
		return zr, nil
	}

	return e.raw, nil
}

// Close releases the underlying stream and the request context backing it.
// Safe to call regardless of whether Body was consumed.
func (e *Envelope) Close() error {
	var err error
	if e.raw != nil {
		err = e.raw.Close()
	}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	return err
}
