package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/rkataev/go-eas-sync/models"
)

var (
	// ErrNetwork covers transport-level I/O failures (connect, read,
	// write, timeout). Retried by the caller's scheduler, never here.
	ErrNetwork = errors.New("network failure")

	// ErrCertificate covers TLS validation failures. Fatal; surfaced to
	// account validation.
	ErrCertificate = errors.New("certificate validation failure")

	// ErrTooManyRedirects reports that the server redirected more than
	// the allowed number of times.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// StopError is the network failure produced when an in-flight (or about to
// start) request was interrupted through Stop. The reason tells the caller
// whether to give up (Abort) or reload parameters and resend (Restart).
// StopError wraps ErrNetwork so transport-level classification still works
// with errors.Is.
type StopError struct {
	Reason models.StopReason
}

// Error implements the error interface.
func (e *StopError) Error() string {
	return fmt.Sprintf("request stopped (%s)", e.Reason)
}

// Unwrap makes errors.Is(err, ErrNetwork) hold for stop-induced failures.
func (e *StopError) Unwrap() error { return ErrNetwork }

// classifySendError maps a transport error from the HTTP client onto the
// package's error taxonomy. TLS validation problems are distinguished from
// ordinary I/O failures because they are fatal for the account rather than
// retriable.
func classifySendError(err error) error {
	var certErr *tls.CertificateVerificationError
	var unknownAuth x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var certInvalid x509.CertificateInvalidError

	switch {
	case errors.As(err, &certErr),
		errors.As(err, &unknownAuth),
		errors.As(err, &hostnameErr),
		errors.As(err, &certInvalid):
		return fmt.Errorf("%w: %v", ErrCertificate, err)
	default:
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
}
