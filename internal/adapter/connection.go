package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/models"
)

const (
	// commandPath is the fixed EAS endpoint path on every server.
	commandPath = "/Microsoft-Server-ActiveSync"

	// contentTypeWBXML is the body type for every command except legacy
	// RFC822 sends.
	contentTypeWBXML = "application/vnd.ms-sync.wbxml"

	// maxRedirects caps how many times one send follows a mailbox-moved
	// response before giving up.
	maxRedirects = 3
)

// Options carries the transport identity settings shared by all
// connections.
type Options struct {
	// DeviceType is the DeviceType query parameter value.
	DeviceType string

	// UserAgent is sent as the HTTP User-Agent header when non-empty.
	UserAgent string
}

// Conn owns the transport state for one account: endpoint construction,
// auth and protocol-version headers, gzip-aware response handling, and a
// single in-flight-request cancellation slot.
//
// At most one request may be pending per Conn at any time; the
// PingSyncSynchronizer guarantees callers never violate this for a given
// account. Stop interrupts the pending request, or pre-aborts the next one
// if none is in flight, closing the race where a stop arrives just before
// a send begins.
type Conn struct {
	registry *Registry
	opts     Options
	log      *logger.Logger

	mu            sync.Mutex
	account       models.Account
	cachedVersion string

	// inflight cancels the pending request's context; nil when idle. The
	// slot is released without canceling once headers arrive, because the
	// body is streamed lazily and must outlive the send call; the returned
	// Envelope owns the cancel from then on.
	inflight context.CancelFunc

	// wire holds the network connections serving the pending request, so a
	// stop can tear the transfer down at the socket level rather than only
	// canceling the context.
	wire *wireTracker

	// stopReason records why the pending request was interrupted, so the
	// resulting transport error can be converted into a StopError.
	stopReason models.StopReason

	// preStop poisons the next send when Stop was called while idle.
	preStop models.StopReason
}

// wireTracker records the network connections chosen for one request. A
// request normally uses a single connection, pooled or freshly dialed; the
// transport's internal retry after a dead pooled connection registers a
// second one.
type wireTracker struct {
	mu     sync.Mutex
	conns  []net.Conn
	closed bool
}

func (t *wireTracker) register(conn net.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		_ = conn.Close()
		return
	}
	t.conns = append(t.conns, conn)
}

// Close tears down every registered connection; later registrations are
// closed on arrival.
func (t *wireTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for _, conn := range t.conns {
		_ = conn.Close()
	}
	t.conns = nil
}

// traceContext registers the connection serving the request with the
// tracker. GotConn fires for pooled connections too, which a dial hook
// would miss.
func traceContext(ctx context.Context, wire *wireTracker) context.Context {
	return httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			wire.register(info.Conn)
		},
	})
}

// NewConn builds a connection for account using the shared client
// registry.
func NewConn(registry *Registry, account models.Account, opts Options, log *logger.Logger) *Conn {
	return &Conn{
		registry: registry,
		opts:     opts,
		account:  account,
		log:      log.WithAccount(account.ID),
	}
}

// Account returns the connection's current view of the account, including
// any redirected server address.
func (c *Conn) Account() models.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.account
}

// SetAccount replaces the account snapshot (credentials, policy key,
// negotiated version) and invalidates the cached protocol version.
func (c *Conn) SetAccount(account models.Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.account = account
	c.cachedVersion = ""
}

// ProtocolVersion returns the protocol version header value. The value is
// computed once from the account and cached; callers must invalidate it
// whenever the account's version changes mid-session.
func (c *Conn) ProtocolVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cachedVersion == "" {
		c.cachedVersion = c.account.ProtocolVersion
		if c.cachedVersion == "" {
			c.cachedVersion = models.VersionExchange2010S
		}
	}
	return c.cachedVersion
}

// ProtocolVersionDouble returns the numeric form of ProtocolVersion for
// feature gating.
func (c *Conn) ProtocolVersionDouble() float64 {
	return models.VersionDouble(c.ProtocolVersion())
}

// InvalidateProtocolVersion drops the cached version header value.
func (c *Conn) InvalidateProtocolVersion() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cachedVersion = ""
}

// Stop interrupts the connection's pending request, surfacing a StopError
// with the given reason to its caller. The underlying socket is closed as
// well, so a long poll parked on an unresponsive server dies immediately
// instead of lingering until its timeout. If no request is in flight the
// next attempted send fails fast instead, preventing the race where a stop
// arrives between requests.
func (c *Conn) Stop(reason models.StopReason) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight != nil {
		c.stopReason = reason
		c.inflight()
		if c.wire != nil {
			c.wire.Close()
		}
		c.log.Debug().Stringer("reason", reason).Msg("stopped in-flight request")
		return
	}
	c.preStop = reason
	c.log.Debug().Stringer("reason", reason).Msg("pre-aborted next request")
}

// SendCommand POSTs one command body and returns the wrapped response.
// cmd is the Cmd query value and may carry extra query arguments after an
// ampersand (e.g. "SmartReply&SaveInSent=T"). A redirect response is
// followed transparently up to maxRedirects times, retargeting the
// connection at the new address.
//
// Fails with an error wrapping ErrNetwork on I/O failure (a *StopError if
// the failure was caused by Stop), ErrCertificate on TLS validation
// failure, or ErrTooManyRedirects when the redirect cap is exceeded.
func (c *Conn) SendCommand(ctx context.Context, cmd string, body []byte, timeout time.Duration) (*Envelope, error) {
	return c.send(ctx, cmd, contentTypeWBXML, body, timeout)
}

// SendRaw is SendCommand with an explicit content type, used for RFC822
// mail bodies on protocol versions below 14.0.
func (c *Conn) SendRaw(ctx context.Context, cmd, contentType string, body []byte, timeout time.Duration) (*Envelope, error) {
	return c.send(ctx, cmd, contentType, body, timeout)
}

// SendOptions issues the OPTIONS round-trip used by account validation to
// discover the server's supported protocol versions.
func (c *Conn) SendOptions(ctx context.Context, timeout time.Duration) (*Envelope, error) {
	if err := c.beginSend(ctx, &timeout); err != nil {
		return nil, err
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	wire := &wireTracker{}
	c.armSlot(cancel, wire)

	account := c.Account()
	req := c.registry.Get(account.HostAuth).R().
		SetContext(traceContext(reqCtx, wire)).
		SetBasicAuth(account.HostAuth.Username, account.HostAuth.Password)
	if c.opts.UserAgent != "" {
		req.SetHeader("User-Agent", c.opts.UserAgent)
	}

	resp, err := req.Execute(http.MethodOptions, c.baseURL(account.HostAuth))
	if err != nil {
		return nil, c.sendError(err)
	}
	c.releaseSlot()

	envelope := NewEnvelope(resp.StatusCode(), resp.Header(), resp.RawBody())
	envelope.cancel = cancel
	return envelope, nil
}

func (c *Conn) send(ctx context.Context, cmd, contentType string, body []byte, timeout time.Duration) (*Envelope, error) {
	if err := c.beginSend(ctx, &timeout); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		wire := &wireTracker{}
		c.armSlot(cancel, wire)

		account := c.Account()
		req := c.registry.Get(account.HostAuth).R().
			SetContext(traceContext(reqCtx, wire)).
			SetBasicAuth(account.HostAuth.Username, account.HostAuth.Password).
			SetHeader("MS-ASProtocolVersion", c.ProtocolVersion()).
			SetHeader("Accept-Encoding", "gzip")
		if c.opts.UserAgent != "" {
			req.SetHeader("User-Agent", c.opts.UserAgent)
		}
		if account.PolicyKey != "" {
			req.SetHeader("X-MS-PolicyKey", account.PolicyKey)
		}
		if body != nil {
			req.SetHeader("Content-Type", contentType)
			req.SetBody(bytes.NewReader(body))
		}

		resp, err := req.Execute(http.MethodPost, c.commandURL(account, cmd))
		if err != nil {
			return nil, c.sendError(err)
		}
		c.releaseSlot()

		envelope := NewEnvelope(resp.StatusCode(), resp.Header(), resp.RawBody())
		envelope.cancel = cancel
		if envelope.Classify() != StatusRedirect {
			return envelope, nil
		}

		location := envelope.Location()
		_ = envelope.Close()
		if attempt >= maxRedirects-1 || location == "" {
			return nil, fmt.Errorf("%w: last location %q", ErrTooManyRedirects, location)
		}
		if err := c.redirect(location); err != nil {
			return nil, err
		}
	}
}

// beginSend consumes a pending pre-abort and normalizes the timeout.
func (c *Conn) beginSend(ctx context.Context, timeout *time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if *timeout <= 0 {
		*timeout = 30 * time.Second
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.preStop != 0 {
		reason := c.preStop
		c.preStop = 0
		return &StopError{Reason: reason}
	}
	return nil
}

func (c *Conn) armSlot(cancel context.CancelFunc, wire *wireTracker) {
	c.mu.Lock()
	c.inflight = cancel
	c.wire = wire
	c.stopReason = 0
	c.mu.Unlock()
}

// releaseSlot vacates the slot once headers arrive. The request context
// stays alive: the caller streams the body through it and cancels via
// Envelope.Close.
func (c *Conn) releaseSlot() {
	c.mu.Lock()
	c.inflight = nil
	c.wire = nil
	c.mu.Unlock()
}

// sendError converts a transport failure, honouring a Stop that raced with
// the request.
func (c *Conn) sendError(err error) error {
	c.mu.Lock()
	reason := c.stopReason
	c.stopReason = 0
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
	if c.wire != nil {
		c.wire.Close()
		c.wire = nil
	}
	c.mu.Unlock()

	if reason != 0 {
		return &StopError{Reason: reason}
	}
	return classifySendError(err)
}

// redirect retargets the connection at the address from a mailbox-moved
// response and invalidates the stale client pool.
func (c *Conn) redirect(location string) error {
	target, err := url.Parse(location)
	if err != nil || target.Hostname() == "" {
		return fmt.Errorf("%w: bad redirect location %q", ErrNetwork, location)
	}

	c.mu.Lock()
	old := c.account.HostAuth
	c.account.HostAuth.Address = target.Hostname()
	c.account.HostAuth.UseSSL = target.Scheme != "http"
	c.account.HostAuth.Port = 0
	if p := target.Port(); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			c.account.HostAuth.Port = port
		}
	}
	c.mu.Unlock()

	c.registry.Invalidate(old)
	c.log.Info().Str("address", target.Hostname()).Msg("following server redirect")
	return nil
}

func (c *Conn) baseURL(hostAuth models.HostAuth) string {
	scheme := "http"
	if hostAuth.UseSSL {
		scheme = "https"
	}
	host := hostAuth.Address
	if hostAuth.Port != 0 {
		host += ":" + strconv.Itoa(hostAuth.Port)
	}
	return scheme + "://" + host + commandPath
}

// commandURL builds the full command URI. cmd lands in the query string
// verbatim after the Cmd key, so callers may append extra arguments with
// an ampersand the way legacy send commands require.
func (c *Conn) commandURL(account models.Account, cmd string) string {
	user := account.HostAuth.Username
	if user == "" {
		user = account.EmailAddress
	}
	query := url.Values{}
	query.Set("User", user)
	query.Set("DeviceId", account.DeviceID)
	query.Set("DeviceType", c.opts.DeviceType)

	return c.baseURL(account.HostAuth) + "?Cmd=" + cmd + "&" + query.Encode()
}
