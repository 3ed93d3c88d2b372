package adapter

import (
	"crypto/tls"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/models"
)

// Registry caches one HTTP client (and therefore one TCP connection pool)
// per host-auth identity, so accounts pointing at the same server share
// connections. It replaces a process-global cache with an explicit object:
// created once at startup, injected into every connection, invalidated per
// entry on redirect, and torn down entry-by-entry at account removal.
//
// Access is guarded by a plain mutex. Concurrent creation races are
// possible but rare: by design no two operations run concurrently for one
// account, so contention only occurs between different accounts sharing a
// server.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*resty.Client
	log     *logger.Logger
}

// NewRegistry returns an empty client registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		clients: make(map[string]*resty.Client),
		log:     log,
	}
}

// Get returns the cached client for the host-auth identity, creating it on
// first use.
func (r *Registry) Get(hostAuth models.HostAuth) *resty.Client {
	key := hostAuth.CacheKey()

	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[key]; ok {
		return client
	}

	client := resty.New().
		SetDoNotParseResponse(true).
		SetRedirectPolicy(resty.NoRedirectPolicy())
	if hostAuth.TrustAll {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	r.log.Debug().Str("host", hostAuth.Address).Msg("created transport client")
	r.clients[key] = client
	return client
}

// Invalidate drops the cached client for the host-auth identity. Called
// when a redirect moves the account to a new address, so the stale pool is
// not reused.
func (r *Registry) Invalidate(hostAuth models.HostAuth) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, hostAuth.CacheKey())
}

// Close tears down every cached client's idle connections. Called at
// daemon shutdown and when an account is deleted.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, client := range r.clients {
		client.GetClient().CloseIdleConnections()
		delete(r.clients, key)
	}
}
