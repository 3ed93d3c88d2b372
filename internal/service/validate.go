package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

// ValidationResult is the outcome of validating a server configuration.
type ValidationResult struct {
	// ProtocolVersion is the negotiated version, empty when negotiation
	// never completed.
	ProtocolVersion string

	// Result classifies the overall outcome in sync result terms.
	Result models.SyncResult

	// NeedsProvisioning reports that the server accepted the account but
	// demands a policy exchange before serving commands.
	NeedsProvisioning bool
}

// ValidateService checks a server configuration end to end: protocol
// discovery via OPTIONS, version negotiation, and a probe command that
// smokes out authentication and provisioning requirements before the
// account goes live.
type ValidateService struct {
	accounts       store.AccountRepository
	requestTimeout time.Duration
	log            *logger.Logger
}

// NewValidateService constructs the validator.
func NewValidateService(accounts store.AccountRepository, requestTimeout time.Duration, log *logger.Logger) *ValidateService {
	return &ValidateService{
		accounts:       accounts,
		requestTimeout: requestTimeout,
		log:            log,
	}
}

// Validate runs the discovery sequence against the connection's account.
// On success the negotiated version is persisted (for stored accounts) and
// installed on the connection.
func (s *ValidateService) Validate(ctx context.Context, conn adapter.Connection) (ValidationResult, error) {
	log := s.log.WithAccount(conn.Account().ID)

	version, result, err := s.discover(ctx, conn, log)
	if err != nil || result.Failed() {
		return ValidationResult{Result: result}, err
	}

	account := conn.Account()
	account.ProtocolVersion = version
	conn.SetAccount(account)
	conn.InvalidateProtocolVersion()
	if account.ID != 0 {
		if err := s.accounts.UpdateProtocolVersion(ctx, account.ID, version); err != nil {
			return ValidationResult{ProtocolVersion: version, Result: models.SyncResultFailedOther}, err
		}
	}

	needsProvisioning, result, err := s.probe(ctx, conn, log)
	return ValidationResult{
		ProtocolVersion:   version,
		Result:            result,
		NeedsProvisioning: needsProvisioning,
	}, err
}

// discover issues OPTIONS and negotiates the protocol version from the
// MS-ASProtocolVersions header.
func (s *ValidateService) discover(ctx context.Context, conn adapter.Connection, log *logger.Logger) (string, models.SyncResult, error) {
	envelope, err := conn.SendOptions(ctx, s.requestTimeout)
	if err != nil {
		if errors.Is(err, adapter.ErrCertificate) {
			return "", models.SyncResultFailedOther, err
		}
		return "", models.SyncResultFailedIO, err
	}
	defer envelope.Close()

	switch envelope.Classify() {
	case adapter.StatusOK:
	case adapter.StatusAuthError:
		return "", models.SyncResultFailedLogin, nil
	default:
		log.Warn().Int("http_status", envelope.StatusCode()).Msg("unexpected OPTIONS response")
		return "", models.SyncResultFailedOther, nil
	}

	versions := parseVersionsHeader(envelope.Header().Get("MS-ASProtocolVersions"))
	negotiated := models.NegotiateVersion(versions)
	if negotiated == "" {
		return "", models.SyncResultFailedOther, fmt.Errorf("%w: server offers %q", ErrNoProtocolOverlap, versions)
	}
	log.Info().Str("version", negotiated).Msg("negotiated protocol version")
	return negotiated, models.SyncResultDone, nil
}

// probe issues a FolderSync with the initial key, which every server
// answers, to surface authentication and provisioning requirements.
func (s *ValidateService) probe(ctx context.Context, conn adapter.Connection, log *logger.Logger) (bool, models.SyncResult, error) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.FolderSync).Data(wbxml.FolderSyncKey, models.SyncKeyInitial).End()
	body, err := e.Bytes()
	if err != nil {
		return false, models.SyncResultFailedOther, err
	}

	envelope, err := conn.SendCommand(ctx, "FolderSync", body, s.requestTimeout)
	if err != nil {
		if errors.Is(err, adapter.ErrNetwork) {
			return false, models.SyncResultFailedIO, err
		}
		return false, models.SyncResultFailedOther, err
	}
	defer envelope.Close()

	switch envelope.Classify() {
	case adapter.StatusOK:
		return false, models.SyncResultDone, nil
	case adapter.StatusAuthError:
		return false, models.SyncResultFailedLogin, nil
	case adapter.StatusProvisionError:
		return true, models.SyncResultDone, nil
	default:
		log.Warn().Int("http_status", envelope.StatusCode()).Msg("unexpected probe response")
		return false, models.SyncResultFailedOther, nil
	}
}

// parseVersionsHeader splits the comma-separated MS-ASProtocolVersions
// header value.
func parseVersionsHeader(header string) []string {
	if header == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	versions := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			versions = append(versions, v)
		}
	}
	return versions
}
