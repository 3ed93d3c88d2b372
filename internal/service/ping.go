package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

// pingGracePeriod is added to the heartbeat when computing the request
// timeout, so the server's own expiry fires first under normal conditions.
const pingGracePeriod = 5 * time.Second

// Heartbeat bounds accepted without asking the server ([MS-ASCMD] allows
// 60..3540 seconds; servers commonly narrow this and answer status 5 with
// their closest acceptable value).
const (
	minHeartbeatSeconds = 60
	maxHeartbeatSeconds = 3540
)

// PingCoordinator issues the aggregated long-poll Ping for one account:
// one request spanning every push-eligible collection, reissued while the
// server keeps answering "expired, nothing changed".
type PingCoordinator struct {
	collections store.CollectionRepository
	heartbeat   time.Duration
	log         *logger.Logger
}

// NewPingCoordinator constructs the coordinator with the configured
// default heartbeat interval.
func NewPingCoordinator(collections store.CollectionRepository, heartbeat time.Duration, log *logger.Logger) *PingCoordinator {
	return &PingCoordinator{
		collections: collections,
		heartbeat:   heartbeat,
		log:         log,
	}
}

// Ping runs the ping loop for the account until a terminal status. The
// loop reissues the request on expiry, on a server-corrected heartbeat,
// and on a Stop(Restart) interrupt; everything else terminates and is
// classified into the returned result.
func (p *PingCoordinator) Ping(ctx context.Context, conn adapter.Connection, account models.Account) (models.PingResult, error) {
	log := p.log.WithAccount(account.ID)
	heartbeat := int(p.heartbeat.Seconds())

	for {
		collections, err := p.collections.ListPingCollections(ctx, account.ID)
		if err != nil {
			return models.PingResult{Status: models.PingStatusNetworkFailure}, err
		}

		eligible := collections[:0:0]
		for _, c := range collections {
			// A collection whose initial sync has not completed cannot be
			// pinged; the server has no state for it yet.
			if !c.InitialSync() {
				eligible = append(eligible, c)
			}
		}
		if len(eligible) == 0 {
			return models.PingResult{Status: models.PingStatusNoFolders}, nil
		}

		body, err := buildPingRequest(heartbeat, eligible)
		if err != nil {
			return models.PingResult{Status: models.PingStatusNetworkFailure}, err
		}

		timeout := time.Duration(heartbeat)*time.Second + pingGracePeriod
		envelope, err := conn.SendCommand(ctx, "Ping", body, timeout)
		if err != nil {
			var stopErr *adapter.StopError
			if errors.As(err, &stopErr) {
				if stopErr.Reason == models.StopReasonRestart {
					log.Debug().Msg("ping restarting with reloaded parameters")
					continue
				}
				return models.PingResult{Status: models.PingStatusAborted}, nil
			}
			return models.PingResult{Status: models.PingStatusNetworkFailure}, nil
		}

		result, terminal := p.classify(envelope, log)
		if !terminal {
			if result.HeartbeatInterval > 0 {
				heartbeat = clampHeartbeat(result.HeartbeatInterval)
				log.Info().Int("heartbeat", heartbeat).Msg("server corrected ping heartbeat")
			}
			continue
		}
		return result, nil
	}
}

// classify turns one envelope into a PingResult and reports whether the
// loop should stop.
func (p *PingCoordinator) classify(envelope *adapter.Envelope, log *logger.Logger) (models.PingResult, bool) {
	defer envelope.Close()

	switch envelope.Classify() {
	case adapter.StatusOK:
	case adapter.StatusAuthError:
		return models.PingResult{Status: models.PingStatusFailedAuth}, true
	default:
		log.Warn().Int("http_status", envelope.StatusCode()).Msg("unexpected ping response status")
		return models.PingResult{Status: models.PingStatusServerError}, true
	}

	if envelope.Empty() {
		// Treated like an expiry: nothing changed, ping again.
		return models.PingResult{Status: models.PingStatusExpired}, false
	}

	body, err := envelope.Body()
	if err != nil {
		log.Err(err).Msg("reading ping response body")
		return models.PingResult{Status: models.PingStatusServerError}, true
	}

	result, err := parsePingResponse(body)
	if err != nil {
		if errors.Is(err, wbxml.ErrEmptyStream) {
			return models.PingResult{Status: models.PingStatusExpired}, false
		}
		log.Err(err).Msg("parsing ping response")
		return models.PingResult{Status: models.PingStatusServerError}, true
	}

	return result, !result.Status.ShouldPingAgain()
}

func clampHeartbeat(seconds int) int {
	if seconds < minHeartbeatSeconds {
		return minHeartbeatSeconds
	}
	if seconds > maxHeartbeatSeconds {
		return maxHeartbeatSeconds
	}
	return seconds
}

// buildPingRequest serializes the aggregated Ping body for the eligible
// collections.
func buildPingRequest(heartbeatSeconds int, collections []models.Collection) ([]byte, error) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.PingPing)
	e.Data(wbxml.PingHeartbeatInterval, strconv.Itoa(heartbeatSeconds))
	e.Start(wbxml.PingFolders)
	for _, c := range collections {
		e.Start(wbxml.PingFolder).
			Data(wbxml.PingID, c.ServerID).
			Data(wbxml.PingClass, c.Type.String()).
			End()
	}
	e.End().End()
	return e.Bytes()
}

// parsePingResponse extracts the multi-valued status, changed-folder list,
// and any corrected heartbeat from one Ping response.
func parsePingResponse(body io.Reader) (models.PingResult, error) {
	var result models.PingResult

	d := wbxml.NewDecoder(body)
	root, ok, err := d.NextTag(-1)
	if err != nil {
		return result, err
	}
	if !ok || root != wbxml.PingPing {
		return result, fmt.Errorf("%w: expected Ping root, got %s", ErrMalformedResponse, root)
	}

	for {
		t, ok, err := d.NextTag(wbxml.PingPing)
		if err != nil {
			return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if !ok {
			return result, nil
		}

		switch t {
		case wbxml.PingStatus:
			status, err := d.ValueInt()
			if err != nil {
				return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			result.Status = models.PingStatus(status)
		case wbxml.PingHeartbeatInterval:
			interval, err := d.ValueInt()
			if err != nil {
				return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			result.HeartbeatInterval = interval
		case wbxml.PingFolder:
			id, err := d.Value()
			if err != nil {
				return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			result.SyncList = append(result.SyncList, id)
		}
	}
}
