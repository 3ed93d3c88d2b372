package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/config"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/mock"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

func wbxmlBody(t *testing.T, build func(e *wbxml.Encoder)) []byte {
	t.Helper()
	e := wbxml.NewEncoder()
	build(e)
	body, err := e.Bytes()
	if err != nil {
		t.Fatalf("encoding response body: %v", err)
	}
	return body
}

func serverAccount(t *testing.T, serverURL string) models.Account {
	t.Helper()
	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatal(err)
	}
	return models.Account{
		ID:              3,
		EmailAddress:    "user@example.com",
		DeviceID:        "device123",
		ProtocolVersion: models.VersionExchange2010S,
		SyncKey:         "h1",
		HostAuth: models.HostAuth{
			Address:  u.Hostname(),
			Port:     port,
			Username: "user@example.com",
			Password: "secret",
		},
	}
}

// A ping answering status 7 triggers a FolderSync. That refresh is a
// network operation on the account and must hold the account's slot, so a
// concurrent ping attempt is turned away while it runs and the ping is
// restarted only once the hierarchy is current.
func TestRunPingFolderRefreshHoldsAccountSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	collections := mock.NewMockCollectionRepository(ctrl)
	pending := mock.NewMockPendingChangeRepository(ctrl)
	scheduler := NewMockScheduler(ctrl)

	slotDuringRefresh := make(chan bool, 1)

	var svc *Services
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("Cmd") {
		case "Ping":
			_, _ = w.Write(wbxmlBody(t, func(e *wbxml.Encoder) {
				e.Start(wbxml.PingPing).Data(wbxml.PingStatus, "7").End()
			}))
		case "FolderSync":
			claimed := svc.synchronizer.StartPing(3, nil)
			if claimed {
				svc.synchronizer.PingComplete(r.Context(), 3, models.PingStatusAborted)
			}
			slotDuringRefresh <- claimed
			_, _ = w.Write(wbxmlBody(t, func(e *wbxml.Encoder) {
				e.Start(wbxml.FolderSync).
					Data(wbxml.FolderStatus, "1").
					Data(wbxml.FolderSyncKey, "h2").
					Start(wbxml.FolderChanges).
					Data(wbxml.FolderCount, "0").
					End().End()
			}))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	account := serverAccount(t, srv.URL)
	accounts.EXPECT().GetAccount(gomock.Any(), int64(3)).Return(account, nil)
	accounts.EXPECT().UpdateSyncKey(gomock.Any(), int64(3), "h2").Return(nil)

	// Listed once to build the ping request, once for push eligibility
	// after the refresh completes.
	collections.EXPECT().ListPingCollections(gomock.Any(), int64(3)).Return([]models.Collection{
		{ID: 10, AccountID: 3, ServerID: "5", SyncKey: "k1", Type: models.Mail, SyncEnabled: true},
	}, nil).Times(2)

	// Exactly one ping restart, issued by the slot release after the
	// refresh; status 7 itself must not schedule anything.
	scheduler.EXPECT().SchedulePing(int64(3), time.Duration(0))

	cfg := &config.StructuredConfig{
		App:     config.App{DeviceType: "Android", UserAgent: "easync-test"},
		Adapter: config.Adapter{RequestTimeout: 5 * time.Second, InitialSyncTimeout: 10 * time.Second},
		Workers: config.Workers{PingHeartbeat: time.Minute, SyncFailureBackoff: time.Minute},
	}
	repos := &store.Repositories{Accounts: accounts, Collections: collections, PendingChanges: pending}
	svc = NewServices(repos, adapter.NewRegistry(logger.Nop()), scheduler, cfg, logger.Nop())

	status := svc.RunPing(context.Background(), 3)
	if status != models.PingStatusFolderRefreshNeeded {
		t.Fatalf("expected folder_refresh_needed, got %d", status)
	}

	select {
	case claimed := <-slotDuringRefresh:
		if claimed {
			t.Fatal("account slot was free during the hierarchy refresh")
		}
	default:
		t.Fatal("folder sync request never reached the server")
	}

	// The slot is vacated once the refresh completes.
	if !svc.synchronizer.StartPing(3, nil) {
		t.Fatal("account slot still held after the refresh finished")
	}
	svc.synchronizer.PingComplete(context.Background(), 3, models.PingStatusAborted)
}
