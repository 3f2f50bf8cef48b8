package cct_test

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/cct/mocks"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/db"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

func testConfig() common.Config {
	cfg := common.DefaultConfig()
	cfg.DBType = "memory"
	cfg.SecretKey = "test-secret"
	return cfg
}

func GetMockCCTWithMemorySqliteDialector(t *testing.T, useMockITrigger, useMockINotifier bool) (
	*gomock.Controller,
	*cct.CCT,
	*mocks.MockITrigger,
	*mocks.MockINotifier,
) {
	ctrl := gomock.NewController(t)

	mockITrigger := mocks.NewMockITrigger(ctrl)
	mockINotifier := mocks.NewMockINotifier(ctrl)

	dbInstance, err := db.Open(db.UseNamedMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)

	cctInstance := cct.New(dbInstance, testConfig())

	opts := cct.ServiceOpts{}
	if useMockITrigger {
		opts.Trigger = mockITrigger
	}
	if useMockINotifier {
		opts.Notifier = mockINotifier
	}
	cctInstance.WithServices(opts)

	return ctrl, cctInstance, mockITrigger, mockINotifier
}

// fakeClock is a settable clock for expiry and liveness tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Now().UTC()}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// recordingChannel accepts every send and remembers it.
type recordingChannel struct {
	mu    sync.Mutex
	sent  []string
	reply bool
}

func (r *recordingChannel) Send(user *models.User, title string, message string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, user.Username+": "+title)
	return r.reply
}

func (r *recordingChannel) Sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func seedDevice(t *testing.T, c *cct.CCT, deviceID string) *cct.DeviceRegistrationResult {
	t.Helper()
	result, err := c.Identity.RegisterDevice(&cct.DeviceRegistration{
		DeviceID:        &deviceID,
		Model:           "CCT-100",
		FirmwareVersion: "1.0.0",
	})
	require.NoError(t, err)
	return result
}

func seedProbe(t *testing.T, c *cct.CCT, deviceID string, probeID string) *models.Probe {
	t.Helper()
	probe, err := c.Identity.RegisterProbe(deviceID, &cct.ProbeRegistration{ProbeID: probeID, Model: "P-1"})
	require.NoError(t, err)
	return probe
}

func seedUser(t *testing.T, c *cct.CCT, username string) *models.User {
	t.Helper()
	user, err := c.User.CreateUser(&cct.UserRegistration{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-" + username,
	})
	require.NoError(t, err)
	return user
}

func seedOwner(t *testing.T, c *cct.CCT, username string, deviceID string) *models.User {
	t.Helper()
	user := seedUser(t, c, username)
	_, err := c.Identity.AssociateDeviceWithUser(deviceID, user.ID, nil)
	require.NoError(t, err)
	return user
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
