package grpc

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/cct/mocks"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/db"
	_ "liyu1981.xyz/cct-cloud-service/pkg/testing"
)

const bufSize = 1024 * 1024

type testEnv struct {
	client *DeviceTelemetryClient
	server *TelemetryServer
}

func startTestServerWithLimiter(t *testing.T, limiter *cct.RateLimiterStore) *testEnv {
	listener := bufconn.Listen(bufSize)

	dbInstance, err := db.Open(db.UseNamedMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)

	cfg := common.DefaultConfig()
	cfg.SecretKey = "test-secret"

	telemetry := &TelemetryServer{Cct: cct.New(dbInstance, cfg), RateLimiterStore: limiter}
	server := grpc.NewServer(telemetry.Interceptors())
	RegisterDeviceTelemetryServer(server, telemetry)

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testEnv{client: NewDeviceTelemetryClient(conn), server: telemetry}
}

func startTestServer(t *testing.T) *testEnv {
	return startTestServerWithLimiter(t, nil)
}

func (env *testEnv) registerDevice(t *testing.T, deviceID string) string {
	t.Helper()
	registered, err := env.server.Cct.Identity.RegisterDevice(&cct.DeviceRegistration{
		DeviceID:        common.Ptr(deviceID),
		Model:           "CCT-100",
		FirmwareVersion: "1.0.0",
	})
	require.NoError(t, err)
	return registered.APIKey
}

func withKey(apiKey string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), MetadataAPIKey, apiKey)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestSubmitTemperatureAndSync(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)

	apiKey := env.registerDevice(t, "CCT-AB12-CD34")
	_, err := env.server.Cct.Identity.RegisterProbe("CCT-AB12-CD34", &cct.ProbeRegistration{ProbeID: "PRB-1"})
	require.NoError(t, err)

	{
		resp, err := env.client.SetTarget(withKey(apiKey), mustStruct(t, map[string]any{
			"device_id":   "CCT-AB12-CD34",
			"temperature": 203.0,
		}))
		require.NoError(t, err)
		assert.Equal(t, 203.0, resp.AsMap()["temperature"])
	}

	{
		resp, err := env.client.SubmitTemperature(withKey(apiKey), mustStruct(t, map[string]any{
			"device_id": "CCT-AB12-CD34",
			"readings": []any{
				map[string]any{"probe_id": "PRB-1", "temperature": 150.5},
				map[string]any{"probe_id": "PRB-1"},
			},
			"average_temperature": 150.5,
		}))
		require.NoError(t, err)
		got := resp.AsMap()
		assert.Equal(t, 2.0, got["stored"])
		assert.Equal(t, 203.0, got["target_temperature"])
	}

	{
		resp, err := env.client.SyncSettings(withKey(apiKey), mustStruct(t, map[string]any{"device_id": "CCT-AB12-CD34"}))
		require.NoError(t, err)
		got := resp.AsMap()
		assert.Equal(t, "CCT-AB12-CD34", got["device_id"])
		assert.Equal(t, 203.0, got["target_temperature"])
	}

	readings, err := env.server.Cct.Temperature.GetTemperatureHistory(&cct.HistoryQuery{DeviceID: "CCT-AB12-CD34"})
	require.NoError(t, err)
	assert.Len(t, readings, 2)
}

func TestAPIKeyInterceptor(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)

	apiKey := env.registerDevice(t, "CCT-AB12-CD34")
	otherKey := env.registerDevice(t, "CCT-ZZZZ-9999")

	payload := mustStruct(t, map[string]any{"device_id": "CCT-AB12-CD34"})

	for _, ctx := range []context.Context{context.Background(), withKey("garbage"), withKey(otherKey)} {
		_, err := env.client.SyncSettings(ctx, payload)
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	}

	_, err := env.client.SyncSettings(withKey(apiKey), mustStruct(t, map[string]any{}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.SyncSettings(withKey(apiKey), payload)
	assert.NoError(t, err)
}

func TestSubmitTemperature_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		env := startTestServer(t)
		apiKey := env.registerDevice(t, "CCT-AB12-CD34")

		_, err := env.client.SetTarget(withKey(apiKey), mustStruct(t, map[string]any{"device_id": "CCT-AB12-CD34"}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))

		_, err = env.client.SubmitTemperature(withKey(apiKey), mustStruct(t, map[string]any{
			"device_id": "CCT-AB12-CD34",
			"readings":  []any{map[string]any{"probe_id": "PRB-404", "temperature": 99.0}},
		}))
		assert.Equal(t, codes.NotFound, status.Code(err))
	}

	{
		env := startTestServer(t)
		apiKey := env.registerDevice(t, "CCT-AB12-CD34")

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockITemperature := mocks.NewMockITemperature(ctrl)
		env.server.Cct.Temperature = mockITemperature
		mockITemperature.EXPECT().
			ProcessTemperatureUpdate(gomock.Any()).
			Return(nil, fmt.Errorf("just causing error")).
			Times(1)

		_, err := env.client.SubmitTemperature(withKey(apiKey), mustStruct(t, map[string]any{
			"device_id":           "CCT-AB12-CD34",
			"average_temperature": 100.0,
		}))
		assert.Equal(t, codes.Internal, status.Code(err))
	}
}

func TestRateLimitInterceptor(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServerWithLimiter(t, cct.NewRateLimiterStore(2, 2)) // 2 req/sec, burst 2

	apiKey := env.registerDevice(t, "CCT-AB12-CD34")
	payload := mustStruct(t, map[string]any{"device_id": "CCT-AB12-CD34"})

	// 3 requests in quick succession, only 2 should be allowed
	for i := range 3 {
		_, err := env.client.SyncSettings(withKey(apiKey), payload)
		if i < 2 {
			require.NoError(t, err, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, codes.ResourceExhausted, status.Code(err), "request %d should be rate limited", i+1)
		}
	}

	env.server.RateLimiterStore.SetLimiter("CCT-AB12-CD34", 2, 2)
	_, err := env.client.SyncSettings(withKey(apiKey), payload)
	require.NoError(t, err, "request after limiter reset should be allowed")
}

func TestServiceDescHandlers(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)
	env.registerDevice(t, "CCT-AB12-CD34")

	require.Len(t, DeviceTelemetryServiceDesc.Methods, 3)
	handlers := map[string]func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error){}
	for _, m := range DeviceTelemetryServiceDesc.Methods {
		handlers[m.MethodName] = m.Handler
	}

	dec := func(payload map[string]any) func(any) error {
		return func(in any) error {
			s, err := structpb.NewStruct(payload)
			if err != nil {
				return err
			}
			in.(*structpb.Struct).Fields = s.Fields
			return nil
		}
	}

	// without an interceptor the call goes straight to the server
	out, err := handlers["SyncSettings"](env.server, context.Background(), dec(map[string]any{"device_id": "CCT-AB12-CD34"}), nil)
	require.NoError(t, err)
	assert.Equal(t, "CCT-AB12-CD34", out.(*structpb.Struct).AsMap()["device_id"])

	var seen string
	intercept := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}
	_, err = handlers["SetTarget"](env.server, context.Background(), dec(map[string]any{"device_id": "CCT-AB12-CD34", "temperature": 180.0}), intercept)
	require.NoError(t, err)
	assert.Equal(t, MethodSetTarget, seen)

	_, err = handlers["SubmitTemperature"](env.server, context.Background(), func(any) error { return fmt.Errorf("bad frame") }, nil)
	assert.EqualError(t, err, "bad frame")
}
