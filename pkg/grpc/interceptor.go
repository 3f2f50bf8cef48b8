package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
)

const MetadataAPIKey = "x-api-key"

func requestDeviceID(req any) (string, bool) {
	in, ok := req.(*structpb.Struct)
	if !ok {
		return "", false
	}
	v, ok := in.GetFields()["device_id"]
	if !ok {
		return "", false
	}
	deviceID := v.GetStringValue()
	return deviceID, deviceID != ""
}

func methodSet(methods []string) map[string]bool {
	return common.Reducer(methods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)
}

func (s *TelemetryServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targets := methodSet(targetMethods)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if targets[info.FullMethod] {
			if deviceID, ok := requestDeviceID(req); ok {
				if !s.CheckDeviceLimiter(deviceID) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}

// CreateAPIKeyInterceptor checks the x-api-key metadata against the device_id
// carried in the request body.
func (s *TelemetryServer) CreateAPIKeyInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targets := methodSet(targetMethods)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if !targets[info.FullMethod] {
			return handler(ctx, req)
		}

		deviceID, ok := requestDeviceID(req)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "device_id is required")
		}

		md, _ := metadata.FromIncomingContext(ctx)
		keys := md.Get(MetadataAPIKey)
		if len(keys) == 0 || keys[0] == "" {
			return nil, status.Errorf(codes.Unauthenticated, "Invalid API key")
		}
		if err := s.Cct.Credential.VerifyDeviceAPIKey(keys[0], deviceID); err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "Invalid API key")
		}

		return handler(ctx, req)
	}
}

// Interceptors returns the server options guarding every telemetry method,
// throttle first so rejected devices never reach the key check.
func (s *TelemetryServer) Interceptors() grpc.ServerOption {
	methods := []string{MethodSubmitTemperature, MethodSyncSettings, MethodSetTarget}
	return grpc.ChainUnaryInterceptor(
		s.CreateRateLimitInterceptor(methods),
		s.CreateAPIKeyInterceptor(methods),
	)
}
