package grpc

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
)

type TelemetryServer struct {
	Cct              *cct.CCT
	RateLimiterStore *cct.RateLimiterStore
}

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameGrpcServer)
}

func (s *TelemetryServer) GetLimiter(deviceID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	}
	return s.RateLimiterStore.GetLimiter(deviceID)
}

func (s *TelemetryServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := s.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}
