package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
)

type probeReading struct {
	ProbeID     *string  `zog:"probe_id"`
	Temperature *float64 `zog:"temperature"`
}

type submitTemperatureRequest struct {
	DeviceID           string         `zog:"device_id"`
	Readings           []probeReading `zog:"readings"`
	AverageTemperature *float64       `zog:"average_temperature"`
}

var submitTemperatureSchema = z.Struct(z.Shape{
	"deviceID": z.String().Required(),
	"readings": z.Slice(z.Struct(z.Shape{
		"probeID":     z.Ptr(z.String()),
		"temperature": z.Ptr(z.Float64()),
	})),
	"averageTemperature": z.Ptr(z.Float64()),
})

type syncSettingsRequest struct {
	DeviceID string `zog:"device_id"`
}

var syncSettingsSchema = z.Struct(z.Shape{
	"deviceID": z.String().Required(),
})

type setTargetRequest struct {
	DeviceID    string  `zog:"device_id"`
	Temperature float64 `zog:"temperature"`
}

var setTargetSchema = z.Struct(z.Shape{
	"deviceID":    z.String().Required(),
	"temperature": z.Float64().Required(),
})

func statusFromError(err error) error {
	switch {
	case errors.Is(err, cct.ErrValidation), errors.Is(err, cct.ErrCapacity):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, cct.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, cct.ErrAuth):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, cct.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	}
	logger().Error("Request failed", zap.Error(err))
	return status.Error(codes.Internal, "internal server error")
}

func parse(schema *z.StructSchema, in *structpb.Struct, dest any) error {
	if errs := schema.Parse(in.AsMap(), dest); errs != nil {
		return status.Errorf(codes.InvalidArgument, "validation error: %v", errs)
	}
	return nil
}

func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}

func (s *TelemetryServer) SubmitTemperature(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req submitTemperatureRequest
	if err := parse(submitTemperatureSchema, in, &req); err != nil {
		return nil, err
	}

	result, err := s.Cct.Temperature.ProcessTemperatureUpdate(&cct.TemperatureUpdate{
		DeviceID: req.DeviceID,
		Readings: common.Mapper(req.Readings, func(r probeReading) cct.ProbeReading {
			return cct.ProbeReading{ProbeID: r.ProbeID, Temperature: r.Temperature}
		}),
		AverageTemperature: req.AverageTemperature,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return toStruct(map[string]any{
		"message":            result.Message,
		"stored":             result.Stored,
		"target_temperature": result.TargetTemperature,
	})
}

func (s *TelemetryServer) SyncSettings(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req syncSettingsRequest
	if err := parse(syncSettingsSchema, in, &req); err != nil {
		return nil, err
	}

	synced, err := s.Cct.Settings.SyncDeviceSettings(req.DeviceID)
	if err != nil {
		return nil, statusFromError(err)
	}
	return toStruct(synced)
}

func (s *TelemetryServer) SetTarget(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req setTargetRequest
	if err := parse(setTargetSchema, in, &req); err != nil {
		return nil, err
	}

	target, err := s.Cct.Settings.UpdateTargetFromDevice(req.DeviceID, req.Temperature)
	if err != nil {
		return nil, statusFromError(err)
	}
	return toStruct(target)
}
