package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The telemetry service carries google.protobuf.Struct in both directions, so
// its descriptor is declared here instead of being generated.

const (
	ServiceName = "cct.v1.DeviceTelemetry"

	MethodSubmitTemperature = "/" + ServiceName + "/SubmitTemperature"
	MethodSyncSettings      = "/" + ServiceName + "/SyncSettings"
	MethodSetTarget         = "/" + ServiceName + "/SetTarget"
)

type DeviceTelemetryServer interface {
	SubmitTemperature(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SyncSettings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetTarget(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(DeviceTelemetryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unaryHandler(fullMethod string, call unaryCall) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DeviceTelemetryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DeviceTelemetryServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var DeviceTelemetryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DeviceTelemetryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitTemperature",
			Handler:    unaryHandler(MethodSubmitTemperature, DeviceTelemetryServer.SubmitTemperature),
		},
		{
			MethodName: "SyncSettings",
			Handler:    unaryHandler(MethodSyncSettings, DeviceTelemetryServer.SyncSettings),
		},
		{
			MethodName: "SetTarget",
			Handler:    unaryHandler(MethodSetTarget, DeviceTelemetryServer.SetTarget),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cct/v1/telemetry.proto",
}

func RegisterDeviceTelemetryServer(s grpc.ServiceRegistrar, srv DeviceTelemetryServer) {
	s.RegisterService(&DeviceTelemetryServiceDesc, srv)
}

type DeviceTelemetryClient struct {
	cc grpc.ClientConnInterface
}

func NewDeviceTelemetryClient(cc grpc.ClientConnInterface) *DeviceTelemetryClient {
	return &DeviceTelemetryClient{cc: cc}
}

func (c *DeviceTelemetryClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DeviceTelemetryClient) SubmitTemperature(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSubmitTemperature, in, opts...)
}

func (c *DeviceTelemetryClient) SyncSettings(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSyncSettings, in, opts...)
}

func (c *DeviceTelemetryClient) SetTarget(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSetTarget, in, opts...)
}
