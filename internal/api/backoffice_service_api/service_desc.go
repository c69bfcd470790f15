package backoffice_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

type method func(BackOfficeServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call method) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BackOfficeServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + name,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(BackOfficeServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BackOfficeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ScheduleBooking", Handler: unaryHandler("ScheduleBooking", BackOfficeServer.ScheduleBooking)},
		{MethodName: "CancelBooking", Handler: unaryHandler("CancelBooking", BackOfficeServer.CancelBooking)},
		{MethodName: "ModifyBooking", Handler: unaryHandler("ModifyBooking", BackOfficeServer.ModifyBooking)},
		{MethodName: "ScheduleCharter", Handler: unaryHandler("ScheduleCharter", BackOfficeServer.ScheduleCharter)},
		{MethodName: "BookingPrice", Handler: unaryHandler("BookingPrice", BackOfficeServer.BookingPrice)},
		{MethodName: "UpdateMiles", Handler: unaryHandler("UpdateMiles", BackOfficeServer.UpdateMiles)},
		{MethodName: "BookingInfo", Handler: unaryHandler("BookingInfo", BackOfficeServer.BookingInfo)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "backoffice.proto",
}

func RegisterBackOfficeServer(s grpc.ServiceRegistrar, srv BackOfficeServer) {
	s.RegisterService(&ServiceDesc, srv)
}
