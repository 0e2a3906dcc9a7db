package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "baron.v1.GameService"

const (
	methodCreateGame    = "CreateGame"
	methodPerformAction = "PerformAction"
	methodGetGameState  = "GetGameState"
	methodGetLedger     = "GetLedger"
	methodListGames     = "ListGames"
)

// GameServiceServer is the server side of the game service
type GameServiceServer interface {
	CreateGame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	PerformAction(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetGameState(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetLedger(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ListGames(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv GameServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

// GameServiceDesc describes the game service for grpc.Server.RegisterService
var GameServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(methodCreateGame, GameServiceServer.CreateGame),
		unaryMethod(methodPerformAction, GameServiceServer.PerformAction),
		unaryMethod(methodGetGameState, GameServiceServer.GetGameState),
		unaryMethod(methodGetLedger, GameServiceServer.GetLedger),
		unaryMethod(methodListGames, GameServiceServer.ListGames),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "baron/v1/game_service.proto",
}

// RegisterGameServiceServer registers srv with s
func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GameServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
