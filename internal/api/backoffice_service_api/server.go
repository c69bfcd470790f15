package backoffice_service_api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/Domenick1991/backoffice/internal/service/backoffice"
	"github.com/Domenick1991/backoffice/internal/service/operators"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "backoffice.BackOffice"

// BackOfficeServer is the front-office booking surface. Requests and replies
// are google.protobuf.Struct documents using the JSON field names of the
// backoffice commands.
type BackOfficeServer interface {
	ScheduleBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CancelBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ModifyBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ScheduleCharter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	BookingPrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateMiles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	BookingInfo(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type TokenVerifier interface {
	Verify(token string) (*operators.Claims, error)
}

// Server implements BackOfficeServer on top of the command dispatcher.
type Server struct {
	service  backoffice.Dispatcher
	verifier TokenVerifier
}

func NewServer(service backoffice.Dispatcher, verifier TokenVerifier) *Server {
	return &Server{service: service, verifier: verifier}
}

type outcomeReply struct {
	Outcome       string `json:"outcome"`
	OK            bool   `json:"ok"`
	Kind          string `json:"kind"`
	BookingNumber *int64 `json:"booking_number,omitempty"`
	FlightID      int64  `json:"flight_id,omitempty"`
}

type priceReply struct {
	Price float64 `json:"price"`
	Miles float64 `json:"miles"`
}

type bookingReply struct {
	ID          int64   `json:"id"`
	FlightID    int64   `json:"flight_id"`
	Seats       int     `json:"seats"`
	ClientEmail string  `json:"client_email"`
	Price       float64 `json:"price"`
}

func (s *Server) ScheduleBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var cmd backoffice.ScheduleBooking
	if err := decode(req, &cmd); err != nil {
		return nil, err
	}
	op, err := s.operator(ctx)
	if err != nil {
		return nil, err
	}
	cmd.IsOperator = op
	return s.outcome(ctx, cmd)
}

func (s *Server) CancelBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var cmd backoffice.CancelBooking
	if err := decode(req, &cmd); err != nil {
		return nil, err
	}
	return s.outcome(ctx, cmd)
}

func (s *Server) ModifyBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var cmd backoffice.ModifyBooking
	if err := decode(req, &cmd); err != nil {
		return nil, err
	}
	op, err := s.operator(ctx)
	if err != nil {
		return nil, err
	}
	cmd.IsOperator = op
	return s.outcome(ctx, cmd)
}

func (s *Server) ScheduleCharter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var cmd backoffice.ScheduleCharter
	if err := decode(req, &cmd); err != nil {
		return nil, err
	}
	op, err := s.operator(ctx)
	if err != nil {
		return nil, err
	}
	if !op {
		return nil, status.Error(codes.PermissionDenied, "charters are booked by operators")
	}
	return s.outcome(ctx, cmd)
}

func (s *Server) BookingPrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var cmd backoffice.BookingPrice
	if err := decode(req, &cmd); err != nil {
		return nil, err
	}
	res, err := s.service.Dispatch(ctx, cmd)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(priceReply{Price: res.Price, Miles: res.Miles})
}

func (s *Server) UpdateMiles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var cmd backoffice.UpdateMiles
	if err := decode(req, &cmd); err != nil {
		return nil, err
	}
	if _, err := s.service.Dispatch(ctx, cmd); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

func (s *Server) BookingInfo(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var cmd backoffice.BookingInfo
	if err := decode(req, &cmd); err != nil {
		return nil, err
	}
	res, err := s.service.Dispatch(ctx, cmd)
	if err != nil {
		return nil, toStatus(err)
	}
	b := res.Booking
	return encode(bookingReply{ID: b.ID, FlightID: b.FlightID, Seats: b.Seats, ClientEmail: b.ClientEmail, Price: b.Price})
}

func (s *Server) outcome(ctx context.Context, cmd backoffice.Command) (*structpb.Struct, error) {
	res, err := s.service.Dispatch(ctx, cmd)
	if err != nil {
		return nil, toStatus(err)
	}
	o := *res.Outcome
	reply := outcomeReply{Outcome: o.String(), OK: o.OK(), Kind: string(o.Kind), FlightID: o.FlightID}
	if o.Kind == domain.OutcomeScheduled || o.Kind == domain.OutcomeModified {
		n := o.BookingNumber
		reply.BookingNumber = &n
	}
	return encode(reply)
}

// operator reports whether the call carries a valid operator token in the
// authorization metadata.
func (s *Server) operator(ctx context.Context) (bool, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return false, nil
	}
	values := md.Get("authorization")
	if len(values) == 0 || s.verifier == nil {
		return false, nil
	}
	token, ok := strings.CutPrefix(values[0], "Bearer ")
	if !ok || token == "" {
		return false, status.Error(codes.Unauthenticated, "malformed authorization metadata")
	}
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return false, status.Error(codes.Unauthenticated, err.Error())
	}
	return claims.Role == operators.RoleOperator, nil
}

func decode(req *structpb.Struct, dst interface{}) error {
	if req == nil {
		return status.Error(codes.InvalidArgument, "empty request")
	}
	data, err := protojson.Marshal(req)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	return nil
}

func encode(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrPlaneNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrClientNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrRegularCollision):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

var _ BackOfficeServer = (*Server)(nil)
