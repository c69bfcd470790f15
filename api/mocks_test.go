package api

import (
	"context"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/Domenick1991/backoffice/internal/service/backoffice"
	"github.com/Domenick1991/backoffice/internal/service/operators"
	"github.com/stretchr/testify/mock"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, cmd backoffice.Command) (*backoffice.Result, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backoffice.Result), args.Error(1)
}

func (m *MockDispatcher) Planes() []domain.Airplane {
	return m.Called().Get(0).([]domain.Airplane)
}

func (m *MockDispatcher) Clients() []domain.Client {
	return m.Called().Get(0).([]domain.Client)
}

func (m *MockDispatcher) Destinations() []string {
	return m.Called().Get(0).([]string)
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) ListFinished(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) ListRegular(ctx context.Context) ([]domain.RegularFlight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RegularFlight), args.Error(1)
}

func (m *MockFlightUseCase) Find(ctx context.Context, day time.Time, origin, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, day, origin, destination)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockOperatorUseCase struct {
	mock.Mock
}

func (m *MockOperatorUseCase) Register(ctx context.Context, input operators.RegisterInput) (*domain.Operator, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorUseCase) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockOperatorUseCase) Verify(token string) (*operators.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*operators.Claims), args.Error(1)
}
