package find_nearby

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	providerRepo "github.com/m04kA/QA-MatchingService/internal/infra/storage/provider"
	"github.com/m04kA/QA-MatchingService/pkg/geokit"
	"github.com/m04kA/QA-MatchingService/pkg/ptr"
)

type fakeRequestRepo struct {
	requests []*domain.ServiceRequest
	err      error

	gotBox   geokit.BoundingBox
	gotSince time.Time
}

func (f *fakeRequestRepo) FindPendingInBox(_ context.Context, box geokit.BoundingBox, since time.Time) ([]*domain.ServiceRequest, error) {
	f.gotBox = box
	f.gotSince = since
	if f.err != nil {
		return nil, f.err
	}
	// Репозиторий отдаёт только кандидатов внутри рамки
	var inBox []*domain.ServiceRequest
	for _, req := range f.requests {
		if box.Contains(req.Latitude, req.Longitude) && !req.CreatedAt.Before(since) {
			inBox = append(inBox, req)
		}
	}
	return inBox, nil
}

type fakeProviderRepo struct {
	profile *domain.ProviderProfile
	err     error
}

func (f *fakeProviderRepo) GetByUserID(_ context.Context, _ int64) (*domain.ProviderProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// Центр Москвы, радиус 20 км, свежесть 30 минут
const (
	testLat      = 55.7558
	testLon      = 37.6173
	testRadiusKM = 20.0
	testMaxAge   = 30 * time.Minute
)

func verifiedProfile() *domain.ProviderProfile {
	return &domain.ProviderProfile{
		UserID:          42,
		IsVerified:      true,
		IsAvailable:     true,
		Latitude:        ptr.Ptr(testLat),
		Longitude:       ptr.Ptr(testLon),
		ServiceRadiusKM: testRadiusKM,
	}
}

// requestAt создает PENDING-заявку на расстоянии distanceKM к востоку от исполнителя
func requestAt(id int64, distanceKM float64, createdAt time.Time) *domain.ServiceRequest {
	lonOffset := distanceKM / (111.19 * 0.5625) // cos(55.7558 deg) ~ 0.5625
	return &domain.ServiceRequest{
		ID:          id,
		CustomerID:  100 + id,
		ServiceID:   1,
		ServiceName: "Ремонт сантехники",
		Status:      domain.StatusPending,
		Latitude:    testLat,
		Longitude:   testLon + lonOffset,
		CreatedAt:   createdAt,
	}
}

func newTestUseCase(reqRepo *fakeRequestRepo, provRepo *fakeProviderRepo) *UseCase {
	uc := NewUseCase(reqRepo, provRepo, testRadiusKM, testMaxAge, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_ReturnsRequestsSortedByDistance(t *testing.T) {
	far := requestAt(1, 15, testNow.Add(-5*time.Minute))
	near := requestAt(2, 2, testNow.Add(-10*time.Minute))
	mid := requestAt(3, 8, testNow.Add(-1*time.Minute))

	reqRepo := &fakeRequestRepo{requests: []*domain.ServiceRequest{far, near, mid}}
	uc := newTestUseCase(reqRepo, &fakeProviderRepo{profile: verifiedProfile()})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 42})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 3)

	assert.Equal(t, int64(2), resp.Requests[0].ID)
	assert.Equal(t, int64(3), resp.Requests[1].ID)
	assert.Equal(t, int64(1), resp.Requests[2].ID)

	// Расстояния монотонно не убывают
	assert.LessOrEqual(t, resp.Requests[0].DistanceKM, resp.Requests[1].DistanceKM)
	assert.LessOrEqual(t, resp.Requests[1].DistanceKM, resp.Requests[2].DistanceKM)
}

func TestExecute_EqualDistanceOrderedByCreationTime(t *testing.T) {
	later := requestAt(7, 5, testNow.Add(-1*time.Minute))
	earlier := requestAt(8, 5, testNow.Add(-20*time.Minute))

	reqRepo := &fakeRequestRepo{requests: []*domain.ServiceRequest{later, earlier}}
	uc := newTestUseCase(reqRepo, &fakeProviderRepo{profile: verifiedProfile()})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 42})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 2)

	// При равном расстоянии более ранняя заявка первая
	assert.Equal(t, int64(8), resp.Requests[0].ID)
	assert.Equal(t, int64(7), resp.Requests[1].ID)
}

func TestExecute_ExcludesRequestsBeyondRadius(t *testing.T) {
	inside := requestAt(1, 19.5, testNow.Add(-5*time.Minute))
	outside := requestAt(2, 25, testNow.Add(-5*time.Minute))

	reqRepo := &fakeRequestRepo{requests: []*domain.ServiceRequest{inside, outside}}
	uc := newTestUseCase(reqRepo, &fakeProviderRepo{profile: verifiedProfile()})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 42})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, int64(1), resp.Requests[0].ID)
}

func TestExecute_ExcludesStaleRequests(t *testing.T) {
	fresh := requestAt(1, 5, testNow.Add(-29*time.Minute))
	stale := requestAt(2, 5, testNow.Add(-31*time.Minute))

	reqRepo := &fakeRequestRepo{requests: []*domain.ServiceRequest{fresh, stale}}
	uc := newTestUseCase(reqRepo, &fakeProviderRepo{profile: verifiedProfile()})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 42})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, int64(1), resp.Requests[0].ID)

	assert.Equal(t, testNow.Add(-testMaxAge), reqRepo.gotSince)
}

func TestExecute_EmptyResultIsNotAnError(t *testing.T) {
	uc := newTestUseCase(&fakeRequestRepo{}, &fakeProviderRepo{profile: verifiedProfile()})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 42})
	require.NoError(t, err)
	assert.Empty(t, resp.Requests)
}

func TestExecute_PolicyGates(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(p *domain.ProviderProfile)
		expectedErr error
	}{
		{
			name:        "не верифицирован",
			mutate:      func(p *domain.ProviderProfile) { p.IsVerified = false },
			expectedErr: ErrNotVerified,
		},
		{
			name:        "не доступен",
			mutate:      func(p *domain.ProviderProfile) { p.IsAvailable = false },
			expectedErr: ErrNotAvailable,
		},
		{
			name:        "нет координат",
			mutate:      func(p *domain.ProviderProfile) { p.Latitude, p.Longitude = nil, nil },
			expectedErr: ErrNoLocation,
		},
		{
			// Верификация проверяется раньше остальных условий
			name: "не верифицирован и не доступен",
			mutate: func(p *domain.ProviderProfile) {
				p.IsVerified = false
				p.IsAvailable = false
			},
			expectedErr: ErrNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := verifiedProfile()
			tt.mutate(profile)

			uc := newTestUseCase(&fakeRequestRepo{}, &fakeProviderRepo{profile: profile})

			_, err := uc.Execute(context.Background(), &Request{ProviderID: 42})
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestExecute_ProviderNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeRequestRepo{}, &fakeProviderRepo{err: providerRepo.ErrProviderNotFound})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 42})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	reqRepo := &fakeRequestRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(reqRepo, &fakeProviderRepo{profile: verifiedProfile()})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 42})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidProviderID(t *testing.T) {
	uc := newTestUseCase(&fakeRequestRepo{}, &fakeProviderRepo{profile: verifiedProfile()})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BoxCoversSearchRadius(t *testing.T) {
	reqRepo := &fakeRequestRepo{}
	uc := newTestUseCase(reqRepo, &fakeProviderRepo{profile: verifiedProfile()})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 42})
	require.NoError(t, err)

	// Рамка построена вокруг позиции исполнителя и покрывает радиус
	assert.True(t, reqRepo.gotBox.Contains(testLat, testLon))
	assert.Less(t, reqRepo.gotBox.MinLat, testLat-testRadiusKM/112.0)
	assert.Greater(t, reqRepo.gotBox.MaxLat, testLat+testRadiusKM/112.0)
}
