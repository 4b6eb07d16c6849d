package queries

import (
	"context"
	"sort"

	"parkbroker/internal/domain/geo"
	"parkbroker/internal/domain/spot"
	"parkbroker/internal/infra"
	"parkbroker/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSpotNotFound    = errs.New("spot not found")
	ErrInvalidFilter   = errs.New("invalid search filter")
	ErrSpotQueryFailed = errs.New("spot query failed")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	DefaultNearbyRadiusM = 2000.0
	MaxNearbyRadiusM     = 50000.0
)

func ValidateLimit(v int) int {
	if v <= 0 {
		return DefaultLimit
	}
	if v > MaxLimit {
		return MaxLimit
	}
	return v
}

type SpotQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SpotView, error)
	Search(ctx context.Context, f SpotSearchFilters) ([]*SpotView, error)
	Nearby(ctx context.Context, p NearbyParams) ([]*NearbySpotView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpotView, error)
}

type SpotViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SpotView, error)
	FindAvailable(ctx context.Context, f SpotSearchFilters) ([]*SpotView, error)
	FindAvailableWithin(ctx context.Context, b geo.Bounds) ([]*SpotView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpotView, error)
}

// NearbyCache is optional memoization for Nearby; implementations must
// treat failures as misses.
type NearbyCache interface {
	Get(ctx context.Context, p NearbyParams) ([]*NearbySpotView, bool, error)
	Set(ctx context.Context, p NearbyParams, results []*NearbySpotView) error
}

type spotQueriesImpl struct {
	repo  SpotViewRepo
	cache NearbyCache
}

func NewSpotQueries(repo SpotViewRepo, cache NearbyCache) SpotQueries {
	return &spotQueriesImpl{repo: repo, cache: cache}
}

func (q *spotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SpotView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, errs.Mark(err, ErrSpotQueryFailed)
	}
	return view, nil
}

func (q *spotQueriesImpl) Search(ctx context.Context, f SpotSearchFilters) ([]*SpotView, error) {
	f.Limit = int32(ValidateLimit(int(f.Limit)))
	if f.Offset < 0 {
		f.Offset = 0
	}
	if (f.SlotStart == nil) != (f.SlotEnd == nil) {
		return nil, ErrInvalidFilter
	}
	if f.SlotStart != nil && !f.SlotStart.Before(*f.SlotEnd) {
		return nil, ErrInvalidFilter
	}

	if f.VehicleSize != nil {
		size, err := spot.ParseVehicleSize(*f.VehicleSize)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidFilter)
		}
		for _, s := range spot.SizesAccommodating(size) {
			f.SizeIn = append(f.SizeIn, s.String())
		}
	}

	views, err := q.repo.FindAvailable(ctx, f)
	if err != nil {
		return nil, errs.Mark(err, ErrSpotQueryFailed)
	}
	return views, nil
}

// Nearby prefilters with a bounding box in SQL, then computes exact
// haversine distances and orders ascending.
func (q *spotQueriesImpl) Nearby(ctx context.Context, p NearbyParams) ([]*NearbySpotView, error) {
	if _, err := spot.NewCoordinates(p.Latitude, p.Longitude); err != nil {
		return nil, errs.Mark(err, ErrInvalidFilter)
	}
	if p.RadiusM <= 0 {
		p.RadiusM = DefaultNearbyRadiusM
	}
	if p.RadiusM > MaxNearbyRadiusM {
		p.RadiusM = MaxNearbyRadiusM
	}
	p.Limit = int32(ValidateLimit(int(p.Limit)))

	if cached, ok, _ := q.cache.Get(ctx, p); ok {
		return cached, nil
	}

	candidates, err := q.repo.FindAvailableWithin(ctx, geo.BoundingBox(p.Latitude, p.Longitude, p.RadiusM))
	if err != nil {
		return nil, errs.Mark(err, ErrSpotQueryFailed)
	}

	results := make([]*NearbySpotView, 0, len(candidates))
	for _, v := range candidates {
		d := geo.Distance(p.Latitude, p.Longitude, v.Latitude, v.Longitude)
		if d > p.RadiusM {
			continue
		}
		results = append(results, &NearbySpotView{SpotView: *v, DistanceMeters: d})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})
	if len(results) > int(p.Limit) {
		results = results[:p.Limit]
	}

	_ = q.cache.Set(ctx, p, results)
	return results, nil
}

func (q *spotQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpotView, error) {
	views, err := q.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, ErrSpotQueryFailed)
	}
	return views, nil
}
