package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stayhub/internal/domain"
)

// PropertyService is host-facing CRUD plus public reads. Reads are
// cache-aside; every write invalidates the property's cached view.
type PropertyService struct {
	properties domain.PropertyRepository
	cache      domain.Cache
	cacheTTL   int // seconds
}

func NewPropertyService(p domain.PropertyRepository, cache domain.Cache, cacheTTLSec int) *PropertyService {
	return &PropertyService{properties: p, cache: cache, cacheTTL: cacheTTLSec}
}

func propertyKey(id string) string { return "property:" + id }

func (s *PropertyService) Create(ctx context.Context, p domain.Property, hostID string) (domain.Property, error) {
	p.ID = uuid.NewString()
	p.HostID = hostID
	if p.Status == "" {
		p.Status = domain.PropertyActive
	}
	return s.properties.CreateProperty(ctx, p)
}

func (s *PropertyService) Get(ctx context.Context, id string) (domain.PropertyView, error) {
	key := propertyKey(id)
	var pv domain.PropertyView
	if ok, _ := s.cache.Get(ctx, key, &pv); ok {
		return pv, nil
	}
	pv, err := s.properties.GetPropertyView(ctx, id)
	if err != nil {
		return domain.PropertyView{}, err
	}
	_ = s.cache.Set(ctx, key, pv, s.cacheTTL)
	return pv, nil
}

func (s *PropertyService) Search(ctx context.Context, q domain.PropertySearch) ([]domain.PropertyView, error) {
	if q.RadiusKm <= 0 {
		q.RadiusKm = 50
	}
	if q.Limit <= 0 || q.Limit > 50 {
		q.Limit = 50
	}
	return s.properties.SearchProperties(ctx, q)
}

func (s *PropertyService) Update(ctx context.Context, id, hostID string, p domain.Property) (domain.Property, error) {
	existing, err := s.properties.GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("load property %s: %w", id, err)
	}
	if existing.HostID != hostID {
		return domain.Property{}, fmt.Errorf("%w: property belongs to another host", domain.ErrUnauthorized)
	}
	p.ID = id
	p.HostID = existing.HostID
	updated, err := s.properties.UpdateProperty(ctx, p)
	if err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Del(ctx, propertyKey(id))
	return updated, nil
}

func (s *PropertyService) Delete(ctx context.Context, id, hostID string) error {
	existing, err := s.properties.GetProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("load property %s: %w", id, err)
	}
	if existing.HostID != hostID {
		return fmt.Errorf("%w: property belongs to another host", domain.ErrUnauthorized)
	}
	if err := s.properties.DeleteProperty(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, propertyKey(id))
	return nil
}
