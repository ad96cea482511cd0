package weather

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/config"
)

// Service resolves a site name to coordinates and fetches its current
// conditions. Unknown sites fall back to the configured default location.
type Service interface {
	ForSite(ctx context.Context, site string) (Observation, error)
}

type ServiceImpl struct {
	client *Client
	cfg    config.Weather
}

func NewServiceImpl(client *Client, cfg config.Weather) *ServiceImpl {
	return &ServiceImpl{client: client, cfg: cfg}
}

func (s *ServiceImpl) ForSite(ctx context.Context, site string) (Observation, error) {
	latitude := s.cfg.DefaultLatitude
	longitude := s.cfg.DefaultLongitude
	if coordinates, ok := s.cfg.Sites[site]; ok {
		latitude = coordinates.Latitude
		longitude = coordinates.Longitude
	} else if site != "" {
		log.Debugf("no coordinates configured for site %q, using default location", site)
	}
	return s.client.Current(ctx, latitude, longitude)
}
