package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"station-chat-be/internal/constant"
	"station-chat-be/internal/dto"
	"station-chat-be/internal/entity"
	"station-chat-be/internal/pkg/logger"
	"station-chat-be/internal/repository/jsonstore"
	"station-chat-be/internal/repository/memory"
	"station-chat-be/pkg/geo"
	"station-chat-be/pkg/resolver"
)

var ErrStationNotFound = errors.New("station not found")

type IGeoService interface {
	Cities(ctx context.Context) *dto.CitiesResponse
	Stations(ctx context.Context, city string) *dto.StationsResponse
	Station(ctx context.Context, stationId string) (*entity.Station, error)
	Coverage(ctx context.Context, stationId string) (*dto.CoverageResponse, error)
	Select(ctx context.Context, sessionId, stationId string) (*entity.Station, error)
	UpdateStatus(ctx context.Context, stationId, status string) (*entity.Station, error)
	Search(ctx context.Context, q, vendor, band, status string, k int) *dto.SearchResponse
}

type geoService struct {
	stations  *jsonstore.StationStore
	sessions  *memory.SessionRepository
	publisher IPublisherService
	logger    logger.ILogger
}

func NewGeoService(
	stations *jsonstore.StationStore,
	sessions *memory.SessionRepository,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IGeoService {
	return &geoService{
		stations:  stations,
		sessions:  sessions,
		publisher: publisher,
		logger:    sysLogger,
	}
}

func (s *geoService) Cities(_ context.Context) *dto.CitiesResponse {
	cities := make([]dto.CityDTO, 0, len(constant.Cities))
	for _, c := range constant.Cities {
		cities = append(cities, dto.CityDTO{
			Name:   c.Name,
			Code:   c.Code,
			Center: dto.LatLng{Lat: c.Lat, Lng: c.Lng},
		})
	}
	return &dto.CitiesResponse{Ok: true, Cities: cities}
}

func (s *geoService) Stations(_ context.Context, city string) *dto.StationsResponse {
	rows := s.stations.Search(jsonstore.StationFilter{City: city, Limit: 500})
	if rows == nil {
		rows = []*entity.Station{}
	}
	return &dto.StationsResponse{Ok: true, City: city, Stations: rows}
}

func (s *geoService) Station(_ context.Context, stationId string) (*entity.Station, error) {
	st, ok := s.stations.Get(stationId)
	if !ok {
		return nil, ErrStationNotFound
	}
	return st, nil
}

func (s *geoService) Coverage(_ context.Context, stationId string) (*dto.CoverageResponse, error) {
	st, ok := s.stations.Get(stationId)
	if !ok {
		return nil, ErrStationNotFound
	}

	r := geo.CoverageRadiusM(st)
	confidence := 0.0
	if r > 0 {
		confidence = 0.6
	}
	return &dto.CoverageResponse{
		Ok:      true,
		Station: st,
		Address: nil, // reverse geocoding not wired; field kept for the frontend contract
		RadiusM: r,
		Meta:    dto.CoverageMeta{Confidence: confidence, Source: "heuristic"},
	}, nil
}

// Select records the station a client picked on the map as the session's
// conversational context.
func (s *geoService) Select(_ context.Context, sessionId, stationId string) (*entity.Station, error) {
	st, ok := s.stations.Get(stationId)
	if !ok {
		return nil, ErrStationNotFound
	}

	if sessionId == "" {
		sessionId = "__default__"
	}
	sess := s.sessions.GetOrCreate(sessionId)
	sess.Lock()
	sess.Station = st
	sess.Unlock()

	s.logger.Info("geo", "station selected", map[string]interface{}{
		"session": sessionId,
		"station": stationId,
	})
	return st, nil
}

func (s *geoService) UpdateStatus(ctx context.Context, stationId, status string) (*entity.Station, error) {
	st, ok := s.stations.UpdateStatus(stationId, status)
	if !ok {
		return nil, ErrStationNotFound
	}

	payload, err := json.Marshal(dto.StationUpdatedMessage{
		StationId: st.ID,
		Status:    st.Status,
		UpdatedAt: st.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		// The in-memory update already happened; losing the snapshot event
		// only delays persistence until the next one.
		s.logger.Warn("geo", "failed to publish station update", map[string]interface{}{
			"error":   err.Error(),
			"station": stationId,
		})
	}

	s.logger.Info("geo", "station status updated", map[string]interface{}{
		"station": stationId,
		"status":  status,
	})
	return st, nil
}

// Search is the cross-city multi-field retrieval endpoint: optional exact
// vendor/band/status filters, then term scoring over all fields.
func (s *geoService) Search(_ context.Context, q, vendor, band, status string, k int) *dto.SearchResponse {
	if k <= 0 || k > 200 {
		k = 20
	}
	pool := s.stations.Search(jsonstore.StationFilter{
		Vendor: vendor,
		Band:   band,
		Status: status,
		Limit:  1 << 20,
	})

	matches := resolver.TopK(pool, q, k)
	if matches == nil {
		matches = []*entity.Station{}
	}
	s.logger.Debug("geo", "db search", map[string]interface{}{
		"q":       q,
		"matches": fmt.Sprintf("%d", len(matches)),
	})
	return &dto.SearchResponse{Ok: true, Matches: matches}
}
