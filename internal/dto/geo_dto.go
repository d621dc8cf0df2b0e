package dto

import "station-chat-be/internal/entity"

type CityDTO struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Center LatLng `json:"center"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CitiesResponse struct {
	Ok     bool      `json:"ok"`
	Cities []CityDTO `json:"cities"`
}

type StationsResponse struct {
	Ok       bool              `json:"ok"`
	City     string            `json:"city,omitempty"`
	Stations []*entity.Station `json:"stations"`
}

type StationResponse struct {
	Ok      bool            `json:"ok"`
	Station *entity.Station `json:"station,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type CoverageMeta struct {
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

type CoverageResponse struct {
	Ok      bool            `json:"ok"`
	Station *entity.Station `json:"station,omitempty"`
	Address *string         `json:"address"`
	RadiusM int             `json:"radius_m"`
	Meta    CoverageMeta    `json:"meta"`
	Error   string          `json:"error,omitempty"`
}

type SelectionRequest struct {
	StationId string `json:"station_id" validate:"required"`
	SessionId string `json:"session_id"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=online maintenance offline"`
}

type SearchResponse struct {
	Ok      bool              `json:"ok"`
	Matches []*entity.Station `json:"matches"`
}

// StationUpdatedMessage is the event payload published after a status
// change; the consumer persists a store snapshot on receipt.
type StationUpdatedMessage struct {
	StationId string `json:"station_id"`
	Status    string `json:"status"`
	UpdatedAt int64  `json:"updated_at"`
}
