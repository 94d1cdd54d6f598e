package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

const requestTimeout = 10 * time.Second

var (
	// ErrTimeout — коллаборатор не ответил вовремя, просим ручной ввод адреса
	ErrTimeout = errors.New("geocoding timed out")
	// ErrMalformed — ответ пришёл, но без пригодного адреса или почтового индекса
	ErrMalformed = errors.New("malformed geocoding result")
)

// Result — нормализованный результат обратного геокодирования.
type Result struct {
	FormattedAddress string
	PlaceID          string
	PostalCode       string
}

// Geocoder переводит координаты в адрес с почтовым индексом.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*Result, error)
}

// GoogleGeocoder — клиент Google Maps Geocoding API.
type GoogleGeocoder struct {
	client  *maps.Client
	timeout time.Duration
	logger  *zap.Logger
}

func NewGoogle(apiKey string, logger *zap.Logger) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}

	return &GoogleGeocoder{
		client:  client,
		timeout: requestTimeout,
		logger:  logger,
	}, nil
}

// ReverseGeocode запрашивает адрес для координат. Любой сбой сводится к
// ErrTimeout или ErrMalformed, наружу сырые ошибки API не выходят.
func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		g.logger.Warn("Reverse geocoding request failed", zap.Error(err))
		return nil, ErrTimeout
	}

	if len(results) == 0 {
		return nil, ErrMalformed
	}

	first := results[0]
	result := &Result{
		FormattedAddress: first.FormattedAddress,
		PlaceID:          first.PlaceID,
	}

	for _, component := range first.AddressComponents {
		for _, componentType := range component.Types {
			if componentType == "postal_code" {
				result.PostalCode = component.LongName
			}
		}
	}

	if result.PostalCode == "" {
		return nil, ErrMalformed
	}

	return result, nil
}
