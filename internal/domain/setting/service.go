package setting

import "context"

type SettingService interface {
	// GetRadius returns the effective geofence radius
	GetRadius(ctx context.Context) (RadiusResponse, error)

	// UpdateRadius overrides the geofence radius (admin)
	UpdateRadius(ctx context.Context, req UpdateRadiusRequest) (RadiusResponse, error)
}
