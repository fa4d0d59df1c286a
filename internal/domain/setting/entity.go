package setting

// Keys for the app_config key-value table.
const (
	KeyMaxRadiusKm = "max_radius_km"
)
