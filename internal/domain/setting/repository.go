package setting

import "context"

type SettingRepository interface {
	// Get retrieves a config value by key, ErrSettingNotFound when absent
	Get(ctx context.Context, key string) (string, error)

	// Set upserts a config value
	Set(ctx context.Context, key, value string) error
}
