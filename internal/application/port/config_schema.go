package port

import "github.com/bnema/lruconsole/internal/domain/entity"

// ConfigSchemaProvider describes every configuration key.
type ConfigSchemaProvider interface {
	// GetSchema returns all configuration keys with their metadata.
	GetSchema() []entity.ConfigKeyInfo
}
