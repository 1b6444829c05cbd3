package app

import (
	"gorm.io/gorm"

	"github.com/primecut/storefront/config"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// IDProvider generates unique identifiers
type IDProvider interface {
	NextID() int64
}

// AppContext combines the provider interfaces handlers depend on
type AppContext interface {
	DBProvider
	ConfigProvider
	IDProvider
}
