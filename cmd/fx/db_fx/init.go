package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"wayfarer/internal/infra"
	"wayfarer/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	provideCatalogRepository,
)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}

// provideCatalogRepository returns nil when no database is configured; the
// supplier falls back to the seed catalog.
func provideCatalogRepository(db *gorm.DB) repositories.CatalogRepository {
	if db == nil {
		return nil
	}
	return repositories.NewCatalogRepository(db)
}
