package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"wayfarer/internal/models/db_models"
)

type CatalogRepository interface {
	UpsertPOI(ctx context.Context, poi *db_models.CatalogPOI) (uuid.UUID, error)
	ListByDestination(ctx context.Context, destination string, limit int) ([]db_models.CatalogPOI, error)

	CreateEmbedding(ctx context.Context, row db_models.CatalogEmbedding) error
	SearchByVector(ctx context.Context, destination string, vector pgvector.Vector, limit int) ([]db_models.CatalogEmbedding, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) UpsertPOI(ctx context.Context, poi *db_models.CatalogPOI) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Save(poi).Error; err != nil {
		return uuid.Nil, err
	}
	return poi.ID, nil
}

// ListByDestination returns an empty slice, not an error, when the catalog
// has nothing for the destination.
func (r *catalogRepository) ListByDestination(ctx context.Context, destination string, limit int) ([]db_models.CatalogPOI, error) {
	var pois []db_models.CatalogPOI
	err := r.db.WithContext(ctx).
		Where("LOWER(destination) = ?", strings.ToLower(destination)).
		Limit(limit).
		Find(&pois).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return pois, nil
}

func (r *catalogRepository) CreateEmbedding(ctx context.Context, row db_models.CatalogEmbedding) error {
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *catalogRepository) SearchByVector(ctx context.Context, destination string, vector pgvector.Vector, limit int) ([]db_models.CatalogEmbedding, error) {
	var results []db_models.CatalogEmbedding

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM catalog_embeddings
        WHERE LOWER(destination) = $2
          AND (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $3
    `

	err := r.db.WithContext(ctx).
		Raw(query, vector.String(), strings.ToLower(destination), limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
