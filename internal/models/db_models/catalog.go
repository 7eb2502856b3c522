package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// CatalogPOI is a curated point of interest in the static catalog.
type CatalogPOI struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Destination string         `gorm:"index"`
	Name        string
	Category    string
	Lat         float64
	Lon         float64
	Description string
	URL         string
	EstStayMin  int
	Rating      float64
	PriceLevel  int
	Tags        pq.StringArray `gorm:"type:text[]"`
	CreatedAt   int64          `gorm:"autoCreateTime"`
	UpdatedAt   int64          `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (p *CatalogPOI) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().Unix()
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (p *CatalogPOI) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now().Unix()
	return nil
}

// CatalogEmbedding mirrors a catalog row with its interest-text embedding for
// semantic candidate retrieval.
type CatalogEmbedding struct {
	POIID       string `gorm:"primaryKey;column:poi_id"`
	Destination string
	Name        string
	Tags        pq.StringArray  `gorm:"type:text[]"`
	Embedding   pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (CatalogEmbedding) TableName() string {
	return "catalog_embeddings"
}
