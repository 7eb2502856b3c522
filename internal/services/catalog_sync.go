package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
)

// CatalogSyncInterface loads the built-in seed destinations into the database
// catalog so the repository-backed supplier and its vector search have rows
// to work with on a fresh database.
type CatalogSyncInterface interface {
	Sync(ctx context.Context) error
}

type catalogSync struct {
	catalog  repositories.CatalogRepository
	embedder Embedder
}

func NewCatalogSync(catalog repositories.CatalogRepository, embedder Embedder) CatalogSyncInterface {
	return &catalogSync{catalog: catalog, embedder: embedder}
}

// Sync upserts seed rows for every destination the catalog does not know
// yet. Embedding failures are logged and skipped; the catalog rows still
// land and the supplier degrades to the plain destination listing.
func (s *catalogSync) Sync(ctx context.Context) error {
	for destination, pois := range seedCatalog {
		existing, err := s.catalog.ListByDestination(ctx, destination, 1)
		if err != nil {
			return fmt.Errorf("seed check for %s: %w", destination, err)
		}
		if len(existing) > 0 {
			continue
		}

		for _, p := range pois {
			row := seedToCatalogRow(destination, p)
			id, err := s.catalog.UpsertPOI(ctx, &row)
			if err != nil {
				return fmt.Errorf("seeding %s / %s: %w", destination, p.Name, err)
			}
			if s.embedder == nil {
				continue
			}

			text := p.Name + " " + p.Category + " " + strings.Join(p.Tags, " ")
			vec, err := s.embedder.EmbedText(ctx, text)
			if err != nil {
				log.Printf("embedding seed row %q failed: %v", p.Name, err)
				continue
			}
			emb := db_models.CatalogEmbedding{
				POIID:       id.String(),
				Destination: destination,
				Name:        p.Name,
				Tags:        row.Tags,
				Embedding:   pgvector.NewVector(vec),
			}
			if err := s.catalog.CreateEmbedding(ctx, emb); err != nil {
				log.Printf("storing embedding for %q failed: %v", p.Name, err)
			}
		}
		log.Printf("seeded catalog for %s with %d places", destination, len(pois))
	}
	return nil
}

func seedToCatalogRow(destination string, p response_models.POI) db_models.CatalogPOI {
	return db_models.CatalogPOI{
		Destination: destination,
		Name:        p.Name,
		Category:    p.Category,
		Lat:         p.Lat,
		Lon:         p.Lon,
		Description: p.Description,
		URL:         p.URL,
		EstStayMin:  p.EstStayMin,
		Rating:      p.Rating,
		PriceLevel:  p.PriceLevel,
		Tags:        pq.StringArray(append([]string(nil), p.Tags...)),
	}
}
