package transformers

import (
	"listing-search/internal/models"
)

type ListingTransformer interface {
	// ToSnapshot prices rec for dr and flattens it into the cached listing shape.
	ToSnapshot(rec models.PropertyRecord, dr models.DateRange) models.ListingSnapshot
}
