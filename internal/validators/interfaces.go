package validators

import (
	"net/url"

	"listing-search/internal/models"
)

type ListingValidator interface {
	// ParseSearch turns guest query parameters into search criteria and the requested page.
	ParseSearch(query url.Values) (models.SearchCriteria, int, error)
	ValidateInvalidation(req *models.InvalidationRequest) (models.DateRange, error)
}
