package handlers

import (
	"context"
	"net/http"

	apperrors "listing-search/internal/errors"
	"listing-search/internal/models"
	"listing-search/internal/utils"
	"listing-search/internal/validators"

	"github.com/gin-gonic/gin"
)

// ListingSearcher is the part of the search service the HTTP layer needs.
type ListingSearcher interface {
	Search(ctx context.Context, c models.SearchCriteria) (models.SearchResult, error)
	Invalidate(ctx context.Context, marketID int64, dr models.DateRange) (models.InvalidationReport, error)
}

type ListingHandler struct {
	searcher  ListingSearcher
	validator validators.ListingValidator
	perPage   int
}

func NewListingHandler(searcher ListingSearcher, validator validators.ListingValidator, perPage int) *ListingHandler {
	return &ListingHandler{searcher: searcher, validator: validator, perPage: perPage}
}

// GetListings godoc
// @Summary Search available listings
// @Description Listings bookable for the whole stay, filtered, sorted and paginated
// @Tags Listings
// @Produce json
// @Param checkin query string false "Check-in date (YYYY-MM-DD)"
// @Param checkout query string false "Check-out date (YYYY-MM-DD)"
// @Param market query int false "Market id"
// @Param sort query string false "Sort field, prefix with - for descending"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.PaginatedListingsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /listings [get]
func (h *ListingHandler) GetListings(c *gin.Context) {
	query := c.Request.URL.Query()
	criteria, page, err := h.validator.ParseSearch(query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.searcher.Search(c.Request.Context(), criteria)
	if err != nil {
		_ = c.Error(err)
		return
	}

	p := utils.Paginate(len(result.Listings), h.perPage, page)
	resp := models.PaginatedListingsResponse{
		TotalCount:    result.TotalCount,
		InBoundsCount: result.InBoundsCount,
		Page:          p.Number,
		NumPages:      p.NumPages,
		Result:        result.Listings[p.Start:p.End],
	}
	base := requestBaseURL(c)
	if p.HasNext() {
		next := utils.BuildPageURL(base, p.Number+1, query)
		resp.Next = &next
	}
	if p.HasPrev() {
		prev := utils.BuildPageURL(base, p.Number-1, query)
		resp.Prev = &prev
	}
	c.JSON(http.StatusOK, resp)
}

// InvalidateCache godoc
// @Summary Invalidate cached searches
// @Description Drops cached listing sets of a market whose stay overlaps the given dates
// @Tags Listings
// @Accept json
// @Produce json
// @Param request body models.InvalidationRequest true "Market and date range"
// @Success 200 {object} models.InvalidationReport
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /listings/cache/invalidate [post]
func (h *ListingHandler) InvalidateCache(c *gin.Context) {
	var req models.InvalidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", "%v", err))
		return
	}
	dr, err := h.validator.ValidateInvalidation(&req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	report, err := h.searcher.Invalidate(c.Request.Context(), req.Market, dr)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.Path
}
