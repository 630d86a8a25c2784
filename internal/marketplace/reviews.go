package marketplace

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/store"
)

type RateRequest struct {
	ToUserID string `json:"toUserId" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"max=1000"`
}

// ProviderRatingSummary aggregates the reviews shown on a provider page.
type ProviderRatingSummary struct {
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	RatingCounts  struct {
		FiveStar  int `json:"five_star"`
		FourStar  int `json:"four_star"`
		ThreeStar int `json:"three_star"`
		TwoStar   int `json:"two_star"`
		OneStar   int `json:"one_star"`
	} `json:"rating_counts"`
}

// =========================
// RateParticipant - Participant rates the other side after completion
// =========================
func (h *Handler) RateParticipant(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id in URL"})
	}

	var req RateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if len(req.Comment) > 1000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment too long (max 1000 characters)"})
	}

	review, err := h.Store.RateOrderParticipant(orderID, store.RatingData{
		FromUserID: userID,
		ToUserID:   req.ToUserID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return storeError(c, err)
	}

	h.Events.RatingReceived(review)

	return c.JSON(http.StatusCreated, review)
}

// =========================
// GetProviderReviews - Public review listing with rating summary
// =========================
func (h *Handler) GetProviderReviews(c echo.Context) error {
	providerID := c.Param("id")
	if providerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing provider id"})
	}

	user, err := h.Store.UserByID(providerID)
	if err != nil {
		return storeError(c, err)
	}

	reviews := h.Store.ReviewsForUser(providerID)

	summary := ProviderRatingSummary{
		UserID:        user.ID,
		Name:          user.Name,
		TotalReviews:  len(reviews),
		AverageRating: user.AverageRating,
	}
	for _, r := range reviews {
		switch r.Rating {
		case 5:
			summary.RatingCounts.FiveStar++
		case 4:
			summary.RatingCounts.FourStar++
		case 3:
			summary.RatingCounts.ThreeStar++
		case 2:
			summary.RatingCounts.TwoStar++
		case 1:
			summary.RatingCounts.OneStar++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"summary": summary,
		"reviews": reviews,
	})
}
