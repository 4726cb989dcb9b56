package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedController struct{ fc FeedUseCase }

func NewFeedController(fc FeedUseCase) *FeedController {
	return &FeedController{fc: fc}
}

func (ctl *FeedController) GetFeed(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	cursor := c.Query("cursor")
	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	page, err := ctl.fc.GetFeed(c.Request.Context(), userID.(string), cursor, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "feed temporarily unavailable"})
		return
	}
	c.JSON(http.StatusOK, page)
}
