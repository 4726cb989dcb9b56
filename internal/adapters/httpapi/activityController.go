package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ac ActivityUseCase
	rc ReviewUseCase
}

func NewActivityController(ac ActivityUseCase, rc ReviewUseCase) *ActivityController {
	return &ActivityController{ac: ac, rc: rc}
}

func (ctl *ActivityController) ImportRecipe(c *gin.Context) {
	var req struct {
		Name       string `json:"name" binding:"required"`
		SourceType string `json:"source_type" binding:"required"`
		SourceURL  string `json:"source_url"`
		ImageURL   string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	res, err := ctl.ac.ImportRecipe(c.Request.Context(), userID.(string), req.Name, req.SourceType, req.SourceURL, req.ImageURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *ActivityController) CreateReview(c *gin.Context) {
	var req struct {
		RecipeID  string   `json:"recipe_id" binding:"required"`
		Rating    int      `json:"rating" binding:"required"`
		Text      string   `json:"text"`
		ImageURLs []string `json:"image_urls"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	res, err := ctl.ac.CreateCookingReview(c.Request.Context(), userID.(string), req.RecipeID, req.Rating, req.Text, req.ImageURLs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *ActivityController) Like(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	activityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}
	if err := ctl.ac.Like(c.Request.Context(), userID.(string), activityID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "liked"})
}

func (ctl *ActivityController) Unlike(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	activityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}
	if err := ctl.ac.Unlike(c.Request.Context(), userID.(string), activityID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unliked"})
}

func (ctl *ActivityController) GetRecipeRating(c *gin.Context) {
	summary, err := ctl.rc.AverageRating(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute rating"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
