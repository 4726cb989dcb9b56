package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"forkful/internal/adapters/httpapi/middleware"
	activityapp "forkful/internal/core/activity/service"
	feedPort "forkful/internal/ports/feed"
	reviewPort "forkful/internal/ports/review"
	userPort "forkful/internal/ports/user"
)

// Inbound ports: what the routers need from the use cases.
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, name, username, password, image string) (*userPort.UserDTO, error)
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, followerID, followeeID string) error
	UnfollowUser(ctx context.Context, followerID, followeeID string) error
	GetFollowerIDs(ctx context.Context, userID string) ([]string, error)
	GetFollowingIDs(ctx context.Context, followerID string) ([]string, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

type FeedUseCase interface {
	GetFeed(ctx context.Context, viewerID, cursor string, limit int) (*feedPort.Page, error)
}

type ActivityUseCase interface {
	ImportRecipe(ctx context.Context, userID, name, sourceType, sourceURL, imageURL string) (*activityapp.RecipeImportDTO, error)
	CreateCookingReview(ctx context.Context, userID, recipeID string, rating int, text string, imageURLs []string) (*activityapp.CookingReviewDTO, error)
	Like(ctx context.Context, userID string, activityEventID int64) error
	Unlike(ctx context.Context, userID string, activityEventID int64) error
}

type ReviewUseCase interface {
	AverageRating(ctx context.Context, recipeID string) (*reviewPort.RatingSummary, error)
}

func SetupRoutes(
	userUC UserUseCase,
	followerUC FollowerUseCase,
	feedUC FeedUseCase,
	activityUC ActivityUseCase,
	reviewUC ReviewUseCase,
) *gin.Engine {
	r := gin.Default()
	uc := NewUserController(userUC)
	fc := NewFollowerController(followerUC)
	fdc := NewFeedController(feedUC)
	ac := NewActivityController(activityUC, reviewUC)

	r.POST("/register", uc.RegisterUser)
	r.POST("/login", uc.LoginUser)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/", middleware.JWTAuthMiddleware())
	auth.POST("/follow", fc.FollowUser)
	auth.POST("/unfollow", fc.UnfollowUser)
	auth.GET("/followers", fc.GetFollowers)
	auth.GET("/following", fc.GetFollowing)

	auth.GET("/feed", fdc.GetFeed)

	auth.POST("/recipes/import", ac.ImportRecipe)
	auth.GET("/recipes/:id/rating", ac.GetRecipeRating)
	auth.POST("/reviews", ac.CreateReview)
	auth.POST("/activities/:id/like", ac.Like)
	auth.DELETE("/activities/:id/like", ac.Unlike)

	return r
}
