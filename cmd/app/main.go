package main

import (
	"os"
	"strconv"

	"go.uber.org/zap"

	dbadapter "forkful/internal/adapters/database"
	"forkful/internal/adapters/httpapi"
	redisadapter "forkful/internal/adapters/redis"
	"forkful/internal/config"
	"forkful/internal/core/activity"
	activityapp "forkful/internal/core/activity/service"
	feedapp "forkful/internal/core/feed/service"
	"forkful/internal/core/follower"
	followerapp "forkful/internal/core/follower/service"
	"forkful/internal/core/recipe"
	"forkful/internal/core/review"
	reviewapp "forkful/internal/core/review/service"
	"forkful/internal/core/user"
	userapp "forkful/internal/core/user/service"
	"forkful/internal/feedindex"
	"forkful/internal/id"
	"forkful/internal/workers"
)

func main() {
	config.InitLogger()
	config.Init()
	config.InitDB()

	if err := config.DB.AutoMigrate(
		&user.User{},
		&follower.Follower{},
		&recipe.Recipe{},
		&recipe.Image{},
		&review.Review{},
		&review.Image{},
		&activity.Event{},
		&activity.Like{},
	); err != nil {
		config.Logger.Fatal("Error during migrations:", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis()
	defer closeResources(config.Logger)

	if err := id.Init(envInt64("NODE_ID", 1)); err != nil {
		config.Logger.Fatal("Failed to initialize ID generator:", zap.Error(err))
	}

	userRepo := dbadapter.NewUserRepositoryDatabase()
	followerRepo := dbadapter.NewFollowerRepositoryDatabase()
	activityRepo := dbadapter.NewActivityRepositoryDatabase()
	likeRepo := dbadapter.NewLikeRepositoryDatabase()
	recipeRepo := dbadapter.NewRecipeRepositoryDatabase()
	reviewRepo := dbadapter.NewReviewRepositoryDatabase()

	indexStore := redisadapter.NewFeedIndexStore(config.RedisClient)
	index := feedindex.New(indexStore, config.Logger,
		int(envInt64("FEED_SHARDS", 0)), int(envInt64("FEED_MAX_ENTRIES", 0)))
	defer index.Close()

	runner := workers.NewRunner(
		int(envInt64("TASK_WORKERS", 0)), int(envInt64("TASK_QUEUE_SIZE", 0)), config.Logger)
	defer runner.Close()

	propagator := feedapp.NewPropagator(activityRepo, followerRepo, index, config.Logger)
	hydrator := feedapp.NewHydrator(activityRepo, likeRepo, userRepo, recipeRepo, reviewRepo, config.Logger)
	feedSvc := feedapp.NewFeedService(index, activityRepo, followerRepo, hydrator, config.Logger)

	userSvc := userapp.NewUserService(userRepo, []byte(os.Getenv("JWT_SECRET")))
	followerSvc := followerapp.NewFollowerService(followerRepo, propagator, runner)
	activitySvc := activityapp.NewActivityService(activityRepo, likeRepo, recipeRepo, reviewRepo, propagator, runner)
	reviewSvc := reviewapp.NewReviewService(reviewRepo)

	r := httpapi.SetupRoutes(userSvc, followerSvc, feedSvc, activitySvc, reviewSvc)

	config.Logger.Info("App is running...")
	if err := r.Run(":" + os.Getenv("APP_PORT")); err != nil {
		config.Logger.Fatal("Server failed to start:", zap.Error(err))
	}
}

func envInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB:", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}
