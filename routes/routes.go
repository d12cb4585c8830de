package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	"Bluff/controllers"
	"Bluff/game"
	"Bluff/services/redis"
	"Bluff/storage/gormstore"

	game_constants "Bluff/constants/game"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// playerCount reads the seats-per-game setting, falling back to the
// original ruleset's 3 players.
func playerCount() int {
	raw := os.Getenv("BLUFF_PLAYERS")
	if raw == "" {
		return game_constants.DefaultPlayerCount
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 2 {
		log.Printf("Invalid BLUFF_PLAYERS=%q, using default of %d", raw, game_constants.DefaultPlayerCount)
		return game_constants.DefaultPlayerCount
	}
	return n
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	// Per-game serialization: the Redis lock when Redis is available, the
	// in-process lock otherwise.
	var locker game.Locker
	if redisClient != nil {
		locker = redis.NewGameLocker(redisClient, game_constants.RedisLockWaitSeconds*time.Second)
	} else {
		locker = game.NewKeyedLocker(game_constants.LocalLockWaitSeconds * time.Second)
	}

	engine := game.NewEngine(gormstore.New(db), locker, playerCount())

	router.GET("/rules", controllers.Rules())
	router.GET("/login", controllers.Login(engine))
	router.GET("/create", controllers.CreateGame(engine))
	router.GET("/join", controllers.JoinGame(engine))
	router.GET("/hand", controllers.Hand(engine))
	router.GET("/cards", controllers.AllCards(engine))
	router.GET("/throw", controllers.Throw(engine))
	router.GET("/declaration", controllers.LastDeclaration(engine))
	router.GET("/challenge", controllers.Challenge(engine))
	router.GET("/status", controllers.Status(engine))
	router.GET("/scoreboard", controllers.Scoreboard(engine))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
