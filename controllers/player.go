package controllers

import (
	"fmt"
	"net/http"

	"Bluff/game"

	"github.com/gin-gonic/gin"
)

const rulesText = "Welcome to Bluff. The rules are: " +
	"1. The game is played with a fixed number of players, dealt from a single deck. " +
	"2. On your turn you announce which cards you are throwing: how many, plus which rank, e.g. 3 jacks. " +
	"3. The cards you actually throw do not have to match what you announced. " +
	"4. The next player may challenge: if any thrown card differs from the announced rank, " +
	"the thrower takes the cards back; otherwise the challenger absorbs them. " +
	"5. Empty your hand to win."

// @Summary Game rules
// @Description Returns the static rules text of the game
// @Tags info
// @Produce json
// @Success 200 {object} object{rules=string}
// @Router /rules [get]
func Rules() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rules": rulesText})
	}
}

// @Summary Log in (register) a player
// @Description Creates a new player with the given name and returns its id together with the ids of games still waiting for players
// @Tags player
// @Produce json
// @Param name query string true "Display name"
// @Success 200 {object} object{message=string,userId=integer,name=string,availableGameIds=[]integer}
// @Failure 400 {object} object{error=string}
// @Router /login [get]
func Login(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query("name")

		player, openGames, err := e.RegisterPlayer(name)
		if err != nil {
			handleError(c, err, "GET /login?name=")
			return
		}

		message := fmt.Sprintf(
			"You logged in successfully. Your unique userId is %d. "+
				"You need to remember it for the duration of your game. ", player.ID)
		if len(openGames) > 0 {
			message += fmt.Sprintf("There exist the following available games: %v. "+
				"You can either connect to one of them, or create a new game", openGames)
		} else {
			message += "There are no available games at the moment. Please create a new game!"
		}

		c.JSON(http.StatusOK, gin.H{
			"message":          message,
			"userId":           player.ID,
			"name":             player.Name,
			"availableGameIds": openGames,
		})
	}
}

// @Summary Cumulative win counts
// @Description Returns the scoreboard, either for every player or for the one given by playerId
// @Tags player
// @Produce json
// @Param playerId query integer false "Restrict to one player"
// @Success 200 {object} object{scoreboard=[]object{player_id=integer,wins=integer}}
// @Failure 404 {object} object{error=string}
// @Router /scoreboard [get]
func Scoreboard(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var playerID *uint
		if c.Query("playerId") != "" {
			id, ok := uintQuery(c, "playerId")
			if !ok {
				return
			}
			playerID = &id
		}

		entries, err := e.Scoreboard(playerID)
		if err != nil {
			handleError(c, err, "GET /scoreboard?playerId=")
			return
		}
		c.JSON(http.StatusOK, gin.H{"scoreboard": entries})
	}
}
