package controllers

import (
	"net/http"
	"strings"

	"Bluff/game"

	"github.com/gin-gonic/gin"
)

// @Summary Create a new game
// @Description Creates a game with the given player seated at order 1; the creator plays first
// @Tags game
// @Produce json
// @Param playerId query integer true "Creator player id"
// @Success 200 {object} object{message=string,gameId=integer}
// @Failure 404 {object} object{error=string}
// @Router /create [get]
func CreateGame(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := uintQuery(c, "playerId")
		if !ok {
			return
		}
		g, err := e.CreateGame(playerID)
		if err != nil {
			handleError(c, err, "GET /create?playerId=")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Game created successfully. Waiting for players to join.",
			"gameId":  g.ID,
		})
	}
}

// @Summary Join a game
// @Description Seats the player at the next order; the join that fills the last seat triggers the deal
// @Tags game
// @Produce json
// @Param gameId query integer true "Game id"
// @Param playerId query integer true "Player id"
// @Success 200 {object} object{message=string,seatOrder=integer}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /join [get]
func JoinGame(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, ok := uintQuery(c, "gameId")
		if !ok {
			return
		}
		playerID, ok := uintQuery(c, "playerId")
		if !ok {
			return
		}
		order, err := e.JoinGame(c.Request.Context(), gameID, playerID)
		if err != nil {
			handleError(c, err, "GET /join?gameId=&playerId=")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "Joined game successfully",
			"seatOrder": order,
		})
	}
}

// @Summary Current hand
// @Description Returns the player's current hand, ordered by suit
// @Tags game
// @Produce json
// @Param gameId query integer true "Game id"
// @Param playerId query integer true "Player id"
// @Success 200 {object} object{hand=[]object{id=string,rank=string,suit=string}}
// @Failure 404 {object} object{error=string}
// @Router /hand [get]
func Hand(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, ok := uintQuery(c, "gameId")
		if !ok {
			return
		}
		playerID, ok := uintQuery(c, "playerId")
		if !ok {
			return
		}
		hand, err := e.CurrentHand(gameID, playerID)
		if err != nil {
			handleError(c, err, "GET /hand?gameId=&playerId=")
			return
		}
		c.JSON(http.StatusOK, gin.H{"hand": hand, "count": len(hand)})
	}
}

// @Summary Full card reference
// @Description Returns every card of the deck, the id vocabulary used by /throw
// @Tags info
// @Produce json
// @Success 200 {object} object{cards=[]object{id=string,rank=string,suit=string}}
// @Router /cards [get]
func AllCards(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"cards": e.AllCards()})
	}
}

// @Summary Throw cards with a declaration
// @Description Throws the given cards while declaring quantity and rank; the declaration may be a lie
// @Tags game
// @Produce json
// @Param gameId query integer true "Game id"
// @Param playerId query integer true "Acting player id"
// @Param quantity query integer true "Declared quantity (1-4)"
// @Param rank query string true "Declared rank (2-10, J, Q, K, A)"
// @Param cards query string true "Comma-separated card ids actually thrown, e.g. 7H,7S"
// @Success 200 {object} object{message=string,declared=object{quantity=integer,rank=string},cards_remaining=integer}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /throw [get]
func Throw(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, ok := uintQuery(c, "gameId")
		if !ok {
			return
		}
		playerID, ok := uintQuery(c, "playerId")
		if !ok {
			return
		}
		quantity, ok := uintQuery(c, "quantity")
		if !ok {
			return
		}
		rank := c.Query("rank")
		var cardIDs []string
		if raw := c.Query("cards"); raw != "" {
			for _, id := range strings.Split(raw, ",") {
				cardIDs = append(cardIDs, strings.TrimSpace(id))
			}
		}

		result, err := e.Throw(c.Request.Context(), gameID, playerID, rank, int(quantity), cardIDs)
		if err != nil {
			handleError(c, err, "GET /throw?gameId=&playerId=&quantity=&rank=&cards=")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":         "Cards thrown. The next player may challenge your declaration.",
			"declared":        result.Declared,
			"cards_remaining": result.Remaining,
		})
	}
}

// @Summary Last declaration
// @Description Returns the (quantity, rank) of the most recent throw, or an empty declaration if no throw happened yet
// @Tags game
// @Produce json
// @Param gameId query integer true "Game id"
// @Success 200 {object} object{declaration=object{quantity=integer,rank=string}}
// @Failure 404 {object} object{error=string}
// @Router /declaration [get]
func LastDeclaration(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, ok := uintQuery(c, "gameId")
		if !ok {
			return
		}
		decl, err := e.LastDeclaration(gameID)
		if err != nil {
			handleError(c, err, "GET /declaration?gameId=")
			return
		}
		if decl == nil {
			c.JSON(http.StatusOK, gin.H{"declaration": nil, "message": "No throw has been made yet"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"declaration": decl})
	}
}

// @Summary Challenge the last declaration
// @Description Reveals the actually-thrown cards; the loser of the dispute absorbs them
// @Tags game
// @Produce json
// @Param gameId query integer true "Game id"
// @Param playerId query integer true "Challenging player id"
// @Success 200 {object} object{message=string,bluff=boolean,loser_id=integer,absorbed_card_ids=[]string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /challenge [get]
func Challenge(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, ok := uintQuery(c, "gameId")
		if !ok {
			return
		}
		playerID, ok := uintQuery(c, "playerId")
		if !ok {
			return
		}
		result, err := e.Challenge(c.Request.Context(), gameID, playerID)
		if err != nil {
			handleError(c, err, "GET /challenge?gameId=&playerId=")
			return
		}
		message := "The declaration was honest. You absorb the thrown cards."
		if result.Bluff {
			message = "Bluff revealed! The thrower takes the cards back."
		}
		body := gin.H{
			"message":           message,
			"bluff":             result.Bluff,
			"loser_id":          result.LoserID,
			"absorbed_card_ids": result.AbsorbedCardIDs,
			"declared":          result.Declared,
		}
		if result.WinnerID != nil {
			body["winner_id"] = *result.WinnerID
		}
		c.JSON(http.StatusOK, body)
	}
}

// @Summary Game status
// @Description Aggregate view of the game: players, whose turn it is, last declaration, winner
// @Tags game
// @Produce json
// @Param gameId query integer true "Game id"
// @Success 200 {object} object{game=object,players=[]object,next_seat=integer}
// @Failure 404 {object} object{error=string}
// @Router /status [get]
func Status(e *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, ok := uintQuery(c, "gameId")
		if !ok {
			return
		}
		status, err := e.GameStatus(gameID)
		if err != nil {
			handleError(c, err, "GET /status?gameId=")
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
