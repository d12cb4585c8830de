package controllers

import (
	"log"
	"net/http"
	"strconv"

	"Bluff/game"

	"github.com/gin-gonic/gin"
)

// statusFor maps the engine's error taxonomy onto HTTP statuses.
func statusFor(code game.Code) int {
	switch code {
	case game.CodeInvalidInput, game.CodeInvalidShape:
		return http.StatusBadRequest
	case game.CodePlayerNotFound, game.CodeGameNotFound:
		return http.StatusNotFound
	case game.CodeAlreadyJoined, game.CodeGameFull, game.CodeNotYourTurn,
		game.CodeCardsNotOwned, game.CodeNoDeclarationYet, game.CodeGameOver:
		return http.StatusConflict
	case game.CodeContention:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError serializes an engine failure, naming the endpoint it came
// from so clients can tell which call of a sequence failed.
func handleError(c *gin.Context, err error, endpoint string) {
	code := game.CodeOf(err)
	if code == game.CodeStorage {
		log.Printf("Error on %s: %v", endpoint, err)
	}
	body := gin.H{"error": err.Error(), "code": code, "endpoint": endpoint}
	if game.Retryable(err) {
		body["retryable"] = true
	}
	c.JSON(statusFor(code), body)
}

// uintQuery parses a required numeric query parameter.
func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required", "code": game.CodeInvalidInput})
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a number", "code": game.CodeInvalidInput})
		return 0, false
	}
	return uint(v), true
}
