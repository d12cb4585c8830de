package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Bluff/controllers"
	"Bluff/game"
	"Bluff/storage/memstore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRouter wires the full route table against the in-memory store, so the
// handler tests exercise real engine behavior end to end.
func newRouter(players int) (*gin.Engine, *game.Engine) {
	gin.SetMode(gin.TestMode)
	engine := game.NewEngine(memstore.New(), game.NewKeyedLocker(time.Second), players)
	engine.Seed(1)

	r := gin.New()
	r.GET("/rules", controllers.Rules())
	r.GET("/login", controllers.Login(engine))
	r.GET("/create", controllers.CreateGame(engine))
	r.GET("/join", controllers.JoinGame(engine))
	r.GET("/hand", controllers.Hand(engine))
	r.GET("/cards", controllers.AllCards(engine))
	r.GET("/throw", controllers.Throw(engine))
	r.GET("/declaration", controllers.LastDeclaration(engine))
	r.GET("/challenge", controllers.Challenge(engine))
	r.GET("/status", controllers.Status(engine))
	r.GET("/scoreboard", controllers.Scoreboard(engine))
	return r, engine
}

func doGET(t *testing.T, r *gin.Engine, url string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func TestRules(t *testing.T) {
	r, _ := newRouter(2)
	code, body := doGET(t, r, "/rules")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body["rules"], "Empty your hand to win")
}

func TestLogin(t *testing.T) {
	r, _ := newRouter(2)

	code, body := doGET(t, r, "/login")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(game.CodeInvalidInput), body["code"])

	code, body = doGET(t, r, "/login?name=alice")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["userId"])
	assert.Equal(t, "alice", body["name"])
	assert.Contains(t, body["message"], "no available games")

	// Once a game is open, the next login advertises it.
	code, _ = doGET(t, r, "/create?playerId=1")
	require.Equal(t, http.StatusOK, code)
	code, body = doGET(t, r, "/login?name=bob")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []interface{}{float64(1)}, body["availableGameIds"])
}

func TestCards(t *testing.T) {
	r, _ := newRouter(2)
	code, body := doGET(t, r, "/cards")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["cards"], 52)
}

func TestCreateValidation(t *testing.T) {
	r, _ := newRouter(2)

	code, _ := doGET(t, r, "/create")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doGET(t, r, "/create?playerId=abc")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := doGET(t, r, "/create?playerId=99")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, string(game.CodePlayerNotFound), body["code"])
}

// setupGame logs in two players and fills a 2-player game, returning the
// game id (always 1 on a fresh store).
func setupGame(t *testing.T, r *gin.Engine) {
	t.Helper()
	code, _ := doGET(t, r, "/login?name=alice")
	require.Equal(t, http.StatusOK, code)
	code, _ = doGET(t, r, "/login?name=bob")
	require.Equal(t, http.StatusOK, code)
	code, _ = doGET(t, r, "/create?playerId=1")
	require.Equal(t, http.StatusOK, code)
	code, body := doGET(t, r, "/join?gameId=1&playerId=2")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(2), body["seatOrder"])
}

func TestJoinErrors(t *testing.T) {
	r, _ := newRouter(2)
	setupGame(t, r)

	code, body := doGET(t, r, "/join?gameId=1&playerId=1")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, string(game.CodeAlreadyJoined), body["code"])

	code, _ = doGET(t, r, "/login?name=carol")
	require.Equal(t, http.StatusOK, code)
	code, body = doGET(t, r, "/join?gameId=1&playerId=3")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, string(game.CodeGameFull), body["code"])

	code, body = doGET(t, r, "/join?gameId=9&playerId=1")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, string(game.CodeGameNotFound), body["code"])
}

func TestHand(t *testing.T) {
	r, _ := newRouter(2)
	setupGame(t, r)

	code, body := doGET(t, r, "/hand?gameId=1&playerId=1")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(26), body["count"])

	code, _ = doGET(t, r, "/hand?gameId=1")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestThrowChallengeFlow(t *testing.T) {
	r, engine := newRouter(2)
	setupGame(t, r)

	// No declaration before the first throw.
	code, body := doGET(t, r, "/declaration?gameId=1")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["declaration"])

	// Out of turn: player 2 cannot open the game.
	code, body = doGET(t, r, "/challenge?gameId=1&playerId=2")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, string(game.CodeNoDeclarationYet), body["code"])

	// Player 1 throws two real cards from the dealt hand, declared as kings.
	hand, err := engine.CurrentHand(1, 1)
	require.NoError(t, err)
	url := fmt.Sprintf("/throw?gameId=1&playerId=1&quantity=2&rank=K&cards=%s,%s",
		hand[0].ID, hand[1].ID)
	code, body = doGET(t, r, url)
	require.Equal(t, http.StatusOK, code, body["error"])
	assert.Equal(t, float64(24), body["cards_remaining"])

	code, body = doGET(t, r, "/declaration?gameId=1")
	assert.Equal(t, http.StatusOK, code)
	decl := body["declaration"].(map[string]interface{})
	assert.Equal(t, "K", decl["rank"])
	assert.Equal(t, float64(2), decl["quantity"])

	// Throwing again out of turn.
	code, body = doGET(t, r, "/throw?gameId=1&playerId=1&quantity=1&rank=A&cards=AS")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, string(game.CodeNotYourTurn), body["code"])

	// Player 2 challenges and someone absorbs the two cards.
	code, body = doGET(t, r, "/challenge?gameId=1&playerId=2")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["absorbed_card_ids"], 2)
	assert.NotNil(t, body["bluff"])
	assert.NotNil(t, body["loser_id"])
}

func TestThrowValidationErrors(t *testing.T) {
	r, _ := newRouter(2)
	setupGame(t, r)

	code, body := doGET(t, r, "/throw?gameId=1&playerId=1&quantity=2&rank=X&cards=KH,KC")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(game.CodeInvalidShape), body["code"])

	code, body = doGET(t, r, "/throw?gameId=1&playerId=1&quantity=5&rank=K&cards=KH,KC,KD,KS,AS")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(game.CodeInvalidInput), body["code"])

	code, _ = doGET(t, r, "/throw?gameId=1&playerId=1&quantity=abc&rank=K&cards=KH")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStatus(t *testing.T) {
	r, _ := newRouter(2)
	setupGame(t, r)

	code, body := doGET(t, r, "/status?gameId=1")
	assert.Equal(t, http.StatusOK, code)
	players := body["players"].([]interface{})
	require.Len(t, players, 2)
	assert.Equal(t, float64(1), body["next_seat"])

	code, _ = doGET(t, r, "/status?gameId=9")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestScoreboard(t *testing.T) {
	r, _ := newRouter(2)

	code, body := doGET(t, r, "/scoreboard")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["scoreboard"])

	code, body = doGET(t, r, "/scoreboard?playerId=7")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, string(game.CodePlayerNotFound), body["code"])

	_, _ = doGET(t, r, "/login?name=alice")
	code, body = doGET(t, r, "/scoreboard?playerId=1")
	assert.Equal(t, http.StatusOK, code)
	entries := body["scoreboard"].([]interface{})
	require.Len(t, entries, 1)
	assert.Equal(t, float64(0), entries[0].(map[string]interface{})["wins"])
}
