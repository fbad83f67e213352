package mux

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-server/pkg/model"
	"holdem-server/pkg/room"
)

func dial(t *testing.T, ts *httptest.Server, roomID, token string) *websocket.Conn {
	t.Helper()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/" + roomID + "/ws?access_token=" + url.QueryEscape(token)
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	return conn
}

// readUntil reads responses until one matches the key and context
func readUntil(t *testing.T, conn *websocket.Conn, key, ctx string) room.Response {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var res room.Response
		require.NoError(t, conn.ReadJSON(&res))
		if res.Key == key && res.Context == ctx {
			return res
		}
	}
}

func TestMux_getTableRoomWS(t *testing.T) {
	a := assert.New(t)

	m, users := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	t1 := player(t, users, "31", model.RolePlayer)
	t2 := player(t, users, "32", model.RolePlayer)

	c1 := dial(t, ts, "main", t1)
	defer c1.Close()

	// the current table is sent on connect
	res := readUntil(t, c1, "game", "")
	a.Equal("pre-deal", res.Data.(map[string]interface{})["phase"].(map[string]interface{})["name"])

	c2 := dial(t, ts, "main", t2)
	defer c2.Close()
	readUntil(t, c2, "game", "")

	require.NoError(t, c1.WriteJSON(room.PayloadIn{Action: "join", AdditionalData: room.AdditionalData{"buyIn": 500}, Context: "j1"}))
	a.Equal("OK", readUntil(t, c1, "status", "j1").Value)

	require.NoError(t, c2.WriteJSON(room.PayloadIn{Action: "join", Context: "j2"}))
	a.Equal("OK", readUntil(t, c2, "status", "j2").Value)

	require.NoError(t, c2.WriteJSON(room.PayloadIn{Action: "bogus", Context: "b"}))
	a.Equal("unknown action: bogus", readUntil(t, c2, "error", "b").Value)
}

func TestMux_getTableRoomWS_unauthorized(t *testing.T) {
	m, _ := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/main/ws"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	assert.Error(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, 401, resp.StatusCode)
	}
}
