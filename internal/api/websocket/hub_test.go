package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/auth"
	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/monitor"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, string, string) {
	t.Helper()
	t.Setenv("SBR_WS_JWT", "0123456789abcdef0123456789abcdef-ws")
	hash, err := auth.NewPasswordHasherWithParams(8*1024, 1, 1).HashPassword("pw")
	require.NoError(t, err)

	svc := auth.NewAuthService(config.AuthConfig{
		JWTSecretEnv:   "SBR_WS_JWT",
		AccessTokenTTL: time.Hour,
		Users:          []config.UserConfig{{Username: "op", Role: "operator", PasswordHash: hash}},
	}, nil)
	token, _, err := svc.LoginUser("op", "pw", "127.0.0.1")
	require.NoError(t, err)

	hub := NewHub(nil, svc)
	go hub.Run()
	t.Cleanup(hub.Stop)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http"), token
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readType(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func testSnapshot() monitor.Snapshot {
	return monitor.Snapshot{
		SessionID: "s1",
		SerialID:  "abcd1234efgh56",
		ReadAt:    time.Now(),
		Samples: []monitor.Sample{
			{Node: "fx_inv_10_1", Register: "FX_Inverter_Output_Current", Value: sunspec.NumberValue(11.2, "11.2"), Text: "11.2"},
			{Node: "fx_flexnet_4", Register: "FN_State_Of_Charge", Value: sunspec.NumberValue(87, "87"), Text: "87"},
		},
	}
}

func authenticate(t *testing.T, hub *Hub, conn *websocket.Conn, token string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "auth", "token": token}))
	msg := readType(t, conn)
	require.Equal(t, "auth_success", msg["type"])
	assert.Eventually(t, func() bool { return hub.GetClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestReadingsReachAuthenticatedClient(t *testing.T) {
	hub, url, token := newTestHub(t)
	conn := dial(t, url)
	authenticate(t, hub, conn, token)

	require.NoError(t, hub.Publish(context.Background(), testSnapshot()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg struct {
		Type string           `json:"type"`
		Data monitor.Snapshot `json:"data"`
	}
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, string(MessageTypeReadings), msg.Type)
	assert.Equal(t, "abcd1234efgh56", msg.Data.SerialID)
	assert.Len(t, msg.Data.Samples, 2)
}

func TestSubscribeFiltersNodes(t *testing.T) {
	hub, url, token := newTestHub(t)
	conn := dial(t, url)
	authenticate(t, hub, conn, token)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "subscribe", "nodes": []string{"fx_flexnet_4"}}))
	assert.Equal(t, "subscribed", readType(t, conn)["type"])

	hub.Broadcast(NewReadingsMessage(testSnapshot()))

	msg := readType(t, conn)
	assert.Equal(t, "readings", msg["type"])
	samples := msg["data"].(map[string]interface{})["samples"].([]interface{})
	require.Len(t, samples, 1)
	assert.Equal(t, "fx_flexnet_4", samples[0].(map[string]interface{})["node"])
}

func TestFirstMessageMustAuthenticate(t *testing.T) {
	hub, url, _ := newTestHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe"}))
	msg := readType(t, conn)
	assert.Equal(t, "auth_failed", msg["type"])
	assert.Equal(t, 0, hub.GetClientCount())
}

func TestInvalidTokenIsRejected(t *testing.T) {
	hub, url, _ := newTestHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "auth", "token": "nope"}))
	msg := readType(t, conn)
	assert.Equal(t, "auth_failed", msg["type"])
	assert.Equal(t, "Invalid or expired token", msg["reason"])
	assert.Equal(t, 0, hub.GetClientCount())
}
