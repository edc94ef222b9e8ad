package main

import (
	"bytes"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec/sunspectest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulator(t *testing.T) (host, port string) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	serv, err := startSimulator(addr, sunspectest.FXSplit())
	require.NoError(t, err)
	t.Cleanup(serv.Close)

	host, port, err = net.SplitHostPort(addr)
	require.NoError(t, err)
	return host, port
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProbe(t *testing.T) {
	host, port := simulator(t)

	out, err := run(t, "probe", "--host", host, "--port", port)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Controller:  OutBack FX Split Phase")
	assert.Contains(t, out, "Serial:      abcd1234efgh56")
	assert.Contains(t, out, "fx_inv_10_1")
	assert.Contains(t, out, "FX Inverter - Slave - Port 2")
	assert.Contains(t, out, "OutBack FLEXnet-DC")
}

func TestProbeJSON(t *testing.T) {
	host, port := simulator(t)

	out, err := run(t, "probe", "--json", "--host", host, "--port", port, "--driver", "goburrow")
	require.NoError(t, err, out)

	var res probeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, sunspec.FamilyFX, res.Deployment.Family)
	assert.Len(t, res.Devices, 9)
	assert.Len(t, res.Inventory.Nodes, 4)
}

func TestGetAndSet(t *testing.T) {
	host, port := simulator(t)

	out, err := run(t, "get", "FX_Inverter_Output_Current", "--on-port", "2", "--host", host, "--port", port)
	require.NoError(t, err, out)
	assert.Equal(t, "FX_Inverter_Output_Current = 23.5\n", out)

	out, err = run(t, "set", "OutBack_Load_Grid_Transfer_Threshold", "3", "--uom", "30", "--host", host, "--port", port)
	require.NoError(t, err, out)

	out, err = run(t, "get", "OutBack_Load_Grid_Transfer_Threshold", "--host", host, "--port", port, "--driver", "simonvetter")
	require.NoError(t, err, out)
	assert.Equal(t, "OutBack_Load_Grid_Transfer_Threshold = 3.0\n", out)

	_, err = run(t, "get", "FX_Nope_Register", "--host", host, "--port", port)
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	host, port := simulator(t)

	out, err := run(t, "dump", "64113", "--on-port", "1", "--json", "--host", host, "--port", port)
	require.NoError(t, err, out)

	var readings []struct {
		Name string `json:"name"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &readings))
	texts := map[string]string{}
	for _, r := range readings {
		texts[r.Name] = r.Text
	}
	assert.Equal(t, "11.2", texts["FX_Inverter_Output_Current"])
	assert.Equal(t, "1204", texts["FX_AC_Output_Voltage"])

	_, err = run(t, "dump", "x", "--host", host, "--port", port)
	assert.Error(t, err)
}

func TestHostRequired(t *testing.T) {
	t.Setenv("SBR_AXS_HOST", "")
	_, err := run(t, "probe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--host")
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "$argon2id$v=19$"), out)
}
