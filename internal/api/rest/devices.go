package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/api/websocket"
	"github.com/KevinKickass/SunSpecBridge/internal/monitor"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DeploymentResponse struct {
	Controller  string                `json:"controller"`
	Phase       sunspec.Phase         `json:"phase"`
	Family      sunspec.Family        `json:"family"`
	HasAddon    bool                  `json:"has_addon"`
	Obfuscated  bool                  `json:"obfuscated"`
	SerialID    string                `json:"serial_id"`
	SessionID   string                `json:"session_id"`
	State       types.ConnectionState `json:"state"`
	DeviceCount int                   `json:"device_count"`
}

type DeviceResponse struct {
	sunspec.Device
	Name string       `json:"name"`
	Role sunspec.Role `json:"role,omitempty"`
}

type RegisterResponse struct {
	Name  string        `json:"name"`
	Port  *int          `json:"port,omitempty"`
	Value sunspec.Value `json:"value"`
	Text  string        `json:"text"`
}

type WriteRegisterRequest struct {
	Value *float64 `json:"value" binding:"required"`
	UOM   int      `json:"uom"`
	Port  *int     `json:"port"`
}

type NodeCommandRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// portQuery reads the optional ?port= selector.
func portQuery(c *gin.Context) (*int, []sunspec.AccessOption, error) {
	raw := c.Query("port")
	if raw == "" {
		return nil, nil, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 0 {
		return nil, nil, fmt.Errorf("invalid port %q", raw)
	}
	return &port, []sunspec.AccessOption{sunspec.OnPort(port)}, nil
}

func (s *Server) session(c *gin.Context) (*sunspec.Session, bool) {
	session, err := s.lm.DeviceManager().Session()
	if err != nil {
		respondError(c, "No verified AXS session", err)
		return nil, false
	}
	return session, true
}

// GET /api/v1/deployment
func (s *Server) getDeployment(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	dm := s.lm.DeviceManager()
	info := dm.Info()
	dep := session.Deployment()

	c.JSON(http.StatusOK, DeploymentResponse{
		Controller:  dep.ControllerName(),
		Phase:       dep.Phase,
		Family:      dep.Family,
		HasAddon:    dep.HasAddon,
		Obfuscated:  dep.Obfuscated,
		SerialID:    info.SerialID,
		SessionID:   info.ID,
		State:       info.State,
		DeviceCount: len(session.Devices()),
	})
}

// GET /api/v1/devices
func (s *Server) listDevices(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	devices := session.Devices()
	resp := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		resp = append(resp, DeviceResponse{
			Device: d,
			Name:   d.Model.String(),
			Role:   d.Role(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"devices": resp,
		"count":   len(resp),
	})
}

// GET /api/v1/nodes
func (s *Server) listNodes(c *gin.Context) {
	inv, err := s.lm.DeviceManager().Inventory()
	if err != nil {
		respondError(c, "No verified AXS session", err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// GET /api/v1/nodes/:address
func (s *Server) getNode(c *gin.Context) {
	address := c.Param("address")
	node, ok := s.lm.DeviceManager().Node(address)
	if !ok {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.CodeNoSuchDevice, "Node not found", address))
		return
	}
	c.JSON(http.StatusOK, node)
}

// GET /api/v1/registers/:name?port=n
func (s *Server) readRegister(c *gin.Context) {
	name := c.Param("name")
	port, opts, err := portQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid port", err.Error()))
		return
	}

	session, ok := s.session(c)
	if !ok {
		return
	}

	v, err := session.GetOne(c.Request.Context(), name, opts...)
	if err != nil {
		respondError(c, "Failed to read register", err)
		return
	}

	c.JSON(http.StatusOK, RegisterResponse{
		Name:  name,
		Port:  port,
		Value: v,
		Text:  v.String(),
	})
}

// PUT /api/v1/registers/:name
func (s *Server) writeRegister(c *gin.Context) {
	name := c.Param("name")

	var req WriteRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid request body", err.Error()))
		return
	}

	session, ok := s.session(c)
	if !ok {
		return
	}

	var opts []sunspec.AccessOption
	if req.Port != nil {
		opts = append(opts, sunspec.OnPort(*req.Port))
	}

	if err := session.SetOne(c.Request.Context(), name, *req.Value, sunspec.UOM(req.UOM), opts...); err != nil {
		respondError(c, "Failed to write register", err)
		return
	}

	s.logger.Info("Register written via API",
		zap.String("register", name),
		zap.Float64("value", *req.Value),
		zap.Int("uom", req.UOM),
		zap.String("username", c.GetString("username")))

	s.announceWrite(websocket.RegisterWrittenData{
		Register: name,
		Port:     req.Port,
		Value:    *req.Value,
		UOM:      req.UOM,
		By:       c.GetString("username"),
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Register written",
		"register": name,
	})
}

// PUT /api/v1/nodes/:address/commands/:register
func (s *Server) writeNodeCommand(c *gin.Context) {
	address := c.Param("address")
	register := c.Param("register")

	var req NodeCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid request body", err.Error()))
		return
	}

	dm := s.lm.DeviceManager()
	if err := dm.WriteNodeRegister(c.Request.Context(), address, register, *req.Value); err != nil {
		respondError(c, "Failed to run node command", err)
		return
	}

	data := websocket.RegisterWrittenData{
		Register: register,
		Node:     address,
		Value:    *req.Value,
		By:       c.GetString("username"),
	}
	if node, ok := dm.Node(address); ok {
		data.Port = node.Port
		for _, cmd := range node.Commands {
			if cmd.Name == register {
				data.UOM = cmd.UOM
			}
		}
	}
	s.announceWrite(data)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Command written",
		"node":     address,
		"register": register,
	})
}

func (s *Server) announceWrite(data websocket.RegisterWrittenData) {
	if s.wsHub != nil {
		s.wsHub.Broadcast(websocket.NewRegisterWrittenMessage(data))
	}
}

// GET /api/v1/models/:model/dump?port=n
func (s *Server) dumpModel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("model"), 10, 16)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid model id", c.Param("model")))
		return
	}
	model := sunspec.ModelID(id)

	_, opts, err := portQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid port", err.Error()))
		return
	}

	session, ok := s.session(c)
	if !ok {
		return
	}

	readings, err := session.GetAll(c.Request.Context(), model, opts...)
	if err != nil {
		respondError(c, "Failed to dump model", err)
		return
	}

	if store := s.lm.Storage(); store != nil {
		snap := dumpSnapshot(session.ID(), s.lm.DeviceManager().Info().SerialID, readings)
		if err := store.Publish(c.Request.Context(), snap); err != nil {
			s.logger.Warn("Failed to persist model dump",
				zap.Uint16("model", uint16(model)),
				zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"model":    model,
		"name":     model.String(),
		"readings": readings,
	})
}

// dumpSnapshot turns a block dump into a snapshot keyed by model.
func dumpSnapshot(sessionID, serialID string, readings []sunspec.Reading) monitor.Snapshot {
	snap := monitor.Snapshot{
		SessionID: sessionID,
		SerialID:  serialID,
		ReadAt:    time.Now(),
		Samples:   make([]monitor.Sample, 0, len(readings)),
	}
	for _, r := range readings {
		snap.Samples = append(snap.Samples, monitor.Sample{
			Node:     "model_" + strconv.Itoa(int(r.Model)),
			Register: r.Name,
			Port:     r.Port,
			Units:    r.Units,
			Value:    r.Value,
			Text:     r.Text,
		})
	}
	return snap
}

// GET /api/v1/readings/latest
func (s *Server) latestReadings(c *gin.Context) {
	poller := s.lm.Poller()
	if poller == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.CodeNotConnected, "Polling disabled", nil))
		return
	}
	snap, ok := poller.Last()
	if !ok {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.CodeNotConnected, "No completed poll yet", nil))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// POST /api/v1/session/reconnect
func (s *Server) reconnect(c *gin.Context) {
	dm := s.lm.DeviceManager()
	if err := dm.Reconnect(c.Request.Context()); err != nil {
		respondError(c, "Reconnect failed", err)
		return
	}

	info := dm.Info()
	if s.wsHub != nil {
		s.wsHub.Broadcast(websocket.NewSessionStateMessage(info))
		if inv, err := dm.Inventory(); err == nil {
			s.wsHub.Broadcast(websocket.NewInventoryMessage(inv))
		}
	}
	c.JSON(http.StatusOK, info)
}
