package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
)

const (
	writeWait      = 5 * time.Second
	defaultFPS     = 10
	controlBacklog = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamControl is a control message sent by a live-view client. Light
// axes are held until the client sends new values; every other field acts
// once.
type StreamControl struct {
	Orbit       [2]float64 `json:"orbit"` // mouse drag in pixels
	Zoom        float64    `json:"zoom"`  // wheel notches
	LightYaw    float64    `json:"lightYaw"`
	LightPitch  float64    `json:"lightPitch"`
	LightRadius float64    `json:"lightRadius"`
	ToggleSpin  bool       `json:"toggleSpin"`
	ResetCamera bool       `json:"resetCamera"`
	ResetLight  bool       `json:"resetLight"`
	CycleWater  bool       `json:"cycleWater"`
	ToggleNight bool       `json:"toggleNight"`
	ToggleFloor bool       `json:"toggleFloor"`
	Width       int        `json:"width,omitempty"`
	Height      int        `json:"height,omitempty"`
}

// FrameInfo precedes every binary PNG frame on the stream
type FrameInfo struct {
	Type     string `json:"type"` // always "frame"
	Frame    int    `json:"frame"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	RenderMs int64  `json:"renderMs"`
	Water    string `json:"water"`
	Night    bool   `json:"night"`
	Spin     bool   `json:"spin"`
}

// liveView is the per-connection view state. Only the stream loop touches it.
type liveView struct {
	scene  *scene.Scene
	rig    scene.LightRig
	held   scene.LightInput
	width  int
	height int
}

// applyControl folds one client message into the view
func (v *liveView) applyControl(ctl StreamControl) {
	if ctl.Orbit != [2]float64{} {
		v.scene.Camera.Orbit(ctl.Orbit[0], ctl.Orbit[1])
	}
	if ctl.Zoom != 0 {
		v.scene.Camera.Zoom(ctl.Zoom)
	}
	if ctl.ResetCamera {
		v.scene.Camera.Reset()
	}
	if ctl.CycleWater {
		v.scene.Water = v.scene.Water.Next()
	}
	if ctl.ToggleNight {
		v.scene.Night = !v.scene.Night
	}
	if ctl.ToggleFloor {
		v.scene.ShowFloor = !v.scene.ShowFloor
	}
	if ctl.Width >= MinFrameSize && ctl.Width <= MaxFrameSize {
		v.width = ctl.Width
	}
	if ctl.Height >= MinFrameSize && ctl.Height <= MaxFrameSize {
		v.height = ctl.Height
	}

	v.held.Yaw = clampAxis(ctl.LightYaw)
	v.held.Pitch = clampAxis(ctl.LightPitch)
	v.held.Radius = clampAxis(ctl.LightRadius)
	v.held.ToggleSpin = v.held.ToggleSpin != ctl.ToggleSpin
	v.held.Reset = v.held.Reset || ctl.ResetLight
}

// step advances the light by dt seconds and consumes one-shot inputs
func (v *liveView) step(dt float64) {
	v.rig.Update(v.held, dt)
	v.held.ToggleSpin = false
	v.held.Reset = false
	v.scene.Light = v.rig.Position()
}

func clampAxis(a float64) float64 {
	return max(-1, min(1, a))
}

// handleStream upgrades to a WebSocket and streams rendered frames at a
// fixed rate while applying client controls between frames
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	req, err := parseFrameRequest(values)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	fps, err := parseIntParam(values, "fps", defaultFPS, 1, MaxStreamFPS)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	streamID := fmt.Sprintf("stream-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 50)
	logger := NewWebLogger(streamID, consoleChan)

	sc, err := s.loadScene(req.Scene, logger)
	if err != nil {
		writeStreamError(conn, err.Error())
		return
	}
	req.apply(sc)

	view := &liveView{
		scene:  sc,
		rig:    scene.NewLightRig(sc.Camera.Target, sc.Light),
		width:  req.Width,
		height: req.Height,
	}

	controls := make(chan StreamControl, controlBacklog)
	go readControls(ctx, cancel, conn, controls)

	s.streamFrames(ctx, conn, view, fps, controls, consoleChan, logger)
}

// readControls decodes client messages until the connection fails
func readControls(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, controls chan<- StreamControl) {
	defer cancel()
	for {
		var ctl StreamControl
		if err := conn.ReadJSON(&ctl); err != nil {
			return
		}
		select {
		case controls <- ctl:
		case <-ctx.Done():
			return
		}
	}
}

// streamFrames is the only writer on conn
func (s *Server) streamFrames(ctx context.Context, conn *websocket.Conn, view *liveView, fps int,
	controls <-chan StreamControl, consoleChan <-chan ConsoleMessage, logger core.Logger) {

	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return

		case ctl := <-controls:
			view.applyControl(ctl)

		case msg := <-consoleChan:
			if err := writeJSON(conn, msg); err != nil {
				return
			}

		case now := <-ticker.C:
			view.step(now.Sub(last).Seconds())
			last = now

			if err := s.sendFrame(conn, view); err != nil {
				logger.Printf("Error: stream stopped: %v\n", err)
				return
			}
		}
	}
}

// sendFrame renders the current view and writes its info and PNG
func (s *Server) sendFrame(conn *websocket.Conn, view *liveView) error {
	snapshot := view.scene.Clone()
	img, stats, err := s.renderer.Render(snapshot, view.width, view.height)
	if err != nil {
		writeStreamError(conn, err.Error())
		return err
	}

	data, err := encodePNG(img)
	if err != nil {
		return err
	}

	info := FrameInfo{
		Type:     "frame",
		Frame:    stats.Frame,
		Width:    stats.Width,
		Height:   stats.Height,
		RenderMs: stats.Duration.Milliseconds(),
		Water:    snapshot.Water.String(),
		Night:    snapshot.Night,
		Spin:     view.rig.Spin,
	}
	if err := writeJSON(conn, info); err != nil {
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

func writeJSON(conn *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func writeStreamError(conn *websocket.Conn, message string) {
	writeJSON(conn, map[string]string{"type": "error", "message": message})
}
