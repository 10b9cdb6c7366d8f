package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/giahoa6/crm/internal/middleware"
	"github.com/giahoa6/crm/internal/voice"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const wsWriteTimeout = 5 * time.Second

type controlMessage struct {
	Type string `json:"type"`
}

type transcriptMessage struct {
	Type string     `json:"type"`
	Turn voice.Turn `json:"turn"`
}

// wsClientStream is client side of conversation over websocket:
// binary messages carry audio, text messages carry JSON control and transcript frames.
type wsClientStream struct {
	conn   *websocket.Conn
	format voice.Format

	writeMu sync.Mutex
}

func (s *wsClientStream) ReadFrame() (voice.Frame, error) {
	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return voice.Frame{}, io.EOF
			}
			return voice.Frame{}, err
		}

		switch msgType {
		case websocket.BinaryMessage:
			return voice.Frame{Format: s.format, Data: data}, nil
		case websocket.TextMessage:
			var ctrl controlMessage
			if err := json.Unmarshal(data, &ctrl); err != nil {
				logrus.Debugf("ignoring malformed voice control message - %v", err)
				continue
			}

			if ctrl.Type == "stop" {
				return voice.Frame{}, io.EOF
			}
		}
	}
}

func (s *wsClientStream) WriteTurn(t voice.Turn) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return s.conn.WriteJSON(&transcriptMessage{Type: "transcript", Turn: t})
}

func (s *wsClientStream) WriteAudio(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *wsClientStream) Close() error {
	s.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "conversation ended")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	s.writeMu.Unlock()

	return s.conn.Close()
}

// VoiceHTTPHandler is http handler for live voice conversations
type VoiceHTTPHandler struct {
	connector voice.Connector
	upgrader  websocket.Upgrader
}

// NewVoiceHTTPHandler builds new VoiceHTTPHandler, nil connector disables conversations
func NewVoiceHTTPHandler(connector voice.Connector) *VoiceHTTPHandler {
	return &VoiceHTTPHandler{
		connector: connector,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Connect starts conversation
// @Summary     Live voice conversation
// @Description Upgrades to websocket and streams audio to inference session until either side stops or session ends
// @Tags        voice
// @Security	ApiKeyAuth
// @Param       format query string false "Audio sample format" Enums(pcm16, float32)
// @Success     101    "Switching protocols"
// @Failure     400    {object} echo.HTTPError
// @Failure     503    {object} echo.HTTPError
// @Router      /api/voice [get]
func (h *VoiceHTTPHandler) Connect(c echo.Context) error {
	if h.connector == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "live conversations are not configured")
	}

	gate, ok := middleware.GateFrom(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	format := voice.Format(c.QueryParam("format"))
	switch format {
	case "":
		format = voice.FormatPCM16
	case voice.FormatPCM16, voice.FormatFloat32:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unsupported audio format %s", format))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// upgrader already replied to the client
		logrus.Warnf("failed to upgrade voice connection - %v", err)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conv, err := voice.Start(ctx, &wsClientStream{conn: conn, format: format}, h.connector)
	if err != nil {
		logrus.Errorf("failed to start voice conversation - %v", err)
		return nil
	}

	remove := gate.OnTeardown(func() {
		_ = conv.Stop()
	})
	defer remove()

	<-conv.Done()
	return nil
}
