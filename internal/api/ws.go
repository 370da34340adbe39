//*****************************************************************************
// Copyright 2025 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//*****************************************************************************

package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/intel/modelq/internal/api/dto"
	"github.com/intel/modelq/internal/logger"
	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils/bcode"
)

const taskEventsPollInterval = 500 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketConnection is one subscribed client. Writes are serialized
// through the connection mutex.
type WebSocketConnection struct {
	ID   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *WebSocketConnection) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *WebSocketConnection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}

// WebSocketManager tracks live event stream connections so shutdown can
// close them cleanly.
type WebSocketManager struct {
	mu          sync.RWMutex
	connections map[string]*WebSocketConnection
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{connections: make(map[string]*WebSocketConnection)}
}

func (m *WebSocketManager) RegisterConnection(conn *websocket.Conn) *WebSocketConnection {
	wc := &WebSocketConnection{ID: uuid.NewString(), conn: conn}
	m.mu.Lock()
	m.connections[wc.ID] = wc
	m.mu.Unlock()
	return wc
}

func (m *WebSocketManager) UnregisterConnection(connID string) {
	m.mu.Lock()
	delete(m.connections, connID)
	m.mu.Unlock()
}

func (m *WebSocketManager) GetActiveConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

func (m *WebSocketManager) CloseAllConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, wc := range m.connections {
		wc.Close()
		delete(m.connections, id)
	}
}

// taskEvent is one frame of the task event stream.
type taskEvent struct {
	ModelName string      `json:"model_name"`
	TaskID    string      `json:"task_id"`
	Operation string      `json:"operation"`
	State     string      `json:"state"`
	Rows      []types.Row `json:"rows,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// TaskEvents streams state changes of a model's latest task over a
// websocket. One frame per observed state; the stream ends when the task
// reaches a terminal state or the client goes away.
func (t *ModelQCoreServer) TaskEvents(c *gin.Context) {
	request := new(dto.GetTaskStatusRequest)
	if err := c.Bind(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}
	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}
	wc := t.WS.RegisterConnection(conn)
	defer func() {
		t.WS.UnregisterConnection(wc.ID)
		wc.Close()
	}()

	ctx := c.Request.Context()
	ticker := time.NewTicker(taskEventsPollInterval)
	defer ticker.Stop()

	lastState := ""
	for {
		status, err := t.Task.GetStatus(ctx, request)
		if err != nil {
			_ = wc.WriteJSON(gin.H{"error": err.Error()})
			return
		}
		st := status.Data
		if st.State != lastState {
			lastState = st.State
			event := taskEvent{
				ModelName: st.ModelName,
				TaskID:    st.TaskID,
				Operation: st.Operation,
				State:     st.State,
				Rows:      st.Rows,
				Error:     st.Error,
			}
			if err := wc.WriteJSON(event); err != nil {
				logger.ApiLogger.Debug("[API] task event subscriber gone", "model", request.Name)
				return
			}
		}
		if types.TerminalTaskState(st.State) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
