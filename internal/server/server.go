// Package server exposes the admin console over WebSocket: a line-oriented
// session for inspecting and driving the gift engine.
package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/focustense/penpals-server/internal/command"
	"github.com/focustense/penpals-server/internal/config"
	"github.com/focustense/penpals-server/internal/logger"
)

// Console serves admin sessions. Commands from all sessions are serialized
// through one mutex because the simulation state is single threaded.
type Console struct {
	config   config.ConsoleConfig
	executor *command.Executor
	mu       sync.Mutex
}

// NewConsole creates a console over the given command executor.
func NewConsole(cfg config.ConsoleConfig, executor *command.Executor) *Console {
	return &Console{config: cfg, executor: executor}
}

// Handler returns the HTTP handler serving console upgrades on /console.
func (c *Console) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/console", c.handleUpgrade)
	return mux
}

// Start listens on the configured address and serves console sessions
// until the listener fails. Blocks.
func (c *Console) Start() error {
	logger.Info("Admin console listening", "address", c.config.Addr)
	return http.ListenAndServe(c.config.Addr, c.Handler())
}

// handleUpgrade upgrades an HTTP connection to WebSocket.
func (c *Console) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	go c.handleSession(NewWebSocketClient(wsConn, c.config.MaxMessageSize))
}

// handleSession runs one console session: authentication, then a
// command/response loop until the client quits or drops.
func (c *Console) handleSession(client Client) {
	defer client.Close()

	logger.Info("Console session opened", "remote_addr", client.RemoteAddr())

	if !c.authenticate(client) {
		logger.Warning("Console authentication failed", "remote_addr", client.RemoteAddr())
		client.WriteLine("Authentication failed.")
		return
	}

	if err := client.WriteLine("PenPals admin console. Type 'help' for commands."); err != nil {
		return
	}

	for {
		line, err := client.ReadLine()
		if err != nil {
			logger.Info("Console session closed", "remote_addr", client.RemoteAddr())
			return
		}

		cmd := command.ParseCommand(line)
		if cmd.Name == "quit" || cmd.Name == "exit" {
			client.WriteLine("Goodbye.")
			return
		}

		c.mu.Lock()
		response := c.executor.Execute(line)
		c.mu.Unlock()

		if response != "" {
			if err := client.WriteLine(response); err != nil {
				return
			}
		}
	}
}
