package controllers

import (
	"log/slog"

	"file-chat/helpers"
	"file-chat/storage"

	"github.com/gorilla/websocket"
)

// ChatLog is the append-only line store behind the chat. Live clients are fed
// by the store itself (see storage.WithAppendHook) so frames follow file order.
type ChatLog interface {
	Append(text string) (string, error)
	Lines() ([]string, error)
}

type Options struct {
	MaxUsernameLength int
	MaxMessageLength  int
	CookieSecure      bool
	AllowedOrigins    []string
}

// Chat holds the dependencies of the chat endpoints.
type Chat struct {
	chatLog  ChatLog
	sessions storage.SessionStore
	hub      *Hub
	log      *slog.Logger
	opts     Options
	upgrader websocket.Upgrader
}

func NewChat(chatLog ChatLog, sessions storage.SessionStore, hub *Hub, log *slog.Logger, opts Options) *Chat {
	return &Chat{
		chatLog:  chatLog,
		sessions: sessions,
		hub:      hub,
		log:      log,
		opts:     opts,
		upgrader: newUpgrader(helpers.NewOriginChecker(opts.AllowedOrigins).Allow),
	}
}

func (ctl *Chat) appendLine(text string) error {
	_, err := ctl.chatLog.Append(text)
	return err
}
