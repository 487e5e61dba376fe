package dto

import "time"

// MessageCreate persists one question/answer exchange.
type MessageCreate struct {
	ChatID   uint
	Question string
	Answer   string
}

// MessageRead is a read-optimized view of one chat exchange.
type MessageRead struct {
	ID        uint      `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatRead is a read-optimized view of an account's chat thread.
type ChatRead struct {
	ID        uint          `json:"id"`
	AccountID uint          `json:"accountId"`
	Messages  []MessageRead `json:"messages"`
}
