package domain

import "time"

// VideoID is an opaque video identifier. 11 characters for the usual
// case, but the server does not validate the format.
type VideoID string

// HistoryEntry is one video ever placed into a slot of a room.
type HistoryEntry struct {
	ID      string    `json:"id"`
	VideoID VideoID   `json:"videoId"`
	Title   string    `json:"title"`
	AddedAt time.Time `json:"addedAt"`
}
