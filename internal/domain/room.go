// Package domain contains entities without logic, just meta-data.
package domain

const (
	// SlotCount is the number of fixed video positions per room.
	SlotCount = 4

	// HistoryLimit bounds a room's playlist history.
	HistoryLimit = 50

	// ChatLimit bounds a room's chat log.
	ChatLimit = 100

	// RoomCodeLen is the length of generated room codes.
	RoomCodeLen = 6
)

// RoomCode identifies a room. Case-sensitive; generated codes are uppercase.
type RoomCode string
