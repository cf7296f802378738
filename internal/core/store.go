package core

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anver/syncroom/internal/domain"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Store owns the room map. Rooms are created lazily on first lookup
// and removed via Delete once empty; the default room is never removed.
type Store struct {
	defaultCode domain.RoomCode

	mu    sync.RWMutex
	rooms map[domain.RoomCode]*Room
}

func NewStore(defaultCode domain.RoomCode) *Store {
	return &Store{
		defaultCode: defaultCode,
		rooms:       make(map[domain.RoomCode]*Room),
	}
}

func (s *Store) DefaultCode() domain.RoomCode { return s.defaultCode }

func (s *Store) GetOrCreate(code domain.RoomCode) *Room {
	s.mu.RLock()
	room, ok := s.rooms[code]
	s.mu.RUnlock()
	if ok {
		return room
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok = s.rooms[code]; ok {
		return room
	}
	room = NewRoom(code)
	s.rooms[code] = room
	log.Info().Str("module", "core.store").Str("room", string(code)).Msg("room created")
	return room
}

// Join resolves the room and adds presence in one step under the store
// lock, so a concurrent Delete can never observe the room between
// lookup and join.
func (s *Store) Join(code domain.RoomCode, id domain.ConnID) (*Room, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	if !ok {
		room = NewRoom(code)
		s.rooms[code] = room
		log.Info().Str("module", "core.store").Str("room", string(code)).Msg("room created")
	}
	return room, room.Join(id)
}

func (s *Store) Get(code domain.RoomCode) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	return room, ok
}

// Delete removes an empty room. No-op when the room is absent, still
// populated, or the default room. The count re-check under the store
// lock is what makes deferred deletion safe against reconnects.
func (s *Store) Delete(code domain.RoomCode) bool {
	if code == s.defaultCode {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	if !ok || room.Count() > 0 {
		return false
	}
	delete(s.rooms, code)
	log.Info().Str("module", "core.store").Str("room", string(code)).Msg("room deleted")
	return true
}

// GenerateCode produces a 6-character uppercase alphanumeric room code.
// Collisions are vanishingly rare; if one happens, GetOrCreate simply
// lands both creators in the same fresh room.
func (s *Store) GenerateCode() domain.RoomCode {
	buf := make([]byte, domain.RoomCodeLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return domain.RoomCode(buf)
}

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	Code        domain.RoomCode `json:"code"`
	MemberCount int             `json:"memberCount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (s *Store) List() []RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RoomInfo, 0, len(s.rooms))
	for code, r := range s.rooms {
		out = append(out, RoomInfo{Code: code, MemberCount: r.Count(), CreatedAt: r.CreatedAt()})
	}
	return out
}
