package core

// Frame is a marshaled server event ready for the wire.
type Frame []byte

// Sender is a transport endpoint for one connection.
// Owned by the adapter; the adapter must Close() it.
type Sender interface {
	TrySend(Frame) error
	Close()
}
