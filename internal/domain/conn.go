package domain

// ConnID identifies one transport connection. Assigned on connect,
// never reused for the lifetime of the process.
type ConnID string

// ShortName derives the default display name from the id prefix,
// shown in chat until the client sets a username.
func (id ConnID) ShortName() string {
	const prefixLen = 5
	s := string(id)
	if len(s) > prefixLen {
		s = s[:prefixLen]
	}
	return "user-" + s
}
