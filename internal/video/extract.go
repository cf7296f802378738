// Package video reduces pasted YouTube URLs to bare video ids.
package video

import (
	"regexp"

	"github.com/anver/syncroom/internal/domain"
)

var (
	urlRe    = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)
	bareIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ExtractID accepts a bare 11-character id, or pulls the id out of a
// watch?v=, youtu.be/ or /embed/ URL. Anything else is rejected.
func ExtractID(raw string) (domain.VideoID, bool) {
	if bareIDRe.MatchString(raw) {
		return domain.VideoID(raw), true
	}
	if m := urlRe.FindStringSubmatch(raw); m != nil {
		return domain.VideoID(m[1]), true
	}
	return "", false
}
