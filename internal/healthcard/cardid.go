package healthcard

import (
	"fmt"
	"math/rand"
	"regexp"
)

const cardIDPrefix = "SW"

// Submission retries generation this many times before giving up when the
// random id collides with one already in the store.
const maxCardIDAttempts = 5

var cardIDPattern = regexp.MustCompile(`^SW[0-9]{6}$`)

// newCardID draws a card id uniformly from SW100000..SW999999. Uniqueness
// is enforced by the caller against the store, not by the draw itself.
func newCardID() string {
	return fmt.Sprintf("%s%06d", cardIDPrefix, 100000+rand.Intn(900000))
}

// IsCardID reports whether s has the SW+6-digit shape.
func IsCardID(s string) bool {
	return cardIDPattern.MatchString(s)
}
