package messaging

import "time"

// Conversation is the unique record of all messages exchanged between
// exactly two identities. Participants are stored in canonical order so
// {A,B} and {B,A} always resolve to the same record.
type Conversation struct {
	ID           string    `db:"id"`
	ParticipantA string    `db:"participant_a"`
	ParticipantB string    `db:"participant_b"`
	CreatedAt    time.Time `db:"created_at"`
}

// CanonicalPair orders two identities lexicographically. Every lookup and
// insert goes through this so at most one conversation exists per
// unordered pair.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// HasParticipant tells whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	if c == nil {
		return false
	}
	return userID == c.ParticipantA || userID == c.ParticipantB
}
