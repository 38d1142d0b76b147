package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultSessionTitle = "New Explanation"

type ChatSession struct {
	Id          string
	UserId      uuid.UUID
	Title       string
	Messages    []Message
	LastUpdated time.Time
}

// Clone returns a copy whose message slice does not alias the receiver's.
func (s ChatSession) Clone() ChatSession {
	out := s
	if s.Messages != nil {
		out.Messages = make([]Message, len(s.Messages))
		copy(out.Messages, s.Messages)
	}
	return out
}

// ChatSessionPatch lists the columns a partial update writes; nil fields are
// left untouched. Messages is always the complete new list.
type ChatSessionPatch struct {
	Title       *string
	Messages    *[]Message
	LastUpdated *time.Time
}

func (p ChatSessionPatch) Empty() bool {
	return p.Title == nil && p.Messages == nil && p.LastUpdated == nil
}
