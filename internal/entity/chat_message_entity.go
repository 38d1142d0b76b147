package entity

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ReadingLevel labels a user message with the requested simplicity.
// It is descriptive only: replies do not depend on it.
type ReadingLevel string

const (
	LevelToddler   ReadingLevel = "Toddler (Age 3-5)"
	LevelChild     ReadingLevel = "Child (Age 6-10)"
	LevelTeen      ReadingLevel = "Teenager (Age 13-17)"
	LevelNonExpert ReadingLevel = "Non-Expert Adult"
	LevelSkeptic   ReadingLevel = "Cynical Skeptic"
)

const DefaultLevel = LevelChild

var ReadingLevels = []ReadingLevel{
	LevelToddler,
	LevelChild,
	LevelTeen,
	LevelNonExpert,
	LevelSkeptic,
}

func (l ReadingLevel) Valid() bool {
	for _, v := range ReadingLevels {
		if v == l {
			return true
		}
	}
	return false
}

// ParseReadingLevel accepts a full label or one of the short names
// toddler, child, teen, adult, skeptic.
func ParseReadingLevel(s string) (ReadingLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toddler":
		return LevelToddler, true
	case "child":
		return LevelChild, true
	case "teen", "teenager":
		return LevelTeen, true
	case "adult", "non-expert", "nonexpert":
		return LevelNonExpert, true
	case "skeptic":
		return LevelSkeptic, true
	}
	if l := ReadingLevel(strings.TrimSpace(s)); l.Valid() {
		return l, true
	}
	return "", false
}

type Message struct {
	Id        string        `json:"id"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	Timestamp int64         `json:"timestamp"` // unix milliseconds
	Level     *ReadingLevel `json:"level,omitempty"`
}

func (m Message) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}
