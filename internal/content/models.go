package content

import "time"

// Record is the single persisted entity: a piece of user-authored (or
// AI-generated) content stored in the content table. Timestamps are kept
// as ISO-8601 strings so the stored shape matches the wire shape exactly.
type Record struct {
	ID          string `json:"id" bson:"_id"`
	UserID      string `json:"userId" bson:"userId"`
	Title       string `json:"title" bson:"title"`
	ContentType string `json:"contentType" bson:"contentType"`
	Content     string `json:"content" bson:"content"`
	CreatedAt   string `json:"createdAt" bson:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Recognized content types. Anything else falls back to the generic
// generation template.
const (
	TypeBlog      = "blog"
	TypeMarketing = "marketing"
	TypeStory     = "story"
	TypeSocial    = "social"
)

// timeLayout renders millisecond-precision ISO-8601 with a Z suffix for UTC.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t as the ISO-8601 string stored in createdAt/updatedAt.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
