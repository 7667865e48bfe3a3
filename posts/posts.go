package posts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jrsteele09/betatips/internal/utils"
)

// Author is the public profile embedded in posts and replies.
type Author struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	HasPaid  bool   `json:"hasPaid"`
}

func (a *Author) UnmarshalJSON(data []byte) error {
	type plain Author
	aux := struct {
		*plain
		LegacyID string `json:"_id"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.ID = utils.FirstNonEmpty(a.ID, aux.LegacyID)
	return nil
}

type Reply struct {
	ID        string    `json:"id,omitempty"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Reply) UnmarshalJSON(data []byte) error {
	type plain Reply
	aux := struct {
		*plain
		LegacyID string `json:"_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = utils.FirstNonEmpty(r.ID, aux.LegacyID)
	return nil
}

type Post struct {
	ID        string    `json:"id,omitempty"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	Replies   []Reply   `json:"replies"`
}

func (p *Post) UnmarshalJSON(data []byte) error {
	type plain Post
	aux := struct {
		*plain
		LegacyID string `json:"_id"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.ID = utils.FirstNonEmpty(p.ID, aux.LegacyID)
	return nil
}

// ReplyCountLabel is "1 reply", "3 replies", or "" when there are none.
func (p Post) ReplyCountLabel() string {
	switch n := len(p.Replies); n {
	case 0:
		return ""
	case 1:
		return "1 reply"
	default:
		return fmt.Sprintf("%d replies", n)
	}
}
