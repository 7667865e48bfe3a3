package posts_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/betatips/posts"
	"github.com/stretchr/testify/require"
)

func TestPostUnmarshalNested(t *testing.T) {
	raw := `{"_id":"p1","content":"Won big","author":{"_id":"u1","username":"ada","hasPaid":true},
		"createdAt":"2026-10-16T10:00:00Z",
		"replies":[{"_id":"r1","content":"nice","author":{"id":"u2","username":"bob"},"createdAt":"2026-10-16T11:00:00Z"}]}`

	var p posts.Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.Equal(t, "p1", p.ID)
	require.Equal(t, "u1", p.Author.ID)
	require.True(t, p.Author.HasPaid)
	require.Len(t, p.Replies, 1)
	require.Equal(t, "r1", p.Replies[0].ID)
	require.Equal(t, "u2", p.Replies[0].Author.ID)
}

func TestReplyCountLabel(t *testing.T) {
	require.Empty(t, posts.Post{}.ReplyCountLabel())
	require.Equal(t, "1 reply", posts.Post{Replies: make([]posts.Reply, 1)}.ReplyCountLabel())
	require.Equal(t, "4 replies", posts.Post{Replies: make([]posts.Reply, 4)}.ReplyCountLabel())
}
