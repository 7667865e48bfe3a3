package devserver

import (
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/posts"
	"github.com/jrsteele09/betatips/users"
)

type contentBody struct {
	Content string `json:"content"`
}

func authorOf(u *users.User) posts.Author {
	return posts.Author{ID: u.ID, Username: u.Username, HasPaid: u.HasPaid}
}

func readContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body contentBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	content := strings.TrimSpace(body.Content)
	if content == "" {
		writeMessage(w, http.StatusBadRequest, "Content is required")
		return "", false
	}
	return content, true
}

func (s *Server) ListPostsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Posts.List()
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) CreatePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, ok := readContent(w, r)
		if !ok {
			return
		}
		post := &posts.Post{
			Content:   content,
			Author:    authorOf(userFromContext(r.Context())),
			CreatedAt: s.nowTime(),
			Replies:   []posts.Reply{},
		}
		if err := s.repos.Posts.Create(post); err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	}
}

func (s *Server) ReplyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, ok := readContent(w, r)
		if !ok {
			return
		}
		reply := posts.Reply{
			Content:   content,
			Author:    authorOf(userFromContext(r.Context())),
			CreatedAt: s.nowTime(),
		}
		updated, err := s.repos.Posts.AddReply(r.PathValue("id"), reply)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Post not found")
			return
		}
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, updated)
	}
}

func (s *Server) DeletePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.repos.Posts.Delete(r.PathValue("id"))
		if apperrors.Is(err, apperrors.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Post not found")
			return
		}
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "Post deleted")
	}
}
