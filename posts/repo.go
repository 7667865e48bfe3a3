package posts

// Repo stores community posts. It backs the development server.
type Repo interface {
	Create(post *Post) error
	Get(ID string) (*Post, error)
	List() ([]*Post, error) // newest first
	AddReply(postID string, reply Reply) (*Post, error)
	Delete(ID string) error
}
