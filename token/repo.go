package token

// Repo is the durable store for the single bearer token of the local session.
// Load returns errors.ErrNoToken when nothing is stored.
type Repo interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
