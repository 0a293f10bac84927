package domain

// ChatStream is a lazy, single-pass sequence of incremental text fragments
// from an upstream provider. Recv returns io.EOF after the final fragment.
// It is not restartable; the consumer pulls until exhaustion or error.
type ChatStream interface {
	Recv() (string, error)
	Close() error
}
