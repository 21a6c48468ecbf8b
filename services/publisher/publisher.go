package publisher

// Publisher announces newly persisted articles to downstream
// consumers.
type Publisher interface {
	// Publish publishes a serialized article under a source's stream
	Publish(source string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
