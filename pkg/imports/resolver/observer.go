package resolver

// Observer receives resolution events. Implementations must be cheap; they
// are called synchronously from the resolver.
type Observer interface {
	// DocumentRead is called after a document is read from the Source
	DocumentRead(path string, size int)

	// CacheHit is called when an import is served from the Cache
	CacheHit(path string)

	// NodeResolved is called once a node and its namespace are complete
	NodeResolved(node *Node)
}

type nopObserver struct{}

func (nopObserver) DocumentRead(string, int) {}
func (nopObserver) CacheHit(string)          {}
func (nopObserver) NodeResolved(*Node)       {}
