package resolver

// Cache is the node table of a single resolution: canonical path to node.
// It is owned by one Resolve call and is not safe for concurrent use.
type Cache struct {
	nodes map[string]*Node
	hits  int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{nodes: make(map[string]*Node)}
}

// Get returns the node for path and counts a hit when present.
func (c *Cache) Get(path string) (*Node, bool) {
	node, ok := c.nodes[path]
	if ok {
		c.hits++
	}
	return node, ok
}

// Put stores a fully resolved node.
func (c *Cache) Put(node *Node) {
	c.nodes[node.Path] = node
}

// Len returns the number of cached nodes.
func (c *Cache) Len() int {
	return len(c.nodes)
}

// Hits returns the number of successful lookups.
func (c *Cache) Hits() int {
	return c.hits
}
