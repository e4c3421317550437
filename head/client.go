package head

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Client holds the head registrations of one document and renders the
// merged result.
type Client struct {
	mu     sync.Mutex
	active []*ActiveHead
}

// ActiveHead is a registration returned by Push. Dispose removes it.
type ActiveHead struct {
	client  *Client
	payload Payload
}

func NewClient() *Client {
	return &Client{}
}

// Push registers p and returns its handle.
func (c *Client) Push(p Payload) *ActiveHead {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &ActiveHead{client: c, payload: p}
	c.active = append(c.active, entry)
	return entry
}

// Dispose removes the registration. Calling it more than once is a no-op.
func (a *ActiveHead) Dispose() {
	c := a.client
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.active {
		if existing == a {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

// Payload returns the registered payload.
func (a *ActiveHead) Payload() Payload {
	return a.payload
}

// Len returns the number of live registrations.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active)
}

// Resolve merges every live registration in push order. A later
// registration replaces an earlier entry with the same key in place.
func (c *Client) Resolve() Payload {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out Payload
	metaIdx := make(map[string]int)
	linkIdx := make(map[string]int)
	for _, a := range c.active {
		if a.payload.Title != "" {
			out.Title = a.payload.Title
		}
		out.Meta = mergeEntries(out.Meta, a.payload.Meta, metaIdx)
		out.Link = mergeEntries(out.Link, a.payload.Link, linkIdx)
	}
	return out
}

func mergeEntries(dst, src []Entry, idx map[string]int) []Entry {
	for _, e := range src {
		if e.Key == "" {
			dst = append(dst, e)
			continue
		}
		if i, ok := idx[e.Key]; ok {
			dst[i] = e
			continue
		}
		idx[e.Key] = len(dst)
		dst = append(dst, e)
	}
	return dst
}

// Render serializes the resolved head as <title>, <meta> and <link> tags.
func (c *Client) Render() (template.HTML, error) {
	p := c.Resolve()

	var buf bytes.Buffer
	write := func(n *html.Node) error {
		if err := html.Render(&buf, n); err != nil {
			return errors.Wrapf(err, "rendering <%s>", n.Data)
		}
		buf.WriteByte('\n')
		return nil
	}

	if p.Title != "" {
		title := &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
		title.AppendChild(&html.Node{Type: html.TextNode, Data: p.Title})
		if err := write(title); err != nil {
			return "", err
		}
	}
	for _, e := range p.Meta {
		if err := write(elementNode(atom.Meta, e)); err != nil {
			return "", err
		}
	}
	for _, e := range p.Link {
		if err := write(elementNode(atom.Link, e)); err != nil {
			return "", err
		}
	}

	return template.HTML(buf.String()), nil
}

func elementNode(a atom.Atom, e Entry) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, attr := range e.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: attr.Name, Val: attr.Value})
	}
	return n
}
