package head

// Attr is one HTML attribute of a head tag.
type Attr struct {
	Name  string
	Value string
}

// Entry is a single <meta> or <link> tag. Key is only used for
// deduplication and is never rendered.
type Entry struct {
	Key   string
	Attrs []Attr
}

// Get returns the value of the named attribute, or "".
func (e Entry) Get(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Payload is the head computed for one navigation.
type Payload struct {
	Title string
	Meta  []Entry
	Link  []Entry
}

// MetaByKey returns the meta entry registered under key.
func (p Payload) MetaByKey(key string) (Entry, bool) {
	return findByKey(p.Meta, key)
}

// LinkByKey returns the link entry registered under key.
func (p Payload) LinkByKey(key string) (Entry, bool) {
	return findByKey(p.Link, key)
}

func findByKey(entries []Entry, key string) (Entry, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}
