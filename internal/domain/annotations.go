package domain

// Annotations is the ordered mapping from IPv4 address to stored entry.
// Iteration follows first insertion; replacing a key keeps its position.
type Annotations struct {
	order   []string
	entries map[string]Entry
}

// NewAnnotations creates an empty collection
func NewAnnotations() *Annotations {
	return &Annotations{
		order:   make([]string, 0),
		entries: make(map[string]Entry),
	}
}

// Set stores rec under ip
func (a *Annotations) Set(ip string, rec Record) {
	a.Put(ip, rec.Entry())
}

// Put stores e under ip as given
func (a *Annotations) Put(ip string, e Entry) {
	if _, exists := a.entries[ip]; !exists {
		a.order = append(a.order, ip)
	}
	a.entries[ip] = e.clone()
}

// Get returns a copy of the entry for ip
func (a *Annotations) Get(ip string) (Entry, bool) {
	e, ok := a.entries[ip]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Delete removes ip and reports whether it was present
func (a *Annotations) Delete(ip string) bool {
	if _, exists := a.entries[ip]; !exists {
		return false
	}
	delete(a.entries, ip)
	for i, key := range a.order {
		if key == ip {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the stored addresses in insertion order
func (a *Annotations) Keys() []string {
	keys := make([]string, len(a.order))
	copy(keys, a.order)
	return keys
}

// Len returns the number of stored entries
func (a *Annotations) Len() int {
	return len(a.order)
}

// Each calls fn for every entry in insertion order
func (a *Annotations) Each(fn func(ip string, e Entry)) {
	for _, ip := range a.order {
		fn(ip, a.entries[ip])
	}
}
