package jsonv

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is an insertion-ordered JSON object.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject builds an object from members in order. A repeated key keeps
// its first position and takes the last value.
func NewObject(members ...Member) *Object {
	o := &Object{index: make(map[string]int, len(members))}
	for _, m := range members {
		o.set(m.Key, m.Value)
	}
	return o
}

func (o *Object) set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Get returns the member value for key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Null(), false
	}
	i, ok := o.index[key]
	if !ok {
		return Null(), false
	}
	return o.members[i].Value, true
}

// At returns the member at position i in insertion order.
func (o *Object) At(i int) (Member, bool) {
	if o == nil || i < 0 || i >= len(o.members) {
		return Member{}, false
	}
	return o.members[i], true
}

// Keys returns the member keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the members in insertion order.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	out := make([]Member, len(o.members))
	copy(out, o.members)
	return out
}

func (o *Object) equal(p *Object) bool {
	if o.Len() != p.Len() {
		return false
	}
	for i := range o.members {
		if o.members[i].Key != p.members[i].Key || !o.members[i].Value.Equal(p.members[i].Value) {
			return false
		}
	}
	return true
}
