package network

// Person is a named participant in the network.
// Friends are stored as IDs into the owning Network, in the order the
// friendships were created.
type Person struct {
	id      int64
	name    string
	friends []int64
}

func newPerson(id int64, name string) *Person {
	return &Person{
		id:      id,
		name:    name,
		friends: make([]int64, 0),
	}
}

// ID returns the person's node ID within its network
func (p *Person) ID() int64 {
	return p.id
}

// Name returns the person's name
func (p *Person) Name() string {
	return p.name
}

// addFriend appends id to the friend list unless it is already present.
// Returns true if the list changed. Only the owning Network calls it, so id
// is always a valid index into its arena.
func (p *Person) addFriend(id int64) bool {
	if p.HasFriend(id) {
		return false
	}
	p.friends = append(p.friends, id)
	return true
}

// HasFriend reports whether id is in the friend list
func (p *Person) HasFriend(id int64) bool {
	for _, f := range p.friends {
		if f == id {
			return true
		}
	}
	return false
}

// Friends returns a copy of the friend IDs in insertion order
func (p *Person) Friends() []int64 {
	friends := make([]int64, len(p.friends))
	copy(friends, p.friends)
	return friends
}
