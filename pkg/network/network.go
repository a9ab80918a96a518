// Package network holds the in-memory friendship graph: people keyed by name
// and symmetric friendships between them.
package network

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ritzau/socialgraph/pkg/logging"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrPersonNotFound is returned when a friendship names someone who was never added
var ErrPersonNotFound = errors.New("person not found")

// Network owns every Person it creates. People live in an arena indexed by
// their node ID; friendships are mirrored as edges of an undirected graph.
//
// The per-person friend lists are authoritative: they carry creation order
// and drive Report and FriendNames. The graph is a mirror kept in step by
// AddFriendship, the only writer of either, and answers HasFriendship and
// FriendshipCount.
type Network struct {
	people    []*Person        // arena, index == node ID
	ids       map[string]int64 // name -> node ID
	graph     *simple.UndirectedGraph
	selfLoops int
	notices   io.Writer
}

// New creates an empty network. Notices about duplicate people and rejected
// friendships are written to notices, one per line. A nil writer discards them.
func New(notices io.Writer) *Network {
	if notices == nil {
		notices = io.Discard
	}
	return &Network{
		people:  make([]*Person, 0),
		ids:     make(map[string]int64),
		graph:   simple.NewUndirectedGraph(),
		notices: notices,
	}
}

// AddPerson adds a person with the given name. If the name is already taken
// a notice is emitted and nothing changes. Returns true if the person was added.
func (n *Network) AddPerson(name string) bool {
	if _, exists := n.ids[name]; exists {
		fmt.Fprintf(n.notices, "%s already exists in the network.\n", name)
		logging.Debug("duplicate person ignored", "name", name)
		return false
	}

	id := int64(len(n.people))
	n.people = append(n.people, newPerson(id, name))
	n.ids[name] = id
	n.graph.AddNode(simple.Node(id))

	logging.Trace("person added", "name", name, "id", id)
	return true
}

// AddFriendship makes name1 and name2 friends of each other. If either name
// is unknown a notice naming both is emitted, nothing changes and an error
// wrapping ErrPersonNotFound is returned. Repeating a friendship is a no-op.
func (n *Network) AddFriendship(name1, name2 string) error {
	id1, ok1 := n.ids[name1]
	id2, ok2 := n.ids[name2]
	if !ok1 || !ok2 {
		fmt.Fprintf(n.notices, "Friendship not created. One or both users not found (%s, %s).\n", name1, name2)

		var missing []string
		if !ok1 {
			missing = append(missing, name1)
		}
		if !ok2 && name2 != name1 {
			missing = append(missing, name2)
		}
		logging.Debug("friendship rejected", "from", name1, "to", name2, "missing", strings.Join(missing, ","))
		return fmt.Errorf("%w: %s", ErrPersonNotFound, strings.Join(missing, ", "))
	}

	p1 := n.people[id1]
	p2 := n.people[id2]

	// The undirected graph rejects self edges, so a person befriending
	// themselves is only recorded in their own friend list.
	if id1 == id2 {
		if p1.addFriend(id1) {
			n.selfLoops++
		}
		return nil
	}

	p1.addFriend(id2)
	p2.addFriend(id1)
	if !n.graph.HasEdgeBetween(id1, id2) {
		n.graph.SetEdge(n.graph.NewEdge(n.graph.Node(id1), n.graph.Node(id2)))
	}

	logging.Trace("friendship added", "from", name1, "to", name2)
	return nil
}

// Person looks up a person by name
func (n *Network) Person(name string) (*Person, bool) {
	id, exists := n.ids[name]
	if !exists {
		return nil, false
	}
	return n.people[id], true
}

// People returns every person in the order they were added
func (n *Network) People() []*Person {
	people := make([]*Person, len(n.people))
	copy(people, n.people)
	return people
}

// Len returns the number of people in the network
func (n *Network) Len() int {
	return len(n.people)
}

// HasFriendship reports whether name1 and name2 are friends
func (n *Network) HasFriendship(name1, name2 string) bool {
	p1, ok1 := n.Person(name1)
	p2, ok2 := n.Person(name2)
	if !ok1 || !ok2 {
		return false
	}
	if p1 == p2 {
		return p1.HasFriend(p1.id)
	}
	return n.graph.HasEdgeBetween(p1.id, p2.id)
}

// FriendshipCount returns the number of distinct friendships
func (n *Network) FriendshipCount() int {
	return n.graph.Edges().Len() + n.selfLoops
}

// FriendNames resolves a person's friends to names, in insertion order
func (n *Network) FriendNames(name string) ([]string, bool) {
	p, exists := n.Person(name)
	if !exists {
		return nil, false
	}
	return n.friendNames(p), true
}

func (n *Network) friendNames(p *Person) []string {
	names := make([]string, 0, len(p.friends))
	for _, id := range p.friends {
		if id < 0 || id >= int64(len(n.people)) {
			continue
		}
		names = append(names, n.people[id].name)
	}
	return names
}
