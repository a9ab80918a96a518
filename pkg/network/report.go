package network

import (
	"fmt"
	"io"
	"strings"
)

// Entry is one person's line in the network listing
type Entry struct {
	Name    string   `json:"name"`
	Friends []string `json:"friends"`
}

// Report returns one entry per person, in the order people were added.
// Friends are listed in the order the friendships were created.
func (n *Network) Report() []Entry {
	entries := make([]Entry, 0, len(n.people))
	for _, p := range n.people {
		entries = append(entries, Entry{
			Name:    p.name,
			Friends: n.friendNames(p),
		})
	}
	return entries
}

// String renders the entry as a listing line without a trailing newline
func (e Entry) String() string {
	if len(e.Friends) == 0 {
		return fmt.Sprintf("%s has no friends yet.", e.Name)
	}
	return fmt.Sprintf("%s is friends with: %s", e.Name, strings.Join(e.Friends, ", "))
}

// PrintNetwork writes the listing to w, one line per person
func (n *Network) PrintNetwork(w io.Writer) error {
	for _, e := range n.Report() {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return fmt.Errorf("failed to write entry for %s: %w", e.Name, err)
		}
	}
	return nil
}
