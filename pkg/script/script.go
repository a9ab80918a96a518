// Package script describes a replayable sequence of people and friendships.
//
// Scripts are TOML files:
//
//	people = ["Alex", "Jordan", "Morgan"]
//	friendships = [
//	  ["Alex", "Jordan"],
//	  ["Alex", "Morgan"],
//	]
package script

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/ritzau/socialgraph/pkg/network"
)

// ErrInvalidFriendship is returned when a friendship entry does not name exactly two people
var ErrInvalidFriendship = errors.New("friendship must name exactly two people")

// Script is an ordered list of people to add followed by friendships to create
type Script struct {
	People      []string   `koanf:"people"`
	Friendships [][]string `koanf:"friendships"`
}

// Result counts what happened when a script was applied
type Result struct {
	Added       int // people added
	Duplicates  int // people rejected as duplicates
	Friendships int // friendship calls that succeeded
	Rejected    int // friendship calls naming an unknown person
}

// Default returns the built-in demo: six people, one duplicate, and a
// friendship with someone who was never added.
func Default() *Script {
	return &Script{
		People: []string{"Alex", "Jordan", "Morgan", "Taylor", "Casey", "Riley", "Alex"},
		Friendships: [][]string{
			{"Alex", "Jordan"},
			{"Alex", "Morgan"},
			{"Jordan", "Taylor"},
			{"Jordan", "Johnny"},
			{"Morgan", "Casey"},
			{"Taylor", "Riley"},
			{"Casey", "Riley"},
			{"Morgan", "Riley"},
			{"Alex", "Taylor"},
		},
	}
}

// Load reads a script from a TOML file
func Load(path string) (*Script, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", path, err)
	}

	var s Script
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to decode script %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script %s: %w", path, err)
	}

	return &s, nil
}

// Validate checks the shape of the script. Names themselves are not checked.
func (s *Script) Validate() error {
	for i, pair := range s.Friendships {
		if len(pair) != 2 {
			return fmt.Errorf("friendship %d %v: %w", i+1, pair, ErrInvalidFriendship)
		}
	}
	return nil
}

// Apply replays the script against n: every person first, then every friendship.
// Duplicates and unknown people are reported by the network and counted here.
func Apply(n *network.Network, s *Script) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	var res Result
	for _, name := range s.People {
		if n.AddPerson(name) {
			res.Added++
		} else {
			res.Duplicates++
		}
	}

	for _, pair := range s.Friendships {
		if err := n.AddFriendship(pair[0], pair[1]); err != nil {
			if !errors.Is(err, network.ErrPersonNotFound) {
				return res, err
			}
			res.Rejected++
			continue
		}
		res.Friendships++
	}

	return res, nil
}
