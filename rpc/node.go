package rpc

import (
	"math/rand"
	"oep4-squirrel/models"
	"strings"
	"sync"
)

// nodeSet tracks which nodes of each network answered lately.
type nodeSet struct {
	mu    sync.RWMutex
	nodes map[models.Network][]string
	down  map[string]bool
}

func newNodeSet(nodes map[models.Network][]string) *nodeSet {
	copied := make(map[models.Network][]string, len(nodes))
	for net, urls := range nodes {
		copied[net] = append([]string(nil), urls...)
	}

	return &nodeSet{
		nodes: copied,
		down:  make(map[string]bool),
	}
}

// candidates returns nodes of net in the order they should be tried:
// available nodes first (local nodes ahead, the rest shuffled), then unavailable ones.
func (s *nodeSet) candidates(net models.Network) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	local := []string{}
	remote := []string{}
	down := []string{}

	for _, url := range s.nodes[net] {
		switch {
		case s.down[url]:
			down = append(down, url)
		case strings.Contains(url, "127.0.0.1") || strings.Contains(url, "localhost"):
			local = append(local, url)
		default:
			remote = append(remote, url)
		}
	}

	rand.Shuffle(len(remote), func(i, j int) {
		remote[i], remote[j] = remote[j], remote[i]
	})

	candidates := append(local, remote...)
	return append(candidates, down...)
}

func (s *nodeSet) markDown(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.down[url] = true
}

func (s *nodeSet) markUp(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.down, url)
}

func (s *nodeSet) isDown(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.down[url]
}
