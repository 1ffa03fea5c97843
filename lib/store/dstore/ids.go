package dstore

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// NodeID derives the replica id of a cluster member from its name.
// Numeric names are used as is, other names are hashed (FNV-1a) so that
// every member computes the same id for the same name.
func NodeID(name string) uint64 {
	name = strings.TrimSpace(name)
	if id, err := strconv.ParseUint(name, 10, 64); err == nil && id > 0 {
		return id
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// ParseMembers parses a comma separated member list of the form
// 'node-1=localhost:63001,node-2=localhost:63002' into replica id -> raft address.
func ParseMembers(members string) (map[uint64]string, error) {
	result := make(map[uint64]string)
	for _, member := range strings.Split(members, ",") {
		if strings.TrimSpace(member) == "" {
			continue
		}
		name, addr, ok := strings.Cut(member, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(addr) == "" {
			return nil, fmt.Errorf("invalid cluster member format: %s (expected NAME=address)", member)
		}
		id := NodeID(name)
		if _, dup := result[id]; dup {
			return nil, fmt.Errorf("duplicate cluster member %s", name)
		}
		result[id] = strings.TrimSpace(addr)
	}
	return result, nil
}
