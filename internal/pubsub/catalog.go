package pubsub

import (
	"sort"
	"sync"
)

// TopicInfo describes a declared event topic. The catalog exists for
// discovery tooling; the bus itself never consults it.
type TopicInfo struct {
	Name        string
	Description string
	Payload     string
}

var (
	catalog   = make(map[string]TopicInfo)
	catalogMu sync.RWMutex
)

func registerTopic(info TopicInfo) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalog[info.Name] = info
}

// Catalog returns every declared topic, sorted by name.
func Catalog() []TopicInfo {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	out := make([]TopicInfo, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the declared topic with the given name.
func Lookup(name string) (TopicInfo, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	info, ok := catalog[name]
	return info, ok
}
