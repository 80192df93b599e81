package ecs

import "sort"

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype in StorageStats.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the storage and counts archetypes, entities and singletons.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount: len(s.order),
		SingletonCount: len(s.singletons),
	}

	for _, archetype := range s.order {
		names := make([]string, len(archetype.types))
		for i, t := range archetype.types {
			names[i] = t.String()
		}
		count := archetype.Count()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
