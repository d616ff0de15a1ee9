package brackets

import "log"

// applySeeding раскладывает команды по слотам сетки размера bracketSize.
// seeding — перестановка 1-based: seeding[i] задаёт слот для teamIDs[i].
// Пустая строка в результате — маркер bye. Без seeding — тождественная
// раскладка в порядке входа.
func applySeeding(teamIDs []string, seeding []int, bracketSize int) []string {
	slots := make([]string, bracketSize)

	if len(seeding) != len(teamIDs) {
		if len(seeding) != 0 {
			log.Printf("brackets: seeding length %d does not match %d teams, falling back to input order", len(seeding), len(teamIDs))
		}
		for i, id := range teamIDs {
			if i < bracketSize {
				slots[i] = id
			}
		}
		return slots
	}

	for i, id := range teamIDs {
		slot := seeding[i] - 1
		if slot < 0 || slot >= bracketSize {
			log.Printf("brackets: seed %d for team %s is outside bracket of size %d, skipping", seeding[i], id, bracketSize)
			continue
		}
		if slots[slot] != "" {
			log.Printf("brackets: seed %d assigned twice (teams %s and %s), keeping first", seeding[i], slots[slot], id)
			continue
		}
		slots[slot] = id
	}
	return slots
}
