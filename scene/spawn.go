package scene

import (
	"fmt"

	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/sprite"
)

var petNames = [...]string{"Kapi", "Mochi", "Yuzu", "Pancake", "Bean", "Onsen", "Tofu", "Miso"}

// PetName returns the name given to the i-th spawned pet.
func PetName(i int) string {
	name := petNames[i%len(petNames)]
	if round := i / len(petNames); round > 0 {
		return fmt.Sprintf("%s %d", name, round+1)
	}
	return name
}

// Spawn adds n pets with randomized position, state and timer and returns
// their ids in spawn order.
func Spawn(storage *ecs.Storage, settings Settings, rng behavior.Rand, n int) []ecs.EntityId {
	existing := countPets(storage)

	ids := make([]ecs.EntityId, 0, n)
	for i := 0; i < n; i++ {
		machine := behavior.Spawn(settings.Params, rng)
		set := newSet(settings, &machine)

		inst := sprite.NewInstance(settings.PetSize, settings.PetSize, set.Current().Rect())
		inst.X = machine.Position.X
		inst.Y = machine.Position.Y + inst.Height/2

		ids = append(ids, storage.Spawn(
			machine,
			set,
			inst,
			Pet{
				Name: PetName(existing + i),
				Size: settings.PetSize,
				Tint: [4]float32{1, 1, 1, 1},
			},
		))
	}
	return ids
}

func newSet(settings Settings, m *behavior.Machine) sprite.Set {
	var set sprite.Set
	for c := range set.Animators {
		set.Animators[c] = sprite.NewAnimator(settings.FrameCounts[c], settings.FrameDuration)
		set.Animators[c].Flipped = m.Flipped
	}

	clip, playback := m.Clip()
	set.Active = clip
	set.Current().SetPlayback(playback)
	set.Current().Restart()
	return set
}

// Teardown deletes every pet and returns how many were removed.
func Teardown(storage *ecs.Storage) int {
	view := ecs.NewView[struct {
		ecs.EntityId
		*Pet
	}](storage)

	var ids []ecs.EntityId
	for id := range view.Iter() {
		ids = append(ids, id)
	}
	for _, id := range ids {
		storage.Delete(id)
	}
	return len(ids)
}

func countPets(storage *ecs.Storage) int {
	n := 0
	for range ecs.NewView[struct{ *Pet }](storage).Iter() {
		n++
	}
	return n
}
