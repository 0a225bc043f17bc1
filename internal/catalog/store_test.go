package catalog

import (
	"testing"

	"github.com/santiago/autovidriera/internal/model"
)

func TestStore_CurrentBeforeAnyLoad(t *testing.T) {
	store := NewStore()

	snap := store.Current()
	if snap.Generation != 0 {
		t.Errorf("Generation = %d, want 0", snap.Generation)
	}
	if len(snap.Vehicles) != 0 {
		t.Errorf("Vehicles = %d, want none", len(snap.Vehicles))
	}
}

func TestStore_PublishInstallsSnapshot(t *testing.T) {
	store := NewStore()
	gen := store.BeginLoad()

	vehicles := []model.Vehicle{{ID: "abc", Brand: "Ford"}}
	if !store.Publish(gen, vehicles, model.FilterDomain{}) {
		t.Fatal("Publish returned false for the first load")
	}

	snap := store.Current()
	if snap.Generation != gen {
		t.Errorf("Generation = %d, want %d", snap.Generation, gen)
	}
	if len(snap.Vehicles) != 1 || snap.Vehicles[0].ID != "abc" {
		t.Errorf("Vehicles = %+v", snap.Vehicles)
	}
	if snap.LoadedAt.IsZero() {
		t.Error("LoadedAt not set")
	}
}

func TestStore_StaleLoadCannotOverwriteNewer(t *testing.T) {
	store := NewStore()

	slow := store.BeginLoad()
	fast := store.BeginLoad()

	// The later load finishes first.
	if !store.Publish(fast, []model.Vehicle{{ID: "new"}}, model.FilterDomain{}) {
		t.Fatal("newer load failed to publish")
	}
	// The earlier load finishes afterwards and must be rejected.
	if store.Publish(slow, []model.Vehicle{{ID: "old"}}, model.FilterDomain{}) {
		t.Fatal("stale load overwrote a newer snapshot")
	}

	snap := store.Current()
	if snap.Vehicles[0].ID != "new" {
		t.Errorf("Vehicles[0].ID = %q, want %q", snap.Vehicles[0].ID, "new")
	}
	if snap.Generation != fast {
		t.Errorf("Generation = %d, want %d", snap.Generation, fast)
	}
}

func TestStore_RepublishSameGenerationRejected(t *testing.T) {
	store := NewStore()
	gen := store.BeginLoad()

	store.Publish(gen, nil, model.FilterDomain{})
	if store.Publish(gen, []model.Vehicle{{ID: "dup"}}, model.FilterDomain{}) {
		t.Error("same generation published twice")
	}
}
