package game

import "testing"

func TestTransitions(t *testing.T) {
	tests := []struct {
		from State
		on   Trigger
		to   State
		ok   bool
	}{
		{StateMenu, TriggerStart, StatePlaying, true},
		{StateMenu, TriggerOpenSettings, StateSettings, true},
		{StateMenu, TriggerTogglePDA, StateMenu, false},
		{StateSettings, TriggerApplySettings, StateMenu, true},
		{StatePlaying, TriggerEscape, StateMenu, true},
		{StatePlaying, TriggerTogglePDA, StatePDA, true},
		{StatePDA, TriggerTogglePDA, StatePlaying, true},
		{StatePlaying, TriggerOpenFabricator, StateFabricator, true},
		{StateFabricator, TriggerClose, StatePlaying, true},
		{StateFabricator, TriggerTogglePDA, StateFabricator, false},
		{StatePlaying, TriggerToggleInventory, StateInventory, true},
		{StateInventory, TriggerToggleInventory, StatePlaying, true},
		{StatePlaying, TriggerStart, StatePlaying, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.on.String(), func(t *testing.T) {
			to, ok := Next(tt.from, tt.on)
			if ok != tt.ok || to != tt.to {
				t.Errorf("Expected (%v, %v), got (%v, %v)", tt.to, tt.ok, to, ok)
			}
		})
	}
}

func TestOnlyPlayingSimulates(t *testing.T) {
	for _, s := range []State{StateMenu, StateSettings, StatePDA, StateFabricator, StateInventory} {
		if s.Simulates() {
			t.Errorf("Expected %v to pause the world", s)
		}
	}
	if !StatePlaying.Simulates() {
		t.Error("Expected playing to simulate")
	}
}
