package domain

import "testing"

func TestFavoritesRecord_Merge(t *testing.T) {
	tests := []struct {
		name            string
		record          *FavoritesRecord
		selection       FavoriteSelection
		expectedTeams   map[string]bool
		expectedLeagues map[string]bool
	}{
		{
			name:            "Selection into empty record",
			record:          NewFavoritesRecord("user-1"),
			selection:       FavoriteSelection{Teams: map[string]bool{"t1": true}},
			expectedTeams:   map[string]bool{"t1": true},
			expectedLeagues: map[string]bool{},
		},
		{
			name:   "Selection adds to existing entries",
			record: &FavoritesRecord{UserID: "user-1", Teams: map[string]bool{"t1": true}, Leagues: map[string]bool{"l1": true}},
			selection: FavoriteSelection{
				Teams:   map[string]bool{"t2": true},
				Leagues: map[string]bool{"l2": true},
			},
			expectedTeams:   map[string]bool{"t1": true, "t2": true},
			expectedLeagues: map[string]bool{"l1": true, "l2": true},
		},
		{
			name:            "Selection overwrites on collision",
			record:          &FavoritesRecord{UserID: "user-1", Teams: map[string]bool{"t1": true}},
			selection:       FavoriteSelection{Teams: map[string]bool{"t1": false}},
			expectedTeams:   map[string]bool{"t1": false},
			expectedLeagues: nil,
		},
		{
			name:            "Empty selection is a no-op",
			record:          NewFavoritesRecord("user-1"),
			selection:       FavoriteSelection{},
			expectedTeams:   map[string]bool{},
			expectedLeagues: map[string]bool{},
		},
		{
			name:            "Nil maps on the record are initialized",
			record:          &FavoritesRecord{UserID: "user-1"},
			selection:       FavoriteSelection{Leagues: map[string]bool{"l1": true}},
			expectedTeams:   map[string]bool{},
			expectedLeagues: map[string]bool{"l1": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.record.Merge(tt.selection)

			if len(tt.record.Teams) != len(tt.expectedTeams) {
				t.Fatalf("teams = %v, want %v", tt.record.Teams, tt.expectedTeams)
			}
			for id, followed := range tt.expectedTeams {
				if tt.record.Teams[id] != followed {
					t.Errorf("teams[%q] = %v, want %v", id, tt.record.Teams[id], followed)
				}
			}
			if len(tt.record.Leagues) != len(tt.expectedLeagues) {
				t.Fatalf("leagues = %v, want %v", tt.record.Leagues, tt.expectedLeagues)
			}
			for id, followed := range tt.expectedLeagues {
				if tt.record.Leagues[id] != followed {
					t.Errorf("leagues[%q] = %v, want %v", id, tt.record.Leagues[id], followed)
				}
			}
		})
	}
}

func TestFavoriteSelection_IsEmpty(t *testing.T) {
	tests := []struct {
		name      string
		selection FavoriteSelection
		expected  bool
	}{
		{name: "Zero value", selection: FavoriteSelection{}, expected: true},
		{name: "Empty maps", selection: FavoriteSelection{Teams: map[string]bool{}, Leagues: map[string]bool{}}, expected: true},
		{name: "Has a team", selection: FavoriteSelection{Teams: map[string]bool{"t1": true}}, expected: false},
		{name: "Has a league", selection: FavoriteSelection{Leagues: map[string]bool{"l1": true}}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.selection.IsEmpty(); got != tt.expected {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.expected)
			}
		})
	}
}
