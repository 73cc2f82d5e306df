package conflictkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLastWriteWins(t *testing.T) {
	tests := []struct {
		name   string
		local  Record
		remote Record
		want   Resolved
	}{
		{
			name:   "remote_newer_wins",
			local:  Record{ID: "1", Title: "Local", UpdatedAt: 1000},
			remote: Record{ID: "1", Title: "Remote", UpdatedAt: 2000},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Remote", UpdatedAt: 2000},
				Resolution: ResolutionRemote,
			},
		},
		{
			name:   "local_newer_wins",
			local:  Record{ID: "1", Title: "Local", UpdatedAt: 3000},
			remote: Record{ID: "1", Title: "Remote", UpdatedAt: 2000},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Local", UpdatedAt: 3000},
				Resolution: ResolutionLocal,
			},
		},
		{
			name:   "tie_keeps_local",
			local:  Record{ID: "1", Title: "Local", UpdatedAt: 1000},
			remote: Record{ID: "1", Title: "Remote", UpdatedAt: 1000},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Local", UpdatedAt: 1000},
				Resolution: ResolutionLocal,
			},
		},
		{
			name:   "both_timestamps_absent_keeps_local",
			local:  Record{ID: "1", Title: "Local"},
			remote: Record{ID: "1", Title: "Remote"},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Local"},
				Resolution: ResolutionLocal,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastWriteWins{}.Resolve(tt.local, tt.remote)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVersionBased(t *testing.T) {
	tests := []struct {
		name   string
		local  Record
		remote Record
		want   Resolved
	}{
		{
			name:   "higher_remote_version_beats_newer_local_timestamp",
			local:  Record{ID: "1", Title: "Local", Version: 2, UpdatedAt: 3000},
			remote: Record{ID: "1", Title: "Remote", Version: 3, UpdatedAt: 1000},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Remote", Version: 3, UpdatedAt: 1000},
				Resolution: ResolutionRemote,
			},
		},
		{
			name:   "higher_local_version_wins",
			local:  Record{ID: "1", Title: "Local", Version: 7, UpdatedAt: 1000},
			remote: Record{ID: "1", Title: "Remote", Version: 6, UpdatedAt: 9000},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Local", Version: 7, UpdatedAt: 1000},
				Resolution: ResolutionLocal,
			},
		},
		{
			name:   "equal_versions_fall_back_to_timestamps",
			local:  Record{ID: "1", Title: "Local", Version: 2, UpdatedAt: 1000},
			remote: Record{ID: "1", Title: "Remote", Version: 2, UpdatedAt: 2000},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Remote", Version: 2, UpdatedAt: 2000},
				Resolution: ResolutionRemote,
			},
		},
		{
			name:   "equal_versions_and_timestamps_keep_local",
			local:  Record{ID: "1", Title: "Local", Version: 2, UpdatedAt: 1000},
			remote: Record{ID: "1", Title: "Remote", Version: 2, UpdatedAt: 1000},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Local", Version: 2, UpdatedAt: 1000},
				Resolution: ResolutionLocal,
			},
		},
		{
			name:   "missing_versions_behave_as_zero",
			local:  Record{ID: "1", Title: "Local", UpdatedAt: 1000},
			remote: Record{ID: "1", Title: "Remote", Version: 1, UpdatedAt: 500},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Remote", Version: 1, UpdatedAt: 500},
				Resolution: ResolutionRemote,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VersionBased{}.Resolve(tt.local, tt.remote)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldMerge(t *testing.T) {
	tests := []struct {
		name   string
		local  Record
		remote Record
		want   Resolved
	}{
		{
			name: "fields_follow_their_own_shadow_timestamps",
			local: Record{
				ID: "1", Title: "Local Title", Status: StatusPending,
				Description: "Local description", UpdatedAt: 2000,
				FieldTimes: map[Field]int64{FieldTitle: 2000, FieldStatus: 1000},
			},
			remote: Record{
				ID: "1", Title: "Remote Title", Status: StatusInProgress,
				Description: "", UpdatedAt: 3000,
				FieldTimes: map[Field]int64{FieldTitle: 1000, FieldStatus: 3000},
			},
			want: Resolved{
				Record: Record{
					ID: "1", Title: "Local Title", Status: StatusInProgress,
					Description: "Local description", UpdatedAt: 3000,
					FieldTimes: map[Field]int64{FieldTitle: 2000, FieldStatus: 3000},
				},
				Resolution: ResolutionMerged,
			},
		},
		{
			name: "remote_description_preferred_when_non_empty",
			local: Record{
				ID: "2", Title: "Same", Description: "stale", UpdatedAt: 1000,
				FieldTimes: map[Field]int64{FieldTitle: 500},
			},
			remote: Record{
				ID: "2", Title: "Same", Description: "fresh", UpdatedAt: 900,
				FieldTimes: map[Field]int64{FieldTitle: 500},
			},
			want: Resolved{
				Record: Record{
					ID: "2", Title: "Same", Description: "fresh", UpdatedAt: 1000,
					FieldTimes: map[Field]int64{FieldTitle: 500},
				},
				Resolution: ResolutionMerged,
			},
		},
		{
			name: "shadow_tie_keeps_local_value",
			local: Record{
				ID: "3", Title: "Local", UpdatedAt: 100,
				FieldTimes: map[Field]int64{FieldTitle: 700},
			},
			remote: Record{
				ID: "3", Title: "Remote", UpdatedAt: 200,
				FieldTimes: map[Field]int64{FieldTitle: 700},
			},
			want: Resolved{
				Record: Record{
					ID: "3", Title: "Local", UpdatedAt: 200,
					FieldTimes: map[Field]int64{FieldTitle: 700},
				},
				Resolution: ResolutionMerged,
			},
		},
		{
			name:   "no_shadow_timestamps_keeps_local_fields",
			local:  Record{ID: "4", Title: "Local", UpdatedAt: 100},
			remote: Record{ID: "4", Title: "Remote", UpdatedAt: 300},
			want: Resolved{
				Record:     Record{ID: "4", Title: "Local", UpdatedAt: 300},
				Resolution: ResolutionMerged,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FieldMerge{}.Resolve(tt.local, tt.remote)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSemanticMerge(t *testing.T) {
	tests := []struct {
		name   string
		local  Record
		remote Record
		want   Resolved
	}{
		{
			name:   "done_survives_newer_in_progress",
			local:  Record{ID: "1", Title: "Local", Status: StatusDone, UpdatedAt: 1000},
			remote: Record{ID: "1", Title: "Remote", Status: StatusInProgress, UpdatedAt: 2000},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Remote", Status: StatusDone, UpdatedAt: 2000},
				Resolution: ResolutionSemantic,
			},
		},
		{
			name:   "remote_archived_wins_over_older_local_review",
			local:  Record{ID: "2", Title: "Local", Status: StatusReview, UpdatedAt: 4000},
			remote: Record{ID: "2", Title: "Remote", Status: StatusArchived, UpdatedAt: 1000},
			want: Resolved{
				Record:     Record{ID: "2", Title: "Local", Status: StatusArchived, UpdatedAt: 4000},
				Resolution: ResolutionSemantic,
			},
		},
		{
			name:   "title_follows_timestamp_tie_to_local",
			local:  Record{ID: "3", Title: "Local", Status: StatusPending, UpdatedAt: 1000},
			remote: Record{ID: "3", Title: "Remote", Status: StatusPending, UpdatedAt: 1000},
			want: Resolved{
				Record:     Record{ID: "3", Title: "Local", Status: StatusPending, UpdatedAt: 1000},
				Resolution: ResolutionSemantic,
			},
		},
		{
			name:   "unknown_status_loses_to_known_status",
			local:  Record{ID: "4", Title: "Local", Status: "bogus", UpdatedAt: 1000},
			remote: Record{ID: "4", Title: "Remote", Status: StatusPending, UpdatedAt: 500},
			want: Resolved{
				Record:     Record{ID: "4", Title: "Local", Status: StatusPending, UpdatedAt: 1000},
				Resolution: ResolutionSemantic,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SemanticMerge{}.Resolve(tt.local, tt.remote)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeleteUpdate(t *testing.T) {
	tests := []struct {
		name   string
		local  Record
		remote Record
		want   Resolved
	}{
		{
			name:   "local_delete_beats_remote_update",
			local:  Record{ID: "1", Title: "Local", UpdatedAt: 2000, DeletedAt: 2000},
			remote: Record{ID: "1", Title: "Remote", UpdatedAt: 1000},
			want: Resolved{
				Record:     Record{ID: "1", Title: "Remote", UpdatedAt: 1000, DeletedAt: 2000},
				Resolution: ResolutionDeleted,
			},
		},
		{
			name:   "remote_delete_beats_local_update",
			local:  Record{ID: "2", Title: "Local", UpdatedAt: 5000},
			remote: Record{ID: "2", Title: "Remote", UpdatedAt: 1000, DeletedAt: 1500},
			want: Resolved{
				Record:     Record{ID: "2", Title: "Remote", UpdatedAt: 1000, DeletedAt: 1500},
				Resolution: ResolutionDeleted,
			},
		},
		{
			// The asymmetry is deliberate: remote's fields win the merge
			// but the locally known tombstone timestamp takes precedence.
			name:   "both_deleted_remote_fields_local_tombstone",
			local:  Record{ID: "3", Title: "Local", UpdatedAt: 1500, DeletedAt: 2000},
			remote: Record{ID: "3", Title: "Remote", UpdatedAt: 1000, DeletedAt: 3000},
			want: Resolved{
				Record:     Record{ID: "3", Title: "Remote", UpdatedAt: 1000, DeletedAt: 2000},
				Resolution: ResolutionDeleted,
			},
		},
		{
			name:   "empty_remote_fields_fall_through_to_local",
			local:  Record{ID: "4", Title: "Local", Description: "kept", Status: StatusDone, UpdatedAt: 2000, DeletedAt: 2500},
			remote: Record{ID: "4", UpdatedAt: 1000},
			want: Resolved{
				Record:     Record{ID: "4", Title: "Local", Description: "kept", Status: StatusDone, UpdatedAt: 1000, DeletedAt: 2500},
				Resolution: ResolutionDeleted,
			},
		},
		{
			name:   "neither_deleted_falls_back_to_lww",
			local:  Record{ID: "5", Title: "Local", UpdatedAt: 1000},
			remote: Record{ID: "5", Title: "Remote", UpdatedAt: 2000},
			want: Resolved{
				Record:     Record{ID: "5", Title: "Remote", UpdatedAt: 2000},
				Resolution: ResolutionRemote,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeleteUpdate{}.Resolve(tt.local, tt.remote)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStatusPriority(t *testing.T) {
	order := []Status{StatusPending, StatusInProgress, StatusReview, StatusDone, StatusArchived}
	for i := 1; i < len(order); i++ {
		if order[i].Priority() <= order[i-1].Priority() {
			t.Errorf("expected %s > %s in lifecycle order", order[i], order[i-1])
		}
	}
	if Status("unknown").Priority() != 0 {
		t.Error("unknown status should rank below every known state")
	}
}
