package core

// MergeProfiles applies an explicit profile update: every non-empty incoming
// field replaces the existing value, empty incoming fields leave the
// existing value untouched. Pure; neither argument is mutated.
func MergeProfiles(existing, incoming Profile) Profile {
	merged := existing
	if incoming.Avatar != "" {
		merged.Avatar = incoming.Avatar
	}
	if incoming.Bio != "" {
		merged.Bio = incoming.Bio
	}
	if incoming.Location != "" {
		merged.Location = incoming.Location
	}
	if incoming.Website != "" {
		merged.Website = incoming.Website
	}
	return merged
}
