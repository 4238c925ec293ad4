package analytics

type MilestoneID string

const (
	MilestoneFirstClick MilestoneID = "first_click"
	MilestoneTen        MilestoneID = "ten_clicks"
	MilestoneHundred    MilestoneID = "hundred_clicks"
	MilestoneThousand   MilestoneID = "thousand_clicks"
	MilestoneRapid      MilestoneID = "rapid_fire"
	MilestoneSpotless   MilestoneID = "spotless"
)

type Milestone struct {
	ID          MilestoneID
	Name        string
	Description string
}

var AllMilestones = map[MilestoneID]Milestone{
	MilestoneFirstClick: {ID: MilestoneFirstClick, Name: "First Coat", Description: "First background change"},
	MilestoneTen:        {ID: MilestoneTen, Name: "Redecorator", Description: "10 clicks on one page"},
	MilestoneHundred:    {ID: MilestoneHundred, Name: "Chameleon", Description: "100 clicks on one page"},
	MilestoneThousand:   {ID: MilestoneThousand, Name: "Kaleidoscope", Description: "1000 clicks on one page"},
	MilestoneRapid:      {ID: MilestoneRapid, Name: "Strobe", Description: "60+ clicks per minute over at least 10 clicks"},
	MilestoneSpotless:   {ID: MilestoneSpotless, Name: "Spotless", Description: "100+ clicks without a failed change"},
}

// EvaluateMilestones returns the milestones a page has reached, in order.
func EvaluateMilestones(stats PageStats) []Milestone {
	var earned []Milestone
	applied := stats.Clicks - stats.Failed

	for _, step := range []struct {
		n  int
		id MilestoneID
	}{
		{1, MilestoneFirstClick},
		{10, MilestoneTen},
		{100, MilestoneHundred},
		{1000, MilestoneThousand},
	} {
		if applied >= step.n {
			earned = append(earned, AllMilestones[step.id])
		}
	}

	if stats.Clicks >= 10 && stats.ClicksPerMinute >= 60 {
		earned = append(earned, AllMilestones[MilestoneRapid])
	}

	if stats.Clicks >= 100 && stats.Failed == 0 {
		earned = append(earned, AllMilestones[MilestoneSpotless])
	}

	return earned
}
