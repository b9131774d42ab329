package metrics

// Level identifies an urgency tier.
type Level string

const (
	LevelLastChance    Level = "last-chance"
	LevelAlmostSoldOut Level = "almost-sold-out"
	LevelPopular       Level = "popular"
	LevelAvailable     Level = "available"
)

// Tier is the scarcity classification shown next to a listing.
type Tier struct {
	Level Level  `json:"level"`
	Label string `json:"label"`
	Pulse bool   `json:"pulse"` // Should visually alert
}

var (
	tierLastChance    = Tier{Level: LevelLastChance, Label: "Last Chance", Pulse: true}
	tierAlmostSoldOut = Tier{Level: LevelAlmostSoldOut, Label: "Almost Sold Out", Pulse: true}
	tierPopular       = Tier{Level: LevelPopular, Label: "Popular"}
	tierAvailable     = Tier{Level: LevelAvailable, Label: "Available"}
)

// UrgencyOf classifies a number of available units. The first matching band wins.
func UrgencyOf(available int) Tier {
	switch {
	case available <= 3:
		return tierLastChance
	case available <= 5:
		return tierAlmostSoldOut
	case available <= 10:
		return tierPopular
	default:
		return tierAvailable
	}
}
