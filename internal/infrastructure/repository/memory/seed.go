package memory

import (
	"time"

	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
)

const (
	ClubIDStyx       = "club-fc-styx"
	MatchIDStyxFive  = "match-styx-five-a-side"
	SeedCaptainID    = "user-lea"
	seedCreatedAtRaw = "2025-09-01T18:00:00Z"
)

func seedTime() time.Time {
	t, _ := time.Parse(time.RFC3339, seedCreatedAtRaw)
	return t
}

func SeedClubs() []club.Club {
	return []club.Club{
		{
			ID:        ClubIDStyx,
			Name:      "FC Styx",
			CreatedBy: SeedCaptainID,
			CreatedAt: seedTime(),
		},
	}
}

func SeedClubRosters() []club.Roster {
	joined := seedTime()
	return []club.Roster{
		{
			ClubID:    ClubIDStyx,
			CaptainID: SeedCaptainID,
			Version:   1,
			Members: []club.Member{
				{ID: SeedCaptainID, DisplayName: "Léa", Position: club.PositionCentreMid, JoinedAt: joined},
				{ID: "user-karim", DisplayName: "Karim", Position: club.PositionStriker, JoinedAt: joined},
				{ID: "user-tom", DisplayName: "Tom", Position: club.PositionGoalkeeper, JoinedAt: joined},
				{ID: "user-ines", DisplayName: "Inès", Position: club.PositionSubstitute, JoinedAt: joined},
				{ID: "user-hugo", DisplayName: "Hugo", JoinedAt: joined},
			},
		},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:         MatchIDStyxFive,
			ClubID:     ClubIDStyx,
			Title:      "Five a side",
			Location:   "Stade Charléty",
			KickoffAt:  seedTime().Add(7 * 24 * time.Hour),
			MaxPlayers: 10,
			CreatedBy:  SeedCaptainID,
			CreatedAt:  seedTime(),
		},
	}
}
