package roster

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/othership-bot/internal/domain/roster"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

func validateGuild(guildID string) error {
	if guildID == "" {
		return apperr.InvalidArgument("guild ID is required")
	}
	return nil
}

func validateIDs(guildID, userID string) error {
	if err := validateGuild(guildID); err != nil {
		return err
	}
	if userID == "" {
		return apperr.InvalidArgument("user ID is required")
	}
	return nil
}

func notOnRoster(guildID, userID string) error {
	return apperr.NotFound("you are not on the roster").
		WithMeta("guild_id", guildID).
		WithMeta("user_id", userID)
}

func sortByJoined(entries []*roster.Entry) {
	slices.SortStableFunc(entries, func(a, b *roster.Entry) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})
}
