package roster

import "time"

// Entry is a guild member who opted in to play
type Entry struct {
	GuildID     string    `json:"guild_id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}
