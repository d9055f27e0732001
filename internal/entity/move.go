package entity

import "time"

// Move is one half-turn of a game. Moves are append-only: once recorded
// they are never updated or deleted.
type Move struct {
	GameID    string    `json:"game_id"`
	Position  int       `json:"position"`
	Player    Cell      `json:"player"`
	CreatedAt time.Time `json:"created_at"`
}
