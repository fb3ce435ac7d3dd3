package response_models

import "github.com/google/uuid"

type SongResponse struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Artist string    `json:"artist"`
	Tags   []string  `json:"tags"`
	Active bool      `json:"active"`
}

type SongRequestResponse struct {
	ID            uuid.UUID  `json:"id"`
	SongID        *uuid.UUID `json:"song_id,omitempty"`
	SongTitle     string     `json:"song_title"`
	RequesterName string     `json:"requester_name"`
	Dedication    string     `json:"dedication"`
	Status        string     `json:"status"`
	CreatedAt     int64      `json:"created_at"`
}

type PlaylistResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	SongIDs []string  `json:"song_ids"`
}
