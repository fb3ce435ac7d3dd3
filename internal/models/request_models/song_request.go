package request_models

type UpsertSongRequest struct {
	Title  string   `json:"title" binding:"required"`
	Artist string   `json:"artist"`
	Tags   []string `json:"tags"`
	Active *bool    `json:"active"`
}

type SubmitRequestRequest struct {
	SongID        string `json:"song_id"`
	SongTitle     string `json:"song_title"`
	RequesterName string `json:"requester_name"`
	Dedication    string `json:"dedication"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new played dismissed"`
}

type UpsertPlaylistRequest struct {
	Name    string   `json:"name" binding:"required"`
	SongIDs []string `json:"song_ids"`
}
