package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"stagekit/internal/models/request_models"
	"stagekit/internal/services"
	"stagekit/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
}

func NewCatalogController(catalogService services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

func ownerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return uuid.Nil, false
	}
	return id, true
}

// CreateSong godoc
// @Summary Add a song to the catalog
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body request_models.UpsertSongRequest true "Song payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /songs [post]
func (cc *CatalogController) CreateSong(c *gin.Context) {
	accountID, ok := ownerID(c)
	if !ok {
		return
	}

	var req request_models.UpsertSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	song, err := cc.catalogService.CreateSong(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, song, "Song added")
}

// UpdateSong godoc
// @Summary Update a catalog song
// @Tags Catalog
// @Security BearerAuth
// @Router /songs/{songId} [put]
func (cc *CatalogController) UpdateSong(c *gin.Context) {
	accountID, ok := ownerID(c)
	if !ok {
		return
	}

	songID, err := uuid.Parse(c.Param("songId"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Song not found")
		return
	}

	var req request_models.UpsertSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	song, err := cc.catalogService.UpdateSong(c.Request.Context(), accountID, songID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, song, "Song updated")
}

// DeleteSong godoc
// @Summary Remove a song from the catalog
// @Tags Catalog
// @Security BearerAuth
// @Router /songs/{songId} [delete]
func (cc *CatalogController) DeleteSong(c *gin.Context) {
	accountID, ok := ownerID(c)
	if !ok {
		return
	}

	songID, err := uuid.Parse(c.Param("songId"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Song not found")
		return
	}

	if err := cc.catalogService.DeleteSong(c.Request.Context(), accountID, songID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"ok": true}, "Song removed")
}

// ListSongs godoc
// @Summary List the performer's full catalog
// @Tags Catalog
// @Security BearerAuth
// @Router /songs [get]
func (cc *CatalogController) ListSongs(c *gin.Context) {
	accountID, ok := ownerID(c)
	if !ok {
		return
	}

	songs, err := cc.catalogService.ListSongs(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, songs, "")
}

// ListAudienceSongs godoc
// @Summary Public list of a performer's active songs
// @Tags Audience
// @Router /p/{accountId}/songs [get]
func (cc *CatalogController) ListAudienceSongs(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Unknown performer page")
		return
	}

	songs, err := cc.catalogService.ListAudienceSongs(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, songs, "")
}

// CreatePlaylist godoc
// @Summary Create a playlist
// @Tags Catalog
// @Security BearerAuth
// @Router /playlists [post]
func (cc *CatalogController) CreatePlaylist(c *gin.Context) {
	accountID, ok := ownerID(c)
	if !ok {
		return
	}

	var req request_models.UpsertPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	playlist, err := cc.catalogService.CreatePlaylist(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, playlist, "Playlist created")
}

// ListPlaylists godoc
// @Summary List the performer's playlists
// @Tags Catalog
// @Security BearerAuth
// @Router /playlists [get]
func (cc *CatalogController) ListPlaylists(c *gin.Context) {
	accountID, ok := ownerID(c)
	if !ok {
		return
	}

	playlists, err := cc.catalogService.ListPlaylists(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, playlists, "")
}

// DeletePlaylist godoc
// @Summary Delete a playlist
// @Tags Catalog
// @Security BearerAuth
// @Router /playlists/{playlistId} [delete]
func (cc *CatalogController) DeletePlaylist(c *gin.Context) {
	accountID, ok := ownerID(c)
	if !ok {
		return
	}

	playlistID, err := uuid.Parse(c.Param("playlistId"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Playlist not found")
		return
	}

	if err := cc.catalogService.DeletePlaylist(c.Request.Context(), accountID, playlistID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"ok": true}, "Playlist deleted")
}
