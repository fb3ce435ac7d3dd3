package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"stagekit/internal/models/db_models"
	"stagekit/internal/models/request_models"
	"stagekit/internal/models/response_models"
	"stagekit/internal/repositories"
	"stagekit/pkg/utils"
)

type RequestServiceInterface interface {
	// SubmitRequest is the audience path; the access gate has already run.
	SubmitRequest(ctx context.Context, accountID uuid.UUID, req request_models.SubmitRequestRequest) (*response_models.SongRequestResponse, error)
	ListRequests(ctx context.Context, accountID uuid.UUID) ([]response_models.SongRequestResponse, error)
	UpdateRequestStatus(ctx context.Context, accountID, requestID uuid.UUID, status db_models.RequestStatus) error
}

type requestService struct {
	requests repositories.RequestRepository
	songs    repositories.SongRepository
	accounts repositories.AccountRepository
	mail     IMailService
}

func NewRequestService(
	requests repositories.RequestRepository,
	songs repositories.SongRepository,
	accounts repositories.AccountRepository,
	mail IMailService) RequestServiceInterface {
	return &requestService{
		requests: requests,
		songs:    songs,
		accounts: accounts,
		mail:     mail,
	}
}

func (r *requestService) SubmitRequest(ctx context.Context, accountID uuid.UUID, req request_models.SubmitRequestRequest) (*response_models.SongRequestResponse, error) {
	request := &db_models.SongRequest{
		AccountID:     accountID,
		SongTitle:     req.SongTitle,
		RequesterName: req.RequesterName,
		Dedication:    req.Dedication,
		Status:        db_models.RequestStatusNew,
	}

	if req.SongID != "" {
		songID, err := uuid.Parse(req.SongID)
		if err != nil {
			return nil, utils.RecordNotFound
		}
		song, err := r.songs.FindById(ctx, accountID, songID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if song == nil || !song.Active {
			return nil, utils.RecordNotFound
		}
		request.SongID = &song.ID
		request.SongTitle = song.Title
	}

	if err := r.requests.Insert(ctx, request); err != nil {
		return nil, utils.ErrDatabaseError
	}

	r.notifyPerformer(ctx, accountID, request)

	return requestResponse(request), nil
}

func (r *requestService) ListRequests(ctx context.Context, accountID uuid.UUID) ([]response_models.SongRequestResponse, error) {
	requests, err := r.requests.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.SongRequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, *requestResponse(&requests[i]))
	}
	return result, nil
}

func (r *requestService) UpdateRequestStatus(ctx context.Context, accountID, requestID uuid.UUID, status db_models.RequestStatus) error {
	request, err := r.requests.FindById(ctx, accountID, requestID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if request == nil {
		return utils.RecordNotFound
	}

	if err := r.requests.UpdateStatus(ctx, accountID, requestID, status); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// notifyPerformer is best effort; a mail failure never fails the request.
func (r *requestService) notifyPerformer(ctx context.Context, accountID uuid.UUID, request *db_models.SongRequest) {
	if r.mail == nil {
		return
	}

	account, err := r.accounts.FindById(ctx, accountID)
	if err != nil || account == nil {
		return
	}

	if err := r.mail.SendRequestNotification(account.Email, account.StageName, request.SongTitle, request.RequesterName); err != nil {
		log.Printf("requests: notify %s: %v", account.Email, err)
	}
}

func requestResponse(request *db_models.SongRequest) *response_models.SongRequestResponse {
	return &response_models.SongRequestResponse{
		ID:            request.ID,
		SongID:        request.SongID,
		SongTitle:     request.SongTitle,
		RequesterName: request.RequesterName,
		Dedication:    request.Dedication,
		Status:        string(request.Status),
		CreatedAt:     request.CreatedAt,
	}
}
