package services

import (
	"context"
	"log"

	"stagekit/internal/models/db_models"
	"stagekit/internal/models/request_models"
	"stagekit/internal/repositories"
	"stagekit/pkg/utils"
)

type LoginResult struct {
	Token    string
	Entitled bool
}

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	Login(ctx context.Context, request request_models.LoginRequest) (*LoginResult, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	engine      EntitlementServiceInterface
}

func NewAccountService(accountRepo repositories.AccountRepository, engine EntitlementServiceInterface) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		engine:      engine,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		StageName:    request.StageName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "performer",
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		return utils.ErrDatabaseError
	}

	// Registration starts the one and only trial this account will ever get.
	if _, _, err := a.engine.Apply(ctx, newAccount.ID, Command{Kind: CmdRegister}); err != nil {
		log.Printf("account: start trial for %s: %v", newAccount.ID, err)
		return err
	}

	return nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*LoginResult, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	entitled := false
	if snap, err := a.engine.CheckAccess(ctx, account.ID); err == nil {
		entitled = snap.Entitled
	}

	return &LoginResult{Token: token, Entitled: entitled}, nil
}
