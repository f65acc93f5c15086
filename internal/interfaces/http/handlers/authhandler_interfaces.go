package handlers

import (
	"context"

	staffdto "f3manager/internal/application/staff/dto"
	staffUsecases "f3manager/internal/application/staff/usecases"
	"f3manager/internal/shared/authorization"
)

// Use case interfaces for AuthHandler

type loginUseCase interface {
	Execute(ctx context.Context, cmd staffUsecases.LoginCommand) (*staffUsecases.LoginResult, error)
}

type registerStaffUseCase interface {
	Execute(ctx context.Context, cmd staffUsecases.RegisterStaffCommand) (*staffdto.StaffDTO, error)
}

type getStaffUseCase interface {
	Me(ctx context.Context, actor authorization.Actor) (*staffdto.StaffDTO, error)
	List(ctx context.Context, actor authorization.Actor) ([]*staffdto.StaffDTO, error)
}
