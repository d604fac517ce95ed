package mock

import (
	"context"

	"github.com/harborline/shipdesk"
)

var _ shipdesk.UserService = (*UserService)(nil)

// UserService is a mock implementation of shipdesk.UserService.
type UserService struct {
	CreateUserFn   func(ctx context.Context, user *shipdesk.User) error
	FindUserByIDFn func(ctx context.Context, id int) (*shipdesk.User, error)
	FindUsersFn    func(ctx context.Context) ([]*shipdesk.User, error)
	DeleteUserFn   func(ctx context.Context, id int) error
}

func (s *UserService) CreateUser(ctx context.Context, user *shipdesk.User) error {
	return s.CreateUserFn(ctx, user)
}

func (s *UserService) FindUserByID(ctx context.Context, id int) (*shipdesk.User, error) {
	return s.FindUserByIDFn(ctx, id)
}

func (s *UserService) FindUsers(ctx context.Context) ([]*shipdesk.User, error) {
	return s.FindUsersFn(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.DeleteUserFn(ctx, id)
}
