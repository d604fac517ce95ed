package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/harborline/shipdesk"
	"github.com/harborline/shipdesk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Users(t *testing.T) {
	t.Parallel()

	t.Run("lists users", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.UserService.(*mock.UserService).FindUsersFn = func(context.Context) ([]*shipdesk.User, error) {
			return []*shipdesk.User{{ID: 1, Username: "jmorgan", Email: "a@example.com", CreatedAt: now}}, nil
		}

		rec := serve(s, http.MethodGet, "/users", "")

		require.Equal(t, http.StatusOK, rec.Code)
		users := decode[[]map[string]any](t, rec)
		require.Len(t, users, 1)
		assert.Equal(t, "jmorgan", users[0]["username"])
		assert.Equal(t, "2024-03-15T10:00:00Z", users[0]["created_at"])
	})

	t.Run("creates user", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.UserService.(*mock.UserService).CreateUserFn = func(_ context.Context, user *shipdesk.User) error {
			assert.Zero(t, user.ID, "client supplied IDs are ignored")
			user.ID = 3
			user.CreatedAt = now
			return nil
		}

		rec := serve(s, http.MethodPost, "/users", `{"id":99,"username":"rlee","email":"r@example.com"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		user := decode[shipdesk.User](t, rec)
		assert.Equal(t, 3, user.ID)
		assert.Equal(t, "rlee", user.Username)
	})

	t.Run("duplicate user is a bad request", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.UserService.(*mock.UserService).CreateUserFn = func(context.Context, *shipdesk.User) error {
			return shipdesk.Errorf(shipdesk.ECONFLICT, "Username already exists")
		}

		rec := serve(s, http.MethodPost, "/users", `{"username":"rlee","email":"r@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Username already exists", errorMessage(t, rec))
	})

	t.Run("views user", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.UserService.(*mock.UserService).FindUserByIDFn = func(_ context.Context, id int) (*shipdesk.User, error) {
			return &shipdesk.User{ID: id, Username: "rlee"}, nil
		}

		rec := serve(s, http.MethodGet, "/users/4", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 4, decode[shipdesk.User](t, rec).ID)
	})

	t.Run("deletes user", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.UserService.(*mock.UserService).DeleteUserFn = func(_ context.Context, id int) error {
			assert.Equal(t, 4, id)
			return nil
		}

		rec := serve(s, http.MethodDelete, "/users/4", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "User deleted successfully", decode[map[string]string](t, rec)["message"])
	})
}
