package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestActorFromHeaders(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		ctx, _ := newTestContext(t, map[string]string{
			"X-Actor-Id":   id.String(),
			"X-Actor-Role": "RESTAURANT_MANAGER",
		})

		actor, err := actorFromHeaders(ctx)
		require.NoError(t, err)
		assert.Equal(t, id, actor.ID)
		assert.Equal(t, kernel.RoleRestaurantManager, actor.Role)
	})

	t.Run("missing id", func(t *testing.T) {
		ctx, _ := newTestContext(t, map[string]string{"X-Actor-Role": "DELIVERY_PARTNER"})
		_, err := actorFromHeaders(ctx)
		require.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		ctx, _ := newTestContext(t, map[string]string{
			"X-Actor-Id":   id.String(),
			"X-Actor-Role": "ADMIN",
		})
		_, err := actorFromHeaders(ctx)
		require.Error(t, err)
	})
}

func TestDomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"required value", errs.NewValueIsRequiredError("items"), http.StatusBadRequest},
		{"invalid value", errs.NewValueIsInvalidError("prepTime"), http.StatusBadRequest},
		{"unauthorized", errs.NewUnauthorizedError("id", "not the restaurant"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("orderID", "x"), http.StatusNotFound},
		{"invalid state", errs.NewInvalidStateError("already assigned"), http.StatusConflict},
		{"invalid transition", errs.NewInvalidTransitionError("PREP", "DELIVERED"), http.StatusConflict},
		{"partner unavailable", errs.NewPartnerUnavailableError("id", "busy"), http.StatusConflict},
		{"conflict", errs.NewConflictError("partnerID", "x"), http.StatusConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newTestContext(t, nil)
			require.NoError(t, domainError(ctx, tc.err))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
