package response

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliverycontext "github.com/gvr1220/user-management/internal/delivery/context"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	deliverycontext.BindRequest(c, "req-1", slog.New(slog.NewTextHandler(io.Discard, nil)))

	return c, rec
}

func TestPaginated(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Paginated(c, []string{"a"}, &Pagination{Total: 3, Offset: 1, Limit: 1}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":["a"],"meta":{"request_id":"req-1","pagination":{"total":3,"offset":1,"limit":1}}}`, rec.Body.String())
}

func TestError_HidesDetailsForAuthAndServerErrors(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		c, rec := newContext()
		require.NoError(t, Error(c, status, "CODE", "message", "secret"))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Nil(t, body.Error.Details)
	}
}

func TestHandleAppError(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, HandleAppError(c, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("limit failed on 'lte'"), "search")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "limit failed on 'lte'")

	c, _ = newContext()
	err := HandleAppError(c, domainerrors.NewDatabaseExecuteError(errors.New("boom"), "failed"))
	assert.ErrorIs(t, err, domainerrors.ErrStoreFailure)

	c, _ = newContext()
	assert.Error(t, HandleAppError(c, errors.New("unknown")))
}
