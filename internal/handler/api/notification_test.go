//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"localscout-booking/internal/handler/api"
	resdto "localscout-booking/internal/handler/dto/response"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/usecase/queries"
	"localscout-booking/tests/common/httptest"
	commandsmock "localscout-booking/tests/mock/commands"
	queriesmock "localscout-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotificationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockCmds    *commandsmock.MockNotificationCommands
	mockQueries *queriesmock.MockNotificationQueries
	userID      uuid.UUID
}

func (s *NotificationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockNotificationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockNotificationQueries(s.mockCtrl)
	h := api.NewNotificationHandler(s.mockCmds, s.mockQueries)
	s.userID = uuid.New()

	auth := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Next()
	}
	s.router.GET("/api/notifications", auth, h.ListUnread)
	s.router.POST("/api/notifications/:id/read", auth, h.MarkRead)
}

func (s *NotificationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}

func (s *NotificationHandlerTestSuite) TestListUnread() {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	views := []*queries.NotificationView{
		{ID: uuid.New(), UserID: s.userID, Message: "Good news!", CreatedAt: created},
	}
	s.mockQueries.EXPECT().ListUnread(gomock.Any(), s.userID).Return(views, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/notifications", nil, "")

	var body []resdto.NotificationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	want := []resdto.NotificationResponse{{ID: views[0].ID, Message: "Good news!", CreatedAt: created}}
	if diff := cmp.Diff(want, body); diff != "" {
		s.T().Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func (s *NotificationHandlerTestSuite) TestMarkRead() {
	id := uuid.New()
	url := "/api/notifications/" + id.String() + "/read"

	s.Run("success: 204", func() {
		s.mockCmds.EXPECT().MarkRead(gomock.Any(), id, s.userID).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 for another user's notification", func() {
		s.mockCmds.EXPECT().MarkRead(gomock.Any(), id, s.userID).
			Return(errs.Mark(errs.New("not recipient"), errs.ErrForbidden))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 400 on invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/notifications/x/read", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}
