package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cityride/internal/models"
	"cityride/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubReportService struct {
	services.ReportService
	sent []*models.AdminNotice
}

func (s *stubReportService) SendNotice(ctx context.Context, adminID, recipientID primitive.ObjectID, message string) (*models.AdminNotice, error) {
	notice := &models.AdminNotice{
		ID:          primitive.NewObjectID(),
		RecipientID: recipientID,
		AdminID:     adminID,
		Message:     message,
	}
	s.sent = append(s.sent, notice)
	return notice, nil
}

func newNoticeRouter(adminID primitive.ObjectID, reports services.ReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAdminHandler(nil, nil, reports)

	router := gin.New()
	router.POST("/notices", func(c *gin.Context) {
		c.Set("user_id", adminID)
	}, handler.SendNotice)
	return router
}

func TestAdminSendNotice(t *testing.T) {
	adminID := primitive.NewObjectID()
	recipientID := primitive.NewObjectID()
	stub := &stubReportService{}
	router := newNoticeRouter(adminID, stub)

	body := `{"recipient_id":"` + recipientID.Hex() + `","message":"Please update your documents"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notices", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, stub.sent, 1)
	assert.Equal(t, recipientID, stub.sent[0].RecipientID)
	assert.Equal(t, adminID, stub.sent[0].AdminID)
}

func TestAdminSendNoticeRejectsMalformedRecipient(t *testing.T) {
	stub := &stubReportService{}
	router := newNoticeRouter(primitive.NewObjectID(), stub)

	body := `{"recipient_id":"not-a-hex-id","message":"hello"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notices", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "recipient_id")
	assert.Empty(t, stub.sent)
}
