package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repurposely/repurposely/app/models"
	"github.com/repurposely/repurposely/internal/pkg/quota"
	"github.com/repurposely/repurposely/internal/pkg/repurpose"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (r *stubUserRepo) Create(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) UpdatePlan(id string, plan string) error {
	if user, ok := r.users[id]; ok {
		user.SubscriptionPlan = plan
	}
	return nil
}

type stubUsageRepo struct {
	logs []models.UsageLog
}

func (r *stubUsageRepo) Create(log *models.UsageLog) error {
	r.logs = append(r.logs, *log)
	return nil
}

func (r *stubUsageRepo) SumCountSince(userID, usageType string, since time.Time) (int64, error) {
	var total int64
	for _, l := range r.logs {
		if l.UserID == userID && l.Type == usageType && !l.CreatedAt.Before(since) {
			total += int64(l.Count)
		}
	}
	return total, nil
}

type stubGenerator struct{}

func (stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return "rewritten", nil
}

func newRepurposeTestApp(users *stubUserRepo, usage *stubUsageRepo) *fiber.App {
	InitializeRepurposeController(
		quota.NewService(users, usage),
		repurpose.NewServiceWithGenerator(stubGenerator{}),
	)

	app := fiber.New()
	app.Post("/repurpose/repurpose", HandleRepurpose)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestHandleRepurpose_Success(t *testing.T) {
	users := &stubUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "u1@example.com", SubscriptionPlan: models.PlanFree},
	}}
	usage := &stubUsageRepo{}
	app := newRepurposeTestApp(users, usage)

	status, body := postJSON(t, app, "/repurpose/repurpose", map[string]any{
		"user_id":   "u1",
		"content":   "my article",
		"platforms": []string{"twitter", "bogus"},
		"tone":      "casual",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "rewritten", body["twitter"])
	assert.NotContains(t, body, "bogus")
	// One billable action was logged.
	require.Len(t, usage.logs, 1)
	assert.Equal(t, models.UsageTypeRepurpose, usage.logs[0].Type)
}

func TestHandleRepurpose_QuotaExceeded(t *testing.T) {
	users := &stubUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "u1@example.com", SubscriptionPlan: models.PlanFree},
	}}
	usage := &stubUsageRepo{logs: []models.UsageLog{
		{UserID: "u1", Type: models.UsageTypeRepurpose, Count: 1, CreatedAt: time.Now()},
		{UserID: "u1", Type: models.UsageTypeRepurpose, Count: 1, CreatedAt: time.Now()},
	}}
	app := newRepurposeTestApp(users, usage)

	status, body := postJSON(t, app, "/repurpose/repurpose", map[string]any{
		"user_id":   "u1",
		"content":   "my article",
		"platforms": []string{"twitter"},
		"tone":      "casual",
	})

	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "Usage limit exceeded", body["detail"])
	// The blocked request must not consume quota.
	assert.Len(t, usage.logs, 2)
}

func TestHandleRepurpose_UnknownUser(t *testing.T) {
	app := newRepurposeTestApp(&stubUserRepo{users: map[string]*models.User{}}, &stubUsageRepo{})

	status, body := postJSON(t, app, "/repurpose/repurpose", map[string]any{
		"user_id":   "ghost",
		"content":   "my article",
		"platforms": []string{"twitter"},
	})

	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "Usage limit exceeded", body["detail"])
}

func TestHandleRepurpose_MissingFields(t *testing.T) {
	app := newRepurposeTestApp(&stubUserRepo{users: map[string]*models.User{}}, &stubUsageRepo{})

	status, body := postJSON(t, app, "/repurpose/repurpose", map[string]any{
		"platforms": []string{"twitter"},
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, body["detail"])
}
