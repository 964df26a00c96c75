package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/cache"
	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/database/memstore"
	"github.com/anjiri1684/study_platform/handlers"
	"github.com/anjiri1684/study_platform/models"
	"github.com/anjiri1684/study_platform/notifications"
	"github.com/anjiri1684/study_platform/payments"
	"github.com/anjiri1684/study_platform/services"
)

const (
	adminEmail   = "admin@study.io"
	tutorEmail   = "tutor@study.io"
	studentEmail = "student@study.io"
)

type fakeIntents struct{}

func (fakeIntents) CreateIntent(_ context.Context, amount float64, currency string) (string, error) {
	return fmt.Sprintf("pi_%d_%s_secret", payments.MinorUnits(amount), currency), nil
}

type testEnv struct {
	app    *fiber.App
	store  *database.Store
	tokens *services.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	log := zap.NewNop()
	tokens := services.NewTokenService("test-secret", time.Hour)
	uploads, err := services.NewUploader("")
	require.NoError(t, err)

	h := &handlers.Handler{
		Store:    store,
		Tokens:   tokens,
		Roles:    services.NewRoleService(store.Users, cache.Nop{}, log),
		Uploads:  uploads,
		Intents:  fakeIntents{},
		PayPal:   payments.NewPayPalProvider("", "", ""),
		Mailer:   notifications.Nop{},
		Log:      log,
		Currency: "usd",
	}

	ctx := context.Background()
	for email, role := range map[string]models.Role{
		adminEmail:   models.RoleAdmin,
		tutorEmail:   models.RoleTutor,
		studentEmail: models.RoleStudent,
	} {
		_, err := store.Users.InsertIfAbsent(ctx, &models.User{Email: email, Role: role})
		require.NoError(t, err)
	}

	return &testEnv{app: NewApp(h), store: store, tokens: tokens}
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := e.tokens.Issue(email)
	require.NoError(t, err)
	return tok
}

// do sends a JSON request as the given caller ("" for anonymous) and returns
// the status and the raw body.
func (e *testEnv) do(t *testing.T, method, path, caller string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("Authorization", "Bearer "+e.token(t, caller))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func (e *testEnv) insertSession(t *testing.T, title string, status models.SessionStatus) string {
	t.Helper()
	s := models.StudySession{Title: title, Status: status, Tutor: models.Tutor{Email: tutorEmail}}
	_, err := e.store.Sessions.Insert(context.Background(), &s)
	require.NoError(t, err)
	return s.ID
}

func TestTokenVerification(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, http.MethodGet, "/notes/"+studentEmail, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"Unauthorized access"}`, string(body))

	for name, header := range map[string]string{
		"garbage":   "Bearer not.a.token",
		"no scheme": "something",
		"wrong key": "Bearer " + mustIssue(t, services.NewTokenService("other", time.Hour), studentEmail),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/notes/"+studentEmail, nil)
			req.Header.Set("Authorization", header)
			resp, err := e.app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestExpiredTokenIsForbidden(t *testing.T) {
	e := newTestEnv(t)
	expired := services.NewTokenService("test-secret", -time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/notes/"+studentEmail, nil)
	req.Header.Set("Authorization", "Bearer "+mustIssue(t, expired, studentEmail))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func mustIssue(t *testing.T, s *services.TokenService, email string) string {
	t.Helper()
	tok, err := s.Issue(email)
	require.NoError(t, err)
	return tok
}

func TestIssueToken(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, http.MethodPost, "/jwt", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"Email is required"}`, string(body))

	status, body = e.do(t, http.MethodPost, "/jwt", "", map[string]string{"email": studentEmail})
	require.Equal(t, http.StatusOK, status)
	tok := decode[map[string]string](t, body)["token"]
	claims, err := e.tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, studentEmail, claims.Email)
}

func TestAdminOnlyRoutes(t *testing.T) {
	e := newTestEnv(t)

	for _, caller := range []string{studentEmail, tutorEmail, "ghost@study.io"} {
		status, _ := e.do(t, http.MethodGet, "/users", caller, nil)
		assert.Equal(t, http.StatusForbidden, status, caller)
	}

	status, body := e.do(t, http.MethodGet, "/users", adminEmail, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.User](t, body), 3)

	status, body = e.do(t, http.MethodGet, "/users?search=TUTOR", adminEmail, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.User](t, body), 1)
}

func TestTutorOnlyRoutes(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, http.MethodPost, "/create-study", studentEmail, map[string]any{"title": "Algebra"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := e.do(t, http.MethodPost, "/create-study", tutorEmail, map[string]any{
		"title":          "Algebra",
		"status":         "Approved",
		"classStartDate": "2024-06-01",
		"fee":            0,
		"tutor":          map[string]string{"name": "Ada", "email": "someone-else@study.io"},
	})
	require.Equal(t, http.StatusOK, status, string(body))
	res := decode[models.InsertResult](t, body)
	require.NotNil(t, res.InsertedID)

	s, err := e.store.Sessions.FindByID(context.Background(), *res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, s.Status)
	assert.Equal(t, tutorEmail, s.Tutor.Email)
	assert.Equal(t, "Ada", s.Tutor.Name)
	assert.Equal(t, 2024, s.ClassStartDate.Year())
}

func TestRegisterUserTwice(t *testing.T) {
	e := newTestEnv(t)
	user := map[string]string{"email": "a@x.com", "name": "A"}

	status, body := e.do(t, http.MethodPost, "/users", "", user)
	require.Equal(t, http.StatusOK, status)
	first := decode[models.InsertResult](t, body)
	require.NotNil(t, first.InsertedID)

	status, body = e.do(t, http.MethodPost, "/users", "", user)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"user already exist in database","insertedId":null}`, string(body))

	users, err := e.store.Users.List(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, models.RoleStudent, users[0].Role)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	e := newTestEnv(t)
	status, _ := e.do(t, http.MethodPost, "/users", "", map[string]string{"email": "b@x.com", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestApprovedSessionsOnly(t *testing.T) {
	e := newTestEnv(t)
	e.insertSession(t, "one", models.StatusApproved)
	e.insertSession(t, "two", models.StatusPending)
	e.insertSession(t, "three", models.StatusRejected)
	e.insertSession(t, "four", models.StatusApproved)

	status, body := e.do(t, http.MethodGet, "/all-approved-study-session", "", nil)
	require.Equal(t, http.StatusOK, status)
	sessions := decode[[]models.StudySession](t, body)
	require.Len(t, sessions, 2)
	for _, s := range sessions {
		assert.Equal(t, models.StatusApproved, s.Status)
	}

	status, body = e.do(t, http.MethodGet, "/all-approved-study-session?limit=1", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.StudySession](t, body), 1)
}

func TestApproveSession(t *testing.T) {
	e := newTestEnv(t)
	id := e.insertSession(t, "Physics", models.StatusPending)

	status, body := e.do(t, http.MethodPatch, "/approve-session/"+id, adminEmail, map[string]any{"fee": 25})
	require.Equal(t, http.StatusOK, status)
	res := decode[models.UpdateResult](t, body)
	assert.Equal(t, int64(1), res.MatchedCount)

	s, err := e.store.Sessions.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, s.Status)
	assert.Equal(t, 25.0, s.Fee)

	status, body = e.do(t, http.MethodPatch, "/approve-session/"+database.NewID(), adminEmail, map[string]any{"fee": 25})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), decode[models.UpdateResult](t, body).MatchedCount)

	// already approved: not a legal transition any more
	status, body = e.do(t, http.MethodPatch, "/approve-session/"+id, adminEmail, map[string]any{})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), decode[models.UpdateResult](t, body).MatchedCount)

	status, _ = e.do(t, http.MethodPatch, "/approve-session/"+id, tutorEmail, map[string]any{})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestModerationWithoutBody(t *testing.T) {
	e := newTestEnv(t)
	approve := e.insertSession(t, "Statistics", models.StatusPending)
	reject := e.insertSession(t, "Poetry", models.StatusPending)

	for _, withType := range []bool{false, true} {
		req := httptest.NewRequest(http.MethodPatch, "/approve-session/"+approve, nil)
		if withType {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Authorization", "Bearer "+e.token(t, adminEmail))
		resp, err := e.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	s, err := e.store.Sessions.FindByID(context.Background(), approve)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, s.Status)
	assert.Zero(t, s.Fee)

	status, body := e.do(t, http.MethodPatch, "/reject-session/"+reject, adminEmail, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[models.UpdateResult](t, body).MatchedCount)

	status, _ = e.do(t, http.MethodPatch, "/approve-session/"+reject, adminEmail, map[string]any{"fee": -5})
	assert.Equal(t, http.StatusBadRequest, status, "a sent body is still validated")
}

func TestRejectAndResubmit(t *testing.T) {
	e := newTestEnv(t)
	id := e.insertSession(t, "Chemistry", models.StatusPending)

	status, body := e.do(t, http.MethodPatch, "/reject-session/"+id, adminEmail,
		map[string]string{"reason": "incomplete", "feedback": "add a syllabus"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[models.UpdateResult](t, body).MatchedCount)

	status, _ = e.do(t, http.MethodPatch, "/change-status/"+id, tutorEmail, map[string]string{"status": "Approved"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = e.do(t, http.MethodPatch, "/change-status/"+id, tutorEmail, map[string]string{"status": "Pending"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[models.UpdateResult](t, body).MatchedCount)

	s, err := e.store.Sessions.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, s.Status)
	assert.Equal(t, "incomplete", s.Reason)
}

func TestSessionMaterialsView(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	status, body := e.do(t, http.MethodGet, "/session-materials/"+studentEmail, studentEmail, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"No materials found for this student"}`, string(body))

	sessionID := e.insertSession(t, "Biology", models.StatusApproved)
	for _, title := range []string{"Slides", "Worksheet"} {
		_, err := e.store.Materials.Insert(ctx, &models.Material{Title: title, SessionID: sessionID, TutorEmail: tutorEmail})
		require.NoError(t, err)
	}

	status, _ = e.do(t, http.MethodPost, "/book-session", studentEmail, map[string]string{"sessionId": sessionID})
	require.Equal(t, http.StatusOK, status)

	status, body = e.do(t, http.MethodGet, "/session-materials/"+studentEmail, studentEmail, nil)
	require.Equal(t, http.StatusOK, status)
	rows := decode[[]models.SessionMaterial](t, body)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, sessionID, r.SessionID)
		assert.Equal(t, "Biology", r.SessionTitle)
	}
}

func TestBookSession(t *testing.T) {
	e := newTestEnv(t)
	open := e.insertSession(t, "History", models.StatusApproved)
	pending := e.insertSession(t, "Art", models.StatusPending)

	status, body := e.do(t, http.MethodPost, "/book-session", studentEmail, map[string]string{"sessionId": open})
	require.Equal(t, http.StatusOK, status)
	res := decode[models.InsertResult](t, body)
	require.NotNil(t, res.InsertedID)

	status, body = e.do(t, http.MethodPost, "/book-session", studentEmail, map[string]string{"sessionId": open})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"session already booked","insertedId":null}`, string(body))

	status, _ = e.do(t, http.MethodPost, "/book-session", studentEmail, map[string]string{"sessionId": pending})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = e.do(t, http.MethodPost, "/book-session", studentEmail, map[string]string{"sessionId": database.NewID()})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = e.do(t, http.MethodGet, "/booked-session/"+*res.InsertedID, studentEmail, nil)
	require.Equal(t, http.StatusOK, status)
	b := decode[models.Booking](t, body)
	assert.Equal(t, tutorEmail, b.TutorEmail)
	assert.Equal(t, "History", b.SessionTitle)

	status, body = e.do(t, http.MethodGet, "/book-session/"+studentEmail, studentEmail, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Booking](t, body), 1)
}

func TestSessionDetailsWithReviews(t *testing.T) {
	e := newTestEnv(t)
	id := e.insertSession(t, "Geometry", models.StatusApproved)

	status, _ := e.do(t, http.MethodGet, "/study-session/"+database.NewID(), "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = e.do(t, http.MethodPost, "/reviews", studentEmail, map[string]any{"sessionId": id, "rating": 6})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = e.do(t, http.MethodPost, "/reviews", studentEmail, map[string]any{"sessionId": id, "rating": 5, "comment": "great"})
	require.Equal(t, http.StatusOK, status)
	status, _ = e.do(t, http.MethodPost, "/review", studentEmail, map[string]any{"sessionId": id, "rating": 3})
	require.Equal(t, http.StatusOK, status)

	status, body := e.do(t, http.MethodGet, "/study-session/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	details := decode[models.SessionDetails](t, body)
	assert.Equal(t, "Geometry", details.Title)
	require.Len(t, details.Reviews, 1)
	assert.Equal(t, studentEmail, details.Reviews[0].StudentEmail)

	status, body = e.do(t, http.MethodGet, "/review/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Review](t, body), 1)
}

func TestMaterialOwnership(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	_, err := e.store.Users.InsertIfAbsent(ctx, &models.User{Email: "other@study.io", Role: models.RoleTutor})
	require.NoError(t, err)

	status, body := e.do(t, http.MethodPost, "/upload-material", tutorEmail,
		map[string]string{"title": "Notes", "sessionId": "s-1", "link": "https://drive.example.com/x"})
	require.Equal(t, http.StatusOK, status, string(body))
	id := *decode[models.InsertResult](t, body).InsertedID

	status, body = e.do(t, http.MethodGet, "/all-materials/"+tutorEmail, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Material](t, body), 1)

	status, _ = e.do(t, http.MethodGet, "/material/"+id, "other@study.io", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = e.do(t, http.MethodPut, "/update-material/"+id, "other@study.io", map[string]string{"title": "Mine"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), decode[models.UpdateResult](t, body).MatchedCount)

	status, body = e.do(t, http.MethodPut, "/update-material/"+id, tutorEmail, map[string]string{"title": "Lecture notes"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[models.UpdateResult](t, body).ModifiedCount)

	status, body = e.do(t, http.MethodDelete, "/delete-material/"+id, adminEmail, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[models.DeleteResult](t, body).DeletedCount)

	status, _ = e.do(t, http.MethodGet, "/material/"+id, tutorEmail, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNotes(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, http.MethodPost, "/note", studentEmail, map[string]string{"title": "Exam prep", "description": "ch. 1-3"})
	require.Equal(t, http.StatusOK, status)
	id := *decode[models.InsertResult](t, body).InsertedID

	status, _ = e.do(t, http.MethodGet, "/notes/"+studentEmail, tutorEmail, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = e.do(t, http.MethodGet, "/notes/"+studentEmail, studentEmail, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Note](t, body), 1)

	status, body = e.do(t, http.MethodPatch, "/note/"+id, tutorEmail, map[string]string{"title": "hijack"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), decode[models.UpdateResult](t, body).MatchedCount)

	status, body = e.do(t, http.MethodPatch, "/note/"+id, studentEmail, map[string]string{"title": "Final prep"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[models.UpdateResult](t, body).MatchedCount)

	status, body = e.do(t, http.MethodGet, "/note/"+id, studentEmail, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Final prep", decode[models.Note](t, body).Title)

	status, body = e.do(t, http.MethodDelete, "/note/"+id, studentEmail, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[models.DeleteResult](t, body).DeletedCount)
}

func TestPayments(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, http.MethodPost, "/create-payment-intent", studentEmail, map[string]any{"price": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := e.do(t, http.MethodPost, "/create-payment-intent", studentEmail, map[string]any{"price": 19.99})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"clientSecret":"pi_1999_usd_secret"}`, string(body))

	status, _ = e.do(t, http.MethodPost, "/paypal/create-order", studentEmail, map[string]any{"price": 10})
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = e.do(t, http.MethodPost, "/payments", studentEmail,
		map[string]any{"sessionId": "s-1", "amount": 19.99, "provider": "stripe", "providerRef": "pi_1"})
	require.Equal(t, http.StatusOK, status)

	status, _ = e.do(t, http.MethodGet, "/payments/"+studentEmail, tutorEmail, nil)
	assert.Equal(t, http.StatusForbidden, status)

	for _, caller := range []string{studentEmail, adminEmail} {
		status, body = e.do(t, http.MethodGet, "/payments/"+studentEmail, caller, nil)
		require.Equal(t, http.StatusOK, status)
		list := decode[[]models.Payment](t, body)
		require.Len(t, list, 1)
		assert.Equal(t, "usd", list[0].Currency)
		assert.Equal(t, "succeeded", list[0].Status)
	}
}

func TestRoleChange(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, http.MethodGet, "/user/role/"+studentEmail, studentEmail, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"role":"student"}`, string(body))

	status, _ = e.do(t, http.MethodPatch, "/user/role/"+studentEmail, adminEmail, map[string]string{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = e.do(t, http.MethodPatch, "/user/role/"+studentEmail, adminEmail, map[string]string{"role": "tutor"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[models.UpdateResult](t, body).ModifiedCount)

	status, _ = e.do(t, http.MethodGet, "/create-all-study/"+studentEmail, studentEmail, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = e.do(t, http.MethodGet, "/tutors", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.User](t, body), 2)
}

func TestRootAndHealth(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Collaborative Study Platform")

	status, body = e.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	status, _ = e.do(t, http.MethodGet, "/uploads/signature", studentEmail, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
