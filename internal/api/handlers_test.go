package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack-backend/internal/auth"
	"fittrack-backend/internal/database"
	"fittrack-backend/internal/models"
)

type stubWorkouts struct {
	lastFilter models.WorkoutFilter
	listOut    []models.Workout
	byID       map[int64]*models.Workout
	owners     map[int64]string
	deleted    []int64
	createErr  error
	createdFor string
	created    *models.CreateWorkoutRequest
}

func newStubWorkouts() *stubWorkouts {
	return &stubWorkouts{
		byID:   make(map[int64]*models.Workout),
		owners: make(map[int64]string),
	}
}

func (s *stubWorkouts) List(_ context.Context, filter models.WorkoutFilter) ([]models.Workout, error) {
	s.lastFilter = filter
	return s.listOut, nil
}

func (s *stubWorkouts) ListByUsername(_ context.Context, username string) ([]models.Workout, error) {
	var out []models.Workout
	for id, w := range s.byID {
		if s.owners[id] == username {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (s *stubWorkouts) Recent(_ context.Context, username string, n int) ([]models.Workout, error) {
	out, _ := s.ListByUsername(context.Background(), username)
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *stubWorkouts) GetByID(_ context.Context, id int64) (*models.Workout, error) {
	w, ok := s.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return w, nil
}

func (s *stubWorkouts) Create(_ context.Context, username string, req models.CreateWorkoutRequest) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.createdFor = username
	s.created = &req
	return 1, nil
}

func (s *stubWorkouts) OwnedBy(_ context.Context, id int64, username string) (bool, error) {
	return s.owners[id] == username, nil
}

func (s *stubWorkouts) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type memUsers struct {
	byUsername map[string]*models.User
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	if _, ok := m.byUsername[user.Username]; ok {
		return database.ErrDuplicate
	}
	user.ID = int64(len(m.byUsername) + 1)
	m.byUsername[user.Username] = user
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return nil, database.ErrNotFound
	}
	return user, nil
}

type memSessions struct {
	byToken map[string]*models.Session
	nextID  int64
}

func (m *memSessions) Create(_ context.Context, username string, ttl time.Duration) (string, *models.Session, error) {
	m.nextID++
	token := fmt.Sprintf("token-%d", m.nextID)
	session := &models.Session{
		ID:        m.nextID,
		Username:  username,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	m.byToken[token] = session
	return token, session, nil
}

func (m *memSessions) GetByToken(_ context.Context, token string) (*models.Session, error) {
	session, ok := m.byToken[token]
	if !ok {
		return nil, database.ErrSessionNotFound
	}
	return session, nil
}

func (m *memSessions) DeleteByToken(_ context.Context, token string) error {
	if _, ok := m.byToken[token]; !ok {
		return database.ErrSessionNotFound
	}
	delete(m.byToken, token)
	return nil
}

type nopAudit struct{}

func (nopAudit) Record(context.Context, string, models.AuditStatus, string) error { return nil }

func newTestHandlers(t *testing.T, workouts *stubWorkouts) (*Handlers, *auth.Service) {
	t.Helper()
	svc := auth.NewService(
		&memUsers{byUsername: make(map[string]*models.User)},
		&memSessions{byToken: make(map[string]*models.Session)},
		nopAudit{},
		time.Hour,
		zerolog.Nop(),
	)
	return NewHandlers(workouts, nil, nil, nil, nil, svc, zerolog.Nop()), svc
}

func withSession(c echo.Context, username string) {
	c.Set(auth.ContextKeySession, &models.Session{Username: username})
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestDeleteWorkoutByOwner(t *testing.T) {
	workouts := newStubWorkouts()
	workouts.byID[7] = &models.Workout{ID: 7, Name: "Morning Run"}
	workouts.owners[7] = "alice99"
	h, _ := newTestHandlers(t, workouts)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/workouts/delete/7", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	withSession(c, "alice99")

	require.NoError(t, h.deleteWorkout(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/workouts/list", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []int64{7}, workouts.deleted)
}

func TestDeleteWorkoutForbiddenForNonOwner(t *testing.T) {
	workouts := newStubWorkouts()
	workouts.byID[7] = &models.Workout{ID: 7, Name: "Morning Run"}
	workouts.owners[7] = "alice99"
	h, _ := newTestHandlers(t, workouts)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/workouts/delete/7", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	withSession(c, "mallory")

	require.NoError(t, h.deleteWorkout(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "not allowed to delete this workout")

	// The row is untouched.
	assert.Empty(t, workouts.deleted)
	assert.Contains(t, workouts.byID, int64(7))
}

func TestDeleteWorkoutMissingIsNotFound(t *testing.T) {
	h, _ := newTestHandlers(t, newStubWorkouts())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/workouts/delete/99", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	withSession(c, "alice99")

	require.NoError(t, h.deleteWorkout(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddWorkoutValidationFailure(t *testing.T) {
	workouts := newStubWorkouts()
	h, _ := newTestHandlers(t, workouts)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest("/workouts/add", url.Values{
		"name":     {""},
		"duration": {"-5"},
	}), rec)
	withSession(c, "alice99")

	require.NoError(t, h.addWorkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name")
	assert.Nil(t, workouts.created)
}

func TestAddWorkoutOwnerComesFromSession(t *testing.T) {
	workouts := newStubWorkouts()
	h, _ := newTestHandlers(t, workouts)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest("/workouts/add", url.Values{
		"name":         {"Evening Swim"},
		"workout_type": {"3"},
		"duration":     {"30"},
		"workout_date": {"2024-02-10"},
	}), rec)
	withSession(c, "alice99")

	require.NoError(t, h.addWorkout(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/workouts/list", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "alice99", workouts.createdFor)
	require.NotNil(t, workouts.created)
	assert.Equal(t, "Evening Swim", workouts.created.Name)
}

func TestAddWorkoutUserRowGone(t *testing.T) {
	workouts := newStubWorkouts()
	workouts.createErr = database.ErrNotFound
	h, _ := newTestHandlers(t, workouts)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest("/workouts/add", url.Values{
		"name":         {"Evening Swim"},
		"workout_type": {"3"},
		"workout_date": {"2024-02-10"},
	}), rec)
	withSession(c, "ghost")

	require.NoError(t, h.addWorkout(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
}

func TestListWorkoutsPassesFilterThrough(t *testing.T) {
	workouts := newStubWorkouts()
	h, _ := newTestHandlers(t, workouts)

	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/workouts?search=run&type=2&mindate=2024-01-01&maxdate=2024-01-31&sort=calories", nil)
	c := e.NewContext(req, rec)

	require.NoError(t, h.listWorkouts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.WorkoutFilter{
		Search:  "run",
		TypeID:  2,
		MinDate: "2024-01-01",
		MaxDate: "2024-01-31",
		Sort:    "calories",
	}, workouts.lastFilter)

	// An empty result serialises as [] rather than null.
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestListWorkoutsRejectsNonNumericType(t *testing.T) {
	h, _ := newTestHandlers(t, newStubWorkouts())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/workouts?type=abc", nil), rec)

	require.NoError(t, h.listWorkouts(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandlerSetsCookieAndRedirects(t *testing.T) {
	h, svc := newTestHandlers(t, newStubWorkouts())
	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username:  "alice99",
		Email:     "a@x.com",
		Password:  "password1",
		FirstName: "Alice",
		LastName:  "A",
	})
	require.NoError(t, err)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest("/users/login", url.Values{
		"username": {"alice99"},
		"password": {"password1"},
	}), rec)

	require.NoError(t, h.loginHandler(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/workouts/dashboard", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestGetWorkoutDetailNamesOwner(t *testing.T) {
	workouts := newStubWorkouts()
	workouts.byID[7] = &models.Workout{
		ID:       7,
		Name:     "Morning Run",
		TypeName: "Running",
		Username: "alice99",
	}
	h, _ := newTestHandlers(t, workouts)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/workouts/7", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.getWorkout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice99"`)
}

func TestLoginSuccessResetsRateLimiter(t *testing.T) {
	h, svc := newTestHandlers(t, newStubWorkouts())
	h.limiter = auth.NewLoginLimiter(1, time.Minute, time.Minute)
	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username:  "alice99",
		Email:     "a@x.com",
		Password:  "password1",
		FirstName: "Alice",
		LastName:  "A",
	})
	require.NoError(t, err)

	e := echo.New()

	// The limiter's single-attempt budget is consumed, then the
	// successful login clears it for the same client.
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		c := e.NewContext(formRequest("/users/login", url.Values{
			"username": {"alice99"},
			"password": {"password1"},
		}), rec)
		require.True(t, h.limiter.Allow(c.RealIP()), "attempt %d throttled", i+1)
		require.NoError(t, h.loginHandler(c))
		require.Equal(t, http.StatusFound, rec.Code)
	}
}

func TestLoginHandlerGenericDenial(t *testing.T) {
	h, _ := newTestHandlers(t, newStubWorkouts())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest("/users/login", url.Values{
		"username": {"nobody"},
		"password": {"whatever"},
	}), rec)

	require.NoError(t, h.loginHandler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "login failed")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginHandlerRequiresBothFields(t *testing.T) {
	h, _ := newTestHandlers(t, newStubWorkouts())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest("/users/login", url.Values{
		"username": {"alice99"},
	}), rec)

	require.NoError(t, h.loginHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHandlerGreetsNewUser(t *testing.T) {
	h, _ := newTestHandlers(t, newStubWorkouts())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest("/users/register", url.Values{
		"username": {"alice99"},
		"email":    {"a@x.com"},
		"password": {"password1"},
		"first":    {"Alice"},
		"last":     {"Smith"},
	}), rec)

	require.NoError(t, h.registerHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello Alice Smith, you are now registered")
}

func TestRegisterHandlerFieldErrors(t *testing.T) {
	h, _ := newTestHandlers(t, newStubWorkouts())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest("/users/register", url.Values{
		"username": {"abc"},
		"email":    {"not-an-email"},
		"password": {"short"},
	}), rec)

	require.NoError(t, h.registerHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username")
	assert.Contains(t, rec.Body.String(), "password")
}

func TestExportCSVIsAnAttachment(t *testing.T) {
	workouts := newStubWorkouts()
	workouts.byID[1] = &models.Workout{
		ID:          1,
		Name:        "Morning Run",
		TypeName:    "Running",
		WorkoutDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
	workouts.owners[1] = "alice99"
	h, _ := newTestHandlers(t, workouts)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/workouts/export/csv", nil), rec)
	withSession(c, "alice99")

	require.NoError(t, h.exportCSV(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="workouts-export.csv"`,
		rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Name,Type,"))
	assert.Contains(t, rec.Body.String(), "Morning Run")
}
