package repository

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/Behnamfe76/directory-console/internal/domain"
	"github.com/Behnamfe76/directory-console/internal/observability"
	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

const testToken = "session-token"

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeAPI) record(c *fiber.Ctx) {
	var body map[string]any
	if len(c.Body()) > 0 {
		_ = c.BodyParser(&body)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{
		Method: c.Method(),
		Path:   c.Path(),
		Auth:   c.Get(fiber.HeaderAuthorization),
		Body:   body,
	})
}

func (f *fakeAPI) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// startAPI serves routes on an in-memory listener and returns a client wired
// to it.
func startAPI(t *testing.T, routes func(app *fiber.App, api *fakeAPI)) (*Client, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{}
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(func(c *fiber.Ctx) error {
		api.record(c)
		return c.Next()
	})
	routes(app, api)

	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	client := NewClient(ClientConfig{
		BaseURL: "http://records.test/api/",
		Timeout: 2 * time.Second,
		Dial:    func(string) (net.Conn, error) { return ln.Dial() },
	}, nil, observability.NewMetrics())
	return client, api
}

func TestDepartmentListDecodesEnvelope(t *testing.T) {
	client, api := startAPI(t, func(app *fiber.App, _ *fakeAPI) {
		app.Get("/api/departments", func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(`{"success":true,"data":[{"id":3,"name":"Eng","description":"Builds","createdAt":"2024-01-01","updatedAt":"2024-01-02"},{"id":"x1","name":"Ops","description":"Runs"}]}`)
		})
	})
	repo := NewDepartmentRepository(client, StaticToken(testToken))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.Department{ID: "3", Name: "Eng", Description: "Builds", CreatedAt: "2024-01-01", UpdatedAt: "2024-01-02"}, items[0])
	assert.Equal(t, domain.ID("x1"), items[1].ID)

	req := api.last(t)
	assert.Equal(t, fiber.MethodGet, req.Method)
	assert.Equal(t, "/api/departments", req.Path)
	assert.Equal(t, "Bearer "+testToken, req.Auth)
}

func TestDepartmentCreateSendsFields(t *testing.T) {
	client, api := startAPI(t, func(app *fiber.App, _ *fakeAPI) {
		app.Post("/api/departments", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"success": true,
				"data":    fiber.Map{"id": 2, "name": "Sales", "description": "d", "createdAt": "T", "updatedAt": "T"},
			})
		})
	})
	repo := NewDepartmentRepository(client, StaticToken(testToken))

	dept, err := repo.Create(context.Background(), domain.DepartmentFields{Name: "Sales", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, domain.Department{ID: "2", Name: "Sales", Description: "d", CreatedAt: "T", UpdatedAt: "T"}, dept)
	assert.Equal(t, map[string]any{"name": "Sales", "description": "d"}, api.last(t).Body)
}

func TestDepartmentUpdateAndDeleteAddressRecord(t *testing.T) {
	client, api := startAPI(t, func(app *fiber.App, _ *fakeAPI) {
		app.Put("/api/departments/:id", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": c.Params("id"), "name": "Renamed"}})
		})
		app.Delete("/api/departments/:id", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusNoContent)
		})
	})
	repo := NewDepartmentRepository(client, StaticToken(testToken))

	dept, err := repo.Update(context.Background(), "7", domain.DepartmentFields{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("7"), dept.ID)
	assert.Equal(t, fiber.MethodPut, api.last(t).Method)

	require.NoError(t, repo.Delete(context.Background(), "7"))
	req := api.last(t)
	assert.Equal(t, fiber.MethodDelete, req.Method)
	assert.Equal(t, "/api/departments/7", req.Path)
}

func TestRejectedEnvelope(t *testing.T) {
	client, _ := startAPI(t, func(app *fiber.App, _ *fakeAPI) {
		app.Get("/api/departments", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": false, "data": nil})
		})
		app.Delete("/api/departments/:id", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": false, "message": "department has employees"})
		})
	})
	repo := NewDepartmentRepository(client, StaticToken(testToken))

	_, err := repo.List(context.Background())
	require.True(t, apperrors.HasCode(err, apperrors.CodeRejected))
	assert.Equal(t, "API returned success: false", apperrors.Message(err, ""))

	err = repo.Delete(context.Background(), "1")
	require.True(t, apperrors.HasCode(err, apperrors.CodeRejected))
	assert.Equal(t, "department has employees", apperrors.Message(err, ""))
}

func TestHTTPFailureIsTransportError(t *testing.T) {
	client, _ := startAPI(t, func(app *fiber.App, _ *fakeAPI) {
		app.Get("/api/departments", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false})
		})
	})
	repo := NewDepartmentRepository(client, StaticToken(testToken))

	_, err := repo.List(context.Background())
	require.True(t, apperrors.HasCode(err, apperrors.CodeTransport))
	assert.Equal(t, "request failed with status code 500", apperrors.Message(err, ""))
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	client, _ := startAPI(t, func(app *fiber.App, _ *fakeAPI) {
		app.Get("/api/departments", func(c *fiber.Ctx) error {
			return c.SendString(`{"success":true,"data":[{"id":`)
		})
		app.Post("/api/departments", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": true})
		})
	})
	repo := NewDepartmentRepository(client, StaticToken(testToken))

	_, err := repo.List(context.Background())
	require.True(t, apperrors.HasCode(err, apperrors.CodeDecode))

	_, err = repo.Create(context.Background(), domain.DepartmentFields{Name: "x"})
	require.True(t, apperrors.HasCode(err, apperrors.CodeDecode))
}

func TestCancelledContextSkipsRequest(t *testing.T) {
	client, api := startAPI(t, func(app *fiber.App, _ *fakeAPI) {})
	repo := NewDepartmentRepository(client, StaticToken(testToken))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	require.True(t, apperrors.HasCode(err, apperrors.CodeTransport))
	assert.Zero(t, api.count())
}

func TestUnreachableAPI(t *testing.T) {
	client := NewClient(ClientConfig{
		BaseURL: "http://records.test",
		Timeout: time.Second,
		Dial: func(string) (net.Conn, error) {
			return nil, &net.OpError{Op: "dial", Net: "tcp", Err: assert.AnError}
		},
	}, nil, nil)
	repo := NewDepartmentRepository(client, StaticToken(testToken))

	_, err := repo.List(context.Background())
	require.True(t, apperrors.HasCode(err, apperrors.CodeTransport))
	assert.NotEmpty(t, apperrors.Message(err, ""))
}

func TestEmployeeWritesNumericDepartmentID(t *testing.T) {
	client, api := startAPI(t, func(app *fiber.App, _ *fakeAPI) {
		app.Post("/api/employees", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
				"id": 11, "firstName": "Ada", "lastName": "Lovelace", "departmentId": 4,
				"department": fiber.Map{"id": 4, "name": "Eng"},
			}})
		})
		app.Get("/api/employees", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": true, "data": []fiber.Map{}})
		})
	})
	repo := NewEmployeeRepository(client, StaticToken(testToken))

	employee, err := repo.Create(context.Background(), domain.EmployeeFields{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		DepartmentID: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("11"), employee.ID)
	assert.Equal(t, domain.ID("4"), employee.DepartmentID)
	assert.Equal(t, "Eng", employee.DepartmentName())

	body := api.last(t).Body
	assert.Equal(t, float64(4), body["departmentId"])
	assert.Equal(t, "Ada", body["firstName"])

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMissingTokenOmitsHeader(t *testing.T) {
	client, api := startAPI(t, func(app *fiber.App, _ *fakeAPI) {
		app.Get("/api/employees", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": true, "data": []fiber.Map{}})
		})
	})
	repo := NewEmployeeRepository(client, StaticToken(""))

	_, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, api.last(t).Auth)
}
