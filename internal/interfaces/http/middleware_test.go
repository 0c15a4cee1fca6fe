package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/gestor-notas/internal/interfaces/http"
	"github.com/jhoicas/gestor-notas/pkg/logger"
)

type httpSpy struct {
	route  string
	status int
}

func (s *httpSpy) ObserveHTTP(_, route string, status int, _ time.Duration) {
	s.route, s.status = route, status
}

func TestRequestLogger_RegistraYPublica(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	spy := &httpSpy{}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(log, spy))
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusTeapot).SendString("x")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "/items/:id", spy.route)
	assert.Equal(t, fiber.StatusTeapot, spy.status)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), buf.String())
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "/items/42", entry["path"])
	assert.EqualValues(t, fiber.StatusTeapot, entry["status"])
}

func TestRequestLogger_RutaInexistenteUsaErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(nil, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, resp)["code"])
}

func TestSerialize_UnaPeticionPorVez(t *testing.T) {
	var inFlight, maxInFlight int32
	app := fiber.New()
	app.Use(apphttp.Serialize())
	app.Get("/", func(c *fiber.Ctx) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return c.SendStatus(fiber.StatusNoContent)
	})

	// Primera petición secuencial: deja construido el árbol de rutas.
	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			if assert.NoError(t, err) {
				assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, atomic.LoadInt32(&maxInFlight))
}
