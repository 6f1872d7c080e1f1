package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jmagar/movieboard/internal/api/middleware"
	"github.com/jmagar/movieboard/internal/catalog"
	"github.com/jmagar/movieboard/internal/database"
	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/search"
	"github.com/jmagar/movieboard/internal/services"
)

const testSecret = "test-secret"

const fixtureCSV = `title,primary_genre,release_date,popularity
Heat,Action,1995-12-15,41.5
Speed,Action,1994-06-10,20
Die Hard,Action,1988-07-15,35
Fargo,Drama,1996-03-08,18.5
Titanic,Drama,1997-12-19,50
Mad Max: Fury Road,Action,2015-05-15,60
Untitled Project,Drama,unknown,10
`

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB initializes an in-memory database with the default admin account
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Initialize(database.MemoryPath)
	require.NoError(t, err)
	require.NoError(t, database.EnsureAdmin(db, "admin", "admin123"))
	t.Cleanup(func() { db.Close() })
	return db
}

type testEnv struct {
	db        *sql.DB
	path      string
	store     *dataset.Store
	catalog   *catalog.Manager
	index     *search.Index
	jobs      *models.JobManager
	analytics *services.AnalyticsService
	reload    *services.DatasetReloadService
}

// setupTestEnv loads fixtureCSV and mirrors it the way startup does
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	path := filepath.Join(t.TempDir(), "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))

	idx, err := search.NewIndex()
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	env := &testEnv{
		db:      db,
		path:    path,
		store:   dataset.NewStore(path),
		catalog: catalog.NewManager(db),
		index:   idx,
		jobs:    models.NewJobManager(),
	}
	env.analytics = services.NewAnalyticsService(env.store, []int{5, 10, 20, 50}, 10)
	env.reload = services.NewDatasetReloadService(db, env.jobs, env.store, env.catalog, env.index)

	_, err = env.reload.ReloadNow(context.Background(), services.TriggerStartup)
	require.NoError(t, err)
	return env
}

func authHeader(t *testing.T, role string) string {
	t.Helper()
	token, _, err := middleware.GenerateToken(1, "admin", role, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router *gin.Engine, method, path string, body interface{}, header string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
