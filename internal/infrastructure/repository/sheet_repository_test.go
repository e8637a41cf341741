package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docregistry/internal/config"
	"docregistry/internal/domain/entity"
	domainrepo "docregistry/internal/domain/repository"
	"docregistry/internal/infrastructure/script"
)

func newTestSheetRepository(t *testing.T, handler http.HandlerFunc) (domainrepo.SheetRepository, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Script: config.ScriptConfig{
			URL:            srv.URL,
			FolderID:       "folder-123",
			MasterSheet:    "Master",
			DocumentsSheet: "Documents",
			Timeout:        5 * time.Second,
		},
	}

	client := script.NewClient(cfg, nil, zap.NewNop())
	return NewSheetRepository(cfg, client, zap.NewNop()), srv
}

func TestSheetRepository_FetchMaster(t *testing.T) {
	repo, _ := newTestSheetRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "fetch", r.URL.Query().Get("action"))
		assert.Equal(t, "Master", r.URL.Query().Get("sheet"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": [][]string{
				{"Document Type", "Category"},
				{"Identity", "Personal"},
			},
		})
	})

	rows, err := repo.FetchMaster(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Identity", "Personal"}, rows[1])
}

func TestSheetRepository_FetchMaster_ScriptFailure(t *testing.T) {
	repo, _ := newTestSheetRepository(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "sheet not found",
		})
	})

	_, err := repo.FetchMaster(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet not found")
}

func TestSheetRepository_NextSerials(t *testing.T) {
	repo, _ := newTestSheetRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "getNextSerials", r.URL.Query().Get("action"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"nextSerials": map[string]int{
				"personal": 5,
				"company":  10,
				"director": 2,
			},
		})
	})

	counters, err := repo.NextSerials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &entity.SerialCounters{Personal: 5, Company: 10, Director: 2}, counters)
}

func TestSheetRepository_UpdateSerials(t *testing.T) {
	var got url.Values
	repo, _ := newTestSheetRepository(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})

	err := repo.UpdateSerials(context.Background(), &entity.SerialCounters{Personal: 6, Company: 11, Director: 2})
	require.NoError(t, err)
	assert.Equal(t, "updateSerials", got.Get("action"))
	assert.Equal(t, "6", got.Get("personal"))
	assert.Equal(t, "11", got.Get("company"))
	assert.Equal(t, "2", got.Get("director"))
}

func TestSheetRepository_UploadFile(t *testing.T) {
	content := []byte("fake image bytes")

	repo, _ := newTestSheetRepository(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		assert.Equal(t, "uploadImage", r.FormValue("action"))
		assert.Equal(t, "folder-123", r.FormValue("folderId"))
		assert.Equal(t, "scan.jpg", r.FormValue("fileName"))
		assert.Equal(t, "image/jpeg", r.FormValue("mimeType"))
		assert.Equal(t, base64.StdEncoding.EncodeToString(content), r.FormValue("base64Data"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"fileUrl": "https://drive.google.com/file/d/abc",
		})
	})

	url, err := repo.UploadFile(context.Background(), entity.AttachedFile{
		Name:     "scan.jpg",
		Size:     int64(len(content)),
		MimeType: "image/jpeg",
		Content:  content,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/file/d/abc", url)
}

func TestSheetRepository_UploadFile_MissingURLIsFailure(t *testing.T) {
	repo, _ := newTestSheetRepository(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})

	_, err := repo.UploadFile(context.Background(), entity.AttachedFile{Name: "scan.jpg"})
	require.Error(t, err)
}

func TestSheetRepository_InsertRow(t *testing.T) {
	var gotSheet string
	var gotRow []string

	repo, _ := newTestSheetRepository(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "insert", r.FormValue("action"))
		gotSheet = r.FormValue("sheetName")
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("rowData")), &gotRow))

		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})

	row := entity.BuildSubmittedRow("05/03/2024 14:30", "PN-005",
		entity.DocumentDraft{Name: "Passport", TypeTag: "Identity", Category: entity.CategoryPersonal},
		[]string{"https://drive/a"},
	)

	err := repo.InsertRow(context.Background(), row)
	require.NoError(t, err)
	assert.Equal(t, "Documents", gotSheet)
	require.Len(t, gotRow, entity.RowBaseFields)
	assert.Equal(t, "PN-005", gotRow[entity.ColSerial])
	assert.Equal(t, "https://drive/a", gotRow[entity.ColImage1])
}

func TestSheetRepository_InsertRow_HTTPError(t *testing.T) {
	repo, _ := newTestSheetRepository(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	err := repo.InsertRow(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
