package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	imgsvc "gearshare-backend/internal/application/images"
	"gearshare-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memBlobStore struct {
	objects map[string][]byte
	public  map[string]bool
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}, public: map[string]bool{}}
}

func (m *memBlobStore) Upload(_ context.Context, path string, data []byte, _ string) (string, error) {
	m.objects[path] = data
	return "http://blob.local/listing-images/" + path, nil
}

func (m *memBlobStore) SetPublic(_ context.Context, path string) error {
	m.public[path] = true
	return nil
}

func (m *memBlobStore) Delete(_ context.Context, path string) error {
	delete(m.objects, path)
	return nil
}

func setupImagesTest(t *testing.T) (*fiber.App, *gorm.DB, *memBlobStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}))
	store := newMemBlobStore()
	h := &Handlers{Service: &imgsvc.Service{DB: db, Blob: store}}

	app := fiber.New()
	app.Post("/listing/new_listing_image/listing_id=:listing_id", h.NewListingImage)
	app.Delete("/listing/delete_listing_image/path=*", h.DeleteListingImage)
	return app, db, store
}

func multipartImage(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile("userfile", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestNewListingImage_UnknownListing(t *testing.T) {
	app, _, store := setupImagesTest(t)

	body, contentType := multipartImage(t, "front.jpg", []byte("jpegdata"))
	req := httptest.NewRequest("POST", "/listing/new_listing_image/listing_id=77", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "Listing does not exist!", result["message"])
	assert.Empty(t, store.objects)
}

func TestNewListingImage_MissingFile(t *testing.T) {
	app, db, _ := setupImagesTest(t)
	require.NoError(t, db.Create(&domain.Listing{Status: domain.StatusAvailable, Name: "Kayak", OwnerID: 1, CategoryID: 2}).Error)

	req := httptest.NewRequest("POST", "/listing/new_listing_image/listing_id=1", http.NoBody)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestNewListingImage_Success(t *testing.T) {
	app, db, store := setupImagesTest(t)
	listing := &domain.Listing{Status: domain.StatusAvailable, Name: "Kayak", OwnerID: 1, CategoryID: 2}
	require.NoError(t, db.Create(listing).Error)

	body, contentType := multipartImage(t, "front.jpg", []byte("jpegdata"))
	req := httptest.NewRequest("POST", fmt.Sprintf("/listing/new_listing_image/listing_id=%d", listing.ID), body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	wantPath := fmt.Sprintf("%d/front.jpg", listing.ID)
	assert.Equal(t, wantPath, result["image_path"])
	assert.NotEmpty(t, result["image_media_link"])

	assert.Equal(t, []byte("jpegdata"), store.objects[wantPath])
	assert.True(t, store.public[wantPath])
}

func TestDeleteListingImage_NeverCreatedPath(t *testing.T) {
	app, _, _ := setupImagesTest(t)

	req := httptest.NewRequest("DELETE", "/listing/delete_listing_image/path=42/ghost.jpg", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "42/ghost.jpg", result["picture_id deleted"])
	assert.NotEmpty(t, result["date_deleted"])
}

func TestDeleteListingImage_RemovesObject(t *testing.T) {
	app, db, store := setupImagesTest(t)
	listing := &domain.Listing{Status: domain.StatusAvailable, Name: "Kayak", OwnerID: 1, CategoryID: 2}
	require.NoError(t, db.Create(listing).Error)

	body, contentType := multipartImage(t, "front.jpg", []byte("jpegdata"))
	up := httptest.NewRequest("POST", fmt.Sprintf("/listing/new_listing_image/listing_id=%d", listing.ID), body)
	up.Header.Set("Content-Type", contentType)
	resp, err := app.Test(up)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	path := fmt.Sprintf("%d/front.jpg", listing.ID)
	del := httptest.NewRequest("DELETE", "/listing/delete_listing_image/path="+path, nil)
	resp, err = app.Test(del)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotContains(t, store.objects, path)
}
