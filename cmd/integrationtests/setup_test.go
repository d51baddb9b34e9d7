package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	auction "auction-marketplace/internal/auctionService"
	"auction-marketplace/internal/auth"
	bidding "auction-marketplace/internal/biddingService"
	model "auction-marketplace/internal/models"
	profile "auction-marketplace/internal/profileService"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/server"
	"auction-marketplace/internal/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
	userPassword  = "user-password"
)

// TestApp is the full HTTP stack over a private in-memory database
type TestApp struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Repo    *repository.GormRepo
	Objects *memoryBucket

	adminToken string
}

// memoryBucket stands in for the S3 API
type memoryBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *memoryBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

// SetupTestApp wires every service the way main does, seeding the admin account.
func SetupTestApp(t *testing.T) *TestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.Open(repository.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repo := repository.NewGormRepo(db)

	tokens, err := auth.NewManager("integration-test-secret", time.Hour)
	require.NoError(t, err)

	profiles := profile.NewProfileService(repo, tokens)
	require.NoError(t, profiles.EnsureAdmin(context.Background(), adminEmail, adminPassword))

	bucket := &memoryBucket{objects: map[string][]byte{}}
	store, err := storage.NewObjectStore(bucket, "auctions", "https://cdn.example.com")
	require.NoError(t, err)

	router := server.SetupRouter(server.Dependencies{
		Auctions: auction.NewAuctionService(repo, auction.IncrementEvaluator{}),
		Bidding:  bidding.NewBiddingService(repo),
		Profiles: profiles,
		Uploads:  storage.NewUploader(store, 1<<20),
		Tokens:   tokens,
		Accounts: repo,
	})
	return &TestApp{Router: router, DB: db, Repo: repo, Objects: bucket}
}

// Login returns a bearer token for the account
func (a *TestApp) Login(t *testing.T, email, password string) string {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, a.Router, http.MethodPost, "/api/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return resp["data"].(map[string]any)["token"].(string)
}

// AdminToken logs in as the seeded admin once per app
func (a *TestApp) AdminToken(t *testing.T) string {
	if a.adminToken == "" {
		a.adminToken = a.Login(t, adminEmail, adminPassword)
	}
	return a.adminToken
}

// CreateUser adds an account through the admin API and logs it in
func (a *TestApp) CreateUser(t *testing.T, email, role string) (userID, token string) {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, a.Router, http.MethodPost, "/api/add-user", a.AdminToken(t), map[string]any{
		"email":    email,
		"password": userPassword,
		"fname":    "Test",
		"lname":    role,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp["data"].(map[string]any)["userId"].(string), a.Login(t, email, userPassword)
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// vaseAuction is the canonical forward english auction with a fixed increment of 10
func vaseAuction() map[string]any {
	return map[string]any{
		"auctionType":       model.AuctionTypeForward,
		"auctionSubType":    "english",
		"productName":       "Vase",
		"startPrice":        100,
		"bidIncrementType":  model.IncrementFixed,
		"bidIncrementRules": []map[string]any{{"incrementValue": 10}},
		"launchType":        model.LaunchImmediate,
		"auctionDuration":   map[string]any{"days": 1},
	}
}

// CreateAuction posts the auction and returns its id
func (a *TestApp) CreateAuction(t *testing.T, token string, body map[string]any) string {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, a.Router, http.MethodPost, "/api/auctions", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp["data"].(map[string]any)["auction"].(map[string]any)["id"].(string)
}

// Approve approves the auction as admin
func (a *TestApp) Approve(t *testing.T, auctionID string) {
	t.Helper()
	_, w := ExecuteRequestAndParse(t, a.Router, http.MethodPut, "/api/auctions/"+auctionID, a.AdminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// Bid places a bid and returns the response status
func (a *TestApp) Bid(t *testing.T, token, auctionID string, amount float64) int {
	t.Helper()
	_, w := ExecuteRequestAndParse(t, a.Router, http.MethodPost, "/api/auctions/"+auctionID+"/bids", token, map[string]any{"amount": amount})
	return w.Code
}

// Listing fetches the stored auction through the API
func (a *TestApp) Listing(t *testing.T, auctionID string) map[string]any {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, a.Router, http.MethodGet, "/api/listings/"+auctionID, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return resp["data"].(map[string]any)
}

func parseTime(t *testing.T, v any) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, v.(string))
	require.NoError(t, err)
	return ts
}
