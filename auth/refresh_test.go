package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestRefreshRotationFailureDoesNotIssueTokens(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("rotation write fails", func(mt *mtest.T) {
		orig := db.UserCollection
		db.UserCollection = mt.Coll
		defer func() { db.UserCollection = orig }()

		user := models.User{UserID: "u1", Username: "alice", Role: models.RoleUser}
		access, err := generateAccessToken(user)
		if err != nil {
			mt.Fatalf("access token: %v", err)
		}
		refresh, err := generateRefreshToken()
		if err != nil {
			mt.Fatalf("refresh token: %v", err)
		}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, "tripandtreat.users", mtest.FirstBatch, bson.D{
				{Key: "userid", Value: "u1"},
				{Key: "username", Value: "alice"},
				{Key: "role", Value: models.RoleUser},
				{Key: "refresh_token", Value: hashToken(refresh)},
				{Key: "refresh_expiry", Value: time.Now().Add(time.Hour)},
			}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11601, Message: "write failed"}),
		)

		body, _ := json.Marshal(map[string]string{"refreshToken": refresh})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/token/refresh", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()

		refreshTokenHandler(rec, req)

		if rec.Code != http.StatusInternalServerError {
			mt.Fatalf("expected 500 when the rotation write fails, got %d: %s", rec.Code, rec.Body.String())
		}
		if bytes.Contains(rec.Body.Bytes(), []byte(`"token"`)) && bytes.Contains(rec.Body.Bytes(), []byte(`"refreshToken"`)) {
			mt.Fatalf("no new tokens may be issued on a failed rotation: %s", rec.Body.String())
		}
	})
}
