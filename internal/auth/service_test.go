package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/activity"
	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

var (
	testJWT      = config.JWTConfig{Secret: "secret", Issuer: "storefront", ExpirationMinutes: 30}
	fastPassword = config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
)

type stubSessionManager struct {
	created []uuid.UUID
	revoked []string
	err     error
}

func (s *stubSessionManager) Create(_ context.Context, adminID uuid.UUID) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.created = append(s.created, adminID)
	return "session-1", nil
}

func (s *stubSessionManager) Revoke(_ context.Context, sessionID string) error {
	s.revoked = append(s.revoked, sessionID)
	return nil
}

type recordingActivity struct {
	entries []activity.Entry
}

func (r *recordingActivity) Record(_ context.Context, entry activity.Entry) {
	r.entries = append(r.entries, entry)
}

func buildTestService(t *testing.T) (Service, *Repository, *stubSessionManager, *recordingActivity) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t))
	sessions := &stubSessionManager{}
	rec := &recordingActivity{}
	svc, err := NewService(ServiceParams{
		Repo:           repo,
		SessionManager: sessions,
		Activity:       rec,
		JWTConfig:      testJWT,
		PasswordConfig: fastPassword,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo, sessions, rec
}

func TestLoginIssuesSessionToken(t *testing.T) {
	svc, repo, sessions, rec := buildTestService(t)
	ctx := context.Background()

	created, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: " Owner@Example.com ", Name: "Owner", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if created.Email != "owner@example.com" {
		t.Fatalf("expected lowercased email, got %s", created.Email)
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: "OWNER@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.AdminID != created.ID {
		t.Fatalf("expected admin id claim %s, got %s", created.ID, claims.AdminID)
	}
	if claims.SessionID() != "session-1" {
		t.Fatalf("expected session jti, got %q", claims.SessionID())
	}
	if len(sessions.created) != 1 || sessions.created[0] != created.ID {
		t.Fatalf("expected one session for admin, got %v", sessions.created)
	}

	stored, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Fatal("expected last_login_at to be set")
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != enums.ActivityAdminLogin {
		t.Fatalf("expected admin.login activity, got %+v", rec.entries)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, repo, sessions, _ := buildTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "ops@example.com", Name: "Ops", Password: "correct-horse"}); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if _, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "gone@example.com", Name: "Gone", Password: "correct-horse"}); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if err := repo.db.Model(&models.AdminUser{}).Where("email = ?", "gone@example.com").Update("is_active", false).Error; err != nil {
		t.Fatalf("disable admin: %v", err)
	}

	cases := []LoginRequest{
		{Email: "ops@example.com", Password: "wrong-horse"},
		{Email: "nobody@example.com", Password: "correct-horse"},
		{Email: "gone@example.com", Password: "correct-horse"},
		{Email: "", Password: "correct-horse"},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, req)
		if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
			t.Fatalf("expected unauthorized for %q, got %v", req.Email, err)
		}
	}
	if len(sessions.created) != 0 {
		t.Fatal("no session should be created on failed login")
	}
}

func TestLoginSessionFailure(t *testing.T) {
	svc, _, sessions, _ := buildTestService(t)
	ctx := context.Background()
	if _, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "ops@example.com", Name: "Ops", Password: "correct-horse"}); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	sessions.err = errors.New("redis down")

	_, err := svc.Login(ctx, LoginRequest{Email: "ops@example.com", Password: "correct-horse"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestCreateAdminValidationAndConflict(t *testing.T) {
	svc, _, _, _ := buildTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "nope", Password: "short"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	input := CreateAdminInput{Email: "ops@example.com", Name: "Ops", Password: "correct-horse"}
	if _, err := svc.CreateAdmin(ctx, input); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	_, err = svc.CreateAdmin(ctx, input)
	if !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions, _ := buildTestService(t)

	if err := svc.Logout(context.Background(), "session-9"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "session-9" {
		t.Fatalf("expected session-9 revoked, got %v", sessions.revoked)
	}
	if err := svc.Logout(context.Background(), " "); !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for blank session, got %v", err)
	}
}
