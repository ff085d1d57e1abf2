package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/nexus-backend/internal/data/repos/testutil"
	"github.com/yungbote/nexus-backend/internal/domain"
	types "github.com/yungbote/nexus-backend/internal/domain/user"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, &types.User{Email: "  UserRepo@Example.com ", Password: "pw", Name: "A"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil || created.Email != "userrepo@example.com" {
		t.Fatalf("Create: unexpected user %+v", created)
	}

	got, err := repo.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Email != created.Email {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	got, err = repo.GetByEmail(dbc, "USERREPO@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("GetByEmail: unexpected result: %+v", got)
	}

	exists, err := repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID (missing): expected nil, nil; got %+v, %v", missing, err)
	}

	if err := repo.UpdateName(dbc, created.ID, "  Ada  "); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	got, _ = repo.GetByID(dbc, created.ID)
	if got.Name != "Ada" {
		t.Fatalf("UpdateName: name=%q", got.Name)
	}
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.From(context.Background())

	if _, err := repo.Create(dbc, &types.User{Email: "dup@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(dbc, &types.User{Email: "DUP@example.com", Password: "pw"})
	if !errors.Is(err, domain.ErrDuplicateEntity) {
		t.Fatalf("expected ErrDuplicateEntity, got %v", err)
	}
}
