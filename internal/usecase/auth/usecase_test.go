package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"paycrest-backend/internal/adapter/repository/mysql"
	userDomain "paycrest-backend/internal/domain/user"
	"paycrest-backend/internal/testutil/dbtest"
	"paycrest-backend/internal/usecase/ledger"
)

func newAuth(t *testing.T) (*Usecase, *mysql.UserRepository) {
	t.Helper()
	db := dbtest.Open(t)
	uow := mysql.NewGormUoW(db)
	lg := ledger.NewUsecase(uow, mysql.NewTransactionRepository(db), "PCIN0000")
	users := mysql.NewUserRepository(db)
	return NewUsecase(users, uow, lg, "test-secret", time.Hour), users
}

func registerInput() RegisterInput {
	return RegisterInput{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	}
}

func TestRegister_CreatesUserAndAccount(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	out, err := uc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if out.CustomerID != 1 {
		t.Fatalf("customer id = %d, want 1 (first from sequence)", out.CustomerID)
	}
	if out.AccountNumber != 1_000_000_001 {
		t.Fatalf("account number = %d, want 1000000001", out.AccountNumber)
	}
	if out.IFSC != "PCIN0000" || out.Balance != 0 {
		t.Fatalf("account fields wrong: %+v", out)
	}

	usr, err := users.GetByID(ctx, out.CustomerID)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if usr.Role != userDomain.RoleCustomer || !usr.IsActive {
		t.Fatalf("user = %+v, want active customer", usr)
	}
	if usr.PasswordHash == "s3cret-pass" || usr.PasswordHash == "" {
		t.Fatalf("password stored in the clear or empty")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	if _, err := uc.Register(ctx, registerInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := uc.Register(ctx, registerInput()); !errors.Is(err, userDomain.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestLogin_And_VerifyToken(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	reg, err := uc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	out, err := uc.Login(ctx, "asha@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.TokenType != "bearer" || out.Role != userDomain.RoleCustomer || out.UserID != reg.CustomerID {
		t.Fatalf("login output wrong: %+v", out)
	}

	uid, role, err := uc.VerifyToken(out.AccessToken)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if uid != reg.CustomerID || role != userDomain.RoleCustomer {
		t.Fatalf("token carries %d/%s, want %d/customer", uid, role, reg.CustomerID)
	}
}

func TestLogin_Failures(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	reg, err := uc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// wrong password
	if _, err := uc.Login(ctx, "asha@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	// unknown email
	if _, err := uc.Login(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: want ErrInvalidCredentials, got %v", err)
	}

	// deactivated account
	usr, _ := users.GetByID(ctx, reg.CustomerID)
	usr.IsActive = false
	if err := users.Save(ctx, usr); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := uc.Login(ctx, "asha@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("inactive: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := uc.LookupActive(ctx, reg.CustomerID); !errors.Is(err, userDomain.ErrNotFound) {
		t.Fatalf("LookupActive inactive: want ErrNotFound, got %v", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	uc, _ := newAuth(t)
	for _, tok := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, _, err := uc.VerifyToken(tok); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("token %q: want ErrInvalidCredentials, got %v", tok, err)
		}
	}
}

func TestCreateStaff_RolesAndNoAccount(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	staff, err := uc.CreateStaff(ctx, CreateStaffInput{
		FullName: "Vikram Iyer",
		Email:    "vikram@paycrest.example",
		Password: "staff-pass-1",
		Role:     "manager",
	})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	if staff.Role != userDomain.RoleManager {
		t.Fatalf("role = %s, want manager", staff.Role)
	}

	// staff can log in but gets no bank account
	out, err := uc.Login(ctx, "vikram@paycrest.example", "staff-pass-1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.Role != userDomain.RoleManager {
		t.Fatalf("login role = %s, want manager", out.Role)
	}

	// only manager and verification are valid staff roles
	for _, bad := range []string{"admin", "customer", "root", ""} {
		_, err := uc.CreateStaff(ctx, CreateStaffInput{
			FullName: "X", Email: "x@example.com", Password: "xxxxxxxx", Role: bad,
		})
		if !errors.Is(err, userDomain.ErrInvalidRole) {
			t.Fatalf("role %q: want ErrInvalidRole, got %v", bad, err)
		}
	}
}
