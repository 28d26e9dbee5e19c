package auth

import (
	"context"
	"errors"
	"time"

	"paycrest-backend/internal/domain/sequence"
	userDomain "paycrest-backend/internal/domain/user"
	"paycrest-backend/internal/domain/uow"
	"paycrest-backend/internal/usecase/ledger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Usecase struct {
	users     userDomain.Repository
	uow       uow.UnitOfWork
	ledger    *ledger.Usecase
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUsecase(users userDomain.Repository, u uow.UnitOfWork, lg *ledger.Usecase, jwtSecret string, tokenTTL time.Duration) *Usecase {
	return &Usecase{users: users, uow: u, ledger: lg, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

type RegisterInput struct {
	FullName  string `json:"full_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob"`
	Gender    string `json:"gender"`
	PANNumber string `json:"pan_number"`
}

type RegisterOutput struct {
	CustomerID    int64   `json:"customer_id"`
	AccountNumber int64   `json:"account_number"`
	IFSC          string  `json:"ifsc"`
	Balance       float64 `json:"balance"`
}

// Register creates a customer and their bank account in one transaction.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	var out *RegisterOutput
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		_, err := r.Users.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return userDomain.ErrDuplicateEmail
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		id, err := r.Sequences.Next(ctx, sequence.CustomerID)
		if err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		usr := &userDomain.User{
			ID:           id,
			FullName:     in.FullName,
			Email:        in.Email,
			PasswordHash: string(hash),
			Phone:        in.Phone,
			DOB:          in.DOB,
			Gender:       in.Gender,
			PANNumber:    in.PANNumber,
			Role:         userDomain.RoleCustomer,
			IsActive:     true,
		}
		if err := r.Users.Create(ctx, usr); err != nil {
			return err
		}

		acc, err := u.ledger.CreateAccountIn(ctx, r, id)
		if err != nil {
			return err
		}
		out = &RegisterOutput{
			CustomerID:    id,
			AccountNumber: acc.AccountNumber,
			IFSC:          acc.IFSCCode,
			Balance:       acc.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type LoginOutput struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	Role        userDomain.Role `json:"role"`
	UserID      int64           `json:"user_id"`
}

// Login verifies the password and issues a bearer token carrying the user's
// id and role.
func (u *Usecase) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !usr.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := u.issueToken(usr)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{AccessToken: token, TokenType: "bearer", Role: usr.Role, UserID: usr.ID}, nil
}

func (u *Usecase) issueToken(usr *userDomain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": usr.ID,
		"role":    string(usr.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(u.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtSecret)
}

type CreateStaffInput struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// CreateStaff lets an admin add manager or verification users. Staff get no
// bank account.
func (u *Usecase) CreateStaff(ctx context.Context, in CreateStaffInput) (*userDomain.User, error) {
	role := userDomain.Role(in.Role)
	if role != userDomain.RoleManager && role != userDomain.RoleVerification {
		return nil, userDomain.ErrInvalidRole
	}
	var out *userDomain.User
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		_, err := r.Users.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return userDomain.ErrDuplicateEmail
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		id, err := r.Sequences.Next(ctx, sequence.CustomerID)
		if err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		usr := &userDomain.User{
			ID:           id,
			FullName:     in.FullName,
			Email:        in.Email,
			PasswordHash: string(hash),
			Role:         role,
			IsActive:     true,
		}
		if err := r.Users.Create(ctx, usr); err != nil {
			return err
		}
		out = usr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyToken parses and validates a bearer token, returning the identity
// and role it carries. Used by the HTTP auth middleware.
func (u *Usecase) VerifyToken(tokenStr string) (int64, userDomain.Role, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return u.jwtSecret, nil
	})
	if err != nil || !tok.Valid {
		return 0, "", ErrInvalidCredentials
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidCredentials
	}
	uid, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", ErrInvalidCredentials
	}
	role, _ := claims["role"].(string)
	return int64(uid), userDomain.Role(role), nil
}

// LookupActive loads the token's user and rejects deactivated accounts.
func (u *Usecase) LookupActive(ctx context.Context, id int64) (*userDomain.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userDomain.ErrNotFound
		}
		return nil, err
	}
	if !usr.IsActive {
		return nil, userDomain.ErrNotFound
	}
	return usr, nil
}
