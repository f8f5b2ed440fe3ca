package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.uber.org/zap"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/model"
)

const (
	msgLoginRequired    = "이메일과 비밀번호를 입력해주세요."
	msgRegisterRequired = "모든 필드를 입력해주세요."
	msgEmailInvalid     = "올바른 이메일 주소를 입력해주세요."
	msgPasswordMismatch = "비밀번호가 일치하지 않습니다."
	msgTermsRequired    = "이용약관에 동의해주세요."
	msgPasswordTooShort = "비밀번호는 최소 8자 이상이어야 합니다."
	msgGradeInvalid     = "학년을 선택해주세요."
	minPasswordLength   = 8
)

// LoginForm holds the login page fields.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required.Error(msgLoginRequired)),
		validation.Field(&f.Password, validation.Required.Error(msgLoginRequired)),
	)
	return firstViolation(err, "email", "password")
}

// RegisterForm holds the sign-up page fields.
type RegisterForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Grade           string `json:"grade"`
	AgreedToTerms   bool   `json:"agreed_to_terms"`
}

// Validate applies the sign-up rules in the order the page reports them.
func (f RegisterForm) Validate() error {
	sameAsPassword := validation.By(func(v any) error {
		if v.(string) != f.Password {
			return errors.New(msgPasswordMismatch)
		}
		return nil
	})
	return validateInOrder(
		check("name", strings.TrimSpace(f.Name), validation.Required.Error(msgRegisterRequired)),
		check("email", strings.TrimSpace(f.Email), validation.Required.Error(msgRegisterRequired), is.EmailFormat.Error(msgEmailInvalid)),
		check("password", f.Password, validation.Required.Error(msgRegisterRequired)),
		check("confirm_password", f.ConfirmPassword, sameAsPassword),
		check("agreed_to_terms", f.AgreedToTerms, validation.Required.Error(msgTermsRequired)),
		check("password", f.Password, validation.RuneLength(minPasswordLength, 0).Error(msgPasswordTooShort)),
		check("grade", f.Grade, validation.Required.Error(msgGradeInvalid), validation.In(stringsToAny(model.Grades)...).Error(msgGradeInvalid)),
	)
}

// AccountService signs users in and up through the backend.
type AccountService interface {
	// Login checks credentials and returns the issued token.
	Login(ctx context.Context, form LoginForm) (string, error)
	Register(ctx context.Context, form RegisterForm) (*model.User, error)
}

type accountService struct {
	api    apiclient.API
	logger *zap.Logger
}

func NewAccountService(api apiclient.API, logger *zap.Logger) AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &accountService{api: api, logger: logger}
}

func (s *accountService) Login(ctx context.Context, form LoginForm) (string, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := form.Validate(); err != nil {
		return "", err
	}
	return s.api.Login(ctx, form.Email, form.Password)
}

func (s *accountService) Register(ctx context.Context, form RegisterForm) (*model.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	u, err := s.api.Register(ctx, apiclient.RegisterRequest{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		Grade:    form.Grade,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account registered", zap.Int64("user_id", u.ID))
	return u, nil
}
