package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/http/middleware"
	"archiveweb/internal/model"
	"archiveweb/internal/service"
)

type loginData struct {
	Email string
	Error string
}

type registerData struct {
	Form   service.RegisterForm
	Grades []string
	Error  string
}

type mypageData struct {
	Profile *model.User
	Error   string
}

// AccountHandlers serves login, registration and the profile page.
type AccountHandlers struct {
	accounts service.AccountService
	delay    int
	logger   *zap.Logger
}

// NewAccountHandlers builds the account pages; success pages move on after delay seconds.
func NewAccountHandlers(accounts service.AccountService, delay int, logger *zap.Logger) *AccountHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountHandlers{accounts: accounts, delay: delay, logger: logger}
}

func (h *AccountHandlers) LoginForm(c *fiber.Ctx) error {
	if middleware.SessionFrom(c).IsAuthenticated() {
		return c.Redirect("/", fiber.StatusFound)
	}
	return render(c, fiber.StatusOK, "login", "로그인", loginData{})
}

// Login exchanges the credentials for a token and validates it into the session.
func (h *AccountHandlers) Login(c *fiber.Ctx) error {
	form := service.LoginForm{Email: c.FormValue("email"), Password: c.FormValue("password")}

	token, err := h.accounts.Login(c.UserContext(), form)
	if err == nil {
		err = middleware.SessionFrom(c).Login(c.UserContext(), token)
	}
	if err != nil {
		return render(c, statusFor(err), "login", "로그인", loginData{Email: form.Email, Error: messageFor(err)})
	}
	return renderSuccess(c, "성공", "로그인 성공! 메인 페이지로 이동합니다.", "/", h.delay)
}

func (h *AccountHandlers) RegisterForm(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "register", "회원가입", registerData{Grades: model.Grades})
}

// Register creates the account and sends the browser to the login page.
func (h *AccountHandlers) Register(c *fiber.Ctx) error {
	form := service.RegisterForm{
		Name:            c.FormValue("name"),
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirm_password"),
		Grade:           c.FormValue("grade"),
		AgreedToTerms:   c.FormValue("agreed_to_terms") != "",
	}

	if _, err := h.accounts.Register(c.UserContext(), form); err != nil {
		form.Password, form.ConfirmPassword = "", ""
		return render(c, statusFor(err), "register", "회원가입", registerData{
			Form:   form,
			Grades: model.Grades,
			Error:  messageFor(err),
		})
	}
	return renderSuccess(c, "완료", fmt.Sprintf("회원가입이 완료되었습니다! %d초 후 로그인 페이지로 이동합니다.", h.delay), loginPath, h.delay)
}

// MyPage shows the session user's profile. Without a token it sends the browser to login;
// a token that failed validation is reported inline.
func (h *AccountHandlers) MyPage(c *fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	if user := sess.User(); user != nil {
		return render(c, fiber.StatusOK, "mypage", "마이페이지", mypageData{Profile: user})
	}
	if err := sess.Err(); err != nil {
		return render(c, fiber.StatusOK, "mypage", "마이페이지", mypageData{Error: apiclient.Message(err)})
	}
	return redirectToLogin(c)
}
