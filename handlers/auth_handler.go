package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/pallavigowda6789-tech/attendance-system/config"
	"github.com/pallavigowda6789-tech/attendance-system/models"
	"github.com/pallavigowda6789-tech/attendance-system/services"
)

/* ====================== Config & Helpers ====================== */

type AuthHandler struct {
	cfg   *config.Config
	users *services.UserService
}

func NewAuthHandler(cfg *config.Config, users *services.UserService) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users}
}

func (h *AuthHandler) signJWT(u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"name": u.FullName(),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.cfg.JWTSecret))
}

// loginResponse คืน token + ข้อมูลผู้ใช้ชุดที่ FE ใช้
func (h *AuthHandler) loginResponse(c echo.Context, u *models.User) error {
	token, err := h.signJWT(u, 7*24*time.Hour)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "login successful", map[string]any{
		"token": token,
		"user": map[string]any{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"name":     u.FullName(),
			"role":     u.Role,
		},
	})
}

/* ====================== DTOs ====================== */

type registerReq struct {
	Username  string `json:"username" validate:"required,min=3,max=60"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginReq struct {
	Identity string `json:"identity" validate:"required"` // username หรือ email
	Password string `json:"password" validate:"required"`
}

type googleLoginReq struct {
	IDToken string `json:"id_token" validate:"required"`
}

type githubLoginReq struct {
	Code string `json:"code" validate:"required"`
}

/* ====================== Handlers ====================== */

// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}

	u, err := h.users.RegisterLocalUser(services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, "registered successfully", u)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}

	u, err := h.users.Authenticate(req.Identity, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return h.loginResponse(c, u)
}

// GET /api/auth/check-username?username=...
func (h *AuthHandler) CheckUsername(c echo.Context) error {
	username := strings.TrimSpace(c.QueryParam("username"))
	if username == "" {
		return ok(c, "checked", map[string]bool{"available": false})
	}
	taken, err := h.users.UsernameExists(username)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "checked", map[string]bool{"available": !taken})
}

// GET /api/auth/check-email?email=...
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	email := strings.TrimSpace(strings.ToLower(c.QueryParam("email")))
	if email == "" {
		return ok(c, "checked", map[string]bool{"available": false})
	}
	taken, err := h.users.EmailExists(email)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "checked", map[string]bool{"available": !taken})
}

// POST /api/auth/google — FE ส่ง id_token จาก Google Sign-In มา verify ฝั่งเรา
// แล้ว resolve เป็น user เดียวเสมอ (ไม่เคยเห็น email นี้ = provision บัญชีใหม่)
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{h.cfg.GoogleClientID}); err != nil {
		return fail(c, services.ErrUnauthenticated)
	}
	claims, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return fail(c, services.ErrUnauthenticated)
	}

	p := services.OIDCPrincipal(models.ProviderGoogle,
		claims.Email, claims.GivenName, claims.FamilyName, claims.Name, claims.Sub)
	u, err := h.users.ResolvePrincipal(p)
	if err != nil {
		return fail(c, err)
	}
	if !u.Enabled {
		return fail(c, services.ErrUnauthenticated)
	}
	return h.loginResponse(c, u)
}

// POST /api/auth/github — แลก authorization code เป็น access token
// แล้วดึง attribute map จาก GitHub API มาเข้า resolver เดียวกัน
func (h *AuthHandler) GitHubLogin(c echo.Context) error {
	var req githubLoginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_PAYLOAD")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "VALIDATION_ERROR")
	}

	conf := &oauth2.Config{
		ClientID:     h.cfg.GitHubClientID,
		ClientSecret: h.cfg.GitHubClientSecret,
		RedirectURL:  h.cfg.GitHubRedirectURL,
		Scopes:       []string{"read:user", "user:email"},
		Endpoint:     githuboauth.Endpoint,
	}
	ctx := c.Request().Context()
	token, err := conf.Exchange(ctx, req.Code)
	if err != nil {
		return fail(c, services.ErrUnauthenticated)
	}

	attrs, err := fetchGitHubProfile(ctx, conf.Client(ctx, token))
	if err != nil {
		return fail(c, services.ErrUnauthenticated)
	}

	u, err := h.users.ResolvePrincipal(services.OAuth2Principal(models.ProviderGitHub, attrs))
	if err != nil {
		return fail(c, err)
	}
	if !u.Enabled {
		return fail(c, services.ErrUnauthenticated)
	}
	return h.loginResponse(c, u)
}

// fetchGitHubProfile ดึง /user และเติม email หลัก (บาง account ปิด public email)
func fetchGitHubProfile(ctx context.Context, client *http.Client) (map[string]any, error) {
	attrs, err := getJSON[map[string]any](ctx, client, "https://api.github.com/user")
	if err != nil {
		return nil, err
	}
	if email, _ := attrs["email"].(string); email == "" {
		emails, err := getJSON[[]map[string]any](ctx, client, "https://api.github.com/user/emails")
		if err == nil {
			for _, e := range emails {
				if primary, _ := e["primary"].(bool); primary {
					attrs["email"], _ = e["email"].(string)
					break
				}
			}
		}
	}
	return attrs, nil
}

func getJSON[T any](ctx context.Context, client *http.Client, url string) (T, error) {
	var out T
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := client.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return out, echo.NewHTTPError(resp.StatusCode, "github api error")
	}
	err = json.NewDecoder(resp.Body).Decode(&out)
	return out, err
}
