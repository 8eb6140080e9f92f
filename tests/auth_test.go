package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tiendapos/internal/config"
	"tiendapos/internal/dto"
	"tiendapos/internal/handler"
	"tiendapos/internal/middleware"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// ── In-memory Repository Stub ─────────────────────────────────────────────────

type stubUsuarioRepo struct {
	users map[string]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	u.ID = uuid.New()
	r.users[u.Email] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	u, ok := r.users[email]
	if !ok || !u.Activo {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	users := make([]model.Usuario, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.users[u.Email] = u
	return nil
}

func (r *stubUsuarioRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Activo = false
			return nil
		}
	}
	return errors.New("not found")
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUser(t *testing.T, repo *stubUsuarioRepo, email, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	assert.NoError(t, err)
	u := &model.Usuario{
		ID: uuid.New(), Email: email, Nombre: "Test User",
		PasswordHash: string(hash), Rol: rol, Activo: true,
	}
	repo.users[email] = u
	return u
}

func signToken(t *testing.T, userID, rol string, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID, "email": "test@tiendapos.com", "rol": rol,
		"exp": time.Now().Add(dur).Unix(), "iat": time.Now().Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func doLoginRequest(t *testing.T, svc service.AuthService, req dto.LoginRequest) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authH := handler.NewAuthHandler(svc)
	r.POST("/login", authH.Login)

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	httpReq, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, httpReq)
	return w
}

func ginTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.JWTAuth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "rol": claims.Rol})
	})
	r.GET("/admin", middleware.RequireRole(model.RolAdministrador, model.RolSuperAdministrador), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

// ── Tests: Login ──────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "admin@tiendapos.com", "password123", model.RolAdministrador)
	svc := service.NewAuthService(repo, newTestCfg())

	w := doLoginRequest(t, svc, dto.LoginRequest{Email: "admin@tiendapos.com", Password: "password123"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, model.RolAdministrador, resp.User.Rol)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "vende@tiendapos.com", "correctpass", model.RolVendedor)
	svc := service.NewAuthService(repo, newTestCfg())

	w := doLoginRequest(t, svc, dto.LoginRequest{Email: "vende@tiendapos.com", Password: "wrongpass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UserNotFound(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := service.NewAuthService(repo, newTestCfg())

	w := doLoginRequest(t, svc, dto.LoginRequest{Email: "noexiste@tiendapos.com", Password: "anypass123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "baja@tiendapos.com", "password123", model.RolVendedor)
	u.Activo = false
	svc := service.NewAuthService(repo, newTestCfg())

	w := doLoginRequest(t, svc, dto.LoginRequest{Email: "baja@tiendapos.com", Password: "password123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_ShortPassword_Rejected(t *testing.T) {
	// DTO validation: password must be >= 6 chars
	repo := newStubUsuarioRepo()
	svc := service.NewAuthService(repo, newTestCfg())

	w := doLoginRequest(t, svc, dto.LoginRequest{Email: "a@b.com", Password: "12"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// ── Tests: Refresh ────────────────────────────────────────────────────────────

func TestRefresh_Success(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "super@tiendapos.com", "pass1234", model.RolSuperAdministrador)
	svc := service.NewAuthService(repo, newTestCfg())

	loginW := doLoginRequest(t, svc, dto.LoginRequest{Email: "super@tiendapos.com", Password: "pass1234"})
	assert.Equal(t, http.StatusOK, loginW.Code)
	var loginResp dto.LoginResponse
	json.Unmarshal(loginW.Body.Bytes(), &loginResp) //nolint

	resp, err := svc.Refresh(context.Background(), loginResp.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, u.Email, resp.User.Email)
}

func TestRefresh_InvalidToken(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := service.NewAuthService(repo, newTestCfg())

	_, err := svc.Refresh(context.Background(), "this.is.garbage")
	assert.Error(t, err)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "vende2@tiendapos.com", "pass12345", model.RolVendedor)
	svc := service.NewAuthService(repo, newTestCfg())

	expired := signToken(t, u.ID.String(), model.RolVendedor, -1*time.Second)
	_, err := svc.Refresh(context.Background(), expired)
	assert.Error(t, err)
}

func TestRefresh_InactiveUser(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "exempleado@tiendapos.com", "pass1234", model.RolVendedor)
	svc := service.NewAuthService(repo, newTestCfg())

	tok := signToken(t, u.ID.String(), model.RolVendedor, time.Hour)
	u.Activo = false
	_, err := svc.Refresh(context.Background(), tok)
	assert.Error(t, err)
}

// ── Tests: JWT Middleware ─────────────────────────────────────────────────────

func TestProtectedEndpoint_NoToken(t *testing.T) {
	r := ginTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedEndpoint_ValidToken(t *testing.T) {
	r := ginTestRouter()
	tok := signToken(t, uuid.New().String(), model.RolVendedor, time.Hour)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedEndpoint_ExpiredToken(t *testing.T) {
	r := ginTestRouter()
	tok := signToken(t, uuid.New().String(), model.RolVendedor, -time.Second)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	r := ginTestRouter()
	tok := signToken(t, uuid.New().String(), model.RolVendedor, time.Hour)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_CorrectRole(t *testing.T) {
	r := ginTestRouter()
	tok := signToken(t, uuid.New().String(), model.RolAdministrador, time.Hour)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ── Tests: User CRUD (service layer) ─────────────────────────────────────────

func TestCrearUsuario_Success(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := service.NewAuthService(repo, newTestCfg())

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email: "nuevo@tiendapos.com", Nombre: "Nuevo User", Password: "securepass",
		Rol: model.RolVendedor,
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RolVendedor, resp.Rol)
	assert.NotEmpty(t, resp.ID)
}

func TestCrearUsuario_EmailDuplicado(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "dup@tiendapos.com", "pass1234", model.RolVendedor)
	svc := service.NewAuthService(repo, newTestCfg())

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email: "dup@tiendapos.com", Nombre: "Otro", Password: "securepass",
		Rol: model.RolVendedor,
	})
	assert.Error(t, err)
}

func TestActualizarUsuario_CambiaRol(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "asciende@tiendapos.com", "pass1234", model.RolVendedor)
	svc := service.NewAuthService(repo, newTestCfg())

	nuevoRol := model.RolAdministrador
	resp, err := svc.ActualizarUsuario(context.Background(), u.ID, dto.ActualizarUsuarioRequest{
		Rol: &nuevoRol,
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RolAdministrador, resp.Rol)
}

func TestListarUsuarios(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "u1@tiendapos.com", "pass1234", model.RolVendedor)
	seedUser(t, repo, "u2@tiendapos.com", "pass1234", model.RolAdministrador)
	svc := service.NewAuthService(repo, newTestCfg())

	users, err := svc.ListarUsuarios(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestDesactivarUsuario(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "adios@tiendapos.com", "pass1234", model.RolVendedor)
	svc := service.NewAuthService(repo, newTestCfg())

	err := svc.DesactivarUsuario(context.Background(), u.ID)
	assert.NoError(t, err)

	_, err = repo.FindByEmail(context.Background(), "adios@tiendapos.com")
	assert.Error(t, err, "deactivated user must not be able to log in")
}
