package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/david578-arc/invoice-analytics/models"
)

// loginResponse is returned by both register and login.
type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a new user account
// @Summary      Register
// @Description  Create a user account with a hashed password and return an access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user  body      models.UserInput  true  "Registration details"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/register [post]
func Register(w http.ResponseWriter, r *http.Request) {
	var input models.UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(true); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	input.Email = normalizeEmail(input.Email)

	var exists int
	if err := DB.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", input.Email).Scan(&exists); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if exists > 0 {
		writeError(w, http.StatusBadRequest, "user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var id int
	err = DB.QueryRow(`INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?) RETURNING id`,
		input.Name, input.Email, string(hash), input.Role).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	user, err := getUserByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	token, err := generateAccessToken(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

// Login authenticates a user
// @Summary      Login
// @Description  Verify credentials against the stored password hash and return an access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      models.Credentials  true  "Email and password"
// @Success      200          {object}  loginResponse
// @Failure      401          {object}  errorResponse
// @Router       /auth/login [post]
func Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var user models.User
	err := DB.QueryRow(`SELECT id, name, email, password_hash, role, two_factor_enabled, created_at, updated_at
		FROM users WHERE email = ?`, normalizeEmail(creds.Email)).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
			&user.TwoFactorEnabled, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := generateAccessToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

// normalizeEmail trims and lower-cases an email for comparisons.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
