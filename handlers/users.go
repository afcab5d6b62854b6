package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/david578-arc/invoice-analytics/models"
)

const userSelectQuery = `SELECT id, name, email, password_hash, role, two_factor_enabled, created_at, updated_at FROM users`

func scanUser(scanner interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := scanner.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.TwoFactorEnabled, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func getUserByID(id int) (models.User, error) {
	return scanUser(DB.QueryRow(userSelectQuery+" WHERE id = ?", id))
}

// ListUsers lists all users
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /users [get]
// @Security     BearerAuth
func ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(userSelectQuery + " ORDER BY created_at")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		users = append(users, u)
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser creates a new user
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      models.UserInput  true  "User contents"
// @Success      201   {object}  models.User
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
// @Security     BearerAuth
func CreateUser(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusCreated, user)
}

// UpdateUser updates a user profile
// @Summary      Update user
// @Description  Update name, email, role, and optionally the password.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "User ID"
// @Param        user  body      models.UserInput  true  "Updated user contents"
// @Success      200   {object}  models.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [put]
// @Security     BearerAuth
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(false); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	input.Email = normalizeEmail(input.Email)

	query := "UPDATE users SET name = ?, email = ?, role = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{input.Name, input.Email, input.Role}
	if input.Password != "" {
		if len(input.Password) < 8 {
			writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		query += ", password_hash = ?"
		args = append(args, string(hash))
	}
	query += " WHERE id = ?"
	args = append(args, id)

	res, err := DB.Exec(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	user, err := getUserByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser deletes a user
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// EnableTwoFactor enables 2FA for a user
// @Summary      Enable 2FA
// @Description  Generate and store a new TOTP secret for the user.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/enable-2fa [post]
// @Security     BearerAuth
func EnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	secret := hex.EncodeToString(buf)

	res, err := DB.Exec(`UPDATE users SET two_factor_enabled = 1, two_factor_secret = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		secret, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"secret":  secret,
		"qrCode":  fmt.Sprintf("otpauth://totp/Analytics:user?secret=%s", secret),
	})
}

// DisableTwoFactor disables 2FA for a user
// @Summary      Disable 2FA
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/disable-2fa [post]
// @Security     BearerAuth
func DisableTwoFactor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec(`UPDATE users SET two_factor_enabled = 0, two_factor_secret = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
