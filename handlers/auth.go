package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/middleware"
	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/service"
	"github.com/wordingo/backend/store"
)

type AuthHandler struct {
	DB        *store.DB
	OTP       *service.OTPStore
	JWTSecret string
	TokenTTL  time.Duration

	// Console credentials; the matching admin users are seeded on
	// first login.
	AdminPassword      string
	SuperAdminPassword string
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SendOTP issues a one-time code for the phone number. The code is
// echoed in the response only in development mode (no SMTP configured).
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Phone == "" {
		respondError(w, apperr.ValidationMsg("phone is required"))
		return
	}
	code, echo, err := h.OTP.Issue(req.Phone, req.Name, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	env := Envelope{Success: true, Message: "OTP sent successfully"}
	if echo {
		log.Printf("OTP for %s: %s", req.Phone, code)
		env.Data = map[string]string{"otp": code}
	}
	writeJSON(w, http.StatusOK, env)
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// VerifyOTP checks the code and logs the user in, creating the account
// on first verification.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	name, email, err := h.OTP.Verify(req.Phone, req.OTP)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.DB.UserByPhone(r.Context(), req.Phone)
	if err != nil {
		respondError(w, err)
		return
	}
	isNewUser := false
	if user == nil {
		if name == "" {
			name = "User"
		}
		user = &models.User{
			Phone:      req.Phone,
			Name:       name,
			Email:      email,
			IsVerified: true,
			LastActive: time.Now(),
		}
		id, err := h.DB.CreateUser(r.Context(), user)
		if err != nil {
			respondError(w, err)
			return
		}
		user.ID = id
		isNewUser = true
	} else {
		user, err = h.DB.UpdateUserFields(r.Context(), user.ID, bson.M{
			"isVerified": true,
			"lastActive": time.Now(),
		})
		if err != nil {
			respondError(w, err)
			return
		}
	}

	token, err := h.createToken(user.ID.Hex())
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Login successful", map[string]any{
		"user":      user,
		"token":     token,
		"isNewUser": isNewUser,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.RefreshToken == "" {
		respondError(w, apperr.Unauthorized("Refresh token required"))
		return
	}
	token, err := jwt.ParseWithClaims(req.RefreshToken, &middleware.Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		respondError(w, apperr.Unauthorized("Invalid refresh token"))
		return
	}
	claims := token.Claims.(*middleware.Claims)
	newToken, err := h.createToken(claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"token": newToken})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "Logged out successfully"})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfile fills in name/email after an OTP-only signup.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	user, err := h.DB.UpdateUserFields(r.Context(), userID, fields)
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Profile updated successfully", map[string]any{"user": user})
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin signs in the admin console with config-backed
// credentials, seeding the backing user document on first use.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	var role, password string
	switch req.Username {
	case models.RoleAdmin:
		role, password = models.RoleAdmin, h.AdminPassword
	case models.RoleSuperAdmin:
		role, password = models.RoleSuperAdmin, h.SuperAdminPassword
	default:
		respondError(w, apperr.Unauthorized("Invalid admin credentials"))
		return
	}
	if req.Password != password {
		respondError(w, apperr.Unauthorized("Invalid admin credentials"))
		return
	}

	phone := "admin_" + req.Username
	user, err := h.DB.UserByPhone(r.Context(), phone)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			respondError(w, err)
			return
		}
		name, avatar := "Admin", "🔧"
		if role == models.RoleSuperAdmin {
			name, avatar = "Super Admin", "👑"
		}
		user = &models.User{
			Name:       name,
			Phone:      phone,
			Email:      req.Username + "@wordingo.com",
			Role:       role,
			Avatar:     avatar,
			Password:   string(hash),
			IsVerified: true,
			LastActive: time.Now(),
		}
		id, err := h.DB.CreateUser(r.Context(), user)
		if err != nil {
			respondError(w, err)
			return
		}
		user.ID = id
	}

	token, err := h.createToken(user.ID.Hex())
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Admin login successful", map[string]any{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) createToken(userID string) (string, error) {
	claims := &middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
