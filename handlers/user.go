package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rejoice2374/Homely-API/models"
	"github.com/Rejoice2374/Homely-API/relations"
	"github.com/Rejoice2374/Homely-API/session"
	"github.com/Rejoice2374/Homely-API/store"
	"github.com/Rejoice2374/Homely-API/utils"
)

type UserController struct {
	users    store.UserStore
	sessions *session.Manager
	engine   *relations.Engine
}

func NewUserController(users store.UserStore, sessions *session.Manager, engine *relations.Engine) *UserController {
	return &UserController{
		users:    users,
		sessions: sessions,
		engine:   engine,
	}
}

func (uc *UserController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Firstname == "" || req.Lastname == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "firstname, lastname and email are required"})
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	user, err := uc.users.Create(c.Request().Context(), models.User{
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		Email:       normalizeEmail(req.Email),
		PhoneNumber: req.PhoneNumber,
		Password:    hashedPassword,
		Picture:     req.Picture,
		Thumbnail:   req.Thumbnail,
		Role:        "user",
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "User with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
	}

	token, err := uc.sessions.Issue(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	user.Password = ""

	return c.JSON(http.StatusCreated, models.LoginResponse{
		Token: token,
		User:  user,
	})
}

func (uc *UserController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and password are required"})
	}

	user, err := uc.users.GetByEmail(c.Request().Context(), normalizeEmail(req.Email))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	token, err := uc.sessions.Issue(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	user.Password = ""

	return c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user,
	})
}

// Logout revokes exactly the token the request was authenticated with.
func (uc *UserController) Logout(c echo.Context) error {
	user := c.Get("user").(models.User)
	token := c.Get("token").(string)

	if err := uc.sessions.Revoke(c.Request().Context(), user.ID, token); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to log out"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// LogoutAll clears the caller's entire token set.
func (uc *UserController) LogoutAll(c echo.Context) error {
	user := c.Get("user").(models.User)

	if err := uc.sessions.RevokeAll(c.Request().Context(), user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to log out"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out of all sessions"})
}

func (uc *UserController) GetProfile(c echo.Context) error {
	user := c.Get("user").(models.User)
	user.Password = ""
	return c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateProfile(c echo.Context) error {
	user := c.Get("user").(models.User)

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	upd := store.ProfileUpdate{
		Firstname:  req.Firstname,
		Lastname:   req.Lastname,
		Email:      normalizeEmail(req.Email),
		Occupation: req.Occupation,
		Location:   req.Location,
	}

	passwordChanged := req.Password != ""
	if passwordChanged {
		if err := utils.ValidatePassword(req.Password); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
		}
		upd.Password = hashed
	}

	updated, err := uc.users.UpdateProfile(c.Request().Context(), user.ID, upd)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update user"})
	}

	// A password change logs out every device.
	if passwordChanged {
		if err := uc.sessions.RevokeAll(c.Request().Context(), user.ID); err != nil {
			log.Printf("Failed to revoke sessions after password change for %s: %v", user.ID.Hex(), err)
		}
	}

	updated.Password = ""
	return c.JSON(http.StatusOK, updated)
}

func (uc *UserController) DeleteAccount(c echo.Context) error {
	user := c.Get("user").(models.User)

	if err := uc.users.Delete(c.Request().Context(), user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete user"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

// GetWhitelist resolves the caller's whitelist ids to user summaries.
func (uc *UserController) GetWhitelist(c echo.Context) error {
	user := c.Get("user").(models.User)

	summaries, err := uc.resolveWhitelist(c, user.Whitelist)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get whitelist"})
	}
	return c.JSON(http.StatusOK, summaries)
}

// ToggleWhitelist flips the mutual whitelist edge between the caller and the
// user named in the path, then returns the caller's resolved whitelist.
func (uc *UserController) ToggleWhitelist(c echo.Context) error {
	user := c.Get("user").(models.User)

	targetID, err := primitive.ObjectIDFromHex(c.Param("whitelistId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	whitelist, err := uc.engine.ToggleWhitelist(c.Request().Context(), user.ID, targetID)
	if err != nil {
		var pw *relations.PartialWriteError
		switch {
		case errors.As(err, &pw):
			// The actor's side is durable; the mirror write will heal on the
			// next toggle.
			log.Printf("Whitelist toggle degraded: %v", pw)
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update whitelist"})
		}
	}

	summaries, err := uc.resolveWhitelist(c, whitelist)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get whitelist"})
	}
	return c.JSON(http.StatusOK, summaries)
}

func (uc *UserController) resolveWhitelist(c echo.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	summaries := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		member, err := uc.users.GetByID(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		summaries = append(summaries, member.Summary())
	}
	return summaries, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
