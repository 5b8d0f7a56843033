package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/auth"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/models"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/monitoring"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/repositories"
)

// UserHandler serves registration, login, profiles and follows.
type UserHandler struct {
	Users    repositories.UserRepository
	Posts    repositories.PostRepository
	Likes    repositories.LikeRepository
	Follows  repositories.FollowRepository
	Sessions *auth.Manager
	Renderer *Renderer
}

func NewUserHandler(users repositories.UserRepository, posts repositories.PostRepository,
	likes repositories.LikeRepository, follows repositories.FollowRepository,
	sessions *auth.Manager, renderer *Renderer) *UserHandler {
	return &UserHandler{
		Users:    users,
		Posts:    posts,
		Likes:    likes,
		Follows:  follows,
		Sessions: sessions,
		Renderer: renderer,
	}
}

type indexPage struct {
	Flashes []string
}

// Index renders the landing page with the login and register forms.
func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, "index.html", indexPage{
		Flashes: h.Sessions.Flashes(w, r),
	})
}

// Register creates an account from the register form. All validation
// rules are evaluated and every failure is flashed.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	reg := models.Registration{
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("c_password"),
	}

	errs := reg.Errors()
	if len(errs) == 0 {
		taken, err := h.Users.EmailTaken(reg.Email)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if taken {
			errs = append(errs, "Email already registered")
		}
	}

	if len(errs) > 0 {
		for _, msg := range errs {
			h.Sessions.Flash(w, r, msg)
		}
		monitoring.RegisterFailure.Inc()
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PasswordHash: string(hash),
	}
	if err := h.Users.Create(&user); err != nil {
		logrus.Errorf("Failed to create user: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if err := h.Sessions.SignIn(w, r, user.ID); err != nil {
		logrus.Errorf("Failed to establish session: %v", err)
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	monitoring.RegisterSuccess.Inc()
	logrus.WithField("user_id", user.ID).Info("User registered")
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}

// Login authenticates by email and password. An unknown email and a
// wrong password both produce the same generic notice.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.Users.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		monitoring.LoginFailure.WithLabelValues("unknown_email").Inc()
		h.Sessions.Flash(w, r, "Login Invalid")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		monitoring.LoginFailure.WithLabelValues("wrong_password").Inc()
		h.Sessions.Flash(w, r, "Login Invalid")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := h.Sessions.SignIn(w, r, user.ID); err != nil {
		logrus.Errorf("Failed to establish session: %v", err)
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	monitoring.LoginSuccess.Inc()
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}

// Logout clears the session unconditionally.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		logrus.Warnf("Failed to sign out: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

type profilePage struct {
	Viewer      *models.User
	User        *models.User
	PostCount   int64
	LikedCount  int64
	Followers   []models.User
	Following   []models.User
	IsFollowing bool
	Flashes     []string
}

// Profile shows a user's name, email, post count and liked count,
// together with both sides of the follow relation.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "User not found")
		return
	}

	user, err := h.Users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.notFound(w, r, "User not found")
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	viewer, err := h.Users.FindByID(viewerID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	postCount, err := h.Posts.CountByAuthor(user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	likedCount, err := h.Likes.CountByUser(user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	followers, err := h.Follows.Followers(user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	following, err := h.Follows.Following(user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	isFollowing, err := h.Follows.Contains(viewerID, user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	h.Renderer.Render(w, "profile.html", profilePage{
		Viewer:      viewer,
		User:        user,
		PostCount:   postCount,
		LikedCount:  likedCount,
		Followers:   followers,
		Following:   following,
		IsFollowing: isFollowing,
		Flashes:     h.Sessions.Flashes(w, r),
	})
}

// Follow adds the current user to {id}'s followers. Duplicates are
// no-ops; following yourself is rejected with a notice.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "User not found")
		return
	}
	if _, err := h.Users.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.notFound(w, r, "User not found")
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if err := h.Follows.Add(userID, id); err != nil {
		if errors.Is(err, repositories.ErrSelfFollow) {
			h.Sessions.Flash(w, r, "You cannot follow yourself")
			http.Redirect(w, r, "/bright_ideas", http.StatusFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	monitoring.FollowsAdded.Inc()
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}

// Unfollow removes the current user from {id}'s followers.
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "User not found")
		return
	}

	if err := h.Follows.Remove(userID, id); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}

func (h *UserHandler) notFound(w http.ResponseWriter, r *http.Request, message string) {
	h.Sessions.Flash(w, r, message)
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}
