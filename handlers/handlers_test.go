package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/auth"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/handlers"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/models"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/repositories"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/routes"
)

// testApp wires the full router over a throwaway SQLite database and
// keeps cookies across requests the way a browser would.
type testApp struct {
	t       *testing.T
	db      *gorm.DB
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Post{}, &models.Like{}, &models.Follow{}, &models.Session{},
	))

	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)

	sessions := auth.NewManager("development-key", sessionRepo, time.Hour)

	renderer, err := handlers.NewRenderer("../templates")
	require.NoError(t, err)

	userHandler := handlers.NewUserHandler(userRepo, postRepo, likeRepo, followRepo, sessions, renderer)
	postHandler := handlers.NewPostHandler(userRepo, postRepo, likeRepo, sessions, renderer)

	return &testApp{
		t:       t,
		db:      db,
		router:  routes.SetupRoutes(userHandler, postHandler),
		cookies: make(map[string]*http.Cookie),
	}
}

// do performs a request with the stored cookies attached and absorbs
// any Set-Cookie headers from the response.
func (app *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	app.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range app.cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)

	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(app.cookies, c.Name)
		} else {
			app.cookies[c.Name] = c
		}
	}
	return rr
}

func (app *testApp) register(first, last, email, password, confirm string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Add("first_name", first)
	form.Add("last_name", last)
	form.Add("email", email)
	form.Add("password", password)
	form.Add("c_password", confirm)
	return app.do("POST", "/register", form)
}

func (app *testApp) login(email, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Add("email", email)
	form.Add("password", password)
	return app.do("POST", "/login", form)
}

func (app *testApp) addPost(message string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Add("message", message)
	return app.do("POST", "/add_post", form)
}

func (app *testApp) registerDefault() {
	resp := app.register("Ada", "Lovelace", "ada@example.com", "password123", "password123")
	require.Equal(app.t, http.StatusFound, resp.Code)
	require.Equal(app.t, "/bright_ideas", resp.Header().Get("Location"))
}

func (app *testApp) userByEmail(email string) *models.User {
	app.t.Helper()
	var user models.User
	require.NoError(app.t, app.db.Where("email = ?", email).First(&user).Error)
	return &user
}

func postPath(id uint, action string) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/" + action
}

func TestRegisterSuccess(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()

	user := app.userByEmail("ada@example.com")
	assert.Equal(t, "Ada Lovelace", user.FullName())
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name    string
		first   string
		last    string
		email   string
		pw      string
		confirm string
	}{
		{"short first name", "A", "Lovelace", "ada@example.com", "password123", "password123"},
		{"short last name", "Ada", "L", "ada@example.com", "password123", "password123"},
		{"bad email", "Ada", "Lovelace", "not-an-email", "password123", "password123"},
		{"mismatched passwords", "Ada", "Lovelace", "ada@example.com", "password123", "different123"},
		{"short password", "Ada", "Lovelace", "ada@example.com", "short", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := app.register(tc.first, tc.last, tc.email, tc.pw, tc.confirm)
			assert.Equal(t, http.StatusFound, resp.Code)
			assert.Equal(t, "/", resp.Header().Get("Location"))
		})
	}

	var count int64
	require.NoError(t, app.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count, "no user should be created from an invalid form")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.do("GET", "/logout", nil)

	resp := app.register("Ada", "Lovelace", "ada@example.com", "password123", "password123")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))

	var count int64
	require.NoError(t, app.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.do("GET", "/logout", nil)

	// Wrong password for an existing email must not crash.
	resp := app.login("ada@example.com", "wrongpassword")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))

	// Unknown email gets the same generic outcome.
	resp = app.login("nobody@example.com", "password123")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))

	// Correct credentials establish a session and land on the feed.
	resp = app.login("ada@example.com", "password123")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/bright_ideas", resp.Header().Get("Location"))

	resp = app.do("GET", "/bright_ideas", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Ada Lovelace")
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()

	resp := app.do("GET", "/logout", nil)
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))

	resp = app.do("GET", "/bright_ideas", nil)
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))
}

func TestFeedRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp := app.do("GET", "/bright_ideas", nil)
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))

	resp = app.do("GET", "/", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Please Log In")
}

func TestAddPost(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()

	resp := app.addPost("Hello")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/bright_ideas", resp.Header().Get("Location"))

	var posts []models.Post
	require.NoError(t, app.db.Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Message)
	assert.Equal(t, app.userByEmail("ada@example.com").ID, posts[0].AuthorID)

	resp = app.do("GET", "/bright_ideas", nil)
	assert.Contains(t, resp.Body.String(), "Hello")
}

func TestAddPostRejectsEmpty(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()

	resp := app.addPost("   ")
	assert.Equal(t, http.StatusFound, resp.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLikeTwiceDoesNotDuplicate(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.addPost("Hello")

	var post models.Post
	require.NoError(t, app.db.First(&post).Error)

	app.do("POST", postPath(post.ID, "like"), url.Values{})
	app.do("POST", postPath(post.ID, "like"), url.Values{})

	var count int64
	require.NoError(t, app.db.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUnlike(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.addPost("Hello")

	var post models.Post
	require.NoError(t, app.db.First(&post).Error)

	app.do("POST", postPath(post.ID, "like"), url.Values{})
	app.do("POST", postPath(post.ID, "unlike"), url.Values{})

	var count int64
	require.NoError(t, app.db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteLikedPost(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.addPost("Hello")

	var post models.Post
	require.NoError(t, app.db.First(&post).Error)
	app.do("POST", postPath(post.ID, "like"), url.Values{})

	resp := app.do("POST", postPath(post.ID, "delete"), url.Values{})
	assert.Equal(t, http.StatusFound, resp.Code)

	var posts, likes int64
	require.NoError(t, app.db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, app.db.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, posts)
	assert.Zero(t, likes)
}

func TestDeleteSomeoneElsesPost(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.addPost("Hello")

	var post models.Post
	require.NoError(t, app.db.First(&post).Error)

	app.do("GET", "/logout", nil)
	app.register("Alan", "Turing", "alan@example.com", "password123", "password123")

	resp := app.do("POST", postPath(post.ID, "delete"), url.Values{})
	assert.Equal(t, http.StatusFound, resp.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "a non-author must not delete the post")
}

func TestEditRejectsEmptyMessage(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.addPost("Hello")

	var post models.Post
	require.NoError(t, app.db.First(&post).Error)

	resp := app.do("GET", postPath(post.ID, "edit"), nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Hello")

	form := url.Values{}
	form.Add("message", "")
	resp = app.do("POST", postPath(post.ID, "update"), form)
	assert.Equal(t, http.StatusOK, resp.Code, "an empty edit re-renders the form")

	require.NoError(t, app.db.First(&post, post.ID).Error)
	assert.Equal(t, "Hello", post.Message, "the original message is retained")
}

func TestEditUpdatesMessage(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.addPost("Hello")

	var post models.Post
	require.NoError(t, app.db.First(&post).Error)

	form := url.Values{}
	form.Add("message", "Hello, revised")
	resp := app.do("POST", postPath(post.ID, "update"), form)
	assert.Equal(t, http.StatusFound, resp.Code)

	require.NoError(t, app.db.First(&post, post.ID).Error)
	assert.Equal(t, "Hello, revised", post.Message)
}

func TestUnknownPostRedirects(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()

	resp := app.do("POST", "/posts/999/like", url.Values{})
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/bright_ideas", resp.Header().Get("Location"))
}

func TestFollowAndUnfollow(t *testing.T) {
	app := newTestApp(t)
	app.register("Alan", "Turing", "alan@example.com", "password123", "password123")
	app.do("GET", "/logout", nil)
	app.registerDefault()

	ada := app.userByEmail("ada@example.com")
	alan := app.userByEmail("alan@example.com")

	followPath := "/follow/" + strconv.FormatUint(uint64(alan.ID), 10)
	app.do("GET", followPath, nil)
	app.do("GET", followPath, nil) // duplicate is a no-op

	var count int64
	require.NoError(t, app.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var follow models.Follow
	require.NoError(t, app.db.First(&follow).Error)
	assert.Equal(t, ada.ID, follow.FollowerID)
	assert.Equal(t, alan.ID, follow.FollowedID)

	app.do("GET", "/unfollow/"+strconv.FormatUint(uint64(alan.ID), 10), nil)
	require.NoError(t, app.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSelfFollowRejected(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()

	ada := app.userByEmail("ada@example.com")
	resp := app.do("GET", "/follow/"+strconv.FormatUint(uint64(ada.ID), 10), nil)
	assert.Equal(t, http.StatusFound, resp.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProfilePage(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.addPost("Hello")

	var post models.Post
	require.NoError(t, app.db.First(&post).Error)
	app.do("POST", postPath(post.ID, "like"), url.Values{})

	ada := app.userByEmail("ada@example.com")
	resp := app.do("GET", "/users/"+strconv.FormatUint(uint64(ada.ID), 10), nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Ada Lovelace")
	assert.Contains(t, resp.Body.String(), "ada@example.com")
	assert.Contains(t, resp.Body.String(), "Ideas posted: 1")
	assert.Contains(t, resp.Body.String(), "Ideas liked: 1")
}

func TestLikersPage(t *testing.T) {
	app := newTestApp(t)
	app.registerDefault()
	app.addPost("Hello")

	var post models.Post
	require.NoError(t, app.db.First(&post).Error)

	app.do("GET", "/logout", nil)
	app.register("Alan", "Turing", "alan@example.com", "password123", "password123")
	app.do("POST", postPath(post.ID, "like"), url.Values{})

	resp := app.do("GET", "/brightideas/"+strconv.FormatUint(uint64(post.ID), 10), nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Alan Turing")
}
