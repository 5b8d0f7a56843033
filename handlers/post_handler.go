package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/auth"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/models"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/monitoring"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/repositories"
)

// PostHandler serves the feed and everything done to a single post.
type PostHandler struct {
	Users    repositories.UserRepository
	Posts    repositories.PostRepository
	Likes    repositories.LikeRepository
	Sessions *auth.Manager
	Renderer *Renderer
}

func NewPostHandler(users repositories.UserRepository, posts repositories.PostRepository,
	likes repositories.LikeRepository, sessions *auth.Manager, renderer *Renderer) *PostHandler {
	return &PostHandler{
		Users:    users,
		Posts:    posts,
		Likes:    likes,
		Sessions: sessions,
		Renderer: renderer,
	}
}

type feedPost struct {
	models.Post
	LikeCount int64
	Liked     bool
	Mine      bool
}

type feedPage struct {
	User    *models.User
	Posts   []feedPost
	Flashes []string
}

// Feed lists every bright idea, newest first.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	user, err := h.Users.FindByID(userID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	posts, err := h.Posts.All()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	view := make([]feedPost, 0, len(posts))
	for _, p := range posts {
		count, err := h.Likes.CountByPost(p.ID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		liked, err := h.Likes.Contains(p.ID, userID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		view = append(view, feedPost{
			Post:      p,
			LikeCount: count,
			Liked:     liked,
			Mine:      p.AuthorID == userID,
		})
	}

	h.Renderer.Render(w, "feed.html", feedPage{
		User:    user,
		Posts:   view,
		Flashes: h.Sessions.Flashes(w, r),
	})
}

// AddPost creates a bright idea authored by the current user.
func (h *PostHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		h.Sessions.Flash(w, r, "Your idea cannot be empty")
		http.Redirect(w, r, "/bright_ideas", http.StatusFound)
		return
	}
	if len(message) > models.MaxMessageLen {
		h.Sessions.Flash(w, r, "Your idea is too long")
		http.Redirect(w, r, "/bright_ideas", http.StatusFound)
		return
	}

	post := models.Post{Message: message, AuthorID: userID}
	if err := h.Posts.Create(&post); err != nil {
		logrus.Errorf("Failed to create post: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	monitoring.PostsCreated.Inc()
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}

// Like attaches the current user to the post's likers. Liking twice
// is a no-op.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	post, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.Likes.Add(post.ID, userID); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	monitoring.LikesAdded.Inc()
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}

// Unlike removes the current user's like, if any.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	post, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.Likes.Remove(post.ID, userID); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}

// Delete removes a post and all of its likes. Only the author may
// delete.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	post, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if post.AuthorID != userID {
		h.Sessions.Flash(w, r, "You can only delete your own ideas")
		http.Redirect(w, r, "/bright_ideas", http.StatusFound)
		return
	}

	if err := h.Posts.Delete(post.ID); err != nil {
		logrus.Errorf("Failed to delete post %d: %v", post.ID, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}

type editPage struct {
	Post    *models.Post
	Flashes []string
}

// EditForm renders the current message for in-place editing. Only the
// author may edit.
func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	post, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if post.AuthorID != userID {
		h.Sessions.Flash(w, r, "You can only edit your own ideas")
		http.Redirect(w, r, "/bright_ideas", http.StatusFound)
		return
	}

	h.Renderer.Render(w, "edit.html", editPage{
		Post:    post,
		Flashes: h.Sessions.Flashes(w, r),
	})
}

// Update applies an edit. An empty message is rejected and the
// original message is retained.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.Sessions)
	if !ok {
		return
	}

	post, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if post.AuthorID != userID {
		h.Sessions.Flash(w, r, "You can only edit your own ideas")
		http.Redirect(w, r, "/bright_ideas", http.StatusFound)
		return
	}

	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		h.Sessions.Flash(w, r, "Your idea cannot be empty")
		h.Renderer.Render(w, "edit.html", editPage{
			Post:    post,
			Flashes: h.Sessions.Flashes(w, r),
		})
		return
	}
	if len(message) > models.MaxMessageLen {
		h.Sessions.Flash(w, r, "Your idea is too long")
		h.Renderer.Render(w, "edit.html", editPage{
			Post:    post,
			Flashes: h.Sessions.Flashes(w, r),
		})
		return
	}

	if err := h.Posts.UpdateMessage(post.ID, message); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/bright_ideas", http.StatusFound)
}

type likersPage struct {
	Post    *models.Post
	Likers  []models.User
	Flashes []string
}

// Likers lists everyone who liked a post.
func (h *PostHandler) Likers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r, h.Sessions); !ok {
		return
	}

	post, ok := h.lookup(w, r)
	if !ok {
		return
	}

	likers, err := h.Likes.Likers(post.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	h.Renderer.Render(w, "likers.html", likersPage{
		Post:    post,
		Likers:  likers,
		Flashes: h.Sessions.Flashes(w, r),
	})
}

// lookup resolves the {id} route variable to a post, flashing a
// not-found notice when it doesn't resolve.
func (h *PostHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, ok := pathID(r)
	if !ok {
		h.Sessions.Flash(w, r, "Idea not found")
		http.Redirect(w, r, "/bright_ideas", http.StatusFound)
		return nil, false
	}

	post, err := h.Posts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.Sessions.Flash(w, r, "Idea not found")
			http.Redirect(w, r, "/bright_ideas", http.StatusFound)
			return nil, false
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return nil, false
	}
	return post, true
}
