package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/handlers"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(userHandler *handlers.UserHandler, postHandler *handlers.PostHandler) http.Handler {
	router := mux.NewRouter()

	// Landing and auth routes
	router.HandleFunc("/", userHandler.Index).Methods("GET")
	router.HandleFunc("/register", userHandler.Register).Methods("POST")
	router.HandleFunc("/login", userHandler.Login).Methods("POST")
	router.HandleFunc("/logout", userHandler.Logout).Methods("GET")

	// Feed and post routes
	router.HandleFunc("/bright_ideas", postHandler.Feed).Methods("GET")
	router.HandleFunc("/add_post", postHandler.AddPost).Methods("POST")
	router.HandleFunc("/posts/{id}/like", postHandler.Like).Methods("POST")
	router.HandleFunc("/posts/{id}/unlike", postHandler.Unlike).Methods("POST")
	router.HandleFunc("/posts/{id}/delete", postHandler.Delete).Methods("POST")
	router.HandleFunc("/posts/{id}/edit", postHandler.EditForm).Methods("GET")
	router.HandleFunc("/posts/{id}/update", postHandler.Update).Methods("POST")
	router.HandleFunc("/brightideas/{id}", postHandler.Likers).Methods("GET")

	// User routes
	router.HandleFunc("/users/{id}", userHandler.Profile).Methods("GET")
	router.HandleFunc("/follow/{id}", userHandler.Follow).Methods("GET")
	router.HandleFunc("/unfollow/{id}", userHandler.Unfollow).Methods("GET")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return monitoring.InstrumentHandler(router)
}
