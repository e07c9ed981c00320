package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/mtmaterial/handlers"
	"p9e.in/mtmaterial/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (worker surface, no authentication)
	// =====================================================
	r.HandleFunc("/login", handlers.Login).Methods("POST")

	public := r.PathPrefix("/api/v1").Subrouter()
	public.HandleFunc("/materials", handlers.ListMaterials).Methods("GET")
	public.HandleFunc("/submissions", handlers.CreateSubmission).Methods("POST")
	public.HandleFunc("/orders", handlers.CreateOrder).Methods("POST")
	public.HandleFunc("/upload", handlers.UploadAttachment).Methods("POST")

	// =====================================================
	// Admin Routes (require JWT authentication)
	// =====================================================
	admin := r.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(middleware.JWTMiddleware)

	admin.HandleFunc("/token", handlers.GetCurrentUser).Methods("GET")

	admin.HandleFunc("/materials", handlers.ListMaterials).Methods("GET")
	admin.HandleFunc("/materials", handlers.CreateMaterial).Methods("POST")
	admin.HandleFunc("/materials/{id}", handlers.UpdateMaterial).Methods("PATCH")

	admin.HandleFunc("/submissions", handlers.ListSubmissions).Methods("GET")
	admin.HandleFunc("/submissions/{id}", handlers.GetSubmission).Methods("GET")

	admin.HandleFunc("/orders", handlers.ListOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", handlers.GetOrder).Methods("GET")
	admin.HandleFunc("/orders/{id}", handlers.UpdateOrderStatus).Methods("PATCH")

	admin.HandleFunc("/objects", handlers.ListObjects).Methods("GET")
	admin.HandleFunc("/objects/{dehp}", handlers.GetObject).Methods("GET")

	admin.HandleFunc("/teams", handlers.ListTeams).Methods("GET")
	admin.HandleFunc("/teams/{team}", handlers.GetTeam).Methods("GET")
	admin.HandleFunc("/teams/{team}/settings", handlers.UpsertTeamSettings).Methods("PUT")

	admin.HandleFunc("/notifications", handlers.ListNotifications).Methods("GET")
	admin.HandleFunc("/notifications/{id}", handlers.UpdateNotification).Methods("PATCH")

	admin.HandleFunc("/attachments/{id}", handlers.GetAttachment).Methods("GET")

	admin.HandleFunc("/export", handlers.Export).Methods("GET")

	return r
}
