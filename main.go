package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/ndiaz/fitlink/internal/auth"
	"github.com/ndiaz/fitlink/internal/config"
	"github.com/ndiaz/fitlink/internal/handlers"
	"github.com/ndiaz/fitlink/internal/middleware"
	"github.com/ndiaz/fitlink/internal/store/sqlstore"
	"github.com/ndiaz/fitlink/internal/worker"
	"github.com/ndiaz/fitlink/internal/ws"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store, err := sqlstore.New(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	gateway := ws.NewGateway(tokens, store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	purger := &worker.Purger{Store: store, Interval: cfg.PurgeInterval, Retention: cfg.PurgeRetention}
	go purger.Run(ctx)

	authHandler := &handlers.AuthHandler{Store: store, Tokens: tokens}
	groupHandler := &handlers.GroupHandler{Store: store}
	trainerHandler := &handlers.TrainerHandler{Store: store}
	contractHandler := &handlers.ContractHandler{Store: store, Gateway: gateway}
	workoutHandler := &handlers.WorkoutHandler{Store: store}
	statsHandler := &handlers.StatsHandler{Store: store}

	r := mux.NewRouter()
	r.Use(middleware.Logging)

	r.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")

	// WebSocket endpoint; the gateway authenticates the connection itself.
	r.HandleFunc("/ws/messages", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(gateway, w, r)
	})

	api := r.NewRoute().Subrouter()
	api.Use(middleware.Auth(tokens))

	api.HandleFunc("/users/me", authHandler.DeleteMe).Methods("DELETE")

	api.HandleFunc("/groups", groupHandler.Create).Methods("POST")
	api.HandleFunc("/groups", groupHandler.List).Methods("GET")
	api.HandleFunc("/groups/search", groupHandler.Search).Methods("GET")
	api.HandleFunc("/groups/nearby", groupHandler.Nearby).Methods("GET")
	api.HandleFunc("/groups/member/{userId}", groupHandler.ByMember).Methods("GET")
	api.HandleFunc("/groups/{id}", groupHandler.Get).Methods("GET")
	api.HandleFunc("/groups/{id}", groupHandler.Update).Methods("PATCH")
	api.HandleFunc("/groups/{id}", groupHandler.Delete).Methods("DELETE")
	api.HandleFunc("/groups/{id}/join", groupHandler.Join).Methods("POST")
	api.HandleFunc("/groups/{id}/leave", groupHandler.Leave).Methods("POST")
	api.HandleFunc("/groups/{id}/members", groupHandler.Members).Methods("GET")
	api.HandleFunc("/groups/{id}/members/{userId}", groupHandler.RemoveMember).Methods("DELETE")
	api.HandleFunc("/groups/{id}/messages", groupHandler.Messages).Methods("GET")

	api.HandleFunc("/trainers", trainerHandler.Register).Methods("POST")
	api.HandleFunc("/trainers", trainerHandler.List).Methods("GET")
	api.HandleFunc("/trainers/{id}", trainerHandler.Get).Methods("GET")
	api.HandleFunc("/trainers/{id}/reviews", trainerHandler.Reviews).Methods("GET")
	api.HandleFunc("/trainers/{id}/reviews", trainerHandler.AddReview).Methods("POST")

	api.HandleFunc("/contracts", contractHandler.Hire).Methods("POST")
	api.HandleFunc("/contracts/my", contractHandler.My).Methods("GET")
	api.HandleFunc("/contracts/{id}/status", contractHandler.UpdateStatus).Methods("PATCH")

	api.HandleFunc("/workouts", workoutHandler.Create).Methods("POST")
	api.HandleFunc("/workouts", workoutHandler.List).Methods("GET")
	api.HandleFunc("/workouts/my", workoutHandler.My).Methods("GET")
	api.HandleFunc("/workouts/{id}", workoutHandler.Get).Methods("GET")
	api.HandleFunc("/workouts/{id}", workoutHandler.Update).Methods("PATCH")
	api.HandleFunc("/workouts/{id}", workoutHandler.Delete).Methods("DELETE")

	api.HandleFunc("/statistics/overview", statsHandler.Overview).Methods("GET")
	api.HandleFunc("/statistics/me", statsHandler.Me).Methods("GET")

	server := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	log.Println("Starting server on", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
