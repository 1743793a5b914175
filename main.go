package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/wordingo/backend/config"
	"github.com/wordingo/backend/handlers"
	"github.com/wordingo/backend/middleware"
	"github.com/wordingo/backend/service"
	"github.com/wordingo/backend/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("indexes:", err)
	}

	var s3Service *service.S3Service
	if cfg.S3Bucket != "" {
		s3Service, err = service.NewS3Service(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3:", err)
		}
	} else {
		log.Println("warning: AWS_S3_BUCKET not set; image uploads disabled")
	}

	var mailer *service.Mailer
	if cfg.SMTPHost != "" {
		mailer = service.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		log.Println("warning: SMTP_HOST not set; OTP uses the fixed development code")
	}

	ratings := service.NewRatingMaintainer(db)
	registrations := service.NewRegistrations(db)
	otpStore := service.NewOTPStore(cfg.OTPTTL, mailer)

	authHandler := &handlers.AuthHandler{
		DB:                 db,
		OTP:                otpStore,
		JWTSecret:          cfg.JWTSecret,
		TokenTTL:           cfg.TokenTTL,
		AdminPassword:      cfg.AdminPassword,
		SuperAdminPassword: cfg.SuperAdminPassword,
	}
	usersHandler := &handlers.UsersHandler{DB: db}
	booksHandler := &handlers.BooksHandler{DB: db, Ratings: ratings}
	reviewsHandler := &handlers.ReviewsHandler{DB: db, Ratings: ratings}
	authorsHandler := &handlers.AuthorsHandler{DB: db, Ratings: ratings}
	eventsHandler := &handlers.EventsHandler{DB: db, Registrations: registrations}
	postsHandler := &handlers.PostsHandler{DB: db}
	commentsHandler := &handlers.CommentsHandler{DB: db}
	adminHandler := &handlers.AdminHandler{DB: db, Ratings: ratings}
	uploadHandler := &handlers.UploadHandler{S3: s3Service, MaxUploadMB: cfg.MaxUploadMB}

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"welcome to wordingo."}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/send-otp", authHandler.SendOTP)
			r.Post("/verify-otp", authHandler.VerifyOTP)
			r.Post("/refresh-token", authHandler.RefreshToken)
			r.Post("/admin-login", authHandler.AdminLogin)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTSecret))
				r.Post("/logout", authHandler.Logout)
				r.Put("/update-profile", authHandler.UpdateProfile)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Get("/profile", usersHandler.Profile)
			r.Put("/profile", usersHandler.UpdateProfile)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", booksHandler.List)
			r.Get("/categories", booksHandler.Categories)
			r.Get("/trending", booksHandler.Trending)
			r.Get("/{id}", booksHandler.Get)
			r.Get("/{id}/reviews", reviewsHandler.ListForBook)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTSecret))
				r.Post("/", booksHandler.Create)
				r.Put("/{id}", booksHandler.Update)
				r.Post("/{id}/reviews", reviewsHandler.Create)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/{id}", reviewsHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTSecret))
				r.Put("/{id}", reviewsHandler.Update)
				r.Delete("/{id}", reviewsHandler.Delete)
				r.Post("/{id}/upvote", reviewsHandler.Upvote)
				r.Post("/{id}/downvote", reviewsHandler.Downvote)
			})
		})

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", authorsHandler.List)
			r.Get("/{slug}", authorsHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTSecret))
				r.Post("/{slug}/rate", authorsHandler.Rate)
				r.Get("/{slug}/my-rating", authorsHandler.MyRating)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventsHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTSecret))
				r.Get("/my-events", eventsHandler.MyEvents)
				r.Get("/registered", eventsHandler.Registered)
				r.Post("/", eventsHandler.Create)
				r.Put("/{id}", eventsHandler.Update)
				r.Delete("/{id}", eventsHandler.Delete)
				r.Post("/{id}/register", eventsHandler.Register)
				r.Delete("/{id}/register", eventsHandler.Unregister)
			})
			r.Get("/{id}", eventsHandler.Get)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalAuth(cfg.JWTSecret))
				r.Get("/", postsHandler.List)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTSecret))
				r.Get("/user/saved", postsHandler.Saved)
				r.Get("/user/my-posts", postsHandler.MyPosts)
				r.Post("/", postsHandler.Create)
				r.Put("/{id}", postsHandler.Update)
				r.Delete("/{id}", postsHandler.Delete)
				r.Put("/{id}/like", postsHandler.Like)
				r.Put("/{id}/save", postsHandler.Save)
				r.Post("/{id}/comments", commentsHandler.Create)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalAuth(cfg.JWTSecret))
				r.Get("/{id}", postsHandler.Get)
			})
			r.Get("/{id}/comments", commentsHandler.ListForPost)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.JWTSecret, db))
			r.Get("/dashboard", adminHandler.Dashboard)

			r.Get("/users", adminHandler.ListUsers)
			r.Put("/users/{id}", adminHandler.UpdateUser)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin(cfg.JWTSecret, db))
				r.Delete("/users/{id}", adminHandler.DeleteUser)
			})

			r.Get("/books", adminHandler.ListBooks)
			r.Post("/books", adminHandler.CreateBook)
			r.Put("/books/{id}", adminHandler.UpdateBook)
			r.Put("/books/{id}/status", adminHandler.SetBookStatus)
			r.Delete("/books/{id}", adminHandler.DeleteBook)

			r.Get("/events", adminHandler.ListEvents)
			r.Post("/events", adminHandler.CreateEvent)
			r.Put("/events/{id}", adminHandler.UpdateEvent)
			r.Put("/events/{id}/status", adminHandler.SetEventStatus)
			r.Delete("/events/{id}", adminHandler.DeleteEvent)

			r.Get("/authors", adminHandler.ListAuthors)
			r.Get("/authors/list", adminHandler.AuthorsDropdown)
			r.Get("/authors/{id}", adminHandler.GetAuthor)
			r.Post("/authors", adminHandler.CreateAuthor)
			r.Put("/authors/{id}", adminHandler.UpdateAuthor)
			r.Delete("/authors/{id}", adminHandler.DeleteAuthor)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Post("/upload/image", uploadHandler.Image)
		})
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
