package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/wildflour/bakery-backend/internal/category"
	"github.com/wildflour/bakery-backend/internal/config"
	"github.com/wildflour/bakery-backend/internal/course"
	"github.com/wildflour/bakery-backend/internal/dashboard"
	"github.com/wildflour/bakery-backend/internal/inventory"
	"github.com/wildflour/bakery-backend/internal/order"
	"github.com/wildflour/bakery-backend/internal/page"
	"github.com/wildflour/bakery-backend/internal/product"
	"github.com/wildflour/bakery-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)
	seedCategories(db)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	ledger := inventory.NewPostgresLedger(db)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, productRepo, ledger)
	orderHandler := order.NewHandler(orderService, cfg.APIBaseURL)

	dashboardService := dashboard.NewService(orderRepo, productRepo, cfg.APIBaseURL)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))
	courseHandler := course.NewHandler(course.NewService(course.NewPostgresRepository(db)))
	pageHandler := page.NewHandler(page.NewService(page.NewPostgresRepository(db)))

	// public routes are registered before the JWT middleware so they are
	// matched without a token
	app.Get("/health", healthCheck)
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	courseHandler.RegisterPublicRoutes(app)
	pageHandler.RegisterPublicRoutes(app)
	dashboardHandler.RegisterPublicRoutes(app)
	app.Static("/uploads", "./uploads")

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	courseHandler.RegisterProtectedRoutes(app)
	pageHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	app.Post("/api/upload", uploadFile)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("%s %s -> %d (%v)\n", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"message":   "Server is healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price numeric NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			image TEXT,
			category TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			reference TEXT NOT NULL,
			items jsonb NOT NULL DEFAULT '[]',
			total numeric NOT NULL DEFAULT 0,
			customer jsonb NOT NULL DEFAULT '{}',
			shipping jsonb NOT NULL DEFAULT '{}',
			payment jsonb NOT NULL DEFAULT '{}',
			user_id INT,
			status TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			image TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			price numeric NOT NULL DEFAULT 0,
			image TEXT,
			schedule TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS course_applications (
			id SERIAL PRIMARY KEY,
			course_id INT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			message TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			id SERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			content TEXT,
			updated_at TEXT
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

// seedCategories fills the categories table with the storefront defaults when
// it is empty.
func seedCategories(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil || count > 0 {
		return
	}

	seed := []struct{ name, img string }{
		{"Bread", "/categories/bread.jpg"},
		{"Cakes", "/categories/cakes.jpg"},
		{"Pastries", "/categories/pastries.jpg"},
		{"Cookies", "/categories/cookies.jpg"},
		{"Pies", "/categories/pies.jpg"},
	}
	for _, s := range seed {
		if _, err := db.Exec(`INSERT INTO categories (name, image) VALUES ($1,$2)`, s.name, s.img); err != nil {
			fmt.Printf("warning: could not seed category %s: %v\n", s.name, err)
		}
	}
}

func uploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}

	name := uuid.NewString() + "_" + file.Filename
	if err := c.SaveFile(file, "./uploads/"+name); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"path": "/uploads/" + name})
}
