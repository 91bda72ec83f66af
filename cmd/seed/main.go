// seed crea los datos base de la dulcería: bodega central, sucursal, categorías
// y el usuario administrador inicial. Es idempotente: lo existente se omite.
//
// Uso: go run ./cmd/seed -email admin@dulceria.cl -password secreto123
// Sin flags toma SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD y SEED_ADMIN_NAME.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/auth"
	"github.com/jhoicas/dulceria-api/internal/application/catalog"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dulceria-api/pkg/config"
	"github.com/jhoicas/dulceria-api/pkg/logger"
)

var warehouses = []dto.CreateWarehouseRequest{
	{Code: "BOD-CENTRAL", Name: "Bodega Central", Description: "Bodega principal de abastecimiento"},
	{Code: "SUC-001", Name: "Sucursal 1", Description: "Sala de ventas"},
}

var categories = []dto.CreateCategoryRequest{
	{Name: "Chocolates"},
	{Name: "Gomitas"},
	{Name: "Caramelos"},
	{Name: "Chicles"},
	{Name: "Galletas"},
	{Name: "Snacks"},
	{Name: "Bebidas"},
}

func main() {
	email := flag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "email del administrador")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "password del administrador (mín. 8)")
	name := flag.String("name", envOr("SEED_ADMIN_NAME", "Administrador"), "nombre del administrador")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	dispatcher := audit.NewDispatcher(postgres.NewAuditRepository(pool), log.Component("audit"), 64, 1)
	defer dispatcher.Close()
	actor := audit.Actor{IP: "127.0.0.1", UserAgent: "seed"}

	warehouseUC := catalog.NewWarehouseUseCase(postgres.NewWarehouseRepository(pool), dispatcher)
	for _, w := range warehouses {
		out, err := warehouseUC.Create(ctx, actor, w)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			log.Info().Str("codigo", w.Code).Msg("bodega ya existe")
		case err != nil:
			log.Fatal().Err(err).Str("codigo", w.Code).Msg("crear bodega")
		default:
			log.Info().Str("codigo", out.Code).Str("id", out.ID).Msg("bodega creada")
		}
	}

	categoryUC := catalog.NewCategoryUseCase(postgres.NewCategoryRepository(pool))
	for _, c := range categories {
		out, err := categoryUC.Create(ctx, c)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			log.Info().Str("nombre", c.Name).Msg("categoría ya existe")
		case err != nil:
			log.Fatal().Err(err).Str("nombre", c.Name).Msg("crear categoría")
		default:
			log.Info().Str("nombre", out.Name).Msg("categoría creada")
		}
	}

	if *email == "" || *password == "" {
		log.Warn().Msg("sin email/password: no se crea el administrador")
		return
	}
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.NewThrottle(cfg.Login.MaxAttempts, time.Minute, time.Minute), dispatcher, log.Component("auth"))

	user, err := authUC.RegisterUser(ctx, *email, *password, *name, entity.RoleAdmin)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", *email).Msg("administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Str("email", user.Email).Str("id", user.ID).Msg("administrador creado")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
