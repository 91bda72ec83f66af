package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/dulceria-api/pkg/config"
)

// NewPool crea el pool de conexiones PostgreSQL de la dulcería.
// Con ForceIPv4 el host se resuelve a IPv4 (Docker suele no tener IPv6).
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := cfg.ConnectionString()
	if cfg.ForceIPv4 {
		dsn = dsnWithIPv4(dsn)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.ForceIPv4 {
		poolConfig.ConnConfig.DialFunc = dialIPv4
	}

	poolConfig.MaxConns = 10
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "dulceria-api"

	// NUMERIC -> shopspring/decimal en todas las conexiones (cantidades, costos, precios).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := resolveIPv4(ctx, host)
	if err != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// resolveIPv4 devuelve la primera dirección IPv4 del host.
func resolveIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("%s sin IPv4", host)
	}
	return ips[0].String(), nil
}

// dsnWithIPv4 reemplaza el hostname de una URL postgres:// por su IPv4; si falla deja el DSN intacto.
func dsnWithIPv4(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Hostname() == "" {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := resolveIPv4(context.Background(), u.Hostname())
	if err != nil {
		return dsn
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
