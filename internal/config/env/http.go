package env

import (
	"net"
	"os"
	"strconv"

	"genesis_reels/internal/config"
)

const (
	httpHostEnvName = "HTTP_HOST"
	httpPortEnvName = "HTTP_PORT"

	defaultHTTPPort = 8080
)

type httpConfig struct {
	host string
	port int
}

// NewHTTPConfig - адрес сервера. Без HTTP_PORT слушаем 8080 на всех интерфейсах
func NewHTTPConfig() (config.HTTPConfig, error) {
	port := defaultHTTPPort
	if raw := os.Getenv(httpPortEnvName); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p <= 0 || p > 65535 {
			return nil, errInvalidEnv(httpPortEnvName, raw)
		}
		port = p
	}

	return &httpConfig{
		host: os.Getenv(httpHostEnvName),
		port: port,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, strconv.Itoa(cfg.port))
}
