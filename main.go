package main

import (
	"github.com/soporteti/inventario_service/config"
	"github.com/soporteti/inventario_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
