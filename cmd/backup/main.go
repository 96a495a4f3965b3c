// Binario de un solo disparo: crea un backup y limpia los antiguos. Pensado
// para cron del sistema o ejecución manual antes de una actualización.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/tu-usuario/barstock/internal/infrastructure/backup"
	"github.com/tu-usuario/barstock/pkg/config"
	"github.com/tu-usuario/barstock/pkg/logger"
)

func main() {
	restore := flag.String("restore", "", "restaurar la base de datos desde el backup indicado")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	svc := backup.NewService(cfg.Backup, cfg.DB, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *restore != "" {
		if err := svc.Restore(ctx, *restore); err != nil {
			log.Error().Err(err).Msg("restauración fallida")
			os.Exit(1)
		}
		return
	}

	result := svc.RunAutomatic(ctx)
	if result.Err != nil {
		os.Exit(1)
	}
	log.Info().
		Str("archivo", result.Created.Name).
		Int("eliminados", result.Removed).
		Dur("duracion", result.Duration).
		Msg("Ciclo de backup completado")
}
