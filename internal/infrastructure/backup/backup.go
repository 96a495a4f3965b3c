// Package backup realiza copias de seguridad de la base de datos mediante
// pg_dump, con compresión gzip, retención configurable y restauración vía psql.
package backup

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tu-usuario/barstock/pkg/config"
	"github.com/tu-usuario/barstock/pkg/logger"
)

const (
	filePrefix      = "stock_backup_"
	timestampLayout = "20060102_150405"
)

// Service orquesta la creación, listado, limpieza y restauración de backups.
type Service struct {
	cfg config.BackupConfig
	db  config.DBConfig
	log *logger.Logger
}

func NewService(cfg config.BackupConfig, db config.DBConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, db: db, log: log}
}

// Info describe un backup existente en disco.
type Info struct {
	Name       string
	Path       string
	SizeMB     float64
	CreatedAt  time.Time
	AgeDays    int
	Compressed bool
}

// Result resume una ejecución del ciclo automático.
type Result struct {
	Created  *Info
	Removed  int
	Duration time.Duration
	Err      error
}

// Create genera un dump comprimido de la base de datos y devuelve su descripción.
func (s *Service) Create(ctx context.Context) (*Info, error) {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de backups: %w", err)
	}

	now := time.Now()
	name := filePrefix + now.Format(timestampLayout) + ".sql.gz"
	path := filepath.Join(s.cfg.Dir, name)

	if err := s.dumpTo(ctx, path); err != nil {
		os.Remove(path)
		return nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat backup: %w", err)
	}

	info := &Info{
		Name:       name,
		Path:       path,
		SizeMB:     float64(fi.Size()) / (1024 * 1024),
		CreatedAt:  now,
		Compressed: true,
	}
	s.log.Info().Str("archivo", name).Float64("size_mb", info.SizeMB).Msg("Backup creado")
	return info, nil
}

func (s *Service) dumpTo(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear archivo de backup: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	cmd := exec.CommandContext(ctx, s.cfg.PgDumpPath, "--no-owner", "--no-privileges", s.db.ConnectionString())
	cmd.Stdout = gz
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pg_dump: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("comprimir backup: %w", err)
	}
	return f.Sync()
}

// List devuelve los backups existentes, el más reciente primero.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer directorio de backups: %w", err)
	}

	now := time.Now()
	var infos []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), filePrefix) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		created := parseTimestamp(e.Name())
		if created.IsZero() {
			created = fi.ModTime()
		}
		infos = append(infos, Info{
			Name:       e.Name(),
			Path:       filepath.Join(s.cfg.Dir, e.Name()),
			SizeMB:     float64(fi.Size()) / (1024 * 1024),
			CreatedAt:  created,
			AgeDays:    int(now.Sub(created).Hours() / 24),
			Compressed: strings.HasSuffix(e.Name(), ".gz"),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// parseTimestamp extrae la fecha del nombre stock_backup_YYYYMMDD_HHMMSS.sql[.gz].
func parseTimestamp(name string) time.Time {
	raw := strings.TrimPrefix(name, filePrefix)
	raw = strings.TrimSuffix(raw, ".gz")
	raw = strings.TrimSuffix(raw, ".sql")
	t, err := time.ParseInLocation(timestampLayout, raw, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CleanOld elimina los backups con más días de antigüedad que el límite.
// Devuelve cuántos archivos se eliminaron.
func (s *Service) CleanOld(retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	infos, err := s.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, info := range infos {
		if info.AgeDays < retentionDays {
			continue
		}
		if err := os.Remove(info.Path); err != nil {
			s.log.Warn().Err(err).Str("archivo", info.Name).Msg("No se pudo eliminar backup antiguo")
			continue
		}
		removed++
	}
	if removed > 0 {
		s.log.Info().Int("eliminados", removed).Int("retencion_dias", retentionDays).Msg("Backups antiguos eliminados")
	}
	return removed, nil
}

// Restore restaura la base de datos desde un backup existente. Antes de tocar
// nada crea un backup de seguridad del estado actual.
func (s *Service) Restore(ctx context.Context, name string) error {
	path := filepath.Join(s.cfg.Dir, filepath.Base(name))
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup %q no encontrado: %w", name, err)
	}

	if _, err := s.Create(ctx); err != nil {
		return fmt.Errorf("backup de seguridad previo a restauración: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir backup: %w", err)
	}
	defer f.Close()

	var in io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("descomprimir backup: %w", err)
		}
		defer gz.Close()
		in = gz
	}

	cmd := exec.CommandContext(ctx, s.cfg.PsqlPath, "--quiet", s.db.ConnectionString())
	cmd.Stdin = in
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("psql restore: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	s.log.Info().Str("archivo", name).Msg("Base de datos restaurada")
	return nil
}

// RunAutomatic ejecuta un ciclo completo: backup nuevo más limpieza de antiguos.
func (s *Service) RunAutomatic(ctx context.Context) Result {
	start := time.Now()

	info, err := s.Create(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Backup automático falló")
		return Result{Err: err, Duration: time.Since(start)}
	}

	removed, err := s.CleanOld(s.cfg.RetentionDays)
	if err != nil {
		s.log.Warn().Err(err).Msg("Limpieza de backups antiguos falló")
	}

	return Result{Created: info, Removed: removed, Duration: time.Since(start)}
}

// Schedule lanza el ciclo automático cada intervalo hasta que el contexto se
// cancele. Con intervalo <= 0 no hace nada.
func (s *Service) Schedule(ctx context.Context) {
	if s.cfg.IntervalHours <= 0 {
		return
	}
	interval := time.Duration(s.cfg.IntervalHours) * time.Hour
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		s.log.Info().Int("intervalo_horas", s.cfg.IntervalHours).Msg("Backups automáticos activados")
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunAutomatic(ctx)
			}
		}
	}()
}
