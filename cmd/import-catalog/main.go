// Command import-catalog loads the item catalog from a CSV file into the
// database. Expected columns, with a header row:
//
//	name,weapon_type,weapon_name,skin_name,condition,category
//
// Rows are upserted by name, so re-running the import is safe.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/maksym-ppt/skins-price-alert/internal/config"
	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"github.com/maksym-ppt/skins-price-alert/internal/infra/db"
	"github.com/maksym-ppt/skins-price-alert/internal/infra/log"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("file", "items.csv", "path to the catalog CSV file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(ctx, cfg, logger, *path); err != nil {
		logger.Error("catalog import failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, path string) error {
	items, err := readCatalog(path)
	if err != nil {
		return err
	}
	logger.Info("catalog file parsed", zap.String("file", path), zap.Int("items", len(items)))

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := dbConn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	repo := db.NewCatalogRepository(dbConn)
	if err := repo.Upsert(ctx, items); err != nil {
		return err
	}

	logger.Info("catalog import complete", zap.Int("items", len(items)))
	return nil
}

func readCatalog(path string) ([]domain.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 6

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if strings.ToLower(strings.TrimSpace(header[0])) != "name" {
		return nil, fmt.Errorf("unexpected header %q, want name,weapon_type,weapon_name,skin_name,condition,category", strings.Join(header, ","))
	}

	var items []domain.Item
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty item name", line)
		}
		items = append(items, domain.Item{
			Name:       name,
			WeaponType: strings.TrimSpace(record[1]),
			WeaponName: strings.TrimSpace(record[2]),
			SkinName:   strings.TrimSpace(record[3]),
			Condition:  strings.TrimSpace(record[4]),
			Category:   strings.TrimSpace(record[5]),
		})
	}
	return items, nil
}
