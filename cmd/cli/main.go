package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wadjakorntonsri/seo-redirects/pkg/adapters/repository"
	"github.com/wadjakorntonsri/seo-redirects/pkg/config"
	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
	"github.com/wadjakorntonsri/seo-redirects/pkg/logger"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

const usage = "expected 'export' or 'import' subcommands"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportFormat := exportCmd.String("format", "json", "output format: json or yaml")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "file to import")
	importFormat := importCmd.String("format", "json", "input format: json or yaml")
	overwrite := importCmd.Bool("overwrite", false, "replace redirects whose slug already exists")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	// stdout carries the export
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, OutputPath: cfg.LogFile, Stderr: true})
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()

	ctx := context.Background()
	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer repo.Close()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := exportRedirects(ctx, repo, os.Stdout, *exportFormat); err != nil {
			log.Fatal("export failed", zap.Error(err))
		}
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		f, err := os.Open(*importFile)
		if err != nil {
			log.Fatal("failed to open file", zap.String("file", *importFile), zap.Error(err))
		}
		defer f.Close()

		stats, err := importRedirects(ctx, repo, f, *importFormat, *overwrite, log)
		if err != nil {
			log.Fatal("import failed", zap.Error(err))
		}
		log.Info("import finished",
			zap.Int("imported", stats.Imported),
			zap.Int("skipped", stats.Skipped),
			zap.Int("failed", stats.Failed),
		)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func exportRedirects(ctx context.Context, repo ports.RedirectRepository, w io.Writer, format string) error {
	redirects, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(redirects)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(redirects); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

type importStats struct {
	Imported int
	Skipped  int
	Failed   int
}

func importRedirects(ctx context.Context, repo ports.RedirectRepository, r io.Reader, format string, overwrite bool, log *zap.Logger) (importStats, error) {
	var stats importStats

	redirects := map[string]domain.Redirect{}
	switch format {
	case "json":
		if err := json.NewDecoder(r).Decode(&redirects); err != nil {
			return stats, fmt.Errorf("decode json: %w", err)
		}
	case "yaml":
		if err := yaml.NewDecoder(r).Decode(&redirects); err != nil && err != io.EOF {
			return stats, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return stats, fmt.Errorf("unknown format %q", format)
	}

	slugs := make([]string, 0, len(redirects))
	for slug := range redirects {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		if !overwrite {
			existing, err := repo.Get(ctx, slug)
			if err != nil {
				return stats, err
			}
			if existing != nil {
				log.Info("skipping existing slug", zap.String("slug", slug))
				stats.Skipped++
				continue
			}
		}

		if err := repo.Save(ctx, slug, redirects[slug]); err != nil {
			log.Warn("failed to import redirect", zap.String("slug", slug), zap.Error(err))
			stats.Failed++
			continue
		}
		stats.Imported++
	}
	return stats, nil
}
