package main

// Офлайн-индексатор: обходит каталог записей DATAtourisme и собирает лёгкий
// пространственный индекс (id, имя, координаты, типы, относительный путь,
// источник). Полные записи при запросах грузятся по filePath из индекса.

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/pkg/logger"
	"github.com/tourism-poi-service/internal/repository/datatourisme"
	"go.uber.org/zap"
)

func main() {
	var (
		objectsDir = flag.String("objects", "./public/POIs/objects", "directory with DATAtourisme JSON records")
		outputFile = flag.String("out", "./public/POIs/poi-index.json", "output index file")
		logLevel   = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	log, err := logger.New(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	start := time.Now()

	entries, skipped, err := scanDirectory(*objectsDir, log)
	if err != nil {
		log.Fatal("Failed to scan objects directory", zap.Error(err))
	}

	var hikingCount, poiCount int
	for _, e := range entries {
		if e.Source == domain.SourceHiking {
			hikingCount++
		} else {
			poiCount++
		}
	}

	log.Info("POIs scanned",
		zap.Int("total", len(entries)),
		zap.Int("poi", poiCount),
		zap.Int("hiking", hikingCount),
		zap.Int("skipped", skipped),
		zap.Duration("elapsed", time.Since(start)),
	)

	index := domain.POIIndex{
		POIs:        entries,
		TotalCount:  len(entries),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := writeIndex(*outputFile, &index); err != nil {
		log.Fatal("Failed to write index", zap.Error(err))
	}

	info, err := os.Stat(*outputFile)
	if err != nil {
		log.Fatal("Failed to stat index file", zap.Error(err))
	}

	log.Info("Index created",
		zap.String("file", *outputFile),
		zap.Float64("size_mb", float64(info.Size())/1024/1024),
	)
}

// scanDirectory рекурсивно обходит каталог и извлекает записи индекса из
// каждого *.json файла. Файлы без валидных координат пропускаются.
func scanDirectory(dir string, log *zap.Logger) ([]domain.POIIndexEntry, int, error) {
	var entries []domain.POIIndexEntry
	var skipped int

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		entry, err := extractIndexEntry(dir, path)
		if err != nil {
			log.Warn("Failed to process record", zap.String("file", path), zap.Error(err))
			skipped++
			return nil
		}
		if entry == nil {
			skipped++
			return nil
		}

		entries = append(entries, *entry)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return entries, skipped, nil
}

// extractIndexEntry читает одну запись и строит запись индекса.
// Возвращает nil без ошибки, если у записи нет координат.
func extractIndexEntry(rootDir, path string) (*domain.POIIndexEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, err
	}

	doc := datatourisme.AsDocument(raw)

	geo := doc.ObjectAt("isLocatedAt", 0).Object("schema:geo")
	if geo == nil {
		return nil, nil
	}

	lng, okLng := geo.Float("schema:longitude")
	lat, okLat := geo.Float("schema:latitude")
	if !okLng || !okLat {
		return nil, nil
	}

	name := doc.LangFirst("rdfs:label", "fr", "en")
	if name == "" {
		name = "POI sans nom"
	}

	relativePath, err := filepath.Rel(rootDir, path)
	if err != nil {
		return nil, err
	}
	relativePath = filepath.ToSlash(relativePath)

	source := domain.SourcePOI
	if strings.Contains(relativePath, "hiking_paths") {
		source = domain.SourceHiking
	}

	return &domain.POIIndexEntry{
		ID:          doc.String("@id"),
		Name:        name,
		Coordinates: domain.Coordinate{Lng: lng, Lat: lat},
		Types:       doc.StringSlice("@type"),
		FilePath:    relativePath,
		Source:      source,
	}, nil
}

func writeIndex(outputFile string, index *domain.POIIndex) error {
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0o644)
}
