package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/titanous/json5"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

var fileExtensions = []string{".html", ".json5", ".json"}

// FileProvider replays saved results pages or observation dumps from a
// directory: <dir>/award.{html,json5,json} and <dir>/cash.{...}.
type FileProvider struct {
	dir       string
	selectors PageSelectors
}

func NewFileProvider(dir string, selectors PageSelectors) *FileProvider {
	if selectors.Row == "" {
		selectors = DefaultPageSelectors()
	}
	return &FileProvider{dir: dir, selectors: selectors}
}

func (p *FileProvider) Name() string {
	return "file"
}

func (p *FileProvider) Acquire(ctx context.Context, params models.SearchParams) (Session, error) {
	info, err := os.Stat(p.dir)
	if err != nil {
		return nil, NewProviderError(p.Name(), "", err)
	}
	if !info.IsDir() {
		return nil, NewProviderError(p.Name(), "", fmt.Errorf("%s is not a directory", p.dir))
	}
	return &fileSession{provider: p}, nil
}

type fileSession struct {
	provider *FileProvider
}

func (s *fileSession) Search(ctx context.Context, mode models.SearchMode) ([]models.RawObservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return nil, NewProviderError(s.provider.Name(), mode, fmt.Errorf("unknown search mode %q", mode))
	}

	for _, ext := range fileExtensions {
		path := filepath.Join(s.provider.dir, string(mode)+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, NewProviderError(s.provider.Name(), mode, err)
		}

		observations, err := s.decode(ext, data)
		if err != nil {
			return nil, NewProviderError(s.provider.Name(), mode, fmt.Errorf("parse %s: %w", path, err))
		}
		slog.Debug("loaded observations", "path", path, "count", len(observations))
		return observations, nil
	}

	slog.Warn("no saved results for search mode", "dir", s.provider.dir, "mode", mode)
	return nil, nil
}

func (s *fileSession) decode(ext string, data []byte) ([]models.RawObservation, error) {
	if ext == ".html" {
		return ParseResultsPage(bytes.NewReader(data), s.provider.selectors)
	}

	var observations []models.RawObservation
	if err := json5.Unmarshal(data, &observations); err != nil {
		return nil, err
	}
	return observations, nil
}

func (s *fileSession) Close() error {
	return nil
}
