package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"character-studio/backend/internal/models"
	"character-studio/backend/pkg/cache"
	"character-studio/backend/pkg/logger"
)

const templateCacheKey = "templates:listing"

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif"}

// TemplateService assembles the pre-built template listing by pairing JSON
// definition files with same-named image files on disk. A missing or empty
// directory yields an empty listing, never an error. The listing is cached;
// unreadable definition files are skipped with a log line.
type TemplateService struct {
	dir   string
	cache *cache.Cache
	log   *logger.Logger
}

func NewTemplateService(dir string, c *cache.Cache, log *logger.Logger) *TemplateService {
	return &TemplateService{dir: dir, cache: c, log: log}
}

// List returns all templates.
func (s *TemplateService) List(_ context.Context) ([]models.Template, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(templateCacheKey); ok {
			if templates, ok := cached.([]models.Template); ok {
				return templates, nil
			}
		}
	}

	templates := s.scan()
	if s.cache != nil {
		s.cache.Set(templateCacheKey, templates)
	}
	return templates, nil
}

func (s *TemplateService) scan() []models.Template {
	templates := []models.Template{}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.LogError(err, "template directory unreadable", "dir", s.dir)
		}
		return templates
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		base := strings.TrimSuffix(name, ".json")

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.log.LogError(err, "template file unreadable", "file", name)
			continue
		}
		var character models.Character
		if err := json.Unmarshal(data, &character); err != nil {
			s.log.LogError(err, "template file malformed", "file", name)
			continue
		}

		template := models.Template{
			ID:   base,
			Name: character.Name,
			Data: character,
		}
		if template.Name == "" {
			template.Name = base
		}
		for _, ext := range imageExtensions {
			if _, err := os.Stat(filepath.Join(s.dir, base+ext)); err == nil {
				template.ImageURL = "/templates/" + base + ext
				break
			}
		}
		templates = append(templates, template)
	}

	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates
}
