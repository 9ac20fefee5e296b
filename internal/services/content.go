package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio_site/internal/models"
)

// Content file names inside the content directory.
const (
	ProjectsFile = "projects.json"
	StudiesFile  = "studies.json"
)

const (
	cacheKeyProjects = "content:projects"
	cacheKeyStudies  = "content:studies"
)

// ContentStore is a source of site content.
type ContentStore interface {
	Projects(ctx context.Context) ([]models.Project, error)
	Studies(ctx context.Context) ([]models.StudyExperience, error)
}

// envelope is the shape of the content files: {"data": [...]}
type envelope[T any] struct {
	Data []T `json:"data"`
}

// FileContent reads content from JSON files.
type FileContent struct {
	dir string
}

// NewFileContent reads content files from dir.
func NewFileContent(dir string) *FileContent {
	return &FileContent{dir: dir}
}

// Projects reads projects.json.
func (f *FileContent) Projects(ctx context.Context) ([]models.Project, error) {
	return readEnvelope[models.Project](filepath.Join(f.dir, ProjectsFile))
}

// Studies reads studies.json.
func (f *FileContent) Studies(ctx context.Context) ([]models.StudyExperience, error) {
	return readEnvelope[models.StudyExperience](filepath.Join(f.dir, StudiesFile))
}

func readEnvelope[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return env.Data, nil
}

// DBContent reads content from the database.
type DBContent struct {
	db *gorm.DB
}

// NewDBContent creates a database-backed content store.
func NewDBContent(db *gorm.DB) *DBContent {
	return &DBContent{db: db}
}

// Projects returns all projects in display order.
func (s *DBContent) Projects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).Order("sort_order asc, id asc").Find(&projects).Error
	return projects, err
}

// Studies returns all study entries in display order.
func (s *DBContent) Studies(ctx context.Context) ([]models.StudyExperience, error) {
	var studies []models.StudyExperience
	err := s.db.WithContext(ctx).Order("sort_order asc, id asc").Find(&studies).Error
	return studies, err
}

// Upsert writes projects and studies, matching on their natural keys.
func (s *DBContent) Upsert(ctx context.Context, projects []models.Project, studies []models.StudyExperience) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(projects) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				UpdateAll: true,
			}).Create(&projects).Error
			if err != nil {
				return fmt.Errorf("upserting projects: %w", err)
			}
		}
		if len(studies) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "institution"}, {Name: "degree"}},
				UpdateAll: true,
			}).Create(&studies).Error
			if err != nil {
				return fmt.Errorf("upserting studies: %w", err)
			}
		}
		return nil
	})
}

// ContentService serves content from a store through an optional cache.
type ContentService struct {
	store ContentStore
	cache *RedisCache
	ttl   time.Duration
	log   *zap.Logger
}

// NewContentService creates a content service. cache may be nil.
func NewContentService(store ContentStore, cache *RedisCache, ttl time.Duration, log *zap.Logger) *ContentService {
	return &ContentService{store: store, cache: cache, ttl: ttl, log: log}
}

// Projects returns the catalog, featured first, then by sort order.
func (s *ContentService) Projects(ctx context.Context) ([]models.Project, error) {
	projects, err := GetOrSet(s.cache, ctx, cacheKeyProjects, s.ttl, func() ([]models.Project, error) {
		return s.store.Projects(ctx)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Featured != projects[j].Featured {
			return projects[i].Featured
		}
		return projects[i].SortOrder < projects[j].SortOrder
	})
	return projects, nil
}

// Studies returns the education timeline by sort order.
func (s *ContentService) Studies(ctx context.Context) ([]models.StudyExperience, error) {
	studies, err := GetOrSet(s.cache, ctx, cacheKeyStudies, s.ttl, func() ([]models.StudyExperience, error) {
		return s.store.Studies(ctx)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(studies, func(i, j int) bool {
		return studies[i].SortOrder < studies[j].SortOrder
	})
	return studies, nil
}

// Warm loads every content collection, filling the cache.
func (s *ContentService) Warm(ctx context.Context) (projects, studies int, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Projects(ctx)
		projects = len(p)
		return err
	})
	g.Go(func() error {
		st, err := s.Studies(ctx)
		studies = len(st)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	s.log.Info("content warmed", zap.Int("projects", projects), zap.Int("studies", studies))
	return projects, studies, nil
}

// Invalidate drops cached content so the next read hits the store.
func (s *ContentService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, cacheKeyProjects, cacheKeyStudies)
}

// LoadAll reads both content collections from store concurrently.
func LoadAll(ctx context.Context, store ContentStore) ([]models.Project, []models.StudyExperience, error) {
	var (
		projects []models.Project
		studies  []models.StudyExperience
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		projects, err = store.Projects(ctx)
		return err
	})
	g.Go(func() (err error) {
		studies, err = store.Studies(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return projects, studies, nil
}
