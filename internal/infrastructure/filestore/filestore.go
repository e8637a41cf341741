package filestore

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"docregistry/internal/config"
	"docregistry/internal/domain/entity"
)

// InboxFile describes a stageable file without loading its content.
type InboxFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Filestore is the local staging area for attachments. Files dropped into the
// staging folder can be attached to a draft by name; attached files move to
// the archive folder so they are not offered twice.
type Filestore interface {
	// List returns the files currently available in the staging folder
	List() ([]InboxFile, error)
	// Load reads one staged file into an attachment
	Load(name string) (*entity.AttachedFile, error)
	// Archive moves a staged file to the archive folder
	Archive(name string) error

	GetStagingPath() string
	GetArchivePath() string
}

type filestore struct {
	config *config.InboxConfig
	logger *zap.Logger
}

func NewFilestore(cfg *config.Config, logger *zap.Logger) (Filestore, error) {
	fs := &filestore{
		config: &cfg.Inbox,
		logger: logger,
	}

	// Ensure all directories exist
	if err := fs.ensureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create inbox directories: %w", err)
	}

	logger.Info("Filestore initialized",
		zap.String("base_path", cfg.Inbox.BasePath),
		zap.String("staging_folder", fs.GetStagingPath()),
		zap.String("archive_folder", fs.GetArchivePath()),
	)

	return fs, nil
}

func (s *filestore) ensureDirectories() error {
	dirs := []string{
		s.GetStagingPath(),
		s.GetArchivePath(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

func (s *filestore) GetStagingPath() string {
	return filepath.Join(s.config.BasePath, s.config.StagingFolder)
}

func (s *filestore) GetArchivePath() string {
	return filepath.Join(s.config.BasePath, s.config.ArchiveFolder)
}

func (s *filestore) List() ([]InboxFile, error) {
	entries, err := os.ReadDir(s.GetStagingPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read staging folder: %w", err)
	}

	files := []InboxFile{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, InboxFile{
			Name: e.Name(),
			Size: info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (s *filestore) Load(name string) (*entity.AttachedFile, error) {
	// Reject names that escape the staging folder
	if name != filepath.Base(name) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid file name: %s", name)
	}

	path := filepath.Join(s.GetStagingPath(), name)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged file %s: %w", name, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &entity.AttachedFile{
		Name:     name,
		Size:     int64(len(content)),
		MimeType: mimeType,
		Content:  content,
	}, nil
}

func (s *filestore) Archive(name string) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid file name: %s", name)
	}

	src := filepath.Join(s.GetStagingPath(), name)
	dst := filepath.Join(s.GetArchivePath(), name)

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to archive %s: %w", name, err)
	}

	s.logger.Info("Staged file archived",
		zap.String("file", name),
	)
	return nil
}
