// Package vault archives completed return forms. Each archive is an
// immutable copy named after the taxpayer and filing, kept under
// <root>/vault/ so the original upload directory can change freely.
package vault

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const vaultDir = "vault"

// Archive is the record of one vaulted form.
type Archive struct {
	Name     string
	Path     string
	FilingID string
	Archived time.Time
}

// Service copies filled forms into the vault and optionally commits
// them to git.
type Service struct {
	root string
	git  *GitOptions
	log  zerolog.Logger
}

// GitOptions enables git commits on archive when set.
type GitOptions struct {
	AuthorName  string
	AuthorEmail string
}

// New creates a vault service over root. git may be nil to disable
// commits.
func New(root string, git *GitOptions, log zerolog.Logger) *Service {
	return &Service{root: root, git: git, log: log}
}

// ArchiveName builds the canonical archive file name:
// AUDIT_<pin>_<filingID>_<date><ext>.
func ArchiveName(pin, filingID string, archived time.Time, ext string) string {
	return fmt.Sprintf("AUDIT_%s_%s_%s%s", pin, filingID, archived.Format("2006-01-02"), ext)
}

// Store copies the filled form at srcPath into the vault under the
// canonical name and, when git is configured, commits the addition.
func (s *Service) Store(srcPath, pin, filingID string) (Archive, error) {
	now := time.Now().UTC()
	name := ArchiveName(pin, filingID, now, filepath.Ext(srcPath))

	dir := filepath.Join(s.root, vaultDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Archive{}, fmt.Errorf("creating vault dir: %w", err)
	}

	dst := filepath.Join(dir, name)
	if err := copyFile(srcPath, dst); err != nil {
		return Archive{}, fmt.Errorf("archiving %s: %w", filingID, err)
	}

	s.log.Info().Str("filing", filingID).Str("archive", name).Msg("form archived")

	if s.git != nil {
		if err := s.commit(name, filingID); err != nil {
			// The copy itself succeeded; surface the commit failure
			// without losing the archive.
			s.log.Warn().Err(err).Str("filing", filingID).Msg("vault git commit failed")
		}
	}

	return Archive{Name: name, Path: dst, FilingID: filingID, Archived: now}, nil
}

// List returns the archives currently in the vault, oldest first by
// file name.
func (s *Service) List() ([]Archive, error) {
	dir := filepath.Join(s.root, vaultDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading vault dir: %w", err)
	}

	var archives []Archive
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		archives = append(archives, Archive{
			Name:     e.Name(),
			Path:     filepath.Join(dir, e.Name()),
			Archived: info.ModTime().UTC(),
		})
	}
	return archives, nil
}

func (s *Service) commit(name, filingID string) error {
	if !isRepo(s.root) {
		if err := gitInit(s.root); err != nil {
			return err
		}
	}
	msg := fmt.Sprintf("Archive return form for filing %s", filingID)
	hash, err := commitPath(s.root, filepath.Join(vaultDir, name), msg, s.git.AuthorName, s.git.AuthorEmail)
	if err != nil {
		return err
	}
	s.log.Debug().Str("commit", hash).Str("archive", name).Msg("vault commit created")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
