package textfile

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var _ ports.AccountStore = (*fileStore)(nil) // Ensure compliance

type fileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore creates a store backed by the accounts file at path.
func NewFileStore(path string, baseLogger *zerolog.Logger) ports.AccountStore {
	return &fileStore{
		path: path,
		log:  baseLogger.With().Str("component", "textfile_store").Str("path", path).Logger(),
	}
}

// Load reads the accounts file.
func (s *fileStore) Load(ctx context.Context) (int, []*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Info().Msg("Accounts file does not exist")
		} else {
			s.log.Error().Err(err).Msg("Failed to open accounts file")
		}
		return 0, nil, err
	}
	defer f.Close()

	capacity, accounts, err := Decode(f)
	if err != nil {
		s.log.Error().Err(err).Int("parsed", len(accounts)).Msg("Failed to decode accounts file")
		return capacity, accounts, err
	}

	s.log.Info().Int("capacity", capacity).Int("accounts", len(accounts)).Msg("Accounts file loaded")
	return capacity, accounts, nil
}

// Save truncates and rewrites the accounts file. The write is not atomic: a crash
// part way through can leave a truncated file behind.
func (s *fileStore) Save(ctx context.Context, capacity int, accounts []*domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create accounts file")
		return fmt.Errorf("could not create accounts file: %w", err)
	}

	if err := Encode(f, capacity, accounts); err != nil {
		f.Close()
		s.log.Error().Err(err).Msg("Failed to write accounts file")
		return fmt.Errorf("could not write accounts file: %w", err)
	}
	if err := f.Close(); err != nil {
		s.log.Error().Err(err).Msg("Failed to close accounts file")
		return fmt.Errorf("could not close accounts file: %w", err)
	}

	s.log.Info().Int("capacity", capacity).Int("accounts", len(accounts)).Msg("Accounts file saved")
	return nil
}

// BackupSuffix is appended to the accounts file path by Backup.
const BackupSuffix = ".bak"

// Backup copies the accounts file at path next to itself and returns the copy's
// path. An existing backup is replaced.
func Backup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open accounts file: %w", err)
	}
	defer src.Close()

	dst := path + BackupSuffix
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("could not create backup: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("could not write backup: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("could not close backup: %w", err)
	}
	return dst, nil
}
