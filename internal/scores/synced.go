package scores

import (
	"context"

	"github.com/rs/zerolog"
)

// Synced records to a local store and mirrors to a remote one. The local
// store is authoritative: remote failures are logged and otherwise ignored.
type Synced struct {
	local  Store
	remote Store
	log    zerolog.Logger
}

func NewSynced(local, remote Store, log zerolog.Logger) *Synced {
	return &Synced{local: local, remote: remote, log: log}
}

func (s *Synced) Record(ctx context.Context, e Entry) error {
	if err := s.local.Record(ctx, e); err != nil {
		return err
	}
	if err := s.remote.Record(ctx, e); err != nil {
		s.log.Warn().Err(err).Msg("upload score")
	}
	return nil
}

// Top merges the local and remote tables.
func (s *Synced) Top(ctx context.Context, n int) ([]Entry, error) {
	local, err := s.local.Top(ctx, n)
	if err != nil {
		return nil, err
	}
	remote, err := s.remote.Top(ctx, n)
	if err != nil {
		s.log.Warn().Err(err).Msg("fetch remote scores")
		return local, nil
	}
	return truncate(Merge(local, remote), n), nil
}
