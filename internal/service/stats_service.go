package service

import (
	"context"
	"time"

	"ai-docqa-be/internal/dto"
	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/internal/repository/contract"
	"ai-docqa-be/pkg/vecstore"

	"github.com/patrickmn/go-cache"
)

const statsSnapshotKey = "stats_snapshot"

type IStatsService interface {
	// Snapshot returns the cached stats, recomputing on a miss.
	Snapshot(ctx context.Context) (*dto.StatsResponse, error)

	// Recompute rebuilds the snapshot and refreshes the cache.
	Recompute(ctx context.Context) (*dto.StatsResponse, error)
}

type statsService struct {
	shared *vecstore.SharedStore
	multi  *vecstore.DocumentStore
	memory contract.ConversationStore
	cache  *cache.Cache
	log    logger.ILogger
}

func NewStatsService(
	shared *vecstore.SharedStore,
	multi *vecstore.DocumentStore,
	memory contract.ConversationStore,
	log logger.ILogger,
) IStatsService {
	return &statsService{
		shared: shared,
		multi:  multi,
		memory: memory,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
		log:    log,
	}
}

func (s *statsService) Snapshot(ctx context.Context) (*dto.StatsResponse, error) {
	if x, found := s.cache.Get(statsSnapshotKey); found {
		return x.(*dto.StatsResponse), nil
	}
	return s.Recompute(ctx)
}

func (s *statsService) Recompute(ctx context.Context) (*dto.StatsResponse, error) {
	sessions, err := s.memory.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	docs := s.multi.ListDocuments()
	snapshot := &dto.StatsResponse{
		LegacyIndex: dto.LegacyIndexStats{
			Vectors:   s.shared.Len(),
			Dimension: s.shared.Dim(),
			Documents: len(s.shared.Documents()),
		},
		Documents:    len(docs),
		TotalVectors: s.multi.TotalVectors(),
		Sessions:     len(sessions),
		GeneratedAt:  time.Now(),
	}

	s.cache.Set(statsSnapshotKey, snapshot, cache.DefaultExpiration)
	return snapshot, nil
}
