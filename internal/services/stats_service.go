package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/poofware/pledge-service/internal/cache"
	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/geo"
	"github.com/poofware/pledge-service/internal/metrics"
	"github.com/poofware/pledge-service/internal/models"
	"github.com/poofware/pledge-service/internal/repositories"
	"github.com/poofware/pledge-service/internal/utils"
)

const (
	RecentWindow        = 24 * time.Hour
	topOrganizationsMax = 10
)

type StatsService interface {
	// GetStats serves the cached snapshot, computing one on a miss.
	GetStats(ctx context.Context) (*dtos.Stats, error)
	// Refresh recomputes the snapshot and stores it in the cache unless the
	// cache was invalidated while it was being computed.
	Refresh(ctx context.Context) (*dtos.Stats, error)
}

type statsService struct {
	repo  repositories.SignatoryRepository
	cache cache.StatsCache
	now   func() time.Time
}

func NewStatsService(repo repositories.SignatoryRepository, statsCache cache.StatsCache) StatsService {
	return &statsService{repo: repo, cache: statsCache, now: time.Now}
}

func (s *statsService) GetStats(ctx context.Context) (*dtos.Stats, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
	return s.Refresh(ctx)
}

func (s *statsService) Refresh(ctx context.Context) (*dtos.Stats, error) {
	gen := s.cache.Generation(ctx)
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, utils.NewStorageError(err)
	}
	stats := ComputeStats(rows, s.now())
	if !s.cache.Set(ctx, &stats, gen) {
		utils.Logger.Debug("stats cache invalidated during refresh; snapshot not stored")
	}
	return &stats, nil
}

// ComputeStats aggregates every row, public or not. Locations that
// geo.DetectCountry cannot place are left out of the country figures.
func ComputeStats(rows []*models.Signatory, now time.Time) dtos.Stats {
	stats := dtos.Stats{
		CountryBreakdown: map[string]int{},
		TopOrganizations: []dtos.OrgCount{},
		GeneratedAt:      now.UTC(),
	}
	cutoff := now.Add(-RecentWindow)

	type orgTally struct {
		name  string
		count int
	}
	orgs := map[string]*orgTally{}

	for _, r := range rows {
		stats.Total++
		if r.Verified {
			stats.Verified++
		}
		if !r.CreatedAt.Before(cutoff) {
			stats.RecentSignatures++
		}

		if r.HasOrganization() {
			stats.Organizations++
			key := strings.ToLower(strings.TrimSpace(*r.Organization))
			if t, ok := orgs[key]; ok {
				t.count++
			} else {
				orgs[key] = &orgTally{name: strings.TrimSpace(*r.Organization), count: 1}
			}
		}

		if r.Location != nil {
			if code, ok := geo.DetectCountry(*r.Location); ok {
				stats.CountryBreakdown[code]++
			}
		}
	}

	stats.Individuals = stats.Total - stats.Organizations
	stats.Countries = len(stats.CountryBreakdown)

	for _, t := range orgs {
		stats.TopOrganizations = append(stats.TopOrganizations, dtos.OrgCount{Name: t.name, Count: t.count})
	}
	sort.Slice(stats.TopOrganizations, func(i, j int) bool {
		a, b := stats.TopOrganizations[i], stats.TopOrganizations[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	if len(stats.TopOrganizations) > topOrganizationsMax {
		stats.TopOrganizations = stats.TopOrganizations[:topOrganizationsMax]
	}
	return stats
}
