package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/observability"
	"github.com/tableside/tableside-api/internal/repository"
)

// HealthPingService sweeps every active tenant domain with an HTTP GET and
// records one result row per domain. One unreachable domain never aborts the
// sweep: failures are recorded with status code 0 and no latency.
type HealthPingService interface {
	Sweep(ctx context.Context) (dto.PingSweepResponse, error)
}

type healthPingService struct {
	tenants repository.TenantRepository
	pings   repository.PingRepository
	client  *http.Client
	logger  zerolog.Logger
}

// NewHealthPingService constructs the ping sweep service. The timeout applies
// per domain, not to the whole sweep.
func NewHealthPingService(tenants repository.TenantRepository, pings repository.PingRepository, timeout time.Duration, logger zerolog.Logger) HealthPingService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &healthPingService{
		tenants: tenants,
		pings:   pings,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "health_ping_service").Logger(),
	}
}

func (s *healthPingService) Sweep(ctx context.Context) (dto.PingSweepResponse, error) {
	domains, err := s.tenants.ListActiveDomains(ctx)
	if err != nil {
		return dto.PingSweepResponse{}, fmt.Errorf("list active domains: %w", err)
	}

	response := dto.PingSweepResponse{Results: make([]dto.PingResultResponse, 0, len(domains))}
	for _, domain := range domains {
		ping := s.pingDomain(ctx, domain)
		if err := s.pings.Create(ctx, &ping); err != nil {
			s.logger.Error().Err(err).Str("hostname", domain.Hostname).Msg("failed to persist ping result")
		}

		response.Checked++
		if !ping.OK {
			response.Failed++
		}
		response.Results = append(response.Results, toPingResultResponse(ping))
	}

	observability.PingSweepResults().WithLabelValues("ok").Add(float64(response.Checked - response.Failed))
	observability.PingSweepResults().WithLabelValues("failed").Add(float64(response.Failed))

	s.logger.Info().
		Int("checked", response.Checked).
		Int("failed", response.Failed).
		Msg("domain ping sweep complete")
	return response, nil
}

func (s *healthPingService) pingDomain(ctx context.Context, domain models.TenantDomain) models.DomainPing {
	ping := models.DomainPing{
		TenantID:  domain.TenantID,
		DomainID:  domain.ID,
		Hostname:  domain.Hostname,
		CheckedAt: nowUTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+domain.Hostname+"/", nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("hostname", domain.Hostname).Msg("ping request build failed")
		return ping
	}

	started := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Str("hostname", domain.Hostname).Msg("ping failed")
		return ping
	}
	defer resp.Body.Close()

	latency := time.Since(started).Milliseconds()
	ping.StatusCode = resp.StatusCode
	ping.LatencyMs = &latency
	ping.OK = resp.StatusCode >= 200 && resp.StatusCode < 400
	return ping
}

func toPingResultResponse(ping models.DomainPing) dto.PingResultResponse {
	return dto.PingResultResponse{
		DomainID:   ping.DomainID,
		Hostname:   ping.Hostname,
		StatusCode: ping.StatusCode,
		LatencyMs:  ping.LatencyMs,
		OK:         ping.OK,
		CheckedAt:  ping.CheckedAt,
	}
}
