package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/guilhermetechmakers/autopilot-studio/internal/monitoring"
	"github.com/guilhermetechmakers/autopilot-studio/internal/probes"
	"github.com/guilhermetechmakers/autopilot-studio/internal/types"
	"github.com/guilhermetechmakers/autopilot-studio/internal/ws"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Scheduler runs registered probes on their intervals and writes each result
// through the monitoring store: a health-check upsert for the service plus a
// response-time metric sample.
type Scheduler struct {
	db     *gorm.DB
	store  *monitoring.Store
	hub    *ws.Hub
	logger *zap.Logger

	probes map[uint]*probeJob // probe ID -> job
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

type probeJob struct {
	probe  models.Probe
	ticker *time.Ticker
	cancel context.CancelFunc
}

func NewScheduler(database *gorm.DB, store *monitoring.Store, hub *ws.Hub, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		db:     database,
		store:  store,
		hub:    hub,
		logger: logger,
		probes: make(map[uint]*probeJob),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start loads all active probes and begins scheduling.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	var probeList []models.Probe
	if err := s.db.Where("status = ?", "active").Find(&probeList).Error; err != nil {
		return err
	}

	for _, probe := range probeList {
		s.AddProbe(probe)
	}

	s.logger.Info("scheduler started", zap.Int("probes", len(probeList)))
	return nil
}

// Stop gracefully shuts down all probe jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.probes {
		job.ticker.Stop()
		job.cancel()
	}

	s.probes = make(map[uint]*probeJob)
	s.logger.Info("scheduler stopped")
}

// AddProbe starts running a probe, replacing any existing job for its id.
func (s *Scheduler) AddProbe(probe models.Probe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingJob, exists := s.probes[probe.ID]; exists {
		existingJob.ticker.Stop()
		existingJob.cancel()
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)
	ticker := time.NewTicker(time.Duration(probe.Interval) * time.Second)

	job := &probeJob{
		probe:  probe,
		ticker: ticker,
		cancel: jobCancel,
	}

	s.probes[probe.ID] = job

	go func() {
		// Run once up front, then on the ticker.
		probeCopy := probe
		s.executeProbe(probeCopy)
		s.runProbe(jobCtx, job)
	}()

	s.logger.Info("added probe",
		zap.Uint("probe_id", probe.ID),
		zap.String("service", probe.ServiceName),
		zap.String("type", probe.Type))
}

// RemoveProbe stops a probe's job.
func (s *Scheduler) RemoveProbe(probeID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, exists := s.probes[probeID]; exists {
		job.ticker.Stop()
		job.cancel()
		delete(s.probes, probeID)
		s.logger.Info("removed probe", zap.Uint("probe_id", probeID))
	}
}

// UpdateProbe replaces an existing probe's job.
func (s *Scheduler) UpdateProbe(probe models.Probe) {
	s.AddProbe(probe)
}

func (s *Scheduler) runProbe(ctx context.Context, job *probeJob) {
	defer job.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-job.ticker.C:
			s.mu.RLock()
			probeCopy := job.probe
			s.mu.RUnlock()

			s.executeProbe(probeCopy)
		}
	}
}

func (s *Scheduler) executeProbe(probe models.Probe) {
	start := time.Now()

	endpoint, err := runCheck(probe)
	elapsed := time.Since(start)

	status := probes.Classify(err, elapsed, degradedAfter(probe.Config))

	errorMessage := ""
	if err != nil {
		errorMessage = err.Error()
	}

	s.storeResult(probe, endpoint, status, elapsed, errorMessage)

	if err != nil {
		s.logger.Warn("probe failed",
			zap.Uint("probe_id", probe.ID),
			zap.String("service", probe.ServiceName),
			zap.Error(err))
	} else {
		s.logger.Debug("probe succeeded",
			zap.Uint("probe_id", probe.ID),
			zap.String("service", probe.ServiceName),
			zap.Duration("elapsed", elapsed))
	}
}

// runCheck dispatches on the probe type and reports the endpoint it hit.
func runCheck(probe models.Probe) (string, error) {
	switch probe.Type {
	case "http":
		var cfg types.HTTPProbeConfig
		if err := json.Unmarshal(probe.Config, &cfg); err != nil {
			return "", fmt.Errorf("invalid http probe config: %w", err)
		}
		return cfg.URL, probes.CheckHTTP(&cfg)
	case "dns":
		var cfg types.DNSProbeConfig
		if err := json.Unmarshal(probe.Config, &cfg); err != nil {
			return "", fmt.Errorf("invalid dns probe config: %w", err)
		}
		return cfg.Domain, probes.CheckDNS(&cfg)
	case "database":
		var cfg types.DatabaseProbeConfig
		if err := json.Unmarshal(probe.Config, &cfg); err != nil {
			return "", fmt.Errorf("invalid database probe config: %w", err)
		}
		return fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database), probes.CheckDatabase(&cfg)
	default:
		return "", fmt.Errorf("unsupported probe type: %s", probe.Type)
	}
}

func degradedAfter(config datatypes.JSON) time.Duration {
	var thresholds struct {
		DegradedMS int `json:"degraded_ms"`
	}

	if len(config) > 0 {
		_ = json.Unmarshal(config, &thresholds)
	}

	return time.Duration(thresholds.DegradedMS) * time.Millisecond
}

// storeResult writes the run through the monitoring store as a health-check
// upsert plus a response-time metric sample.
func (s *Scheduler) storeResult(probe models.Probe, endpoint, status string, elapsed time.Duration, errorMessage string) {
	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()

	check := &models.HealthCheck{
		UserID:       probe.UserID,
		ServiceName:  probe.ServiceName,
		Endpoint:     endpoint,
		Status:       status,
		ResponseTime: int(elapsed.Milliseconds()),
		LastCheck:    time.Now().UTC(),
		ErrorMessage: errorMessage,
		Metadata: datatypes.JSONMap{
			"probe_id":   probe.ID,
			"probe_type": probe.Type,
		},
	}

	if _, err := s.store.UpsertHealthCheck(ctx, check); err != nil {
		s.logger.Error("failed to store probe result",
			zap.Uint("probe_id", probe.ID),
			zap.Error(err))
		return
	}

	metric := &models.Metric{
		UserID:      probe.UserID,
		MetricName:  "service_response_time",
		MetricValue: float64(elapsed.Milliseconds()),
		MetricType:  "gauge",
		Labels: datatypes.NewJSONType(map[string]string{
			"service":    probe.ServiceName,
			"probe_type": probe.Type,
		}),
	}

	if _, err := s.store.CreateMetric(ctx, metric); err != nil {
		s.logger.Error("failed to store probe metric",
			zap.Uint("probe_id", probe.ID),
			zap.Error(err))
	}

	s.hub.BroadcastRefresh(probe.UserID, "monitoring")
}
