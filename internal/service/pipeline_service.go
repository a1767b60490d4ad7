// internal/service/pipeline_service.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/sandeshai/marcom-backend/internal/aggregate"
	"github.com/sandeshai/marcom-backend/internal/config"
	appErrors "github.com/sandeshai/marcom-backend/internal/errors"
	"github.com/sandeshai/marcom-backend/internal/events"
	"github.com/sandeshai/marcom-backend/internal/export"
	"github.com/sandeshai/marcom-backend/internal/ingest"
	"github.com/sandeshai/marcom-backend/internal/model"
	"github.com/sandeshai/marcom-backend/internal/pattern"
	"github.com/sandeshai/marcom-backend/internal/prompt"
	"github.com/sandeshai/marcom-backend/internal/repository"
)

// Generator is the one provider call the pipeline needs.
type Generator interface {
	Complete(ctx context.Context, systemMsg, userPrompt string) (string, error)
}

type PipelineService struct {
	Pipeline     config.Pipeline
	Generator    Generator
	Calendar     *events.Calendar
	RecordRepo   repository.RecordRepositoryInterface
	CampaignRepo repository.GeneratedCampaignRepositoryInterface
	Writer       *export.Writer

	// Now is swappable so event windows are testable. Nil means time.Now.
	Now func() time.Time

	mu         sync.RWMutex
	profiles   map[string]*model.SegmentProfile
	tonalities map[string]*model.TonalityProfile
	stats      []ingest.SourceStat
	runID      string
}

// IngestResult summarizes one ingest pass over the configured sources.
type IngestResult struct {
	RunID     string              `json:"run_id"`
	Sources   []ingest.SourceStat `json:"sources"`
	Retained  int                 `json:"retained"`
	Verticals int                 `json:"verticals"`
}

// RunSummary is what a full pipeline run reports back.
type RunSummary struct {
	RunID     string              `json:"run_id"`
	Sources   []ingest.SourceStat `json:"sources"`
	Retained  int                 `json:"retained"`
	Verticals []string            `json:"verticals"`
	Events    []model.Event       `json:"events"`
	Generated int                 `json:"generated"`
	Failed    int                 `json:"failed"`

	// Tonalities is the number of tonality buckets extracted from the
	// sample pushes, zero when no sample sheet was usable.
	Tonalities int `json:"tonalities"`
}

func (s *PipelineService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *PipelineService) extractorOptions() pattern.Options {
	if s.Pipeline.UsePromoExclusions {
		return pattern.Options{PromoCodeExclusions: pattern.DefaultPromoCodeExclusions}
	}
	return pattern.Options{}
}

func (s *PipelineService) aggregateOptions() aggregate.Options {
	return aggregate.Options{
		TopTokens:     s.Pipeline.TopTokens,
		TopDiscounts:  s.Pipeline.TopDiscounts,
		TopTimes:      s.Pipeline.TopTimes,
		TopProductIDs: s.Pipeline.TopProductIDs,
		TopPromoCodes: s.Pipeline.TopPromoCodes,
	}
}

// Ingest reads the given sources (nil means the configured list), rebuilds
// the segment profiles from scratch, and (when a record repository is wired)
// persists the normalized records under a fresh run ID.
func (s *PipelineService) Ingest(sources []string) (*IngestResult, error) {
	if len(sources) == 0 {
		sources = s.Pipeline.Sources
	}
	records, stats := ingest.LoadSources(sources, s.extractorOptions())
	if len(records) == 0 {
		return nil, appErrors.ErrNoUsableInput
	}

	runID := uuid.New().String()
	profiles := aggregate.BuildProfiles(records, s.aggregateOptions())
	tonalities := s.loadTonalities()

	if s.RecordRepo != nil {
		if _, err := s.RecordRepo.BulkInsert(runID, records); err != nil {
			log.Warnf("failed to persist records: %v", err)
		}
	}

	s.mu.Lock()
	s.profiles = profiles
	s.tonalities = tonalities
	s.stats = stats
	s.runID = runID
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"run_id":    runID,
		"retained":  len(records),
		"verticals": len(profiles),
	}).Info("ingest complete")

	return &IngestResult{
		RunID:     runID,
		Sources:   stats,
		Retained:  len(records),
		Verticals: len(profiles),
	}, nil
}

// loadTonalities extracts the tonality training data from the configured
// sample-pushes sheet. A missing or unreadable sheet is reported and skipped,
// same as any other historical source.
func (s *PipelineService) loadTonalities() map[string]*model.TonalityProfile {
	if s.Pipeline.SamplePushesFile == "" {
		return nil
	}
	pushes, err := ingest.LoadSamplePushes(s.Pipeline.SamplePushesFile)
	if err != nil {
		log.WithFields(log.Fields{
			"source": s.Pipeline.SamplePushesFile,
			"error":  err,
		}).Warn("skipping sample pushes")
		return nil
	}
	if len(pushes) == 0 {
		return nil
	}
	return aggregate.BuildTonalityProfiles(pushes)
}

// Profiles returns the current profile map. Nil until the first ingest.
func (s *PipelineService) Profiles() map[string]*model.SegmentProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles
}

// Tonalities returns the training data extracted from the sample pushes.
// Nil when no sample sheet is configured or it yielded nothing.
func (s *PipelineService) Tonalities() map[string]*model.TonalityProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tonalities
}

func (s *PipelineService) Profile(vertical string) (*model.SegmentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[vertical]
	if !ok {
		return nil, appErrors.NewProfileNotFound(vertical)
	}
	return p, nil
}

// UpcomingEvents lists calendar events inside the horizon. horizonDays <= 0
// uses the configured horizon.
func (s *PipelineService) UpcomingEvents(horizonDays int) []model.Event {
	if horizonDays <= 0 {
		horizonDays = s.Pipeline.HorizonDays
	}
	return s.Calendar.Upcoming(s.now(), horizonDays)
}

func (s *PipelineService) findEvent(name string) (*model.Event, error) {
	if name == "" {
		return nil, nil
	}
	for _, ev := range s.UpcomingEvents(0) {
		if ev.Name == name {
			e := ev
			return &e, nil
		}
	}
	return nil, appErrors.NewEventNotFound(name)
}

// Generate produces one campaign for a vertical, optionally anchored to a
// named upcoming event, with extra free-form context folded into the prompt.
// The provider is called exactly once; an unparseable reply still yields a
// campaign with the raw text as push copy.
func (s *PipelineService) Generate(ctx context.Context, vertical, eventName string, extra map[string]string) (*model.GeneratedCampaign, error) {
	profile, err := s.Profile(vertical)
	if err != nil {
		return nil, err
	}
	event, err := s.findEvent(eventName)
	if err != nil {
		return nil, err
	}

	userPrompt := prompt.Build(profile, event, extra)
	reply, err := s.Generator.Complete(ctx, prompt.SystemMessage, userPrompt)
	if err != nil {
		return nil, err
	}

	gc, parsed := prompt.ParseReply(reply)
	if !parsed {
		log.WithField("vertical", vertical).Warn("provider reply was not valid JSON, keeping raw text")
	}
	gc.Vertical = vertical
	gc.GeneratedAt = s.now()
	if event != nil {
		gc.EventName = event.Name
		gc.EventDate = event.Date
		gc.DaysUntilEvent = event.DaysUntil
	}

	s.mu.RLock()
	gc.RunID = s.runID
	s.mu.RUnlock()

	if s.CampaignRepo != nil {
		if err := s.CampaignRepo.Create(gc); err != nil {
			log.Warnf("failed to persist generated campaign: %v", err)
		}
	}
	return gc, nil
}

// Run executes the whole pipeline: ingest, profile the top verticals, pick
// the most urgent events inside the horizon, generate one campaign per
// vertical-event pair, and write the JSON artifacts.
func (s *PipelineService) Run(ctx context.Context) (*RunSummary, error) {
	ingestRes, err := s.Ingest(nil)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	profiles := s.profiles
	s.mu.RUnlock()

	verticals := aggregate.TopVerticals(profiles, s.Pipeline.TopVerticals)
	upcoming := s.UpcomingEvents(0)
	targets := pickEvents(upcoming, s.Pipeline.EventsPerVertical)

	summary := &RunSummary{
		RunID:      ingestRes.RunID,
		Sources:    ingestRes.Sources,
		Retained:   ingestRes.Retained,
		Verticals:  verticals,
		Events:     upcoming,
		Tonalities: len(s.Tonalities()),
	}

	generated := []*model.GeneratedCampaign{}
	for _, vertical := range verticals {
		for _, ev := range targets {
			gc, err := s.Generate(ctx, vertical, ev.Name, nil)
			if err != nil {
				log.WithFields(log.Fields{
					"vertical": vertical,
					"event":    ev.Name,
				}).Warnf("generation failed: %v", err)
				summary.Failed++
				continue
			}
			generated = append(generated, gc)
			summary.Generated++
		}
	}

	if s.Writer != nil {
		if err := s.Writer.WriteProfiles(profiles); err != nil {
			return summary, err
		}
		if err := s.Writer.WriteEvents(upcoming); err != nil {
			return summary, err
		}
		if err := s.Writer.WriteCampaigns(generated); err != nil {
			return summary, err
		}
		urgencyByEvent := map[string]string{}
		for _, ev := range upcoming {
			urgencyByEvent[ev.Name] = ev.Urgency
		}
		if err := s.Writer.WriteCalendar(generated, urgencyByEvent); err != nil {
			return summary, err
		}
		if tonalities := s.Tonalities(); len(tonalities) > 0 {
			if err := s.Writer.WriteTonalities(tonalities); err != nil {
				return summary, err
			}
		}
	}

	log.WithFields(log.Fields{
		"run_id":    summary.RunID,
		"generated": summary.Generated,
		"failed":    summary.Failed,
	}).Info("pipeline run complete")

	return summary, nil
}

// pickEvents keeps the soonest high and medium urgency events, up to n.
// Upcoming is already date-sorted.
func pickEvents(upcoming []model.Event, n int) []model.Event {
	picked := []model.Event{}
	for _, ev := range upcoming {
		if ev.Urgency == model.UrgencyLow {
			continue
		}
		picked = append(picked, ev)
		if len(picked) == n {
			break
		}
	}
	return picked
}

// ListCampaigns fetches generated campaigns with pagination.
func (s *PipelineService) ListCampaigns(page, pageSize int, vertical, runID string) ([]model.GeneratedCampaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, vertical, runID)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.GeneratedCampaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}
