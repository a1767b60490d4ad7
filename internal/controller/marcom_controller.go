// internal/controller/marcom_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	appErrors "github.com/sandeshai/marcom-backend/internal/errors"
	"github.com/sandeshai/marcom-backend/internal/queue"
	"github.com/sandeshai/marcom-backend/internal/service"
)

type MarcomController struct {
	Service *service.PipelineService
	AMQPURL string

	// Queue handles batch jobs in-process when no broker is configured.
	Queue queue.Queue
}

// Ingest re-reads the source sheets and rebuilds the profiles. The body may
// override the configured source list.
func (c *MarcomController) Ingest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Sources []string `json:"sources"`
	}
	// Empty body means the configured sources.
	_ = json.NewDecoder(r.Body).Decode(&body)

	result, err := c.Service.Ingest(body.Sources)
	if err != nil {
		if errors.Is(err, appErrors.ErrNoUsableInput) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (c *MarcomController) GetProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := c.Service.Profiles()
	if profiles == nil {
		http.Error(w, "no profiles yet, run ingest first", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profiles)
}

func (c *MarcomController) GetProfile(w http.ResponseWriter, r *http.Request) {
	vertical := chi.URLParam(r, "vertical")

	profile, err := c.Service.Profile(vertical)
	if err != nil {
		var notFound *appErrors.ErrProfileNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// GetTonalities returns the training data extracted from the sample pushes.
func (c *MarcomController) GetTonalities(w http.ResponseWriter, r *http.Request) {
	tonalities := c.Service.Tonalities()
	if tonalities == nil {
		http.Error(w, "no sample-push data, run ingest first", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tonalities)
}

func (c *MarcomController) GetEvents(w http.ResponseWriter, r *http.Request) {
	horizon, _ := strconv.Atoi(r.URL.Query().Get("horizon"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c.Service.UpcomingEvents(horizon))
}

// GenerateCampaign calls the provider once for a single vertical, optionally
// anchored to a named upcoming event.
func (c *MarcomController) GenerateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Vertical string            `json:"vertical"`
		Event    string            `json:"event"`
		Context  map[string]string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Vertical == "" {
		http.Error(w, "vertical is required", http.StatusBadRequest)
		return
	}

	gc, err := c.Service.Generate(r.Context(), body.Vertical, body.Event, body.Context)
	if err != nil {
		var profileNotFound *appErrors.ErrProfileNotFound
		var eventNotFound *appErrors.ErrEventNotFound
		if errors.As(err, &profileNotFound) || errors.As(err, &eventNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gc)
}

// GenerateBatch enqueues one generation job per vertical-event pair for the
// worker to pick up.
func (c *MarcomController) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Verticals []string `json:"verticals"`
		Events    []string `json:"events"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if len(body.Verticals) == 0 {
		http.Error(w, "verticals are required", http.StatusBadRequest)
		return
	}
	if len(body.Events) == 0 {
		body.Events = []string{""}
	}

	// Without a broker, jobs run in-process off the in-memory queue.
	if c.AMQPURL == "" {
		queued := 0
		for _, vertical := range body.Verticals {
			for _, event := range body.Events {
				job := queue.GenerationJob{Vertical: vertical, EventName: event}
				if err := c.Queue.Publish("generation_jobs", job); err != nil {
					log.Warnf("failed to enqueue generation job: %v", err)
					continue
				}
				queued++
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jobs_queued": queued,
			"status":      "queued",
		})
		return
	}

	conn, err := amqp.Dial(c.AMQPURL)
	if err != nil {
		http.Error(w, "Failed to connect to queue", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		http.Error(w, "Failed to open queue channel", http.StatusInternalServerError)
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"generation_jobs",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		http.Error(w, "Failed to declare queue", http.StatusInternalServerError)
		return
	}

	queued := 0
	for _, vertical := range body.Verticals {
		for _, event := range body.Events {
			payload, _ := json.Marshal(map[string]string{
				"vertical": vertical,
				"event":    event,
			})
			err = ch.Publish(
				"",
				q.Name,
				false,
				false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        payload,
				},
			)
			if err != nil {
				log.Warnf("failed to publish generation job: %v", err)
				continue
			}
			queued++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobs_queued": queued,
		"status":      "queued",
	})
}

// ListCampaigns returns a paginated list of generated campaigns.
func (c *MarcomController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	vertical := r.URL.Query().Get("vertical")
	runID := r.URL.Query().Get("run_id")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	campaigns, pagination, err := c.Service.ListCampaigns(page, pageSize, vertical, runID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":       campaigns,
		"pagination": pagination,
	})
}

// PreviewCampaign renders a stored campaign with sample token values.
func (c *MarcomController) PreviewCampaign(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	gc, err := c.Service.CampaignRepo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if gc == nil {
		http.Error(w, "campaign not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":        gc.ID,
		"hook":      service.RenderPreview(gc.Hook, service.DefaultPreviewData),
		"push_copy": service.RenderPreview(string(gc.PushCopy), service.DefaultPreviewData),
		"cta":       gc.CTA,
	})
}
