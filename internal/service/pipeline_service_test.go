// internal/service/pipeline_service_test.go
package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeshai/marcom-backend/internal/config"
	appErrors "github.com/sandeshai/marcom-backend/internal/errors"
	"github.com/sandeshai/marcom-backend/internal/events"
	"github.com/sandeshai/marcom-backend/internal/export"
	"github.com/sandeshai/marcom-backend/internal/model"
)

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Complete(_ context.Context, _ string, userPrompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func writeSheet(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const sampleSheet = `Vertical,Hook,Push Copy,CTA
Banking,Crack IBPS Today,"Flat 40% Off, Code: BANK40",Enroll Now
Banking,Last Day Alert,Hurry up {{FIRST_NAME}},Buy Now
SSC,SSC CGL Batch Live,Join today,Join Now
`

func newTestService(t *testing.T, gen Generator, sources ...string) *PipelineService {
	t.Helper()
	p := config.DefaultPipeline()
	p.Sources = sources
	p.SamplePushesFile = ""
	p.TopVerticals = 2
	p.EventsPerVertical = 1
	return &PipelineService{
		Pipeline:  p,
		Generator: gen,
		Calendar:  events.Default(),
		// Nov 10: Children's Day (Nov 14) is inside the window and urgent.
		Now: func() time.Time {
			return time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestIngestBuildsProfiles(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	svc := newTestService(t, &fakeGenerator{}, sheet)

	res, err := svc.Ingest(nil)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 3, res.Retained)
	assert.Equal(t, 2, res.Verticals)

	profile, err := svc.Profile("Banking")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.TotalCampaigns)
}

func TestIngestExtractsTonalities(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	samples := writeSheet(t, dir, "samples.csv",
		"Category,Title,Description,CTA\n"+
			"Urgency,Last chance!,Seats filling fast,Enroll Now\n"+
			"Feel Good,You got this,Every attempt counts,Keep Going\n")

	svc := newTestService(t, &fakeGenerator{}, sheet)
	svc.Pipeline.SamplePushesFile = samples

	_, err := svc.Ingest(nil)
	require.NoError(t, err)

	tonalities := svc.Tonalities()
	require.Contains(t, tonalities, "fomo")
	require.Contains(t, tonalities, "motivational")
	assert.Equal(t, 1, tonalities["fomo"].Count)
}

func TestIngestMissingSampleSheetIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	svc := newTestService(t, &fakeGenerator{}, sheet)
	svc.Pipeline.SamplePushesFile = filepath.Join(dir, "missing.csv")

	res, err := svc.Ingest(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Retained)
	assert.Nil(t, svc.Tonalities())
}

func TestIngestNoUsableInput(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{}, "definitely-missing.csv")

	_, err := svc.Ingest(nil)
	assert.ErrorIs(t, err, appErrors.ErrNoUsableInput)
}

func TestProfileNotFound(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	svc := newTestService(t, &fakeGenerator{}, sheet)
	_, err := svc.Ingest(nil)
	require.NoError(t, err)

	_, err = svc.Profile("Insurance")
	var notFound *appErrors.ErrProfileNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestGenerateParsesReply(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	gen := &fakeGenerator{reply: `{"hook":"Festive Offer","push_copy":"Flat 50% Off","cta":"Enroll Now","promo_code":"FEST50"}`}
	svc := newTestService(t, gen, sheet)
	_, err := svc.Ingest(nil)
	require.NoError(t, err)

	gc, err := svc.Generate(context.Background(), "Banking", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "Festive Offer", gc.Hook)
	assert.Equal(t, model.PushBody("Flat 50% Off"), gc.PushCopy)
	assert.Equal(t, "Banking", gc.Vertical)
	assert.NotEmpty(t, gc.RunID)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateUnknownEvent(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	svc := newTestService(t, &fakeGenerator{reply: `{}`}, sheet)
	_, err := svc.Ingest(nil)
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "Banking", "Made Up Day", nil)
	var notFound *appErrors.ErrEventNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestGenerateWithEventAnnotates(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	gen := &fakeGenerator{reply: `{"hook":"Diwali Special","push_copy":"x","cta":"y"}`}
	svc := newTestService(t, gen, sheet)
	_, err := svc.Ingest(nil)
	require.NoError(t, err)

	upcoming := svc.UpcomingEvents(0)
	require.NotEmpty(t, upcoming)
	target := upcoming[0]

	gc, err := svc.Generate(context.Background(), "Banking", target.Name, nil)
	require.NoError(t, err)

	assert.Equal(t, target.Name, gc.EventName)
	assert.Equal(t, target.Date, gc.EventDate)
	assert.Equal(t, target.DaysUntil, gc.DaysUntilEvent)
}

func TestRunSweepsVerticalsAndWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	outDir := filepath.Join(dir, "out")

	gen := &fakeGenerator{reply: `{"hook":"H","push_copy":"P","cta":"C"}`}
	svc := newTestService(t, gen, sheet)
	svc.Writer = export.NewWriter(outDir)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	// 2 verticals x 1 event each.
	assert.Equal(t, 2, summary.Generated)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, []string{"Banking", "SSC"}, summary.Verticals)

	for _, name := range []string{export.ProfilesFile, export.EventsFile, export.CampaignsFile, export.CalendarFile} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}

	// No sample sheet configured, no training artifact.
	_, err = os.Stat(filepath.Join(outDir, export.TonalitiesFile))
	assert.True(t, os.IsNotExist(err))
}

func TestRunWritesTonalityArtifact(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	samples := writeSheet(t, dir, "samples.csv",
		"Category,Title,Description,CTA\nUrgency,Last chance!,Seats filling fast,Enroll Now\n")
	outDir := filepath.Join(dir, "out")

	svc := newTestService(t, &fakeGenerator{reply: `{"hook":"H","push_copy":"P","cta":"C"}`}, sheet)
	svc.Pipeline.SamplePushesFile = samples
	svc.Writer = export.NewWriter(outDir)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Tonalities)

	_, err = os.Stat(filepath.Join(outDir, export.TonalitiesFile))
	assert.NoError(t, err)
}

func TestRunCountsFailures(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "may.csv", sampleSheet)
	gen := &fakeGenerator{err: errors.New("provider down")}
	svc := newTestService(t, gen, sheet)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Generated)
	assert.Equal(t, 2, summary.Failed)
}

func TestRenderPreview(t *testing.T) {
	out := RenderPreview("Hi {{FIRST_NAME}}, {{COURSE_NAME}} is live. {{UNKNOWN}}", DefaultPreviewData)
	assert.Equal(t, "Hi Ravi, SSC CGL Complete Batch is live. {{UNKNOWN}}", out)
}
