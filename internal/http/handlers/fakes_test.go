package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"videoforge/internal/domain"
	"videoforge/internal/media"
	"videoforge/internal/queue"
	"videoforge/internal/workflow"
)

type fakeMedia struct {
	renderCalls int
	renderClip  media.Clip
	renderOut   string
	renderErr   error

	concatCalls int
	concatPaths []string
	concatOut   string
	concatErr   error

	frame    []byte
	frameErr error

	durationCalls int
	durationPath  string
	duration      float64
	durationErr   error
}

func (m *fakeMedia) Render(_ context.Context, clip media.Clip, outputPath, codec string) error {
	m.renderCalls++
	m.renderClip = clip
	m.renderOut = outputPath
	return m.renderErr
}

func (m *fakeMedia) Concatenate(_ context.Context, paths []string, outputPath string) error {
	m.concatCalls++
	m.concatPaths = paths
	m.concatOut = outputPath
	return m.concatErr
}

func (m *fakeMedia) FirstFrame(context.Context, string) ([]byte, error) {
	return m.frame, m.frameErr
}

func (m *fakeMedia) Duration(_ context.Context, path string) (float64, error) {
	m.durationCalls++
	m.durationPath = path
	return m.duration, m.durationErr
}

type fakeArtifacts struct {
	created   []domain.Artifact
	createErr error
	items     []domain.Artifact
	listErr   error
}

func (f *fakeArtifacts) Create(_ context.Context, a *domain.Artifact) error {
	f.created = append(f.created, *a)
	return f.createErr
}

func (f *fakeArtifacts) List(context.Context) ([]domain.Artifact, error) {
	return f.items, f.listErr
}

type fakeFlow struct {
	calls int
	req   workflow.CreateVideoRequest
	res   *workflow.CreateVideoResult
	err   error
}

func (f *fakeFlow) CreateVideo(_ context.Context, req workflow.CreateVideoRequest) (*workflow.CreateVideoResult, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

type fakeJobs struct {
	calls   int
	kind    domain.JobKind
	payload any
	handle  queue.JobHandle
	err     error
}

func (f *fakeJobs) Enqueue(_ context.Context, kind domain.JobKind, payload any) (queue.JobHandle, error) {
	f.calls++
	f.kind = kind
	f.payload = payload
	if f.err != nil {
		return queue.JobHandle{}, f.err
	}
	return f.handle, nil
}

func newTestApp() (*App, *fakeMedia, *fakeArtifacts, *fakeFlow, *fakeJobs) {
	m := &fakeMedia{}
	arts := &fakeArtifacts{}
	flow := &fakeFlow{res: &workflow.CreateVideoResult{OutputPath: "uploads/out.mp4"}}
	jobs := &fakeJobs{handle: queue.JobHandle{ID: "job-1"}}
	app := &App{
		Logger:    zerolog.Nop(),
		Media:     m,
		Artifacts: arts,
		Workflow:  flow,
		Jobs:      jobs,
	}
	return app, m, arts, flow, jobs
}
