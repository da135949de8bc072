package sync_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crm-sync/core/database"
	"crm-sync/core/reconcile"
	"crm-sync/core/record"
	"crm-sync/core/storage"
	"crm-sync/core/storage/mocks"
	"crm-sync/feature/history"
	"crm-sync/feature/ingest"
	syncrun "crm-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeEngine plans one create batch and reports it with the configured outcome.
type fakeEngine struct {
	planErr error
	failed  bool
	planned []reconcile.Descriptor
	started chan struct{}
	release chan struct{}
}

func (f *fakeEngine) Plan(_ context.Context, d reconcile.Descriptor, table *record.Table) (*reconcile.Plan, error) {
	f.planned = append(f.planned, d)
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	if f.planErr != nil {
		return nil, f.planErr
	}
	return &reconcile.Plan{
		Kind:    d.Kind,
		Batches: []reconcile.Batch{{Ordinal: 1, Operation: reconcile.OperationCreate, Keys: []string{"N1"}}},
		Summary: reconcile.PlanSummary{Rows: len(table.Rows), Translated: len(table.Rows), Batches: 1},
	}, nil
}

func (f *fakeEngine) Apply(_ context.Context, plan *reconcile.Plan, opts reconcile.Options) (*reconcile.Report, error) {
	report := &reconcile.Report{Kind: plan.Kind}
	if opts.DryRun {
		report.DryRun = true
		return report, nil
	}
	if !opts.Confirmed {
		return nil, reconcile.ErrNotConfirmed
	}
	res := reconcile.BatchResult{Ordinal: 1, Operation: reconcile.OperationCreate, Size: 1, StatusCode: 201, FirstKey: "N1", LastKey: "N1"}
	if f.failed {
		res.StatusCode = 500
		res.Err = errors.New("server error")
		report.Failed = 1
	} else {
		report.Written = 1
	}
	report.Batches = append(report.Batches, res)
	opts.OnBatch(res)
	return report, nil
}

const csvBody = "伝票No.,商品コード\nN1,P1\n"

func source(t *testing.T) *ingest.Source {
	t.Helper()
	src, err := ingest.Read(strings.NewReader(csvBody), "deals.csv")
	require.NoError(t, err)
	return src
}

func ledger(t *testing.T) *history.Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	repo := history.NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background(), true))
	return repo
}

func TestDescriptor(t *testing.T) {
	for _, k := range reconcile.Kinds() {
		d, err := syncrun.Descriptor(string(k), reconcile.Config{})
		require.NoError(t, err)
		assert.Equal(t, k, d.Kind)
		assert.NoError(t, d.Validate())
	}

	_, err := syncrun.Descriptor("contacts", reconcile.Config{})
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)
}

func TestService_RunRecordsLedgerAndArchive(t *testing.T) {
	ctx := context.Background()
	repo := ledger(t)
	store := new(mocks.Client)
	store.On("PutObject", mock.Anything, "crm", mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, "/deals.csv") || strings.HasSuffix(key, "/report.json")
	}), mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	archiver := storage.NewArchiver(store, storage.Config{Bucket: "crm", Prefix: "runs"})

	engine := &fakeEngine{failed: true}
	svc := syncrun.NewService(engine, reconcile.Config{}, zap.NewNop(),
		syncrun.WithLedger(repo), syncrun.WithArchiver(archiver))

	res, err := svc.Run(ctx, syncrun.Request{Kind: "deal-create", Source: source(t), Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusFailed, res.Status)
	assert.Len(t, res.Archived, 2)
	assert.Equal(t, "runs/"+res.RunID+"/deals.csv", res.Archived[0])

	run, err := repo.GetRun(ctx, res.RunID)
	require.NoError(t, err)
	assert.Equal(t, "deal-create", run.Kind)
	assert.Equal(t, "utf-8", run.Encoding)
	assert.Equal(t, 1, run.RowCount)
	assert.Equal(t, 1, run.FailedBatches)
	assert.NotNil(t, run.FinishedAt)
	require.Len(t, run.BatchRecords, 1)
	assert.Equal(t, "server error", run.BatchRecords[0].ErrorText)
	store.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestService_DryRun(t *testing.T) {
	repo := ledger(t)
	svc := syncrun.NewService(&fakeEngine{}, reconcile.Config{}, zap.NewNop(), syncrun.WithLedger(repo))

	res, err := svc.Run(context.Background(), syncrun.Request{Kind: "product-create", Source: source(t), DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusPlanned, res.Status)
	assert.Equal(t, 1, res.Plan.Summary.Batches)

	run, err := repo.GetRun(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.True(t, run.DryRun)
	assert.Empty(t, run.BatchRecords)
}

func TestService_Failures(t *testing.T) {
	t.Run("PlanError", func(t *testing.T) {
		repo := ledger(t)
		engine := &fakeEngine{planErr: reconcile.ErrConfiguration}
		svc := syncrun.NewService(engine, reconcile.Config{}, zap.NewNop(), syncrun.WithLedger(repo))

		res, err := svc.Run(context.Background(), syncrun.Request{Kind: "deal-update", Source: source(t), Confirmed: true})
		require.ErrorIs(t, err, reconcile.ErrConfiguration)

		run, getErr := repo.GetRun(context.Background(), res.RunID)
		require.NoError(t, getErr)
		assert.Equal(t, reconcile.StatusFailed, run.Status)
		assert.NotEmpty(t, run.Error)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		engine := &fakeEngine{}
		svc := syncrun.NewService(engine, reconcile.Config{}, zap.NewNop())

		_, err := svc.Run(context.Background(), syncrun.Request{Kind: "contacts", Source: source(t)})
		assert.ErrorIs(t, err, reconcile.ErrConfiguration)
		assert.Empty(t, engine.planned)
	})

	t.Run("NotConfirmed", func(t *testing.T) {
		repo := ledger(t)
		svc := syncrun.NewService(&fakeEngine{}, reconcile.Config{}, zap.NewNop(), syncrun.WithLedger(repo))

		var asked *reconcile.Plan
		res, err := svc.Run(context.Background(), syncrun.Request{
			Kind:    "deal-create",
			Source:  source(t),
			Confirm: func(p *reconcile.Plan) bool { asked = p; return false },
		})
		assert.ErrorIs(t, err, reconcile.ErrNotConfirmed)
		assert.Equal(t, "cancelled", res.Status)
		require.NotNil(t, asked)
		assert.Equal(t, 1, asked.Summary.Batches)

		run, getErr := repo.GetRun(context.Background(), res.RunID)
		require.NoError(t, getErr)
		assert.Empty(t, run.BatchRecords)
	})

	t.Run("ConfirmedInteractively", func(t *testing.T) {
		svc := syncrun.NewService(&fakeEngine{}, reconcile.Config{}, zap.NewNop())

		res, err := svc.Run(context.Background(), syncrun.Request{
			Kind:    "deal-create",
			Source:  source(t),
			Confirm: func(*reconcile.Plan) bool { return true },
		})
		require.NoError(t, err)
		assert.Equal(t, reconcile.StatusSucceeded, res.Status)
	})
}

func upload(t *testing.T, target string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "deals.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func status(t *testing.T, app *fiber.App, req *http.Request) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func newApp(engine *fakeEngine) *fiber.App {
	app := fiber.New()
	svc := syncrun.NewService(engine, reconcile.Config{}, zap.NewNop())
	f := syncrun.NewFeature(svc, zap.NewNop())
	_ = f.Load(app)
	return app
}

func TestHandler(t *testing.T) {
	t.Run("DryRun", func(t *testing.T) {
		app := newApp(&fakeEngine{})
		resp, err := app.Test(upload(t, "/sync/deal-create?dry_run=true"), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var res syncrun.Result
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, reconcile.StatusPlanned, res.Status)
		assert.NotEmpty(t, res.RunID)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		app := newApp(&fakeEngine{})
		assert.Equal(t, 404, status(t, app, upload(t, "/sync/contacts")))
	})

	t.Run("MissingFile", func(t *testing.T) {
		app := newApp(&fakeEngine{})
		assert.Equal(t, 400, status(t, app, httptest.NewRequest("POST", "/sync/deal-create", nil)))
	})

	t.Run("PlanConfigurationError", func(t *testing.T) {
		app := newApp(&fakeEngine{planErr: reconcile.ErrConfiguration})
		assert.Equal(t, 422, status(t, app, upload(t, "/sync/deal-create")))
	})

	t.Run("ConcurrentRunRejected", func(t *testing.T) {
		engine := &fakeEngine{started: make(chan struct{}), release: make(chan struct{})}
		app := newApp(engine)

		first := upload(t, "/sync/deal-create")
		done := make(chan int, 1)
		go func() {
			resp, err := app.Test(first, -1)
			if err != nil {
				done <- 0
				return
			}
			done <- resp.StatusCode
		}()
		<-engine.started

		assert.Equal(t, 409, status(t, app, upload(t, "/sync/deal-create")))
		close(engine.release)
		assert.Equal(t, 200, <-done)
	})
}
