package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/chain"
	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/packing"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  *postgres_adapter.GormUnitOfWorkFactory
	logger   *slog.Logger
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func retryPolicy() queries.RetryPolicy {
	return queries.DefaultRetryPolicy().WithClassifier(pgerr.Classify)
}

func (suite *QueryHandlersTestSuite) resolve(fileName string, exclude *kernel.UUID) queries.ResolveFileReferenceResponse {
	query, err := queries.NewResolveFileReferenceQuery(fileName, exclude)
	suite.Require().NoError(err)

	handler := queries.NewResolveFileReferenceQueryHandler(suite.database.DB, retryPolicy(), suite.logger)
	res, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	return res
}

func (suite *QueryHandlersTestSuite) TestResolveFileReference_Statuses() {
	ctx := context.Background()
	inv := suite.addInvoice("INV-1", invoice.Requirements{})

	unit, err := packing.NewPackingUnit(kernel.NewUUID(), inv.ID(), kernel.MustFileReference("FR-HELD"))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().PackingUnitRepository().Add(ctx, unit))

	booked, err := chain.Book(kernel.MustFileReference("FR-BOOKED"), kernel.NewUUID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().ShipmentChainRepository().Add(ctx, booked))

	locked, err := chain.Book(kernel.MustFileReference("FR-LOCKED"), kernel.NewUUID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Lock(kernel.NewUUID(), time.Now()))
	suite.Require().NoError(suite.factory.Create().ShipmentChainRepository().Add(ctx, locked))

	unitID := unit.ID()
	suite.Equal(services.ReferenceAvailable, suite.resolve("", nil).Status)
	suite.Equal(services.ReferencePlanning, suite.resolve("FR-FREE", nil).Status)
	suite.Equal(services.ReferenceDuplicate, suite.resolve("FR-HELD", nil).Status)
	suite.Equal(services.ReferencePlanning, suite.resolve("FR-HELD", &unitID).Status)
	suite.Equal(services.ReferenceConfirmed, suite.resolve("FR-BOOKED", nil).Status)

	res := suite.resolve("FR-LOCKED", nil)
	suite.Equal(services.ReferenceLocked, res.Status)
	suite.Contains(res.Detail, "FR-LOCKED")
}

func (suite *QueryHandlersTestSuite) TestResolveFileReference_StorageFailureIsErrorStatus() {
	ctx := context.Background()
	dsn, err := suite.database.Container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	broken, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	suite.Require().NoError(err)
	sqlDB, err := broken.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())

	query, err := queries.NewResolveFileReferenceQuery("FR-1", nil)
	suite.Require().NoError(err)

	res, err := queries.NewResolveFileReferenceQueryHandler(broken, queries.RetryPolicy{}.WithClassifier(pgerr.Classify), suite.logger).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(services.ReferenceError, res.Status)
	suite.Equal("FR-1", res.FileName.String())
}

func (suite *QueryHandlersTestSuite) TestGetInvoiceProgress() {
	ctx := context.Background()
	inv := suite.addInvoice("INV-2", invoice.Requirements{QC: true})

	suite.Require().NoError(inv.Advance(time.Now(), "received"))
	suite.Require().NoError(suite.factory.Create().InvoiceRepository().Update(ctx, inv))

	query, err := queries.NewGetInvoiceProgressQuery(inv.ID())
	suite.Require().NoError(err)
	progress, err := queries.NewGetInvoiceProgressQueryHandler(suite.database.DB, retryPolicy()).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(inv.ID(), progress.ID)
	suite.Equal("INV-2", progress.Number)
	suite.Equal(invoice.DocVerify, progress.Stage)
	suite.Equal(25, progress.ProgressPercent)
	suite.True(progress.Requirements.QC)
	suite.False(progress.Requirements.BV)
	suite.Equal(invoice.InspectionPending, progress.QC.Status)
	suite.Contains(progress.CompletedAt, invoice.Receiving)
	suite.NotContains(progress.CompletedAt, invoice.DocVerify)
	suite.Nil(progress.ReadyDispatchAt)
	suite.Equal(invoice.TransportNone, progress.TransportStatus)
	suite.Equal(2, progress.Version)
}

func (suite *QueryHandlersTestSuite) TestGetInvoiceProgress_NotFound() {
	query, err := queries.NewGetInvoiceProgressQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetInvoiceProgressQueryHandler(suite.database.DB, retryPolicy()).
		Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetActivityLog_NewestFirstWithLimit() {
	ctx := context.Background()
	ownerID := kernel.NewUUID()
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	repo := suite.factory.Create().ActivityLogRepository()
	for i, typ := range []activity.Type{activity.InvoiceCreated, activity.StageAdvanced, activity.ReadyForTransport} {
		entry, err := activity.NewEntry(
			activity.OwnerInvoice, ownerID, typ, string(typ),
			activity.Change{}, map[string]any{"step": string(typ)}, start.Add(time.Duration(i)*time.Minute),
		)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Append(ctx, entry))
	}

	foreign, err := activity.NewEntry(
		activity.OwnerInvoice, kernel.NewUUID(), activity.InvoiceCreated, "other", activity.Change{}, nil, start.Add(time.Hour),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Append(ctx, foreign))

	query, err := queries.NewGetActivityLogQuery(activity.OwnerInvoice, ownerID, 2)
	suite.Require().NoError(err)
	entries, err := queries.NewGetActivityLogQueryHandler(suite.database.DB, retryPolicy()).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 2)
	suite.Equal(activity.ReadyForTransport, entries[0].Type)
	suite.Equal(activity.StageAdvanced, entries[1].Type)
	suite.Equal(map[string]any{"step": string(activity.ReadyForTransport)}, entries[0].Metadata)
	suite.True(entries[0].OccurredAt.Equal(start.Add(2 * time.Minute)))
}

func (suite *QueryHandlersTestSuite) TestListOpenInvoices_SkipsReadyForDispatch() {
	ctx := context.Background()
	open := suite.addInvoice("INV-OPEN", invoice.Requirements{})
	ready := suite.addInvoice("INV-READY", invoice.Requirements{})

	suite.Require().NoError(suite.database.DB.Exec(
		"UPDATE invoices SET ready_dispatch_at = now() WHERE id = ?", ready.ID().Bytes()).Error)

	query, err := queries.NewListOpenInvoicesQuery(0)
	suite.Require().NoError(err)
	result, err := queries.NewListOpenInvoicesQueryHandler(suite.database.DB, retryPolicy()).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(open.ID(), result[0].ID)
	suite.Equal("INV-OPEN", result[0].Number)
}

func (suite *QueryHandlersTestSuite) addInvoice(number string, req invoice.Requirements) *invoice.Invoice {
	inv, err := invoice.NewInvoice(kernel.NewUUID(), number, req, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().InvoiceRepository().Add(context.Background(), inv))
	return inv
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
