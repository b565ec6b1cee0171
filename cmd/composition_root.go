package cmd

import (
	"log/slog"

	api "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/documentrepo"
	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	documents  ports.DocumentStore
	numbers    ports.ManifestNumberSource
	retry      queries.RetryPolicy
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	retry := queries.DefaultRetryPolicy().WithClassifier(pgerr.Classify)
	if config.ReadRetryMaxElapsed > 0 {
		retry.MaxElapsed = config.ReadRetryMaxElapsed
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notify.NewLogNotifier(logger),
		documents:  documentrepo.NewGormDocumentStore(gormDB),
		numbers:    postgres.NewSequenceManifestNumbers(gormDB),
		retry:      retry,
	}
}

func (c *CompositionRoot) invoiceUoWFactory() commands.InvoiceUoWFactory {
	return FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) referenceUoWFactory() commands.ReferenceUoWFactory {
	return FuncReferenceUoWFactory(func() commands.ReferenceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) chainUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateInvoiceCommandHandler() commands.CreateInvoiceCommandHandler {
	return commands.NewCreateInvoiceCommandHandler(c.invoiceUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceStageCommandHandler() commands.AdvanceStageCommandHandler {
	return commands.NewAdvanceStageCommandHandler(c.invoiceUoWFactory())
}

func (c *CompositionRoot) CreateCheckDocumentCompletenessCommandHandler() commands.CheckDocumentCompletenessCommandHandler {
	return commands.NewCheckDocumentCompletenessCommandHandler(c.invoiceUoWFactory(), c.documents)
}

func (c *CompositionRoot) CreateRecordInspectionCommandHandler() commands.RecordInspectionCommandHandler {
	return commands.NewRecordInspectionCommandHandler(c.invoiceUoWFactory())
}

func (c *CompositionRoot) CreateMarkReadyForTransportCommandHandler() commands.MarkReadyForTransportCommandHandler {
	return commands.NewMarkReadyForTransportCommandHandler(c.invoiceUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAddPackingUnitCommandHandler() commands.AddPackingUnitCommandHandler {
	return commands.NewAddPackingUnitCommandHandler(c.referenceUoWFactory())
}

func (c *CompositionRoot) CreateChangeFileNameCommandHandler() commands.ChangeFileNameCommandHandler {
	return commands.NewChangeFileNameCommandHandler(c.referenceUoWFactory())
}

func (c *CompositionRoot) CreateCreateTransportRequestCommandHandler() commands.CreateTransportRequestCommandHandler {
	return commands.NewCreateTransportRequestCommandHandler(c.chainUoWFactory())
}

func (c *CompositionRoot) CreateAssignTransportRequestCommandHandler() commands.AssignTransportRequestCommandHandler {
	return commands.NewAssignTransportRequestCommandHandler(c.chainUoWFactory())
}

func (c *CompositionRoot) CreateRejectTransportRequestCommandHandler() commands.RejectTransportRequestCommandHandler {
	return commands.NewRejectTransportRequestCommandHandler(c.chainUoWFactory())
}

func (c *CompositionRoot) CreateCreateLoadConfirmationCommandHandler() commands.CreateLoadConfirmationCommandHandler {
	return commands.NewCreateLoadConfirmationCommandHandler(c.chainUoWFactory())
}

func (c *CompositionRoot) CreateChangeLoadConfirmationStatusCommandHandler() commands.ChangeLoadConfirmationStatusCommandHandler {
	return commands.NewChangeLoadConfirmationStatusCommandHandler(c.chainUoWFactory())
}

func (c *CompositionRoot) CreateDeleteLoadConfirmationCommandHandler() commands.DeleteLoadConfirmationCommandHandler {
	return commands.NewDeleteLoadConfirmationCommandHandler(c.chainUoWFactory())
}

func (c *CompositionRoot) CreateRequestLoadConfirmationEmailCommandHandler() commands.RequestLoadConfirmationEmailCommandHandler {
	return commands.NewRequestLoadConfirmationEmailCommandHandler(c.chainUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateManifestCommandHandler() commands.CreateManifestCommandHandler {
	return commands.NewCreateManifestCommandHandler(c.chainUoWFactory(), c.numbers)
}

func (c *CompositionRoot) CreateResolveFileReferenceQueryHandler() queries.ResolveFileReferenceQueryHandler {
	return queries.NewResolveFileReferenceQueryHandler(c.gormDB, c.retry, c.logger)
}

func (c *CompositionRoot) CreateGetInvoiceProgressQueryHandler() queries.GetInvoiceProgressQueryHandler {
	return queries.NewGetInvoiceProgressQueryHandler(c.gormDB, c.retry)
}

func (c *CompositionRoot) CreateGetActivityLogQueryHandler() queries.GetActivityLogQueryHandler {
	return queries.NewGetActivityLogQueryHandler(c.gormDB, c.retry)
}

func (c *CompositionRoot) CreateListOpenInvoicesQueryHandler() queries.ListOpenInvoicesQueryHandler {
	return queries.NewListOpenInvoicesQueryHandler(c.gormDB, c.retry)
}

func (c *CompositionRoot) CreateServer() *api.Server {
	return api.NewServer(api.Handlers{
		CreateInvoice:                c.CreateCreateInvoiceCommandHandler(),
		AdvanceStage:                 c.CreateAdvanceStageCommandHandler(),
		CheckDocumentCompleteness:    c.CreateCheckDocumentCompletenessCommandHandler(),
		RecordInspection:             c.CreateRecordInspectionCommandHandler(),
		MarkReadyForTransport:        c.CreateMarkReadyForTransportCommandHandler(),
		AddPackingUnit:               c.CreateAddPackingUnitCommandHandler(),
		ChangeFileName:               c.CreateChangeFileNameCommandHandler(),
		CreateTransportRequest:       c.CreateCreateTransportRequestCommandHandler(),
		AssignTransportRequest:       c.CreateAssignTransportRequestCommandHandler(),
		RejectTransportRequest:       c.CreateRejectTransportRequestCommandHandler(),
		CreateLoadConfirmation:       c.CreateCreateLoadConfirmationCommandHandler(),
		ChangeLoadConfirmationStatus: c.CreateChangeLoadConfirmationStatusCommandHandler(),
		DeleteLoadConfirmation:       c.CreateDeleteLoadConfirmationCommandHandler(),
		RequestLoadConfirmationEmail: c.CreateRequestLoadConfirmationEmailCommandHandler(),
		CreateManifest:               c.CreateCreateManifestCommandHandler(),
		ResolveFileReference:         c.CreateResolveFileReferenceQueryHandler(),
		GetInvoiceProgress:           c.CreateGetInvoiceProgressQueryHandler(),
		GetActivityLog:               c.CreateGetActivityLogQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateListOpenInvoicesQueryHandler(),
		c.CreateCheckDocumentCompletenessCommandHandler(),
		c.config.DocumentSweepSchedule,
		c.logger,
	)
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}

type FuncReferenceUoWFactory func() commands.ReferenceUoW

func (f FuncReferenceUoWFactory) Create() commands.ReferenceUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
