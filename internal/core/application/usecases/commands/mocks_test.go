package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/chain"
	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/manifest"
	"dispatch/internal/core/domain/model/packing"
	"dispatch/internal/core/domain/model/transport"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetManyForUpdate(ctx context.Context, ids []kernel.UUID) ([]*invoice.Invoice, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoice.Invoice), args.Error(1)
}

type MockPackingUnitRepository struct{ mock.Mock }

func (m *MockPackingUnitRepository) Add(ctx context.Context, unit *packing.PackingUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockPackingUnitRepository) Update(ctx context.Context, unit *packing.PackingUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockPackingUnitRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*packing.PackingUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packing.PackingUnit), args.Error(1)
}

func (m *MockPackingUnitRepository) FindHolders(ctx context.Context, ref kernel.FileReference) ([]kernel.UUID, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockPackingUnitRepository) ListByInvoices(
	ctx context.Context,
	invoiceIDs []kernel.UUID,
) ([]*packing.PackingUnit, error) {
	args := m.Called(ctx, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*packing.PackingUnit), args.Error(1)
}

type MockShipmentChainRepository struct{ mock.Mock }

func (m *MockShipmentChainRepository) Add(ctx context.Context, c *chain.ShipmentChain) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockShipmentChainRepository) Update(ctx context.Context, c *chain.ShipmentChain) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockShipmentChainRepository) GetForUpdate(
	ctx context.Context,
	ref kernel.FileReference,
) (*chain.ShipmentChain, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.ShipmentChain), args.Error(1)
}

func (m *MockShipmentChainRepository) Delete(ctx context.Context, ref kernel.FileReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

type MockTransportRequestRepository struct{ mock.Mock }

func (m *MockTransportRequestRepository) Add(ctx context.Context, r *transport.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockTransportRequestRepository) Update(ctx context.Context, r *transport.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockTransportRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transport.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Request), args.Error(1)
}

type MockLoadConfirmationRepository struct{ mock.Mock }

func (m *MockLoadConfirmationRepository) Add(ctx context.Context, lc *booking.LoadConfirmation) error {
	args := m.Called(ctx, lc)
	return args.Error(0)
}

func (m *MockLoadConfirmationRepository) Update(ctx context.Context, lc *booking.LoadConfirmation) error {
	args := m.Called(ctx, lc)
	return args.Error(0)
}

func (m *MockLoadConfirmationRepository) Get(ctx context.Context, id kernel.UUID) (*booking.LoadConfirmation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.LoadConfirmation), args.Error(1)
}

func (m *MockLoadConfirmationRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*booking.LoadConfirmation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.LoadConfirmation), args.Error(1)
}

func (m *MockLoadConfirmationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockManifestRepository struct{ mock.Mock }

func (m *MockManifestRepository) Add(ctx context.Context, mf *manifest.Manifest) error {
	args := m.Called(ctx, mf)
	return args.Error(0)
}

func (m *MockManifestRepository) InvoicesOnManifest(ctx context.Context, ids []kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockActivityLogRepository struct{ mock.Mock }

func (m *MockActivityLogRepository) Append(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockUoW satisfies every unit of work shape used by the handlers.
type MockUoW struct {
	mock.Mock

	invoices  *MockInvoiceRepository
	units     *MockPackingUnitRepository
	chains    *MockShipmentChainRepository
	requests  *MockTransportRequestRepository
	lcs       *MockLoadConfirmationRepository
	manifests *MockManifestRepository
	activity  *MockActivityLogRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		invoices:  new(MockInvoiceRepository),
		units:     new(MockPackingUnitRepository),
		chains:    new(MockShipmentChainRepository),
		requests:  new(MockTransportRequestRepository),
		lcs:       new(MockLoadConfirmationRepository),
		manifests: new(MockManifestRepository),
		activity:  new(MockActivityLogRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository { return m.invoices }

func (m *MockUoW) PackingUnitRepository() ports.PackingUnitRepository { return m.units }

func (m *MockUoW) ShipmentChainRepository() ports.ShipmentChainRepository { return m.chains }

func (m *MockUoW) TransportRequestRepository() ports.TransportRequestRepository { return m.requests }

func (m *MockUoW) LoadConfirmationRepository() ports.LoadConfirmationRepository { return m.lcs }

func (m *MockUoW) ManifestRepository() ports.ManifestRepository { return m.manifests }

func (m *MockUoW) ActivityLogRepository() ports.ActivityLogRepository { return m.activity }

func (m *MockUoW) AssertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.invoices.AssertExpectations(t)
	m.units.AssertExpectations(t)
	m.chains.AssertExpectations(t)
	m.requests.AssertExpectations(t)
	m.lcs.AssertExpectations(t)
	m.manifests.AssertExpectations(t)
	m.activity.AssertExpectations(t)
}

// expectTx registers Begin, Commit and the deferred Rollback.
func (m *MockUoW) expectTx(ctx context.Context) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Commit", ctx).Return(nil).Once()
	m.On("Rollback", ctx).Return(nil).Once()
}

// expectAborted registers Begin and the deferred Rollback only.
func (m *MockUoW) expectAborted(ctx context.Context) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Rollback", ctx).Return(nil).Once()
}

type MockInvoiceUoWFactory struct{ mock.Mock }

func (m *MockInvoiceUoWFactory) Create() commands.InvoiceUoW {
	args := m.Called()
	return args.Get(0).(commands.InvoiceUoW)
}

type MockReferenceUoWFactory struct{ mock.Mock }

func (m *MockReferenceUoWFactory) Create() commands.ReferenceUoW {
	args := m.Called()
	return args.Get(0).(commands.ReferenceUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyReadyForTransport(ctx context.Context, notice ports.ReadyForTransportNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockNotifier) SendLoadConfirmationEmail(ctx context.Context, email ports.LoadConfirmationEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockDocumentStore struct{ mock.Mock }

func (m *MockDocumentStore) DocumentsOfType(
	ctx context.Context,
	invoiceID kernel.UUID,
	docType string,
) ([]ports.Document, error) {
	args := m.Called(ctx, invoiceID, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Document), args.Error(1)
}

type MockManifestNumberSource struct{ mock.Mock }

func (m *MockManifestNumberSource) NextManifestNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
