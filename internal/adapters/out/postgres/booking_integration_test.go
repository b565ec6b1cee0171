package postgres_test

import (
	"context"
	"sync"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/chain"
	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

type uowFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.factory.Create()
}

type referenceUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f referenceUoWFactory) Create() commands.ReferenceUoW {
	return f.factory.Create()
}

var testVehicle = booking.Vehicle{Transporter: "Nordfrakt", VehicleNumber: "AB 123 CD"}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateLoadConfirmation_ConcurrentBookingsOfOneReference() {
	ctx := context.Background()
	first := suite.newInvoice("INV-500")
	second := suite.newInvoice("INV-501")
	suite.Require().NoError(suite.factory.Create().InvoiceRepository().Add(ctx, first))
	suite.Require().NoError(suite.factory.Create().InvoiceRepository().Add(ctx, second))

	handler := commands.NewCreateLoadConfirmationCommandHandler(uowFactory{suite.factory})

	cmds := make([]commands.CreateLoadConfirmationCommand, 0, 2)
	for _, inv := range []*invoice.Invoice{first, second} {
		cmd, err := commands.NewCreateLoadConfirmationCommand(kernel.NewUUID(), "FR-RACE", []kernel.UUID{inv.ID()}, testVehicle)
		suite.Require().NoError(err)
		cmds = append(cmds, cmd)
	}

	results := make([]error, len(cmds))
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, cmd := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i] = handler.Handle(ctx, cmd)
		}()
	}
	close(start)
	wg.Wait()

	var succeeded, refused int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errs.IsTransient(err):
			suite.Failf("unexpected transient error", "%v", err)
		default:
			suite.Require().ErrorIs(err, errs.ErrAlreadyBooked)
			refused++
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, refused)

	var active int64
	suite.Require().NoError(suite.database.DB.Table("load_confirmations").
		Where("file_reference = ?", "FR-RACE").Count(&active).Error)
	suite.Equal(int64(1), active)

	var chains int64
	suite.Require().NoError(suite.database.DB.Table("shipment_chains").
		Where("file_reference = ?", "FR-RACE").Count(&chains).Error)
	suite.Equal(int64(1), chains)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestManifest_LocksReferenceForever() {
	ctx := context.Background()
	inv := suite.newInvoice("INV-600")
	suite.Require().NoError(suite.factory.Create().InvoiceRepository().Add(ctx, inv))

	unitID := kernel.NewUUID()
	addUnit, err := commands.NewAddPackingUnitCommand(unitID, inv.ID(), "FR-600")
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewAddPackingUnitCommandHandler(referenceUoWFactory{suite.factory}).Handle(ctx, addUnit))

	lcID := kernel.NewUUID()
	createLC, err := commands.NewCreateLoadConfirmationCommand(lcID, "FR-600", []kernel.UUID{inv.ID()}, testVehicle)
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewCreateLoadConfirmationCommandHandler(uowFactory{suite.factory}).Handle(ctx, createLC))

	stored, err := suite.factory.Create().InvoiceRepository().Get(ctx, inv.ID())
	suite.Require().NoError(err)
	suite.Equal(invoice.TransportBooked, stored.TransportStatus())

	createManifest, err := commands.NewCreateManifestCommand(kernel.NewUUID(), lcID)
	suite.Require().NoError(err)
	result, err := commands.NewCreateManifestCommandHandler(
		uowFactory{suite.factory},
		postgres_adapter.NewSequenceManifestNumbers(suite.database.DB),
	).Handle(ctx, createManifest)
	suite.Require().NoError(err)
	suite.Regexp(`^MF-\d{6}$`, result.Number)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.ShipmentChainRepository().GetForUpdate(ctx, kernel.MustFileReference("FR-600"))
	suite.Require().NoError(err)
	suite.Equal(chain.Locked, locked.Status())
	suite.Require().NoError(uow.Rollback(ctx))

	rename, err := commands.NewChangeFileNameCommand(unitID, "FR-601")
	suite.Require().NoError(err)
	_, err = commands.NewChangeFileNameCommandHandler(referenceUoWFactory{suite.factory}).Handle(ctx, rename)
	suite.Require().ErrorIs(err, errs.ErrReferenceLocked)

	deleteLC, err := commands.NewDeleteLoadConfirmationCommand(lcID)
	suite.Require().NoError(err)
	err = commands.NewDeleteLoadConfirmationCommandHandler(uowFactory{suite.factory}).Handle(ctx, deleteLC)
	suite.Require().ErrorIs(err, errs.ErrManifestDependency)

	other := suite.newInvoice("INV-601")
	suite.Require().NoError(suite.factory.Create().InvoiceRepository().Add(ctx, other))
	rebook, err := commands.NewCreateLoadConfirmationCommand(kernel.NewUUID(), "FR-600", []kernel.UUID{other.ID()}, testVehicle)
	suite.Require().NoError(err)
	err = commands.NewCreateLoadConfirmationCommandHandler(uowFactory{suite.factory}).Handle(ctx, rebook)
	suite.Require().ErrorIs(err, errs.ErrReferenceLocked)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeleteLoadConfirmation_ReleasesReference() {
	ctx := context.Background()
	inv := suite.newInvoice("INV-700")
	suite.Require().NoError(suite.factory.Create().InvoiceRepository().Add(ctx, inv))

	lcID := kernel.NewUUID()
	createLC, err := commands.NewCreateLoadConfirmationCommand(lcID, "FR-700", []kernel.UUID{inv.ID()}, testVehicle)
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewCreateLoadConfirmationCommandHandler(uowFactory{suite.factory}).Handle(ctx, createLC))

	deleteLC, err := commands.NewDeleteLoadConfirmationCommand(lcID)
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewDeleteLoadConfirmationCommandHandler(uowFactory{suite.factory}).Handle(ctx, deleteLC))

	stored, err := suite.factory.Create().InvoiceRepository().Get(ctx, inv.ID())
	suite.Require().NoError(err)
	suite.Equal(invoice.TransportNone, stored.TransportStatus())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	_, err = uow.ShipmentChainRepository().GetForUpdate(ctx, kernel.MustFileReference("FR-700"))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().NoError(uow.Rollback(ctx))

	rebook, err := commands.NewCreateLoadConfirmationCommand(kernel.NewUUID(), "FR-700", []kernel.UUID{inv.ID()}, testVehicle)
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewCreateLoadConfirmationCommandHandler(uowFactory{suite.factory}).Handle(ctx, rebook))
}
