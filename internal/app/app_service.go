package app

import (
	"context"

	"fabric-inventory/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

type appService struct {
	pool      *pgxpool.Pool
	directory core.DirectoryService
	stock     core.StockService
	invoices  core.InvoiceService
	refunds   core.RefundService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	pool *pgxpool.Pool,
	directory core.DirectoryService,
	stock core.StockService,
	invoices core.InvoiceService,
	refunds core.RefundService,
) ApplicationService {
	return &appService{
		pool:      pool,
		directory: directory,
		stock:     stock,
		invoices:  invoices,
		refunds:   refunds,
	}
}

func (s *appService) ListCustomers(ctx context.Context) (*CustomerListResult, error) {
	customers, err := s.directory.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

func (s *appService) GetCustomer(ctx context.Context, id int) (*core.Customer, error) {
	return s.directory.GetCustomer(ctx, id)
}

func (s *appService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*core.Customer, error) {
	return s.directory.CreateCustomer(ctx, req.Name, req.Email, req.Phone, req.Address)
}

func (s *appService) ListWarehouses(ctx context.Context) (*WarehouseListResult, error) {
	warehouses, err := s.directory.GetWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	return &WarehouseListResult{Warehouses: warehouses}, nil
}

func (s *appService) GetWarehouse(ctx context.Context, id int) (*core.Warehouse, error) {
	return s.directory.GetWarehouse(ctx, id)
}

func (s *appService) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*core.Warehouse, error) {
	return s.directory.CreateWarehouse(ctx, req.Name, req.Location)
}

func (s *appService) ListFabrics(ctx context.Context) (*FabricListResult, error) {
	fabrics, err := s.directory.GetFabrics(ctx)
	if err != nil {
		return nil, err
	}
	return &FabricListResult{Fabrics: fabrics}, nil
}

func (s *appService) CreateFabric(ctx context.Context, name string) (*core.Fabric, error) {
	return s.directory.CreateFabric(ctx, name)
}

func (s *appService) ListColors(ctx context.Context) (*ColorListResult, error) {
	colors, err := s.directory.GetColors(ctx)
	if err != nil {
		return nil, err
	}
	return &ColorListResult{Colors: colors}, nil
}

func (s *appService) CreateColor(ctx context.Context, name, hexCode string) (*core.Color, error) {
	return s.directory.CreateColor(ctx, name, hexCode)
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.directory.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) GetProduct(ctx context.Context, id int) (*core.Product, error) {
	return s.directory.GetProduct(ctx, id)
}

func (s *appService) CreateProduct(ctx context.Context, req core.CreateProductInput) (*core.Product, error) {
	return s.directory.CreateProduct(ctx, req)
}

func (s *appService) UpdateProduct(ctx context.Context, id int, req core.CreateProductInput) (*core.Product, error) {
	return s.directory.UpdateProduct(ctx, id, req)
}

func (s *appService) GetStockLevels(ctx context.Context) (*StockResult, error) {
	levels, err := s.stock.GetStockLevels(ctx)
	if err != nil {
		return nil, err
	}
	return &StockResult{Levels: levels}, nil
}

func (s *appService) CreateInvoice(ctx context.Context, req core.CreateInvoiceInput) (*core.Invoice, error) {
	return s.invoices.Create(ctx, req)
}

func (s *appService) GetInvoice(ctx context.Context, id int) (*core.Invoice, error) {
	return s.invoices.Get(ctx, id)
}

func (s *appService) ListInvoices(ctx context.Context, status *core.InvoiceStatus) (*InvoiceListResult, error) {
	invoices, err := s.invoices.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices}, nil
}

func (s *appService) UpdateInvoice(ctx context.Context, id int, req core.UpdateInvoiceInput) (*core.Invoice, error) {
	return s.invoices.Update(ctx, id, req)
}

func (s *appService) RemoveInvoice(ctx context.Context, id int) error {
	return s.invoices.Remove(ctx, id)
}

func (s *appService) CreateRefund(ctx context.Context, req core.CreateRefundInput) (*core.Refund, error) {
	return s.refunds.Create(ctx, req)
}

func (s *appService) GetRefund(ctx context.Context, id int) (*core.Refund, error) {
	return s.refunds.Get(ctx, id)
}

func (s *appService) ListRefunds(ctx context.Context) (*RefundListResult, error) {
	refunds, err := s.refunds.List(ctx)
	if err != nil {
		return nil, err
	}
	return &RefundListResult{Refunds: refunds}, nil
}
