package services

import (
	portsrepo "github.com/ledgerline/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/bookkeeping_app/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies
type Container struct {
	Transaction portssvc.TransactionSvcFacade
	Reporting   portssvc.ReportingSvcFacade
}

// ContainerOption configures the service container.
type ContainerOption func(*containerConfig)

type containerConfig struct {
	transactionOpts []TransactionServiceOption
}

// WithTransactionOptions forwards options to the transaction coordinator.
func WithTransactionOptions(opts ...TransactionServiceOption) ContainerOption {
	return func(c *containerConfig) {
		c.transactionOpts = append(c.transactionOpts, opts...)
	}
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider, opts ...ContainerOption) *Container {
	cfg := &containerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Container{
		Transaction: NewTransactionService(repos.TransactionRepo, cfg.transactionOpts...),
		Reporting:   NewReportingService(repos.TransactionRepo),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.ReportingSvcFacade   = (*ReportingService)(nil)
)
