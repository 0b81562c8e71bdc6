package services

import (
	"github.com/tickethub/payouts_backend/internal/core/ports"
	portsrepo "github.com/tickethub/payouts_backend/internal/core/ports/repositories"
	portssvc "github.com/tickethub/payouts_backend/internal/core/ports/services"
)

// NewServiceContainer wires all services against the given repositories and
// adapters. The publisher may be nil when no broker is configured.
func NewServiceContainer(
	bankAccountRepo portsrepo.BankAccountRepositoryFacade,
	payoutRepo portsrepo.PayoutRepositoryFacade,
	cipher ports.FieldCipher,
	publisher ports.EventPublisher,
) *portssvc.ServiceContainer {
	payoutOpts := []PayoutServiceOption{}
	if publisher != nil {
		payoutOpts = append(payoutOpts, WithEventPublisher(publisher))
	}

	return &portssvc.ServiceContainer{
		BankAccount: NewBankAccountService(bankAccountRepo, cipher),
		Payout:      NewPayoutService(payoutRepo, bankAccountRepo, payoutOpts...),
	}
}
