package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tickethub/payouts_backend/internal/apperrors"
	"github.com/tickethub/payouts_backend/internal/core/domain"
	"github.com/tickethub/payouts_backend/internal/core/ports"
	portsrepo "github.com/tickethub/payouts_backend/internal/core/ports/repositories"
	portssvc "github.com/tickethub/payouts_backend/internal/core/ports/services"
	"github.com/tickethub/payouts_backend/internal/core/registry"
	"github.com/tickethub/payouts_backend/internal/dto"
	"github.com/tickethub/payouts_backend/internal/utils/masking"
)

// bankAccountServiceImpl implements the BankAccountSvcFacade interface.
// It orchestrates validation, field encryption, persistence and masking.
type bankAccountServiceImpl struct {
	BaseService
	repo   portsrepo.BankAccountRepositoryFacade
	cipher ports.FieldCipher
}

// NewBankAccountService creates a new bank-account service.
func NewBankAccountService(repo portsrepo.BankAccountRepositoryFacade, cipher ports.FieldCipher) portssvc.BankAccountSvcFacade {
	return &bankAccountServiceImpl{repo: repo, cipher: cipher}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountServiceImpl)(nil)

func (s *bankAccountServiceImpl) ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	accounts, err := s.repo.ListBankAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return nil, err
	}

	projected := make([]domain.BankAccount, 0, len(accounts))
	for i := range accounts {
		p, err := s.displayProjection(ctx, &accounts[i])
		if err != nil {
			return nil, err
		}
		projected = append(projected, *p)
	}
	return projected, nil
}

func (s *bankAccountServiceImpl) CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	if req.Country == "" {
		return nil, fmt.Errorf("country is required: %w", apperrors.ErrValidation)
	}

	if err := registry.Validate(req.Country, candidateFields(req.Country, req.Fields)); err != nil {
		s.LogWarn(ctx, "Bank account validation failed", slog.String("country", req.Country), slog.String("reason", err.Error()))
		return nil, err
	}

	encrypted, err := s.encryptSensitive(ctx, req.Fields)
	if err != nil {
		return nil, err
	}

	// Inserted non-primary regardless of the request: a TRUE flag here would
	// collide with the user's existing primary row. Promotion goes through
	// SetPrimaryBankAccount, which demotes and sets in one transaction.
	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		UserID:        userID,
		Country:       req.Country,
		IsPrimary:     false,
		IsActive:      true,
		Fields:        encrypted,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.repo.SaveBankAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account", slog.String("bank_account_id", account.BankAccountID))
		return nil, err
	}

	if req.IsPrimary {
		if err := s.repo.SetPrimaryBankAccount(ctx, userID, account.BankAccountID); err != nil {
			s.LogError(ctx, err, "Failed to promote new bank account to primary", slog.String("bank_account_id", account.BankAccountID))
			return nil, err
		}
		account.IsPrimary = true
	}

	s.LogInfo(ctx, "Bank account created", slog.String("bank_account_id", account.BankAccountID), slog.String("country", account.Country))
	return s.displayProjection(ctx, &account)
}

func (s *bankAccountServiceImpl) UpdateBankAccount(ctx context.Context, userID string, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	existing, err := s.getOwnedBankAccount(ctx, userID, bankAccountID)
	if err != nil {
		return nil, err
	}

	targetCountry := existing.Country
	if req.Country != "" {
		targetCountry = req.Country
	}

	if needsRevalidation(existing, targetCountry, req.Fields) {
		merged, err := s.mergedPlaintextFields(ctx, existing, req.Fields)
		if err != nil {
			return nil, err
		}
		if err := registry.Validate(targetCountry, candidateFields(targetCountry, merged)); err != nil {
			s.LogWarn(ctx, "Bank account update validation failed", slog.String("country", targetCountry), slog.String("reason", err.Error()))
			return nil, err
		}
	}

	encrypted, err := s.encryptSensitive(ctx, req.Fields)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Country = targetCountry
	updated.Fields = existing.CloneFields()
	for name, value := range encrypted {
		updated.Fields[name] = value
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateBankAccount(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update bank account", slog.String("bank_account_id", bankAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account updated", slog.String("bank_account_id", bankAccountID))
	return s.displayProjection(ctx, &updated)
}

func (s *bankAccountServiceImpl) DeleteBankAccount(ctx context.Context, userID string, bankAccountID string) error {
	if _, err := s.getOwnedBankAccount(ctx, userID, bankAccountID); err != nil {
		return err
	}

	if err := s.repo.DeleteBankAccount(ctx, bankAccountID); err != nil {
		s.LogError(ctx, err, "Failed to delete bank account", slog.String("bank_account_id", bankAccountID))
		return err
	}

	s.LogInfo(ctx, "Bank account deleted", slog.String("bank_account_id", bankAccountID))
	return nil
}

func (s *bankAccountServiceImpl) SetPrimaryBankAccount(ctx context.Context, userID string, bankAccountID string) error {
	account, err := s.getOwnedBankAccount(ctx, userID, bankAccountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("bank account is inactive: %w", apperrors.ErrValidation)
	}

	if err := s.repo.SetPrimaryBankAccount(ctx, userID, bankAccountID); err != nil {
		s.LogError(ctx, err, "Failed to set primary bank account", slog.String("bank_account_id", bankAccountID))
		return err
	}

	s.LogInfo(ctx, "Primary bank account updated", slog.String("bank_account_id", bankAccountID))
	return nil
}

func (s *bankAccountServiceImpl) SupportedCountries() []dto.SupportedCountry {
	codes := registry.SupportedCountryCodes()
	countries := make([]dto.SupportedCountry, 0, len(codes))
	for _, code := range codes {
		schema := registry.SchemaFor(code)
		countries = append(countries, dto.SupportedCountry{
			Code: code,
			Name: registry.CountryName(code),
			Fields: dto.CountryFields{
				Required: schema.Required,
				Optional: schema.Optional,
			},
		})
	}
	return countries
}

// getOwnedBankAccount fetches an account and verifies ownership. Accounts
// owned by someone else report ErrNotFound to obscure their existence.
func (s *bankAccountServiceImpl) getOwnedBankAccount(ctx context.Context, userID, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.repo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bank account", slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		s.LogDebug(ctx, "Bank account belongs to a different user", slog.String("bank_account_id", bankAccountID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// encryptSensitive returns a copy of fields with every non-empty sensitive
// value replaced by its cipher token.
func (s *bankAccountServiceImpl) encryptSensitive(ctx context.Context, fields map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	for name, value := range fields {
		if domain.IsSensitiveField(name) && value != "" {
			token, err := s.cipher.EncryptField(value)
			if err != nil {
				s.LogError(ctx, err, "Failed to encrypt field", slog.String("field", name))
				return nil, err
			}
			out[name] = token
			continue
		}
		out[name] = value
	}
	return out, nil
}

// mergedPlaintextFields overlays the update payload onto the stored fields,
// decrypting stored sensitive values first so pattern checks see plaintext.
func (s *bankAccountServiceImpl) mergedPlaintextFields(ctx context.Context, existing *domain.BankAccount, updates map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(existing.Fields)+len(updates))
	for name, value := range existing.Fields {
		if domain.IsSensitiveField(name) && value != "" {
			plaintext, err := s.cipher.DecryptField(value)
			if err != nil {
				s.LogError(ctx, err, "Failed to decrypt stored field", slog.String("field", name), slog.String("bank_account_id", existing.BankAccountID))
				return nil, err
			}
			merged[name] = plaintext
			continue
		}
		merged[name] = value
	}
	for name, value := range updates {
		merged[name] = value
	}
	return merged, nil
}

// displayProjection returns a copy of the account safe to leave the service:
// sensitive fields decrypted and masked, everything else as stored.
func (s *bankAccountServiceImpl) displayProjection(ctx context.Context, account *domain.BankAccount) (*domain.BankAccount, error) {
	projected := *account
	projected.Fields = account.CloneFields()
	for name, value := range projected.Fields {
		if !domain.IsSensitiveField(name) || value == "" {
			continue
		}
		plaintext, err := s.cipher.DecryptField(value)
		if err != nil {
			s.LogError(ctx, err, "Failed to decrypt field for display", slog.String("field", name), slog.String("bank_account_id", account.BankAccountID))
			return nil, err
		}
		projected.Fields[name] = masking.Mask(name, plaintext)
	}
	return &projected, nil
}

// candidateFields injects the country code into the candidate field set so
// the DEFAULT schema's required "country" entry can be satisfied.
func candidateFields(country string, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields)+1)
	for name, value := range fields {
		out[name] = value
	}
	if _, ok := out["country"]; !ok {
		out["country"] = country
	}
	return out
}

// needsRevalidation reports whether an update changes the country or touches
// a field the target country requires.
func needsRevalidation(existing *domain.BankAccount, targetCountry string, updates map[string]string) bool {
	if targetCountry != existing.Country {
		return true
	}
	for _, required := range registry.RequiredFields(targetCountry) {
		if _, ok := updates[required]; ok {
			return true
		}
	}
	return false
}
