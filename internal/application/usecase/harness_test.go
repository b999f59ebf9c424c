package usecase_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/application/usecase"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/service"
	vo "github.com/bibbank/bib/internal/domain/valueobject"
)

var savingsRoles = []vo.AccountRole{
	vo.RoleSavingsReference,
	vo.RoleSavingsControl,
	vo.RoleIncomeFromFees,
	vo.RoleIncomeFromPenalties,
	vo.RoleOverdraftPortfolioControl,
}

// harness wires every use case against in-memory adapters.
type harness struct {
	offices  *memOffices
	accounts *memGLAccounts
	mappings *memMappings
	cache    *recordingCache
	ledger   *memLedger
	metrics  *recordingMetrics

	head   model.Office
	branch model.Office
	roles  map[vo.AccountRole]uuid.UUID

	post      *usecase.PostTransaction
	reverse   *usecase.ReverseTransaction
	close     *usecase.CreateClosure
	latest    *usecase.GetLatestClosure
	closures  *usecase.ListClosures
	queries   *usecase.JournalQueries
	createGL  *usecase.CreateGLAccount
	disableGL *usecase.SetGLAccountDisabled
	enableGL  *usecase.SetGLAccountDisabled
	getGL     *usecase.GetGLAccount
	listGL    *usecase.ListGLAccounts
	mapRole   *usecase.CreateAccountMapping
	addOffice *usecase.CreateOffice
	seed      *usecase.SeedChart
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		offices:  newMemOffices(),
		accounts: newMemGLAccounts(),
		mappings: &memMappings{},
		cache:    &recordingCache{},
		metrics:  &recordingMetrics{},
	}
	h.ledger = newMemLedger(h.offices)
	h.head = newOffice(t, h.offices, "Head Office", nil)
	h.branch = newOffice(t, h.offices, "Branch", &h.head)
	h.roles = mapRoles(t, h.accounts, h.mappings, vo.ProductTypeSavings, savingsRoles...)

	logger := discardLogger()
	guard := service.NewClosureGuard()
	validator := service.NewPostingValidator()
	builder := service.NewEntryBuilder(service.NewRuleResolver(h.mappings, h.accounts))
	closures := memClosures{l: h.ledger}

	h.post = usecase.NewPostTransaction(h.ledger, builder, guard, validator, h.metrics, logger)
	h.reverse = usecase.NewReverseTransaction(h.ledger, service.NewReversalEngine(guard, validator), h.metrics, logger)
	h.close = usecase.NewCreateClosure(h.ledger, logger)
	h.latest = usecase.NewGetLatestClosure(h.offices, closures, guard)
	h.closures = usecase.NewListClosures(closures)
	h.queries = usecase.NewJournalQueries(h.ledger)
	h.createGL = usecase.NewCreateGLAccount(h.accounts)
	h.disableGL = usecase.NewDisableGLAccount(h.accounts, h.cache)
	h.enableGL = usecase.NewEnableGLAccount(h.accounts, h.cache)
	h.getGL = usecase.NewGetGLAccount(h.accounts)
	h.listGL = usecase.NewListGLAccounts(h.accounts)
	h.mapRole = usecase.NewCreateAccountMapping(h.mappings, h.accounts, h.cache)
	h.addOffice = usecase.NewCreateOffice(h.offices)
	h.seed = usecase.NewSeedChart(h.offices, h.accounts, h.mappings, h.cache, logger)
	return h
}

func savingsRequest(h *harness, txID string, txType vo.TransactionType, amount string) dto.PostTransactionRequest {
	return dto.PostTransactionRequest{
		TenantID:        tenantID,
		OfficeID:        h.branch.ID(),
		TransactionID:   txID,
		ProductType:     string(vo.ProductTypeSavings),
		ProductID:       productID,
		Convention:      string(vo.ConventionCash),
		TransactionType: string(txType),
		Amount:          dec(amount),
		Currency:        "USD",
		EntryDate:       mar1,
	}
}
