package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/gconf"
	"github.com/realchain/ledger/x"
	"github.com/realchain/ledger/x/cash"
	"github.com/realchain/ledger/x/escrow"
	"github.com/realchain/ledger/x/signer"
	"github.com/realchain/ledger/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the Info ABCI call.
const Name = "escrowd"

// Routes returns the router with the handlers of all extensions.
func Routes(auth x.Authenticator, ctrl cash.Controller) *Router {
	r := NewRouter()
	cash.RegisterRoutes(r, auth, ctrl, escrow.NewBucket())
	escrow.RegisterRoutes(r, auth, cash.NewSettlement(ctrl))
	return r
}

// QueryRouter returns the router serving the raw key lookup and the
// buckets of all extensions.
func QueryRouter() ledger.QueryRouter {
	qr := ledger.NewQueryRouter()
	qr.RegisterAll(
		RegisterQuery,
		cash.RegisterQuery,
		escrow.RegisterQuery,
	)
	return qr
}

// Chain returns the handler every transaction is passed to. The metrics
// decorator is optional.
func Chain(metrics ledger.Decorator) ledger.Handler {
	auth := signer.Authenticate{}
	ctrl := cash.NewController(cash.NewBucket())
	return ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		metrics,
		signer.NewDecorator(),
		// The payment is executed before the message is handled and must
		// be reverted when the handler fails, also in the check phase.
		utils.NewSavepoint().OnCheck().OnDeliver(),
		cash.NewPaymentDecorator(auth, ctrl),
		utils.NewActionTagger(),
		utils.NewKeyTagger(),
	).WithHandler(Routes(auth, ctrl))
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() ledger.Initializer {
	return ledger.GenesisInitializers{
		gconf.NewInitializer(map[string]gconf.Configuration{
			cash.ConfPkg: &cash.Configuration{},
		}),
		cash.Initializer{},
	}
}

// Options configures the application returned by New.
type Options struct {
	// Logger receives all application logs. No logs are written if nil.
	Logger log.Logger
	// Registerer if set gets the transaction metrics registered.
	Registerer prometheus.Registerer
	// Debug enables full error messages in ABCI responses.
	Debug bool
}

// New returns the escrow ledger application persisting its state in given
// store.
func New(store ledger.CommitKVStore, opts Options) (BaseApp, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	var metrics ledger.Decorator
	if opts.Registerer != nil {
		m, err := utils.NewMetrics(opts.Registerer)
		if err != nil {
			return BaseApp{}, errors.Wrap(err, "metrics")
		}
		metrics = m
	}

	storeApp := NewStoreApp(Name, store, QueryRouter(), context.Background()).
		WithLogger(logger).
		WithInit(Initializers())
	return NewBaseApp(storeApp, DecodeTx, Chain(metrics), opts.Debug), nil
}
